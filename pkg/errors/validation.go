package errors

import (
	"strings"
	"unicode"
)

// ValidateCoordinatePart validates one component (group, artifact, version
// or packaging) of a Maven coordinate.
//
// Coordinates read from remote manifests end up as directory and file names
// under the output directory, so the rules reject anything that could
// escape it:
//   - No empty values
//   - No control characters or null bytes
//   - No path separators (/ or \) and no ".." sequences
//   - No ':' (the coordinate separator)
//   - Maximum length of 256 characters
func ValidateCoordinatePart(kind, value string) error {
	if value == "" {
		return New(ErrCodeInvalidInput, "%s cannot be empty", kind)
	}

	if len(value) > 256 {
		return New(ErrCodeInvalidInput, "%s too long (max 256 characters)", kind)
	}

	for _, r := range value {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "%s contains invalid control characters", kind)
		}
	}

	for _, pattern := range []string{"..", "/", "\\", ":"} {
		if strings.Contains(value, pattern) {
			return New(ErrCodeInvalidInput, "%s contains invalid characters: %q", kind, pattern)
		}
	}

	return nil
}

// ValidateURL validates a repository base URL.
// It ensures the URL has a safe scheme (http or https) and a host.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	rest, ok := strings.CutPrefix(rawURL, "https://")
	if !ok {
		rest, ok = strings.CutPrefix(rawURL, "http://")
	}
	if !ok {
		return New(ErrCodeInvalidInput, "repository %q must be a known alias or an http(s) URL", rawURL)
	}
	if rest == "" || strings.HasPrefix(rest, "/") {
		return New(ErrCodeInvalidInput, "repository URL %q has no host", rawURL)
	}

	return nil
}
