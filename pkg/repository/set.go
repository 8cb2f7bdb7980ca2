package repository

import (
	"strings"

	"github.com/samber/lo"

	"github.com/matzehuels/mvnfetch/pkg/errors"
)

// DefaultAliases maps the built-in repository names to their base URLs.
var DefaultAliases = map[string]string{
	"mavenCentral": "https://repo1.maven.org/maven2/",
	"jcenter":      "https://jcenter.bintray.com/",
	"google":       "https://maven.google.com/",
}

// Set is a de-duplicated collection of repository base URLs, each ending
// in exactly one "/".
type Set struct {
	bases []string
}

// NewSet normalises tokens into a Set. Aliases are looked up in extra first
// and then in [DefaultAliases]; any other token must be an http(s) URL.
func NewSet(tokens []string, extra map[string]string) (Set, error) {
	if len(tokens) == 0 {
		return Set{}, errors.New(errors.ErrCodeInvalidInput, "at least one repository is required")
	}
	bases := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		base, err := Normalize(tok, extra)
		if err != nil {
			return Set{}, err
		}
		bases = append(bases, base)
	}
	return Set{bases: lo.Uniq(bases)}, nil
}

// Normalize resolves a single repository token to a base URL.
func Normalize(token string, extra map[string]string) (string, error) {
	token = strings.TrimSpace(token)
	if u, ok := extra[token]; ok {
		token = u
	} else if u, ok := DefaultAliases[token]; ok {
		token = u
	}
	if err := errors.ValidateURL(token); err != nil {
		return "", err
	}
	return strings.TrimRight(token, "/") + "/", nil
}

// Bases returns a copy of the base URLs.
func (s Set) Bases() []string { return append([]string(nil), s.bases...) }

// Len returns the number of repositories.
func (s Set) Len() int { return len(s.bases) }
