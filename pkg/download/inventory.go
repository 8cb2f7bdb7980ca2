package download

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/mvnfetch/pkg/maven"
)

// LocalSet holds the coordinates found under an output directory. It has no
// packaging information.
type LocalSet map[string]maven.Coordinate

// Contains reports whether a coordinate with the same group, artifact and
// version is present.
func (s LocalSet) Contains(c maven.Coordinate) bool {
	_, ok := s[c.Key()]
	return ok
}

// Add records c.
func (s LocalSet) Add(c maven.Coordinate) {
	c.Packaging = ""
	s[c.Key()] = c
}

// Scan reads dir/<group>/<artifact>/<file>. A missing dir yields an empty
// set. Non-directories at the group and artifact levels, hidden files and
// files whose version cannot be parsed are ignored.
//
// The version is the file stem minus the "<artifact>-" prefix, so
// foo-1.0-rc1.jar reads as 1.0-rc1. Only files without that prefix fall
// back to the text after the last '-'.
func Scan(dir string) (LocalSet, error) {
	set := LocalSet{}

	groups, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return set, nil
	}
	if err != nil {
		return nil, err
	}

	for _, g := range groups {
		if !g.IsDir() || hidden(g.Name()) {
			continue
		}
		artifacts, err := os.ReadDir(filepath.Join(dir, g.Name()))
		if err != nil {
			return nil, err
		}
		for _, a := range artifacts {
			if !a.IsDir() || hidden(a.Name()) {
				continue
			}
			files, err := os.ReadDir(filepath.Join(dir, g.Name(), a.Name()))
			if err != nil {
				return nil, err
			}
			for _, f := range files {
				if f.IsDir() || hidden(f.Name()) {
					continue
				}
				if v, ok := versionFromFile(a.Name(), f.Name()); ok {
					set.Add(maven.Coordinate{GroupID: g.Name(), ArtifactID: a.Name(), Version: v})
				}
			}
		}
	}
	return set, nil
}

// versionFromFile extracts the version from "<artifact>-<version>.<ext>".
// Without the artifact prefix it falls back to the text after the last '-'.
func versionFromFile(artifact, name string) (string, bool) {
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	if v, ok := strings.CutPrefix(stem, artifact+"-"); ok {
		return v, v != ""
	}
	i := strings.LastIndex(stem, "-")
	if i < 0 || i == len(stem)-1 {
		return "", false
	}
	return stem[i+1:], true
}

func hidden(name string) bool { return strings.HasPrefix(name, ".") }
