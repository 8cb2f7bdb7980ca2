package resolve

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mvnfetch/pkg/errors"
	"github.com/matzehuels/mvnfetch/pkg/maven"
)

// memSource serves documents from memory and counts every fetch.
type memSource struct {
	docs  map[string]string
	calls map[string]int
}

func newMemSource() *memSource {
	return &memSource{docs: map[string]string{}, calls: map[string]int{}}
}

func (m *memSource) FetchBytes(_ context.Context, path string) ([]byte, bool) {
	m.calls[path]++
	doc, ok := m.docs[path]
	if !ok {
		return nil, false
	}
	return []byte(doc), true
}

// addPOM registers the manifest of desc. Each dep is "g:a:v" with an
// optional "@scope" suffix.
func (m *memSource) addPOM(desc, packaging string, deps ...string) {
	c, err := maven.ParseCoordinate(desc)
	if err != nil {
		panic(err)
	}
	var b strings.Builder
	b.WriteString(`<project xmlns="http://maven.apache.org/POM/4.0.0">`)
	if packaging != "" {
		fmt.Fprintf(&b, "<packaging>%s</packaging>", packaging)
	}
	b.WriteString("<dependencies>")
	for _, d := range deps {
		scope := ""
		if i := strings.Index(d, "@"); i >= 0 {
			d, scope = d[:i], d[i+1:]
		}
		parts := strings.Split(d, ":")
		fmt.Fprintf(&b, "<dependency><groupId>%s</groupId><artifactId>%s</artifactId><version>%s</version>", parts[0], parts[1], parts[2])
		if scope != "" {
			fmt.Fprintf(&b, "<scope>%s</scope>", scope)
		}
		b.WriteString("</dependency>")
	}
	b.WriteString("</dependencies></project>")
	m.docs[c.ManifestPath()] = b.String()
}

func quietLogger() *log.Logger { return log.New(io.Discard) }

func mustParse(t *testing.T, desc string) maven.Coordinate {
	t.Helper()
	c, err := maven.ParseCoordinate(desc)
	if err != nil {
		t.Fatalf("ParseCoordinate(%q): %v", desc, err)
	}
	return c
}

func TestResolver_Resolve(t *testing.T) {
	src := newMemSource()
	src.addPOM("g:foo:1", "war", "g:bar:2", "g:junit:4@test")
	src.docs[mustParse(t, "g:broken:1").ManifestPath()] = "<project><dependencies>"

	r := NewResolver(src, quietLogger())
	ctx := context.Background()

	m, ok := r.Resolve(ctx, mustParse(t, "g:foo:1"))
	if !ok {
		t.Fatal("Resolve(foo) not ok")
	}
	if m.Packaging != "war" {
		t.Errorf("Packaging = %q, want war", m.Packaging)
	}
	if len(m.Dependencies) != 1 || m.Dependencies[0].Key() != "g:bar:2" {
		t.Errorf("Dependencies = %v, want [g:bar:2]", m.Dependencies)
	}
	if m.Excluded != 1 {
		t.Errorf("Excluded = %d, want 1", m.Excluded)
	}

	if _, ok := r.Resolve(ctx, mustParse(t, "g:missing:1")); ok {
		t.Error("Resolve(missing) ok, want absent")
	}
	if _, ok := r.Resolve(ctx, mustParse(t, "g:broken:1")); ok {
		t.Error("Resolve(broken) ok, want absent")
	}
}

const fooMetadata = `<metadata>
  <groupId>g</groupId>
  <artifactId>foo</artifactId>
  <versioning>
    <latest>2.0-SNAPSHOT</latest>
    <release>1.5</release>
    <versions><version>1.0</version><version>1.5</version><version>2.0-SNAPSHOT</version></versions>
  </versioning>
</metadata>`

func TestResolver_CompleteVersion(t *testing.T) {
	src := newMemSource()
	src.docs[mustParse(t, "g:foo").MetadataPath()] = fooMetadata
	r := NewResolver(src, quietLogger())

	failing := SelectorFunc(func(context.Context, *maven.Metadata) (string, error) {
		return "", fmt.Errorf("picker closed")
	})
	empty := SelectorFunc(func(context.Context, *maven.Metadata) (string, error) {
		return "", nil
	})

	tests := []struct {
		name     string
		desc     string
		selector VersionSelector
		want     string
		wantErr  bool
	}{
		{"explicit version", "g:foo:0.9", nil, "0.9", false},
		{"latest", "g:foo", ChoiceSelector("latest"), "2.0-SNAPSHOT", false},
		{"release", "g:foo", ChoiceSelector("release"), "1.5", false},
		{"index", "g:foo", ChoiceSelector("0"), "1.0", false},
		{"index out of range", "g:foo", ChoiceSelector("3"), "", true},
		{"unknown token", "g:foo", ChoiceSelector("newest"), "", true},
		{"no selector", "g:foo", nil, "", true},
		{"no metadata", "g:bar", ChoiceSelector("latest"), "", true},
		{"selector error", "g:foo", failing, "", true},
		{"empty selection", "g:foo", empty, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := r.CompleteVersion(context.Background(), mustParse(t, tt.desc), tt.selector)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeVersionUndetermined) {
					t.Fatalf("err = %v, want VERSION_UNDETERMINED", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("CompleteVersion: %v", err)
			}
			if c.Version != tt.want {
				t.Errorf("Version = %q, want %q", c.Version, tt.want)
			}
		})
	}
}

func TestResolver_CompleteVersion_NoFetchWhenVersioned(t *testing.T) {
	src := newMemSource()
	r := NewResolver(src, quietLogger())
	if _, err := r.CompleteVersion(context.Background(), mustParse(t, "g:foo:1"), ChoiceSelector("latest")); err != nil {
		t.Fatalf("CompleteVersion: %v", err)
	}
	if len(src.calls) != 0 {
		t.Errorf("fetched %v, want no requests", src.calls)
	}
}
