package repository

import (
	"testing"

	"github.com/matzehuels/mvnfetch/pkg/errors"
)

func TestNormalize(t *testing.T) {
	extra := map[string]string{
		"internal": "https://nexus.example.com/repository/public",
		"google":   "https://mirror.example.com/google/",
	}

	tests := []struct {
		token   string
		want    string
		wantErr bool
	}{
		{"mavenCentral", "https://repo1.maven.org/maven2/", false},
		{"jcenter", "https://jcenter.bintray.com/", false},
		{"internal", "https://nexus.example.com/repository/public/", false},
		{"google", "https://mirror.example.com/google/", false},
		{"https://example.com/maven", "https://example.com/maven/", false},
		{"https://example.com/maven/", "https://example.com/maven/", false},
		{"https://example.com/maven//", "https://example.com/maven/", false},
		{"central", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, err := Normalize(tt.token, extra)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Normalize(%q) error = %v, wantErr %v", tt.token, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.token, got, tt.want)
			}
		})
	}
}

func TestNewSet(t *testing.T) {
	s, err := NewSet([]string{
		"mavenCentral",
		"https://repo1.maven.org/maven2",
		"https://repo1.maven.org/maven2/",
		"google",
	}, nil)
	if err != nil {
		t.Fatalf("NewSet failed: %v", err)
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2 (%v)", s.Len(), s.Bases())
	}

	seen := map[string]bool{}
	for _, b := range s.Bases() {
		seen[b] = true
	}
	for _, want := range []string{"https://repo1.maven.org/maven2/", "https://maven.google.com/"} {
		if !seen[want] {
			t.Errorf("missing base %q in %v", want, s.Bases())
		}
	}
}

func TestNewSet_Errors(t *testing.T) {
	if _, err := NewSet(nil, nil); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("NewSet(nil) error = %v, want INVALID_INPUT", err)
	}
	if _, err := NewSet([]string{"mavenCentral", "not a url"}, nil); err == nil {
		t.Error("NewSet should reject an unknown alias")
	}
}

func TestSet_BasesIsCopy(t *testing.T) {
	s, _ := NewSet([]string{"mavenCentral"}, nil)
	b := s.Bases()
	b[0] = "mutated"
	if s.Bases()[0] == "mutated" {
		t.Error("Bases() should return a copy")
	}
}
