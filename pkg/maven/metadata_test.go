package maven

import "testing"

const metadataXML = `<?xml version="1.0" encoding="UTF-8"?>
<metadata modelVersion="1.1.0">
  <groupId>org.example</groupId>
  <artifactId>foo</artifactId>
  <versioning>
    <latest>2.0-beta</latest>
    <release>1.1</release>
    <versions>
      <version>1.0</version>
      <version>1.1</version>
      <version>2.0-beta</version>
    </versions>
    <lastUpdated>20240101000000</lastUpdated>
  </versioning>
</metadata>`

func TestParseMetadata(t *testing.T) {
	md, err := ParseMetadata([]byte(metadataXML))
	if err != nil {
		t.Fatalf("ParseMetadata failed: %v", err)
	}
	if md.GroupID != "org.example" || md.ArtifactID != "foo" {
		t.Errorf("identity = %s:%s", md.GroupID, md.ArtifactID)
	}
	if md.Latest != "2.0-beta" || md.Release != "1.1" {
		t.Errorf("latest/release = %q/%q", md.Latest, md.Release)
	}
	if len(md.Versions) != 3 || md.Versions[0] != "1.0" {
		t.Errorf("Versions = %v", md.Versions)
	}
	if md.LastUpdated != "20240101000000" {
		t.Errorf("LastUpdated = %q", md.LastUpdated)
	}
}

func TestMetadata_Choose(t *testing.T) {
	md, err := ParseMetadata([]byte(metadataXML))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		token  string
		want   string
		wantOK bool
	}{
		{"latest", "2.0-beta", true},
		{"release", "1.1", true},
		{"0", "1.0", true},
		{"2", "2.0-beta", true},
		{"3", "", false},
		{"-1", "", false},
		{"newest", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, ok := md.Choose(tt.token)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Choose(%q) = %q, %v; want %q, %v", tt.token, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestMetadata_ChooseMissingLatest(t *testing.T) {
	md := &Metadata{Versions: []string{"1.0"}}
	if _, ok := md.Choose("latest"); ok {
		t.Error("Choose(latest) should fail without <latest>")
	}
}
