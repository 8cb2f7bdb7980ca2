package maven

import "strconv"

// Metadata is the content of maven-metadata.xml for a group/artifact.
type Metadata struct {
	GroupID     string
	ArtifactID  string
	Latest      string   // <versioning><latest>, may be empty
	Release     string   // <versioning><release>, may be empty
	Versions    []string // <versioning><versions>, in document order
	LastUpdated string
}

// ParseMetadata parses a maven-metadata.xml document.
func ParseMetadata(data []byte) (*Metadata, error) {
	doc, err := ParseDocument(data)
	if err != nil {
		return nil, err
	}
	root := doc.Root()

	md := &Metadata{}
	md.GroupID, _ = root.ChildText("groupId")
	md.ArtifactID, _ = root.ChildText("artifactId")

	versioning, ok := root.Find("versioning")
	if !ok {
		return md, nil
	}
	md.Latest, _ = versioning.ChildText("latest")
	md.Release, _ = versioning.ChildText("release")
	md.LastUpdated, _ = versioning.ChildText("lastUpdated")
	if versions, ok := versioning.Find("versions"); ok {
		for _, v := range versions.FindAll("version") {
			if text := v.Text(); text != "" {
				md.Versions = append(md.Versions, text)
			}
		}
	}
	return md, nil
}

// Choose maps a choice token to a version: "latest", "release", or a
// zero-based index into Versions. ok is false when the token does not
// designate a version.
func (m *Metadata) Choose(token string) (version string, ok bool) {
	switch token {
	case "latest":
		return m.Latest, m.Latest != ""
	case "release":
		return m.Release, m.Release != ""
	}
	i, err := strconv.Atoi(token)
	if err != nil || i < 0 || i >= len(m.Versions) {
		return "", false
	}
	return m.Versions[i], true
}
