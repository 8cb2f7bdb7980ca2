package download

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mvnfetch/pkg/maven"
	"github.com/matzehuels/mvnfetch/pkg/observability"
	"github.com/matzehuels/mvnfetch/pkg/resolve"
)

// memFiles serves artifact bodies from memory and records requests.
type memFiles struct {
	files     map[string]string
	requested []string
}

func (m *memFiles) FetchFile(_ context.Context, path, dest string) bool {
	m.requested = append(m.requested, path)
	body, ok := m.files[path]
	if !ok {
		return false
	}
	return os.WriteFile(dest, []byte(body), 0o644) == nil
}

func quietLogger() *log.Logger { return log.New(io.Discard) }

func node(group, artifact, version, packaging string, children ...*resolve.Node) *resolve.Node {
	c := maven.NewCoordinate(group, artifact, version)
	if packaging != "" {
		c.Packaging = packaging
	}
	return &resolve.Node{Coordinate: c, Children: children}
}

func TestFetcher_Download(t *testing.T) {
	dir := t.TempDir()
	src := &memFiles{files: map[string]string{
		"org/example/foo/1.0/foo-1.0.jar": "foo",
		"org/example/bar/2.0/bar-2.0.aar": "bar",
		"org/example/qux/0.1/qux-0.1.jar": "qux",
	}}
	tree := node("org.example", "foo", "1.0", "",
		node("org.example", "bar", "2.0", "aar",
			node("org.example", "qux", "0.1", "")),
		node("org.example", "gone", "1.0", ""),
	)
	counter := &observability.Counter{}

	f := NewFetcher(src, dir, nil, Options{Logger: quietLogger(), Hooks: counter})
	r := f.Download(context.Background(), tree)

	wantReq := []string{
		"org/example/foo/1.0/foo-1.0.jar",
		"org/example/bar/2.0/bar-2.0.aar",
		"org/example/qux/0.1/qux-0.1.jar",
		"org/example/gone/1.0/gone-1.0.jar",
	}
	if !reflect.DeepEqual(src.requested, wantReq) {
		t.Errorf("requested = %v, want %v", src.requested, wantReq)
	}

	data, err := os.ReadFile(filepath.Join(dir, "org.example", "bar", "bar-2.0.aar"))
	if err != nil || string(data) != "bar" {
		t.Errorf("bar artifact = %q, %v", data, err)
	}
	if _, err := os.Stat(filepath.Join(dir, "org.example", "gone", "gone-1.0.jar")); !os.IsNotExist(err) {
		t.Errorf("gone artifact exists: %v", err)
	}

	wantDown := []string{"org.example:foo:1.0", "org.example:bar:2.0", "org.example:qux:0.1"}
	if got := r.DownloadedCoordinates(); !reflect.DeepEqual(got, wantDown) {
		t.Errorf("Downloaded = %v, want %v", got, wantDown)
	}
	if !reflect.DeepEqual(r.Failed, []string{"org.example:gone:1.0"}) {
		t.Errorf("Failed = %v", r.Failed)
	}
	if r.OK() {
		t.Error("OK() = true with a failure")
	}
	if r.Root != "org.example:foo:1.0" {
		t.Errorf("Root = %q", r.Root)
	}
	if s := counter.Snapshot(); s.Downloaded != 3 || s.Failed != 1 {
		t.Errorf("hooks = %+v, want 3 downloaded, 1 failed", s)
	}
}

func TestFetcher_LocalHitStillTraversesChildren(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "org.example", "foo", "foo-1.0.jar"))
	local, err := Scan(dir)
	if err != nil {
		t.Fatal(err)
	}

	src := &memFiles{files: map[string]string{
		"org/example/bar/2.0/bar-2.0.jar": "bar",
	}}
	tree := node("org.example", "foo", "1.0", "", node("org.example", "bar", "2.0", ""))

	r := NewFetcher(src, dir, local, Options{Logger: quietLogger()}).Download(context.Background(), tree)

	if !reflect.DeepEqual(src.requested, []string{"org/example/bar/2.0/bar-2.0.jar"}) {
		t.Errorf("requested = %v", src.requested)
	}
	if !reflect.DeepEqual(r.Skipped, []string{"org.example:foo:1.0"}) {
		t.Errorf("Skipped = %v", r.Skipped)
	}
	if !r.OK() {
		t.Errorf("OK() = false, Failed = %v", r.Failed)
	}
	if r.Unique() != 2 {
		t.Errorf("Unique() = %d, want 2", r.Unique())
	}
}

func TestFetcher_Cancelled(t *testing.T) {
	src := &memFiles{files: map[string]string{}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewFetcher(src, t.TempDir(), nil, Options{Logger: quietLogger()}).
		Download(ctx, node("g", "a", "1", "", node("g", "b", "1", "")))

	if r.Err() == nil {
		t.Error("Err() = nil, want context error")
	}
	if len(src.requested) != 0 {
		t.Errorf("requested = %v, want none", src.requested)
	}
}

func TestReport_JSON(t *testing.T) {
	r := NewFetcher(&memFiles{files: map[string]string{"g/a/1/a-1.jar": "a"}}, t.TempDir(), nil, Options{Logger: quietLogger()}).
		Download(context.Background(), node("g", "a", "1", ""))

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded["run_id"] != r.RunID.String() {
		t.Errorf("run_id = %v, want %s", decoded["run_id"], r.RunID)
	}
	if decoded["root"] != "g:a:1" {
		t.Errorf("root = %v", decoded["root"])
	}
}
