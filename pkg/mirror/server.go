package mirror

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/samber/lo"

	"github.com/matzehuels/mvnfetch/pkg/download"
	"github.com/matzehuels/mvnfetch/pkg/errors"
	"github.com/matzehuels/mvnfetch/pkg/maven"
)

const metadataFile = "maven-metadata.xml"

// Server is an http.Handler over an output directory.
type Server struct {
	dir    string
	logger *log.Logger
	router chi.Router
}

// NewServer creates a Server for dir.
func NewServer(dir string, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{dir: dir, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	r.Get("/", s.handleIndex)
	r.Get("/*", s.handlePath)
	r.Head("/*", s.handlePath)
	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("serving repository", "dir", s.dir, "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start))
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	local, err := download.Scan(s.dir)
	if err != nil {
		s.logger.Error("scan failed", "dir", s.dir, "err", err)
		http.Error(w, "scan failed", http.StatusInternalServerError)
		return
	}
	keys := lo.Keys(local)
	sort.Strings(keys)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	for _, k := range keys {
		fmt.Fprintln(w, k)
	}
}

func (s *Server) handlePath(w http.ResponseWriter, r *http.Request) {
	segs := strings.Split(strings.Trim(chi.URLParam(r, "*"), "/"), "/")
	n := len(segs)

	switch {
	case n >= 3 && segs[n-1] == metadataFile:
		group := strings.Join(segs[:n-2], ".")
		s.serveMetadata(w, r, group, segs[n-2])
	case n >= 4:
		group := strings.Join(segs[:n-3], ".")
		s.serveArtifact(w, r, maven.NewCoordinate(group, segs[n-3], segs[n-2]), segs[n-1])
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) serveArtifact(w http.ResponseWriter, r *http.Request, c maven.Coordinate, file string) {
	if c.Validate() != nil || errors.ValidateCoordinatePart("file", file) != nil {
		http.NotFound(w, r)
		return
	}
	stem := c.ArtifactID + "-" + c.Version + "."
	ext, ok := strings.CutPrefix(file, stem)
	if !ok || ext == "" {
		http.NotFound(w, r)
		return
	}

	path := filepath.Join(s.dir, c.GroupID, c.ArtifactID, file)
	f, err := os.Open(path)
	if err == nil {
		defer f.Close()
		info, err := f.Stat()
		if err != nil || !info.Mode().IsRegular() {
			http.NotFound(w, r)
			return
		}
		http.ServeContent(w, r, file, info.ModTime(), f)
		return
	}

	if ext == "pom" {
		if packaging, ok := s.packagingOf(c); ok {
			c.Packaging = packaging
			w.Header().Set("Content-Type", "application/xml")
			io.WriteString(w, generatedPOM(c))
			return
		}
	}
	http.NotFound(w, r)
}

// packagingOf returns the extension of the first stored artifact of c.
func (s *Server) packagingOf(c maven.Coordinate) (string, bool) {
	entries, err := os.ReadDir(filepath.Join(s.dir, c.GroupID, c.ArtifactID))
	if err != nil {
		return "", false
	}
	stem := c.ArtifactID + "-" + c.Version + "."
	for _, e := range entries {
		if ext, ok := strings.CutPrefix(e.Name(), stem); ok && ext != "" && !e.IsDir() {
			return ext, true
		}
	}
	return "", false
}

func generatedPOM(c maven.Coordinate) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<project xmlns="http://maven.apache.org/POM/4.0.0">
  <modelVersion>4.0.0</modelVersion>
  <groupId>%s</groupId>
  <artifactId>%s</artifactId>
  <version>%s</version>
  <packaging>%s</packaging>
</project>
`, c.GroupID, c.ArtifactID, c.Version, c.Packaging)
}

type metadataDoc struct {
	XMLName    xml.Name `xml:"metadata"`
	GroupID    string   `xml:"groupId"`
	ArtifactID string   `xml:"artifactId"`
	Versioning struct {
		Latest      string   `xml:"latest,omitempty"`
		Release     string   `xml:"release,omitempty"`
		Versions    []string `xml:"versions>version"`
		LastUpdated string   `xml:"lastUpdated"`
	} `xml:"versioning"`
}

func (s *Server) serveMetadata(w http.ResponseWriter, r *http.Request, group, artifact string) {
	if errors.ValidateCoordinatePart("groupId", group) != nil || errors.ValidateCoordinatePart("artifactId", artifact) != nil {
		http.NotFound(w, r)
		return
	}
	local, err := download.Scan(s.dir)
	if err != nil {
		s.logger.Error("scan failed", "dir", s.dir, "err", err)
		http.Error(w, "scan failed", http.StatusInternalServerError)
		return
	}

	var versions []string
	for _, c := range local {
		if c.GroupID == group && c.ArtifactID == artifact {
			versions = append(versions, c.Version)
		}
	}
	if len(versions) == 0 {
		http.NotFound(w, r)
		return
	}
	slices.SortFunc(versions, compareVersions)

	doc := metadataDoc{GroupID: group, ArtifactID: artifact}
	doc.Versioning.Versions = versions
	doc.Versioning.Latest = versions[len(versions)-1]
	if release, _, ok := lo.FindLastIndexOf(versions, func(v string) bool { return !isSnapshot(v) }); ok {
		doc.Versioning.Release = release
	}
	doc.Versioning.LastUpdated = time.Now().UTC().Format("20060102150405")

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/xml")
	io.WriteString(w, xml.Header)
	w.Write(out)
	io.WriteString(w, "\n")
}
