package treeviz

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/mvnfetch/pkg/maven"
	"github.com/matzehuels/mvnfetch/pkg/resolve"
)

// Options configures diagram generation.
type Options struct {
	// Detailed adds the packaging to node labels.
	Detailed bool
}

// ToDOT converts a tree to Graphviz DOT. Nodes are keyed by coordinate;
// duplicate edges are written once. The root is drawn bold.
func ToDOT(root *resolve.Node, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	if root == nil {
		buf.WriteString("}\n")
		return buf.String()
	}

	nodes := map[string]bool{}
	var edges []string
	seenEdge := map[string]bool{}

	root.Walk(func(n *resolve.Node, depth int) bool {
		key := n.Coordinate.Key()
		if !nodes[key] {
			nodes[key] = true
			attrs := []string{fmt.Sprintf("label=%q", label(n.Coordinate, opts.Detailed))}
			if depth == 0 {
				attrs = append(attrs, "penwidth=2", "fontname=\"bold\"")
			}
			fmt.Fprintf(&buf, "  %q [%s];\n", key, strings.Join(attrs, ", "))
		}
		for _, c := range n.Children {
			e := fmt.Sprintf("  %q -> %q;\n", key, c.Coordinate.Key())
			if !seenEdge[e] {
				seenEdge[e] = true
				edges = append(edges, e)
			}
		}
		return true
	})

	buf.WriteString("\n")
	for _, e := range edges {
		buf.WriteString(e)
	}
	buf.WriteString("}\n")
	return buf.String()
}

func label(c maven.Coordinate, detailed bool) string {
	l := c.GroupID + "\n" + c.ArtifactID + " " + c.Version
	if detailed {
		l += "\n" + c.PackagingOrDefault()
	}
	return l
}

// RenderSVG renders DOT source to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based svg header with one that
// scales to its container.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}
