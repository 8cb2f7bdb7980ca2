// Package treeviz renders resolved dependency trees.
//
// # Text
//
// [WriteText] prints the tree with box-drawing guides, one coordinate per
// line, the way the tree command shows it:
//
//	org.example:foo:1.0
//	├── org.example:bar:2.0
//	│   └── org.example:qux:0.1
//	└── org.example:baz:1.0 (aar)
//
// # Graphviz
//
// [ToDOT] converts a tree to Graphviz DOT source. Repeated coordinates map to
// a single DOT node, so the drawing shows the dependency graph rather than
// the tree. [RenderSVG] renders DOT in-process with
// [github.com/goccy/go-graphviz]; no Graphviz installation is needed.
//
//	dot := treeviz.ToDOT(root, treeviz.Options{Detailed: true})
//	svg, err := treeviz.RenderSVG(ctx, dot)
package treeviz
