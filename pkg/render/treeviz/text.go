package treeviz

import (
	"bufio"
	"io"

	"github.com/matzehuels/mvnfetch/pkg/maven"
	"github.com/matzehuels/mvnfetch/pkg/resolve"
)

// WriteText prints root as an indented tree. Non-jar packaging is shown in
// parentheses.
func WriteText(w io.Writer, root *resolve.Node) error {
	bw := bufio.NewWriter(w)
	if root != nil {
		bw.WriteString(line(root.Coordinate))
		bw.WriteByte('\n')
		writeChildren(bw, root.Children, "")
	}
	return bw.Flush()
}

func writeChildren(w *bufio.Writer, children []*resolve.Node, prefix string) {
	for i, c := range children {
		branch, indent := "├── ", "│   "
		if i == len(children)-1 {
			branch, indent = "└── ", "    "
		}
		w.WriteString(prefix + branch + line(c.Coordinate))
		w.WriteByte('\n')
		writeChildren(w, c.Children, prefix+indent)
	}
}

func line(c maven.Coordinate) string {
	if p := c.PackagingOrDefault(); p != maven.DefaultPackaging {
		return c.Key() + " (" + p + ")"
	}
	return c.Key()
}
