package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/matzehuels/mvnfetch/pkg/errors"
	"github.com/matzehuels/mvnfetch/pkg/maven"
	"github.com/matzehuels/mvnfetch/pkg/resolve"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// Selector Factory
// =============================================================================

// selectorFor returns the version selector for a command. A --choice token
// wins; otherwise an interactive picker is used when stdin and stderr are
// terminals.
func selectorFor(choice string) resolve.VersionSelector {
	if choice != "" {
		return resolve.ChoiceSelector(choice)
	}
	if isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stderr.Fd()) {
		return pickerSelector{in: os.Stdin, out: os.Stderr}
	}
	return resolve.SelectorFunc(func(context.Context, *maven.Metadata) (string, error) {
		return "", errors.New(errors.ErrCodeVersionUndetermined,
			"no version given and no terminal for the picker; pass --choice latest|release|<index>")
	})
}

// pickerSelector asks the operator with a bubbletea list.
type pickerSelector struct {
	in  io.Reader
	out io.Writer
}

// SelectVersion runs the picker until a version is chosen or it is closed.
func (p pickerSelector) SelectVersion(ctx context.Context, md *maven.Metadata) (string, error) {
	model := newVersionPicker(md)
	if len(model.options) == 0 {
		return "", errors.New(errors.ErrCodeVersionUndetermined, "%s:%s lists no versions", md.GroupID, md.ArtifactID)
	}

	final, err := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(p.in),
		tea.WithOutput(p.out),
	).Run()
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", err
	}

	picked := final.(versionPicker)
	if picked.selected == "" {
		return "", errors.New(errors.ErrCodeVersionUndetermined, "no version selected")
	}
	v, ok := md.Choose(picked.selected)
	if !ok {
		return "", errors.New(errors.ErrCodeVersionUndetermined, "choice %q does not designate a version", picked.selected)
	}
	return v, nil
}

// =============================================================================
// versionPicker - Interactive version selection
// =============================================================================

// versionOption is one selectable row; token is what the operator would
// pass as --choice.
type versionOption struct {
	token string
	label string
}

// versionPicker is the bubbletea model for interactive version selection.
type versionPicker struct {
	title    string
	options  []versionOption
	cursor   int
	offset   int
	height   int
	selected string
}

// newVersionPicker lists latest and release first, then every version
// newest first.
func newVersionPicker(md *maven.Metadata) versionPicker {
	m := versionPicker{
		title:  fmt.Sprintf("Select a version of %s:%s", md.GroupID, md.ArtifactID),
		height: 15,
	}
	if md.Latest != "" {
		m.options = append(m.options, versionOption{"latest", fmt.Sprintf("%-8s %s", "latest", md.Latest)})
	}
	if md.Release != "" {
		m.options = append(m.options, versionOption{"release", fmt.Sprintf("%-8s %s", "release", md.Release)})
	}
	for i := len(md.Versions) - 1; i >= 0; i-- {
		token := strconv.Itoa(i)
		m.options = append(m.options, versionOption{token, fmt.Sprintf("%-8s %s", "["+token+"]", md.Versions[i])})
	}
	return m
}

func (m versionPicker) Init() tea.Cmd {
	return nil
}

func (m versionPicker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.options)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case "enter":
			m.selected = m.options[m.cursor].token
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-6, 5)
	}
	return m, nil
}

func (m versionPicker) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.offset+m.height, len(m.options))
	for i := m.offset; i < end; i++ {
		if i == m.cursor {
			b.WriteString(listSelectedStyle.Render("▸ " + m.options[i].label))
		} else {
			b.WriteString(listNormalStyle.Render("  " + m.options[i].label))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.options))))
	b.WriteString("\n")
	return b.String()
}
