package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/marmidr/boomer/pkg/boomer/highlight"
	"github.com/marmidr/boomer/pkg/boomer/models"
)

type render func(string) string

func plain(s string) string { return s }

func styled(st lipgloss.Style) render {
	return func(s string) string { return st.Render(s) }
}

type textStyles struct {
	title   render
	header  render
	label   render
	classes map[highlight.Class]render
}

func newTextStyles(w io.Writer, color bool) textStyles {
	if !color {
		return textStyles{title: plain, header: plain, label: plain}
	}

	r := lipgloss.NewRenderer(w)
	return textStyles{
		title:  styled(r.NewStyle().Bold(true).Foreground(lipgloss.Color("#2F4F4F"))),
		header: styled(r.NewStyle().Bold(true).Foreground(lipgloss.Color("245"))),
		label:  styled(r.NewStyle().Foreground(lipgloss.Color("#20B9B4"))),
		classes: map[highlight.Class]render{
			highlight.ClassBOMOnly: styled(r.NewStyle().Foreground(lipgloss.Color("#E74C3C"))),
			highlight.ClassChanged: styled(r.NewStyle().Bold(true).Foreground(lipgloss.Color("#F4D03F"))),
		},
	}
}

func (s textStyles) spans(spans []highlight.Span) string {
	var b strings.Builder
	for _, sp := range spans {
		if style, ok := s.classes[sp.Class]; ok {
			b.WriteString(style(sp.Text))
		} else {
			b.WriteString(sp.Text)
		}
	}
	return b.String()
}

// WriteText writes result as a plain-text report. With color, highlight
// classes and headers are styled with ANSI colors.
func WriteText(w io.Writer, project string, result *models.Result, color bool) error {
	st := newTextStyles(w, color)

	var b strings.Builder
	b.WriteString(st.title("Cross-check report for: " + project))
	b.WriteString("\n")
	for _, sec := range buildSections(result) {
		b.WriteString("\n")
		b.WriteString(st.header(sec.Header()))
		b.WriteString("\n")
		for _, l := range sec.Lines {
			b.WriteString("  ")
			b.WriteString(st.label(l.Label))
			if l.BOM != nil || l.PnP != nil {
				fmt.Fprintf(&b, ": BOM='%s', PnP='%s'\n", st.spans(l.BOM), st.spans(l.PnP))
			} else {
				fmt.Fprintf(&b, ": %s\n", l.Text)
			}
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
