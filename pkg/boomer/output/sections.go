package output

import (
	"fmt"
	"unicode/utf8"

	"github.com/marmidr/boomer/pkg/boomer/highlight"
	"github.com/marmidr/boomer/pkg/boomer/models"
)

// Section titles, followed by the entry count.
const (
	TitleBOMOnly    = "BOM parts missing in the PnP"
	TitlePnPOnly    = "PnP parts missing in the BOM"
	TitleMismatches = "BOM and PnP comment mismatch"
	TitleConflicts  = "PnP parts too close"
)

// line is one report entry; Label is padded to the widest label of its section.
type line struct {
	Label string
	Text  string
	BOM   []highlight.Span
	PnP   []highlight.Span
}

type section struct {
	Title string
	Count int
	Lines []line
}

func (s section) Header() string {
	return fmt.Sprintf("%s: %d", s.Title, s.Count)
}

func buildSections(result *models.Result) []section {
	bomOnly := section{Title: TitleBOMOnly, Count: len(result.BOMOnly)}
	for _, p := range result.BOMOnly {
		bomOnly.Lines = append(bomOnly.Lines, line{Label: p.Designator, Text: p.Comment})
	}

	pnpOnly := section{Title: TitlePnPOnly, Count: len(result.PnPOnly)}
	for _, p := range result.PnPOnly {
		pnpOnly.Lines = append(pnpOnly.Lines, line{Label: p.Designator, Text: p.Comment})
	}

	mismatches := section{Title: TitleMismatches, Count: len(result.CommentMismatches)}
	for _, m := range result.CommentMismatches {
		pair := highlight.FormatDiff(m.BOMComment, m.PnPComment, m.PnPFootprint)
		mismatches.Lines = append(mismatches.Lines, line{Label: m.Designator, BOM: pair.BOM, PnP: pair.PnP})
	}

	conflicts := section{Title: TitleConflicts, Count: len(result.ProximityConflicts)}
	for _, c := range result.ProximityConflicts {
		conflicts.Lines = append(conflicts.Lines, line{
			Label: c.DesignatorA + " <-> " + c.DesignatorB,
			Text:  fmt.Sprintf("%.2f mm", c.DistanceMM),
		})
	}

	sections := []section{bomOnly, pnpOnly, mismatches, conflicts}
	for i := range sections {
		padLabels(sections[i].Lines)
	}
	return sections
}

func padLabels(lines []line) {
	width := 0
	for _, l := range lines {
		width = max(width, utf8.RuneCountInString(l.Label))
	}
	for i := range lines {
		lines[i].Label = fmt.Sprintf("%-*s", width, lines[i].Label)
	}
}
