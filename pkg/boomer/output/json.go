// Package output renders cross-check results as JSON, HTML or terminal text.
package output

import (
	"encoding/json"

	"github.com/marmidr/boomer/pkg/boomer/highlight"
	"github.com/marmidr/boomer/pkg/boomer/models"
)

// Report is the JSON document written for a cross-check.
type Report struct {
	Project string `json:"project,omitempty"`
	*models.Result
	// Highlights holds the annotated comments of each mismatch, in the same order.
	Highlights []MismatchHighlight `json:"highlights,omitempty"`
}

// MismatchHighlight is the annotated form of one comment mismatch.
type MismatchHighlight struct {
	Designator string           `json:"designator"`
	BOM        []highlight.Span `json:"bom"`
	PnP        []highlight.Span `json:"pnp"`
}

// NewReport builds a Report, annotating every comment mismatch.
func NewReport(project string, result *models.Result) Report {
	rep := Report{Project: project, Result: result}
	for _, m := range result.CommentMismatches {
		pair := highlight.FormatDiff(m.BOMComment, m.PnPComment, m.PnPFootprint)
		rep.Highlights = append(rep.Highlights, MismatchHighlight{
			Designator: m.Designator,
			BOM:        pair.BOM,
			PnP:        pair.PnP,
		})
	}
	return rep
}

// ToJSON serializes a cross-check result.
func ToJSON(project string, result *models.Result, pretty bool) ([]byte, error) {
	rep := NewReport(project, result)
	if pretty {
		return json.MarshalIndent(rep, "", "  ")
	}
	return json.Marshal(rep)
}
