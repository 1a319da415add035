package boomer

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/marmidr/boomer/pkg/boomer/models"
)

// UnknownComment stands in for an empty BOM comment in BOMOnly entries.
const UnknownComment = "?"

// Input is one grid with the mapping that locates its part data.
type Input struct {
	Grid    *models.Grid
	Mapping models.ColumnMapping
}

// CrossCheck extracts both files and compares them.
// It returns ErrMissingInput if either grid is absent or empty, and a
// *ConfigurationError if a mapping does not fit its grid.
func CrossCheck(bom, pnp Input, opts Options) (*models.Result, error) {
	if bom.Grid == nil || bom.Grid.RowCount() == 0 {
		return nil, fmt.Errorf("BOM: %w", ErrMissingInput)
	}
	if pnp.Grid == nil || pnp.Grid.RowCount() == 0 {
		return nil, fmt.Errorf("PnP: %w", ErrMissingInput)
	}

	bomParts, err := Extract(bom.Grid, bom.Mapping, models.RoleBOM, opts)
	if err != nil {
		return nil, err
	}
	pnpParts, err := Extract(pnp.Grid, pnp.Mapping, models.RolePnP, opts)
	if err != nil {
		return nil, err
	}
	return Compare(bomParts, pnpParts, opts)
}

// Compare finds the differences between BOM and PnP part indices.
// Every list of the result is sorted naturally.
func Compare(bom, pnp *models.PartIndex, opts Options) (*models.Result, error) {
	if bom == nil {
		return nil, fmt.Errorf("BOM: %w", ErrMissingInput)
	}
	if pnp == nil {
		return nil, fmt.Errorf("PnP: %w", ErrMissingInput)
	}

	result := &models.Result{
		BOMOnly:            []models.PartRef{},
		PnPOnly:            []models.PartRef{},
		CommentMismatches:  []models.CommentMismatch{},
		ProximityConflicts: []models.ProximityConflict{},
	}

	for _, d := range bom.Designators() {
		b, _ := bom.Get(d)
		p, ok := pnp.Get(d)
		if !ok {
			comment := b.Comment
			if comment == "" {
				comment = UnknownComment
			}
			result.BOMOnly = append(result.BOMOnly, models.PartRef{Designator: d, Comment: comment})
			continue
		}
		if b.Comment != p.Comment {
			result.CommentMismatches = append(result.CommentMismatches, models.CommentMismatch{
				Designator:   d,
				BOMComment:   b.Comment,
				PnPComment:   p.Comment,
				PnPFootprint: p.Footprint,
			})
		}
	}

	for _, d := range pnp.Designators() {
		if bom.Has(d) {
			continue
		}
		p, _ := pnp.Get(d)
		result.PnPOnly = append(result.PnPOnly, models.PartRef{Designator: d, Comment: p.Comment})
	}

	slices.SortStableFunc(result.BOMOnly, comparePartRefs)
	slices.SortStableFunc(result.PnPOnly, comparePartRefs)
	slices.SortStableFunc(result.CommentMismatches, compareMismatches)

	if conflicts := FindConflicts(pnp, opts); conflicts != nil {
		result.ProximityConflicts = conflicts
	}

	opts.logger().Info("cross-check done",
		slog.Int("bom_parts", bom.Len()),
		slog.Int("pnp_parts", pnp.Len()),
		slog.Int("bom_only", len(result.BOMOnly)),
		slog.Int("pnp_only", len(result.PnPOnly)),
		slog.Int("comment_mismatches", len(result.CommentMismatches)),
		slog.Int("proximity_conflicts", len(result.ProximityConflicts)))
	return result, nil
}
