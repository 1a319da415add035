package boomer

import (
	"fmt"

	"github.com/marmidr/boomer/pkg/boomer/models"
)

// Board side values written to the synthetic column of a merged PnP grid.
const (
	SideTop    = "top"
	SideBottom = "bottom"
)

// MergePnP joins the PnP grids of the two board sides into one grid with a
// trailing side column. The first skipBottomRows rows of bottom (its own
// header block) are dropped. Both grids must have the same column count.
func MergePnP(top, bottom *models.Grid, skipBottomRows int) (*models.Grid, error) {
	if top == nil || bottom == nil {
		return nil, fmt.Errorf("merge PnP: %w", ErrMissingInput)
	}
	if top.ColCount() != bottom.ColCount() {
		return nil, configErrorf(models.RolePnP, "columns",
			"PnP has %d columns, but PnP2 has %d columns", top.ColCount(), bottom.ColCount())
	}

	skipBottomRows = min(max(skipBottomRows, 0), bottom.RowCount())
	sideCol := top.ColCount()
	rows := top.Rows()
	for i := range rows {
		rows[i] = append(rows[i], SideTop)
	}
	for _, row := range bottom.Rows()[skipBottomRows:] {
		rows = append(rows, append(row, SideBottom))
	}

	return models.NewSidedGrid(rows, sideCol), nil
}
