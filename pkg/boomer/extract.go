package boomer

import (
	"log/slog"
	"strings"

	"github.com/marmidr/boomer/pkg/boomer/models"
)

// column describes one mapped column during extraction.
type column struct {
	field    string
	ref      models.ColumnRef
	required bool
	index    int
}

// Extract builds a designator-keyed part index from the data rows of grid.
//
// Designator cells may hold several comma-separated designators; each one
// gets its own record sharing the row's other cells. A designator seen
// again in a later row replaces the earlier record. For a PnP grid produced
// by MergePnP the layer is read from the synthetic side column and the
// Layer mapping is ignored.
func Extract(grid *models.Grid, m models.ColumnMapping, role models.Role, opts Options) (*models.PartIndex, error) {
	if grid == nil || grid.RowCount() == 0 {
		return nil, ErrMissingInput
	}
	log := opts.logger()
	if m.FirstDataRow < 0 {
		return nil, configErrorf(role, "rows", "first row %d is negative", m.FirstDataRow)
	}

	sideCol, merged := grid.SideColumn()
	cols := []*column{
		{field: "designator", ref: m.Designator, required: true},
		{field: "comment", ref: m.Comment, required: true},
	}
	var x, y, layer, footprint *column
	if role == models.RolePnP {
		x = &column{field: "x", ref: m.CoordX, required: true}
		y = &column{field: "y", ref: m.CoordY, required: true}
		footprint = &column{field: "footprint", ref: m.Footprint}
		cols = append(cols, x, y, footprint)
		if !merged {
			layer = &column{field: "layer", ref: m.Layer}
			cols = append(cols, layer)
		}
	}

	if err := resolveColumns(grid, m, role, cols); err != nil {
		return nil, err
	}
	for _, c := range cols {
		log.Debug("column resolved",
			slog.String("role", string(role)),
			slog.String("field", c.field),
			slog.String("ref", c.ref.String()),
			slog.Int("index", c.index))
	}

	first := m.DataRowStart()
	last := grid.RowCount()
	switch {
	case m.LastDataRow == models.ToEnd:
	case m.LastDataRow < 0 || m.LastDataRow > grid.RowCount():
		return nil, configErrorf(role, "rows", "last row %d out of range, grid has %d rows", m.LastDataRow, grid.RowCount())
	default:
		last = m.LastDataRow
	}

	cell := func(r int, c *column) string {
		if c == nil || c.index < 0 {
			return ""
		}
		return grid.Cell(r, c.index)
	}

	index := models.NewPartIndex()
	for r := first; r < last; r++ {
		rec := models.PartRecord{
			Comment:   cell(r, cols[1]),
			CoordX:    cell(r, x),
			CoordY:    cell(r, y),
			Layer:     cell(r, layer),
			Footprint: cell(r, footprint),
		}
		if merged && role == models.RolePnP {
			rec.Layer = grid.Cell(r, sideCol)
		}

		for _, d := range strings.Split(cell(r, cols[0]), ",") {
			d = strings.TrimSpace(d)
			if d == "" {
				continue
			}
			index.Put(d, rec)
		}
	}

	log.Debug("parts extracted", slog.String("role", string(role)), slog.Int("parts", index.Len()))
	return index, nil
}

// resolveColumns checks every reference against m.HasColumnHeaders and
// turns it into a column index, -1 for unmapped optional columns.
func resolveColumns(grid *models.Grid, m models.ColumnMapping, role models.Role, cols []*column) error {
	want := models.ColumnIndexed
	if m.HasColumnHeaders {
		want = models.ColumnNamed
	}

	for _, c := range cols {
		c.index = -1
		if !c.ref.IsSet() {
			if c.required {
				return configErrorf(role, c.field, "column not specified")
			}
			continue
		}
		if c.ref.Kind() != want {
			if want == models.ColumnNamed {
				return configErrorf(role, c.field, "column id must be a header name, got %s", c.ref)
			}
			return configErrorf(role, c.field, "column id must be an index, got %s", c.ref)
		}
	}

	if !m.HasColumnHeaders {
		for _, c := range cols {
			if !c.ref.IsSet() {
				continue
			}
			if c.ref.Index() < 0 || c.ref.Index() >= grid.ColCount() {
				return configErrorf(role, c.field, "column %d out of range, grid has %d columns", c.ref.Index(), grid.ColCount())
			}
			c.index = c.ref.Index()
		}
		return nil
	}

	if m.FirstDataRow < 0 || m.FirstDataRow >= grid.RowCount() {
		return configErrorf(role, "rows", "header row %d out of range, grid has %d rows", m.FirstDataRow, grid.RowCount())
	}
	header := grid.Row(m.FirstDataRow)
	for _, c := range cols {
		if !c.ref.IsSet() {
			continue
		}
		for i, title := range header {
			if title == c.ref.Name() {
				c.index = i
				break
			}
		}
		if c.index < 0 {
			return configErrorf(role, c.field, "column %s not found", c.ref)
		}
	}
	return nil
}
