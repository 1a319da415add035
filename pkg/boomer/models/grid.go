// Package models defines data structures for BOM and PnP cross-checking.
package models

import (
	"fmt"
	"strings"
)

// ToEnd is the LastDataRow sentinel meaning "up to the last row of the grid".
const ToEnd = -1

// Grid is a rectangular table of text cells read from a BOM or PnP file.
// Every row has exactly ColCount cells. A Grid is read-only after construction.
type Grid struct {
	rows    [][]string
	cols    int
	sideCol int
}

// NewGrid builds a Grid from rows, padding short rows with empty cells.
// The input slices are copied.
func NewGrid(rows [][]string) *Grid {
	cols := 0
	for _, row := range rows {
		cols = max(cols, len(row))
	}

	g := &Grid{
		rows:    make([][]string, len(rows)),
		cols:    cols,
		sideCol: -1,
	}
	for i, row := range rows {
		padded := make([]string, cols)
		copy(padded, row)
		g.rows[i] = padded
	}
	return g
}

// NewSidedGrid is like NewGrid, but marks column sideCol as the synthetic
// board-side column appended when two PnP files are merged.
func NewSidedGrid(rows [][]string, sideCol int) *Grid {
	g := NewGrid(rows)
	if sideCol >= 0 && sideCol < g.cols {
		g.sideCol = sideCol
	}
	return g
}

// RowCount returns the number of rows.
func (g *Grid) RowCount() int {
	if g == nil {
		return 0
	}
	return len(g.rows)
}

// ColCount returns the number of columns.
func (g *Grid) ColCount() int {
	if g == nil {
		return 0
	}
	return g.cols
}

// Row returns row r. The returned slice must not be modified.
func (g *Grid) Row(r int) []string {
	return g.rows[r]
}

// Cell returns the cell at row r, column c.
func (g *Grid) Cell(r, c int) string {
	return g.rows[r][c]
}

// Rows returns a copy of all rows.
func (g *Grid) Rows() [][]string {
	out := make([][]string, len(g.rows))
	for i, row := range g.rows {
		out[i] = append([]string(nil), row...)
	}
	return out
}

// SideColumn reports the synthetic top/bottom column of a merged PnP grid.
func (g *Grid) SideColumn() (int, bool) {
	if g == nil || g.sideCol < 0 {
		return 0, false
	}
	return g.sideCol, true
}

// Format renders rows [firstRow, lastRow) as a column-aligned preview.
// Each line starts with the 1-based row number; lastRow may be ToEnd.
func (g *Grid) Format(firstRow, lastRow int) string {
	return g.FormatLabeled(firstRow, lastRow, nil)
}

// FormatLabeled is like Format, but when label is not nil the rows are
// preceded by a line holding label(c) above every column c.
func (g *Grid) FormatLabeled(firstRow, lastRow int, label func(col int) string) string {
	if lastRow == ToEnd || lastRow > len(g.rows) {
		lastRow = len(g.rows)
	}
	firstRow = max(firstRow, 0)
	if firstRow >= lastRow {
		return ""
	}

	widths := make([]int, g.cols)
	if label != nil {
		for c := range widths {
			widths[c] = len([]rune(label(c)))
		}
	}
	for _, row := range g.rows[firstRow:lastRow] {
		for c, cell := range row {
			widths[c] = max(widths[c], len([]rune(cell)))
		}
	}

	var b strings.Builder
	if label != nil {
		b.WriteString(strings.Repeat(" ", len(fmt.Sprintf("%03d", lastRow))) + " | ")
		for c := range widths {
			fmt.Fprintf(&b, "%-*s | ", widths[c], label(c))
		}
		b.WriteString("\n")
	}
	for r := firstRow; r < lastRow; r++ {
		fmt.Fprintf(&b, "%03d | ", r+1)
		for c, cell := range g.rows[r] {
			fmt.Fprintf(&b, "%-*s | ", widths[c], cell)
		}
		b.WriteString("\n")
	}
	return b.String()
}
