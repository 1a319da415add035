package models

import "strconv"

// ColumnKind tells how a ColumnRef identifies its column.
type ColumnKind int

const (
	// ColumnUnset marks an unmapped column.
	ColumnUnset ColumnKind = iota
	// ColumnNamed identifies a column by its header title.
	ColumnNamed
	// ColumnIndexed identifies a column by its 0-based position.
	ColumnIndexed
)

// ColumnRef identifies a grid column either by header name or by index.
// The zero value is an unmapped column.
type ColumnRef struct {
	kind  ColumnKind
	name  string
	index int
}

// NamedColumn returns a reference to the column titled name.
func NamedColumn(name string) ColumnRef {
	return ColumnRef{kind: ColumnNamed, name: name}
}

// IndexedColumn returns a reference to the 0-based column i.
func IndexedColumn(i int) ColumnRef {
	return ColumnRef{kind: ColumnIndexed, index: i}
}

// Kind returns the reference kind.
func (c ColumnRef) Kind() ColumnKind { return c.kind }

// IsSet reports whether the column is mapped.
func (c ColumnRef) IsSet() bool { return c.kind != ColumnUnset }

// Name returns the header title of a named reference.
func (c ColumnRef) Name() string { return c.name }

// Index returns the position of an indexed reference.
func (c ColumnRef) Index() int { return c.index }

func (c ColumnRef) String() string {
	switch c.kind {
	case ColumnNamed:
		return strconv.Quote(c.name)
	case ColumnIndexed:
		return "#" + strconv.Itoa(c.index)
	default:
		return "?"
	}
}

// ColumnMapping describes where the part data lives in one grid.
type ColumnMapping struct {
	// HasColumnHeaders selects named (true) or indexed (false) column references.
	HasColumnHeaders bool
	// Designator is the part designator column; cells may list several designators separated by commas.
	Designator ColumnRef
	// Comment is the part value/comment column.
	Comment ColumnRef
	// CoordX is the placement X column (PnP only).
	CoordX ColumnRef
	// CoordY is the placement Y column (PnP only).
	CoordY ColumnRef
	// Layer is the board side column (PnP only, optional).
	Layer ColumnRef
	// Footprint is the package column (PnP only, optional).
	Footprint ColumnRef
	// FirstDataRow is the 0-based first row; with headers this is the header row itself.
	FirstDataRow int
	// LastDataRow is the exclusive end row, or ToEnd.
	LastDataRow int
}

// DataRowStart returns the index of the first row holding part data.
func (m ColumnMapping) DataRowStart() int {
	if m.HasColumnHeaders {
		return m.FirstDataRow + 1
	}
	return m.FirstDataRow
}
