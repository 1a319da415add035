package models

// Role tells which kind of file a grid was read from.
type Role string

const (
	// RoleBOM is a bill of materials.
	RoleBOM Role = "BOM"
	// RolePnP is a pick-and-place file.
	RolePnP Role = "PnP"
)

// PartRecord holds the data extracted for one designator.
type PartRecord struct {
	// Comment is the part value or comment.
	Comment string `json:"comment"`
	// CoordX is the raw placement X text, e.g. "1520mil".
	CoordX string `json:"x,omitempty"`
	// CoordY is the raw placement Y text.
	CoordY string `json:"y,omitempty"`
	// Layer is the board side.
	Layer string `json:"layer,omitempty"`
	// Footprint is the package identifier.
	Footprint string `json:"footprint,omitempty"`
}

// PartIndex maps designators to part records and remembers the order in
// which designators were first seen.
type PartIndex struct {
	order []string
	parts map[string]PartRecord
}

// NewPartIndex returns an empty index.
func NewPartIndex() *PartIndex {
	return &PartIndex{parts: make(map[string]PartRecord)}
}

// Put stores rec under designator. An existing entry is overwritten and
// keeps its original position.
func (p *PartIndex) Put(designator string, rec PartRecord) {
	if _, ok := p.parts[designator]; !ok {
		p.order = append(p.order, designator)
	}
	p.parts[designator] = rec
}

// Get returns the record for designator.
func (p *PartIndex) Get(designator string) (PartRecord, bool) {
	rec, ok := p.parts[designator]
	return rec, ok
}

// Has reports whether designator is present.
func (p *PartIndex) Has(designator string) bool {
	_, ok := p.parts[designator]
	return ok
}

// Len returns the number of designators.
func (p *PartIndex) Len() int {
	return len(p.order)
}

// Designators returns designators in first-seen order.
func (p *PartIndex) Designators() []string {
	return append([]string(nil), p.order...)
}
