package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/marmidr/boomer/pkg/boomer/models"
	"github.com/marmidr/boomer/pkg/boomer/parser"
)

// ErrUnspecifiedColumns indicates required profile columns left as "?".
var ErrUnspecifiedColumns = errors.New("columns are unspecified")

// Unspecified marks a column that has not been chosen yet.
const Unspecified = "?"

// Column is a column identifier as written in the config file: a header
// title, or for files without headers a 0-based index or an Excel column
// letter.
type Column string

// UnmarshalYAML accepts any scalar, so that indices may be written unquoted.
func (c *Column) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: column must be a scalar", node.Line)
	}
	*c = Column(node.Value)
	return nil
}

// IsSpecified reports whether the column has been chosen.
func (c Column) IsSpecified() bool {
	s := strings.TrimSpace(string(c))
	return s != "" && s != Unspecified
}

// Ref converts the column to a typed reference.
func (c Column) Ref(hasHeaders bool) (models.ColumnRef, error) {
	if !c.IsSpecified() {
		return models.ColumnRef{}, nil
	}
	s := strings.TrimSpace(string(c))
	if hasHeaders {
		return models.NamedColumn(s), nil
	}

	if i, err := strconv.Atoi(s); err == nil {
		return models.IndexedColumn(i), nil
	}
	i, err := parser.ColumnIndex(s)
	if err != nil {
		return models.ColumnRef{}, fmt.Errorf("column %q is neither an index nor a column letter: %w", s, err)
	}
	return models.IndexedColumn(i), nil
}

// FileSettings describes the layout shared by BOM and PnP files.
type FileSettings struct {
	HasColumnHeaders *bool  `yaml:"has_column_headers,omitempty"`
	FirstRow         int    `yaml:"first_row" validate:"gte=0"`
	Separator        string `yaml:"separator,omitempty" validate:"omitempty,oneof=COMMA SEMICOLON TAB SPACES"`
	Designator       Column `yaml:"designator"`
	Comment          Column `yaml:"comment"`
}

// HasHeaders reports whether the file has a header row; true by default.
func (f FileSettings) HasHeaders() bool {
	return f.HasColumnHeaders == nil || *f.HasColumnHeaders
}

// CSVSeparator returns the configured separator, COMMA by default.
func (f FileSettings) CSVSeparator() (parser.Separator, error) {
	if f.Separator == "" {
		return parser.SeparatorComma, nil
	}
	return parser.ParseSeparator(f.Separator)
}

func (f FileSettings) mapping() (models.ColumnMapping, error) {
	m := models.ColumnMapping{
		HasColumnHeaders: f.HasHeaders(),
		FirstDataRow:     f.FirstRow,
		LastDataRow:      models.ToEnd,
	}
	var err error
	if m.Designator, err = f.Designator.Ref(m.HasColumnHeaders); err != nil {
		return m, fmt.Errorf("designator: %w", err)
	}
	if m.Comment, err = f.Comment.Ref(m.HasColumnHeaders); err != nil {
		return m, fmt.Errorf("comment: %w", err)
	}
	return m, nil
}

// PnPSettings adds placement columns to FileSettings.
type PnPSettings struct {
	FileSettings  `yaml:",inline"`
	CoordX        Column `yaml:"coord_x"`
	CoordY        Column `yaml:"coord_y"`
	Layer         Column `yaml:"layer,omitempty"`
	Footprint     Column `yaml:"footprint,omitempty"`
	CoordUnitMils *bool  `yaml:"coord_unit_mils,omitempty"`
}

// UnitIsMils reports whether coordinates are in mils; true by default.
func (p PnPSettings) UnitIsMils() bool {
	return p.CoordUnitMils == nil || *p.CoordUnitMils
}

// Profile is a named pair of BOM and PnP layouts.
type Profile struct {
	BOM FileSettings `yaml:"bom"`
	PnP PnPSettings  `yaml:"pnp"`
}

// NewProfile returns a profile with every column unspecified.
func NewProfile() *Profile {
	return &Profile{
		BOM: FileSettings{Designator: Unspecified, Comment: Unspecified},
		PnP: PnPSettings{
			FileSettings: FileSettings{Designator: Unspecified, Comment: Unspecified},
			CoordX:       Unspecified,
			CoordY:       Unspecified,
			Layer:        Unspecified,
		},
	}
}

// CheckBOMColumns reports unspecified BOM columns.
func (p *Profile) CheckBOMColumns() error {
	return unspecified("BOM", map[string]Column{
		"Designator": p.BOM.Designator,
		"Comment":    p.BOM.Comment,
	}, []string{"Designator", "Comment"})
}

// CheckPnPColumns reports unspecified PnP columns. Layer is not required
// when the board sides come from two separate files.
func (p *Profile) CheckPnPColumns(twoFiles bool) error {
	order := []string{"Designator", "Comment", "X", "Y"}
	cols := map[string]Column{
		"Designator": p.PnP.Designator,
		"Comment":    p.PnP.Comment,
		"X":          p.PnP.CoordX,
		"Y":          p.PnP.CoordY,
	}
	if !twoFiles {
		order = append(order, "Layer")
		cols["Layer"] = p.PnP.Layer
	}
	return unspecified("PnP", cols, order)
}

func unspecified(role string, cols map[string]Column, order []string) error {
	var missing []string
	for _, name := range order {
		if !cols[name].IsSpecified() {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("%s %w: %s", role, ErrUnspecifiedColumns, strings.Join(missing, ", "))
}

// BOMMapping returns the BOM column mapping.
func (p *Profile) BOMMapping() (models.ColumnMapping, error) {
	m, err := p.BOM.mapping()
	if err != nil {
		return m, fmt.Errorf("BOM %w", err)
	}
	return m, nil
}

// PnPMapping returns the PnP column mapping.
func (p *Profile) PnPMapping() (models.ColumnMapping, error) {
	m, err := p.PnP.mapping()
	if err != nil {
		return m, fmt.Errorf("PnP %w", err)
	}

	for _, c := range []struct {
		name string
		col  Column
		ref  *models.ColumnRef
	}{
		{"x", p.PnP.CoordX, &m.CoordX},
		{"y", p.PnP.CoordY, &m.CoordY},
		{"layer", p.PnP.Layer, &m.Layer},
		{"footprint", p.PnP.Footprint, &m.Footprint},
	} {
		if *c.ref, err = c.col.Ref(m.HasColumnHeaders); err != nil {
			return m, fmt.Errorf("PnP %s: %w", c.name, err)
		}
	}
	return m, nil
}
