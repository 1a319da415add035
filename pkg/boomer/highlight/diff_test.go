package highlight

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatDiff(t *testing.T) {
	tests := []struct {
		name      string
		bom       string
		pnp       string
		footprint string
		wantBOM   []Span
		wantPnP   []Span
		wantOps   []Op
	}{
		{
			name:    "replaced suffix",
			bom:     "10K",
			pnp:     "10k 1%",
			wantBOM: []Span{{"10", ClassUnchanged}, {"K", ClassChanged}},
			wantPnP: []Span{{"10", ClassUnchanged}, {"k 1%", ClassChanged}},
			wantOps: []Op{OpEqual, OpReplace},
		},
		{
			name:    "deleted from BOM",
			bom:     "100nF",
			pnp:     "100n",
			wantBOM: []Span{{"100n", ClassUnchanged}, {"F", ClassBOMOnly}},
			wantPnP: []Span{{"100n", ClassUnchanged}},
			wantOps: []Op{OpEqual, OpDelete},
		},
		{
			name:    "inserted in PnP",
			bom:     "10k",
			pnp:     "10k 1%",
			wantBOM: []Span{{"10k", ClassUnchanged}},
			wantPnP: []Span{{"10k", ClassUnchanged}, {" 1%", ClassChanged}},
			wantOps: []Op{OpEqual, OpInsert},
		},
		{
			name:      "footprint prefixed to BOM",
			bom:       "10k",
			pnp:       "0402_10k",
			footprint: "0402",
			wantBOM:   []Span{{"0402_10k", ClassUnchanged}},
			wantPnP:   []Span{{"0402_10k", ClassUnchanged}},
			wantOps:   []Op{OpEqual},
		},
		{
			name:    "empty BOM",
			bom:     "",
			pnp:     "µF",
			wantPnP: []Span{{"µF", ClassChanged}},
			wantOps: []Op{OpInsert},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pair := FormatDiff(tt.bom, tt.pnp, tt.footprint)

			assert.Equal(t, tt.wantBOM, pair.BOM)
			assert.Equal(t, tt.wantPnP, pair.PnP)

			var ops []Op
			for _, oc := range pair.Opcodes {
				ops = append(ops, oc.Op)
			}
			assert.Equal(t, tt.wantOps, ops)

			want := tt.bom
			if tt.footprint != "" {
				want = tt.footprint + "_" + tt.bom
			}
			assert.Equal(t, want, joinSpans(pair.BOM))
			assert.Equal(t, tt.pnp, joinSpans(pair.PnP))
		})
	}
}

func joinSpans(spans []Span) string {
	var s string
	for _, sp := range spans {
		s += sp.Text
	}
	return s
}

func TestFormatDiffOpcodeRanges(t *testing.T) {
	pair := FormatDiff("R1k", "R10k", "")
	if assert.NotEmpty(t, pair.Opcodes) {
		last := pair.Opcodes[len(pair.Opcodes)-1]
		assert.Equal(t, 3, last.BOMEnd)
		assert.Equal(t, 4, last.PnPEnd)
	}
	for i := 1; i < len(pair.Opcodes); i++ {
		assert.Equal(t, pair.Opcodes[i-1].BOMEnd, pair.Opcodes[i].BOMStart)
		assert.Equal(t, pair.Opcodes[i-1].PnPEnd, pair.Opcodes[i].PnPStart)
	}
}
