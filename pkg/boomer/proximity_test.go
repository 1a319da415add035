package boomer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marmidr/boomer/pkg/boomer/models"
)

func placed(parts ...[4]string) *models.PartIndex {
	idx := models.NewPartIndex()
	for _, p := range parts {
		idx.Put(p[0], models.PartRecord{CoordX: p[1], CoordY: p[2], Layer: p[3]})
	}
	return idx
}

func TestFindConflicts(t *testing.T) {
	tests := []struct {
		name     string
		mils     bool
		parts    *models.PartIndex
		expected []models.ProximityConflict
	}{
		{
			name:     "1 mm apart is flagged",
			parts:    placed([4]string{"C1", "10", "10", "T"}, [4]string{"C2", "11", "10", "T"}),
			expected: []models.ProximityConflict{{DesignatorA: "C1", DesignatorB: "C2", DistanceMM: 1}},
		},
		{
			name:  "5 mm apart is not flagged",
			parts: placed([4]string{"C1", "10", "10", "T"}, [4]string{"C2", "15", "10", "T"}),
		},
		{
			name:  "exactly the minimum is not flagged",
			parts: placed([4]string{"C1", "0", "0", "T"}, [4]string{"C2", "3", "0", "T"}),
		},
		{
			name:  "different layers are ignored",
			parts: placed([4]string{"C1", "10", "10", "T"}, [4]string{"C2", "10", "10", "B"}),
		},
		{
			name:  "4000 mils is about 101.6 mm",
			mils:  true,
			parts: placed([4]string{"U1", "0mil", "0mil", "T"}, [4]string{"U2", "4000mil", "0mil", "T"}),
		},
		{
			name:     "100 mils is 2.54 mm",
			mils:     true,
			parts:    placed([4]string{"U1", "0", "0", "T"}, [4]string{"U2", "100", "0", "T"}),
			expected: []models.ProximityConflict{{DesignatorA: "U1", DesignatorB: "U2", DistanceMM: 2.54}},
		},
		{
			name:     "unparsable coordinates fall back to origin",
			parts:    placed([4]string{"R1", "abc", "def", "T"}, [4]string{"R2", "1", "1", "T"}),
			expected: []models.ProximityConflict{{DesignatorA: "R1", DesignatorB: "R2", DistanceMM: 1.4142135623730951}},
		},
		{
			name: "pairs sorted naturally",
			parts: placed(
				[4]string{"R10", "0", "0", "T"},
				[4]string{"R2", "0", "1", "T"},
			),
			expected: []models.ProximityConflict{{DesignatorA: "R10", DesignatorB: "R2", DistanceMM: 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := testOptions()
			opts.UnitIsMils = tt.mils

			got := FindConflicts(tt.parts, opts)
			require.Len(t, got, len(tt.expected))
			for i := range got {
				assert.Equal(t, tt.expected[i].DesignatorA, got[i].DesignatorA)
				assert.Equal(t, tt.expected[i].DesignatorB, got[i].DesignatorB)
				assert.InDelta(t, tt.expected[i].DistanceMM, got[i].DistanceMM, 1e-9)
			}
		})
	}
}

func TestFindConflictsEachPairOnce(t *testing.T) {
	parts := placed(
		[4]string{"C1", "0", "0", "T"},
		[4]string{"C2", "0.5", "0", "T"},
		[4]string{"C3", "1", "0", "T"},
	)
	opts := testOptions()
	opts.UnitIsMils = false

	got := FindConflicts(parts, opts)
	require.Len(t, got, 3)
	pairs := map[[2]string]bool{}
	for _, c := range got {
		pair := [2]string{c.DesignatorA, c.DesignatorB}
		assert.False(t, pairs[pair], "duplicate pair %v", pair)
		assert.False(t, pairs[[2]string{c.DesignatorB, c.DesignatorA}], "reversed pair %v", pair)
		pairs[pair] = true
	}
}

func TestCoordinatesMM(t *testing.T) {
	x, y := CoordinatesMM("1000mil", "-500mil", true, testOptions().Logger)
	assert.InDelta(t, 25.4, x, 1e-9)
	assert.InDelta(t, 12.7, y, 1e-9)

	x, y = CoordinatesMM("1,5", "2", false, testOptions().Logger)
	assert.Zero(t, x)
	assert.Zero(t, y)
}
