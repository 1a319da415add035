package boomer

import (
	"log/slog"
	"math"
	"slices"

	"github.com/marmidr/boomer/pkg/boomer/models"
	"github.com/marmidr/boomer/pkg/boomer/parser"
)

// CoordinatesMM converts a raw coordinate pair to millimeters. Unparsable
// values are logged and yield (0, 0).
func CoordinatesMM(rawX, rawY string, unitIsMils bool, log *slog.Logger) (x, y float64) {
	x, y, err := parser.ToMillimeters(rawX, rawY, unitIsMils)
	if err != nil {
		if log == nil {
			log = slog.Default()
		}
		log.Warn("coordinate conversion failed",
			slog.String("x", rawX),
			slog.String("y", rawY),
			slog.Any("error", err))
		return 0, 0
	}
	return x, y
}

type point struct{ x, y float64 }

// FindConflicts returns pairs of same-layer parts whose centers are closer
// than opts.MinDistanceMM. Each unordered pair is checked once, the part
// seen first in the index being DesignatorA. The sweep is O(n²).
func FindConflicts(pnp *models.PartIndex, opts Options) []models.ProximityConflict {
	log := opts.logger()
	designators := pnp.Designators()
	records := make([]models.PartRecord, len(designators))
	for i, d := range designators {
		records[i], _ = pnp.Get(d)
	}

	// decoded on first use
	coords := make([]*point, len(designators))
	coordOf := func(i int) point {
		if coords[i] == nil {
			x, y := CoordinatesMM(records[i].CoordX, records[i].CoordY, opts.UnitIsMils, log)
			coords[i] = &point{x, y}
		}
		return *coords[i]
	}

	log.Info("calculating part center distances", slog.Int("parts", len(designators)))

	var out []models.ProximityConflict
	pairs := 0
	for i := range designators {
		for j := i + 1; j < len(designators); j++ {
			if records[i].Layer != records[j].Layer {
				continue
			}
			pairs++

			a, b := coordOf(i), coordOf(j)
			dist := math.Hypot(a.x-b.x, a.y-b.y)
			if dist < opts.MinDistanceMM {
				log.Debug("parts too close",
					slog.String("a", designators[i]),
					slog.String("b", designators[j]),
					slog.Float64("distance_mm", dist))
				out = append(out, models.ProximityConflict{
					DesignatorA: designators[i],
					DesignatorB: designators[j],
					DistanceMM:  dist,
				})
			}
		}
	}

	log.Info("part distances checked", slog.Int("pairs", pairs), slog.Int("conflicts", len(out)))
	slices.SortStableFunc(out, compareConflicts)
	return out
}
