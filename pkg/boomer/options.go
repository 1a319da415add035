// Package boomer cross-checks a bill of materials against pick-and-place data.
package boomer

import "log/slog"

// DefaultMinDistanceMM is the default minimum distance between part centers.
const DefaultMinDistanceMM = 3.0

// Options configures a cross-check.
type Options struct {
	// MinDistanceMM is the distance below which two same-side parts conflict.
	MinDistanceMM float64
	// UnitIsMils tells that PnP coordinates are in mils rather than millimeters.
	UnitIsMils bool
	// Logger receives diagnostics. If nil, slog.Default() is used.
	Logger *slog.Logger
}

// DefaultOptions returns default cross-check options.
func DefaultOptions() Options {
	return Options{
		MinDistanceMM: DefaultMinDistanceMM,
		UnitIsMils:    true,
	}
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}
