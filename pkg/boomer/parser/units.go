// Package parser reads BOM and PnP files into grids and decodes cell values.
package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MilsPerMM is the number of mils (1/1000 inch) per millimeter.
// 1 inch = 25.4 mm = 1000 mils
const MilsPerMM = 1000 / 25.4

// ErrCoordinate indicates a coordinate cell that is not a number.
var ErrCoordinate = errors.New("invalid coordinate")

// ParseCoordinate parses a raw coordinate cell such as "15.1mm" or "4312mil".
// Every character other than digits, '.' and ',' is dropped before parsing,
// so unit suffixes and signs are ignored.
func ParseCoordinate(raw string) (float64, error) {
	digits := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' {
			return r
		}
		return -1
	}, raw)

	v, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrCoordinate, raw)
	}
	return v, nil
}

// ToMillimeters converts a raw coordinate pair to millimeters.
func ToMillimeters(rawX, rawY string, unitIsMils bool) (x, y float64, err error) {
	if x, err = ParseCoordinate(rawX); err != nil {
		return 0, 0, err
	}
	if y, err = ParseCoordinate(rawY); err != nil {
		return 0, 0, err
	}
	if unitIsMils {
		return x / MilsPerMM, y / MilsPerMM, nil
	}
	return x, y, nil
}
