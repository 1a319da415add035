package boomer

import (
	"cmp"
	"strings"

	"github.com/maruel/natural"

	"github.com/marmidr/boomer/pkg/boomer/models"
)

// natural.Less parses digit runs as uint64; longer runs are compared by
// compareChunks instead.
const maxNaturalDigits = 19

// NaturalCompare orders strings so that digit runs compare by value:
// "R2" < "R10". Strings equal by value fall back to byte order.
func NaturalCompare(a, b string) int {
	if longestDigitRun(a) > maxNaturalDigits || longestDigitRun(b) > maxNaturalDigits {
		if c := compareChunks(a, b); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	}
	switch {
	case natural.Less(a, b):
		return -1
	case natural.Less(b, a):
		return 1
	default:
		return strings.Compare(a, b)
	}
}

func longestDigitRun(s string) int {
	longest, run := 0, 0
	for i := 0; i < len(s); i++ {
		if isDigit(s[i]) {
			run++
			longest = max(longest, run)
		} else {
			run = 0
		}
	}
	return longest
}

// compareChunks walks a and b in alternating digit and non-digit chunks.
// Digit chunks compare by length once leading zeros are trimmed, then
// lexically, so they never overflow.
func compareChunks(a, b string) int {
	for a != "" && b != "" {
		ca, restA := nextChunk(a)
		cb, restB := nextChunk(b)
		var c int
		if isDigit(ca[0]) && isDigit(cb[0]) {
			ta, tb := strings.TrimLeft(ca, "0"), strings.TrimLeft(cb, "0")
			if c = cmp.Compare(len(ta), len(tb)); c == 0 {
				c = strings.Compare(ta, tb)
			}
		} else {
			c = strings.Compare(ca, cb)
		}
		if c != 0 {
			return c
		}
		a, b = restA, restB
	}
	return cmp.Compare(len(a), len(b))
}

func nextChunk(s string) (chunk, rest string) {
	digits := isDigit(s[0])
	i := 1
	for i < len(s) && isDigit(s[i]) == digits {
		i++
	}
	return s[:i], s[i:]
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func comparePartRefs(a, b models.PartRef) int {
	if c := NaturalCompare(a.Designator, b.Designator); c != 0 {
		return c
	}
	return NaturalCompare(a.Comment, b.Comment)
}

func compareMismatches(a, b models.CommentMismatch) int {
	if c := NaturalCompare(a.Designator, b.Designator); c != 0 {
		return c
	}
	if c := NaturalCompare(a.BOMComment, b.BOMComment); c != 0 {
		return c
	}
	if c := NaturalCompare(a.PnPComment, b.PnPComment); c != 0 {
		return c
	}
	return NaturalCompare(a.PnPFootprint, b.PnPFootprint)
}

func compareConflicts(a, b models.ProximityConflict) int {
	if c := NaturalCompare(a.DesignatorA, b.DesignatorA); c != 0 {
		return c
	}
	if c := NaturalCompare(a.DesignatorB, b.DesignatorB); c != 0 {
		return c
	}
	return cmp.Compare(a.DistanceMM, b.DistanceMM)
}
