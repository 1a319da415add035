// Package highlight aligns a BOM comment with a PnP comment and marks the
// differing runs for display.
package highlight

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Class is the highlight class of a span. Its value is usable as a CSS class.
type Class string

const (
	// ClassUnchanged marks text present in both comments.
	ClassUnchanged Class = "unchanged"
	// ClassBOMOnly marks text present only in the BOM comment.
	ClassBOMOnly Class = "bom-only"
	// ClassChanged marks text present only in the PnP comment, or replaced text on either side.
	ClassChanged Class = "changed"
)

// Op is an alignment operation.
type Op string

const (
	// OpEqual keeps a run present in both comments.
	OpEqual Op = "equal"
	// OpReplace swaps a BOM run for a different PnP run.
	OpReplace Op = "replace"
	// OpDelete drops a run found only in the BOM comment.
	OpDelete Op = "delete"
	// OpInsert adds a run found only in the PnP comment.
	OpInsert Op = "insert"
)

var opNames = map[byte]Op{
	'e': OpEqual,
	'r': OpReplace,
	'd': OpDelete,
	'i': OpInsert,
}

// Opcode maps runes [BOMStart, BOMEnd) of the BOM text to runes
// [PnPStart, PnPEnd) of the PnP text.
type Opcode struct {
	Op       Op
	BOMStart int
	BOMEnd   int
	PnPStart int
	PnPEnd   int
}

// Span is a run of text with one highlight class.
type Span struct {
	Text  string `json:"text"`
	Class Class  `json:"class"`
}

// AnnotatedPair is the highlighted form of a BOM/PnP comment pair.
type AnnotatedPair struct {
	BOM     []Span
	PnP     []Span
	Opcodes []Opcode
}

// FormatDiff aligns bomComment with pnpComment. A non-empty pnpFootprint is
// prepended to the BOM comment as "footprint_comment" so that footprint
// differences take part in the alignment. FormatDiff only annotates; it
// does not decide whether the comments match.
func FormatDiff(bomComment, pnpComment, pnpFootprint string) AnnotatedPair {
	if pnpFootprint != "" {
		bomComment = pnpFootprint + "_" + bomComment
	}
	a, b := runes(bomComment), runes(pnpComment)

	var pair AnnotatedPair
	for _, oc := range difflib.NewMatcher(a, b).GetOpCodes() {
		op := Opcode{Op: opNames[oc.Tag], BOMStart: oc.I1, BOMEnd: oc.I2, PnPStart: oc.J1, PnPEnd: oc.J2}
		pair.Opcodes = append(pair.Opcodes, op)

		bomText := strings.Join(a[oc.I1:oc.I2], "")
		pnpText := strings.Join(b[oc.J1:oc.J2], "")
		switch op.Op {
		case OpEqual:
			pair.BOM = appendSpan(pair.BOM, bomText, ClassUnchanged)
			pair.PnP = appendSpan(pair.PnP, pnpText, ClassUnchanged)
		case OpReplace:
			pair.BOM = appendSpan(pair.BOM, bomText, ClassChanged)
			pair.PnP = appendSpan(pair.PnP, pnpText, ClassChanged)
		case OpDelete:
			pair.BOM = appendSpan(pair.BOM, bomText, ClassBOMOnly)
		case OpInsert:
			pair.PnP = appendSpan(pair.PnP, pnpText, ClassChanged)
		}
	}
	return pair
}

func runes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

// appendSpan adds text, merging it into the last span when the class repeats.
func appendSpan(spans []Span, text string, class Class) []Span {
	if text == "" {
		return spans
	}
	if n := len(spans); n > 0 && spans[n-1].Class == class {
		spans[n-1].Text += text
		return spans
	}
	return append(spans, Span{Text: text, Class: class})
}
