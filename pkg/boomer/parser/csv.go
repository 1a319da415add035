package parser

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/marmidr/boomer/pkg/boomer/models"
)

// ErrUnknownSeparator indicates a separator name that is not supported.
var ErrUnknownSeparator = errors.New("unknown CSV separator")

// Separator names a CSV cell separator.
type Separator string

const (
	SeparatorComma     Separator = "COMMA"
	SeparatorSemicolon Separator = "SEMICOLON"
	SeparatorTab       Separator = "TAB"
	// SeparatorSpaces splits on runs of whitespace.
	SeparatorSpaces Separator = "SPACES"
)

// Separators returns every supported separator.
func Separators() []Separator {
	return []Separator{SeparatorComma, SeparatorSemicolon, SeparatorTab, SeparatorSpaces}
}

// ParseSeparator returns the separator named name (case-insensitive).
func ParseSeparator(name string) (Separator, error) {
	sep := Separator(strings.ToUpper(strings.TrimSpace(name)))
	for _, s := range Separators() {
		if s == sep {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSeparator, name)
}

// Rune returns the single-character delimiter, or 0 for SeparatorSpaces.
func (s Separator) Rune() (rune, error) {
	switch s {
	case SeparatorComma:
		return ',', nil
	case SeparatorSemicolon:
		return ';', nil
	case SeparatorTab:
		return '\t', nil
	case SeparatorSpaces:
		return 0, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSeparator, string(s))
}

// ReadCSVFile reads a delimited text file.
func ReadCSVFile(path string, sep Separator) (*models.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadCSV(f, sep)
}

// ReadCSV reads delimited text from r.
func ReadCSV(r io.Reader, sep Separator) (*models.Grid, error) {
	comma, err := sep.Rune()
	if err != nil {
		return nil, err
	}

	var rows [][]string
	if comma == 0 {
		rows, err = readFields(r)
	} else {
		cr := csv.NewReader(r)
		cr.Comma = comma
		cr.FieldsPerRecord = -1
		cr.LazyQuotes = true
		rows, err = cr.ReadAll()
	}
	if err != nil {
		return nil, err
	}

	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	}
	return buildGrid(rows), nil
}

// readFields splits every line on runs of whitespace.
func readFields(r io.Reader) ([][]string, error) {
	var rows [][]string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		rows = append(rows, strings.Fields(sc.Text()))
	}
	return rows, sc.Err()
}
