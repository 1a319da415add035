package parser

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func TestReadCSV(t *testing.T) {
	tests := []struct {
		name     string
		sep      Separator
		input    string
		expected [][]string
	}{
		{
			name:  "comma with quotes",
			sep:   SeparatorComma,
			input: "Designator,Comment\n\"C1, C2\",100nF\n",
			expected: [][]string{
				{"Designator", "Comment"},
				{"C1, C2", "100nF"},
			},
		},
		{
			name:  "semicolon with padding",
			sep:   SeparatorSemicolon,
			input: "Designator;Comment;Footprint\nR1;10k\n",
			expected: [][]string{
				{"Designator", "Comment", "Footprint"},
				{"R1", "10k", ""},
			},
		},
		{
			name:  "tab trims cells",
			sep:   SeparatorTab,
			input: " R1 \t 10k \n",
			expected: [][]string{
				{"R1", "10k"},
			},
		},
		{
			name:  "spaces",
			sep:   SeparatorSpaces,
			input: "R1   10k  0603\nC1 100n\n",
			expected: [][]string{
				{"R1", "10k", "0603"},
				{"C1", "100n", ""},
			},
		},
		{
			name:  "empty first cell rows skipped",
			sep:   SeparatorComma,
			input: "Designator,Comment\n,orphan\n\nR1,10k\n",
			expected: [][]string{
				{"Designator", "Comment"},
				{"R1", "10k"},
			},
		},
		{
			name:  "byte order mark stripped",
			sep:   SeparatorComma,
			input: "\ufeffDesignator,Comment\n",
			expected: [][]string{
				{"Designator", "Comment"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grid, err := ReadCSV(strings.NewReader(tt.input), tt.sep)
			if err != nil {
				t.Fatalf("ReadCSV failed: %v", err)
			}
			got := grid.Rows()
			if len(got) != len(tt.expected) {
				t.Fatalf("Expected %d rows, got %d: %q", len(tt.expected), len(got), got)
			}
			for i := range got {
				if !slices.Equal(got[i], tt.expected[i]) {
					t.Errorf("Row %d: expected %q, got %q", i, tt.expected[i], got[i])
				}
			}
		})
	}
}

func TestParseSeparator(t *testing.T) {
	tests := []struct {
		input    string
		expected Separator
		wantErr  bool
	}{
		{"COMMA", SeparatorComma, false},
		{"semicolon", SeparatorSemicolon, false},
		{" Tab ", SeparatorTab, false},
		{"SPACES", SeparatorSpaces, false},
		{"FIXED-WIDTH", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseSeparator(tt.input)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownSeparator) {
				t.Errorf("ParseSeparator(%q): expected ErrUnknownSeparator, got %v", tt.input, err)
			}
			continue
		}
		if err != nil || got != tt.expected {
			t.Errorf("ParseSeparator(%q) = %q, %v; expected %q", tt.input, got, err, tt.expected)
		}
	}
}

func TestReadFile(t *testing.T) {
	tmpDir := t.TempDir()

	txtFile := filepath.Join(tmpDir, "bom.TXT")
	if err := os.WriteFile(txtFile, []byte("R1;10k\nR2;1k\n"), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}
	grid, err := ReadFile(txtFile, ReadOptions{Separator: SeparatorSemicolon})
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if grid.RowCount() != 2 || grid.Cell(1, 1) != "1k" {
		t.Errorf("Unexpected grid: %q", grid.Rows())
	}

	if _, err := ReadFile(filepath.Join(tmpDir, "bom.pdf"), ReadOptions{}); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Expected ErrUnsupportedFormat, got %v", err)
	}

	if _, err := ReadFile(filepath.Join(tmpDir, "missing.csv"), ReadOptions{}); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected os.ErrNotExist, got %v", err)
	}
}
