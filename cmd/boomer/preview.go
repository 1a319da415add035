package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/marmidr/boomer/pkg/boomer/models"
	"github.com/marmidr/boomer/pkg/boomer/parser"
)

func newPreviewCmd() *cobra.Command {
	var (
		separator string
		firstRow  int
		lastRow   int
		letters   bool
	)

	cmd := &cobra.Command{
		Use:   "preview FILE",
		Short: "Print a file as an aligned text grid",
		Long: `preview reads a BOM or PnP file the same way check does and prints its
rows with 1-based row numbers, to help choosing a profile's first row and
columns.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sep, err := parser.ParseSeparator(separator)
			if err != nil {
				return err
			}
			if firstRow < 1 {
				return fmt.Errorf("invalid first row: %d (rows are numbered from 1)", firstRow)
			}

			grid, err := parser.ReadFile(args[0], parser.ReadOptions{Separator: sep, Logger: slog.Default()})
			if err != nil {
				return err
			}
			return writePreview(cmd.OutOrStdout(), grid, firstRow, lastRow, letters)
		},
	}

	cmd.Flags().StringVarP(&separator, "separator", "s", string(parser.SeparatorComma), "CSV/TXT separator: COMMA, SEMICOLON, TAB, SPACES")
	cmd.Flags().IntVar(&firstRow, "first-row", 1, "First row to show (1-based)")
	cmd.Flags().IntVar(&lastRow, "last-row", 0, "Last row to show (1-based, inclusive; default: all)")
	cmd.Flags().BoolVarP(&letters, "letters", "l", false, "Print a header line with the column letters used by headerless profiles")
	return cmd
}

// writePreview prints rows firstRow..lastRow, both 1-based and inclusive;
// lastRow 0 means the last row of the grid.
func writePreview(w io.Writer, grid *models.Grid, firstRow, lastRow int, letters bool) error {
	end := models.ToEnd
	if lastRow > 0 {
		end = lastRow
	}
	var label func(int) string
	if letters {
		label = parser.ColumnLetters
	}
	_, err := io.WriteString(w, grid.FormatLabeled(firstRow-1, end, label))
	return err
}
