package parser

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/marmidr/boomer/pkg/boomer/models"
)

// ErrUnsupportedFormat indicates a file extension no reader handles.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// ErrNoSheet indicates a workbook without any readable sheet.
var ErrNoSheet = errors.New("no sheet found")

// ReadOptions configures ReadFile.
type ReadOptions struct {
	// Separator splits CSV/TXT lines. Defaults to SeparatorComma.
	Separator Separator
	// Logger receives diagnostics. If nil, slog.Default() is used.
	Logger *slog.Logger
}

// ReadFile reads the first sheet of a CSV, TXT, XLSX, XLS or ODS file.
// Cells are trimmed, rows with an empty first cell are skipped and short
// rows are padded.
func ReadFile(path string, opts ReadOptions) (*models.Grid, error) {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	log.Info("reading file", slog.String("path", path))

	var (
		grid *models.Grid
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv", ".txt":
		sep := opts.Separator
		if sep == "" {
			sep = SeparatorComma
		}
		grid, err = ReadCSVFile(path, sep)
	case ".xlsx", ".xlsm":
		grid, err = ReadXLSX(path)
	case ".xls":
		grid, err = ReadXLS(path)
	case ".ods":
		grid, err = ReadODS(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}

	log.Info("file read",
		slog.String("path", path),
		slog.Int("rows", grid.RowCount()),
		slog.Int("cols", grid.ColCount()))
	return grid, nil
}

// buildGrid trims every cell, drops rows whose first cell is empty and pads
// the rest into a Grid.
func buildGrid(rows [][]string) *models.Grid {
	kept := make([][]string, 0, len(rows))
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = strings.TrimSpace(cell)
		}
		if len(cells) == 0 || cells[0] == "" {
			continue
		}
		kept = append(kept, cells)
	}
	return models.NewGrid(kept)
}
