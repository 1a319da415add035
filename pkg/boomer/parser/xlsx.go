package parser

import (
	"github.com/marmidr/boomer/pkg/boomer/models"
	"github.com/xuri/excelize/v2"
)

// ReadXLSX reads the active sheet of an xlsx workbook.
func ReadXLSX(path string) (*models.Grid, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheetName := f.GetSheetName(f.GetActiveSheetIndex())
	if sheetName == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, ErrNoSheet
		}
		sheetName = sheets[0]
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}
	return buildGrid(rows), nil
}

// ColumnIndex converts an Excel column letter such as "C" or "AB" to a
// 0-based column index.
func ColumnIndex(letters string) (int, error) {
	n, err := excelize.ColumnNameToNumber(letters)
	if err != nil {
		return 0, err
	}
	return n - 1, nil
}

// ColumnLetters converts a 0-based column index to its Excel letters.
func ColumnLetters(index int) string {
	name, err := excelize.ColumnNumberToName(index + 1)
	if err != nil {
		return ""
	}
	return name
}
