package parser

import (
	"strconv"
	"strings"

	"github.com/extrame/xls"

	"github.com/marmidr/boomer/pkg/boomer/models"
)

// ReadXLS reads the first sheet of a legacy BIFF (.xls) workbook.
func ReadXLS(path string) (*models.Grid, error) {
	wb, err := xls.Open(path, "utf-8")
	if err != nil {
		return nil, err
	}

	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, ErrNoSheet
	}

	var rows [][]string
	for r := 0; r <= int(sheet.MaxRow); r++ {
		row := sheet.Row(r)
		if row == nil {
			continue
		}
		cells := make([]string, 0, row.LastCol())
		for c := 0; c < row.LastCol(); c++ {
			cells = append(cells, integralText(row.Col(c)))
		}
		rows = append(rows, cells)
	}
	return buildGrid(rows), nil
}

// integralText renders whole numbers stored as floats ("50.0") without the
// fractional part.
func integralText(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.Contains(trimmed, ".") {
		return s
	}
	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || f != float64(int64(f)) {
		return s
	}
	return strconv.FormatInt(int64(f), 10)
}
