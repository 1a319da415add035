package parser

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/marmidr/boomer/pkg/boomer/models"
)

// ODS repeat attributes can describe a million empty cells; expansion is
// capped at these counts.
const (
	maxRepeatedCols = 1024
	maxRepeatedRows = 65536
)

// ReadODS reads the first table of an OpenDocument spreadsheet.
func ReadODS(path string) (*models.Grid, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	content, err := readZipFile(&r.Reader, "content.xml")
	if err != nil {
		return nil, err
	}

	rows, err := parseODSContent(content)
	if err != nil {
		return nil, err
	}
	return buildGrid(rows), nil
}

// readZipFile reads a file from a zip archive.
func readZipFile(r *zip.Reader, name string) ([]byte, error) {
	for _, f := range r.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, errors.New("file not found in archive: " + name)
}

// parseODSContent walks content.xml and returns the cells of the first table.
func parseODSContent(data []byte) ([][]string, error) {
	decoder := xml.NewDecoder(strings.NewReader(string(data)))
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			return nil, ErrNoSheet
		}
		if err != nil {
			return nil, err
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "table" {
			return parseODSTable(decoder)
		}
	}
}

// parseODSTable reads rows until the end of the current table element.
func parseODSTable(decoder *xml.Decoder) ([][]string, error) {
	var (
		rows       [][]string
		row        []string
		rowRepeat  int
		cell       strings.Builder
		cellRepeat int
		inCell     bool
		inPara     bool
	)

	for depth := 1; depth > 0; {
		token, err := decoder.Token()
		if err != nil {
			return nil, err
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "table-row":
				row = nil
				rowRepeat = repeatAttr(t, "number-rows-repeated")
			case "table-cell", "covered-table-cell":
				inCell = true
				cell.Reset()
				cellRepeat = repeatAttr(t, "number-columns-repeated")
			case "p":
				inPara = inCell
				if inPara && cell.Len() > 0 {
					cell.WriteString(" ")
				}
			case "s":
				if inPara {
					cell.WriteString(strings.Repeat(" ", repeatAttr(t, "c")))
				}
			case "tab":
				if inPara {
					cell.WriteString("\t")
				}
			}
		case xml.CharData:
			if inPara {
				cell.Write(t)
			}
		case xml.EndElement:
			depth--
			switch t.Name.Local {
			case "p":
				inPara = false
			case "table-cell", "covered-table-cell":
				inCell = false
				text := cell.String()
				for i := 0; i < min(cellRepeat, maxRepeatedCols); i++ {
					row = append(row, text)
				}
			case "table-row":
				row = trimTrailingEmpty(row)
				if len(row) == 0 {
					continue
				}
				for i := 0; i < min(rowRepeat, maxRepeatedRows); i++ {
					rows = append(rows, append([]string(nil), row...))
				}
			}
		}
	}
	return rows, nil
}

func repeatAttr(se xml.StartElement, local string) int {
	for _, attr := range se.Attr {
		if attr.Name.Local == local {
			if n, err := strconv.Atoi(attr.Value); err == nil && n > 0 {
				return n
			}
		}
	}
	return 1
}

func trimTrailingEmpty(row []string) []string {
	n := len(row)
	for n > 0 && strings.TrimSpace(row[n-1]) == "" {
		n--
	}
	return row[:n]
}
