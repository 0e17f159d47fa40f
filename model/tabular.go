package model

import (
	"bytes"
	"encoding/csv"
	"io"
	"strings"

	"github.com/extrame/xls"
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

// XLSReader reads the first sheet of a legacy (BIFF) Excel workbook
type XLSReader struct{}

// ReadColumn implements ColumnReader
func (r XLSReader) ReadColumn(data []byte, label string) ([]float64, error) {
	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, errors.Wrap(err, "Could not open xls workbook")
	}

	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, errors.New("Workbook has no sheets")
	}

	// Bounded to the first sheet; missing rows come back nil (sheet.Row
	// panics on them)
	rows := wb.ReadAllCells(int(sheet.MaxRow) + 1)

	return columnFromRows(rows, label)
}

// XLSXReader reads the first sheet of an Office Open XML workbook
type XLSXReader struct{}

// ReadColumn implements ColumnReader
func (r XLSXReader) ReadColumn(data []byte, label string) ([]float64, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "Could not open xlsx workbook")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) < 1 {
		return nil, errors.New("Workbook has no sheets")
	}

	// Raw values: the display format would round numbers
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, errors.Wrapf(err, "Could not read sheet %s", sheets[0])
	}

	return columnFromRows(rows, label)
}

// CSVReader reads comma separated files with a header row
type CSVReader struct{}

// ReadColumn implements ColumnReader
func (r CSVReader) ReadColumn(data []byte, label string) ([]float64, error) {
	cr := csv.NewReader(bytes.NewReader(data))
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	var rows [][]string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "Could not read csv row %d", len(rows)+1)
		}
		rows = append(rows, rec)
	}

	return columnFromRows(rows, label)
}

// TextReader reads whitespace delimited text: a header line of labels followed
// by one line per observation. Blank lines and lines starting with # are
// skipped.
type TextReader struct{}

// ReadColumn implements ColumnReader
func (r TextReader) ReadColumn(data []byte, label string) ([]float64, error) {
	var header []string
	idx := -1
	col := []float64{}

	for lineNo, ln := range strings.Split(string(data), "\n") {
		ln = strings.TrimSpace(ln)
		if len(ln) < 1 || ln[0] == '#' {
			continue
		}

		fr := NewFieldReader(ln)
		if header == nil {
			header = fr.Fields
			for j, h := range header {
				if h == label {
					idx = j
					break
				}
			}
			if idx < 0 {
				return nil, errors.Errorf("Column %s not found in header %v", label, header)
			}
			continue
		}

		if err := fr.Skip(idx); err != nil {
			return nil, errors.Errorf("Line %d is missing column %s", lineNo+1, label)
		}
		v, err := fr.ReadFloat()
		if err != nil {
			return nil, errors.Wrapf(err, "Line %d of column %s", lineNo+1, label)
		}
		col = append(col, v)
	}

	if header == nil {
		return nil, errors.New("No header row found")
	}
	if len(col) < 1 {
		return nil, errors.Errorf("Column %s has no values", label)
	}

	return col, nil
}
