package model

import (
	"io"
	"io/ioutil"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// DefaultColumn is the column label the store-level data files use for the
// brand we model.
const DefaultColumn = "brand62"

// ColumnReader implementors extract a single, labelled numeric column from a
// tabular byte stream. The first row of the table is the header.
type ColumnReader interface {
	ReadColumn(data []byte, label string) ([]float64, error)
}

// ReaderFor picks a ColumnReader based on the file extension
func ReaderFor(filename string) (ColumnReader, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xls":
		return XLSReader{}, nil
	case ".xlsx", ".xlsm":
		return XLSXReader{}, nil
	case ".csv":
		return CSVReader{}, nil
	case ".txt", ".dat":
		return TextReader{}, nil
	}
	return nil, errors.Errorf("No column reader for file %s", filename)
}

// NewColumnFromFile reads and parses the labelled column from filename
func NewColumnFromFile(r ColumnReader, filename string, label string) ([]float64, error) {
	data, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "Could not READ data from %s", filename)
	}

	col, err := r.ReadColumn(data, label)
	if err != nil {
		return nil, errors.Wrapf(err, "Could not PARSE column %s from %s", label, filename)
	}

	return col, nil
}

// columnFromRows finds label in the header row and parses every following
// cell in that column. The column ends at the first missing or blank cell.
func columnFromRows(rows [][]string, label string) ([]float64, error) {
	if len(rows) < 1 {
		return nil, errors.New("No header row found")
	}

	idx := -1
	for j, h := range rows[0] {
		if strings.TrimSpace(h) == label {
			idx = j
			break
		}
	}
	if idx < 0 {
		return nil, errors.Errorf("Column %s not found in header %v", label, rows[0])
	}

	col := make([]float64, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if idx >= len(row) {
			break
		}
		cell := strings.TrimSpace(row[idx])
		if len(cell) < 1 {
			break
		}

		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "Row %d of column %s", i+2, label)
		}
		col = append(col, v)
	}

	if len(col) < 1 {
		return nil, errors.Errorf("Column %s has no values", label)
	}

	return col, nil
}

// FieldReader is just a simple reader for basic file formats.
type FieldReader struct {
	Pos    int
	Fields []string
}

// NewFieldReader constructs a new field reader around the given data
func NewFieldReader(data string) *FieldReader {
	return &FieldReader{0, strings.Fields(data)}
}

// Read returns the next space-delimited field/token
func (fr *FieldReader) Read() (string, error) {
	if fr.Pos >= len(fr.Fields) {
		return "", io.EOF
	}
	p := fr.Pos
	fr.Pos++
	return fr.Fields[p], nil
}

// Skip advances past n fields
func (fr *FieldReader) Skip(n int) error {
	for i := 0; i < n; i++ {
		if _, err := fr.Read(); err != nil {
			return err
		}
	}
	return nil
}

// ReadFloat reads the next token as a float
func (fr *FieldReader) ReadFloat() (float64, error) {
	s, err := fr.Read()
	if err != nil {
		return 0, err
	}

	return strconv.ParseFloat(s, 64)
}
