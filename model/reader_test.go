package model

import (
	"fmt"
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestFieldReader(t *testing.T) {
	assert := assert.New(t)

	fr := NewFieldReader("  brand62 \n 1.5\t-2 x ")
	s, err := fr.Read()
	assert.NoError(err)
	assert.Equal("brand62", s)

	f, err := fr.ReadFloat()
	assert.NoError(err)
	assert.Equal(1.5, f)

	assert.NoError(fr.Skip(1))
	_, err = fr.ReadFloat()
	assert.Error(err) // "x"

	_, err = fr.Read()
	assert.Error(err) // EOF
	assert.Error(fr.Skip(1))
}

func TestReaderFor(t *testing.T) {
	assert := assert.New(t)

	cases := map[string]ColumnReader{
		"a/sales.xls":  XLSReader{},
		"a/sales.XLSX": XLSXReader{},
		"sales.csv":    CSVReader{},
		"sales.txt":    TextReader{},
		"sales.dat":    TextReader{},
	}
	for name, exp := range cases {
		r, err := ReaderFor(name)
		assert.NoError(err, name)
		assert.IsType(exp, r, name)
	}

	r, err := ReaderFor("sales.parquet")
	assert.Nil(r)
	assert.Error(err)
}

func TestCSVReader(t *testing.T) {
	assert := assert.New(t)

	data := []byte("week,brand61,brand62\n1,9,1.25\n2,9,2.5\n3,9,-1\n")
	col, err := CSVReader{}.ReadColumn(data, "brand62")
	assert.NoError(err)
	assert.Equal([]float64{1.25, 2.5, -1}, col)

	// trailing blanks end the column
	data = []byte("brand62,other\n1,2\n3,4\n,5\n")
	col, err = CSVReader{}.ReadColumn(data, "brand62")
	assert.NoError(err)
	assert.Equal([]float64{1, 3}, col)

	_, err = CSVReader{}.ReadColumn(data, "brand99")
	assert.Error(err)

	_, err = CSVReader{}.ReadColumn([]byte("brand62\nabc\n"), "brand62")
	assert.Error(err)

	_, err = CSVReader{}.ReadColumn([]byte("brand62\n"), "brand62")
	assert.Error(err)

	_, err = CSVReader{}.ReadColumn([]byte(""), "brand62")
	assert.Error(err)
}

func TestTextReader(t *testing.T) {
	assert := assert.New(t)

	data := []byte("# weekly data\nweek brand62\n\n1 0.5\n2 0.75\n")
	col, err := TextReader{}.ReadColumn(data, "brand62")
	assert.NoError(err)
	assert.Equal([]float64{0.5, 0.75}, col)

	_, err = TextReader{}.ReadColumn([]byte("week brand62\n1\n"), "brand62")
	assert.Error(err)

	_, err = TextReader{}.ReadColumn([]byte("week\n1\n"), "brand62")
	assert.Error(err)

	_, err = TextReader{}.ReadColumn([]byte("# nothing\n"), "brand62")
	assert.Error(err)
}

func writeXLSX(t *testing.T, path string, label string, vals []float64) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetCellValue(sheet, "A1", "week"))
	require.NoError(t, f.SetCellValue(sheet, "B1", label))
	for i, v := range vals {
		require.NoError(t, f.SetCellValue(sheet, fmt.Sprintf("A%d", i+2), i+1))
		require.NoError(t, f.SetCellValue(sheet, fmt.Sprintf("B%d", i+2), v))
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
}

func TestXLSXReader(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "price.xlsx")
	writeXLSX(t, path, DefaultColumn, []float64{1.5, 2.25, 3})

	col, err := NewColumnFromFile(XLSXReader{}, path, DefaultColumn)
	assert.NoError(err)
	assert.Equal([]float64{1.5, 2.25, 3}, col)

	_, err = NewColumnFromFile(XLSXReader{}, path, "brand1")
	assert.Error(err)

	_, err = XLSXReader{}.ReadColumn([]byte("not a workbook"), DefaultColumn)
	assert.Error(err)
}

func TestXLSXReaderRawValues(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "price.xlsx")
	writeXLSX(t, path, DefaultColumn, []float64{1.23456, 2.71828})

	// Two decimal display format on the data cells
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	style, err := f.NewStyle(&excelize.Style{NumFmt: 2})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle(f.GetSheetName(0), "B2", "B3", style))
	require.NoError(t, f.Save())
	require.NoError(t, f.Close())

	col, err := NewColumnFromFile(XLSXReader{}, path, DefaultColumn)
	assert.NoError(err)
	assert.Equal([]float64{1.23456, 2.71828}, col)
}

func TestXLSReader(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join("testdata", "brand.xls")

	col, err := NewColumnFromFile(XLSReader{}, path, DefaultColumn)
	assert.NoError(err)
	assert.Equal([]float64{1.23456, 2.5, 3.75, 0.015625}, col)

	col, err = NewColumnFromFile(XLSReader{}, path, "brand5")
	assert.NoError(err)
	assert.Equal([]float64{10, 11.5, 12.25, 9}, col)

	_, err = NewColumnFromFile(XLSReader{}, path, "brand1")
	assert.Error(err)

	_, err = XLSReader{}.ReadColumn([]byte("not a workbook"), DefaultColumn)
	assert.Error(err)
}

func TestColumnFromMissingFile(t *testing.T) {
	assert := assert.New(t)

	_, err := NewColumnFromFile(CSVReader{}, filepath.Join(t.TempDir(), "nope.csv"), DefaultColumn)
	assert.Error(err)

	path := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, ioutil.WriteFile(path, []byte("a,b\n1,2\n"), 0644))
	_, err = NewColumnFromFile(CSVReader{}, path, DefaultColumn)
	assert.Error(err)
}
