package model

import (
	"fmt"
	"io/ioutil"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, dir string, name string, vals []float64) string {
	var sb strings.Builder
	sb.WriteString("brand61,brand62\n")
	for _, v := range vals {
		fmt.Fprintf(&sb, "0,%v\n", v)
	}

	path := filepath.Join(dir, name+".csv")
	require.NoError(t, ioutil.WriteFile(path, []byte(sb.String()), 0644))
	return path
}

func TestDatasetFromFiles(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	paths := DataPaths{
		Sales:   writeCSV(t, dir, "sales", []float64{100, 200, 300, 400}),
		Display: writeCSV(t, dir, "displ", []float64{0, 1, 0, 1}),
		Coupon:  writeCSV(t, dir, "coupon", []float64{0, 0, 1, 1}),
		Price:   filepath.Join(dir, "price.xlsx"),
	}
	writeXLSX(t, paths.Price, DefaultColumn, []float64{1.5, 2, 2.5, 3})

	d, err := NewDatasetFromFiles(nil, paths, "")
	require.NoError(t, err)

	n, p := d.Dims()
	assert.Equal(4, n)
	assert.Equal(3, p)
	assert.Equal(RegressorNames, d.Names)

	assert.InDelta(math.Log(300), d.Y.AtVec(2), 1e-12)
	assert.Equal(1.0, d.X.At(1, 0))
	assert.Equal(1.0, d.X.At(2, 1))
	assert.InDelta(math.Log(2.5), d.X.At(2, 2), 1e-12)
}

func TestDatasetFromFilesErrors(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	good := DataPaths{
		Sales:   writeCSV(t, dir, "sales", []float64{100, 200, 300, 400}),
		Display: writeCSV(t, dir, "displ", []float64{0, 1, 0, 1}),
		Coupon:  writeCSV(t, dir, "coupon", []float64{0, 0, 1, 1}),
		Price:   writeCSV(t, dir, "price", []float64{1.5, 2, 2.5, 3}),
	}

	_, err := NewDatasetFromFiles(ReaderFor, good, DefaultColumn)
	assert.NoError(err)

	// Row count mismatch is an error, not a silent misalignment
	short := good
	short.Coupon = writeCSV(t, dir, "short", []float64{0, 1, 1})
	_, err = NewDatasetFromFiles(ReaderFor, short, DefaultColumn)
	assert.True(errors.Is(err, ErrDataShape))

	// Can't take log of a non-positive price
	neg := good
	neg.Price = writeCSV(t, dir, "neg", []float64{1.5, 0, 2.5, 3})
	_, err = NewDatasetFromFiles(ReaderFor, neg, DefaultColumn)
	assert.True(errors.Is(err, ErrDataShape))

	// Missing path
	missing := good
	missing.Display = ""
	_, err = NewDatasetFromFiles(ReaderFor, missing, DefaultColumn)
	assert.Error(err)

	// Unknown format
	odd := good
	odd.Sales = filepath.Join(dir, "sales.json")
	_, err = NewDatasetFromFiles(ReaderFor, odd, DefaultColumn)
	assert.Error(err)

	// Wrong label
	_, err = NewDatasetFromFiles(ReaderFor, good, "brand5")
	assert.Error(err)
}
