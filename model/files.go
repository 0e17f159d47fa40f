package model

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// DataPaths names the file holding each variable of the sales model. Every
// file holds one column per brand; the column label picks the brand.
type DataPaths struct {
	Sales   string `yaml:"sales"`
	Display string `yaml:"display"`
	Coupon  string `yaml:"coupon"`
	Price   string `yaml:"price"`
}

// RegressorNames are the columns of X built by NewDatasetFromFiles, in order
var RegressorNames = []string{"display", "coupon", "price"}

// ReaderFunc chooses a ColumnReader for a file
type ReaderFunc func(filename string) (ColumnReader, error)

// NewDatasetFromFiles reads every variable and joins them positionally: y is
// log(sales) and X is [display, coupon, log(price)]. All columns must have the
// same length since there is no key to join on.
func NewDatasetFromFiles(rf ReaderFunc, paths DataPaths, label string) (*Dataset, error) {
	if rf == nil {
		rf = ReaderFor
	}
	if len(label) < 1 {
		label = DefaultColumn
	}

	type source struct {
		name string
		path string
		log  bool
	}
	sources := []source{
		{"sales", paths.Sales, true},
		{"display", paths.Display, false},
		{"coupon", paths.Coupon, false},
		{"price", paths.Price, true},
	}

	cols := make([][]float64, len(sources))
	for i, src := range sources {
		if len(src.path) < 1 {
			return nil, errors.Errorf("No file given for %s", src.name)
		}

		r, err := rf(src.path)
		if err != nil {
			return nil, err
		}

		col, err := NewColumnFromFile(r, src.path, label)
		if err != nil {
			return nil, errors.Wrapf(err, "Could not load %s", src.name)
		}

		if src.log {
			for j, v := range col {
				if v <= 0 {
					return nil, errors.Wrapf(ErrDataShape, "%s row %d is %v: can not take log", src.name, j, v)
				}
				col[j] = math.Log(v)
			}
		}

		if i > 0 && len(col) != len(cols[0]) {
			return nil, errors.Wrapf(
				ErrDataShape,
				"%s has %d rows but sales has %d",
				src.name, len(col), len(cols[0]),
			)
		}

		cols[i] = col
	}

	n := len(cols[0])
	p := len(sources) - 1
	x := mat.NewDense(n, p, nil)
	for j := 0; j < p; j++ {
		x.SetCol(j, cols[j+1])
	}

	names := make([]string, p)
	copy(names, RegressorNames)

	return NewDataset(x, mat.NewVecDense(n, cols[0]), names)
}
