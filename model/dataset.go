package model

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// ErrDataShape is the cause of every error about the size or contents of a
// Dataset that is detected before sampling starts.
var ErrDataShape = errors.New("invalid data shape")

// Dataset is the fixed input to a regression: a design matrix X (one row per
// observation, one column per regressor - the constant offset is implicit and
// NOT a column) and a response vector Y.
type Dataset struct {
	X     *mat.Dense    // n x p regressors
	Y     *mat.VecDense // n responses
	Names []string      // Regressor names (len p), may be empty
}

// NewDataset wraps and checks the given matrix and response
func NewDataset(x *mat.Dense, y *mat.VecDense, names []string) (*Dataset, error) {
	d := &Dataset{X: x, Y: y, Names: names}
	if err := d.Check(); err != nil {
		return nil, err
	}
	return d, nil
}

// NewDatasetFromRows is a convenience for building a dataset from literals:
// rows[i] is the regressors for observation i.
func NewDatasetFromRows(rows [][]float64, y []float64, names []string) (*Dataset, error) {
	if len(rows) < 1 {
		return nil, errors.Wrap(ErrDataShape, "No observations")
	}

	p := len(rows[0])
	if p < 1 {
		return nil, errors.Wrap(ErrDataShape, "No regressors")
	}

	flat := make([]float64, 0, len(rows)*p)
	for i, r := range rows {
		if len(r) != p {
			return nil, errors.Wrapf(ErrDataShape, "Row %d has %d regressors, expected %d", i, len(r), p)
		}
		flat = append(flat, r...)
	}

	if len(y) != len(rows) {
		return nil, errors.Wrapf(ErrDataShape, "X has %d rows but y has %d", len(rows), len(y))
	}

	yc := make([]float64, len(y))
	copy(yc, y)

	return NewDataset(mat.NewDense(len(rows), p, flat), mat.NewVecDense(len(yc), yc), names)
}

// Dims returns the observation count n and regressor count p
func (d *Dataset) Dims() (n int, p int) {
	return d.X.Dims()
}

// Check returns an error if the dataset can not be used for sampling
func (d *Dataset) Check() error {
	if d.X == nil || d.Y == nil {
		return errors.Wrap(ErrDataShape, "Dataset requires both X and y")
	}

	n, p := d.X.Dims()
	if d.Y.Len() != n {
		return errors.Wrapf(ErrDataShape, "X has %d rows but y has %d", n, d.Y.Len())
	}
	if n < p {
		return errors.Wrapf(ErrDataShape, "Only %d observations for %d regressors", n, p)
	}
	if len(d.Names) > 0 && len(d.Names) != p {
		return errors.Wrapf(ErrDataShape, "%d names given for %d regressors", len(d.Names), p)
	}

	for i := 0; i < n; i++ {
		if bad(d.Y.AtVec(i)) {
			return errors.Wrapf(ErrDataShape, "Response %d is %v", i, d.Y.AtVec(i))
		}
		for j := 0; j < p; j++ {
			if bad(d.X.At(i, j)) {
				return errors.Wrapf(ErrDataShape, "Regressor [%d,%d] is %v", i, j, d.X.At(i, j))
			}
		}
	}

	return nil
}

func bad(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}
