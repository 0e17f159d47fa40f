package buffer

import (
	"github.com/pkg/errors"
)

// Trace is a fixed-capacity, append-only history of float64 vectors. Each
// row is one draw of a (possibly multi-dimensional) parameter. Storage is
// allocated once, up front, so a long chain never reallocates.
type Trace struct {
	data     []float64 // flat row-major storage
	Dim      int       // Dim is the width of each row
	Capacity int       // Capacity is the fixed number of rows that may be added
	Count    int       // Count is the number of rows added so far
}

// NewTrace creates an empty trace for capacity rows of width dim
func NewTrace(capacity int, dim int) (*Trace, error) {
	if capacity < 0 {
		return nil, errors.Errorf("Invalid trace capacity %d", capacity)
	}
	if dim < 1 {
		return nil, errors.Errorf("Invalid trace dimension %d", dim)
	}

	return &Trace{
		data:     make([]float64, capacity*dim),
		Dim:      dim,
		Capacity: capacity,
	}, nil
}

// Add appends one row. The values are copied.
func (t *Trace) Add(vals ...float64) error {
	if len(vals) != t.Dim {
		return errors.Errorf("Trace row has %d values, expected %d", len(vals), t.Dim)
	}
	if t.Count >= t.Capacity {
		return errors.Errorf("Trace is full (capacity %d)", t.Capacity)
	}

	copy(t.data[t.Count*t.Dim:], vals)
	t.Count++
	return nil
}

// Len returns the number of rows added
func (t *Trace) Len() int {
	return t.Count
}

// Row returns row i. The returned slice aliases the trace storage.
func (t *Trace) Row(i int) []float64 {
	if i < 0 || i >= t.Count {
		panic("trace row index out of range")
	}
	return t.data[i*t.Dim : (i+1)*t.Dim : (i+1)*t.Dim]
}

// At returns value j of row i
func (t *Trace) At(i int, j int) float64 {
	return t.Row(i)[j]
}

// Column returns a fresh copy of column j across all rows
func (t *Trace) Column(j int) []float64 {
	if j < 0 || j >= t.Dim {
		panic("trace column index out of range")
	}

	col := make([]float64, t.Count)
	for i := range col {
		col[i] = t.data[i*t.Dim+j]
	}
	return col
}

// Thin drops the first burnIn rows and then keeps every thin-th row, stopping
// after count rows. Row k of the result is row burnIn+k*thin of the source.
func (t *Trace) Thin(burnIn int, thin int, count int) (*Trace, error) {
	if burnIn < 0 {
		return nil, errors.Errorf("Invalid burn-in %d", burnIn)
	}
	if thin < 1 {
		return nil, errors.Errorf("Invalid thinning interval %d", thin)
	}
	if count < 0 {
		return nil, errors.Errorf("Invalid retained count %d", count)
	}

	if count > 0 {
		last := burnIn + (count-1)*thin
		if last >= t.Count {
			return nil, errors.Errorf(
				"Trace has %d rows, need %d to keep %d rows (burn-in %d, thin %d)",
				t.Count, last+1, count, burnIn, thin,
			)
		}
	}

	out, err := NewTrace(count, t.Dim)
	if err != nil {
		return nil, err
	}
	for k := 0; k < count; k++ {
		if err := out.Add(t.Row(burnIn + k*thin)...); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// Rows returns an iterator over the rows in the order they were added
func (t *Trace) Rows() *TraceIterator {
	return &TraceIterator{
		buf:    t,
		curr:   0,
		remain: t.Count,
	}
}

// TraceIterator provides an iterator over the rows of a Trace
type TraceIterator struct {
	buf    *Trace
	curr   int
	remain int
}

// Next returns True when there are more rows to read via Value
func (i *TraceIterator) Next() bool {
	return i.remain > 0
}

// Value returns the next row to be read. Should only be called if Next() is
// True
func (i *TraceIterator) Value() []float64 {
	v := i.buf.Row(i.curr)
	i.curr++
	i.remain--
	return v
}
