package sampler

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"

	"github.com/CraigKelly/bayesreg/model"
)

// Summary quantiles
const (
	LowQuantile  = 0.10
	HighQuantile = 0.90
)

// Percentile returns the q-quantile (0 <= q <= 1) of x, linearly
// interpolating between the closest order statistics. This is the default
// definition used by numpy and R (type 7). x is not modified.
func Percentile(q float64, x []float64) float64 {
	if len(x) < 1 {
		return math.NaN()
	}

	sorted := make([]float64, len(x))
	copy(sorted, x)
	sort.Float64s(sorted)

	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

// Round4 rounds to 4 decimal places
func Round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}

func summarize(name string, x []float64) model.ParamSummary {
	return model.ParamSummary{
		Name: name,
		P10:  Round4(Percentile(LowQuantile, x)),
		Mean: Round4(stat.Mean(x, nil)),
		P90:  Round4(Percentile(HighQuantile, x)),
	}
}

// BetaName is the summary name for coefficient j (0-based)
func BetaName(j int) string {
	return "beta_" + strconv.Itoa(j+1)
}

// PosteriorProbability is the fraction of draws where the last coefficient
// (log price) and gamma have opposite signs - that is, the fraction of draws
// with a negative price elasticity.
func (d *Draws) PosteriorProbability() float64 {
	n := d.Len()
	if n < 1 {
		return 0
	}

	last := d.Beta.Dim - 1
	count := 0
	for k := 0; k < n; k++ {
		if d.Beta.At(k, last)*d.Gamma.At(k, 0) < 0 {
			count++
		}
	}
	return float64(count) / float64(n)
}

// Summarize computes the posterior summary of the retained draws: gamma, each
// beta and sigma^2, in that order.
func Summarize(d *Draws) (*model.Summary, error) {
	if d == nil || d.Len() < 1 {
		return nil, errors.New("No retained draws to summarize")
	}
	if d.Beta.Len() != d.Len() || d.SigmaSq.Len() != d.Len() {
		return nil, errors.Errorf(
			"Draw count mismatch: beta=%d gamma=%d sigma_sq=%d",
			d.Beta.Len(), d.Len(), d.SigmaSq.Len(),
		)
	}

	params := make([]model.ParamSummary, 0, d.Beta.Dim+2)
	params = append(params, summarize("gamma", d.Gamma.Column(0)))
	for j := 0; j < d.Beta.Dim; j++ {
		params = append(params, summarize(BetaName(j), d.Beta.Column(j)))
	}
	params = append(params, summarize("sigma_sq", d.SigmaSq.Column(0)))

	s := &model.Summary{
		Params:               params,
		PosteriorProbability: d.PosteriorProbability(),
	}
	return s, nil
}

// WriteCSV writes one line per retained draw: the raw iteration index, gamma,
// each beta and sigma^2.
func (d *Draws) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	header := []string{"iter", "gamma"}
	for j := 0; j < d.Beta.Dim; j++ {
		header = append(header, BetaName(j))
	}
	header = append(header, "sigma_sq")
	if err := cw.Write(header); err != nil {
		return errors.Wrap(err, "Could not write trace header")
	}

	fmtFloat := func(v float64) string {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}

	rec := make([]string, len(header))
	betas := d.Beta.Rows()
	for k := 0; betas.Next(); k++ {
		rec[0] = fmt.Sprint(d.Iteration(k))
		rec[1] = fmtFloat(d.Gamma.At(k, 0))
		for j, b := range betas.Value() {
			rec[2+j] = fmtFloat(b)
		}
		rec[len(rec)-1] = fmtFloat(d.SigmaSq.At(k, 0))
		if err := cw.Write(rec); err != nil {
			return errors.Wrapf(err, "Could not write trace row %d", k)
		}
	}

	cw.Flush()
	return errors.Wrap(cw.Error(), "Could not flush trace")
}
