package sampler

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/CraigKelly/bayesreg/model"
	"github.com/CraigKelly/bayesreg/rand"
)

// syntheticData builds y = gamma * (1 + X beta) + noise with X i.i.d. N(0,1)
func syntheticData(t testing.TB, seed int64, n int, beta []float64, gamma float64, noise float64) *model.Dataset {
	gen, err := rand.NewGenerator(seed)
	require.NoError(t, err)
	defer gen.Stop()

	p := len(beta)
	std := distuv.Normal{Mu: 0, Sigma: 1, Src: gen}

	x := mat.NewDense(n, p, nil)
	y := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		fit := 1.0
		for j := 0; j < p; j++ {
			v := std.Rand()
			x.Set(i, j, v)
			fit += v * beta[j]
		}
		y.SetVec(i, gamma*fit+noise*std.Rand())
	}

	d, err := model.NewDataset(x, y, nil)
	require.NoError(t, err)
	return d
}

// runChain samples the dataset with the given seed and returns the chain
func runChain(t testing.TB, seed int64, d *model.Dataset, cfg Config) *Chain {
	gen, err := rand.NewGenerator(seed)
	require.NoError(t, err)
	defer gen.Stop()

	samp, err := NewGibbsRegression(gen, d)
	require.NoError(t, err)

	ch, err := NewChain(samp, cfg)
	require.NoError(t, err)
	require.NoError(t, ch.Run())
	return ch
}
