package sampler

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distmv"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/CraigKelly/bayesreg/model"
	"github.com/CraigKelly/bayesreg/rand"
)

// PriorPrecision is the precision of the N(0, 1/PriorPrecision) prior on each
// beta. It is also the weight of beta'beta in the sigma^2 update.
const PriorPrecision = 0.5

// MaxDesignCondition is the largest condition number of X'X we accept. Above
// this the design is treated as singular (collinear regressors).
const MaxDesignCondition = 1e12

// GibbsRegression is the conjugate Gibbs sampler for
//
//	y = gamma * (1 + X beta) + e,  e ~ N(0, sigma^2)
//
// Each sweep draws beta | gamma, sigma^2 (multivariate normal), then
// gamma | beta, sigma^2 (normal), then sigma^2 | beta, gamma (scaled inverse
// chi-squared), always conditioning on the newest values.
type GibbsRegression struct {
	gen  *rand.Generator
	data *model.Dataset
	n, p int

	// Fixed for the whole run
	xtx *mat.SymDense
	xty *mat.VecDense
	xt1 *mat.VecDense

	// Scratch space reused across sweeps
	prec  *mat.SymDense
	cov   *mat.SymDense
	b     *mat.VecDense
	mean  *mat.VecDense
	z     *mat.VecDense // 1 + X beta for the current beta
	resid *mat.VecDense
	chol  mat.Cholesky
}

// NewGibbsRegression creates a new sampler over the given data. X'X must be
// well conditioned: a duplicated or collinear column is ErrSingularDesign.
func NewGibbsRegression(gen *rand.Generator, data *model.Dataset) (*GibbsRegression, error) {
	if gen == nil {
		return nil, errors.New("No random generator supplied")
	}
	if data == nil {
		return nil, errors.New("No data supplied")
	}
	if err := data.Check(); err != nil {
		return nil, err
	}

	n, p := data.Dims()

	xtx := mat.NewSymDense(p, nil)
	xtx.SymOuterK(1, data.X.T())

	var chol mat.Cholesky
	if ok := chol.Factorize(xtx); !ok {
		return nil, errors.Wrap(ErrSingularDesign, "X'X is not positive definite")
	}
	if cond := chol.Cond(); cond > MaxDesignCondition {
		return nil, errors.Wrapf(ErrSingularDesign, "X'X condition number %g exceeds %g", cond, MaxDesignCondition)
	}

	xty := mat.NewVecDense(p, nil)
	xty.MulVec(data.X.T(), data.Y)

	ones := make([]float64, n)
	for i := range ones {
		ones[i] = 1.0
	}
	xt1 := mat.NewVecDense(p, nil)
	xt1.MulVec(data.X.T(), mat.NewVecDense(n, ones))

	s := &GibbsRegression{
		gen:   gen,
		data:  data,
		n:     n,
		p:     p,
		xtx:   xtx,
		xty:   xty,
		xt1:   xt1,
		prec:  mat.NewSymDense(p, nil),
		cov:   mat.NewSymDense(p, nil),
		b:     mat.NewVecDense(p, nil),
		mean:  mat.NewVecDense(p, nil),
		z:     mat.NewVecDense(n, nil),
		resid: mat.NewVecDense(n, nil),
	}
	return s, nil
}

// Dim is the number of regression coefficients
func (s *GibbsRegression) Dim() int {
	return s.p
}

// Sample performs one full sweep, updating st in place - implements Sampler
func (s *GibbsRegression) Sample(st *State) error {
	if len(st.Beta) != s.p {
		return errors.Errorf("State has %d coefficients, sampler has %d", len(st.Beta), s.p)
	}

	if err := s.drawBeta(st); err != nil {
		return &DrawError{Iter: -1, Step: StepBeta, Err: err}
	}
	if err := s.drawGamma(st); err != nil {
		return &DrawError{Iter: -1, Step: StepGamma, Err: err}
	}
	if err := s.drawSigmaSq(st); err != nil {
		return &DrawError{Iter: -1, Step: StepSigmaSq, Err: err}
	}

	return nil
}

// drawBeta: A = g^2 X'X + 0.5 I, b = g X'y - g^2 X'1, beta ~ N(A^-1 b, s^2 A^-1)
func (s *GibbsRegression) drawBeta(st *State) error {
	g := st.Gamma
	g2 := g * g

	s.prec.ScaleSym(g2, s.xtx)
	for i := 0; i < s.p; i++ {
		s.prec.SetSym(i, i, s.prec.At(i, i)+PriorPrecision)
	}

	s.b.ScaleVec(g, s.xty)
	s.b.AddScaledVec(s.b, -g2, s.xt1)

	if ok := s.chol.Factorize(s.prec); !ok {
		return ErrSingularPrecision
	}
	if err := s.chol.SolveVecTo(s.mean, s.b); err != nil {
		return errors.Wrap(ErrSingularPrecision, err.Error())
	}
	if err := s.chol.InverseTo(s.cov); err != nil {
		return errors.Wrap(ErrSingularPrecision, err.Error())
	}
	s.cov.ScaleSym(st.SigmaSq, s.cov)

	mu := make([]float64, s.p)
	for i := range mu {
		mu[i] = s.mean.AtVec(i)
	}

	mvn, ok := distmv.NewNormal(mu, s.cov, s.gen)
	if !ok {
		return errors.Wrapf(ErrSingularPrecision, "posterior covariance is not positive definite (sigma^2=%g)", st.SigmaSq)
	}
	mvn.Rand(st.Beta)

	return nil
}

// drawGamma: z = 1 + X beta, gamma ~ N(z'y / z'z, sigma^2 / z'z)
func (s *GibbsRegression) drawGamma(st *State) error {
	s.z.MulVec(s.data.X, mat.NewVecDense(s.p, st.Beta))
	floats.AddConst(1.0, s.z.RawVector().Data)

	zz := mat.Dot(s.z, s.z)
	if zz == 0 {
		return ErrDegenerateFit
	}
	zy := mat.Dot(s.z, s.data.Y)

	norm := distuv.Normal{
		Mu:    zy / zz,
		Sigma: math.Sqrt(st.SigmaSq / zz),
		Src:   s.gen,
	}
	st.Gamma = norm.Rand()

	return nil
}

// drawSigmaSq: sigma^2 = (|y - gamma z|^2 + 0.5 beta'beta) / chi2(n + p). z
// does not depend on gamma, so the value from drawGamma is reused.
func (s *GibbsRegression) drawSigmaSq(st *State) error {
	s.resid.AddScaledVec(s.data.Y, -st.Gamma, s.z)
	param := mat.Dot(s.resid, s.resid) + PriorPrecision*floats.Dot(st.Beta, st.Beta)

	chi := distuv.ChiSquared{
		K:   float64(s.n + s.p),
		Src: s.gen,
	}
	c := chi.Rand()
	if c == 0 {
		return ErrZeroChiSquare
	}

	st.SigmaSq = param / c
	return nil
}
