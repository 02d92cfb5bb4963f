package mgvi

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/infer/internal/model"
	"github.com/born-ml/infer/internal/parallel"
	"github.com/born-ml/infer/internal/sampler"
)

// Batch is an immutable set of 2n residual samples around one linearization
// point. Column i and column i+n are exact negations: the antithetic pairing
// halves the sampling noise of batch averages at no extra model cost.
type Batch struct {
	samples *mat.Dense
}

// Len returns the number of samples, always 2n.
func (b *Batch) Len() int {
	_, c := b.samples.Dims()
	return c
}

// Dim returns the parameter-space dimension.
func (b *Batch) Dim() int {
	r, _ := b.samples.Dims()
	return r
}

// Col returns a copy of residual column i.
func (b *Batch) Col(i int) []float64 {
	return mat.Col(nil, i, b.samples)
}

// colInto copies residual column i into dst.
func (b *Batch) colInto(dst []float64, i int) {
	mat.Col(dst, i, b.samples)
}

// Shifted returns a new matrix whose column j is point plus residual j:
// the batch translated to a concrete position.
func (b *Batch) Shifted(point []float64) *mat.Dense {
	r, c := b.samples.Dims()
	if len(point) != r {
		panic(fmt.Sprintf("mgvi: point has length %d, batch dimension is %d", len(point), r))
	}
	out := mat.NewDense(r, c, nil)
	col := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, b.samples)
		floats.Add(col, point)
		out.SetCol(j, col)
	}
	return out
}

// Residuals draws one antithetic residual batch around center: curvature
// components at center feed the sampler factory, n columns are drawn, and
// each is mirrored to its negation. Errors from the provider, the factory
// and the distribution propagate to the caller unmodified.
func (e *Engine) Residuals(rng *rand.Rand, fwd model.Forward, center []float64) (*Batch, error) {
	if len(center) != fwd.ParamDim() {
		return nil, fmt.Errorf("mgvi: center has length %d, model expects %d", len(center), fwd.ParamDim())
	}
	for i, v := range center {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("mgvi: center[%d] is not finite: %v", i, v)
		}
	}

	curv, jac, err := e.provider.Components(fwd, center)
	if err != nil {
		return nil, err
	}
	dist, err := e.factory.New(curv, jac)
	if err != nil {
		return nil, err
	}
	if dist.Dim() != len(center) {
		return nil, fmt.Errorf("mgvi: sampler dimension %d does not match center length %d", dist.Dim(), len(center))
	}

	n := e.numResiduals
	var draws *mat.Dense
	if e.par.Enabled && n > 1 {
		draws, err = drawParallel(rng, dist, n, e.par)
	} else {
		draws, err = dist.Draw(rng, n)
	}
	if err != nil {
		return nil, err
	}

	dim := dist.Dim()
	samples := mat.NewDense(dim, 2*n, nil)
	col := make([]float64, dim)
	for j := 0; j < n; j++ {
		mat.Col(col, j, draws)
		samples.SetCol(j, col)
		floats.Scale(-1, col)
		samples.SetCol(j+n, col)
	}
	return &Batch{samples: samples}, nil
}

// drawParallel draws one column per worker stream. Stream seeds are derived
// from rng before any worker starts, so the result depends only on the rng
// state and n, never on scheduling or worker count.
func drawParallel(rng *rand.Rand, dist sampler.Distribution, n int, cfg parallel.Config) (*mat.Dense, error) {
	streams := parallel.Streams(rng, n)
	cols := make([]*mat.Dense, n)
	errs := make([]error, n)
	parallel.For(n, func(j int) {
		cols[j], errs[j] = dist.Draw(streams[j], 1)
	}, cfg)

	out := mat.NewDense(dist.Dim(), n, nil)
	buf := make([]float64, dist.Dim())
	for j := 0; j < n; j++ {
		if errs[j] != nil {
			return nil, errs[j]
		}
		mat.Col(buf, 0, cols[j])
		out.SetCol(j, buf)
	}
	return out, nil
}
