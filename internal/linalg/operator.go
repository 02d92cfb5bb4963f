// Package linalg provides the linear-operator foundation for the inference
// engine.
//
// Operators are square linear maps applied matrix-free: the engine never
// requires an explicit matrix, only the action v ↦ A·v. Dense storage is
// available where a concrete matrix is genuinely needed (Cholesky-based
// sampling), backed by gonum/mat.
//
// All operators are immutable after construction and safe for concurrent
// Apply calls.
package linalg

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Operator is a square linear map on R^d.
//
// Apply computes dst = A·x. Implementations must not retain or alias dst
// and x, and must panic if len(dst) or len(x) differs from Dim.
type Operator interface {
	// Dim returns the dimension d of the operator's domain and range.
	Dim() int

	// Apply computes dst = A·x.
	Apply(dst, x []float64)
}

// Sqrter is an Operator with a known square root: Sqrt returns an S with
// S·Sᵀ equal to the operator. Samplers that would otherwise have to
// factorize ask for this capability instead.
type Sqrter interface {
	Operator

	// Sqrt returns a square root of the operator.
	Sqrt() Operator
}

// withSqrt pairs an operator with a precomputed square root.
type withSqrt struct {
	Operator
	sqrt Operator
}

// WithSqrt attaches a known square root to an operator. The pair must
// satisfy sqrt·sqrtᵀ = op and share one dimension.
func WithSqrt(op, sqrt Operator) Sqrter {
	if op.Dim() != sqrt.Dim() {
		panic(fmt.Sprintf("linalg: square root dimension %d does not match operator dimension %d", sqrt.Dim(), op.Dim()))
	}
	return &withSqrt{Operator: op, sqrt: sqrt}
}

func (w *withSqrt) Sqrt() Operator { return w.sqrt }

// checkDim panics unless both slices have length dim.
func checkDim(name string, dim int, dst, x []float64) {
	if len(dst) != dim || len(x) != dim {
		panic(fmt.Sprintf("linalg: %s expects vectors of length %d, got dst=%d x=%d",
			name, dim, len(dst), len(x)))
	}
}

// Identity is the identity map on R^d.
type Identity struct {
	d int
}

// NewIdentity returns the identity operator of dimension d.
func NewIdentity(d int) *Identity {
	if d <= 0 {
		panic(fmt.Sprintf("linalg: identity dimension must be positive, got %d", d))
	}
	return &Identity{d: d}
}

// Dim returns the operator dimension.
func (id *Identity) Dim() int { return id.d }

// Apply copies x into dst.
func (id *Identity) Apply(dst, x []float64) {
	checkDim("identity", id.d, dst, x)
	copy(dst, x)
}

// Diagonal is a diagonal linear map, the common shape of data-space Fisher
// metrics for independent likelihood families.
type Diagonal struct {
	diag []float64
}

// NewDiagonal returns the diagonal operator with the given entries.
// The slice is copied.
func NewDiagonal(diag []float64) *Diagonal {
	if len(diag) == 0 {
		panic("linalg: diagonal operator needs at least one entry")
	}
	d := make([]float64, len(diag))
	copy(d, diag)
	return &Diagonal{diag: d}
}

// Dim returns the operator dimension.
func (op *Diagonal) Dim() int { return len(op.diag) }

// Apply computes dst[i] = diag[i]·x[i].
func (op *Diagonal) Apply(dst, x []float64) {
	checkDim("diagonal", len(op.diag), dst, x)
	for i, d := range op.diag {
		dst[i] = d * x[i]
	}
}

// Scaled is c·A for a scalar c and operator A.
type Scaled struct {
	c  float64
	op Operator
}

// NewScaled returns the operator c·A.
func NewScaled(c float64, op Operator) *Scaled {
	return &Scaled{c: c, op: op}
}

// Dim returns the operator dimension.
func (s *Scaled) Dim() int { return s.op.Dim() }

// Apply computes dst = c·(A·x).
func (s *Scaled) Apply(dst, x []float64) {
	s.op.Apply(dst, x)
	for i := range dst {
		dst[i] *= s.c
	}
}

// Shifted is A + c·I. With c > 0 and A positive semi-definite the result is
// positive definite, which is what the Newton path relies on for its
// conjugate-gradient solves.
type Shifted struct {
	op Operator
	c  float64
}

// NewShifted returns the operator A + c·I.
func NewShifted(op Operator, c float64) *Shifted {
	return &Shifted{op: op, c: c}
}

// Dim returns the operator dimension.
func (s *Shifted) Dim() int { return s.op.Dim() }

// Apply computes dst = A·x + c·x.
func (s *Shifted) Apply(dst, x []float64) {
	s.op.Apply(dst, x)
	for i := range dst {
		dst[i] += s.c * x[i]
	}
}

// Averaged is the arithmetic mean of same-dimension operators.
type Averaged struct {
	ops []Operator
}

// NewAveraged returns the operator (A₁ + … + A_k)/k.
// All operators must share one dimension.
func NewAveraged(ops []Operator) *Averaged {
	if len(ops) == 0 {
		panic("linalg: averaging needs at least one operator")
	}
	d := ops[0].Dim()
	for i, op := range ops {
		if op.Dim() != d {
			panic(fmt.Sprintf("linalg: averaged operator %d has dimension %d, want %d", i, op.Dim(), d))
		}
	}
	cp := make([]Operator, len(ops))
	copy(cp, ops)
	return &Averaged{ops: cp}
}

// Dim returns the operator dimension.
func (a *Averaged) Dim() int { return a.ops[0].Dim() }

// Apply computes dst = mean_k(A_k·x).
func (a *Averaged) Apply(dst, x []float64) {
	d := a.Dim()
	checkDim("averaged", d, dst, x)
	tmp := make([]float64, d)
	for i := range dst {
		dst[i] = 0
	}
	for _, op := range a.ops {
		op.Apply(tmp, x)
		for i, v := range tmp {
			dst[i] += v
		}
	}
	inv := 1 / float64(len(a.ops))
	for i := range dst {
		dst[i] *= inv
	}
}

// Dense wraps an explicit symmetric matrix as an Operator.
type Dense struct {
	m *mat.SymDense
}

// NewDense wraps the given symmetric matrix. The matrix is referenced, not
// copied; callers must not mutate it afterwards.
func NewDense(m *mat.SymDense) *Dense {
	return &Dense{m: m}
}

// Dim returns the operator dimension.
func (d *Dense) Dim() int { r, _ := d.m.Dims(); return r }

// Apply computes dst = M·x.
func (d *Dense) Apply(dst, x []float64) {
	n := d.Dim()
	checkDim("dense", n, dst, x)
	out := mat.NewVecDense(n, dst)
	out.MulVec(d.m, mat.NewVecDense(n, x))
}

// Sym returns the wrapped matrix.
func (d *Dense) Sym() *mat.SymDense { return d.m }

// DenseFrom materializes an operator into an explicit symmetric matrix by
// applying it to the standard basis. Intended for moderate dimensions only;
// the result reads the lower triangle of the operator's action, so a
// non-symmetric operator is silently symmetrized.
func DenseFrom(op Operator) *mat.SymDense {
	d := op.Dim()
	col := make([]float64, d)
	e := make([]float64, d)
	m := mat.NewSymDense(d, nil)
	for j := 0; j < d; j++ {
		e[j] = 1
		op.Apply(col, e)
		e[j] = 0
		for i := j; i < d; i++ {
			m.SetSym(i, j, col[i])
		}
	}
	return m
}
