package mgvi

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/infer/internal/fisher"
	"github.com/born-ml/infer/internal/model"
	"github.com/born-ml/infer/internal/solver"
)

// NewtonOptions tunes the Newton conjugate-gradient refinement loop.
type NewtonOptions struct {
	// MaxIterations bounds the number of Newton updates. Zero performs no
	// updates and returns the center untouched. Exhausting the budget is a
	// normal terminal state, not an error.
	MaxIterations int

	// GradAbsTol stops the loop when the KL gradient norm falls below it,
	// checked before each solve. Zero disables the check.
	GradAbsTol float64

	// StepAbsTol stops the loop when the scaled shift is shorter than it;
	// that shift is discarded, not applied. Zero disables the check.
	StepAbsTol float64

	// Trace receives one record after each applied update. Informational
	// only; nil disables tracing.
	Trace func(NewtonTrace)
}

// NewtonTrace is one Newton iteration record.
type NewtonTrace struct {
	Iteration int       // 1-based update count
	Position  []float64 // position after the update
	Gradient  []float64 // KL gradient that produced the update
	Shift     []float64 // applied shift, already scaled by Speed
	GradNorm  float64
	ShiftNorm float64
	CG        solver.Stats
}

// newton refines center against a fixed residual batch. The averaged
// curvature is assembled once and reused by every inner CG solve; each
// iteration solves for the raw shift, scales it by speed and walks downhill.
func (e *Engine) newton(fwd model.Forward, data []float64, batch *Batch, center []float64, speed float64, opts NewtonOptions) ([]float64, error) {
	pos := clone(center)
	if opts.MaxIterations <= 0 {
		return pos, nil
	}

	curv, err := fisher.AveragedFisher(e.provider, fwd, batch.samples, center)
	if err != nil {
		return nil, err
	}
	cg := solver.NewCG(solver.CGConfig{})
	shift := make([]float64, len(pos))

	for it := 1; it <= opts.MaxIterations; it++ {
		g, err := KLGradient(e.provider, fwd, data, batch, pos)
		if err != nil {
			return nil, err
		}
		gradNorm := floats.Norm(g, 2)
		if opts.GradAbsTol > 0 && gradNorm < opts.GradAbsTol {
			break
		}

		stats, err := cg.Solve(shift, curv, g)
		if err != nil {
			return nil, fmt.Errorf("mgvi: newton iteration %d: %w", it, err)
		}
		floats.Scale(speed, shift)
		shiftNorm := floats.Norm(shift, 2)
		if opts.StepAbsTol > 0 && shiftNorm < opts.StepAbsTol {
			break
		}

		floats.Sub(pos, shift)
		if opts.Trace != nil {
			opts.Trace(NewtonTrace{
				Iteration: it,
				Position:  clone(pos),
				Gradient:  g,
				Shift:     clone(shift),
				GradNorm:  gradNorm,
				ShiftNorm: shiftNorm,
				CG:        stats,
			})
		}
	}
	return pos, nil
}
