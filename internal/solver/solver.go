// Package solver iterates the lifting line circulation to a self-consistent
// solution: induced velocity gives angle of attack, angle of attack gives
// sectional lift, lift gives circulation, circulation changes the induced
// velocity. A damped fixed-point iteration closes the loop.
package solver

import (
	"fmt"
	"math"

	"github.com/sondreal/liftline/internal/geo"
	"github.com/sondreal/liftline/internal/lineforce"
	"github.com/sondreal/liftline/internal/wake"
)

// Settings for the fixed-point iteration. The damping factor and convergence
// parameters are empirically tuned values; stiffer configurations, such as
// close-coupled multi-wing layouts, need a smaller damping factor to stay
// stable while undamped iteration is known to diverge.
type Settings struct {
	MaxIterations int
	// DampingFactor blends the new circulation estimate into the current
	// guess, in (0, 1].
	DampingFactor float64
	// AllowedError is the residual below which an iteration counts as
	// converged.
	AllowedError float64
	// MinimumSuccesses is the number of consecutive iterations that must
	// stay below AllowedError, guarding against a single lucky
	// oscillation crossing zero.
	MinimumSuccesses int
}

// DefaultSettings returns the usual starting point for well-conditioned
// single wing cases.
func DefaultSettings() Settings {
	return Settings{
		MaxIterations:    1000,
		DampingFactor:    0.5,
		AllowedError:     1e-4,
		MinimumSuccesses: 5,
	}
}

func (s Settings) validate() error {
	if s.MaxIterations < 1 {
		return fmt.Errorf("solver: max iterations must be at least 1, got %d", s.MaxIterations)
	}
	if s.DampingFactor <= 0 || s.DampingFactor > 1 {
		return fmt.Errorf("solver: damping factor must be in (0, 1], got %g", s.DampingFactor)
	}
	if s.AllowedError <= 0 {
		return fmt.Errorf("solver: allowed error must be positive, got %g", s.AllowedError)
	}
	if s.MinimumSuccesses < 1 {
		return fmt.Errorf("solver: minimum successes must be at least 1, got %d", s.MinimumSuccesses)
	}
	return nil
}

// Result of one circulation solve. Non-convergence is not an error: callers
// that ignore Converged and Residual risk using a physically meaningless
// circulation, so check them.
type Result struct {
	// InputVelocity is the onset flow at the control points, without
	// induced contributions.
	InputVelocity []geo.Vec3
	// Circulation is the solved bound circulation per span line.
	Circulation []float64
	// CtrlPointVelocity is the total velocity at the control points for
	// the solved circulation, with the spanwise component removed.
	CtrlPointVelocity []geo.Vec3
	// Iterations actually run.
	Iterations int
	// Residual is the last max absolute difference between the current
	// strength and its Kutta-Joukowski target, measured before the damping
	// update. The applied strength change per iteration is DampingFactor
	// times this value, so AllowedError thresholds read against the
	// undamped difference.
	Residual float64
	// Converged reports whether the residual stayed below the allowed
	// error for the required number of consecutive iterations.
	Converged bool
	// ResidualHistory holds the residual per iteration.
	ResidualHistory []float64
}

// convergence counts consecutive iterations below the allowed error.
type convergence struct {
	successes int
	settings  Settings
}

func (c *convergence) test(residual float64) bool {
	if residual < c.settings.AllowedError {
		c.successes++
	} else {
		c.successes = 0
	}
	return c.successes >= c.settings.MinimumSuccesses
}

// Solve iterates the circulation for a frozen wake state. The initial guess
// is usually the previous time step's circulation, or zeros. Degenerate
// inputs (zero-length segments, zero velocity) are not special-cased; the
// arithmetic propagates NaN or Inf per IEEE semantics.
func Solve(
	model *lineforce.Model,
	frozen *wake.Frozen,
	freestream []geo.Vec3,
	initial []float64,
	settings Settings,
) (Result, error) {
	if err := settings.validate(); err != nil {
		return Result{}, err
	}
	n := model.NrSpanLines()
	if len(freestream) != n {
		return Result{}, fmt.Errorf("solver: %d freestream velocities for %d span lines", len(freestream), n)
	}
	if len(initial) != n {
		return Result{}, fmt.Errorf("solver: %d initial strengths for %d span lines", len(initial), n)
	}

	strength := make([]float64, n)
	copy(strength, initial)

	conv := convergence{settings: settings}

	result := Result{
		InputVelocity:   append([]geo.Vec3(nil), freestream...),
		ResidualHistory: make([]float64, 0, settings.MaxIterations),
	}

	for iteration := 0; iteration < settings.MaxIterations; iteration++ {
		// Spanwise flow carries no sectional lift, so it is removed
		// before the Kutta-Joukowski inversion.
		velocity := model.RemoveSpanVelocity(totalVelocity(frozen, freestream, strength))
		target := model.TargetCirculation(velocity)

		residual := 0.0
		for i := range strength {
			diff := target[i] - strength[i]
			if d := math.Abs(diff); d > residual {
				residual = d
			}
		}

		result.Iterations = iteration + 1
		result.Residual = residual
		result.ResidualHistory = append(result.ResidualHistory, residual)

		if conv.test(residual) {
			result.Converged = true
			break
		}

		for i := range strength {
			strength[i] += settings.DampingFactor * (target[i] - strength[i])
		}
	}

	result.Circulation = strength
	result.CtrlPointVelocity = model.RemoveSpanVelocity(totalVelocity(frozen, freestream, strength))

	return result, nil
}

func totalVelocity(frozen *wake.Frozen, freestream []geo.Vec3, strength []float64) []geo.Vec3 {
	induced := frozen.Velocities(strength)

	out := make([]geo.Vec3, len(freestream))
	for i := range out {
		out[i] = freestream[i].Add(induced[i])
	}
	return out
}
