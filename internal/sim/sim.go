// Package sim drives time-domain lifting line simulations: it owns the line
// force model, the wake and the solver settings, advances them step by step
// and accumulates results.
package sim

import (
	"context"
	"fmt"

	"github.com/sondreal/liftline/internal/control"
	"github.com/sondreal/liftline/internal/geo"
	"github.com/sondreal/liftline/internal/lineforce"
	"github.com/sondreal/liftline/internal/motion"
	"github.com/sondreal/liftline/internal/solver"
	"github.com/sondreal/liftline/internal/wake"
	"github.com/sondreal/liftline/internal/wind"
)

// StepResult holds everything computed in one time step.
type StepResult struct {
	Step           int
	Time           float64
	Solver         solver.Result
	AnglesOfAttack []float64
	SectionalForce []geo.Vec3
	WingForce      []geo.Vec3
	WingMoment     []geo.Vec3
	TotalForce     geo.Vec3
	WingAngles     []float64
}

// Observer is called after every completed step. I/O belongs here, never
// inside the solver loop.
type Observer func(StepResult)

// Simulation couples the model, wake, wind and solver over a shared
// timeline. One simulation instance owns its wake and operator state
// exclusively; independent simulations never share them.
type Simulation struct {
	Model          *lineforce.Model
	Wake           *wake.Wake
	SolverSettings solver.Settings
	Wind           wind.Environment

	// Body optionally adds rigid-body motion to the onset flow.
	Body *motion.RigidBody
	// Controller optionally trims the wing angles between steps, fed by
	// the previous step's angles of attack.
	Controller *control.WingAngle
	// MomentReference is the point wing moments are taken about.
	MomentReference geo.Vec3

	TimeStep float64

	time        float64
	step        int
	circulation []float64
}

// New wires a simulation together. The initial circulation is zero.
func New(model *lineforce.Model, w *wake.Wake, settings solver.Settings, env wind.Environment, dt float64) (*Simulation, error) {
	if dt <= 0 {
		return nil, fmt.Errorf("sim: time step must be positive, got %g", dt)
	}

	return &Simulation{
		Model:          model,
		Wake:           w,
		SolverSettings: settings,
		Wind:           env,
		TimeStep:       dt,
		circulation:    make([]float64, model.NrSpanLines()),
	}, nil
}

// SetInitialCirculation seeds the first step's strength guess, for example
// from a coarser run.
func (s *Simulation) SetInitialCirculation(strength []float64) {
	copy(s.circulation, strength)
}

// Time returns the current simulation time.
func (s *Simulation) Time() float64 { return s.time }

// Step advances the simulation one time step: synchronize the wake to the
// wing geometry, assemble the frozen operator, solve the circulation, then
// stream the wake with the solved strengths.
func (s *Simulation) Step() (StepResult, error) {
	ctrlPoints := s.Model.CtrlPoints()
	ctrlFreestream := s.onsetFlow(ctrlPoints)

	var wakeFreestream []geo.Vec3
	if points := s.Wake.WakePoints(); points != nil {
		wakeFreestream = s.onsetFlow(points)
	}

	s.Wake.Synchronize(s.Model, meanVelocity(ctrlFreestream))

	frozen := wake.NewFrozen(s.Model, s.Wake)

	solved, err := solver.Solve(s.Model, frozen, ctrlFreestream, s.circulation, s.SolverSettings)
	if err != nil {
		return StepResult{}, err
	}

	s.Wake.UpdateAfterStep(s.TimeStep, s.Model, ctrlFreestream, wakeFreestream, solved.Circulation)
	s.circulation = solved.Circulation

	result := StepResult{
		Step:           s.step,
		Time:           s.time,
		Solver:         solved,
		AnglesOfAttack: s.Model.AnglesOfAttack(solved.CtrlPointVelocity),
		SectionalForce: s.Model.SectionalForces(solved.Circulation, solved.CtrlPointVelocity),
		WingForce:      s.Model.IntegratedForces(solved.Circulation, solved.CtrlPointVelocity),
		WingMoment:     s.Model.IntegratedMoments(solved.Circulation, solved.CtrlPointVelocity, s.MomentReference),
		TotalForce:     s.Model.TotalForce(solved.Circulation, solved.CtrlPointVelocity),
		WingAngles:     append([]float64(nil), s.Model.LocalWingAngles...),
	}

	if s.Controller != nil {
		s.applyController(result.AnglesOfAttack)
	}

	s.step++
	s.time += s.TimeStep

	return result, nil
}

// Run advances the simulation for nrSteps, invoking the observer after each
// step, and returns all results. The context is checked between steps only;
// a single step always runs to completion.
func (s *Simulation) Run(ctx context.Context, nrSteps int, observe Observer) ([]StepResult, error) {
	results := make([]StepResult, 0, nrSteps)

	for i := 0; i < nrSteps; i++ {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		result, err := s.Step()
		if err != nil {
			return results, err
		}

		if observe != nil {
			observe(result)
		}
		results = append(results, result)
	}

	return results, nil
}

// onsetFlow is the wind plus the apparent flow from body motion at each
// point.
func (s *Simulation) onsetFlow(points []geo.Vec3) []geo.Vec3 {
	out := s.Wind.VelocitiesAt(points)
	if s.Body != nil {
		for i, p := range points {
			out[i] = out[i].Add(s.Body.ApparentFlowAt(p))
		}
	}
	return out
}

// applyController feeds the wing-averaged angles of attack to the
// controller and installs the commanded wing angles for the next step.
func (s *Simulation) applyController(anglesOfAttack []float64) {
	mean := make([]float64, s.Model.NrWings())
	for wing, r := range s.Model.WingRanges {
		sum := 0.0
		for i := r.Start; i < r.End; i++ {
			sum += anglesOfAttack[i]
		}
		mean[wing] = sum / float64(r.Len())
	}

	commands := s.Controller.Step(s.TimeStep, mean)
	copy(s.Model.LocalWingAngles, commands)
}

func meanVelocity(velocities []geo.Vec3) geo.Vec3 {
	var sum geo.Vec3
	for _, v := range velocities {
		sum = sum.Add(v)
	}
	return sum.Scale(1.0 / float64(len(velocities)))
}
