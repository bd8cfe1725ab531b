package wake

import (
	"gonum.org/v1/gonum/mat"

	"github.com/sondreal/liftline/internal/compute"
	"github.com/sondreal/liftline/internal/geo"
	"github.com/sondreal/liftline/internal/lineforce"
)

// Frozen decomposes a wake's influence at the control points into a fixed
// part, from panels whose strength is already known, and a linear operator
// mapping the unknown bound circulation to induced velocity. Assembled once
// per time step; evaluating it inside the solver loop is a matrix-vector
// product per velocity component.
type Frozen struct {
	fixed      []geo.Vec3
	vx, vy, vz *mat.Dense
}

// NewFrozen assembles the operator for the current wake state. The N
// unit-strength probes are independent and run in parallel, each writing its
// own matrix row.
func NewFrozen(model *lineforce.Model, w *Wake) *Frozen {
	ctrlPoints := model.CtrlPoints()
	n := len(ctrlPoints)

	f := &Frozen{
		fixed: w.InducedVelocitiesFromFreeWake(ctrlPoints),
		vx:    mat.NewDense(n, n, nil),
		vy:    mat.NewDense(n, n, nil),
		vz:    mat.NewDense(n, n, nil),
	}

	compute.ParallelFor(n, 1, func(start, end int) {
		for row := start; row < end; row++ {
			rowWing := w.wingIndexOf(row)

			for col := 0; col < n; col++ {
				if w.Settings.NeglectSelfInduced && w.wingIndexOf(col) == rowWing {
					continue
				}

				u := w.UnitVelocityFromBoundElement(col, ctrlPoints[row])
				f.vx.Set(row, col, u.X)
				f.vy.Set(row, col, u.Y)
				f.vz.Set(row, col, u.Z)
			}
		}
	})

	return f
}

// Velocities returns the induced velocity at each control point for the
// given bound circulation: fixed plus operator times strength.
func (f *Frozen) Velocities(strength []float64) []geo.Vec3 {
	n := len(f.fixed)
	if len(strength) != n {
		panic("wake: strength length does not match frozen operator size")
	}

	s := mat.NewVecDense(n, strength)

	var ux, uy, uz mat.VecDense
	ux.MulVec(f.vx, s)
	uy.MulVec(f.vy, s)
	uz.MulVec(f.vz, s)

	out := make([]geo.Vec3, n)
	for i := range out {
		out[i] = f.fixed[i].Add(geo.Vec3{
			X: ux.AtVec(i),
			Y: uy.AtVec(i),
			Z: uz.AtVec(i),
		})
	}
	return out
}
