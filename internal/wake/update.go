package wake

import (
	"github.com/sondreal/liftline/internal/geo"
	"github.com/sondreal/liftline/internal/lineforce"
	"github.com/sondreal/liftline/internal/vortex"
)

// Synchronize updates the wake to the current wing geometry. For a steady
// wake the horseshoes are rebuilt with trailing legs along meanFlowDirection.
// For a dynamic wake the first point row is pinned to the wing span points.
// Call once per time step before solving.
func (w *Wake) Synchronize(model *lineforce.Model, meanFlowDirection geo.Vec3) {
	switch w.Kind {
	case Steady:
		w.rebuildHorseshoes(model, meanFlowDirection)
	default:
		spanPoints := model.SpanPoints()
		for col, p := range spanPoints {
			w.wakePoints[w.points.Index(0, col)] = p
		}
		w.updatePanelGeometry()
	}
}

func (w *Wake) rebuildHorseshoes(model *lineforce.Model, meanFlowDirection geo.Vec3) {
	wakeVector := meanFlowDirection.Normalize().Scale(w.wakeLength)

	for i, line := range model.SpanLines() {
		w.horseshoes[i] = vortex.NewHorseshoe(line.Start, line.End, wakeVector, w.Model.CoreLength)
	}
}

// UpdateAfterStep streams the wake one time step after the circulation has
// been solved: the first free point row is re-positioned behind the wing,
// the interior rows advect with the local velocity, the last row is
// stretched along the freestream, and the panel strengths convect
// downstream. A steady wake only takes the new strength.
//
// ctrlFreestream holds the onset velocity at the control points;
// wakeFreestream holds the onset velocity at every wake point in logical
// order.
func (w *Wake) UpdateAfterStep(
	dt float64,
	model *lineforce.Model,
	ctrlFreestream, wakeFreestream []geo.Vec3,
	newStrength []float64,
) {
	if w.Kind == Steady {
		w.SetWingStrength(newStrength)
		w.stepsCompleted++
		return
	}

	w.advancePoints(dt, model, ctrlFreestream, wakeFreestream)
	w.updatePanelGeometry()
	w.convectStrength(newStrength)
	w.stepsCompleted++
}

// advancePoints rotates the point grid one row and rebuilds the special
// rows. After rotation each logical row holds the points of the previous
// row, so interior rows advect in place.
func (w *Wake) advancePoints(dt float64, model *lineforce.Model, ctrlFreestream, wakeFreestream []geo.Vec3) {
	width := w.points.Width()
	rows := w.points.Rows()

	velocity := w.velocityAtWakePoints(wakeFreestream)
	change := w.firstRowChangeVectors(model, ctrlFreestream)

	oldFirstFree := make([]geo.Vec3, width)
	for col := 0; col < width; col++ {
		oldFirstFree[col] = w.wakePoints[w.points.Index(1, col)]
	}

	w.points.Rotate()

	// Interior rows: logical row r now holds the old row r-1, which moves
	// with the velocity it had there.
	for row := 2; row < rows-1; row++ {
		for col := 0; col < width; col++ {
			i := w.points.Index(row, col)
			integrated := w.wakePoints[i].Add(velocity[(row-1)*width+col].Scale(dt))

			if damping := w.Settings.ShapeDampingFactor; damping > 0 {
				old := w.wakePoints[w.points.Index(row+1, col)]
				w.wakePoints[i] = old.Scale(damping).Add(integrated.Scale(1.0 - damping))
			} else {
				w.wakePoints[i] = integrated
			}
		}
	}

	// Row 0 is the wing trailing geometry itself.
	spanPoints := model.SpanPoints()
	for col, p := range spanPoints {
		w.wakePoints[w.points.Index(0, col)] = p
	}

	// Row 1 sits one shedding length behind the wing.
	for col := 0; col < width; col++ {
		estimated := spanPoints[col].Add(change[col])
		damping := w.Settings.ShapeDampingFactor
		w.wakePoints[w.points.Index(1, col)] =
			oldFirstFree[col].Scale(damping).Add(estimated.Scale(1.0 - damping))
	}

	// The last row stretches along the freestream to close the sheet far
	// downstream.
	chordAtSpanPoints := model.SpanPointValues(model.ChordVectors())
	for col := 0; col < width; col++ {
		last := w.points.Index(rows-1, col)
		prev := w.points.Index(rows-2, col)

		direction := wakeFreestream[(rows-1)*width+col].Normalize()
		stretch := w.Settings.LastPanelRelativeLength * chordAtSpanPoints[col].Length()
		w.wakePoints[last] = w.wakePoints[prev].Add(direction.Scale(stretch))
	}
}

// velocityAtWakePoints returns freestream plus induced velocity at every
// wake point, in logical order. Rows beyond the configured end row, and the
// first few startup steps, move with the freestream only.
func (w *Wake) velocityAtWakePoints(wakeFreestream []geo.Vec3) []geo.Vec3 {
	width := w.points.Width()

	velocity := make([]geo.Vec3, len(wakeFreestream))
	copy(velocity, wakeFreestream)

	endRow := w.Settings.InducedVelocityEndRow
	if endRow < 0 || endRow > w.points.Rows() {
		endRow = w.points.Rows()
	}

	if endRow == 0 || w.stepsCompleted <= 2 {
		return velocity
	}

	affected := make([]geo.Vec3, 0, endRow*width)
	for row := 0; row < endRow; row++ {
		for col := 0; col < width; col++ {
			affected = append(affected, w.wakePoints[w.points.Index(row, col)])
		}
	}

	induced := w.InducedVelocities(affected)
	for i := range induced {
		velocity[i] = velocity[i].Add(induced[i])
	}
	return velocity
}

// firstRowChangeVectors computes, per span point, the offset from the wing
// trailing geometry to the first free wake row. The direction blends the
// chord and local velocity directions by the amount of flow separation, so
// an attached flow sheds along the chord and a stalled one along the flow.
func (w *Wake) firstRowChangeVectors(model *lineforce.Model, ctrlFreestream []geo.Vec3) []geo.Vec3 {
	ctrlPoints := model.CtrlPoints()
	lines := model.SpanLines()
	chords := model.ChordVectors()

	var induced []geo.Vec3
	if w.Settings.InducedVelocityEndRow == 0 {
		induced = make([]geo.Vec3, len(ctrlPoints))
	} else {
		induced = w.InducedVelocities(ctrlPoints)
	}

	velocity := make([]geo.Vec3, len(ctrlPoints))
	for i := range velocity {
		velocity[i] = ctrlFreestream[i].Add(induced[i])
	}

	angles := model.AnglesOfAttack(velocity)

	change := make([]geo.Vec3, len(ctrlPoints))
	for i := range change {
		sec := model.SectionOf(i)
		chordLength := chords[i].Length()
		speed := velocity[i].Length()

		wakeAngle := sec.WakeAngle(chordLength, speed)
		velocityDirection := velocity[i].
			RotateAroundAxis(wakeAngle, lines[i].Direction()).
			Normalize()

		direction := velocityDirection
		if w.Settings.UseChordDirection {
			separation := sec.FlowSeparation(angles[i])
			chordDirection := chords[i].Normalize()
			direction = velocityDirection.Scale(separation).
				Add(chordDirection.Scale(1.0 - separation)).
				Normalize()
		}

		change[i] = direction.Scale(w.Settings.FirstPanelRelativeLength * chordLength)
	}

	return model.SpanPointValues(change)
}

// convectStrength rotates the strength grid so each panel keeps the
// circulation it was shed with, applies the downstream damping, and writes
// the newly solved circulation into the first row.
func (w *Wake) convectStrength(newStrength []float64) {
	w.panels.Rotate()

	if factor := 1.0 - w.Settings.StrengthDampingFactor; factor != 1.0 {
		for row := 1; row < w.panels.Rows(); row++ {
			for col := 0; col < w.panels.Width(); col++ {
				w.strengths[w.panels.Index(row, col)] *= factor
			}
		}
	}

	w.SetWingStrength(newStrength)
}

// initializeFromChord seeds the wake shape by running synthetic time steps
// with a building velocity derived from the mean chord vector, so the sheet
// starts out trailing behind the wings instead of collapsed onto them.
func (w *Wake) initializeFromChord(model *lineforce.Model, relativeLength float64) {
	chords := model.ChordVectors()

	var meanChord geo.Vec3
	for _, c := range chords {
		meanChord = meanChord.Add(c)
	}
	meanChord = meanChord.Scale(1.0 / float64(len(chords)))

	wakeLength := relativeLength * meanChord.Length()
	buildingVelocity := meanChord.Scale(wakeLength / float64(w.panels.Rows()) / meanChord.Length())

	w.initializeWithVelocity(model, buildingVelocity, 1.0)
}

// initializeWithVelocity builds the initial wake shape by advecting the grid
// with a constant velocity for as many steps as there are point rows.
func (w *Wake) initializeWithVelocity(model *lineforce.Model, buildingVelocity geo.Vec3, dt float64) {
	for i := range w.strengths {
		w.strengths[i] = 0
	}

	ctrlFreestream := make([]geo.Vec3, model.NrSpanLines())
	for i := range ctrlFreestream {
		ctrlFreestream[i] = buildingVelocity
	}
	wakeFreestream := make([]geo.Vec3, w.points.NrElements())
	for i := range wakeFreestream {
		wakeFreestream[i] = buildingVelocity
	}

	w.Synchronize(model, buildingVelocity)

	for step := 0; step < w.points.Rows(); step++ {
		w.advancePoints(dt, model, ctrlFreestream, wakeFreestream)
	}

	w.updatePanelGeometry()
}

// WakePoints returns a copy of the wake points in logical streamwise-major
// order. Steady wakes have no point grid and return nil.
func (w *Wake) WakePoints() []geo.Vec3 {
	if w.Kind == Steady {
		return nil
	}

	out := make([]geo.Vec3, 0, w.points.NrElements())
	for row := 0; row < w.points.Rows(); row++ {
		for col := 0; col < w.points.Width(); col++ {
			out = append(out, w.wakePoints[w.points.Index(row, col)])
		}
	}
	return out
}

// NrWakePoints is the number of points in the wake grid.
func (w *Wake) NrWakePoints() int {
	if w.Kind == Steady {
		return 0
	}
	return w.points.NrElements()
}

// Strengths returns a copy of the panel strengths in logical order.
func (w *Wake) Strengths() []float64 {
	if w.Kind == Steady {
		out := make([]float64, len(w.steadyStrength))
		copy(out, w.steadyStrength)
		return out
	}

	out := make([]float64, 0, w.panels.NrElements())
	for row := 0; row < w.panels.Rows(); row++ {
		for col := 0; col < w.panels.Width(); col++ {
			out = append(out, w.strengths[w.panels.Index(row, col)])
		}
	}
	return out
}
