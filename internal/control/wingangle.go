package control

// WingAngle drives each wing's local angle so that the wing-averaged angle
// of attack tracks a set point, one PID per wing. Commands are relative
// angle adjustments applied to the current wing angles.
type WingAngle struct {
	pids []*PID
}

// NewWingAngle creates one controller per wing with identical gains. The
// angle of attack set point and command limits are in radians.
func NewWingAngle(nrWings int, kp, ki, kd, setPoint, minAngle, maxAngle float64) *WingAngle {
	pids := make([]*PID, nrWings)
	for i := range pids {
		pids[i] = NewPID(kp, ki, kd, setPoint, minAngle, maxAngle)
	}
	return &WingAngle{pids: pids}
}

// Step takes the wing-averaged angles of attack from the last solved step
// and returns the new wing angle command for each wing.
func (c *WingAngle) Step(dt float64, meanAnglesOfAttack []float64) []float64 {
	out := make([]float64, len(c.pids))
	for i, pid := range c.pids {
		out[i] = pid.Step(dt, meanAnglesOfAttack[i])
	}
	return out
}

// NrWings returns the number of controlled wings.
func (c *WingAngle) NrWings() int { return len(c.pids) }
