package wobbly

// StepResult describes one simulation tick.
type StepResult struct {
	// Ready is false when the grid could not be built this tick; nothing was
	// integrated and the caller should try again next frame.
	Ready bool

	TotalVelocity float64
	TotalForce    float64

	// Stop is set once a releasable mesh has settled.
	Stop bool
}

// Simulator advances a grid by one fixed unit timestep per call.
type Simulator struct {
	cfg Config
}

// NewSimulator returns a simulator stepping with cfg.
func NewSimulator(cfg Config) *Simulator {
	return &Simulator{cfg: cfg}
}

// Step builds the grid if needed, steps every spring and then every point, and
// evaluates the stop condition. All springs run before any point moves.
func (s *Simulator) Step(g *Grid, surface Surface) StepResult {
	if !g.Ensure(surface) {
		return StepResult{}
	}

	for i := range g.springs {
		g.springs[i].Step(s.cfg)
	}

	res := StepResult{Ready: true}
	for i := range g.points {
		v, f := g.points[i].Step(s.cfg)
		res.TotalVelocity += v
		res.TotalForce += f
	}

	if res.TotalForce > 0 {
		g.wobbling = true
	}

	// A held grab may pause the motion; only a released grid can stop.
	if g.canStop && g.wobbling && res.TotalVelocity < s.cfg.StopVelocity {
		res.Stop = true
	}
	return res
}
