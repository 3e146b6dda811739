package wobbly

import "math"

// Point is a single mass node of the mesh. Positions are in the host's
// parent coordinate space.
type Point struct {
	X, Y   float64
	VX, VY float64
	FX, FY float64

	// Pinned points follow the pointer and ignore forces.
	Pinned bool
}

// Move translates the point without touching its velocity or pending force.
func (p *Point) Move(dx, dy float64) {
	p.X += dx
	p.Y += dy
}

// ApplyForce accumulates force until the next Step.
func (p *Point) ApplyForce(fx, fy float64) {
	p.FX += fx
	p.FY += fy
}

// Step integrates one unit timestep with semi-implicit Euler and consumes the
// pending force. It returns |vx+vy| after the update and |fx+fy| before it.
func (p *Point) Step(c Config) (velocity, force float64) {
	if p.Pinned {
		p.VX, p.VY = 0, 0
		p.FX, p.FY = 0, 0
		return 0, 0
	}

	fx := p.FX - c.Friction*p.VX
	fy := p.FY - c.Friction*p.VY

	p.VX += fx / c.Mass
	p.VY += fy / c.Mass

	p.X += p.VX
	p.Y += p.VY

	force = math.Abs(p.FX + p.FY)
	velocity = math.Abs(p.VX + p.VY)

	p.FX, p.FY = 0, 0
	return velocity, force
}
