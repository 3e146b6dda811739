package wobbly

// Spring pulls two points of the same grid toward a fixed offset from each
// other. It does not own its endpoints.
type Spring struct {
	A, B *Point

	// RestX, RestY is the resting value of B minus A.
	RestX, RestY float64
}

// Step applies equal and opposite forces to both endpoints. Friction is
// handled by the points.
func (s *Spring) Step(c Config) {
	dx := (s.B.X - s.A.X - s.RestX) * 0.5 * c.K
	dy := (s.B.Y - s.A.Y - s.RestY) * 0.5 * c.K
	s.A.ApplyForce(dx, dy)

	dx = (s.A.X - s.B.X + s.RestX) * 0.5 * c.K
	dy = (s.A.Y - s.B.Y + s.RestY) * 0.5 * c.K
	s.B.ApplyForce(dx, dy)
}
