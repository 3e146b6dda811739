package wobbly

import (
	"errors"
	"fmt"
	"math"
)

// Default tuning for the mass-spring mesh.
const (
	DefaultFriction     = 2.0
	DefaultSpringK      = 14.0
	DefaultMass         = 15.0
	DefaultXTiles       = 8
	DefaultYTiles       = 8
	DefaultStopVelocity = 0.2
)

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("wobbly: invalid config")

// Config holds the simulation constants and mesh resolution. The zero value is
// not usable; start from DefaultConfig.
type Config struct {
	Friction float64
	K        float64
	Mass     float64

	XTiles int
	YTiles int

	// StopVelocity is the aggregate velocity below which a released mesh
	// is considered settled.
	StopVelocity float64

	// LegacyAnchorRow selects the grab row with width and XTiles instead of
	// height and YTiles.
	LegacyAnchorRow bool
}

// DefaultConfig returns the stock tuning on an 8x8 mesh.
func DefaultConfig() Config {
	return Config{
		Friction:     DefaultFriction,
		K:            DefaultSpringK,
		Mass:         DefaultMass,
		XTiles:       DefaultXTiles,
		YTiles:       DefaultYTiles,
		StopVelocity: DefaultStopVelocity,
	}
}

// Validate reports the first constant that cannot drive the mesh.
func (c Config) Validate() error {
	switch {
	case !finite(c.Friction) || c.Friction < 0:
		return fmt.Errorf("%w: friction %v", ErrInvalidConfig, c.Friction)
	case !finite(c.K) || c.K < 0:
		return fmt.Errorf("%w: spring constant %v", ErrInvalidConfig, c.K)
	case !finite(c.Mass) || c.Mass <= 0:
		return fmt.Errorf("%w: mass %v", ErrInvalidConfig, c.Mass)
	case c.XTiles < 1 || c.YTiles < 1:
		return fmt.Errorf("%w: tiles %dx%d", ErrInvalidConfig, c.XTiles, c.YTiles)
	case !finite(c.StopVelocity) || c.StopVelocity < 0:
		return fmt.Errorf("%w: stop velocity %v", ErrInvalidConfig, c.StopVelocity)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
