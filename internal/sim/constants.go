// Package sim holds the bouncing-sphere simulation: its state, the scene
// constants, the per-tick integrator and the mapping of input actions onto
// state changes.
package sim

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrInvalidConstants is returned by Constants.Validate.
var ErrInvalidConstants = errors.New("invalid simulation constants")

// Bounds are the wall planes on the horizontal axes.
type Bounds struct {
	MinX float32 `yaml:"min_x"` // left wall
	MaxX float32 `yaml:"max_x"` // right wall
	MinZ float32 `yaml:"min_z"` // far wall
	MaxZ float32 `yaml:"max_z"` // near wall
}

// Constants are the immutable physical parameters of a scene.
type Constants struct {
	G                float32 `yaml:"g"`
	Mass             float32 `yaml:"mass"`
	VelocityConstant float32 `yaml:"velocity"`

	Radius float32 `yaml:"radius"`
	Ground float32 `yaml:"ground"`
	Bounds Bounds  `yaml:"bounds"`

	StartPosition mgl32.Vec3 `yaml:"start_position"`
	// StartVelocity is expressed in multiples of Impulse.
	StartVelocity mgl32.Vec3 `yaml:"start_velocity"`
	StartPaused   bool       `yaml:"start_paused"`

	SpinStep  float32 `yaml:"spin_step"` // degrees per tick
	Clockwise bool    `yaml:"clockwise"`

	CameraModes int `yaml:"camera_modes"`
}

// Gravity is the per-tick vertical acceleration (negative).
func (c Constants) Gravity() float32 {
	return -c.Mass * c.G
}

// Impulse is the velocity change applied by one movement input.
func (c Constants) Impulse() float32 {
	return c.Mass * c.VelocityConstant
}

// InitialVelocity returns the starting velocity in world units.
func (c Constants) InitialVelocity() mgl32.Vec3 {
	return c.StartVelocity.Mul(c.Impulse())
}

// GroundLimit is the lowest height of the sphere center.
func (c Constants) GroundLimit() float32 {
	return c.Ground + c.Radius
}

// Validate checks the constants describe a box the sphere fits in.
func (c Constants) Validate() error {
	if c.Radius <= 0 {
		return fmt.Errorf("radius %v must be positive: %w", c.Radius, ErrInvalidConstants)
	}
	if c.Mass <= 0 || c.G <= 0 {
		return fmt.Errorf("mass and g must be positive: %w", ErrInvalidConstants)
	}
	if c.Bounds.MaxX-c.Bounds.MinX < 2*c.Radius {
		return fmt.Errorf("x bounds [%v, %v] narrower than the sphere: %w", c.Bounds.MinX, c.Bounds.MaxX, ErrInvalidConstants)
	}
	if c.Bounds.MaxZ-c.Bounds.MinZ < 2*c.Radius {
		return fmt.Errorf("z bounds [%v, %v] narrower than the sphere: %w", c.Bounds.MinZ, c.Bounds.MaxZ, ErrInvalidConstants)
	}
	if c.CameraModes < 1 || c.CameraModes > int(numCameraModes) {
		return fmt.Errorf("camera modes %d out of range: %w", c.CameraModes, ErrInvalidConstants)
	}
	return nil
}
