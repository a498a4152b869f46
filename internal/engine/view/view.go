// Package view derives the per-frame model-view, normal, camera and
// projection matrices from the simulation state.
package view

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/bounce-box/internal/engine/geometry"
)

// ErrInvalidParams is returned by Params.Validate.
var ErrInvalidParams = errors.New("invalid view parameters")

// CameraPose is one entry of the fixed camera table: a translation applied
// after a rotation of RotateDeg degrees about Axis.
type CameraPose struct {
	Translate mgl32.Vec3 `yaml:"translate"`
	RotateDeg float32    `yaml:"rotate_deg"`
	Axis      mgl32.Vec3 `yaml:"axis"`
}

// Matrix returns the camera transform.
func (c CameraPose) Matrix() mgl32.Mat4 {
	m := mgl32.Translate3D(c.Translate[0], c.Translate[1], c.Translate[2])
	if c.RotateDeg != 0 {
		m = m.Mul4(mgl32.HomogRotate3D(mgl32.DegToRad(c.RotateDeg), c.Axis.Normalize()))
	}
	return m
}

// Lighting holds the light colors passed to the shader. Positions live in
// Params since the shadow projection uses them too.
type Lighting struct {
	Ambient  mgl32.Vec4 `yaml:"ambient"`
	Diffuse  mgl32.Vec4 `yaml:"diffuse"`
	Specular mgl32.Vec4 `yaml:"specular"`
}

// Params are the fixed view parameters of a scene.
type Params struct {
	Viewer mgl32.Vec3 `yaml:"viewer"` // subtracted from every object translation

	// Sphere orientation: tilt about Z, then a turn about X, then the live
	// spin angle about SpinAxis, all in object space.
	SphereTiltDeg float32    `yaml:"sphere_tilt_deg"`
	SphereTurnDeg float32    `yaml:"sphere_turn_deg"`
	SpinAxis      mgl32.Vec3 `yaml:"spin_axis"`

	GroundOffset  mgl32.Vec3 `yaml:"ground_offset"`
	GroundTiltDeg float32    `yaml:"ground_tilt_deg"` // about X

	LightTop  mgl32.Vec3 `yaml:"light_top"`
	LightNear mgl32.Vec3 `yaml:"light_near"`
	Lighting  Lighting   `yaml:"lighting"`

	// ShadowDamping (< 1) shortens the projected shadow offset.
	ShadowDamping float32 `yaml:"shadow_damping"`
	// ShadowBias lifts the discs off their planes to avoid z-fighting.
	ShadowBias   float32 `yaml:"shadow_bias"`
	GroundHeight float32 `yaml:"ground_height"`
	FarWall      float32 `yaml:"far_wall"`

	Cameras []CameraPose `yaml:"cameras"`

	FovYDeg float32 `yaml:"fov_y_deg"`
	Near    float32 `yaml:"near"`
	Far     float32 `yaml:"far"`
}

// Frame holds the matrices of one frame.
type Frame struct {
	Sphere       mgl32.Mat4
	Ground       mgl32.Mat4 // shared by the ground and the wall
	GroundShadow mgl32.Mat4
	WallShadow   mgl32.Mat4
	Camera       mgl32.Mat4

	SphereNormal mgl32.Mat4
	GroundNormal mgl32.Mat4
}

// Model returns the model-view matrix used to draw s.
func (f *Frame) Model(s geometry.Surface) mgl32.Mat4 {
	switch s {
	case geometry.Sphere:
		return f.Sphere
	case geometry.GroundShadow:
		return f.GroundShadow
	case geometry.WallShadow:
		return f.WallShadow
	default:
		return f.Ground
	}
}

// Normal returns the normal matrix used to draw s. Shadow discs are unlit
// and get the identity.
func (f *Frame) Normal(s geometry.Surface) mgl32.Mat4 {
	switch s {
	case geometry.Sphere:
		return f.SphereNormal
	case geometry.Ground, geometry.Wall:
		return f.GroundNormal
	default:
		return mgl32.Ident4()
	}
}

// Validate checks the parameters produce finite matrices.
func (p Params) Validate() error {
	if p.SpinAxis.Len() == 0 {
		return fmt.Errorf("spin axis must be non-zero: %w", ErrInvalidParams)
	}
	for i, c := range p.Cameras {
		if c.RotateDeg != 0 && c.Axis.Len() == 0 {
			return fmt.Errorf("camera %d: rotation axis must be non-zero: %w", i, ErrInvalidParams)
		}
	}
	if p.FovYDeg <= 0 || p.FovYDeg >= 180 {
		return fmt.Errorf("field of view %v out of range: %w", p.FovYDeg, ErrInvalidParams)
	}
	if p.Near <= 0 || p.Far <= p.Near {
		return fmt.Errorf("clip planes [%v, %v] invalid: %w", p.Near, p.Far, ErrInvalidParams)
	}
	if p.ShadowDamping < 0 || p.ShadowDamping >= 1 {
		return fmt.Errorf("shadow damping %v must be in [0, 1): %w", p.ShadowDamping, ErrInvalidParams)
	}
	return nil
}
