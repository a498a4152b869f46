package view

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/bounce-box/internal/sim"
)

// degenerateAxis is the smallest light direction component the shadow
// projection divides by.
const degenerateAxis = 1e-6

// Compose builds the frame matrices for s. It never modifies s.
func Compose(s *sim.State, p Params) Frame {
	var f Frame

	f.Sphere = sphereMatrix(s, p)
	f.Ground = groundMatrix(p)
	f.WallShadow = wallShadowMatrix(s.Position, p)
	f.GroundShadow = groundShadowMatrix(s.Position, p)
	f.Camera = cameraMatrix(s.Camera, p.Cameras)

	f.SphereNormal = NormalMatrix(f.Sphere)
	f.GroundNormal = NormalMatrix(f.Ground)
	return f
}

// NormalMatrix returns the inverse transpose of m.
func NormalMatrix(m mgl32.Mat4) mgl32.Mat4 {
	return m.Inv().Transpose()
}

func viewerOffset(p Params) mgl32.Mat4 {
	return mgl32.Translate3D(-p.Viewer[0], -p.Viewer[1], -p.Viewer[2])
}

// sphereMatrix translates in world space then rotates in object space:
// T(pos) * T(-viewer) * Rz(tilt) * Rx(turn) * R(spin).
func sphereMatrix(s *sim.State, p Params) mgl32.Mat4 {
	pos := s.Position
	trans := mgl32.Translate3D(pos[0], pos[1], pos[2]).Mul4(viewerOffset(p))

	rot := mgl32.HomogRotate3DZ(mgl32.DegToRad(p.SphereTiltDeg)).
		Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(p.SphereTurnDeg))).
		Mul4(mgl32.HomogRotate3D(mgl32.DegToRad(s.Angle), p.SpinAxis.Normalize()))

	return trans.Mul4(rot)
}

func groundMatrix(p Params) mgl32.Mat4 {
	o := p.GroundOffset
	trans := mgl32.Translate3D(o[0], o[1], o[2]).Mul4(viewerOffset(p))
	return trans.Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(p.GroundTiltDeg)))
}

// projectionOffset returns the shadow shift along axis out for a light
// projected onto the plane across axis along.
//
// The unit direction from the light towards the sphere is stretched by the
// light's distance along the projection axis, then damped; the result is
// deliberately shorter than a true projection. A direction with no
// component along the axis never reaches the plane and yields no shift, so
// the shadow sits directly below the sphere.
func projectionOffset(light, pos mgl32.Vec3, along, out int, damping float32) float32 {
	d := light.Add(pos)
	if d.Len() < degenerateAxis {
		return 0
	}
	u := d.Normalize()
	if gomath.Abs(float64(u[along])) < degenerateAxis {
		return 0
	}
	steps := light[along] / u[along]
	return u[out] * steps * damping
}

// wallShadowMatrix places the wall disc on the far wall, shifted vertically
// by the near light.
func wallShadowMatrix(pos mgl32.Vec3, p Params) mgl32.Mat4 {
	dy := projectionOffset(p.LightNear, pos, 2, 1, p.ShadowDamping)
	return mgl32.Translate3D(pos[0], pos[1]+dy, p.FarWall+p.ShadowBias).Mul4(viewerOffset(p))
}

// groundShadowMatrix places the ground disc on the ground, shifted
// horizontally by the top light.
func groundShadowMatrix(pos mgl32.Vec3, p Params) mgl32.Mat4 {
	dx := projectionOffset(p.LightTop, pos, 1, 0, p.ShadowDamping)
	return mgl32.Translate3D(pos[0]+dx, p.GroundHeight+p.ShadowBias, pos[2]).Mul4(viewerOffset(p))
}

func cameraMatrix(mode sim.CameraMode, table []CameraPose) mgl32.Mat4 {
	if int(mode) < 0 || int(mode) >= len(table) {
		return mgl32.Ident4()
	}
	return table[mode].Matrix()
}

// Projection returns the perspective projection for a viewport.
func Projection(width, height int, p Params) mgl32.Mat4 {
	if height <= 0 {
		height = 1
	}
	if width <= 0 {
		width = 1
	}
	aspect := float32(width) / float32(height)
	return mgl32.Perspective(mgl32.DegToRad(p.FovYDeg), aspect, p.Near, p.Far)
}
