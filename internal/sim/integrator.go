package sim

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"
)

// Contact reports which boundaries were hit during a tick.
type Contact uint8

const (
	ContactGround Contact = 1 << iota
	ContactWallX
	ContactWallZ
)

// Has reports whether c includes flag.
func (c Contact) Has(flag Contact) bool {
	return c&flag != 0
}

// Step advances s by one tick.
//
// Gravity is added to the position before collision handling and to the
// velocity after it, so each moving tick applies it twice. Both additions are
// part of the observable motion and must stay separate.
func Step(s *State, c Constants) Contact {
	if !s.Moving() {
		return 0
	}

	s.spin(c.SpinStep)

	g := c.Gravity()
	s.Position = s.Position.Add(s.Velocity)
	s.Position[1] += g

	var contact Contact

	if limit := c.GroundLimit(); s.Position[1] <= limit {
		s.Position[1] = limit
		s.Velocity[1] = -s.Velocity[1]
		contact |= ContactGround
		if abs32(s.Velocity[1]) <= abs32(g) {
			s.Rest = true
			s.Velocity = mgl32.Vec3{}
		}
	}

	if right := c.Bounds.MaxX - c.Radius; s.Position[0] >= right {
		s.Position[0] = right
		s.Velocity[0] = -s.Velocity[0]
		contact |= ContactWallX
	} else if left := c.Bounds.MinX + c.Radius; s.Position[0] <= left {
		s.Position[0] = left
		s.Velocity[0] = -s.Velocity[0]
		contact |= ContactWallX
	}

	if near := c.Bounds.MaxZ - c.Radius; s.Position[2] >= near {
		s.Position[2] = near
		s.Velocity[2] = -s.Velocity[2]
		contact |= ContactWallZ
	} else if far := c.Bounds.MinZ + c.Radius; s.Position[2] <= far {
		s.Position[2] = far
		s.Velocity[2] = -s.Velocity[2]
		contact |= ContactWallZ
	}

	if !s.Rest {
		s.Velocity[1] += g
	}

	return contact
}

func (s *State) spin(step float32) {
	if s.Clockwise {
		s.Angle -= step
	} else {
		s.Angle += step
	}
	s.Angle = wrapDegrees(s.Angle)
}

// wrapDegrees normalizes an angle to [0, 360).
func wrapDegrees(a float32) float32 {
	w := float32(gomath.Mod(float64(a), 360))
	if w < 0 {
		w += 360
	}
	if w >= 360 {
		w -= 360
	}
	return w
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
