package sim

import "github.com/go-gl/mathgl/mgl32"

// CameraMode selects one of the fixed camera poses.
type CameraMode int

const (
	CameraFree CameraMode = iota
	CameraTop
	CameraSide

	numCameraModes
)

func (m CameraMode) String() string {
	switch m {
	case CameraFree:
		return "free"
	case CameraTop:
		return "top"
	case CameraSide:
		return "side"
	default:
		return "unknown"
	}
}

// Next returns the following mode, wrapping after count modes.
func (m CameraMode) Next(count int) CameraMode {
	if count < 1 {
		return CameraFree
	}
	return CameraMode((int(m) + 1) % count)
}

// State is the mutable simulation state. It is written only by Step and
// Apply, and read by the view composer.
type State struct {
	Position mgl32.Vec3
	Velocity mgl32.Vec3
	Angle    float32 // degrees in [0, 360)

	Rest      bool
	Paused    bool
	Camera    CameraMode
	Clockwise bool
}

// NewState returns the starting state for c.
func NewState(c Constants) *State {
	s := &State{
		Paused:    c.StartPaused,
		Clockwise: c.Clockwise,
	}
	s.Reset(c)
	return s
}

// Reset restores the starting pose and leaves rest.
// Pause, camera and rotation are kept.
func (s *State) Reset(c Constants) {
	s.Position = c.StartPosition
	s.Velocity = c.InitialVelocity()
	s.Rest = false
}

// Moving reports whether Step will advance the state.
func (s *State) Moving() bool {
	return !s.Paused && !s.Rest
}
