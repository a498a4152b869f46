package sim

import "github.com/go-gl/mathgl/mgl32"

// Action is a discrete state change requested by input.
type Action int

const (
	ActionNone Action = iota
	ActionExit
	ActionTogglePause
	ActionNextCamera
	ActionPushLeft  // -X
	ActionPushRight // +X
	ActionPushUp    // +Y
	ActionPushDown  // -Y
	ActionPushFar   // -Z
	ActionPushNear  // +Z
	ActionStop
	ActionReset
)

var actionNames = map[Action]string{
	ActionNone:        "none",
	ActionExit:        "exit",
	ActionTogglePause: "toggle_pause",
	ActionNextCamera:  "next_camera",
	ActionPushLeft:    "push_left",
	ActionPushRight:   "push_right",
	ActionPushUp:      "push_up",
	ActionPushDown:    "push_down",
	ActionPushFar:     "push_far",
	ActionPushNear:    "push_near",
	ActionStop:        "stop",
	ActionReset:       "reset",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// ParseAction returns the action with the given name.
func ParseAction(name string) (Action, bool) {
	for a, n := range actionNames {
		if n == name {
			return a, true
		}
	}
	return ActionNone, false
}

// push maps a movement action to its axis and sign.
func (a Action) push() (axis int, sign float32, ok bool) {
	switch a {
	case ActionPushLeft:
		return 0, -1, true
	case ActionPushRight:
		return 0, 1, true
	case ActionPushUp:
		return 1, 1, true
	case ActionPushDown:
		return 1, -1, true
	case ActionPushFar:
		return 2, -1, true
	case ActionPushNear:
		return 2, 1, true
	}
	return 0, 0, false
}

// Apply performs a onto s and reports whether the program should exit.
// Any movement input leaves the rest state, whatever the resulting speed.
func Apply(s *State, c Constants, a Action) (exit bool) {
	if axis, sign, ok := a.push(); ok {
		s.Rest = false
		s.Velocity[axis] += sign * c.Impulse()
		return false
	}

	switch a {
	case ActionExit:
		return true
	case ActionTogglePause:
		s.Paused = !s.Paused
	case ActionNextCamera:
		s.Camera = s.Camera.Next(c.CameraModes)
	case ActionStop:
		s.Rest = false
		s.Velocity = mgl32.Vec3{}
	case ActionReset:
		s.Reset(c)
	}
	return false
}

// Bindings map key characters to actions.
type Bindings map[rune]Action

// Lookup returns the action bound to r, or ActionNone.
func (b Bindings) Lookup(r rune) Action {
	if a, ok := b[r]; ok {
		return a
	}
	return ActionNone
}

const keyEscape = 0x1b

// ClassicBindings is the layout of the single-sphere scene: space pauses,
// W/S move vertically.
func ClassicBindings() Bindings {
	return Bindings{
		keyEscape: ActionExit,
		'q':       ActionExit,
		'Q':       ActionExit,
		' ':       ActionTogglePause,
		'w':       ActionPushUp,
		'a':       ActionPushLeft,
		's':       ActionPushDown,
		'd':       ActionPushRight,
		'r':       ActionReset,
	}
}

// BoxBindings is the layout of the box scene: space cycles cameras, E
// pauses, W/S move in depth, J jumps and K stops.
func BoxBindings() Bindings {
	return Bindings{
		keyEscape: ActionExit,
		'q':       ActionExit,
		'Q':       ActionExit,
		' ':       ActionNextCamera,
		'e':       ActionTogglePause,
		'w':       ActionPushFar,
		'a':       ActionPushLeft,
		's':       ActionPushNear,
		'd':       ActionPushRight,
		'j':       ActionPushUp,
		'k':       ActionStop,
		'r':       ActionReset,
	}
}
