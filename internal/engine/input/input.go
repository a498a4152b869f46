// Package input turns SDL2 events into key, resize and quit events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType identifies a processed event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    rune // character of a key press, 0x1b for Escape
	Width  int
	Height int
}

// Input collects the events of one frame.
type Input struct {
	events []Event
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
	}
}

// Update polls SDL events. Returns true if the window was closed.
func (i *Input) Update() bool {
	i.events = i.events[:0]
	quit := false

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			quit = true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			if e.Type != sdl.KEYDOWN || e.Repeat != 0 {
				continue
			}
			if r, ok := keyRune(e.Keysym); ok {
				i.events = append(i.events, Event{Type: EventKeyDown, Key: r})
			}
		}
	}

	return quit
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// keyRune maps a key to the character it types. SDL keycodes of printable
// keys and Escape are their ASCII values; Shift selects upper case letters.
func keyRune(k sdl.Keysym) (rune, bool) {
	sym := k.Sym
	if sym <= 0 || sym > 0x7f {
		return 0, false
	}
	r := rune(sym)
	if r >= 'a' && r <= 'z' && k.Mod&uint16(sdl.KMOD_SHIFT) != 0 {
		r -= 'a' - 'A'
	}
	return r, true
}
