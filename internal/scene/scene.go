// Package scene ties the simulation, geometry and view composer together
// behind the per-tick calls made by the driver loop.
package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/bounce-box/internal/engine/geometry"
	"github.com/Faultbox/bounce-box/internal/engine/view"
	"github.com/Faultbox/bounce-box/internal/logger"
	"github.com/Faultbox/bounce-box/internal/sim"
)

// Config is everything needed to run one scene.
type Config struct {
	Name     string          `yaml:"name"`
	Sim      sim.Constants   `yaml:"sim"`
	Mesh     geometry.Params `yaml:"mesh"`
	View     view.Params     `yaml:"view"`
	Bindings sim.Bindings    `yaml:"-"`
	// Visible lists the surfaces the renderer draws, in draw order.
	Visible []geometry.Surface `yaml:"-"`
}

// Validate checks every part of the configuration.
func (c Config) Validate() error {
	if err := c.Sim.Validate(); err != nil {
		return fmt.Errorf("scene %s: %w", c.Name, err)
	}
	if err := c.Mesh.Validate(); err != nil {
		return fmt.Errorf("scene %s: %w", c.Name, err)
	}
	if err := c.View.Validate(); err != nil {
		return fmt.Errorf("scene %s: %w", c.Name, err)
	}
	if len(c.View.Cameras) < c.Sim.CameraModes {
		return fmt.Errorf("scene %s: %d camera poses for %d camera modes: %w",
			c.Name, len(c.View.Cameras), c.Sim.CameraModes, view.ErrInvalidParams)
	}
	return nil
}

// Scene owns the simulation state and the static mesh of one running scene.
// It is not safe for concurrent use.
type Scene struct {
	cfg   Config
	state *sim.State
	mesh  *geometry.Mesh
	log   *zap.Logger

	width, height int
}

// New validates cfg and builds the mesh.
func New(cfg Config) (*Scene, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	mesh, err := geometry.Build(cfg.Mesh)
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", cfg.Name, err)
	}

	s := &Scene{
		cfg:    cfg,
		state:  sim.NewState(cfg.Sim),
		mesh:   mesh,
		log:    logger.Named("scene"),
		width:  1,
		height: 1,
	}

	s.log.Debug("scene created",
		zap.String("preset", cfg.Name),
		zap.Int("vertices", len(mesh.Positions)),
		zap.Int("triangles", len(mesh.Indices)/3),
		zap.Bool("paused", s.state.Paused),
	)
	return s, nil
}

// Tick advances the simulation by one step and reports any contacts.
func (s *Scene) Tick() sim.Contact {
	wasRest := s.state.Rest
	contact := sim.Step(s.state, s.cfg.Sim)

	if s.state.Rest && !wasRest {
		s.log.Debug("sphere at rest", zap.Float32("y", s.state.Position.Y()))
	}
	return contact
}

// Frame composes the matrices for the current state.
func (s *Scene) Frame() view.Frame {
	return view.Compose(s.state, s.cfg.View)
}

// HandleKey applies the action bound to r and reports whether the program
// should exit.
func (s *Scene) HandleKey(r rune) (exit bool) {
	a := s.cfg.Bindings.Lookup(r)
	if a == sim.ActionNone {
		return false
	}

	exit = sim.Apply(s.state, s.cfg.Sim, a)

	switch a {
	case sim.ActionTogglePause:
		s.log.Debug("pause toggled", zap.Bool("paused", s.state.Paused))
	case sim.ActionNextCamera:
		s.log.Debug("camera changed", zap.Stringer("camera", s.state.Camera))
	case sim.ActionReset:
		s.log.Debug("reset")
	default:
		s.log.Debug("action", zap.Stringer("action", a), zap.Bool("exit", exit))
	}
	return exit
}

// Resize records the new viewport size.
func (s *Scene) Resize(width, height int) {
	s.width, s.height = width, height
}

// Projection returns the projection for the current viewport.
func (s *Scene) Projection() mgl32.Mat4 {
	return view.Projection(s.width, s.height, s.cfg.View)
}

// State returns a copy of the simulation state.
func (s *Scene) State() sim.State {
	return *s.state
}

// Mesh returns the static scene geometry.
func (s *Scene) Mesh() *geometry.Mesh {
	return s.mesh
}

// Config returns the scene configuration.
func (s *Scene) Config() Config {
	return s.cfg
}
