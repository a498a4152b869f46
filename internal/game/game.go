// Package game runs the window, the fixed-rate scene tick and rendering.
package game

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/bounce-box/internal/config"
	"github.com/Faultbox/bounce-box/internal/engine/audio"
	"github.com/Faultbox/bounce-box/internal/engine/input"
	"github.com/Faultbox/bounce-box/internal/engine/renderer"
	"github.com/Faultbox/bounce-box/internal/engine/window"
	"github.com/Faultbox/bounce-box/internal/logger"
	"github.com/Faultbox/bounce-box/internal/scene"
	"github.com/Faultbox/bounce-box/internal/sim"
)

// Title is the window title.
const Title = "Sphere"

// maxCatchUp bounds the ticks run in one frame after a stall.
const maxCatchUp = 5

// Game is the running program.
type Game struct {
	cfg      *config.Config
	running  bool
	scene    *scene.Scene
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	audio    *audio.Manager // nil when sound is off
	log      *zap.Logger
}

// New builds the scene and opens the window.
func New(cfg *config.Config) (*Game, error) {
	sc, err := cfg.SceneConfig()
	if err != nil {
		return nil, err
	}

	g := &Game{
		cfg: cfg,
		log: logger.Named("game"),
	}

	g.scene, err = scene.New(sc)
	if err != nil {
		return nil, fmt.Errorf("failed to create scene: %w", err)
	}
	if err := g.scene.Mesh().Validate(); err != nil {
		return nil, fmt.Errorf("scene mesh: %w", err)
	}

	g.log.Info("initializing",
		zap.String("preset", sc.Name),
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.Int("tick_rate", cfg.Graphics.TickRate),
	)

	// Window first: the renderer needs its GL context.
	g.window, err = window.New(window.Config{
		Title:      Title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	w, h := g.window.DrawableSize()
	g.renderer, err = renderer.New(renderer.Config{Width: w, Height: h})
	if err != nil {
		g.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	if err := g.renderer.Upload(g.scene.Mesh()); err != nil {
		g.Close()
		return nil, fmt.Errorf("failed to upload mesh: %w", err)
	}
	g.renderer.SetLighting(sc.View)
	g.scene.Resize(w, h)

	g.input = input.New()
	g.audio = openAudio(cfg.Audio)

	g.log.Info("initialized successfully")
	return g, nil
}

// openAudio starts the effects player. Sound is optional: a failure only
// disables it.
func openAudio(cfg config.AudioConfig) *audio.Manager {
	if !cfg.Enabled {
		return nil
	}
	m := audio.New()
	if err := m.Init(); err != nil {
		logger.Warn("sound disabled", zap.Error(err))
		return nil
	}
	m.SetMasterVolume(float64(cfg.MasterVolume))
	m.SetSFXVolume(float64(cfg.SFXVolume))
	m.SetMuted(cfg.Muted)
	return m
}

// Run drives the loop until the exit key or the window is closed.
func (g *Game) Run() error {
	g.running = true

	interval := g.cfg.Graphics.TickInterval()
	var lag time.Duration
	last := time.Now()
	frameCount := 0
	fpsTimer := last

	g.log.Info("starting loop", zap.Duration("tick", interval))

	for g.running {
		now := time.Now()
		lag += now.Sub(last)
		last = now

		if g.input.Update() {
			g.running = false
			break
		}
		g.handleEvents()
		if !g.running {
			break
		}

		steps := 0
		for lag >= interval && steps < maxCatchUp {
			g.tick()
			lag -= interval
			steps++
		}
		if steps == maxCatchUp {
			lag = 0
		}

		f := g.scene.Frame()
		g.renderer.Draw(&f, g.scene.Projection(), g.scene.Config().Visible)
		g.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			g.log.Debug("fps", zap.Int("count", frameCount))
			frameCount = 0
			fpsTimer = time.Now()
		}

		if !g.cfg.Graphics.VSync {
			if wait := interval - lag; wait > 0 {
				time.Sleep(wait)
			}
		}
	}

	return nil
}

func (g *Game) handleEvents() {
	for _, e := range g.input.Events() {
		switch e.Type {
		case input.EventWindowResize:
			w, h := g.window.DrawableSize()
			g.renderer.Resize(w, h)
			g.scene.Resize(w, h)
		case input.EventKeyDown:
			if g.scene.HandleKey(e.Key) {
				g.running = false
				return
			}
		}
	}
}

// tick advances the scene once and sounds any contacts.
func (g *Game) tick() {
	contact := g.scene.Tick()
	if contact == 0 {
		return
	}

	st := g.scene.State()
	g.log.Debug("contact",
		zap.Uint8("flags", uint8(contact)),
		zap.Float32("x", st.Position.X()),
		zap.Float32("y", st.Position.Y()),
		zap.Float32("z", st.Position.Z()),
	)

	if g.audio == nil {
		return
	}
	for _, t := range audio.ContactTones(contact, impactStrength(st, g.scene.Config().Sim)) {
		if err := g.audio.Play(t); err != nil {
			g.log.Warn("play sound", zap.Error(err))
		}
	}
}

// impactStrength is the speed after a bounce in units of one impulse,
// capped at 1.
func impactStrength(s sim.State, c sim.Constants) float64 {
	imp := c.Impulse()
	if imp <= 0 {
		return 0
	}
	speed := float64(s.Velocity.Len() / imp)
	if speed > 1 {
		return 1
	}
	return speed
}

// Close releases every resource.
func (g *Game) Close() {
	g.log.Info("closing")

	if g.audio != nil {
		g.audio.Close()
	}
	if g.renderer != nil {
		g.renderer.Close()
	}
	if g.window != nil {
		g.window.Close()
	}
}
