package config

import (
	"fmt"

	"github.com/Faultbox/bounce-box/internal/scene"
)

// SceneConfig resolves the configured preset and applies the physics
// overrides. The result is validated.
func (c *Config) SceneConfig() (scene.Config, error) {
	sc, err := scene.Lookup(c.Scene.Preset)
	if err != nil {
		return scene.Config{}, fmt.Errorf("scene.preset: %w", err)
	}

	o := c.Scene
	if o.Mass != 0 {
		sc.Sim.Mass = o.Mass
	}
	if o.Velocity != 0 {
		sc.Sim.VelocityConstant = o.Velocity
	}
	if o.Gravity != 0 {
		sc.Sim.G = o.Gravity
	}
	if o.Radius != 0 {
		sc.Sim.Radius = o.Radius
		sc.Mesh.Sphere.Radius = o.Radius
		sc.Mesh.GroundShadow.Radius = o.Radius
		sc.Mesh.WallShadow.Radius = o.Radius
	}

	if err := sc.Validate(); err != nil {
		return scene.Config{}, err
	}
	return sc, nil
}
