package scene

import (
	"errors"
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/bounce-box/internal/engine/geometry"
	"github.com/Faultbox/bounce-box/internal/engine/view"
	"github.com/Faultbox/bounce-box/internal/sim"
)

// ErrUnknownPreset is returned by Lookup for a name with no preset.
var ErrUnknownPreset = errors.New("unknown scene preset")

// Preset names.
const (
	PresetBox     = "box"
	PresetClassic = "classic"
)

var presets = map[string]func() Config{
	PresetBox:     Box,
	PresetClassic: Classic,
}

// Lookup returns a fresh copy of the named preset.
func Lookup(name string) (Config, error) {
	fn, ok := presets[name]
	if !ok {
		return Config{}, fmt.Errorf("%q: %w", name, ErrUnknownPreset)
	}
	return fn(), nil
}

// Names returns the preset names in sorted order.
func Names() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// The box is 4 units wide with 31 grid columns; odd so the checkerboard
// alternates across rows.
const (
	boxSize    = 4
	boxColumns = 31
	boxCell    = float32(boxSize) / boxColumns
)

// boxMesh is shared by both presets; the classic scene only draws the sphere.
func boxMesh(arcPoints int) geometry.Params {
	return geometry.Params{
		Ground: geometry.GridParams{
			Length:  boxSize,
			Width:   boxSize,
			Columns: boxColumns,
			Origin:  mgl32.Vec3{-boxSize/2 + boxCell/2, -2 + boxCell, 0},
			U:       mgl32.Vec3{1, 0, 0},
			V:       mgl32.Vec3{0, 1, 0},
			Normal:  mgl32.Vec3{0, -1, 0},
		},
		Wall: geometry.GridParams{
			Length:  boxSize,
			Width:   boxSize,
			Columns: boxColumns,
			Origin:  mgl32.Vec3{-boxSize/2 + boxCell/2, 2, 0},
			U:       mgl32.Vec3{1, 0, 0},
			V:       mgl32.Vec3{0, 0, 1},
			Normal:  mgl32.Vec3{0, 0, 1},
		},
		Sphere: geometry.SphereParams{
			Radius:       0.5,
			CirclePoints: 22,
			ArcPoints:    arcPoints,
		},
		GroundShadow: geometry.DiscParams{Radius: 0.5, CirclePoints: 22, Plane: geometry.PlaneXZ},
		WallShadow:   geometry.DiscParams{Radius: 0.5, CirclePoints: 22, Plane: geometry.PlaneXY},
	}
}

// Box is the full scene: ground, far wall, two shadows and three cameras.
func Box() Config {
	return Config{
		Name: PresetBox,
		Sim: sim.Constants{
			G:                9.8,
			Mass:             0.0002,
			VelocityConstant: 150,
			Radius:           0.5,
			Ground:           -2,
			Bounds:           sim.Bounds{MinX: -2, MaxX: 2, MinZ: -2, MaxZ: 1.9},
			StartPosition:    mgl32.Vec3{0, 1, -1},
			StartVelocity:    mgl32.Vec3{1, 1, 1},
			SpinStep:         2,
			Clockwise:        true,
			CameraModes:      3,
		},
		Mesh: boxMesh(15),
		View: view.Params{
			Viewer:        mgl32.Vec3{0, 0, 6.9},
			SphereTiltDeg: -20,
			SphereTurnDeg: 90,
			SpinAxis:      mgl32.Vec3{0, 0, 1},
			GroundOffset:  mgl32.Vec3{0, -2, 0},
			GroundTiltDeg: -90,
			LightTop:      mgl32.Vec3{0, 20, 0},
			LightNear:     mgl32.Vec3{0, 1.5, 20},
			Lighting: view.Lighting{
				Ambient:  mgl32.Vec4{0.9, 0.9, 0.9, 1},
				Diffuse:  mgl32.Vec4{0.07, 0.07, 0.07, 1},
				Specular: mgl32.Vec4{0.05, 0.05, 0.05, 1},
			},
			ShadowDamping: 0.3,
			ShadowBias:    0.01,
			GroundHeight:  -2,
			FarWall:       -2,
			Cameras: []view.CameraPose{
				{},
				{Translate: mgl32.Vec3{0, -7.5, -5.3}, RotateDeg: 80, Axis: mgl32.Vec3{1, 0, 0}},
				{Translate: mgl32.Vec3{7, 0, -7}, RotateDeg: 90, Axis: mgl32.Vec3{0, 1, 0}},
			},
			FovYDeg: 45,
			Near:    0.5,
			Far:     20,
		},
		Bindings: sim.BoxBindings(),
		Visible:  append([]geometry.Surface(nil), geometry.Surfaces...),
	}
}

// Classic is the single sphere bouncing between two side walls. It starts
// paused and spins about X.
func Classic() Config {
	return Config{
		Name: PresetClassic,
		Sim: sim.Constants{
			G:                9.8,
			Mass:             0.0001,
			VelocityConstant: 150,
			Radius:           0.5,
			Ground:           -1,
			Bounds:           sim.Bounds{MinX: -1, MaxX: 1, MinZ: -1, MaxZ: 1},
			StartVelocity:    mgl32.Vec3{1, 1, 0},
			StartPaused:      true,
			SpinStep:         0.5,
			CameraModes:      1,
		},
		Mesh: boxMesh(21),
		View: view.Params{
			Viewer:   mgl32.Vec3{0, 0, 2.7},
			SpinAxis: mgl32.Vec3{1, 0, 0},
			// Unlit look: ambient only.
			Lighting: view.Lighting{
				Ambient: mgl32.Vec4{1, 1, 1, 1},
			},
			LightTop:      mgl32.Vec3{0, 20, 0},
			LightNear:     mgl32.Vec3{0, 1.5, 20},
			ShadowDamping: 0.3,
			GroundHeight:  -1,
			FarWall:       -1,
			Cameras:       []view.CameraPose{{}},
			FovYDeg:       45,
			Near:          0.5,
			Far:           3,
		},
		Bindings: sim.ClassicBindings(),
		Visible:  []geometry.Surface{geometry.Sphere},
	}
}
