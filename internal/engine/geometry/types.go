// Package geometry builds the static vertex, normal and index buffers for the
// ground, wall, sphere and shadow discs of the scene.
package geometry

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrInvalidParams is returned when mesh parameters cannot produce a valid mesh.
var ErrInvalidParams = errors.New("invalid mesh parameters")

// Surface names one renderable region of the shared buffers.
type Surface int

const (
	Ground Surface = iota
	Wall
	Sphere
	GroundShadow
	WallShadow
)

// Surfaces lists every surface in build order.
var Surfaces = []Surface{Ground, Wall, Sphere, GroundShadow, WallShadow}

func (s Surface) String() string {
	switch s {
	case Ground:
		return "ground"
	case Wall:
		return "wall"
	case Sphere:
		return "sphere"
	case GroundShadow:
		return "ground_shadow"
	case WallShadow:
		return "wall_shadow"
	default:
		return "unknown"
	}
}

// Lit reports whether the surface carries normals.
// Shadow discs are flat, unlit projections.
func (s Surface) Lit() bool {
	return s != GroundShadow && s != WallShadow
}

// Range locates a surface inside the shared buffers.
type Range struct {
	FirstVertex int
	VertexCount int
	FirstIndex  int
	IndexCount  int
}

// Mesh holds the complete scene geometry ready for GPU upload.
type Mesh struct {
	Positions []mgl32.Vec4 // w is always 1
	Normals   []mgl32.Vec3 // aligned with the lit vertices only
	Indices   []uint32
	Ranges    map[Surface]Range
}

// GridParams describes a planar square-cell grid.
// Vertices are placed at Origin + U*col*step + V*row*step.
type GridParams struct {
	Length  float32    `yaml:"length"`  // extent along U
	Width   float32    `yaml:"width"`   // extent along V
	Columns int        `yaml:"columns"` // vertices per row
	Origin  mgl32.Vec3 `yaml:"origin"`
	U       mgl32.Vec3 `yaml:"u"`
	V       mgl32.Vec3 `yaml:"v"`
	Normal  mgl32.Vec3 `yaml:"normal"`
}

// SphereParams describes a UV sphere centered at the origin.
//
// ArcPoints samples the polar angle and must be odd, CirclePoints samples the
// azimuth and must be even. Under first-vertex flat shading this parity gives
// the alternating checkerboard orientation of the triangles.
type SphereParams struct {
	Radius       float32 `yaml:"radius"`
	CirclePoints int     `yaml:"circle_points"`
	ArcPoints    int     `yaml:"arc_points"`
}

// DiscPlane selects the plane a shadow disc lies in.
type DiscPlane int

const (
	PlaneXY DiscPlane = iota // facing +Z, used against the far wall
	PlaneXZ                  // facing +Y, used on the ground
)

// DiscParams describes a triangle-fan disc.
type DiscParams struct {
	Radius       float32   `yaml:"radius"`
	CirclePoints int       `yaml:"circle_points"`
	Plane        DiscPlane `yaml:"plane"`
}

// Params holds the parameters of every surface.
type Params struct {
	Ground       GridParams   `yaml:"ground"`
	Wall         GridParams   `yaml:"wall"`
	Sphere       SphereParams `yaml:"sphere"`
	GroundShadow DiscParams   `yaml:"ground_shadow"`
	WallShadow   DiscParams   `yaml:"wall_shadow"`
}
