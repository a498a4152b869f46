package geometry

import (
	"fmt"
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"
)

// Builder appends surfaces to one set of shared buffers.
//
// Every Build* method takes the running vertex offset returned by the
// previous call and returns base + verticesAppended, so calls chain:
//
//	off := b.BuildGrid(0, ground)
//	off = b.BuildGrid(off, wall)
type Builder struct {
	positions []mgl32.Vec4
	normals   []mgl32.Vec3
	indices   []uint32
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Offset returns the number of vertices appended so far.
func (b *Builder) Offset() int {
	return len(b.positions)
}

// IndexCount returns the number of indices appended so far.
func (b *Builder) IndexCount() int {
	return len(b.indices)
}

func (b *Builder) checkBase(base int) {
	if base != len(b.positions) {
		panic(fmt.Sprintf("geometry: base offset %d does not match vertex count %d", base, len(b.positions)))
	}
}

func (b *Builder) vertex(p mgl32.Vec3) {
	b.positions = append(b.positions, p.Vec4(1))
}

// quad emits the right and left triangles of the cell starting at local
// index i in a strip of the given stride.
func (b *Builder) quad(base, i, stride int) {
	v := uint32(base + i)
	s := uint32(stride)
	b.indices = append(b.indices,
		v, v+s+1, v+1, // right
		v, v+s, v+s+1, // left
	)
}

// GridRows returns the row count that keeps the grid cells square.
func GridRows(p GridParams) int {
	return int(gomath.Round(float64(p.Width / p.Length * float32(p.Columns))))
}

// BuildGrid appends a planar grid with a constant normal.
func (b *Builder) BuildGrid(base int, p GridParams) int {
	b.checkBase(base)

	cols := p.Columns
	rows := GridRows(p)
	du := p.Length / float32(cols)
	dv := p.Width / float32(rows)

	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			pos := p.Origin.
				Add(p.U.Mul(float32(j) * du)).
				Add(p.V.Mul(float32(i) * dv))
			b.vertex(pos)
			b.normals = append(b.normals, p.Normal)
		}
	}

	// The last column of a row would connect to the start of the next one.
	for i := 0; i < (rows-1)*cols; i++ {
		if i%cols == cols-1 {
			continue
		}
		b.quad(base, i, cols)
	}

	return base + rows*cols
}

// BuildSphere appends a UV sphere. Each meridian holds ArcPoints vertices
// from pole to pole; the meridian at 2π duplicates the one at 0.
func (b *Builder) BuildSphere(base int, p SphereParams) int {
	b.checkBase(base)

	for i := 0; i <= p.CirclePoints; i++ {
		phi := float64(i) / float64(p.CirclePoints) * 2 * gomath.Pi
		for j := 0; j < p.ArcPoints; j++ {
			theta := float64(j) / float64(p.ArcPoints-1) * gomath.Pi

			pos := mgl32.Vec3{
				p.Radius * float32(gomath.Sin(theta)*gomath.Cos(phi)),
				p.Radius * float32(gomath.Sin(theta)*gomath.Sin(phi)),
				p.Radius * float32(gomath.Cos(theta)),
			}
			b.vertex(pos)
			b.normals = append(b.normals, pos.Normalize())
		}
	}

	// Skip the last point of each meridian so no quad wraps into the next
	// meridian's pole.
	cells := p.ArcPoints*p.CirclePoints - 1
	for i := 0; i <= cells; i++ {
		if i%p.ArcPoints == p.ArcPoints-1 {
			continue
		}
		b.quad(base, i, p.ArcPoints)
	}

	return base + (p.CirclePoints+1)*p.ArcPoints
}

// BuildDisc appends a triangle fan around a center vertex. No normals are
// written for discs.
func (b *Builder) BuildDisc(base int, p DiscParams) int {
	b.checkBase(base)

	b.vertex(mgl32.Vec3{})
	for i := 0; i <= p.CirclePoints; i++ {
		phi := float64(i) / float64(p.CirclePoints) * 2 * gomath.Pi
		u := p.Radius * float32(gomath.Cos(phi))
		v := p.Radius * float32(gomath.Sin(phi))
		if p.Plane == PlaneXZ {
			b.vertex(mgl32.Vec3{u, 0, v})
		} else {
			b.vertex(mgl32.Vec3{u, v, 0})
		}
	}

	center := uint32(base)
	for j := 0; j < p.CirclePoints; j++ {
		rim := uint32(base + 1 + j)
		b.indices = append(b.indices, center, rim, rim+1)
	}

	return base + 1 + p.CirclePoints + 1
}

// Mesh returns the accumulated buffers. The builder must not be used after.
func (b *Builder) Mesh(ranges map[Surface]Range) *Mesh {
	return &Mesh{
		Positions: b.positions,
		Normals:   b.normals,
		Indices:   b.indices,
		Ranges:    ranges,
	}
}
