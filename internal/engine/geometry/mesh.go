package geometry

import "fmt"

// Build validates p and builds all surfaces in the fixed order
// Ground, Wall, Sphere, GroundShadow, WallShadow.
func Build(p Params) (*Mesh, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	b := NewBuilder()
	ranges := make(map[Surface]Range, len(Surfaces))

	offset := 0
	for _, s := range Surfaces {
		firstIndex := b.IndexCount()
		next := 0
		switch s {
		case Ground:
			next = b.BuildGrid(offset, p.Ground)
		case Wall:
			next = b.BuildGrid(offset, p.Wall)
		case Sphere:
			next = b.BuildSphere(offset, p.Sphere)
		case GroundShadow:
			next = b.BuildDisc(offset, p.GroundShadow)
		case WallShadow:
			next = b.BuildDisc(offset, p.WallShadow)
		}
		ranges[s] = Range{
			FirstVertex: offset,
			VertexCount: next - offset,
			FirstIndex:  firstIndex,
			IndexCount:  b.IndexCount() - firstIndex,
		}
		offset = next
	}

	return b.Mesh(ranges), nil
}

// Validate checks that p describes a buildable mesh.
func (p Params) Validate() error {
	for name, g := range map[string]GridParams{"ground": p.Ground, "wall": p.Wall} {
		if g.Length <= 0 || g.Width <= 0 {
			return fmt.Errorf("%s: extents must be positive: %w", name, ErrInvalidParams)
		}
		if g.Columns < 2 || GridRows(g) < 2 {
			return fmt.Errorf("%s: need at least 2x2 points: %w", name, ErrInvalidParams)
		}
	}

	s := p.Sphere
	if s.Radius <= 0 {
		return fmt.Errorf("sphere: radius %v must be positive: %w", s.Radius, ErrInvalidParams)
	}
	if s.ArcPoints < 3 || s.ArcPoints%2 == 0 {
		return fmt.Errorf("sphere: arc points %d must be odd and >= 3: %w", s.ArcPoints, ErrInvalidParams)
	}
	if s.CirclePoints < 2 || s.CirclePoints%2 != 0 {
		return fmt.Errorf("sphere: circle points %d must be even and >= 2: %w", s.CirclePoints, ErrInvalidParams)
	}

	for name, d := range map[string]DiscParams{"ground shadow": p.GroundShadow, "wall shadow": p.WallShadow} {
		if d.Radius <= 0 || d.CirclePoints < 3 {
			return fmt.Errorf("%s: need positive radius and >= 3 points: %w", name, ErrInvalidParams)
		}
	}
	return nil
}

// Validate checks that every surface only references its own vertices and
// that normals cover exactly the lit surfaces.
func (m *Mesh) Validate() error {
	lit := 0
	for _, s := range Surfaces {
		r, ok := m.Ranges[s]
		if !ok {
			return fmt.Errorf("surface %s missing", s)
		}
		if r.IndexCount%3 != 0 {
			return fmt.Errorf("surface %s: %d indices is not a whole number of triangles", s, r.IndexCount)
		}
		lo := uint32(r.FirstVertex)
		hi := uint32(r.FirstVertex + r.VertexCount - 1)
		for _, idx := range m.Indices[r.FirstIndex : r.FirstIndex+r.IndexCount] {
			if idx < lo || idx > hi {
				return fmt.Errorf("surface %s: index %d outside [%d, %d]", s, idx, lo, hi)
			}
		}
		if s.Lit() {
			lit += r.VertexCount
		}
	}
	if lit != len(m.Normals) {
		return fmt.Errorf("have %d normals for %d lit vertices", len(m.Normals), lit)
	}
	return nil
}

// Triangles returns the number of triangles of a surface.
func (m *Mesh) Triangles(s Surface) int {
	return m.Ranges[s].IndexCount / 3
}
