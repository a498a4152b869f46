package view

import (
	"errors"
	gomath "math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/bounce-box/internal/engine/geometry"
	"github.com/Faultbox/bounce-box/internal/sim"
)

func boxParams() Params {
	return Params{
		Viewer:        mgl32.Vec3{0, 0, 6.9},
		SphereTiltDeg: -20,
		SphereTurnDeg: 90,
		SpinAxis:      mgl32.Vec3{0, 0, 1},
		GroundOffset:  mgl32.Vec3{0, -2, 0},
		GroundTiltDeg: -90,
		LightTop:      mgl32.Vec3{0, 20, 0},
		LightNear:     mgl32.Vec3{0, 1.5, 20},
		ShadowDamping: 0.3,
		ShadowBias:    0.01,
		GroundHeight:  -2,
		FarWall:       -2,
		Cameras: []CameraPose{
			{},
			{Translate: mgl32.Vec3{0, -7.5, -5.3}, RotateDeg: 80, Axis: mgl32.Vec3{1, 0, 0}},
			{Translate: mgl32.Vec3{7, 0, -7}, RotateDeg: 90, Axis: mgl32.Vec3{0, 1, 0}},
		},
		FovYDeg: 45,
		Near:    0.5,
		Far:     20,
	}
}

func translation(m mgl32.Mat4) mgl32.Vec3 {
	return m.Col(3).Vec3()
}

func TestComposeSphere(t *testing.T) {
	p := boxParams()
	s := &sim.State{Position: mgl32.Vec3{0.5, 1, -1}, Angle: 30}

	f := Compose(s, p)

	want := mgl32.Vec3{0.5, 1, -7.9}
	if got := translation(f.Sphere); !got.ApproxEqualThreshold(want, 1e-5) {
		t.Errorf("sphere translation = %v, want %v", got, want)
	}

	rot := mgl32.HomogRotate3DZ(mgl32.DegToRad(-20)).
		Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(90))).
		Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(30)))
	if !f.Sphere.Mat3().ApproxEqualThreshold(rot.Mat3(), 1e-5) {
		t.Errorf("sphere rotation = %v, want %v", f.Sphere.Mat3(), rot.Mat3())
	}
}

func TestComposeDoesNotMutateState(t *testing.T) {
	s := &sim.State{Position: mgl32.Vec3{1, 2, 3}, Velocity: mgl32.Vec3{4, 5, 6}, Angle: 12, Camera: sim.CameraSide}
	before := *s
	Compose(s, boxParams())
	if *s != before {
		t.Errorf("state changed: %+v -> %+v", before, *s)
	}
}

func TestComposeGroundIsStatic(t *testing.T) {
	p := boxParams()
	a := Compose(&sim.State{}, p)
	b := Compose(&sim.State{Position: mgl32.Vec3{1, -1, 0.5}, Angle: 200}, p)
	if a.Ground != b.Ground {
		t.Error("ground matrix depends on the simulation state")
	}

	// The ground grid is built in the XY plane; the tilt lays it flat.
	p0 := a.Ground.Mul4x1(mgl32.Vec4{0, 1, 0, 1}).Vec3()
	want := mgl32.Vec3{0, -2, -1 - 6.9}
	if !p0.ApproxEqualThreshold(want, 1e-5) {
		t.Errorf("ground maps (0,1,0) to %v, want %v", p0, want)
	}
}

func TestComposeShadows(t *testing.T) {
	p := boxParams()
	s := &sim.State{Position: mgl32.Vec3{0, 1, -1}}

	f := Compose(s, p)

	// Top light straight above: no horizontal shift.
	wantGround := mgl32.Vec3{0, -2 + 0.01, -1 - 6.9}
	if got := translation(f.GroundShadow); !got.ApproxEqualThreshold(wantGround, 1e-5) {
		t.Errorf("ground shadow at %v, want %v", got, wantGround)
	}

	// Near light: direction (0, 2.5, 19), stretched to z=20 and damped.
	dy := float32(2.5 / 19.0 * 20 * 0.3)
	wantWall := mgl32.Vec3{0, 1 + dy, -2 + 0.01 - 6.9}
	if got := translation(f.WallShadow); !got.ApproxEqualThreshold(wantWall, 1e-4) {
		t.Errorf("wall shadow at %v, want %v", got, wantWall)
	}
}

func TestComposeShadowFollowsHorizontalOffset(t *testing.T) {
	p := boxParams()
	s := &sim.State{Position: mgl32.Vec3{1, 0, 0}}

	f := Compose(s, p)

	u := mgl32.Vec3{1, 20, 0}.Normalize()
	dx := u.X() * (20 / u.Y()) * 0.3
	if got := translation(f.GroundShadow).X(); gomath.Abs(float64(got-(1+dx))) > 1e-4 {
		t.Errorf("ground shadow x = %v, want %v", got, 1+dx)
	}
}

func TestComposeShadowDegenerateLight(t *testing.T) {
	p := boxParams()
	p.LightTop = mgl32.Vec3{5, 0, 0}
	p.LightNear = mgl32.Vec3{0, 0, 0}

	tests := []mgl32.Vec3{
		{1, 0, 0}, // direction has no vertical component
		{0, 0, 0}, // light and sphere coincide
	}
	for _, pos := range tests {
		f := Compose(&sim.State{Position: pos}, p)
		for _, m := range []mgl32.Mat4{f.GroundShadow, f.WallShadow} {
			for _, v := range m {
				if gomath.IsNaN(float64(v)) || gomath.IsInf(float64(v), 0) {
					t.Fatalf("position %v: non-finite shadow matrix %v", pos, m)
				}
			}
		}
		if got := translation(f.GroundShadow).X(); got != pos.X() {
			t.Errorf("position %v: ground shadow x = %v, want directly below", pos, got)
		}
	}
}

func TestCameraTable(t *testing.T) {
	p := boxParams()

	if f := Compose(&sim.State{Camera: sim.CameraFree}, p); f.Camera != mgl32.Ident4() {
		t.Errorf("free camera = %v, want identity", f.Camera)
	}

	want := mgl32.Translate3D(0, -7.5, -5.3).Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(80)))
	if f := Compose(&sim.State{Camera: sim.CameraTop}, p); !f.Camera.ApproxEqualThreshold(want, 1e-5) {
		t.Errorf("top camera = %v, want %v", f.Camera, want)
	}

	p.Cameras = p.Cameras[:1]
	if f := Compose(&sim.State{Camera: sim.CameraSide}, p); f.Camera != mgl32.Ident4() {
		t.Errorf("missing camera entry should fall back to identity, got %v", f.Camera)
	}
}

func TestNormalMatrix(t *testing.T) {
	rot := mgl32.HomogRotate3DY(0.7)
	m := mgl32.Translate3D(1, 2, 3).Mul4(rot)

	n := NormalMatrix(m)
	if !n.Mat3().ApproxEqualThreshold(rot.Mat3(), 1e-5) {
		t.Errorf("normal matrix of a rigid transform should keep its rotation: %v", n.Mat3())
	}

	scaled := mgl32.Scale3D(2, 1, 1)
	n = NormalMatrix(scaled)
	if gomath.Abs(float64(n[0]-0.5)) > 1e-6 {
		t.Errorf("normal matrix of scale(2,1,1) has m00 = %v, want 0.5", n[0])
	}
}

func TestFrameSurfaceLookup(t *testing.T) {
	f := Compose(&sim.State{Position: mgl32.Vec3{0, 1, 0}}, boxParams())

	if f.Model(geometry.Wall) != f.Ground {
		t.Error("wall should share the ground matrix")
	}
	if f.Model(geometry.Sphere) != f.Sphere || f.Model(geometry.WallShadow) != f.WallShadow {
		t.Error("surface lookup returned the wrong matrix")
	}
	if f.Normal(geometry.GroundShadow) != mgl32.Ident4() {
		t.Error("shadow discs should get the identity normal matrix")
	}
}

func TestProjection(t *testing.T) {
	p := boxParams()
	got := Projection(800, 600, p)
	want := mgl32.Perspective(mgl32.DegToRad(45), 800.0/600.0, 0.5, 20)
	if got != want {
		t.Errorf("Projection = %v, want %v", got, want)
	}

	for _, v := range Projection(800, 0, p) {
		if gomath.IsNaN(float64(v)) || gomath.IsInf(float64(v), 0) {
			t.Fatal("zero height produced a non-finite projection")
		}
	}
}

func TestValidate(t *testing.T) {
	if err := boxParams().Validate(); err != nil {
		t.Fatalf("box params invalid: %v", err)
	}

	tests := []struct {
		name   string
		modify func(*Params)
	}{
		{"zero spin axis", func(p *Params) { p.SpinAxis = mgl32.Vec3{} }},
		{"camera axis", func(p *Params) { p.Cameras[1].Axis = mgl32.Vec3{} }},
		{"fov", func(p *Params) { p.FovYDeg = 0 }},
		{"clip planes", func(p *Params) { p.Far = p.Near }},
		{"damping", func(p *Params) { p.ShadowDamping = 1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := boxParams()
			tt.modify(&p)
			if err := p.Validate(); !errors.Is(err, ErrInvalidParams) {
				t.Errorf("Validate = %v, want ErrInvalidParams", err)
			}
		})
	}
}
