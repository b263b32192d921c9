package physics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/spruceb/marblez/internal/components"
	"github.com/spruceb/marblez/internal/engine"
)

func mustSphere(t *testing.T, radius float64) *components.Shape {
	t.Helper()
	s, err := components.NewSphereShape(radius)
	if err != nil {
		t.Fatalf("NewSphereShape: %v", err)
	}
	return s
}

func mustBox(t *testing.T, w, h, d float64) *components.Shape {
	t.Helper()
	s, err := components.NewBoxShape(w, h, d)
	if err != nil {
		t.Fatalf("NewBoxShape: %v", err)
	}
	return s
}

func mustTorus(t *testing.T, radius, tube float64) *components.Shape {
	t.Helper()
	s, err := components.NewTorusShape(radius, tube)
	if err != nil {
		t.Fatalf("NewTorusShape: %v", err)
	}
	return s
}

func transformAt(pos mgl64.Vec3) *engine.Transform {
	return &engine.Transform{Position: pos, Scale: mgl64.Vec3{1, 1, 1}}
}

func vecNear(a, b mgl64.Vec3, tol float64) bool {
	return a.Sub(b).Len() < tol
}

func TestSphereVsSphereOverlap(t *testing.T) {
	shape := mustSphere(t, 0.5)
	c := Detect(mgl64.Vec3{0.75, 0, 0}, 0.5, shape, transformAt(mgl64.Vec3{0, 0, 0}))

	if !c.Collided {
		t.Fatal("expected collision for overlapping spheres")
	}
	if !vecNear(c.Normal, mgl64.Vec3{1, 0, 0}, 1e-9) {
		t.Errorf("expected normal (1,0,0), got %v", c.Normal)
	}
	if math.Abs(c.Penetration-0.25) > 1e-9 {
		t.Errorf("expected penetration 0.25, got %g", c.Penetration)
	}
}

func TestSphereVsSphereSeparated(t *testing.T) {
	shape := mustSphere(t, 0.5)
	c := Detect(mgl64.Vec3{1.5, 0, 0}, 0.5, shape, transformAt(mgl64.Vec3{0, 0, 0}))
	if c.Collided {
		t.Error("expected no collision for separated spheres")
	}
}

func TestSphereVsSphereCoincidentCenters(t *testing.T) {
	shape := mustSphere(t, 0.5)
	c := Detect(mgl64.Vec3{0, 0, 0}, 0.5, shape, transformAt(mgl64.Vec3{0, 0, 0}))

	if !c.Collided {
		t.Fatal("expected collision for coincident centers")
	}
	if !vecNear(c.Normal, mgl64.Vec3{0, 1, 0}, 1e-9) {
		t.Errorf("expected fallback normal (0,1,0), got %v", c.Normal)
	}
}

func TestSphereVsBoxSurfaceContact(t *testing.T) {
	box := mustBox(t, 2, 2, 2)
	c := Detect(mgl64.Vec3{1.3, 0, 0}, 0.5, box, transformAt(mgl64.Vec3{0, 0, 0}))

	if !c.Collided {
		t.Fatal("expected collision touching box face")
	}
	if !vecNear(c.Normal, mgl64.Vec3{1, 0, 0}, 1e-9) {
		t.Errorf("expected normal (1,0,0), got %v", c.Normal)
	}
	if math.Abs(c.Penetration-0.2) > 1e-9 {
		t.Errorf("expected penetration 0.2, got %g", c.Penetration)
	}
}

func TestSphereVsBoxContainment(t *testing.T) {
	// A center strictly inside the half-extents always collides with
	// positive penetration along the nearest face.
	box := mustBox(t, 4, 1, 4)
	c := Detect(mgl64.Vec3{0.3, 0.4, 0}, 0.5, box, transformAt(mgl64.Vec3{0, 0, 0}))

	if !c.Collided {
		t.Fatal("embedded center must report a collision")
	}
	if c.Penetration <= 0 {
		t.Errorf("embedded center must have positive penetration, got %g", c.Penetration)
	}
	if !vecNear(c.Normal, mgl64.Vec3{0, 1, 0}, 1e-9) {
		t.Errorf("expected +Y face normal, got %v", c.Normal)
	}
	if math.Abs(c.Penetration-0.6) > 1e-9 {
		t.Errorf("expected penetration 0.6 (radius + face distance), got %g", c.Penetration)
	}
}

func TestSphereVsBoxRotated(t *testing.T) {
	// Box spanning +-2 along local X, rotated a quarter turn about Y so it
	// spans +-2 along world Z instead.
	box := mustBox(t, 4, 1, 1)
	tr := transformAt(mgl64.Vec3{0, 0, 0})
	tr.Rotation = mgl64.Vec3{0, math.Pi / 2, 0}

	c := Detect(mgl64.Vec3{0, 0, 2.3}, 0.5, box, tr)
	if !c.Collided {
		t.Fatal("expected collision against rotated box end face")
	}
	if !vecNear(c.Normal, mgl64.Vec3{0, 0, 1}, 1e-9) {
		t.Errorf("expected world normal (0,0,1), got %v", c.Normal)
	}
	if math.Abs(c.Penetration-0.2) > 1e-9 {
		t.Errorf("expected penetration 0.2, got %g", c.Penetration)
	}

	// The same spot misses the unrotated box.
	tr.Rotation = mgl64.Vec3{}
	if c := Detect(mgl64.Vec3{0, 0, 2.3}, 0.5, box, tr); c.Collided {
		t.Error("unrotated box should not reach that far along Z")
	}
}

func TestSphereVsBoxScaled(t *testing.T) {
	box := mustBox(t, 2, 2, 2)
	tr := transformAt(mgl64.Vec3{0, 0, 0})
	tr.Scale = mgl64.Vec3{3, 1, 1}

	// x=2 is outside the unscaled box but inside the scaled half-extent of 3.
	c := Detect(mgl64.Vec3{2, 0, 0}, 0.5, box, tr)
	if !c.Collided {
		t.Error("expected collision with scaled box")
	}
}

func TestSphereVsTorusThroughHole(t *testing.T) {
	// On the hole axis and within the hole clearance there is never a
	// collision, whatever the distance along the axis.
	torus := mustTorus(t, 1.8, 0.3)
	for _, z := range []float64{0, 0.1, 0.25, -0.25} {
		c := Detect(mgl64.Vec3{0, 0, z}, 0.5, torus, transformAt(mgl64.Vec3{0, 0, 0}))
		if c.Collided {
			t.Errorf("z=%g: sphere through the hole must not collide", z)
		}
	}
}

func TestSphereVsTorusTubeContact(t *testing.T) {
	torus := mustTorus(t, 1.8, 0.3)
	c := Detect(mgl64.Vec3{1.8, 0, 0.6}, 0.5, torus, transformAt(mgl64.Vec3{0, 0, 0}))

	if !c.Collided {
		t.Fatal("expected collision with torus tube")
	}
	if !vecNear(c.Normal, mgl64.Vec3{0, 0, 1}, 1e-9) {
		t.Errorf("expected normal (0,0,1), got %v", c.Normal)
	}
	if math.Abs(c.Penetration-0.2) > 1e-9 {
		t.Errorf("expected penetration 0.2, got %g", c.Penetration)
	}
}

func TestSphereVsTorusRotated(t *testing.T) {
	// Quarter turn about X lays the ring flat; a sphere resting on top of
	// the tube should see an upward normal.
	torus := mustTorus(t, 1.8, 0.3)
	tr := transformAt(mgl64.Vec3{0, 0, 0})
	tr.Rotation = mgl64.Vec3{math.Pi / 2, 0, 0}

	c := Detect(mgl64.Vec3{1.8, 0.6, 0}, 0.5, torus, tr)
	if !c.Collided {
		t.Fatal("expected collision on top of the flat ring")
	}
	if !vecNear(c.Normal, mgl64.Vec3{0, 1, 0}, 1e-9) {
		t.Errorf("expected upward normal, got %v", c.Normal)
	}
}

func TestSphereVsTorusOutsideRing(t *testing.T) {
	torus := mustTorus(t, 1.8, 0.3)
	c := Detect(mgl64.Vec3{3.5, 0, 0}, 0.5, torus, transformAt(mgl64.Vec3{0, 0, 0}))
	if c.Collided {
		t.Error("sphere well outside the outer radius must not collide")
	}
}
