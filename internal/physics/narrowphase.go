package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/spruceb/marblez/internal/components"
	"github.com/spruceb/marblez/internal/engine"
)

const degenerateEpsilon = 1e-9

// Contact is the result of one narrow-phase test. Normal is unit length and
// points from the other shape toward the marble; Penetration is the overlap
// depth along it.
type Contact struct {
	Collided    bool
	Normal      mgl64.Vec3
	Penetration float64
}

// rotationMatrix builds the local-to-world rotation for an Euler triple,
// applying X, then Y, then Z.
func rotationMatrix(euler mgl64.Vec3) mgl64.Mat3 {
	return mgl64.Rotate3DZ(euler.Z()).
		Mul3(mgl64.Rotate3DY(euler.Y())).
		Mul3(mgl64.Rotate3DX(euler.X()))
}

// Detect tests the marble sphere against another shaped object and returns
// the contact. Box-vs-sphere and torus-vs-sphere are the same tests with
// operands swapped, so a single sphere-centric dispatch covers every pair.
func Detect(center mgl64.Vec3, radius float64, shape *components.Shape, t *engine.Transform) Contact {
	switch shape.Kind {
	case components.ShapeSphere:
		return sphereVsSphere(center, radius, t.Position, shape.Radius)
	case components.ShapeBox:
		return sphereVsBox(center, radius, shape, t)
	case components.ShapeTorus:
		return sphereVsTorus(center, radius, shape, t)
	}
	return Contact{}
}

func sphereVsSphere(c1 mgl64.Vec3, r1 float64, c2 mgl64.Vec3, r2 float64) Contact {
	diff := c1.Sub(c2)
	dist := diff.Len()
	minDist := r1 + r2
	if dist >= minDist {
		return Contact{}
	}

	normal := mgl64.Vec3{0, 1, 0} // coincident centers
	if dist > degenerateEpsilon {
		normal = diff.Mul(1 / dist)
	}
	return Contact{
		Collided:    true,
		Normal:      normal,
		Penetration: minDist - dist,
	}
}

func sphereVsBox(center mgl64.Vec3, radius float64, shape *components.Shape, t *engine.Transform) Contact {
	half := mgl64.Vec3{
		shape.Width * t.Scale.X() / 2,
		shape.Height * t.Scale.Y() / 2,
		shape.Depth * t.Scale.Z() / 2,
	}

	// Work in the box's local frame: inverse of an orthonormal rotation is
	// its transpose.
	rot := rotationMatrix(t.Rotation)
	local := rot.Transpose().Mul3x1(center.Sub(t.Position))

	closest := mgl64.Vec3{
		clamp(local.X(), -half.X(), half.X()),
		clamp(local.Y(), -half.Y(), half.Y()),
		clamp(local.Z(), -half.Z(), half.Z()),
	}

	delta := local.Sub(closest)
	dist := delta.Len()

	if dist > degenerateEpsilon {
		if dist >= radius {
			return Contact{}
		}
		return Contact{
			Collided:    true,
			Normal:      rot.Mul3x1(delta.Mul(1 / dist)),
			Penetration: radius - dist,
		}
	}

	// Center embedded in the box: push out along the face with the smallest
	// distance, signed by which side of that axis the center sits on.
	minDepth := math.Inf(1)
	var localNormal mgl64.Vec3
	for axis := 0; axis < 3; axis++ {
		depth := half[axis] - math.Abs(local[axis])
		if depth < minDepth {
			minDepth = depth
			localNormal = mgl64.Vec3{}
			if local[axis] < 0 {
				localNormal[axis] = -1
			} else {
				localNormal[axis] = 1
			}
		}
	}
	return Contact{
		Collided:    true,
		Normal:      rot.Mul3x1(localNormal),
		Penetration: radius + minDepth,
	}
}

func sphereVsTorus(center mgl64.Vec3, radius float64, shape *components.Shape, t *engine.Transform) Contact {
	// Torus local frame: ring circle in the X-Y plane, hole axis along Z.
	rot := rotationMatrix(t.Rotation)
	local := rot.Transpose().Mul3x1(center.Sub(t.Position))

	distFromCenter := math.Hypot(local.X(), local.Y())

	// Passing through the hole: no contact, the ring can be jumped through.
	if distFromCenter < shape.Radius-shape.Tube-radius {
		return Contact{}
	}

	// Closest point on the ring's center circle.
	ringDir := mgl64.Vec3{1, 0, 0}
	if distFromCenter > degenerateEpsilon {
		ringDir = mgl64.Vec3{local.X() / distFromCenter, local.Y() / distFromCenter, 0}
	}
	ringPoint := ringDir.Mul(shape.Radius)

	toSphere := local.Sub(ringPoint)
	dist := toSphere.Len()
	if dist <= degenerateEpsilon {
		// Center sits on the ring circle itself.
		return Contact{
			Collided:    true,
			Normal:      rot.Mul3x1(mgl64.Vec3{0, 0, 1}),
			Penetration: radius + shape.Tube,
		}
	}

	if dist-shape.Tube >= radius {
		return Contact{}
	}
	return Contact{
		Collided:    true,
		Normal:      rot.Mul3x1(toSphere.Mul(1 / dist)),
		Penetration: radius + shape.Tube - dist,
	}
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
