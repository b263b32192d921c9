// Stress test timing the full physics step against growing obstacle counts.
package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/spruceb/marblez/internal/components"
	"github.com/spruceb/marblez/internal/course"
	"github.com/spruceb/marblez/internal/engine"
	"github.com/spruceb/marblez/internal/physics"
)

func main() {
	testCounts := []int{10, 50, 100, 500, 1000, 5000}

	for _, count := range testCounts {
		testStep(count)
	}
}

func testStep(count int) {
	cfg := physics.DefaultConfig()
	cfg.PlatformHalfExtent = 100

	world, err := physics.NewWorld(cfg)
	if err != nil {
		panic(err)
	}

	marble, err := course.NewMarble(cfg)
	if err != nil {
		panic(err)
	}
	marble.Transform.Position = mgl64.Vec3{0, 30, 0}
	if err := world.AddObject(marble); err != nil {
		panic(err)
	}
	if err := world.SetMarble(marble); err != nil {
		panic(err)
	}

	// Scatter static obstacles in a cube; size scales with count to keep
	// density reasonable.
	rng := rand.New(rand.NewSource(42)) // consistent results
	spawnSize := 50.0 + float64(count)/100.0

	for i := 0; i < count; i++ {
		pos := mgl64.Vec3{
			rng.Float64()*spawnSize - spawnSize/2,
			rng.Float64() * 10,
			rng.Float64()*spawnSize - spawnSize/2,
		}
		var obj *engine.GameObject
		switch i % 3 {
		case 0:
			obj, err = course.NewSphereObstacle(fmt.Sprintf("sphere-%d", i), pos, 0.5+rng.Float64()*0.5)
		case 1:
			obj, err = course.NewBox(fmt.Sprintf("box-%d", i), pos, mgl64.Vec3{1, 1, 1})
		case 2:
			obj, err = course.NewRing(fmt.Sprintf("ring-%d", i), pos, 1.5, 0.3)
		}
		if err != nil {
			panic(err)
		}
		if err := world.AddObject(obj); err != nil {
			panic(err)
		}
	}

	// Warm up
	world.Step(0.016)

	const iterations = 200
	rb := engine.GetComponent[*components.RigidBody](marble)

	start := time.Now()
	for i := 0; i < iterations; i++ {
		// Keep the marble moving so the narrow phase never short-circuits
		// into a resting state.
		rb.Velocity = mgl64.Vec3{0.1, rb.Velocity.Y(), 0.1}
		world.Step(0.016)
	}
	perStep := time.Since(start) / iterations

	fmt.Printf("%5d objects: %10v per step\n", count, perStep.Round(time.Microsecond))
}
