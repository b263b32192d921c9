// Headless marble-course simulation server: runs the physics world at a
// fixed tick rate and exposes it to presentation clients over websocket.
package main

import (
	"flag"
	"log"
	"net/http"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/spruceb/marblez/internal/components"
	"github.com/spruceb/marblez/internal/course"
	"github.com/spruceb/marblez/internal/engine"
	"github.com/spruceb/marblez/internal/physics"
	"github.com/spruceb/marblez/internal/transport/ws"
)

// maxDt caps elapsed time per tick so a long frame stall doesn't blow up
// the integration. The core performs no clamping itself.
const maxDt = 0.1

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	coursePath := flag.String("course", "", "TOML course file (built-in course if empty)")
	tickHz := flag.Int("tick-hz", 60, "simulation ticks per second")
	flag.Parse()

	var world *physics.World
	var err error
	if *coursePath != "" {
		world, err = course.LoadFile(*coursePath)
	} else {
		world, err = course.BuildDefault(physics.DefaultConfig())
	}
	if err != nil {
		log.Fatalf("course: %v", err)
	}

	world.ContactEnter.AddListener(func(other *engine.GameObject) {
		log.Printf("marble contact: %s", other.Name)
	})

	marble := world.Marble()
	input := engine.GetComponent[*components.PlayerInput](marble)
	jump := engine.GetComponent[*components.JumpState](marble)

	server := ws.NewServer(*tickHz)
	mux := http.NewServeMux()
	mux.Handle("/ws", server)
	go func() {
		log.Printf("marblez listening on %s (%d Hz, %d objects)", *addr, *tickHz, len(world.Objects()))
		log.Fatal(http.ListenAndServe(*addr, mux))
	}()

	ticker := time.NewTicker(time.Second / time.Duration(*tickHz))
	defer ticker.Stop()

	last := time.Now()
	for now := range ticker.C {
		dt := now.Sub(last).Seconds()
		last = now
		if dt > maxDt {
			dt = maxDt
		}

		if in, fresh := server.ConsumeInput(); fresh {
			if input != nil {
				input.Set(mgl64.Vec2{in.DirX, in.DirZ})
			}
			if in.Jump && jump != nil {
				jump.JumpRequested = true
			}
		}

		world.Step(dt)
		server.Broadcast(ws.Snapshot(world))
	}
}
