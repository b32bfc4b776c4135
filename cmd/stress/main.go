// Command stress runs the physics pipeline headless at a fixed timestep
// and reports per-second throughput stats.
package main

import (
	"flag"
	"math/rand"
	"time"

	"github.com/jakecoffman/cp"
	"go.uber.org/zap"

	"github.com/milk9111/rrect/ecs"
	"github.com/milk9111/rrect/ecs/systems"
	"github.com/milk9111/rrect/physics"
	"github.com/milk9111/rrect/scenes"
)

func main() {
	sceneName := flag.String("scene", "stress.yaml", "scene file in scenes/ (basename)")
	target := flag.Int("n", 2000, "number of bodies to reach")
	perTick := flag.Int("spawn", 25, "bodies spawned per tick until -n is reached")
	dt := flag.Float64("dt", 1.0/60.0, "fixed timestep in seconds")
	cell := flag.Float64("cell", 0, "broad-phase cell size override (0 uses the scene value)")
	seconds := flag.Int("seconds", 30, "simulated seconds to run")
	seed := flag.Int64("seed", 1, "spawn RNG seed")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	spec, err := scenes.LoadScene(*sceneName)
	if err != nil {
		logger.Fatal("load scene", zap.Error(err))
	}

	cellSize := spec.CellSize
	if *cell > 0 {
		cellSize = *cell
	}

	w := ecs.NewWorld()
	w.SetPhysicsWorld(ecs.NewPhysicsWorld(cellSize))
	systems.RegisterPipeline(w)

	if _, err := scenes.Spawn(w, spec, nil); err != nil {
		logger.Fatal("spawn scene", zap.Error(err))
	}

	logger.Info("starting",
		zap.String("scene", spec.Name),
		zap.Float64("cell_size", cellSize),
		zap.Int("target_bodies", *target),
		zap.Float64("dt", *dt),
		zap.Int("seconds", *seconds))

	rng := rand.New(rand.NewSource(*seed))
	ticksPerSecond := int(1.0 / *dt)
	totalTicks := *seconds * ticksPerSecond

	spawned := 0
	collisions := 0
	var simTime time.Duration

	for tick := 1; tick <= totalTicks; tick++ {
		for i := 0; i < *perTick && spawned < *target; i++ {
			spawnBob(w, rng)
			spawned++
		}

		start := time.Now()
		w.Update(*dt)
		simTime += time.Since(start)

		collisions += len(w.Events().Drain())

		if tick%ticksPerSecond == 0 {
			grid := w.PhysicsWorld().Grid()
			logger.Info("second elapsed",
				zap.Int("tick", tick),
				zap.Int("entities", len(w.Entities())),
				zap.Int("collisions", collisions),
				zap.Int("cells", grid.CellCount()),
				zap.Int("tracked", grid.Len()),
				zap.Float64("avg_ms_per_tick", float64(simTime.Milliseconds())/float64(ticksPerSecond)))
			collisions = 0
			simTime = 0
		}
	}

	logger.Info("done", zap.Int("entities", len(w.Entities())), zap.Int("ticks", totalTicks))
}

// spawnBob drops a randomized dynamic body inside the arena with a
// decaying initial shove.
func spawnBob(w *ecs.World, rng *rand.Rand) {
	e := w.CreateEntity()

	pos := cp.Vector{
		X: rng.Float64()*36 - 18,
		Y: rng.Float64()*36 - 18,
	}
	w.SetPosition(e, &physics.Position{Pos: pos})

	m := physics.Damped(cp.Vector{X: 0.8, Y: 0.8})
	shove := cp.Vector{
		X: rng.Float64()*14 - 7,
		Y: rng.Float64()*14 - 7,
	}
	active := false
	m.ApplyForce(physics.PartialForce{ID: "main", Force: &shove, Active: &active})
	w.SetMovement(e, m)

	col := physics.NewDynamic(cp.Vector{X: 1, Y: 1}, physics.DefaultRadius, 1+rng.Float64()*19)
	w.SetCollider(e, &col)
}
