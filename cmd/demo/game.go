package main

import (
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"

	"github.com/milk9111/rrect/common"
	"github.com/milk9111/rrect/ecs"
	"github.com/milk9111/rrect/ecs/systems"
	"github.com/milk9111/rrect/physics"
	"github.com/milk9111/rrect/scenes"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	tileSize = 40.0
	tickDt   = 1.0 / 60.0

	// How far render positions move toward simulated positions each frame.
	renderLerp = 0.2
)

type Game struct {
	sceneName string
	debug     bool
	frames    int

	world   *ecs.World
	scripts *scenes.ScriptSystem
	player  ecs.Entity

	renderPos  map[ecs.Entity]cp.Vector
	collisions int

	watcher *scenes.Watcher
}

func NewGame(sceneName string, debug bool) (*Game, error) {
	g := &Game{
		sceneName: sceneName,
		debug:     debug,
		renderPos: map[ecs.Entity]cp.Vector{},
	}
	if err := g.loadScene(); err != nil {
		return nil, err
	}

	// Watch the on-disk scene files so edits rebuild the world live. The
	// directories only exist when running from the repo root; without them
	// the embedded copies are all we have.
	watcher, err := scenes.NewWatcher("scenes", "scenes/scripts")
	if err != nil {
		log.Printf("scene watching disabled: %v", err)
	} else {
		g.watcher = watcher
	}

	return g, nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) loadScene() error {
	spec, err := scenes.LoadScene(g.sceneName)
	if err != nil {
		return err
	}

	w := ecs.NewWorld()
	w.SetPhysicsWorld(ecs.NewPhysicsWorld(spec.CellSize))
	scripts := scenes.NewScriptSystem()
	w.AddSystem(scripts)
	systems.RegisterPipeline(w)

	spawned, err := scenes.Spawn(w, spec, scripts)
	if err != nil {
		return err
	}

	g.world = w
	g.scripts = scripts
	g.player = spawned["player"]
	g.renderPos = map[ecs.Entity]cp.Vector{}
	return nil
}

func (g *Game) Update() error {
	g.frames++
	g.pollWatcher()

	g.applyPlayerInput()
	g.world.Update(tickDt)

	events := g.world.Events().Drain()
	g.collisions = len(events)
	if g.debug {
		for _, ev := range events {
			log.Printf("collision %s <-> %s", ev.A, ev.B)
		}
	}

	g.updateRenderPositions()
	return nil
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	reload := false
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("scene file changed: %s", name)
			reload = true
		case err := <-g.watcher.Errors:
			log.Printf("scene watcher: %v", err)
		default:
			if reload {
				if err := g.loadScene(); err != nil {
					log.Printf("scene reload failed: %v", err)
				}
			}
			return
		}
	}
}

func (g *Game) applyPlayerInput() {
	if !g.world.IsAlive(g.player) {
		return
	}
	m := g.world.GetMovement(g.player)
	if m == nil {
		return
	}

	var force cp.Vector
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW) {
		force.Y += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS) {
		force.Y -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		force.X -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		force.X += 1
	}
	if force.Length() > 0 {
		force = force.Normalize().Mult(5)
	}

	active := true
	m.ApplyForce(physics.PartialForce{ID: "player_movement", Force: &force, Active: &active})
}

// updateRenderPositions eases drawn positions toward simulated ones so
// collision corrections read as a push instead of a teleport. Entities
// snap on first sight.
func (g *Game) updateRenderPositions() {
	seen := map[ecs.Entity]struct{}{}
	positions := g.world.Positions()
	for _, e := range positions.Entities() {
		pos, ok := positions.Get(e)
		if !ok || pos == nil {
			continue
		}
		seen[e] = struct{}{}
		if prev, ok := g.renderPos[e]; ok {
			g.renderPos[e] = common.LerpVec(prev, pos.Pos, renderLerp)
		} else {
			g.renderPos[e] = pos.Pos
		}
	}
	for e := range g.renderPos {
		if _, ok := seen[e]; !ok {
			delete(g.renderPos, e)
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	for _, e := range g.world.Colliders().Entities() {
		col := g.world.GetCollider(e)
		pos, ok := g.renderPos[e]
		if col == nil || !ok {
			continue
		}
		drawRoundedRect(screen, toScreen(pos), col, fillColor(e == g.player, col.Type))
	}

	stats := fmt.Sprintf("FPS: %.2f    entities: %d    collisions: %d",
		ebiten.ActualFPS(), len(g.world.Entities()), g.collisions)
	if g.debug {
		grid := g.world.PhysicsWorld().Grid()
		stats += fmt.Sprintf("    cells: %d    tracked: %d", grid.CellCount(), grid.Len())
	}
	ebitenutil.DebugPrint(screen, stats)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

// toScreen maps world units to pixels, origin at screen center with y up.
func toScreen(pos cp.Vector) cp.Vector {
	return cp.Vector{
		X: baseWidth/2 + pos.X*tileSize,
		Y: baseHeight/2 - pos.Y*tileSize,
	}
}

func fillColor(isPlayer bool, typ physics.ColliderType) color.Color {
	if isPlayer {
		return color.RGBA{R: 0x00, G: 0x00, B: 0xff, A: 0xff}
	}
	switch typ {
	case physics.Static:
		return color.RGBA{R: 0x4d, G: 0x4d, B: 0x4d, A: 0xff}
	case physics.Sensor:
		return color.RGBA{R: 0x33, G: 0xaa, B: 0x33, A: 0x80}
	}
	return color.RGBA{R: 0x99, G: 0x66, B: 0x00, A: 0xff}
}

// drawRoundedRect fills a rounded rectangle as two overlapping rects plus
// a circle per corner.
func drawRoundedRect(dst *ebiten.Image, center cp.Vector, col *physics.Collider, clr color.Color) {
	w := col.Size.X * tileSize
	h := col.Size.Y * tileSize
	r := col.Radius * tileSize

	cx := float32(center.X)
	cy := float32(center.Y)
	hw := float32(w / 2)
	hh := float32(h / 2)
	fr := float32(r)

	if r <= 0 {
		vector.DrawFilledRect(dst, cx-hw, cy-hh, float32(w), float32(h), clr, true)
		return
	}

	vector.DrawFilledRect(dst, cx-hw, cy-hh+fr, float32(w), float32(h)-2*fr, clr, true)
	vector.DrawFilledRect(dst, cx-hw+fr, cy-hh, float32(w)-2*fr, float32(h), clr, true)

	for _, sx := range []float32{-1, 1} {
		for _, sy := range []float32{-1, 1} {
			vector.DrawFilledCircle(dst, cx+sx*(hw-fr), cy+sy*(hh-fr), fr, clr, true)
		}
	}
}
