package engine

import (
	"dungeon-crawler/internal/core"
	"dungeon-crawler/internal/domain"
	"dungeon-crawler/internal/ecs"
	"dungeon-crawler/pkg/dungeon"

	"github.com/sirupsen/logrus"
)

// startNewGame - новая карта, игрок в первой комнате, остальные комнаты заселены.
func (g *Game) startNewGame() {
	ctx := g.ctx
	g.wipe()
	ctx.Log = core.NewGameLog()

	depth := max(1, g.cfg.StartDepth)
	m := dungeon.GenerateWith(g.params(), depth, ctx.Rng)
	ctx.Map = m

	x, y := m.StartPos()
	ctx.Player = ctx.Catalog.CreatePlayer(ctx.World, ctx.C, x, y)
	ctx.PlayerPos = domain.Position{X: x, Y: y}

	spawned := g.populate(m)

	g.log.WithFields(logrus.Fields{
		"depth":    depth,
		"rooms":    len(m.Rooms),
		"entities": spawned,
	}).Info("New game started.")
}

// populate заселяет все комнаты, кроме первой.
func (g *Game) populate(m *dungeon.Map) int {
	ctx := g.ctx
	spawned := 0
	if len(m.Rooms) < 2 {
		return spawned
	}
	for _, room := range m.Rooms[1:] {
		spawned += len(ctx.Catalog.SpawnRoom(ctx.World, ctx.C, room, m.Depth, ctx.MaxSpawns, ctx.Rng))
	}
	return spawned
}

// keepOnLevelChange - игрок и его рюкзак переходят на новый уровень
func (g *Game) keepOnLevelChange(e ecs.Entity) bool {
	ctx := g.ctx
	if e == ctx.Player {
		return true
	}
	if bp, ok := ctx.C.InBackpack.Get(e); ok && bp.Owner == ctx.Player {
		return true
	}
	return false
}

// GoToNextLevel строит уровень depth+1 и переносит туда игрока.
func (g *Game) GoToNextLevel() {
	ctx := g.ctx

	removed := 0
	for _, e := range ctx.World.Entities() {
		if g.keepOnLevelChange(e) {
			continue
		}
		ctx.World.Delete(e)
		removed++
	}

	depth := ctx.Map.Depth + 1
	m := dungeon.GenerateWith(g.params(), depth, ctx.Rng)
	ctx.Map = m
	spawned := g.populate(m)

	x, y := m.StartPos()
	ctx.SetPlayerPos(domain.Position{X: x, Y: y})
	if vs, ok := ctx.C.Viewshed.Get(ctx.Player); ok {
		vs.Dirty = true
	}

	ctx.Log.Add("You descend to the next level, and take a moment to heal.")
	if stats, ok := ctx.C.Stats.Get(ctx.Player); ok {
		stats.HP = max(stats.HP, stats.MaxHP/2)
	}

	g.log.WithFields(logrus.Fields{
		"depth":   depth,
		"removed": removed,
		"spawned": spawned,
	}).Info("Level changed.")
}
