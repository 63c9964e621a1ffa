package systems

import (
	"dungeon-crawler/internal/core"
	"dungeon-crawler/internal/domain"
	"dungeon-crawler/pkg/dungeon"
	"dungeon-crawler/pkg/logger"

	"github.com/sirupsen/logrus"
)

// TryMovePlayer двигает игрока или, если на клетке есть кого бить, ставит намерение атаки.
func TryMovePlayer(ctx *core.Context, dx, dy int) {
	pos, ok := ctx.C.Position.Get(ctx.Player)
	if !ok {
		return
	}
	m := ctx.Map
	dest := pos.Shift(dx, dy)
	if !m.InBounds(dest.X, dest.Y) {
		return
	}

	for _, target := range m.ContentAt(dest.X, dest.Y) {
		if ctx.C.Stats.Has(target) && target != ctx.Player {
			ctx.C.WantsMelee.Insert(ctx.Player, domain.WantsToMelee{Target: target})
			logger.Log.WithFields(logrus.Fields{
				"component": "player_input",
				"target":    ctx.C.NameOf(target),
			}).Debug("Player attacks.")
			return
		}
	}

	if m.Blocked[m.Idx(dest.X, dest.Y)] {
		return
	}

	pos.X = min(m.Width-1, max(0, dest.X))
	pos.Y = min(m.Height-1, max(0, dest.Y))
	ctx.PlayerPos = *pos
	if vs, ok := ctx.C.Viewshed.Get(ctx.Player); ok {
		vs.Dirty = true
	}
}

// GetItem ставит намерение подобрать первый предмет под игроком.
func GetItem(ctx *core.Context) bool {
	for _, item := range ctx.World.Query().With(ctx.C.Position).WithTag(domain.TagItem).Execute() {
		pos, _ := ctx.C.Position.Get(item)
		if *pos != ctx.PlayerPos {
			continue
		}
		ctx.C.WantsPickup.Insert(ctx.Player, domain.WantsToPickupItem{CollectedBy: ctx.Player, Item: item})
		return true
	}

	ctx.Log.Add("There is nothing here to pick up.")
	return false
}

// TryNextLevel - спуск возможен только с лестницы.
func TryNextLevel(ctx *core.Context) bool {
	m := ctx.Map
	if m.Tiles[m.Idx(ctx.PlayerPos.X, ctx.PlayerPos.Y)] == dungeon.TileDownStairs {
		return true
	}
	ctx.Log.Add("There is no way down from here.")
	return false
}

// SkipTurn - пропуск хода. Если монстров не видно, игрок восстанавливает 1 hp.
func SkipTurn(ctx *core.Context) {
	vs, ok := ctx.C.Viewshed.Get(ctx.Player)
	if !ok {
		return
	}

	m := ctx.Map
	for _, tile := range vs.VisibleTiles {
		for _, e := range m.ContentAt(tile.X, tile.Y) {
			if ctx.World.HasTag(e, domain.TagMonster) {
				return
			}
		}
	}

	if stats, ok := ctx.C.Stats.Get(ctx.Player); ok {
		stats.Heal(1)
	}
}

// TargetCells - клетки, которые игрок видит и до которых дотягивается предмет с дальностью rng.
func TargetCells(ctx *core.Context, rng int) []domain.Position {
	vs, ok := ctx.C.Viewshed.Get(ctx.Player)
	if !ok {
		return nil
	}
	cells := make([]domain.Position, 0, len(vs.VisibleTiles))
	for _, t := range vs.VisibleTiles {
		if ctx.PlayerPos.DistanceTo(t) <= float64(rng) {
			cells = append(cells, t)
		}
	}
	return cells
}

// IsValidTarget - точка входит в TargetCells.
func IsValidTarget(ctx *core.Context, rng int, p domain.Position) bool {
	for _, c := range TargetCells(ctx, rng) {
		if c == p {
			return true
		}
	}
	return false
}
