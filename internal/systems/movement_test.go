package systems

import (
	"testing"

	"dungeon-crawler/internal/domain"
	"dungeon-crawler/pkg/dungeon"
)

func TestTryMovePlayer(t *testing.T) {
	ctx := newTestContext(20, 20, 5, 5)
	orc := addMonster(ctx, "Orc", 6, 6, domain.CombatStats{MaxHP: 16, HP: 16})
	refresh(ctx)

	// Атака вместо шага
	TryMovePlayer(ctx, 1, 1)
	if intent, ok := ctx.C.WantsMelee.Get(ctx.Player); !ok || intent.Target != orc {
		t.Fatal("moving into a monster must create a melee intent")
	}
	if ctx.PlayerPos != (domain.Position{X: 5, Y: 5}) {
		t.Error("player must not move when attacking")
	}
	ctx.C.WantsMelee.Clear()

	// Обычный шаг
	TryMovePlayer(ctx, -1, 0)
	if ctx.PlayerPos != (domain.Position{X: 4, Y: 5}) {
		t.Errorf("expected 4,5, got %+v", ctx.PlayerPos)
	}
	if vs, _ := ctx.C.Viewshed.Get(ctx.Player); !vs.Dirty {
		t.Error("moving marks the viewshed dirty")
	}

	// В стену нельзя
	ctx.SetPlayerPos(domain.Position{X: 1, Y: 1})
	MapIndexingSystem{}.Run(ctx)
	TryMovePlayer(ctx, -1, 0)
	if ctx.PlayerPos != (domain.Position{X: 1, Y: 1}) {
		t.Errorf("walked into a wall: %+v", ctx.PlayerPos)
	}
}

func TestTryNextLevel(t *testing.T) {
	ctx := newTestContext(20, 20, 5, 5)
	if TryNextLevel(ctx) {
		t.Fatal("no stairs under the player")
	}
	if ctx.Log.Last() != "There is no way down from here." {
		t.Errorf("unexpected log %q", ctx.Log.Last())
	}

	ctx.Map.Tiles[ctx.Map.Idx(5, 5)] = dungeon.TileDownStairs
	if !TryNextLevel(ctx) {
		t.Error("stairs under the player")
	}
}

func TestSkipTurn_HealsOnlyWhenAlone(t *testing.T) {
	ctx := newTestContext(20, 20, 5, 5)
	stats, _ := ctx.C.Stats.Get(ctx.Player)
	stats.HP = 10
	refresh(ctx)

	SkipTurn(ctx)
	if stats.HP != 11 {
		t.Errorf("expected heal to 11, got %d", stats.HP)
	}

	addMonster(ctx, "Orc", 8, 5, domain.CombatStats{MaxHP: 16, HP: 16})
	MapIndexingSystem{}.Run(ctx)
	SkipTurn(ctx)
	if stats.HP != 11 {
		t.Errorf("no heal with a monster in view, got %d", stats.HP)
	}
}

func TestTargetCells(t *testing.T) {
	ctx := newTestContext(30, 30, 10, 10)
	refresh(ctx)

	if !IsValidTarget(ctx, 6, domain.Position{X: 14, Y: 10}) {
		t.Error("tile at distance 4 is a valid target")
	}
	if IsValidTarget(ctx, 6, domain.Position{X: 17, Y: 10}) {
		t.Error("tile at distance 7 is out of range")
	}
}
