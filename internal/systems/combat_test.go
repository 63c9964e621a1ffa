package systems

import (
	"strings"
	"testing"

	"dungeon-crawler/internal/domain"
)

func TestMelee_DamageAccumulatesPerTurn(t *testing.T) {
	ctx := newTestContext(20, 20, 2, 2)
	target := addMonster(ctx, "Orc", 10, 10, domain.CombatStats{MaxHP: 20, HP: 20, Defense: 0, Power: 1})
	a := addMonster(ctx, "Goblin A", 9, 10, domain.CombatStats{MaxHP: 10, HP: 10, Power: 3})
	b := addMonster(ctx, "Goblin B", 11, 10, domain.CombatStats{MaxHP: 10, HP: 10, Power: 5})

	ctx.C.WantsMelee.Insert(a, domain.WantsToMelee{Target: target})
	ctx.C.WantsMelee.Insert(b, domain.WantsToMelee{Target: target})

	MeleeCombatSystem{}.Run(ctx)

	if ctx.C.WantsMelee.Len() != 0 {
		t.Error("melee intents must be cleared")
	}
	dmg, ok := ctx.C.Damage.Get(target)
	if !ok || dmg.Sum() != 8 || len(dmg.Amount) != 2 {
		t.Fatalf("expected pending [3 5], got %+v", dmg)
	}

	DamageSystem{}.Run(ctx)

	stats, _ := ctx.C.Stats.Get(target)
	if stats.HP != 12 {
		t.Errorf("expected hp 12, got %d", stats.HP)
	}
	if ctx.C.Damage.Len() != 0 {
		t.Error("pending damage must be empty after the damage stage")
	}
}

func TestMelee_ZeroDamageHasNoEffect(t *testing.T) {
	ctx := newTestContext(20, 20, 2, 2)
	target := addMonster(ctx, "Orc", 10, 10, domain.CombatStats{MaxHP: 20, HP: 20, Defense: 5})
	attacker := addMonster(ctx, "Goblin", 9, 10, domain.CombatStats{MaxHP: 10, HP: 10, Power: 5})

	ctx.C.WantsMelee.Insert(attacker, domain.WantsToMelee{Target: target})
	MeleeCombatSystem{}.Run(ctx)

	if ctx.C.Damage.Has(target) {
		t.Error("zero damage must not produce a damage event")
	}
	if !strings.Contains(ctx.Log.Last(), "no effect") {
		t.Errorf("expected a 'no effect' log line, got %q", ctx.Log.Last())
	}
}

func TestMelee_SkipsDeadParticipants(t *testing.T) {
	ctx := newTestContext(20, 20, 2, 2)
	target := addMonster(ctx, "Orc", 10, 10, domain.CombatStats{MaxHP: 20, HP: 20})
	deadAttacker := addMonster(ctx, "Ghost", 9, 10, domain.CombatStats{MaxHP: 10, HP: 0, Power: 9})
	deadTarget := addMonster(ctx, "Corpse", 12, 10, domain.CombatStats{MaxHP: 10, HP: 0})

	ctx.C.WantsMelee.Insert(deadAttacker, domain.WantsToMelee{Target: target})
	ctx.C.WantsMelee.Insert(target, domain.WantsToMelee{Target: deadTarget})
	MeleeCombatSystem{}.Run(ctx)

	if ctx.C.Damage.Len() != 0 {
		t.Errorf("no damage expected, got %d entries", ctx.C.Damage.Len())
	}
}

func TestDeleteTheDead(t *testing.T) {
	ctx := newTestContext(20, 20, 2, 2)
	alive := addMonster(ctx, "Orc", 10, 10, domain.CombatStats{MaxHP: 20, HP: 5})
	dead := addMonster(ctx, "Goblin", 11, 10, domain.CombatStats{MaxHP: 10, HP: 0})

	if DeleteTheDead(ctx) {
		t.Fatal("player is alive")
	}
	if ctx.World.Alive(dead) {
		t.Error("dead monster must be deleted")
	}
	if !ctx.World.Alive(alive) {
		t.Error("living monster must survive")
	}
	if ctx.Log.Last() != "Goblin is dead" {
		t.Errorf("unexpected log %q", ctx.Log.Last())
	}

	stats, _ := ctx.C.Stats.Get(ctx.Player)
	stats.HP = -3
	if !DeleteTheDead(ctx) {
		t.Error("expected player death signal")
	}
	if !ctx.World.Alive(ctx.Player) {
		t.Error("player entity is not deleted by the sweep")
	}
}
