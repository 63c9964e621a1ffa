package systems

import (
	"dungeon-crawler/internal/core"
	"dungeon-crawler/pkg/logger"

	"github.com/sirupsen/logrus"
)

// MeleeCombatSystem превращает намерения атаковать в урон.
type MeleeCombatSystem struct{}

func (MeleeCombatSystem) Name() string { return "combat_system" }

func (s MeleeCombatSystem) Run(ctx *core.Context) {
	for _, attacker := range ctx.C.WantsMelee.Entities() {
		intent, _ := ctx.C.WantsMelee.Get(attacker)
		target := intent.Target

		attackerStats, ok := ctx.C.Stats.Get(attacker)
		if !ok || attackerStats.HP <= 0 {
			continue
		}
		targetStats, ok := ctx.C.Stats.Get(target)
		if !ok || targetStats.HP <= 0 {
			continue
		}

		attackerName := ctx.C.NameOf(attacker)
		targetName := ctx.C.NameOf(target)
		damage := max(0, attackerStats.Power-targetStats.Defense)

		logger.Log.WithFields(logrus.Fields{
			"component": s.Name(),
			"attacker":  attackerName,
			"target":    targetName,
			"power":     attackerStats.Power,
			"defense":   targetStats.Defense,
			"damage":    damage,
		}).Debug("Attack resolved.")

		if damage == 0 {
			ctx.Log.Addf("%s attacks %s, but it has no effect.", attackerName, targetName)
			continue
		}
		ctx.Log.Addf("%s hits %s, for %d hp.", attackerName, targetName, damage)
		ctx.C.NewDamage(target, damage)
	}

	ctx.C.WantsMelee.Clear()
}

// DamageSystem применяет накопленный за ход урон и очищает его.
type DamageSystem struct{}

func (DamageSystem) Name() string { return "damage_system" }

func (DamageSystem) Run(ctx *core.Context) {
	for _, e := range ctx.C.Damage.Entities() {
		dmg, _ := ctx.C.Damage.Get(e)
		if stats, ok := ctx.C.Stats.Get(e); ok {
			stats.HP -= dmg.Sum()
		}
	}
	ctx.C.Damage.Clear()
}

// DeleteTheDead удаляет погибших. Игрока не удаляет: возвращает true,
// а сброс сессии делает вызывающий.
func DeleteTheDead(ctx *core.Context) bool {
	playerDied := false

	for _, e := range ctx.C.Stats.Entities() {
		stats, _ := ctx.C.Stats.Get(e)
		if stats.HP > 0 {
			continue
		}
		if ctx.IsPlayer(e) {
			playerDied = true
			continue
		}

		if name, ok := ctx.C.Name.Get(e); ok {
			ctx.Log.Addf("%s is dead", name.Name)
		}
		ctx.World.Delete(e)
	}

	if playerDied {
		logger.Log.WithField("component", "damage_system").Info("Player died.")
	}
	return playerDied
}
