package systems

import (
	"dungeon-crawler/internal/core"
	"dungeon-crawler/internal/domain"
	"dungeon-crawler/pkg/dungeon"
	"dungeon-crawler/pkg/logger"

	"github.com/sirupsen/logrus"
)

// MonsterAI решает действия монстров. Активен только в фазе хода монстров.
type MonsterAI struct{}

func (MonsterAI) Name() string { return "monster_ai" }

func (s MonsterAI) Run(ctx *core.Context) {
	if ctx.RunState.Kind != core.StateMonsterTurn || !ctx.World.Alive(ctx.Player) {
		return
	}

	m := ctx.Map
	playerIdx := m.Idx(ctx.PlayerPos.X, ctx.PlayerPos.Y)

	monsters := ctx.World.Query().
		With(ctx.C.Viewshed).
		With(ctx.C.Position).
		WithTag(domain.TagMonster).
		Execute()

	for _, e := range monsters {
		aiLogger := logger.Log.WithFields(logrus.Fields{
			"component": s.Name(),
			"monster":   ctx.C.NameOf(e),
			"entity":    e.String(),
		})

		// Оглушенный монстр пропускает ход
		if conf, ok := ctx.C.Confusion.Get(e); ok {
			conf.Turns--
			left := conf.Turns
			if left <= 0 {
				ctx.C.Confusion.Remove(e)
			}
			aiLogger.WithField("turns_left", left).Debug("Confused, skipping turn.")
			continue
		}

		pos, _ := ctx.C.Position.Get(e)
		vs, _ := ctx.C.Viewshed.Get(e)

		dist := pos.DistanceTo(ctx.PlayerPos)
		if dist <= domain.MeleeReach {
			ctx.C.WantsMelee.Insert(e, domain.WantsToMelee{Target: ctx.Player})
			aiLogger.WithField("distance", dist).Debug("Target in attack range. Action: ATTACK")
			// Остальные монстры в этом ходу не действуют.
			// TODO: похоже на случайность; дать атаковать всем соседним монстрам, когда поменяется баланс.
			return
		}

		if !vs.CanSee(ctx.PlayerPos) {
			continue
		}

		path := dungeon.AStar(m, m.Idx(pos.X, pos.Y), playerIdx)
		if !path.Success || len(path.Steps) < 2 {
			aiLogger.Debug("No path to target. Action: WAIT")
			continue
		}

		m.Blocked[m.Idx(pos.X, pos.Y)] = false
		pos.X, pos.Y = m.XY(path.Steps[1])
		m.Blocked[path.Steps[1]] = true
		vs.Dirty = true

		aiLogger.WithFields(logrus.Fields{
			"path_len": len(path.Steps) - 1,
			"to":       *pos,
		}).Debug("Chasing target. Action: MOVE")
	}
}
