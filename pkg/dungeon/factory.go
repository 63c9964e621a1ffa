package dungeon

import (
	"math/rand"

	"dungeon-crawler/internal/domain"
	"dungeon-crawler/internal/ecs"
)

func renderableOf(t EntityTemplate) domain.Renderable {
	return domain.Renderable{
		Glyph:       t.Rune(),
		FG:          t.FG,
		BG:          t.BG,
		RenderOrder: t.RenderOrder,
	}
}

func statsOf(t *StatsTemplate) domain.CombatStats {
	return domain.CombatStats{MaxHP: t.MaxHP, HP: t.MaxHP, Defense: t.Defense, Power: t.Power}
}

// CreatePlayer создает игрока на заданной позиции.
func (c *Catalog) CreatePlayer(w *ecs.World, comp *domain.Components, x, y int) ecs.Entity {
	t := c.Player
	e := w.Create()
	comp.Position.Insert(e, domain.Position{X: x, Y: y})
	comp.Renderable.Insert(e, renderableOf(t))
	comp.Viewshed.Insert(e, domain.NewViewshed(t.Sight))
	comp.Name.Insert(e, domain.Name{Name: t.Name})
	comp.Stats.Insert(e, statsOf(t.Stats))
	w.Tag(e, domain.TagPlayer|domain.TagSerializeMe)
	return e
}

// Spawn создает сущность варианта kind на клетке (x, y).
func (c *Catalog) Spawn(w *ecs.World, comp *domain.Components, kind SpawnKind, x, y int) (ecs.Entity, bool) {
	t, ok := c.Template(kind)
	if !ok {
		return ecs.NilEntity, false
	}

	e := w.Create()
	comp.Position.Insert(e, domain.Position{X: x, Y: y})
	comp.Renderable.Insert(e, renderableOf(t))
	comp.Name.Insert(e, domain.Name{Name: t.Name})
	tags := domain.TagSerializeMe

	if t.Monster {
		tags |= domain.TagMonster | domain.TagBlocksTile
		comp.Viewshed.Insert(e, domain.NewViewshed(t.Sight))
	}
	if t.Stats != nil {
		comp.Stats.Insert(e, statsOf(t.Stats))
	}

	if it := t.Item; it != nil {
		tags |= domain.TagItem
		if !it.Reusable {
			tags |= domain.TagConsumable
		}
		if it.Healing > 0 {
			comp.Healing.Insert(e, domain.ProvidesHealing{HealAmount: it.Healing})
		}
		if it.Ranged > 0 {
			comp.Ranged.Insert(e, domain.Ranged{Range: it.Ranged})
		}
		if it.Damage > 0 {
			comp.Inflicts.Insert(e, domain.InflictsDamage{Damage: it.Damage})
		}
		if it.Radius > 0 {
			comp.Area.Insert(e, domain.AreaOfEffect{Radius: it.Radius})
		}
		if it.Confusion > 0 {
			comp.Confusion.Insert(e, domain.Confusion{Turns: it.Confusion})
		}
	}

	w.Tag(e, tags)
	return e, true
}

// SpawnRoom населяет комнату по таблице появления для глубины.
func (c *Catalog) SpawnRoom(w *ecs.World, comp *domain.Components, room Rect, depth, maxSpawns int, rng *rand.Rand) []ecs.Entity {
	points := c.RollRoom(room, depth, maxSpawns, rng)
	spawned := make([]ecs.Entity, 0, len(points))
	for _, p := range points {
		if e, ok := c.Spawn(w, comp, p.Kind, p.X, p.Y); ok {
			spawned = append(spawned, e)
		}
	}
	return spawned
}
