package systems

import (
	"dungeon-crawler/internal/core"
	"dungeon-crawler/internal/domain"
	"dungeon-crawler/internal/ecs"
	"dungeon-crawler/pkg/logger"

	"github.com/sirupsen/logrus"
)

// ItemCollectionSystem переносит предметы с пола в рюкзак.
type ItemCollectionSystem struct{}

func (ItemCollectionSystem) Name() string { return "item_collection_system" }

func (ItemCollectionSystem) Run(ctx *core.Context) {
	for _, e := range ctx.C.WantsPickup.Entities() {
		intent, _ := ctx.C.WantsPickup.Get(e)
		if !ctx.World.Alive(intent.Item) || ctx.World.PendingDelete(intent.Item) {
			continue
		}

		ctx.C.Position.Remove(intent.Item)
		ctx.C.InBackpack.Insert(intent.Item, domain.InBackpack{Owner: intent.CollectedBy})

		if ctx.IsPlayer(intent.CollectedBy) {
			ctx.Log.Addf("You pick up the %s.", ctx.C.NameOf(intent.Item))
		}
	}
	ctx.C.WantsPickup.Clear()
}

// ItemUseSystem применяет предметы: лечение, затем урон, затем оглушение.
type ItemUseSystem struct{}

func (ItemUseSystem) Name() string { return "item_use_system" }

func (s ItemUseSystem) Run(ctx *core.Context) {
	for _, user := range ctx.C.WantsUse.Entities() {
		intent, _ := ctx.C.WantsUse.Get(user)
		item := intent.Item
		if !ctx.World.Alive(item) || ctx.World.PendingDelete(item) {
			continue
		}

		targets := resolveTargets(ctx, user, item, intent.Target)
		itemName := ctx.C.NameOf(item)
		byPlayer := ctx.IsPlayer(user)

		logger.Log.WithFields(logrus.Fields{
			"component": s.Name(),
			"user":      ctx.C.NameOf(user),
			"item":      itemName,
			"targets":   len(targets),
		}).Debug("Item used.")

		if heal, ok := ctx.C.Healing.Get(item); ok {
			for _, t := range targets {
				stats, ok := ctx.C.Stats.Get(t)
				if !ok {
					continue
				}
				stats.Heal(heal.HealAmount)
				if byPlayer {
					ctx.Log.Addf("You drink the %s, healing %d hp.", itemName, heal.HealAmount)
				}
			}
		}

		if dmg, ok := ctx.C.Inflicts.Get(item); ok {
			for _, t := range targets {
				if !ctx.C.Stats.Has(t) {
					continue
				}
				ctx.C.NewDamage(t, dmg.Damage)
				if byPlayer {
					ctx.Log.Addf("You use %s on %s, inflicting %d hp.", itemName, ctx.C.NameOf(t), dmg.Damage)
				}
			}
		}

		if conf, ok := ctx.C.Confusion.Get(item); ok {
			turns := conf.Turns
			for _, t := range targets {
				if !ctx.C.Stats.Has(t) || ctx.World.PendingDelete(t) {
					continue
				}
				ecs.InsertLater(ctx.C.Confusion, t, domain.Confusion{Turns: turns})
				if byPlayer {
					ctx.Log.Addf("You use %s on %s, confusing them.", itemName, ctx.C.NameOf(t))
				}
			}
		}

		// Расходуемый предмет исчезает даже если ни на кого не подействовал
		if ctx.World.HasTag(item, domain.TagConsumable) {
			ctx.World.DeleteLater(item)
		}
	}
	ctx.C.WantsUse.Clear()
}

// resolveTargets: без точки - сам пользователь; с точкой - содержимое клетки
// или всех клеток взрыва, если у предмета есть радиус.
func resolveTargets(ctx *core.Context, user, item ecs.Entity, target *domain.Position) []ecs.Entity {
	if target == nil {
		return []ecs.Entity{user}
	}

	m := ctx.Map
	area, ok := ctx.C.Area.Get(item)
	if !ok {
		return append([]ecs.Entity(nil), m.ContentAt(target.X, target.Y)...)
	}

	var targets []ecs.Entity
	for _, t := range FieldOfView(m, *target, area.Radius) {
		// Внешняя рамка карты не задевается
		if t.X < 1 || t.X >= m.Width-1 || t.Y < 1 || t.Y >= m.Height-1 {
			continue
		}
		targets = append(targets, m.ContentAt(t.X, t.Y)...)
	}
	return targets
}

// ItemDropSystem выкладывает предметы из рюкзака под ноги владельцу.
type ItemDropSystem struct{}

func (ItemDropSystem) Name() string { return "item_drop_system" }

func (ItemDropSystem) Run(ctx *core.Context) {
	for _, e := range ctx.C.WantsDrop.Entities() {
		intent, _ := ctx.C.WantsDrop.Get(e)
		if !ctx.World.Alive(intent.Item) {
			continue
		}

		dropAt := domain.Position{}
		if pos, ok := ctx.C.Position.Get(e); ok {
			dropAt = *pos
		}
		ctx.C.Position.Insert(intent.Item, dropAt)
		ctx.C.InBackpack.Remove(intent.Item)

		if ctx.IsPlayer(e) {
			ctx.Log.Addf("You drop the %s.", ctx.C.NameOf(intent.Item))
		}
	}
	ctx.C.WantsDrop.Clear()
}

// Backpack возвращает предметы владельца в порядке их попадания в рюкзак.
func Backpack(ctx *core.Context, owner ecs.Entity) []ecs.Entity {
	items := make([]ecs.Entity, 0)
	for _, e := range ctx.C.InBackpack.Entities() {
		bp, _ := ctx.C.InBackpack.Get(e)
		if bp.Owner == owner {
			items = append(items, e)
		}
	}
	return items
}
