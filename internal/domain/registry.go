package domain

import "dungeon-crawler/internal/ecs"

// Components хранит типизированные указатели на коллекции компонентов.
// Собирается один раз на мир; указатели валидны всё время жизни мира.
type Components struct {
	Position   *ecs.Store[Position]
	Renderable *ecs.Store[Renderable]
	Name       *ecs.Store[Name]
	Viewshed   *ecs.Store[Viewshed]
	Stats      *ecs.Store[CombatStats]
	Damage     *ecs.Store[SufferDamage]

	// Предметы
	Ranged     *ecs.Store[Ranged]
	Inflicts   *ecs.Store[InflictsDamage]
	Area       *ecs.Store[AreaOfEffect]
	Healing    *ecs.Store[ProvidesHealing]
	Confusion  *ecs.Store[Confusion]
	InBackpack *ecs.Store[InBackpack]

	// Намерения
	WantsMelee  *ecs.Store[WantsToMelee]
	WantsPickup *ecs.Store[WantsToPickupItem]
	WantsUse    *ecs.Store[WantsToUseItem]
	WantsDrop   *ecs.Store[WantsToDropItem]
}

// RegisterComponents регистрирует все коллекции в мире.
func RegisterComponents(w *ecs.World) *Components {
	return &Components{
		Position:   ecs.Register[Position](w),
		Renderable: ecs.Register[Renderable](w),
		Name:       ecs.Register[Name](w),
		Viewshed:   ecs.Register[Viewshed](w),
		Stats:      ecs.Register[CombatStats](w),
		Damage:     ecs.Register[SufferDamage](w),

		Ranged:     ecs.Register[Ranged](w),
		Inflicts:   ecs.Register[InflictsDamage](w),
		Area:       ecs.Register[AreaOfEffect](w),
		Healing:    ecs.Register[ProvidesHealing](w),
		Confusion:  ecs.Register[Confusion](w),
		InBackpack: ecs.Register[InBackpack](w),

		WantsMelee:  ecs.Register[WantsToMelee](w),
		WantsPickup: ecs.Register[WantsToPickupItem](w),
		WantsUse:    ecs.Register[WantsToUseItem](w),
		WantsDrop:   ecs.Register[WantsToDropItem](w),
	}
}

// NameOf возвращает имя сущности или "???".
func (c *Components) NameOf(e ecs.Entity) string {
	if n, ok := c.Name.Get(e); ok {
		return n.Name
	}
	return "???"
}

// NewDamage добавляет урон в список ожидающих для жертвы.
// За ход одна цель может накопить несколько ударов.
func (c *Components) NewDamage(victim ecs.Entity, amount int) {
	if d, ok := c.Damage.Get(victim); ok {
		d.Amount = append(d.Amount, amount)
		return
	}
	c.Damage.Insert(victim, SufferDamage{Amount: []int{amount}})
}
