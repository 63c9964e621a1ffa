package domain

import "dungeon-crawler/internal/ecs"

// --- КОМПОНЕНТЫ ---

// Renderable - Визуализация (рисует внешний рендерер)
type Renderable struct {
	Glyph       rune   `json:"glyph"`
	FG          string `json:"fg"`
	BG          string `json:"bg"`
	RenderOrder int    `json:"renderOrder"` // 0 рисуется поверх всех
}

// Name - Отображаемое имя
type Name struct {
	Name string `json:"name"`
}

// Viewshed - набор видимых тайлов + радиус + флаг пересчета
type Viewshed struct {
	VisibleTiles []Position `json:"visibleTiles"`
	Range        int        `json:"range"`
	Dirty        bool       `json:"dirty"`
}

// NewViewshed создает "грязный" Viewshed, он посчитается на ближайшем ходу.
func NewViewshed(rng int) Viewshed {
	return Viewshed{VisibleTiles: make([]Position, 0), Range: rng, Dirty: true}
}

// CanSee проверяет, есть ли точка в наборе видимых тайлов.
func (v *Viewshed) CanSee(p Position) bool {
	for _, t := range v.VisibleTiles {
		if t == p {
			return true
		}
	}
	return false
}

// CombatStats - Характеристики боя
type CombatStats struct {
	MaxHP   int `json:"maxHp"`
	HP      int `json:"hp"`
	Defense int `json:"defense"`
	Power   int `json:"power"`
}

// SufferDamage - накопленный за ход урон. Суммируется и очищается DamageSystem.
type SufferDamage struct {
	Amount []int `json:"amount"`
}

// --- ПРЕДМЕТЫ ---

// Ranged - предмет требует выбора цели в радиусе
type Ranged struct {
	Range int `json:"range"`
}

// InflictsDamage - предмет наносит урон целям
type InflictsDamage struct {
	Damage int `json:"damage"`
}

// AreaOfEffect - предмет бьет по площади
type AreaOfEffect struct {
	Radius int `json:"radius"`
}

// ProvidesHealing - предмет лечит
type ProvidesHealing struct {
	HealAmount int `json:"healAmount"`
}

// Confusion - на предмете: сколько ходов длится эффект; на монстре: сколько ходов осталось.
type Confusion struct {
	Turns int `json:"turns"`
}

// InBackpack - предмет лежит в рюкзаке владельца
type InBackpack struct {
	Owner ecs.Entity `json:"owner"`
}

// --- НАМЕРЕНИЯ (живут в пределах одного хода) ---

// WantsToMelee - атаковать цель в ближнем бою
type WantsToMelee struct {
	Target ecs.Entity `json:"target"`
}

// WantsToPickupItem - подобрать предмет
type WantsToPickupItem struct {
	CollectedBy ecs.Entity `json:"collectedBy"`
	Item        ecs.Entity `json:"item"`
}

// WantsToUseItem - использовать предмет; Target == nil значит "на себя"
type WantsToUseItem struct {
	Item   ecs.Entity `json:"item"`
	Target *Position  `json:"target,omitempty"`
}

// WantsToDropItem - выбросить предмет
type WantsToDropItem struct {
	Item ecs.Entity `json:"item"`
}
