package core

import (
	"math/rand"

	"dungeon-crawler/internal/domain"
	"dungeon-crawler/internal/ecs"
	"dungeon-crawler/pkg/dungeon"
)

// Context - общие ресурсы симуляции, передаются каждой системе явно.
// Системы выполняются строго по очереди, поэтому блокировок нет.
type Context struct {
	World *ecs.World
	C     *domain.Components
	Map   *dungeon.Map

	// Player и его закешированная позиция; обновляются при каждом перемещении
	Player    ecs.Entity
	PlayerPos domain.Position

	Rng      *rand.Rand
	Log      *GameLog
	RunState RunState

	Catalog   *dungeon.Catalog
	MaxSpawns int
}

// NewContext создает пустой мир с зарегистрированными компонентами.
func NewContext(rng *rand.Rand) *Context {
	w := ecs.NewWorld()
	return &Context{
		World:     w,
		C:         domain.RegisterComponents(w),
		Rng:       rng,
		Log:       NewGameLog(),
		RunState:  MainMenu(MenuNewGame),
		Catalog:   dungeon.DefaultCatalog(),
		MaxSpawns: 4,
	}
}

// SetPlayerPos обновляет позицию игрока в компоненте и в кеше.
func (ctx *Context) SetPlayerPos(p domain.Position) {
	ctx.PlayerPos = p
	if pos, ok := ctx.C.Position.Get(ctx.Player); ok {
		*pos = p
	}
}

// PlayerStats возвращает характеристики игрока, если он жив.
func (ctx *Context) PlayerStats() (*domain.CombatStats, bool) {
	return ctx.C.Stats.Get(ctx.Player)
}

// IsPlayer проверяет, что сущность - игрок.
func (ctx *Context) IsPlayer(e ecs.Entity) bool {
	return e == ctx.Player && !e.IsNil()
}
