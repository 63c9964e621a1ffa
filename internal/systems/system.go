package systems

import "dungeon-crawler/internal/core"

// System - шаг конвейера хода. Системы запускаются строго последовательно.
type System interface {
	Name() string
	Run(ctx *core.Context)
}

// Pipeline возвращает системы хода в фиксированном порядке.
// Индекс пересобирается после ИИ: бой и поиск пути этого хода видят свежие данные следующего.
func Pipeline() []System {
	return []System{
		VisibilitySystem{},
		MonsterAI{},
		MapIndexingSystem{},
		MeleeCombatSystem{},
		DamageSystem{},
		ItemCollectionSystem{},
		ItemUseSystem{},
		ItemDropSystem{},
	}
}
