package systems

import (
	"dungeon-crawler/internal/core"
	"dungeon-crawler/internal/domain"
)

// MapIndexingSystem пересобирает blocked и содержимое клеток. Работает каждый ход.
type MapIndexingSystem struct{}

func (MapIndexingSystem) Name() string { return "map_indexing_system" }

func (MapIndexingSystem) Run(ctx *core.Context) {
	m := ctx.Map
	m.PopulateBlocked()
	m.ClearContentIndex()

	for _, e := range ctx.C.Position.Entities() {
		pos, _ := ctx.C.Position.Get(e)
		if !m.InBounds(pos.X, pos.Y) {
			continue
		}
		idx := m.Idx(pos.X, pos.Y)
		if ctx.World.HasTag(e, domain.TagBlocksTile) {
			m.Blocked[idx] = true
		}
		m.PushContent(idx, e)
	}
}
