package systems

import (
	"sort"

	"dungeon-crawler/internal/core"
	"dungeon-crawler/internal/domain"
	"dungeon-crawler/pkg/dungeon"
	"dungeon-crawler/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Мультипликаторы для трансформации координат в 8 октантов
var multipliers = [4][8]int{
	{1, 0, 0, -1, -1, 0, 0, 1},
	{0, 1, -1, 0, 0, -1, 1, 0},
	{0, 1, 1, 0, 0, -1, -1, 0},
	{1, 0, 0, 1, -1, 0, 0, -1},
}

// FieldOfView возвращает видимые из pos клетки в радиусе (recursive shadowcasting).
// Клетки вне карты отбрасываются; порядок - по индексу карты.
func FieldOfView(m *dungeon.Map, pos domain.Position, radius int) []domain.Position {
	if radius <= 0 || !m.InBounds(pos.X, pos.Y) {
		return []domain.Position{}
	}

	visible := make(map[int]bool)

	// Центр всегда виден
	visible[m.Idx(pos.X, pos.Y)] = true

	for i := 0; i < 8; i++ {
		castLight(m, pos.X, pos.Y, 1, 1.0, 0.0, radius,
			multipliers[0][i], multipliers[1][i],
			multipliers[2][i], multipliers[3][i], visible)
	}

	indices := make([]int, 0, len(visible))
	for idx := range visible {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	tiles := make([]domain.Position, len(indices))
	for i, idx := range indices {
		x, y := m.XY(idx)
		tiles[i] = domain.Position{X: x, Y: y}
	}
	return tiles
}

func castLight(m *dungeon.Map, cx, cy, row int, start, end float64, radius, xx, xy, yx, yy int, visible map[int]bool) {
	if start < end {
		return
	}

	radiusSq := float64(radius * radius)

	for j := row; j <= radius; j++ {
		dx, dy := -j-1, -j
		blocked := false
		newStart := start

		for {
			dx++
			if dx > 0 {
				break
			}

			// Расчет наклонов (Slopes)
			lSlope := (float64(dx) - 0.5) / (float64(dy) + 0.5)
			rSlope := (float64(dx) + 0.5) / (float64(dy) - 0.5)

			if start < rSlope {
				continue
			}
			if end > lSlope {
				break
			}

			// Трансформация координат в глобальные
			X := cx + dx*xx + dy*xy
			Y := cy + dx*yx + dy*yy

			if m.InBounds(X, Y) && float64(dx*dx+dy*dy) < radiusSq {
				visible[m.Idx(X, Y)] = true
			}

			// Логика теней
			if blocked {
				if isOpaque(m, X, Y) {
					newStart = rSlope
					continue
				}
				blocked = false
				start = newStart
			} else if isOpaque(m, X, Y) && j < radius {
				blocked = true
				castLight(m, cx, cy, j+1, start, lSlope, radius, xx, xy, yx, yy, visible)
				newStart = rSlope
			}
		}
		if blocked {
			break
		}
	}
}

// isOpaque - за границами карты обзора нет
func isOpaque(m *dungeon.Map, x, y int) bool {
	if !m.InBounds(x, y) {
		return true
	}
	return m.IsOpaque(m.Idx(x, y))
}

// VisibilitySystem пересчитывает "грязные" Viewshed.
// Для игрока дополнительно обновляет карты видимых и открытых клеток.
type VisibilitySystem struct{}

func (VisibilitySystem) Name() string { return "visibility_system" }

func (s VisibilitySystem) Run(ctx *core.Context) {
	m := ctx.Map
	for _, e := range ctx.World.Query().With(ctx.C.Viewshed).With(ctx.C.Position).Execute() {
		vs, _ := ctx.C.Viewshed.Get(e)
		if !vs.Dirty {
			continue
		}
		pos, _ := ctx.C.Position.Get(e)

		vs.VisibleTiles = FieldOfView(m, *pos, vs.Range)
		vs.Dirty = false

		logger.Log.WithFields(logrus.Fields{
			"component":     s.Name(),
			"entity":        e.String(),
			"radius":        vs.Range,
			"visible_tiles": len(vs.VisibleTiles),
		}).Debug("Viewshed recomputed.")

		if !ctx.World.HasTag(e, domain.TagPlayer) {
			continue
		}
		for i := range m.VisibleTiles {
			m.VisibleTiles[i] = false
		}
		for _, t := range vs.VisibleTiles {
			idx := m.Idx(t.X, t.Y)
			m.VisibleTiles[idx] = true
			m.RevealedTiles[idx] = true
		}
	}
}
