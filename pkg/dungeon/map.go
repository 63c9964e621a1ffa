package dungeon

import (
	"fmt"

	"dungeon-crawler/internal/ecs"
)

// TileType - тип клетки карты
type TileType uint8

const (
	TileWall TileType = iota
	TileFloor
	TileDownStairs
)

func (t TileType) String() string {
	switch t {
	case TileWall:
		return "wall"
	case TileFloor:
		return "floor"
	case TileDownStairs:
		return "down_stairs"
	}
	return fmt.Sprintf("tile(%d)", t)
}

// Стоимость шага для поиска пути
const (
	CostOrthogonal = 1.0
	CostDiagonal   = 1.45
)

// Map - сетка уровня. Все массивы индексируются одинаково: Idx(x, y) = y*Width + x.
type Map struct {
	Tiles         []TileType `json:"tiles"`
	Rooms         []Rect     `json:"rooms"`
	Width         int        `json:"width"`
	Height        int        `json:"height"`
	RevealedTiles []bool     `json:"revealedTiles"`
	VisibleTiles  []bool     `json:"visibleTiles"`
	Blocked       []bool     `json:"blocked"`
	Depth         int        `json:"depth"`

	// TileContent пересобирается каждый ход и не сохраняется
	TileContent [][]ecs.Entity `json:"-"`
}

// NewMap создает карту, целиком заполненную стенами.
func NewMap(width, height, depth int) *Map {
	size := width * height
	m := &Map{
		Tiles:         make([]TileType, size),
		Rooms:         make([]Rect, 0),
		Width:         width,
		Height:        height,
		RevealedTiles: make([]bool, size),
		VisibleTiles:  make([]bool, size),
		Blocked:       make([]bool, size),
		Depth:         depth,
	}
	m.ResetContentIndex()
	return m
}

func (m *Map) Idx(x, y int) int {
	return y*m.Width + x
}

// XY обратное преобразование индекса в координаты
func (m *Map) XY(idx int) (int, int) {
	return idx % m.Width, idx / m.Width
}

func (m *Map) InBounds(x, y int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height
}

// Size - количество клеток
func (m *Map) Size() int {
	return m.Width * m.Height
}

// PopulateBlocked пересчитывает blocked только по типу клеток (стены заблокированы).
func (m *Map) PopulateBlocked() {
	for i, t := range m.Tiles {
		m.Blocked[i] = t == TileWall
	}
}

// ResetContentIndex выделяет пустой индекс содержимого (после загрузки он nil).
func (m *Map) ResetContentIndex() {
	m.TileContent = make([][]ecs.Entity, m.Size())
}

// ClearContentIndex очищает содержимое клеток, сохраняя выделенную память.
func (m *Map) ClearContentIndex() {
	if len(m.TileContent) != m.Size() {
		m.ResetContentIndex()
		return
	}
	for i := range m.TileContent {
		m.TileContent[i] = m.TileContent[i][:0]
	}
}

func (m *Map) PushContent(idx int, e ecs.Entity) {
	m.TileContent[idx] = append(m.TileContent[idx], e)
}

// ContentAt возвращает сущности на клетке (nil вне карты).
func (m *Map) ContentAt(x, y int) []ecs.Entity {
	if !m.InBounds(x, y) || len(m.TileContent) != m.Size() {
		return nil
	}
	return m.TileContent[m.Idx(x, y)]
}

// IsOpaque - клетка загораживает обзор
func (m *Map) IsOpaque(idx int) bool {
	return m.Tiles[idx] == TileWall
}

// IsExitValid - можно ли шагнуть на клетку. Внешняя рамка карты всегда стена.
func (m *Map) IsExitValid(x, y int) bool {
	if x < 1 || x > m.Width-1 || y < 1 || y > m.Height-1 {
		return false
	}
	return !m.Blocked[m.Idx(x, y)]
}

// Exit - соседняя клетка и стоимость шага в нее
type Exit struct {
	Idx  int
	Cost float64
}

var exitDirs = []struct {
	dx, dy int
	cost   float64
}{
	{-1, 0, CostOrthogonal},
	{1, 0, CostOrthogonal},
	{0, -1, CostOrthogonal},
	{0, 1, CostOrthogonal},
	{-1, -1, CostDiagonal},
	{1, -1, CostDiagonal},
	{-1, 1, CostDiagonal},
	{1, 1, CostDiagonal},
}

// AvailableExits - проходимые соседи клетки (4 прямых + 4 диагонали).
func (m *Map) AvailableExits(idx int) []Exit {
	x, y := m.XY(idx)
	exits := make([]Exit, 0, len(exitDirs))
	for _, d := range exitDirs {
		if m.IsExitValid(x+d.dx, y+d.dy) {
			exits = append(exits, Exit{Idx: m.Idx(x+d.dx, y+d.dy), Cost: d.cost})
		}
	}
	return exits
}

// PathingDistance - оценка стоимости пути между клетками без учета препятствий.
// Совпадает с реальной стоимостью на пустой карте, поэтому годится как эвристика A*.
func (m *Map) PathingDistance(a, b int) float64 {
	ax, ay := m.XY(a)
	bx, by := m.XY(b)
	dx, dy := abs(ax-bx), abs(ay-by)
	lo, hi := min(dx, dy), max(dx, dy)
	return CostDiagonal*float64(lo) + CostOrthogonal*float64(hi-lo)
}

// Clone делает глубокую копию карты вместе с индексом содержимого.
func (m *Map) Clone() *Map {
	c := &Map{
		Tiles:         append([]TileType(nil), m.Tiles...),
		Rooms:         append([]Rect(nil), m.Rooms...),
		Width:         m.Width,
		Height:        m.Height,
		RevealedTiles: append([]bool(nil), m.RevealedTiles...),
		VisibleTiles:  append([]bool(nil), m.VisibleTiles...),
		Blocked:       append([]bool(nil), m.Blocked...),
		Depth:         m.Depth,
	}
	c.ResetContentIndex()
	for i, content := range m.TileContent {
		if i < len(c.TileContent) {
			c.TileContent[i] = append([]ecs.Entity(nil), content...)
		}
	}
	return c
}

// Validate проверяет согласованность длин массивов (после загрузки).
func (m *Map) Validate() error {
	size := m.Size()
	if m.Width <= 0 || m.Height <= 0 {
		return fmt.Errorf("map has invalid size %dx%d", m.Width, m.Height)
	}
	if len(m.Tiles) != size || len(m.RevealedTiles) != size || len(m.VisibleTiles) != size || len(m.Blocked) != size {
		return fmt.Errorf("map arrays do not match size %d", size)
	}
	return nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
