package dungeon

import (
	"math/rand"

	"dungeon-crawler/pkg/logger"

	"github.com/sirupsen/logrus"
)

func carveRoom(m *Map, room Rect) {
	for y := room.Y1 + 1; y <= room.Y2; y++ {
		for x := room.X1 + 1; x <= room.X2; x++ {
			m.Tiles[m.Idx(x, y)] = TileFloor
		}
	}
}

func carveHCorridor(m *Map, x1, x2, y int) {
	for x := min(x1, x2); x <= max(x1, x2); x++ {
		if m.InBounds(x, y) {
			m.Tiles[m.Idx(x, y)] = TileFloor
		}
	}
}

func carveVCorridor(m *Map, y1, y2, x int) {
	for y := min(y1, y2); y <= max(y1, y2); y++ {
		if m.InBounds(x, y) {
			m.Tiles[m.Idx(x, y)] = TileFloor
		}
	}
}

// roll - бросок кубика 1..n
func (b *LevelBuilder) roll(n int) int {
	return b.rng.Intn(n) + 1
}

func (b *LevelBuilder) randRange(min, max int) int {
	return b.rng.Intn(max-min+1) + min
}

// LevelBuilder предоставляет fluent API для создания уровней
type LevelBuilder struct {
	depth   int
	params  Params
	gameMap *Map
	rng     *rand.Rand
}

// NewLevel создает новый builder для уровня
func NewLevel(depth int, rng *rand.Rand) *LevelBuilder {
	return &LevelBuilder{
		depth:  depth,
		params: DefaultParams(),
		rng:    rng,
	}
}

// WithParams задает размеры карты и комнат
func (b *LevelBuilder) WithParams(p Params) *LevelBuilder {
	b.params = p
	return b
}

// WithSize устанавливает размер карты
func (b *LevelBuilder) WithSize(width, height int) *LevelBuilder {
	b.params.Width = width
	b.params.Height = height
	return b
}

// WithRooms генерирует комнаты и коридоры.
// Кандидаты, пересекающие уже принятые комнаты, отбрасываются: редкая карта - нормальный исход.
func (b *LevelBuilder) WithRooms(maxRooms int) *LevelBuilder {
	p := b.params
	b.gameMap = NewMap(p.Width, p.Height, b.depth)

	for i := 0; i < maxRooms; i++ {
		w := b.randRange(p.MinSize, p.MaxSize)
		h := b.randRange(p.MinSize, p.MaxSize)
		x := b.roll(p.Width-w-1) - 1
		y := b.roll(p.Height-h-1) - 1

		newRoom := NewRect(x, y, w, h)

		failed := false
		for _, other := range b.gameMap.Rooms {
			if newRoom.Intersects(other) {
				failed = true
				break
			}
		}
		if failed {
			continue
		}

		carveRoom(b.gameMap, newRoom)

		// Соединяем с предыдущей комнатой
		if len(b.gameMap.Rooms) > 0 {
			newX, newY := newRoom.Center()
			prevX, prevY := b.gameMap.Rooms[len(b.gameMap.Rooms)-1].Center()

			if b.rng.Intn(2) == 0 {
				carveHCorridor(b.gameMap, prevX, newX, prevY)
				carveVCorridor(b.gameMap, prevY, newY, newX)
			} else {
				carveHCorridor(b.gameMap, prevX, newX, newY)
				carveVCorridor(b.gameMap, prevY, newY, prevX)
			}
		}
		b.gameMap.Rooms = append(b.gameMap.Rooms, newRoom)
	}

	return b
}

// PlaceDownStairs ставит лестницу вниз в центр последней комнаты
func (b *LevelBuilder) PlaceDownStairs() *LevelBuilder {
	if b.gameMap == nil || len(b.gameMap.Rooms) == 0 {
		return b
	}
	cx, cy := b.gameMap.Rooms[len(b.gameMap.Rooms)-1].Center()
	b.gameMap.Tiles[b.gameMap.Idx(cx, cy)] = TileDownStairs
	return b
}

// Build возвращает готовую карту с заполненным blocked
func (b *LevelBuilder) Build() *Map {
	if b.gameMap == nil {
		b.WithRooms(b.params.MaxRooms)
	}
	b.gameMap.PopulateBlocked()

	logger.Log.WithFields(logrus.Fields{
		"component": "map_generator",
		"depth":     b.depth,
		"rooms":     len(b.gameMap.Rooms),
	}).Debug("Level generated")

	return b.gameMap
}
