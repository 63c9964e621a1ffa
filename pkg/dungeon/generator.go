package dungeon

import "math/rand"

// Константы генерации
const (
	MapWidth  = 80
	MapHeight = 43
	MaxRooms  = 30
	MinSize   = 6
	MaxSize   = 10
)

// Params - размеры карты и комнат
type Params struct {
	Width    int
	Height   int
	MaxRooms int
	MinSize  int
	MaxSize  int
}

func DefaultParams() Params {
	return Params{
		Width:    MapWidth,
		Height:   MapHeight,
		MaxRooms: MaxRooms,
		MinSize:  MinSize,
		MaxSize:  MaxSize,
	}
}

// Generate создает новый уровень с параметрами по умолчанию.
// Результат зависит только от последовательности rng.
func Generate(depth int, rng *rand.Rand) *Map {
	return GenerateWith(DefaultParams(), depth, rng)
}

// GenerateWith - то же, но с заданными размерами
func GenerateWith(p Params, depth int, rng *rand.Rand) *Map {
	return NewLevel(depth, rng).
		WithParams(p).
		WithRooms(p.MaxRooms).
		PlaceDownStairs().
		Build()
}

// StartPos возвращает стартовую позицию (центр первой комнаты)
func (m *Map) StartPos() (int, int) {
	if len(m.Rooms) > 0 {
		return m.Rooms[0].Center()
	}
	return m.Width / 2, m.Height / 2
}
