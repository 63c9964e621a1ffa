package dungeon

import (
	"fmt"
	"math/rand"
)

// SpawnKind - вариант содержимого комнаты. Таблица хранит варианты, а не конструкторы.
type SpawnKind uint8

const (
	SpawnGoblin SpawnKind = iota
	SpawnOrc
	SpawnHealthPotion
	SpawnFireballScroll
	SpawnConfusionScroll
	SpawnMagicMissileScroll
)

var spawnKindNames = map[SpawnKind]string{
	SpawnGoblin:             "goblin",
	SpawnOrc:                "orc",
	SpawnHealthPotion:       "health_potion",
	SpawnFireballScroll:     "fireball_scroll",
	SpawnConfusionScroll:    "confusion_scroll",
	SpawnMagicMissileScroll: "magic_missile_scroll",
}

// AllSpawnKinds - варианты в порядке таблицы появления
func AllSpawnKinds() []SpawnKind {
	return []SpawnKind{
		SpawnGoblin,
		SpawnOrc,
		SpawnHealthPotion,
		SpawnFireballScroll,
		SpawnConfusionScroll,
		SpawnMagicMissileScroll,
	}
}

func (k SpawnKind) String() string {
	if s, ok := spawnKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("spawn(%d)", k)
}

type tableEntry struct {
	Kind   SpawnKind
	Weight int
}

// RandomTable - взвешенная таблица вариантов
type RandomTable struct {
	entries     []tableEntry
	totalWeight int
}

func NewRandomTable() *RandomTable {
	return &RandomTable{}
}

// Add добавляет вариант. Неположительный вес игнорируется.
func (t *RandomTable) Add(kind SpawnKind, weight int) *RandomTable {
	if weight <= 0 {
		return t
	}
	t.entries = append(t.entries, tableEntry{Kind: kind, Weight: weight})
	t.totalWeight += weight
	return t
}

// Roll выбирает вариант с вероятностью, пропорциональной весу.
func (t *RandomTable) Roll(rng *rand.Rand) (SpawnKind, bool) {
	if len(t.entries) == 0 {
		return 0, false
	}

	roll := rng.Intn(t.totalWeight) + 1
	for _, e := range t.entries {
		if roll <= e.Weight {
			return e.Kind, true
		}
		roll -= e.Weight
	}
	return 0, false
}

// TotalWeight - сумма весов
func (t *RandomTable) TotalWeight() int {
	return t.totalWeight
}

// RoomTable строит таблицу появления для глубины из весов каталога.
func (c *Catalog) RoomTable(depth int) *RandomTable {
	table := NewRandomTable()
	for _, kind := range AllSpawnKinds() {
		tpl, ok := c.Template(kind)
		if !ok {
			continue
		}
		table.Add(kind, tpl.Spawn.Weight+tpl.Spawn.PerDepth*depth)
	}
	return table
}

// SpawnPoint - что и где появится
type SpawnPoint struct {
	X, Y int
	Kind SpawnKind
}

// RollRoom решает содержимое комнаты: 1d(maxSpawns) + depth различных клеток пола,
// по одному броску таблицы на каждую.
func (c *Catalog) RollRoom(room Rect, depth, maxSpawns int, rng *rand.Rand) []SpawnPoint {
	table := c.RoomTable(depth)
	if table.TotalWeight() == 0 {
		return nil
	}

	amount := depth
	if maxSpawns > 0 {
		amount += rng.Intn(maxSpawns) + 1
	}
	w, h := room.X2-room.X1, room.Y2-room.Y1
	if w <= 0 || h <= 0 {
		return nil
	}
	// Иначе на большой глубине выбор различных клеток не завершится
	amount = min(amount, w*h)

	used := make(map[[2]int]bool, amount)
	points := make([]SpawnPoint, 0, amount)
	for len(points) < amount {
		x := room.X1 + rng.Intn(w) + 1
		y := room.Y1 + rng.Intn(h) + 1
		if used[[2]int{x, y}] {
			continue
		}
		used[[2]int{x, y}] = true

		kind, ok := table.Roll(rng)
		if !ok {
			continue
		}
		points = append(points, SpawnPoint{X: x, Y: y, Kind: kind})
	}
	return points
}
