package dungeon

import (
	"math/rand"
	"testing"

	"dungeon-crawler/internal/domain"
	"dungeon-crawler/internal/ecs"
)

func TestRandomTable_Roll(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	empty := NewRandomTable()
	if _, ok := empty.Roll(rng); ok {
		t.Error("empty table must not roll")
	}

	single := NewRandomTable().Add(SpawnOrc, 5).Add(SpawnGoblin, 0)
	for i := 0; i < 20; i++ {
		if k, ok := single.Roll(rng); !ok || k != SpawnOrc {
			t.Fatalf("expected orc, got %v %v", k, ok)
		}
	}

	// Распределение пропорционально весам
	table := NewRandomTable().Add(SpawnGoblin, 3).Add(SpawnHealthPotion, 1)
	counts := map[SpawnKind]int{}
	for i := 0; i < 4000; i++ {
		k, _ := table.Roll(rng)
		counts[k]++
	}
	if counts[SpawnGoblin] < 2700 || counts[SpawnGoblin] > 3300 {
		t.Errorf("goblin share off: %v", counts)
	}
}

func TestCatalog_RoomTableWeights(t *testing.T) {
	c := DefaultCatalog()

	tests := []struct {
		depth int
		total int
	}{
		// goblin 10+d, orc 1+d, potion 7, fireball 2, confusion 2, missile 4
		{1, 11 + 2 + 7 + 2 + 2 + 4},
		{3, 13 + 4 + 7 + 2 + 2 + 4},
	}
	for _, tt := range tests {
		if got := c.RoomTable(tt.depth).TotalWeight(); got != tt.total {
			t.Errorf("depth %d: total weight %d, want %d", tt.depth, got, tt.total)
		}
	}
}

func TestCatalog_RollRoomDistinctInterior(t *testing.T) {
	c := DefaultCatalog()
	room := NewRect(10, 10, 6, 6)
	rng := rand.New(rand.NewSource(5))

	for i := 0; i < 50; i++ {
		points := c.RollRoom(room, 2, 4, rng)
		if len(points) < 3 || len(points) > 6 {
			t.Fatalf("expected 3..6 spawns, got %d", len(points))
		}
		seen := map[[2]int]bool{}
		for _, p := range points {
			if !room.Contains(p.X, p.Y) {
				t.Errorf("spawn %d,%d outside room interior", p.X, p.Y)
			}
			if seen[[2]int{p.X, p.Y}] {
				t.Errorf("duplicate spawn point %d,%d", p.X, p.Y)
			}
			seen[[2]int{p.X, p.Y}] = true
		}
	}
}

func TestCatalog_Spawn(t *testing.T) {
	c := DefaultCatalog()
	w := ecs.NewWorld()
	comp := domain.RegisterComponents(w)

	orc, ok := c.Spawn(w, comp, SpawnOrc, 3, 4)
	if !ok {
		t.Fatal("orc template missing")
	}
	if !w.HasTag(orc, domain.TagMonster|domain.TagBlocksTile|domain.TagSerializeMe) {
		t.Error("orc must be a blocking monster")
	}
	if s, _ := comp.Stats.Get(orc); s == nil || s.Power != 4 || s.HP != 16 {
		t.Errorf("orc stats wrong: %+v", s)
	}

	fireball, _ := c.Spawn(w, comp, SpawnFireballScroll, 5, 5)
	if !w.HasTag(fireball, domain.TagItem|domain.TagConsumable) {
		t.Error("scroll must be a consumable item")
	}
	if a, ok := comp.Area.Get(fireball); !ok || a.Radius != 3 {
		t.Error("fireball must have radius 3")
	}
	if d, ok := comp.Inflicts.Get(fireball); !ok || d.Damage != 20 {
		t.Error("fireball must deal 20")
	}

	player := c.CreatePlayer(w, comp, 1, 1)
	if s, _ := comp.Stats.Get(player); s == nil || s.MaxHP != 30 || s.Defense != 2 || s.Power != 5 {
		t.Errorf("player stats wrong: %+v", s)
	}
	if w.HasTag(player, domain.TagBlocksTile) {
		t.Error("player does not block tiles")
	}
}
