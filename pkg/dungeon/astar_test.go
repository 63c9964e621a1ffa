package dungeon

import (
	"math"
	"testing"
)

// openMap - пустая комната во всю карту с рамкой из стен
func openMap(w, h int) *Map {
	m := NewMap(w, h, 1)
	carveRoom(m, NewRect(0, 0, w-2, h-2))
	m.PopulateBlocked()
	return m
}

func TestAStar_OpenMapCost(t *testing.T) {
	m := openMap(20, 20)

	tests := []struct {
		from, to [2]int
	}{
		{[2]int{2, 2}, [2]int{10, 5}},
		{[2]int{3, 3}, [2]int{3, 15}},
		{[2]int{1, 1}, [2]int{18, 18}},
		{[2]int{5, 9}, [2]int{6, 8}},
	}

	for _, tt := range tests {
		dx := math.Abs(float64(tt.from[0] - tt.to[0]))
		dy := math.Abs(float64(tt.from[1] - tt.to[1]))
		want := CostDiagonal*math.Min(dx, dy) + (math.Max(dx, dy) - math.Min(dx, dy))

		p := AStar(m, m.Idx(tt.from[0], tt.from[1]), m.Idx(tt.to[0], tt.to[1]))
		if !p.Success {
			t.Fatalf("%v -> %v: no path", tt.from, tt.to)
		}
		if math.Abs(p.Cost-want) > 1e-9 {
			t.Errorf("%v -> %v: cost %.2f, want %.2f", tt.from, tt.to, p.Cost, want)
		}
		if p.Steps[0] != m.Idx(tt.from[0], tt.from[1]) || p.Steps[len(p.Steps)-1] != m.Idx(tt.to[0], tt.to[1]) {
			t.Errorf("%v -> %v: path endpoints wrong: %v", tt.from, tt.to, p.Steps)
		}
		if len(p.Steps)-1 != int(math.Max(dx, dy)) {
			t.Errorf("%v -> %v: %d moves, want %v", tt.from, tt.to, len(p.Steps)-1, math.Max(dx, dy))
		}
	}
}

func TestAStar_Unreachable(t *testing.T) {
	m := openMap(20, 20)

	// Замуровываем клетку (10,10)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx != 0 || dy != 0 {
				m.Blocked[m.Idx(10+dx, 10+dy)] = true
			}
		}
	}

	p := AStar(m, m.Idx(2, 2), m.Idx(10, 10))
	if p.Success {
		t.Errorf("expected no path, got %v", p.Steps)
	}
}

func TestAStar_BlockedTarget(t *testing.T) {
	m := openMap(10, 10)
	m.Blocked[m.Idx(5, 5)] = true

	if p := AStar(m, m.Idx(2, 2), m.Idx(5, 5)); p.Success {
		t.Error("path into a blocked tile must fail")
	}
}

func TestAStar_RoutesAroundWall(t *testing.T) {
	m := openMap(12, 12)
	// Стена x=5 от y=1 до y=9, проход снизу
	for y := 1; y <= 9; y++ {
		m.Blocked[m.Idx(5, y)] = true
	}

	p := AStar(m, m.Idx(2, 2), m.Idx(8, 2))
	if !p.Success {
		t.Fatal("expected a path around the wall")
	}
	for _, idx := range p.Steps {
		if m.Blocked[idx] {
			x, y := m.XY(idx)
			t.Fatalf("path goes through blocked tile %d,%d", x, y)
		}
	}
	if p.Cost <= 6 {
		t.Errorf("detour cost %.2f must exceed straight distance", p.Cost)
	}
}
