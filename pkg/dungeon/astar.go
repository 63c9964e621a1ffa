package dungeon

import "container/heap"

// MaxAStarSteps ограничивает число раскрытых узлов одного поиска
const MaxAStarSteps = 65536

// Path - результат поиска. Steps начинается со стартовой клетки.
type Path struct {
	Success bool
	Steps   []int
	Cost    float64
}

type openNode struct {
	idx   int
	f     float64
	g     float64
	index int
}

// openSet - min-heap по f, при равенстве по g (ближе к цели - раньше)
type openSet []*openNode

func (s openSet) Len() int { return len(s) }

func (s openSet) Less(i, j int) bool {
	if s[i].f == s[j].f {
		return s[i].g > s[j].g
	}
	return s[i].f < s[j].f
}

func (s openSet) Swap(i, j int) {
	s[i], s[j] = s[j], s[i]
	s[i].index = i
	s[j].index = j
}

func (s *openSet) Push(x any) {
	n := x.(*openNode)
	n.index = len(*s)
	*s = append(*s, n)
}

func (s *openSet) Pop() any {
	old := *s
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*s = old[0 : n-1]
	return item
}

// AStar ищет кратчайший путь между клетками по модели стоимости карты.
// Стартовая клетка может быть заблокирована (на ней стоит сам ищущий).
func AStar(m *Map, start, end int) Path {
	if start == end {
		return Path{Success: true, Steps: []int{start}}
	}

	open := &openSet{}
	heap.Init(open)

	gScore := map[int]float64{start: 0}
	cameFrom := make(map[int]int)
	closed := make(map[int]bool)

	heap.Push(open, &openNode{idx: start, f: m.PathingDistance(start, end)})

	steps := 0
	for open.Len() > 0 && steps < MaxAStarSteps {
		steps++
		current := heap.Pop(open).(*openNode)
		if closed[current.idx] {
			continue
		}
		if current.idx == end {
			return Path{Success: true, Steps: reconstruct(cameFrom, start, end), Cost: current.g}
		}
		closed[current.idx] = true

		for _, exit := range m.AvailableExits(current.idx) {
			if closed[exit.Idx] {
				continue
			}
			g := current.g + exit.Cost
			if old, seen := gScore[exit.Idx]; seen && g >= old {
				continue
			}
			gScore[exit.Idx] = g
			cameFrom[exit.Idx] = current.idx
			heap.Push(open, &openNode{idx: exit.Idx, g: g, f: g + m.PathingDistance(exit.Idx, end)})
		}
	}

	return Path{Success: false}
}

func reconstruct(cameFrom map[int]int, start, end int) []int {
	path := []int{end}
	for cur := end; cur != start; {
		cur = cameFrom[cur]
		path = append(path, cur)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
