package ecs

// Queryable - то, по чему можно строить соединение коллекций.
type Queryable interface {
	Has(e Entity) bool
	Entities() []Entity
}

// Query собирает соединение нескольких коллекций и маркеров.
//
//	for _, e := range w.Query().With(c.Viewshed).With(c.Position).WithTag(TagMonster).Execute() { ... }
//
// Порядок результата - порядок вставки в первую коллекцию из With.
type Query struct {
	world   *World
	stores  []Queryable
	tags    Tag
	without Tag
}

// Query создает новый запрос.
func (w *World) Query() *Query {
	return &Query{world: w, stores: make([]Queryable, 0, 4)}
}

// With добавляет коллекцию в соединение.
func (q *Query) With(s Queryable) *Query {
	q.stores = append(q.stores, s)
	return q
}

// WithTag требует наличие маркера.
func (q *Query) WithTag(t Tag) *Query {
	q.tags |= t
	return q
}

// WithoutTag исключает сущности с маркером.
func (q *Query) WithoutTag(t Tag) *Query {
	q.without |= t
	return q
}

// Execute выполняет запрос. Возвращает копию, её можно обходить, меняя мир.
func (q *Query) Execute() []Entity {
	var candidates []Entity
	if len(q.stores) == 0 {
		candidates = q.world.Entities()
	} else {
		candidates = q.stores[0].Entities()
	}

	result := candidates[:0]
	for _, e := range candidates {
		if !q.world.Alive(e) {
			continue
		}
		mask := q.world.tags[e.Index()]
		if !mask.Has(q.tags) || mask&q.without != 0 {
			continue
		}
		matched := true
		for _, s := range q.stores[min(1, len(q.stores)):] {
			if !s.Has(e) {
				matched = false
				break
			}
		}
		if matched {
			result = append(result, e)
		}
	}
	return result
}
