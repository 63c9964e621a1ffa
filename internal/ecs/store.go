package ecs

import "fmt"

// Store - плотная коллекция компонентов одного типа.
// Порядок итерации совпадает с порядком вставки; удаление сохраняет порядок.
//
// Указатель, возвращённый Get, валиден до следующей вставки или удаления
// в этой же коллекции.
type Store[T any] struct {
	world  *World
	name   string
	sparse map[uint32]int
	dense  []T
	owners []Entity
}

func newStore[T any](w *World, name string) *Store[T] {
	return &Store[T]{
		world:  w,
		name:   name,
		sparse: make(map[uint32]int),
		dense:  make([]T, 0, 16),
		owners: make([]Entity, 0, 16),
	}
}

// Name - имя типа компонента (для логов и ошибок).
func (s *Store[T]) Name() string {
	return s.name
}

// Insert добавляет или заменяет компонент. Вставка в мёртвую сущность - ошибка программиста.
func (s *Store[T]) Insert(e Entity, v T) {
	if !s.world.Alive(e) {
		panic(fmt.Sprintf("ecs: insert %s on dead entity %s", s.name, e))
	}
	if i, ok := s.sparse[e.Index()]; ok {
		s.dense[i] = v
		s.owners[i] = e
		return
	}
	s.sparse[e.Index()] = len(s.dense)
	s.dense = append(s.dense, v)
	s.owners = append(s.owners, e)
}

// Get возвращает указатель на компонент сущности.
func (s *Store[T]) Get(e Entity) (*T, bool) {
	i, ok := s.sparse[e.Index()]
	if !ok || s.owners[i] != e {
		return nil, false
	}
	return &s.dense[i], true
}

// Has проверяет наличие компонента.
func (s *Store[T]) Has(e Entity) bool {
	i, ok := s.sparse[e.Index()]
	return ok && s.owners[i] == e
}

// Remove удаляет компонент. Возвращает false, если его не было.
func (s *Store[T]) Remove(e Entity) bool {
	i, ok := s.sparse[e.Index()]
	if !ok || s.owners[i] != e {
		return false
	}
	delete(s.sparse, e.Index())

	copy(s.dense[i:], s.dense[i+1:])
	copy(s.owners[i:], s.owners[i+1:])
	var zero T
	s.dense[len(s.dense)-1] = zero
	s.dense = s.dense[:len(s.dense)-1]
	s.owners = s.owners[:len(s.owners)-1]

	for j := i; j < len(s.owners); j++ {
		s.sparse[s.owners[j].Index()] = j
	}
	return true
}

// Entities возвращает копию списка владельцев в порядке вставки.
// Копия позволяет менять коллекцию во время обхода.
func (s *Store[T]) Entities() []Entity {
	result := make([]Entity, len(s.owners))
	copy(result, s.owners)
	return result
}

// Len - количество компонентов.
func (s *Store[T]) Len() int {
	return len(s.dense)
}

// Clear удаляет все компоненты этого типа (например, обработанные намерения).
func (s *Store[T]) Clear() {
	var zero T
	for i := range s.dense {
		s.dense[i] = zero
	}
	s.dense = s.dense[:0]
	s.owners = s.owners[:0]
	s.sparse = make(map[uint32]int)
}

// Entry - пара (владелец, значение) для снимков коллекции.
type Entry[T any] struct {
	Entity Entity `json:"e"`
	Value  T      `json:"v"`
}

// Snapshot копирует компоненты сущностей, прошедших фильтр (nil - все).
func (s *Store[T]) Snapshot(keep func(Entity) bool) []Entry[T] {
	result := make([]Entry[T], 0, len(s.dense))
	for i, e := range s.owners {
		if keep != nil && !keep(e) {
			continue
		}
		result = append(result, Entry[T]{Entity: e, Value: s.dense[i]})
	}
	return result
}

// Load вставляет компоненты из снимка. Сущности уже должны существовать.
func (s *Store[T]) Load(entries []Entry[T]) error {
	for _, entry := range entries {
		if !s.world.Alive(entry.Entity) {
			return fmt.Errorf("ecs: %s entry references unknown entity %s", s.name, entry.Entity)
		}
		s.Insert(entry.Entity, entry.Value)
	}
	return nil
}
