package ecs

import (
	"fmt"
	"reflect"
)

// anyStore - типонезависимые операции над коллекцией компонентов.
// Нужны миру, чтобы чистить все коллекции при удалении сущности.
type anyStore interface {
	Name() string
	Has(e Entity) bool
	Remove(e Entity) bool
	Clear()
	Len() int
}

// World - арена сущностей плюс по одной коллекции на тип компонента.
// Однопоточный: все системы выполняются последовательно.
type World struct {
	generations []uint32
	alive       []bool
	tags        []Tag
	free        []uint32

	stores []anyStore
	byType map[reflect.Type]anyStore

	buffer CommandBuffer
}

// NewWorld создает пустой мир.
func NewWorld() *World {
	return &World{
		byType: make(map[reflect.Type]anyStore),
	}
}

// Register возвращает коллекцию компонентов типа T, создавая её при первом вызове.
// Вызывайте один раз при сборке систем и держите указатель.
func Register[T any](w *World) *Store[T] {
	key := reflect.TypeOf((*T)(nil)).Elem()
	if s, ok := w.byType[key]; ok {
		return s.(*Store[T])
	}
	s := newStore[T](w, key.Name())
	w.byType[key] = s
	w.stores = append(w.stores, s)
	return s
}

// Create немедленно выделяет новую сущность.
// Внутри конвейера систем используйте Spawn (отложенное создание).
func (w *World) Create() Entity {
	if n := len(w.free); n > 0 {
		idx := w.free[n-1]
		w.free = w.free[:n-1]
		w.alive[idx] = true
		w.tags[idx] = 0
		return pack(idx, w.generations[idx])
	}

	idx := uint32(len(w.generations))
	w.generations = append(w.generations, 1)
	w.alive = append(w.alive, true)
	w.tags = append(w.tags, 0)
	return pack(idx, 1)
}

// Restore выделяет сущность с заранее известным идентификатором.
// Используется только при загрузке сохранения в очищенный мир:
// ссылки между компонентами (владелец рюкзака, цель атаки) остаются валидными.
func (w *World) Restore(e Entity) error {
	if e.IsNil() || e.Generation() == 0 {
		return fmt.Errorf("ecs: cannot restore nil entity %s", e)
	}
	idx := e.Index()
	for uint32(len(w.generations)) <= idx {
		w.generations = append(w.generations, 1)
		w.alive = append(w.alive, false)
		w.tags = append(w.tags, 0)
	}
	if w.alive[idx] {
		return fmt.Errorf("ecs: slot of %s is already occupied", e)
	}
	w.generations[idx] = e.Generation()
	w.alive[idx] = true
	w.tags[idx] = 0
	w.rebuildFreeList()
	return nil
}

func (w *World) rebuildFreeList() {
	w.free = w.free[:0]
	for i := len(w.alive) - 1; i >= 0; i-- {
		if !w.alive[i] {
			w.free = append(w.free, uint32(i))
		}
	}
}

// Alive проверяет, что ссылка указывает на живую сущность текущего поколения.
func (w *World) Alive(e Entity) bool {
	idx := e.Index()
	if e.IsNil() || int(idx) >= len(w.alive) {
		return false
	}
	return w.alive[idx] && w.generations[idx] == e.Generation()
}

func (w *World) mustAlive(e Entity, op string) {
	if !w.Alive(e) {
		panic(fmt.Sprintf("ecs: %s on dead entity %s", op, e))
	}
}

// Delete немедленно удаляет сущность и все её компоненты.
// Внутри конвейера систем используйте DeleteLater.
func (w *World) Delete(e Entity) {
	if !w.Alive(e) {
		return
	}
	for _, s := range w.stores {
		s.Remove(e)
	}
	idx := e.Index()
	w.alive[idx] = false
	w.tags[idx] = 0
	w.generations[idx]++
	w.free = append(w.free, idx)
}

// DeleteAll удаляет все сущности. Идентификаторы слотов не переиспользуются
// со старым поколением, поэтому старые ссылки остаются невалидными.
func (w *World) DeleteAll() {
	for _, e := range w.Entities() {
		w.Delete(e)
	}
	w.buffer.reset()
}

// Reset полностью очищает арену (поколения тоже). Нужен только перед Restore.
func (w *World) Reset() {
	for _, s := range w.stores {
		s.Clear()
	}
	w.generations = w.generations[:0]
	w.alive = w.alive[:0]
	w.tags = w.tags[:0]
	w.free = w.free[:0]
	w.buffer.reset()
}

// Entities возвращает все живые сущности в порядке слотов.
func (w *World) Entities() []Entity {
	result := make([]Entity, 0, len(w.alive))
	for i, alive := range w.alive {
		if alive {
			result = append(result, pack(uint32(i), w.generations[i]))
		}
	}
	return result
}

// Count - количество живых сущностей.
func (w *World) Count() int {
	n := 0
	for _, alive := range w.alive {
		if alive {
			n++
		}
	}
	return n
}
