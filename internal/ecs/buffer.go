package ecs

// CommandBuffer копит структурные изменения, сделанные системами во время хода.
// Применяется один раз в точке фиксации (World.Commit) после всего конвейера,
// чтобы ни одна система не инвалидировала чужой обход.
type CommandBuffer struct {
	ops     []func(w *World)
	deleted map[Entity]struct{}
}

func (b *CommandBuffer) reset() {
	b.ops = nil
	b.deleted = nil
}

// Spawn откладывает создание сущности; build вызывается в момент фиксации.
func (w *World) Spawn(build func(w *World, e Entity)) {
	w.buffer.ops = append(w.buffer.ops, func(w *World) {
		build(w, w.Create())
	})
}

// DeleteLater откладывает удаление сущности до фиксации.
func (w *World) DeleteLater(e Entity) {
	if w.buffer.deleted == nil {
		w.buffer.deleted = make(map[Entity]struct{})
	}
	if _, dup := w.buffer.deleted[e]; dup {
		return
	}
	w.buffer.deleted[e] = struct{}{}
	w.buffer.ops = append(w.buffer.ops, func(w *World) {
		w.Delete(e)
	})
}

// PendingDelete сообщает, что сущность уже запланирована к удалению в этом ходу.
// Системы не должны действовать от имени таких сущностей.
func (w *World) PendingDelete(e Entity) bool {
	_, ok := w.buffer.deleted[e]
	return ok
}

// InsertLater откладывает вставку компонента до фиксации.
// Вставка в сущность, удалённую раньше в этом же буфере, паникует в Commit.
func InsertLater[T any](s *Store[T], e Entity, v T) {
	w := s.world
	w.buffer.ops = append(w.buffer.ops, func(*World) {
		s.Insert(e, v)
	})
}

// Pending - количество неприменённых операций.
func (w *World) Pending() int {
	return len(w.buffer.ops)
}

// Commit применяет отложенные операции в порядке их добавления.
func (w *World) Commit() {
	// Операции могут порождать новые (Spawn внутри Spawn), поэтому крутим до пустого буфера.
	for len(w.buffer.ops) > 0 {
		ops := w.buffer.ops
		w.buffer.ops = nil
		for _, op := range ops {
			op(w)
		}
	}
	w.buffer.deleted = nil
}
