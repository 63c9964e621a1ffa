package ecs

// Tag - компонент-маркер без данных. Хранится как бит в маске сущности,
// а не как отдельная коллекция.
type Tag uint32

// Has проверяет, что в маске выставлены все биты t.
func (m Tag) Has(t Tag) bool {
	return m&t == t
}

// Tag ставит маркер сущности. Паникует, если сущность мертва.
func (w *World) Tag(e Entity, t Tag) {
	w.mustAlive(e, "tag")
	w.tags[e.Index()] |= t
}

// Untag снимает маркер.
func (w *World) Untag(e Entity, t Tag) {
	if !w.Alive(e) {
		return
	}
	w.tags[e.Index()] &^= t
}

// HasTag проверяет наличие маркера у живой сущности.
func (w *World) HasTag(e Entity, t Tag) bool {
	if !w.Alive(e) {
		return false
	}
	return w.tags[e.Index()].Has(t)
}

// Tags возвращает всю маску сущности (0 для мёртвых).
func (w *World) Tags(e Entity) Tag {
	if !w.Alive(e) {
		return 0
	}
	return w.tags[e.Index()]
}

// SetTags перезаписывает маску целиком (используется при загрузке).
func (w *World) SetTags(e Entity, m Tag) {
	w.mustAlive(e, "set tags")
	w.tags[e.Index()] = m
}

// Tagged возвращает живые сущности с маркером t в порядке слотов.
func (w *World) Tagged(t Tag) []Entity {
	result := make([]Entity, 0)
	for i, alive := range w.alive {
		if alive && w.tags[i].Has(t) {
			result = append(result, pack(uint32(i), w.generations[i]))
		}
	}
	return result
}
