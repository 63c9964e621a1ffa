package ecs

import "fmt"

// Entity - 64-битный идентификатор сущности.
//
// Формат битов (от старших к младшим):
//
//	[ Generation (32) | Index (32) ]
//
// Index - слот в арене мира, Generation - версия слота. После удаления
// сущности поколение слота увеличивается, и все старые ссылки на этот
// слот становятся невалидными (World.Alive вернёт false).
type Entity uint64

// NilEntity - нулевая ссылка. Поколения живых слотов начинаются с 1,
// поэтому NilEntity никогда не бывает живой.
const NilEntity Entity = 0

const (
	bitsIndex = 32
	maskIndex = (1 << bitsIndex) - 1
)

func pack(index, gen uint32) Entity {
	return Entity(uint64(gen)<<bitsIndex | uint64(index))
}

// Index возвращает номер слота в арене.
func (e Entity) Index() uint32 {
	return uint32(uint64(e) & maskIndex)
}

// Generation возвращает поколение слота на момент выдачи ссылки.
func (e Entity) Generation() uint32 {
	return uint32(uint64(e) >> bitsIndex)
}

// IsNil проверяет, что ссылка пустая.
func (e Entity) IsNil() bool {
	return e == NilEntity
}

// String для логов: [idx:gen]
func (e Entity) String() string {
	return fmt.Sprintf("[%d:%d]", e.Index(), e.Generation())
}
