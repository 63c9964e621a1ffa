package storage

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"dungeon-crawler/internal/domain"
	"dungeon-crawler/internal/ecs"
	"dungeon-crawler/pkg/dungeon"
)

const MagicHeader string = `DCSV` // 4 байта

var (
	// ErrNoSave - файла сохранения нет
	ErrNoSave = errors.New("save file does not exist")
	// ErrCorruptSave - файл не читается как сохранение
	ErrCorruptSave = errors.New("save file is corrupt")
)

// SaveFileHeader - это точное представление заголовка файла в памяти.
// binary.Write умеет писать это целиком, так как тут нет слайсов и строк, только массивы и числа.
type SaveFileHeader struct {
	Magic       [4]byte // 4 байта
	EntityCount uint32  // 4 байта
	PayloadLen  uint32  // 4 байта
}

// SerializationHelper - компонент служебной сущности, которая переносит карту в сохранении.
type SerializationHelper struct {
	Map dungeon.Map `json:"map"`
}

type savedEntity struct {
	ID   ecs.Entity `json:"id"`
	Tags ecs.Tag    `json:"tags"`
}

// saveFile - тело файла (JSON после заголовка)
type saveFile struct {
	Entities   []savedEntity              `json:"entities"`
	Components map[string]json.RawMessage `json:"components"`
	Helper     ecs.Entity                 `json:"helper"`
}

// column - одна коллекция компонентов в схеме сохранения
type column interface {
	key() string
	save(keep func(ecs.Entity) bool) (json.RawMessage, error)
	load(raw json.RawMessage) error
}

type typedColumn[T any] struct {
	name  string
	store *ecs.Store[T]
}

func col[T any](name string, s *ecs.Store[T]) column {
	return typedColumn[T]{name: name, store: s}
}

func (c typedColumn[T]) key() string { return c.name }

func (c typedColumn[T]) save(keep func(ecs.Entity) bool) (json.RawMessage, error) {
	return json.Marshal(c.store.Snapshot(keep))
}

func (c typedColumn[T]) load(raw json.RawMessage) error {
	var entries []ecs.Entry[T]
	if err := json.Unmarshal(raw, &entries); err != nil {
		return err
	}
	return c.store.Load(entries)
}

// schema - фиксированный список сохраняемых коллекций. Маркеры идут вместе с сущностью.
func schema(c *domain.Components, helper *ecs.Store[SerializationHelper]) []column {
	return []column{
		col("position", c.Position),
		col("renderable", c.Renderable),
		col("viewshed", c.Viewshed),
		col("name", c.Name),
		col("combat_stats", c.Stats),
		col("suffer_damage", c.Damage),
		col("wants_to_melee", c.WantsMelee),
		col("ranged", c.Ranged),
		col("inflicts_damage", c.Inflicts),
		col("area_of_effect", c.Area),
		col("confusion", c.Confusion),
		col("provides_healing", c.Healing),
		col("in_backpack", c.InBackpack),
		col("wants_to_pickup_item", c.WantsPickup),
		col("wants_to_use_item", c.WantsUse),
		col("wants_to_drop_item", c.WantsDrop),
		col("serialization_helper", helper),
	}
}

func writeBinary(w io.Writer, entityCount int, payload []byte) error {
	header := SaveFileHeader{
		EntityCount: uint32(entityCount),
		PayloadLen:  uint32(len(payload)),
	}
	copy(header.Magic[:], MagicHeader) // Копируем строку в массив [4]byte

	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("failed to write payload: %w", err)
	}
	return nil
}

func readBinary(r io.Reader) (*saveFile, error) {
	var header SaveFileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("%w: failed to read header: %v", ErrCorruptSave, err)
	}
	if string(header.Magic[:]) != MagicHeader {
		return nil, fmt.Errorf("%w: invalid magic", ErrCorruptSave)
	}

	payload := make([]byte, header.PayloadLen)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, fmt.Errorf("%w: truncated payload: %v", ErrCorruptSave, err)
	}

	var file saveFile
	if err := json.Unmarshal(payload, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSave, err)
	}
	if len(file.Entities) != int(header.EntityCount) {
		return nil, fmt.Errorf("%w: header says %d entities, payload has %d", ErrCorruptSave, header.EntityCount, len(file.Entities))
	}
	return &file, nil
}
