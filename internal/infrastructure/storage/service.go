package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"dungeon-crawler/internal/core"
	"dungeon-crawler/internal/domain"
	"dungeon-crawler/internal/ecs"
	"dungeon-crawler/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Service - сохранение всей популяции сущностей и карты в один файл.
type Service struct {
	Path string
}

func NewService(path string) *Service {
	return &Service{Path: path}
}

func (s *Service) log() *logrus.Entry {
	return logger.Log.WithFields(logrus.Fields{
		"component": "storage",
		"path":      s.Path,
	})
}

// Exists - есть ли файл сохранения
func (s *Service) Exists() bool {
	_, err := os.Stat(s.Path)
	return err == nil
}

// Delete удаляет сохранение. Отсутствие файла - не ошибка.
func (s *Service) Delete() error {
	if err := os.Remove(s.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete save: %w", err)
	}
	return nil
}

// Save пишет все сущности с маркером TagSerializeMe и служебную сущность с картой.
// Служебная сущность удаляется сразу после записи.
func (s *Service) Save(ctx *core.Context) error {
	if ctx.Map == nil {
		return fmt.Errorf("save: no map to save")
	}
	w := ctx.World
	helperStore := ecs.Register[SerializationHelper](w)

	helper := w.Create()
	helperStore.Insert(helper, SerializationHelper{Map: *ctx.Map})
	w.Tag(helper, domain.TagSerializeMe)
	defer w.Delete(helper)

	keep := func(e ecs.Entity) bool {
		return w.HasTag(e, domain.TagSerializeMe)
	}

	file := saveFile{
		Components: make(map[string]json.RawMessage),
		Helper:     helper,
	}
	for _, e := range w.Tagged(domain.TagSerializeMe) {
		file.Entities = append(file.Entities, savedEntity{ID: e, Tags: w.Tags(e)})
	}
	for _, c := range schema(ctx.C, helperStore) {
		raw, err := c.save(keep)
		if err != nil {
			return fmt.Errorf("save %s: %w", c.key(), err)
		}
		file.Components[c.key()] = raw
	}

	payload, err := json.Marshal(&file)
	if err != nil {
		return fmt.Errorf("save: %w", err)
	}

	if err := s.writeFile(len(file.Entities), payload); err != nil {
		return err
	}

	s.log().WithFields(logrus.Fields{
		"entities": len(file.Entities),
		"bytes":    len(payload),
	}).Info("Game saved.")
	return nil
}

// writeFile пишет во временный файл и переименовывает, чтобы не оставить половину сохранения.
func (s *Service) writeFile(entityCount int, payload []byte) error {
	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("save: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".save-*")
	if err != nil {
		return fmt.Errorf("save: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := writeBinary(tmp, entityCount, payload); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.Path); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	return nil
}

// Load очищает мир и восстанавливает его из файла с прежними идентификаторами.
// Индекс содержимого клеток остается пустым.
func (s *Service) Load(ctx *core.Context) error {
	f, err := os.Open(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrNoSave
		}
		return fmt.Errorf("load: %w", err)
	}
	defer f.Close()

	file, err := readBinary(f)
	if err != nil {
		return err
	}

	w := ctx.World
	w.Reset()
	helperStore := ecs.Register[SerializationHelper](w)

	for _, se := range file.Entities {
		if err := w.Restore(se.ID); err != nil {
			return fmt.Errorf("%w: %v", ErrCorruptSave, err)
		}
		w.SetTags(se.ID, se.Tags)
	}
	for _, c := range schema(ctx.C, helperStore) {
		raw, ok := file.Components[c.key()]
		if !ok {
			continue
		}
		if err := c.load(raw); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrCorruptSave, c.key(), err)
		}
	}

	helper, ok := helperStore.Get(file.Helper)
	if !ok {
		return fmt.Errorf("%w: map helper entity is missing", ErrCorruptSave)
	}
	m := helper.Map
	if err := m.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptSave, err)
	}
	m.ResetContentIndex()
	ctx.Map = &m
	w.Delete(file.Helper)

	players := w.Tagged(domain.TagPlayer)
	if len(players) == 0 {
		return fmt.Errorf("%w: no player entity", ErrCorruptSave)
	}
	ctx.Player = players[0]
	if pos, ok := ctx.C.Position.Get(ctx.Player); ok {
		ctx.PlayerPos = *pos
	}

	s.log().WithFields(logrus.Fields{
		"entities": w.Count(),
		"depth":    m.Depth,
	}).Info("Game loaded.")
	return nil
}
