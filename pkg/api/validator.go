package api

import "errors"

// Validator - интерфейс, который могут реализовать DTO
type Validator interface {
	Validate() error
}

// Ограничения входящих сообщений
const (
	maxActionLen  = 32
	maxCoordinate = 1 << 12
	maxItemIndex  = 255
)

// Validate проверяет конверт команды; payload проверяется отдельно по типу действия.
func (c ClientCommand) Validate() error {
	if c.Action == "" {
		return errors.New("action is required")
	}
	if len(c.Action) > maxActionLen {
		return errors.New("action name too long")
	}
	return nil
}

func (p DirectionPayload) Validate() error {
	if p.Dx == 0 && p.Dy == 0 {
		return errors.New("movement vector cannot be zero")
	}
	if p.Dx < -1 || p.Dx > 1 || p.Dy < -1 || p.Dy > 1 {
		return errors.New("movement step too large")
	}
	return nil
}

func (p PositionPayload) Validate() error {
	if p.X < 0 || p.Y < 0 {
		return errors.New("target point cannot be negative")
	}
	if p.X >= maxCoordinate || p.Y >= maxCoordinate {
		return errors.New("target point out of range")
	}
	return nil
}

func (p ItemPayload) Validate() error {
	if p.Index < 0 {
		return errors.New("item index cannot be negative")
	}
	if p.Index > maxItemIndex {
		return errors.New("item index too large")
	}
	return nil
}
