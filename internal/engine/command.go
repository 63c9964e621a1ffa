package engine

import (
	"encoding/json"
	"fmt"
	"strings"

	"dungeon-crawler/internal/domain"
	"dungeon-crawler/pkg/api"
)

// CommandKind - Внутренний числовой идентификатор символической команды
type CommandKind uint8

const (
	CmdNone CommandKind = iota
	CmdMove
	CmdPickup
	CmdInventory
	CmdDropMenu
	CmdDescend
	CmdWait
	CmdSaveExit
	CmdMenuUp
	CmdMenuDown
	CmdMenuSelect
	CmdEscape
	CmdSelectItem
	CmdTarget
	CmdTargetCancel
)

// Маппинг для конвертации JSON -> Engine
var commandStringToKind = map[string]CommandKind{
	"NONE":          CmdNone,
	"MOVE":          CmdMove,
	"PICKUP":        CmdPickup,
	"INVENTORY":     CmdInventory,
	"DROP_MENU":     CmdDropMenu,
	"DESCEND":       CmdDescend,
	"WAIT":          CmdWait,
	"SAVE":          CmdSaveExit,
	"MENU_UP":       CmdMenuUp,
	"MENU_DOWN":     CmdMenuDown,
	"MENU_SELECT":   CmdMenuSelect,
	"ESCAPE":        CmdEscape,
	"SELECT_ITEM":   CmdSelectItem,
	"TARGET":        CmdTarget,
	"TARGET_CANCEL": CmdTargetCancel,
}

// Маппинг для логов Engine -> String
var commandKindToString = func() map[CommandKind]string {
	m := make(map[CommandKind]string, len(commandStringToKind))
	for s, k := range commandStringToKind {
		m[k] = s
	}
	return m
}()

// ParseCommand конвертирует строку из JSON в CommandKind.
// Неизвестная строка дает CmdNone и false.
func ParseCommand(s string) (CommandKind, bool) {
	// Делаем нечувствительным к регистру для надежности
	k, ok := commandStringToKind[strings.ToUpper(s)]
	return k, ok
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (k CommandKind) String() string {
	if val, ok := commandKindToString[k]; ok {
		return val
	}
	return "UNKNOWN"
}

// Command - одна символическая команда за тик
type Command struct {
	Kind  CommandKind
	Dx    int
	Dy    int
	Index int
	Point domain.Position
}

func Move(dx, dy int) Command {
	return Command{Kind: CmdMove, Dx: dx, Dy: dy}
}

func SelectItem(index int) Command {
	return Command{Kind: CmdSelectItem, Index: index}
}

func Target(x, y int) Command {
	return Command{Kind: CmdTarget, Point: domain.Position{X: x, Y: y}}
}

func Simple(kind CommandKind) Command {
	return Command{Kind: kind}
}

// DecodeCommand переводит сообщение клиента в команду, проверяя payload.
func DecodeCommand(msg api.ClientCommand) (Command, error) {
	if err := msg.Validate(); err != nil {
		return Command{}, err
	}
	kind, ok := ParseCommand(msg.Action)
	if !ok {
		return Command{}, fmt.Errorf("unknown action %q", msg.Action)
	}

	switch kind {
	case CmdMove:
		var p api.DirectionPayload
		if err := decodePayload(msg.Payload, &p); err != nil {
			return Command{}, err
		}
		return Move(p.Dx, p.Dy), nil
	case CmdSelectItem:
		var p api.ItemPayload
		if err := decodePayload(msg.Payload, &p); err != nil {
			return Command{}, err
		}
		return SelectItem(p.Index), nil
	case CmdTarget:
		var p api.PositionPayload
		if err := decodePayload(msg.Payload, &p); err != nil {
			return Command{}, err
		}
		return Target(p.X, p.Y), nil
	}
	return Simple(kind), nil
}

func decodePayload(raw json.RawMessage, v api.Validator) error {
	if len(raw) == 0 {
		return fmt.Errorf("payload is required")
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("bad payload: %w", err)
	}
	return v.Validate()
}
