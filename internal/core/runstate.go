package core

import (
	"fmt"

	"dungeon-crawler/internal/ecs"
)

// RunStateKind - фаза сессии
type RunStateKind uint8

const (
	StateMainMenu RunStateKind = iota
	StatePreRun
	StateAwaitingInput
	StatePlayerTurn
	StateMonsterTurn
	StateShowInventory
	StateShowDropItem
	StateShowTargeting
	StateSaveGame
	StateNextLevel
)

var runStateNames = map[RunStateKind]string{
	StateMainMenu:      "MAIN_MENU",
	StatePreRun:        "PRE_RUN",
	StateAwaitingInput: "AWAITING_INPUT",
	StatePlayerTurn:    "PLAYER_TURN",
	StateMonsterTurn:   "MONSTER_TURN",
	StateShowInventory: "SHOW_INVENTORY",
	StateShowDropItem:  "SHOW_DROP_ITEM",
	StateShowTargeting: "SHOW_TARGETING",
	StateSaveGame:      "SAVE_GAME",
	StateNextLevel:     "NEXT_LEVEL",
}

func (k RunStateKind) String() string {
	if s, ok := runStateNames[k]; ok {
		return s
	}
	return "UNKNOWN"
}

// MainMenuSelection - пункт главного меню
type MainMenuSelection uint8

const (
	MenuNewGame MainMenuSelection = iota
	MenuLoadGame
	MenuQuit
)

func (s MainMenuSelection) String() string {
	switch s {
	case MenuNewGame:
		return "New Game"
	case MenuLoadGame:
		return "Load Game"
	case MenuQuit:
		return "Quit"
	}
	return "?"
}

// RunState - текущая фаза с данными варианта.
// Selection имеет смысл только для MainMenu, Range и Item - для ShowTargeting.
type RunState struct {
	Kind      RunStateKind
	Selection MainMenuSelection
	Range     int
	Item      ecs.Entity
}

func Is(k RunStateKind) RunState {
	return RunState{Kind: k}
}

func MainMenu(sel MainMenuSelection) RunState {
	return RunState{Kind: StateMainMenu, Selection: sel}
}

func ShowTargeting(rng int, item ecs.Entity) RunState {
	return RunState{Kind: StateShowTargeting, Range: rng, Item: item}
}

func (s RunState) String() string {
	switch s.Kind {
	case StateMainMenu:
		return fmt.Sprintf("%s{%s}", s.Kind, s.Selection)
	case StateShowTargeting:
		return fmt.Sprintf("%s{range:%d item:%s}", s.Kind, s.Range, s.Item)
	}
	return s.Kind.String()
}
