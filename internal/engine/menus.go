package engine

import (
	"fmt"

	"dungeon-crawler/internal/core"
	"dungeon-crawler/internal/domain"
	"dungeon-crawler/internal/ecs"
	"dungeon-crawler/internal/systems"

	"github.com/sirupsen/logrus"
)

// menuResult - ответ меню предметов или выбора цели
type menuResult uint8

const (
	menuNoResponse menuResult = iota
	menuCancel
	menuSelected
)

func (g *Game) saveExists() bool {
	return g.store != nil && g.store.Exists()
}

// mainMenuOptions - пункты главного меню; загрузка видна только при наличии сохранения.
func (g *Game) mainMenuOptions() []core.MainMenuSelection {
	if g.saveExists() {
		return []core.MainMenuSelection{core.MenuNewGame, core.MenuLoadGame, core.MenuQuit}
	}
	return []core.MainMenuSelection{core.MenuNewGame, core.MenuQuit}
}

func (g *Game) mainMenu(cmd Command) (core.RunState, TickResult, error) {
	sel := g.ctx.RunState.Selection
	saveExists := g.saveExists()

	switch cmd.Kind {
	case CmdEscape:
		return core.MainMenu(core.MenuQuit), TickResult{}, nil

	case CmdMenuUp:
		switch sel {
		case core.MenuNewGame:
			sel = core.MenuQuit
		case core.MenuLoadGame:
			sel = core.MenuNewGame
		case core.MenuQuit:
			sel = core.MenuLoadGame
		}
		if sel == core.MenuLoadGame && !saveExists {
			sel = core.MenuNewGame
		}

	case CmdMenuDown:
		switch sel {
		case core.MenuNewGame:
			sel = core.MenuLoadGame
		case core.MenuLoadGame:
			sel = core.MenuQuit
		case core.MenuQuit:
			sel = core.MenuNewGame
		}
		if sel == core.MenuLoadGame && !saveExists {
			sel = core.MenuQuit
		}

	case CmdMenuSelect:
		switch sel {
		case core.MenuNewGame:
			g.startNewGame()
			return core.Is(core.StatePreRun), TickResult{}, nil
		case core.MenuLoadGame:
			if err := g.loadGame(); err != nil {
				return core.MainMenu(core.MenuNewGame), TickResult{}, err
			}
			return core.Is(core.StateAwaitingInput), TickResult{}, nil
		case core.MenuQuit:
			g.log.Info("Player quit.")
			return core.MainMenu(core.MenuQuit), TickResult{Quit: true}, nil
		}
	}

	return core.MainMenu(sel), TickResult{}, nil
}

// playerInput превращает команду в действие игрока.
// Любое действие, кроме открытия меню и сохранения, тратит ход.
func (g *Game) playerInput(cmd Command) core.RunState {
	ctx := g.ctx

	switch cmd.Kind {
	case CmdMove:
		systems.TryMovePlayer(ctx, cmd.Dx, cmd.Dy)
	case CmdPickup:
		systems.GetItem(ctx)
	case CmdInventory:
		return core.Is(core.StateShowInventory)
	case CmdDropMenu:
		return core.Is(core.StateShowDropItem)
	case CmdDescend:
		if systems.TryNextLevel(ctx) {
			return core.Is(core.StateNextLevel)
		}
	case CmdWait:
		systems.SkipTurn(ctx)
	case CmdSaveExit:
		return core.Is(core.StateSaveGame)
	default:
		return core.Is(core.StateAwaitingInput)
	}
	return core.Is(core.StatePlayerTurn)
}

// itemMenu - выбор предмета из рюкзака игрока по номеру
func (g *Game) itemMenu(cmd Command) (menuResult, ecs.Entity) {
	switch cmd.Kind {
	case CmdEscape:
		return menuCancel, ecs.NilEntity
	case CmdSelectItem:
		items := systems.Backpack(g.ctx, g.ctx.Player)
		if cmd.Index >= 0 && cmd.Index < len(items) {
			return menuSelected, items[cmd.Index]
		}
	}
	return menuNoResponse, ecs.NilEntity
}

func (g *Game) inventoryMenu(cmd Command) core.RunState {
	ctx := g.ctx
	res, item := g.itemMenu(cmd)
	switch res {
	case menuCancel:
		return core.Is(core.StateAwaitingInput)
	case menuSelected:
		if r, ok := ctx.C.Ranged.Get(item); ok {
			return core.ShowTargeting(r.Range, item)
		}
		ctx.C.WantsUse.Insert(ctx.Player, domain.WantsToUseItem{Item: item})
		return core.Is(core.StatePlayerTurn)
	}
	return core.Is(core.StateShowInventory)
}

func (g *Game) dropMenu(cmd Command) core.RunState {
	ctx := g.ctx
	res, item := g.itemMenu(cmd)
	switch res {
	case menuCancel:
		return core.Is(core.StateAwaitingInput)
	case menuSelected:
		ctx.C.WantsDrop.Insert(ctx.Player, domain.WantsToDropItem{Item: item})
		return core.Is(core.StatePlayerTurn)
	}
	return core.Is(core.StateShowDropItem)
}

// targetingMenu - выбор клетки для предмета с дальностью. Невалидная клетка отменяет выбор.
func (g *Game) targetingMenu(cmd Command, state core.RunState) core.RunState {
	ctx := g.ctx
	switch cmd.Kind {
	case CmdEscape, CmdTargetCancel:
		return core.Is(core.StateAwaitingInput)
	case CmdTarget:
		if !systems.IsValidTarget(ctx, state.Range, cmd.Point) {
			g.log.WithFields(logrus.Fields{
				"x":     cmd.Point.X,
				"y":     cmd.Point.Y,
				"range": state.Range,
			}).Warn("Target out of range, cancelled.")
			return core.Is(core.StateAwaitingInput)
		}
		target := cmd.Point
		ctx.C.WantsUse.Insert(ctx.Player, domain.WantsToUseItem{Item: state.Item, Target: &target})
		return core.Is(core.StatePlayerTurn)
	}
	return state
}

func (g *Game) loadGame() error {
	if g.store == nil {
		return fmt.Errorf("loading is disabled")
	}

	g.wipe()
	if err := g.store.Load(g.ctx); err != nil {
		g.wipe()
		g.log.WithError(err).Error("Load failed.")
		g.ctx.Log.Add("Failed to load the saved game.")
		return fmt.Errorf("load game: %w", err)
	}

	// Сохранение одноразовое
	if err := g.store.Delete(); err != nil {
		g.log.WithError(err).Warn("Could not delete the save after loading.")
	}

	// Индекс содержимого не сохраняется
	systems.MapIndexingSystem{}.Run(g.ctx)

	g.log.WithField("depth", g.ctx.Map.Depth).Info("Game loaded.")
	return nil
}
