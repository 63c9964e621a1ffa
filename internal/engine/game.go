package engine

import (
	"fmt"
	"math/rand"

	"dungeon-crawler/internal/config"
	"dungeon-crawler/internal/core"
	"dungeon-crawler/internal/ecs"
	"dungeon-crawler/internal/systems"
	"dungeon-crawler/pkg/dungeon"
	"dungeon-crawler/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Persistence - хранилище одного сохранения
type Persistence interface {
	Save(ctx *core.Context) error
	Load(ctx *core.Context) error
	Exists() bool
	Delete() error
}

// TickResult - итог тика для транспорта
type TickResult struct {
	// Quit - игрок выбрал выход в главном меню
	Quit bool
}

// maxAutoSteps - страховка от зацикливания автоматических фаз
const maxAutoSteps = 16

// Game - одна игровая сессия: контекст симуляции + машина состояний.
type Game struct {
	ctx      *core.Context
	cfg      config.GameConfig
	store    Persistence
	pipeline []systems.System
	log      *logrus.Entry
}

// NewGame создает сессию в главном меню. store может быть nil (без сохранений).
func NewGame(cfg config.GameConfig, store Persistence) *Game {
	seed := cfg.MasterSeed()
	ctx := core.NewContext(rand.New(rand.NewSource(seed)))
	if cfg.MaxSpawns > 0 {
		ctx.MaxSpawns = cfg.MaxSpawns
	}

	g := &Game{
		ctx:      ctx,
		cfg:      cfg,
		store:    store,
		pipeline: systems.Pipeline(),
		log: logger.Log.WithFields(logrus.Fields{
			"component": "game",
			"seed":      seed,
		}),
	}
	g.log.Info("Session created.")
	return g
}

// Context открывает контекст симуляции (для рендера и тестов).
func (g *Game) Context() *core.Context {
	return g.ctx
}

// State - текущая фаза
func (g *Game) State() core.RunState {
	return g.ctx.RunState
}

func (g *Game) params() dungeon.Params {
	p := dungeon.DefaultParams()
	if g.cfg.MapWidth > 0 && g.cfg.MapHeight > 0 {
		p.Width, p.Height = g.cfg.MapWidth, g.cfg.MapHeight
	}
	if g.cfg.MaxRooms > 0 {
		p.MaxRooms = g.cfg.MaxRooms
	}
	if g.cfg.RoomMinSize > 0 && g.cfg.RoomMaxSize >= g.cfg.RoomMinSize {
		p.MinSize, p.MaxSize = g.cfg.RoomMinSize, g.cfg.RoomMaxSize
	}
	return p
}

// needsInput - фаза ждет команду; остальные фазы проходятся автоматически.
func needsInput(s core.RunState) bool {
	switch s.Kind {
	case core.StateMainMenu, core.StateAwaitingInput, core.StateShowInventory,
		core.StateShowDropItem, core.StateShowTargeting:
		return true
	}
	return false
}

// Tick применяет команду и прогоняет автоматические фазы до следующего ввода.
func (g *Game) Tick(cmd Command) (TickResult, error) {
	res, err := g.Step(cmd)
	if res.Quit || err != nil {
		return res, err
	}

	for i := 0; i < maxAutoSteps && !needsInput(g.ctx.RunState); i++ {
		if res, err = g.Step(Simple(CmdNone)); res.Quit || err != nil {
			return res, err
		}
	}
	return res, nil
}

// Step - ровно один переход машины состояний.
func (g *Game) Step(cmd Command) (TickResult, error) {
	ctx := g.ctx
	prev := ctx.RunState
	next := prev
	var result TickResult
	var stepErr error

	switch prev.Kind {
	case core.StateMainMenu:
		next, result, stepErr = g.mainMenu(cmd)

	case core.StatePreRun:
		g.RunSystems()
		next = core.Is(core.StateAwaitingInput)

	case core.StateAwaitingInput:
		next = g.playerInput(cmd)

	case core.StatePlayerTurn:
		g.RunSystems()
		next = core.Is(core.StateMonsterTurn)

	case core.StateMonsterTurn:
		g.RunSystems()
		next = core.Is(core.StateAwaitingInput)

	case core.StateShowInventory:
		next = g.inventoryMenu(cmd)

	case core.StateShowDropItem:
		next = g.dropMenu(cmd)

	case core.StateShowTargeting:
		next = g.targetingMenu(cmd, prev)

	case core.StateSaveGame:
		if err := g.saveGame(); err != nil {
			stepErr = err
			next = core.Is(core.StateAwaitingInput)
		} else {
			next = core.MainMenu(core.MenuLoadGame)
		}

	case core.StateNextLevel:
		g.GoToNextLevel()
		next = core.Is(core.StatePreRun)
	}

	ctx.RunState = next

	// Смерть игрока перекрывает любой переход
	if ctx.Map != nil && systems.DeleteTheDead(ctx) {
		g.gameOver()
	}

	if prev.Kind != ctx.RunState.Kind {
		g.log.WithFields(logrus.Fields{
			"from":    prev.String(),
			"to":      ctx.RunState.String(),
			"command": cmd.Kind.String(),
		}).Debug("State transition.")
	}
	return result, stepErr
}

// RunSystems - один прогон конвейера и фиксация отложенных изменений.
func (g *Game) RunSystems() {
	for _, s := range g.pipeline {
		s.Run(g.ctx)
	}
	g.ctx.World.Commit()
}

// gameOver стирает все сущности и возвращает сессию в главное меню.
func (g *Game) gameOver() {
	g.log.WithField("depth", g.ctx.Map.Depth).Info("Player died, wiping session.")
	g.wipe()
	g.ctx.RunState = core.MainMenu(core.MenuNewGame)
}

func (g *Game) wipe() {
	g.ctx.World.DeleteAll()
	g.ctx.Player = ecs.NilEntity
	g.ctx.Map = nil
}

func (g *Game) saveGame() error {
	if g.store == nil {
		return fmt.Errorf("saving is disabled")
	}
	if err := g.store.Save(g.ctx); err != nil {
		g.log.WithError(err).Error("Save failed.")
		g.ctx.Log.Add("Failed to save the game.")
		return fmt.Errorf("save game: %w", err)
	}
	g.log.Info("Game saved.")
	return nil
}
