package engine

import (
	"path/filepath"
	"testing"

	"dungeon-crawler/internal/config"
	"dungeon-crawler/internal/core"
	"dungeon-crawler/internal/domain"
	"dungeon-crawler/internal/infrastructure/storage"
	"dungeon-crawler/internal/systems"
	"dungeon-crawler/pkg/dungeon"
)

func TestMainMenu_Navigation(t *testing.T) {
	tests := []struct {
		name   string
		exists bool
		from   core.MainMenuSelection
		cmd    CommandKind
		want   core.MainMenuSelection
	}{
		{"down skips load without save", false, core.MenuNewGame, CmdMenuDown, core.MenuQuit},
		{"down reaches load with save", true, core.MenuNewGame, CmdMenuDown, core.MenuLoadGame},
		{"down wraps", true, core.MenuQuit, CmdMenuDown, core.MenuNewGame},
		{"up wraps", false, core.MenuNewGame, CmdMenuUp, core.MenuQuit},
		{"up skips load without save", false, core.MenuQuit, CmdMenuUp, core.MenuNewGame},
		{"up reaches load with save", true, core.MenuQuit, CmdMenuUp, core.MenuLoadGame},
		{"escape highlights quit", true, core.MenuNewGame, CmdEscape, core.MenuQuit},
		{"unrelated command keeps selection", false, core.MenuNewGame, CmdWait, core.MenuNewGame},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGame(config.GameConfig{Seed: 1}, &memStore{exists: tt.exists})
			g.Context().RunState = core.MainMenu(tt.from)

			res, err := g.Tick(Simple(tt.cmd))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.Quit {
				t.Fatal("navigation must not quit")
			}
			st := g.State()
			if st.Kind != core.StateMainMenu || st.Selection != tt.want {
				t.Errorf("got %s, want selection %s", st, tt.want)
			}
		})
	}
}

func TestMainMenu_Quit(t *testing.T) {
	g := NewGame(config.GameConfig{Seed: 1}, nil)
	if _, err := g.Tick(Simple(CmdMenuDown)); err != nil {
		t.Fatal(err)
	}
	res, err := g.Tick(Simple(CmdMenuSelect))
	if err != nil {
		t.Fatal(err)
	}
	if !res.Quit {
		t.Error("selecting Quit must report Quit")
	}
}

func TestNewGame_Setup(t *testing.T) {
	g := startedGame(t, nil)
	ctx := g.Context()

	if ctx.Map == nil || ctx.Map.Depth != 1 {
		t.Fatalf("expected a depth 1 map, got %+v", ctx.Map)
	}
	if !ctx.World.Alive(ctx.Player) {
		t.Fatal("player must exist")
	}
	pos, _ := ctx.C.Position.Get(ctx.Player)
	if *pos != ctx.PlayerPos || !ctx.Map.Rooms[0].Contains(pos.X, pos.Y) {
		t.Errorf("player at %+v, cached %+v, first room %+v", *pos, ctx.PlayerPos, ctx.Map.Rooms[0])
	}
	if ctx.Log.Entries[0] != core.WelcomeMessage {
		t.Errorf("first log entry %q", ctx.Log.Entries[0])
	}

	// PreRun уже посчитал видимость
	vs, _ := ctx.C.Viewshed.Get(ctx.Player)
	if vs.Dirty || len(vs.VisibleTiles) == 0 {
		t.Error("player viewshed must be computed before the first input")
	}

	// Первая комната пуста
	for _, e := range ctx.World.Tagged(domain.TagMonster) {
		p, _ := ctx.C.Position.Get(e)
		if ctx.Map.Rooms[0].Contains(p.X, p.Y) {
			t.Errorf("monster %s spawned in the starting room", e)
		}
	}
}

func TestNewGame_DeterministicSeed(t *testing.T) {
	a := startedGame(t, nil).Context()
	b := startedGame(t, nil).Context()

	if a.PlayerPos != b.PlayerPos || a.World.Count() != b.World.Count() {
		t.Errorf("same seed produced different sessions: %+v/%d vs %+v/%d",
			a.PlayerPos, a.World.Count(), b.PlayerPos, b.World.Count())
	}
}

func TestTick_TurnReturnsToInput(t *testing.T) {
	for _, cmd := range []Command{Simple(CmdWait), Move(1, 0), Simple(CmdPickup)} {
		g := startedGame(t, nil)
		if _, err := g.Tick(cmd); err != nil {
			t.Fatalf("%s: %v", cmd.Kind, err)
		}
		if got := g.State().Kind; got != core.StateAwaitingInput {
			t.Errorf("%s: expected AWAITING_INPUT, got %s", cmd.Kind, got)
		}
	}
}

func TestTick_UnknownInputKeepsWaiting(t *testing.T) {
	g := startedGame(t, nil)
	turnLog := len(g.Context().Log.Entries)

	if _, err := g.Tick(Simple(CmdMenuUp)); err != nil {
		t.Fatal(err)
	}
	if got := g.State().Kind; got != core.StateAwaitingInput {
		t.Errorf("expected AWAITING_INPUT, got %s", got)
	}
	if len(g.Context().Log.Entries) != turnLog {
		t.Error("ignored input must not produce log entries")
	}
}

func TestGoToNextLevel(t *testing.T) {
	g := startedGame(t, nil)
	ctx := g.Context()

	potion := giveItem(t, g, dungeon.SpawnHealthPotion)
	stats, _ := ctx.PlayerStats()
	stats.HP = 1

	before := ctx.World.Entities()
	player := ctx.Player
	g.GoToNextLevel()

	if ctx.Map.Depth != 2 {
		t.Errorf("depth %d, want 2", ctx.Map.Depth)
	}
	if ctx.Player != player || !ctx.World.Alive(player) {
		t.Fatal("player must survive the level change")
	}
	if !ctx.World.Alive(potion) {
		t.Error("backpack items must survive the level change")
	}
	for _, e := range before {
		if e != player && e != potion && ctx.World.Alive(e) {
			t.Errorf("entity %s from the previous level is still alive", e)
		}
	}

	stats, _ = ctx.PlayerStats()
	if stats.HP != stats.MaxHP/2 {
		t.Errorf("hp %d, want %d", stats.HP, stats.MaxHP/2)
	}
	pos, _ := ctx.C.Position.Get(player)
	if !ctx.Map.Rooms[0].Contains(pos.X, pos.Y) || *pos != ctx.PlayerPos {
		t.Errorf("player must be moved to the first room, at %+v", *pos)
	}
	if vs, _ := ctx.C.Viewshed.Get(player); !vs.Dirty {
		t.Error("viewshed must be marked dirty")
	}
	if last := ctx.Log.Last(); last != "You descend to the next level, and take a moment to heal." {
		t.Errorf("log %q", last)
	}
}

func TestGoToNextLevel_KeepsHigherHP(t *testing.T) {
	g := startedGame(t, nil)
	stats, _ := g.Context().PlayerStats()
	stats.HP = stats.MaxHP - 1

	g.GoToNextLevel()

	stats, _ = g.Context().PlayerStats()
	if stats.HP != stats.MaxHP-1 {
		t.Errorf("hp %d, want %d", stats.HP, stats.MaxHP-1)
	}
}

func TestDescend_ViaStairs(t *testing.T) {
	g := startedGame(t, nil)
	ctx := g.Context()

	stairs := -1
	for i, tile := range ctx.Map.Tiles {
		if tile == dungeon.TileDownStairs {
			stairs = i
		}
	}
	if stairs < 0 {
		t.Fatal("map has no stairs")
	}
	x, y := ctx.Map.XY(stairs)
	ctx.SetPlayerPos(domain.Position{X: x, Y: y})

	if _, err := g.Tick(Simple(CmdDescend)); err != nil {
		t.Fatal(err)
	}
	if ctx.Map.Depth != 2 {
		t.Errorf("depth %d, want 2", ctx.Map.Depth)
	}
	if got := g.State().Kind; got != core.StateAwaitingInput {
		t.Errorf("expected AWAITING_INPUT, got %s", got)
	}
}

func TestPlayerDeath_ResetsToMainMenu(t *testing.T) {
	g := startedGame(t, nil)
	ctx := g.Context()
	stats, _ := ctx.PlayerStats()
	stats.HP = 0

	// Ожидание лечит, поэтому ход тратится на пустой подбор
	if _, err := g.Tick(Simple(CmdPickup)); err != nil {
		t.Fatal(err)
	}

	st := g.State()
	if st.Kind != core.StateMainMenu || st.Selection != core.MenuNewGame {
		t.Errorf("expected MAIN_MENU{New Game}, got %s", st)
	}
	if ctx.World.Count() != 0 || ctx.Map != nil || !ctx.Player.IsNil() {
		t.Error("session must be wiped after death")
	}

	// Новая игра после смерти снова создает полноценную сессию
	if _, err := g.Tick(Simple(CmdMenuSelect)); err != nil {
		t.Fatal(err)
	}
	if ctx.Map == nil || !ctx.World.Alive(ctx.Player) {
		t.Error("new game after death must build a fresh session")
	}
}

func TestInventory_UseAndDrop(t *testing.T) {
	g := startedGame(t, nil)
	ctx := g.Context()
	potion := giveItem(t, g, dungeon.SpawnHealthPotion)
	stats, _ := ctx.PlayerStats()
	stats.HP = 10

	steps := []struct {
		cmd  Command
		want core.RunStateKind
	}{
		{Simple(CmdInventory), core.StateShowInventory},
		{SelectItem(5), core.StateShowInventory},
		{Simple(CmdEscape), core.StateAwaitingInput},
		{Simple(CmdInventory), core.StateShowInventory},
		{SelectItem(0), core.StateAwaitingInput},
	}
	for i, s := range steps {
		if _, err := g.Tick(s.cmd); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if got := g.State().Kind; got != s.want {
			t.Fatalf("step %d (%s): got %s, want %s", i, s.cmd.Kind, got, s.want)
		}
	}

	if ctx.World.Alive(potion) {
		t.Error("potion must be consumed")
	}
	stats, _ = ctx.PlayerStats()
	if stats.HP < 18 {
		t.Errorf("hp %d, expected at least 18 after healing", stats.HP)
	}

	scroll := giveItem(t, g, dungeon.SpawnConfusionScroll)
	for _, cmd := range []Command{Simple(CmdDropMenu), SelectItem(0)} {
		if _, err := g.Tick(cmd); err != nil {
			t.Fatal(err)
		}
	}
	pos, ok := ctx.C.Position.Get(scroll)
	if !ok || *pos != ctx.PlayerPos || ctx.C.InBackpack.Has(scroll) {
		t.Error("dropped item must lie under the player")
	}
}

func TestTargeting(t *testing.T) {
	t.Run("cancel", func(t *testing.T) {
		g := startedGame(t, nil)
		scroll := giveItem(t, g, dungeon.SpawnConfusionScroll)
		g.Tick(Simple(CmdInventory))
		g.Tick(SelectItem(0))

		st := g.State()
		if st.Kind != core.StateShowTargeting || st.Item != scroll || st.Range != 6 {
			t.Fatalf("expected targeting for the scroll, got %s", st)
		}
		if len(g.RenderView().Targets) == 0 {
			t.Error("targeting view must list cells")
		}

		g.Tick(Simple(CmdTargetCancel))
		if got := g.State().Kind; got != core.StateAwaitingInput {
			t.Errorf("expected AWAITING_INPUT, got %s", got)
		}
		if !g.Context().World.Alive(scroll) {
			t.Error("cancelled scroll must stay in the backpack")
		}
	})

	t.Run("invalid cell cancels", func(t *testing.T) {
		g := startedGame(t, nil)
		scroll := giveItem(t, g, dungeon.SpawnConfusionScroll)
		g.Tick(Simple(CmdInventory))
		g.Tick(SelectItem(0))
		// Дальность свитка 6
		p := g.Context().PlayerPos
		g.Tick(Target(p.X+7, p.Y))

		if got := g.State().Kind; got != core.StateAwaitingInput {
			t.Errorf("expected AWAITING_INPUT, got %s", got)
		}
		if !g.Context().World.Alive(scroll) || g.Context().C.WantsUse.Len() != 0 {
			t.Error("invalid target must not use the scroll")
		}
	})

	t.Run("valid cell uses item", func(t *testing.T) {
		g := startedGame(t, nil)
		ctx := g.Context()
		scroll := giveItem(t, g, dungeon.SpawnConfusionScroll)
		g.Tick(Simple(CmdInventory))
		g.Tick(SelectItem(0))

		cells := systems.TargetCells(ctx, 6)
		if len(cells) == 0 {
			t.Fatal("no cells in range")
		}
		g.Tick(Target(cells[0].X, cells[0].Y))

		if got := g.State().Kind; got != core.StateAwaitingInput {
			t.Errorf("expected AWAITING_INPUT, got %s", got)
		}
		if ctx.World.Alive(scroll) {
			t.Error("scroll must be consumed")
		}
	})
}

func TestSaveAndLoad(t *testing.T) {
	svc := storage.NewService(filepath.Join(t.TempDir(), "savegame.dat"))
	g := startedGame(t, svc)
	ctx := g.Context()
	giveItem(t, g, dungeon.SpawnFireballScroll)

	pos, depth, count := ctx.PlayerPos, ctx.Map.Depth, ctx.World.Count()

	if _, err := g.Tick(Simple(CmdSaveExit)); err != nil {
		t.Fatalf("save: %v", err)
	}
	st := g.State()
	if st.Kind != core.StateMainMenu || st.Selection != core.MenuLoadGame {
		t.Fatalf("expected MAIN_MENU{Load Game} after saving, got %s", st)
	}
	if !svc.Exists() {
		t.Fatal("save file must exist")
	}
	if menu := g.RenderView().Menu; menu == nil || len(menu.Options) != 3 || menu.Selected != 1 {
		t.Errorf("main menu must offer loading: %+v", menu)
	}

	if _, err := g.Tick(Simple(CmdMenuSelect)); err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := g.State().Kind; got != core.StateAwaitingInput {
		t.Fatalf("expected AWAITING_INPUT after loading, got %s", got)
	}
	if ctx.PlayerPos != pos || ctx.Map.Depth != depth || ctx.World.Count() != count {
		t.Errorf("restored %+v/%d/%d, want %+v/%d/%d",
			ctx.PlayerPos, ctx.Map.Depth, ctx.World.Count(), pos, depth, count)
	}
	if len(systems.Backpack(ctx, ctx.Player)) != 1 {
		t.Error("backpack must be restored")
	}
	if svc.Exists() {
		t.Error("save must be deleted after loading")
	}

	found := false
	for _, e := range ctx.Map.ContentAt(pos.X, pos.Y) {
		found = found || e == ctx.Player
	}
	if !found {
		t.Error("occupant index must be rebuilt after loading")
	}
}

func TestSave_Disabled(t *testing.T) {
	g := startedGame(t, nil)
	if _, err := g.Tick(Simple(CmdSaveExit)); err == nil {
		t.Error("saving without storage must fail")
	}
	if got := g.State().Kind; got != core.StateAwaitingInput {
		t.Errorf("failed save must return to play, got %s", got)
	}
}
