package engine

import (
	"sort"
	"strconv"

	"dungeon-crawler/internal/core"
	"dungeon-crawler/internal/systems"
	"dungeon-crawler/pkg/api"
)

// logWindow - сколько последних строк журнала уходит клиенту
const logWindow = 5

// RenderView собирает снимок для внешнего рендерера.
// Сущности отдаются только на видимых клетках, отсортированные так,
// что меньший RenderOrder рисуется последним (поверх).
func (g *Game) RenderView() api.ServerResponse {
	ctx := g.ctx
	resp := api.ServerResponse{
		Type:  "UPDATE",
		State: ctx.RunState.Kind.String(),
		Logs:  logEntries(ctx.Log),
	}

	switch ctx.RunState.Kind {
	case core.StateMainMenu:
		resp.Menu = g.mainMenuView()
	case core.StateShowInventory:
		resp.Menu = g.itemMenuView("Inventory")
	case core.StateShowDropItem:
		resp.Menu = g.itemMenuView("Drop Which Item?")
	case core.StateShowTargeting:
		for _, p := range systems.TargetCells(ctx, ctx.RunState.Range) {
			resp.Targets = append(resp.Targets, api.PointView{X: p.X, Y: p.Y})
		}
	}

	m := ctx.Map
	if m == nil {
		return resp
	}

	resp.Depth = m.Depth
	resp.Grid = &api.GridMeta{Width: m.Width, Height: m.Height}
	for idx, tile := range m.Tiles {
		if !m.RevealedTiles[idx] {
			continue
		}
		x, y := m.XY(idx)
		resp.Map = append(resp.Map, api.TileView{
			X:          x,
			Y:          y,
			Kind:       tile.String(),
			IsVisible:  m.VisibleTiles[idx],
			IsExplored: true,
		})
	}

	for _, e := range ctx.World.Query().With(ctx.C.Position).With(ctx.C.Renderable).Execute() {
		pos, _ := ctx.C.Position.Get(e)
		if !m.InBounds(pos.X, pos.Y) || !m.VisibleTiles[m.Idx(pos.X, pos.Y)] {
			continue
		}
		r, _ := ctx.C.Renderable.Get(e)
		resp.Entities = append(resp.Entities, api.EntityView{
			ID:          e.String(),
			Name:        ctx.C.NameOf(e),
			X:           pos.X,
			Y:           pos.Y,
			Glyph:       string(r.Glyph),
			FG:          r.FG,
			BG:          r.BG,
			RenderOrder: r.RenderOrder,
		})
	}
	sort.SliceStable(resp.Entities, func(i, j int) bool {
		return resp.Entities[i].RenderOrder > resp.Entities[j].RenderOrder
	})

	if stats, ok := ctx.PlayerStats(); ok {
		resp.Player = &api.StatsView{
			HP:      stats.HP,
			MaxHP:   stats.MaxHP,
			Defense: stats.Defense,
			Power:   stats.Power,
			IsDead:  stats.IsDead(),
		}
	}
	return resp
}

func (g *Game) mainMenuView() *api.MenuView {
	view := &api.MenuView{Title: "Main Menu"}
	for i, opt := range g.mainMenuOptions() {
		view.Options = append(view.Options, opt.String())
		if opt == g.ctx.RunState.Selection {
			view.Selected = i
		}
	}
	return view
}

func (g *Game) itemMenuView(title string) *api.MenuView {
	view := &api.MenuView{Title: title, Options: []string{}}
	for _, item := range systems.Backpack(g.ctx, g.ctx.Player) {
		view.Options = append(view.Options, g.ctx.C.NameOf(item))
	}
	return view
}

func logEntries(l *core.GameLog) []api.LogEntry {
	recent := l.Recent(logWindow)
	first := len(l.Entries) - len(recent)
	entries := make([]api.LogEntry, len(recent))
	for i, text := range recent {
		entries[i] = api.LogEntry{ID: strconv.Itoa(first + i), Text: text}
	}
	return entries
}
