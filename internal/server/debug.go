package server

import (
	"encoding/json"
	"net/http"
	"sort"

	"dungeon-crawler/internal/domain"
	"dungeon-crawler/pkg/utils"
)

// DebugHandler открывает внутреннее состояние сессий
type DebugHandler struct {
	server *Server
}

func NewDebugHandler(s *Server) *DebugHandler {
	return &DebugHandler{server: s}
}

// RegisterRoutes регистрирует debug-эндпоинты
func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/sessions", h.handleListSessions)
	mux.HandleFunc("/debug/entities", h.handleDumpEntities)
}

type sessionSummary struct {
	ID          string `json:"id"`
	State       string `json:"state"`
	Depth       int    `json:"depth"`
	EntityCount int    `json:"entity_count"`
	PlayerHP    int    `json:"player_hp"`
}

// /debug/sessions - активные сессии
func (h *DebugHandler) handleListSessions(w http.ResponseWriter, r *http.Request) {
	h.server.mu.RLock()
	clients := make([]*Client, 0, len(h.server.clients))
	for _, c := range h.server.clients {
		clients = append(clients, c)
	}
	h.server.mu.RUnlock()

	summary := make([]sessionSummary, 0, len(clients))
	for _, c := range clients {
		c.mu.Lock()
		ctx := c.game.Context()
		s := sessionSummary{
			ID:          c.ID,
			State:       ctx.RunState.String(),
			EntityCount: ctx.World.Count(),
		}
		if ctx.Map != nil {
			s.Depth = ctx.Map.Depth
		}
		if stats, ok := ctx.PlayerStats(); ok {
			s.PlayerHP = stats.HP
		}
		c.mu.Unlock()
		summary = append(summary, s)
	}
	sort.Slice(summary, func(i, j int) bool { return summary[i].ID < summary[j].ID })

	writeJSON(w, summary)
}

type entityDump struct {
	ID       string              `json:"id"`
	Name     string              `json:"name"`
	Tags     []string            `json:"tags"`
	Position *domain.Position    `json:"position,omitempty"`
	Stats    *domain.CombatStats `json:"stats,omitempty"`
}

// /debug/entities?session=<id> - все сущности сессии, включая невидимые игроку
func (h *DebugHandler) handleDumpEntities(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("session")
	if !utils.IsSessionID(id) {
		http.Error(w, "Bad session id", http.StatusBadRequest)
		return
	}
	c, ok := h.server.client(id)
	if !ok {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}

	c.mu.Lock()
	ctx := c.game.Context()
	dump := make([]entityDump, 0, ctx.World.Count())
	for _, e := range ctx.World.Entities() {
		d := entityDump{
			ID:   e.String(),
			Name: ctx.C.NameOf(e),
			Tags: domain.TagNames(ctx.World.Tags(e)),
		}
		if pos, ok := ctx.C.Position.Get(e); ok {
			p := *pos
			d.Position = &p
		}
		if stats, ok := ctx.C.Stats.Get(e); ok {
			s := *stats
			d.Stats = &s
		}
		dump = append(dump, d)
	}
	c.mu.Unlock()

	writeJSON(w, dump)
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	// Разрешаем запросы с любого источника (локальный debug-клиент)
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}
