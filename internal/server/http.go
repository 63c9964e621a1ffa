package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	_ "net/http/pprof" // Profiling
	"sync"
	"time"

	"dungeon-crawler/internal/config"
	"dungeon-crawler/internal/engine"
	"dungeon-crawler/internal/infrastructure/storage"
	"dungeon-crawler/internal/network"
	"dungeon-crawler/internal/version"
	"dungeon-crawler/pkg/api"
	"dungeon-crawler/pkg/logger"
	"dungeon-crawler/pkg/utils"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 5 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Server раздает по игре на каждое websocket-подключение.
type Server struct {
	cfg *config.Config
	hub *network.Broadcaster

	mu      sync.RWMutex
	clients map[string]*Client

	log *logrus.Entry
}

func New(cfg *config.Config) *Server {
	return &Server{
		cfg:     cfg,
		hub:     network.NewBroadcaster(64),
		clients: make(map[string]*Client),
		log:     logger.For("server"),
	}
}

// Handler собирает роуты; отдельно от Run, чтобы тесты поднимали httptest.Server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/health", enableCORS(s.handleHealth))
	mux.HandleFunc("/version", enableCORS(s.handleVersion))

	NewDebugHandler(s).RegisterRoutes(mux)
	mux.Handle("/debug/pprof/", http.DefaultServeMux)
	return mux
}

// Run слушает адрес из конфига до отмены ctx
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.Server.BindAddress,
		Handler: s.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", srv.Addr).Info("Dungeon server listening.")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.WithField("sessions", s.hub.SubscriberCount()).Info("Shutting down server.")
	s.hub.Broadcast(api.ServerResponse{Type: "ERROR", Error: "server is shutting down"})

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func enableCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		next(w, r)
	}
}

// handleWS поднимает сессию: новая игра в главном меню + два пампа
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.WithError(err).Error("Upgrade error")
		return
	}

	game := engine.NewGame(s.cfg.Game, storage.NewService(s.cfg.Storage.SavePath))
	client := newClient(utils.NewSessionID(), s, conn, game)

	s.mu.Lock()
	s.clients[client.ID] = client
	s.mu.Unlock()

	client.log.WithField("remote", r.RemoteAddr).Info("Client connected.")

	go client.writePump()
	go client.readPump()
}

// drop снимает сессию; закрытие канала завершает writePump
func (s *Server) drop(c *Client) {
	s.mu.Lock()
	delete(s.clients, c.ID)
	s.mu.Unlock()

	s.hub.Unregister(c.ID)
	c.log.Info("Client disconnected.")
}

func (s *Server) client(id string) (*Client, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.clients[id]
	return c, ok
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(version.Info())
}
