package server

import (
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"dungeon-crawler/internal/engine"
	"dungeon-crawler/pkg/api"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const maxMessageSize = 512

// Client - одна websocket-сессия со своей игрой.
// Игру трогает только readPump; debug-эндпоинты читают ее под mu.
type Client struct {
	ID     string
	server *Server
	conn   *websocket.Conn
	send   <-chan api.ServerResponse

	mu   sync.Mutex
	game *engine.Game

	log *logrus.Entry
}

func newClient(id string, s *Server, conn *websocket.Conn, game *engine.Game) *Client {
	return &Client{
		ID:     id,
		server: s,
		conn:   conn,
		send:   s.hub.Register(id),
		game:   game,
		log:    s.log.WithField("session", id),
	}
}

// readPump читает команды, двигает игру и отправляет снимок после каждого тика
func (c *Client) readPump() {
	defer c.server.drop(c)

	pongWait := c.server.cfg.Server.PongWait
	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.log.WithError(err).Warn("failed to set read deadline")
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// Первая отрисовка: главное меню
	c.push(c.view())

	for {
		var msg api.ClientCommand
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.WithError(err).Warn("WS read error")
			}
			return
		}

		resp, quit := c.handle(msg)
		c.push(resp)
		if quit {
			c.log.Info("Session quit by player.")
			return
		}
	}
}

// handle декодирует команду и выполняет тик
func (c *Client) handle(msg api.ClientCommand) (api.ServerResponse, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cmd, err := engine.DecodeCommand(msg)
	if err != nil {
		c.log.WithError(err).WithField("action", msg.Action).Debug("Rejected command.")
		return errorResponse(c.game.RenderView(), err), false
	}

	res, err := c.tick(cmd)
	view := c.game.RenderView()
	if err != nil {
		return errorResponse(view, err), false
	}
	return view, res.Quit
}

// tick ловит панику одного тика, чтобы не уронить сервер целиком
func (c *Client) tick(cmd engine.Command) (res engine.TickResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			c.log.WithFields(logrus.Fields{
				"panic":   r,
				"command": cmd.Kind.String(),
				"stack":   string(debug.Stack()),
			}).Error("Tick panicked.")
			err = fmt.Errorf("internal error")
		}
	}()
	return c.game.Tick(cmd)
}

func (c *Client) view() api.ServerResponse {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.game.RenderView()
}

func (c *Client) push(resp api.ServerResponse) {
	if !c.server.hub.SendTo(c.ID, resp) {
		c.log.Warn("Outgoing queue is full, snapshot dropped.")
	}
}

func errorResponse(view api.ServerResponse, err error) api.ServerResponse {
	view.Type = "ERROR"
	view.Error = err.Error()
	return view
}

// writePump отправляет снимки клиенту + Ping. Закрытие канала закрывает соединение.
func (c *Client) writePump() {
	writeWait := c.server.cfg.Server.WriteTimeout
	ticker := time.NewTicker(c.server.cfg.Server.PongWait * 9 / 10)
	defer func() {
		ticker.Stop()
		if err := c.conn.Close(); err != nil {
			c.log.WithError(err).Debug("failed to close websocket connection")
		}
	}()

	for {
		select {
		case message, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.log.WithError(err).Warn("failed to set write deadline")
			}
			if !ok {
				if err := c.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")); err != nil {
					c.log.WithError(err).Debug("write close message failed")
				}
				return
			}
			if err := c.conn.WriteJSON(message); err != nil {
				c.log.WithError(err).Debug("write json message failed")
				return
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.log.WithError(err).Warn("failed to set ping write deadline")
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.log.WithError(err).Debug("ping failed")
				return
			}
		}
	}
}
