// Package server exposes goldfish sessions over websockets. Every connection
// gets its own engine; nothing is shared between players.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/magefree/mage-goldfish/internal/game/replay"
	"github.com/magefree/mage-goldfish/internal/game/solitaire"
	"github.com/magefree/mage-goldfish/internal/repository"
)

const (
	// MessageLoadDeckID asks the server to load a stored deck by id.
	MessageLoadDeckID = "LOAD_DECK_ID"
	// MessageState carries the full game state.
	MessageState = "STATE"
	// MessageError carries a message that could not be handled.
	MessageError = "ERROR"

	writeWait  = 10 * time.Second
	pongWait   = 120 * time.Second
	pingPeriod = pongWait * 9 / 10
	sendBuffer = 64
)

// Outbound is every message the server sends.
type Outbound struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

type loadDeckID struct {
	DeckID string `json:"deckId"`
}

// Options configures new sessions.
type Options struct {
	Settings       solitaire.Settings
	Seed           int64
	ReplayDir      string
	AllowedOrigins []string
}

// Server upgrades HTTP requests on /ws into game sessions.
type Server struct {
	opts     Options
	decks    repository.DeckSource
	logger   *zap.Logger
	upgrader websocket.Upgrader
	hub      *Hub
}

// New creates a Server. decks may be nil, in which case LOAD_DECK_ID is
// rejected.
func New(decks repository.DeckSource, opts Options, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		opts:   opts,
		decks:  decks,
		logger: logger,
		hub:    newHub(logger),
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}
	return s
}

// Run blocks until ctx is done, then disconnects every client.
func (s *Server) Run(ctx context.Context) {
	s.hub.run(ctx)
}

// Sessions returns the number of connected clients.
func (s *Server) Sessions() int {
	return s.hub.count()
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ws", s.ServeWS)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

func (s *Server) checkOrigin(r *http.Request) bool {
	if len(s.opts.AllowedOrigins) == 0 {
		return true
	}
	return slices.Contains(s.opts.AllowedOrigins, r.Header.Get("Origin"))
}

// ServeWS upgrades the request and starts a session.
func (s *Server) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	id := uuid.NewString()
	logger := s.logger.With(zap.String("session_id", id))
	engine, recorder := replay.NewSession(id, s.opts.Settings, logger,
		solitaire.WithLogger(logger),
		solitaire.WithSeed(s.opts.Seed),
	)

	c := &Client{
		id:       id,
		conn:     conn,
		send:     make(chan []byte, sendBuffer),
		engine:   engine,
		recorder: recorder,
		logger:   logger,
	}
	if !s.hub.add(c) {
		_ = conn.Close()
		return
	}
	logger.Info("session started", zap.Int64("seed", engine.Seed()))

	c.reply(MessageState, engine.State())
	go c.writePump()
	go s.readPump(c)
}

// readPump handles one connection's messages in order.
func (s *Server) readPump(c *Client) {
	defer func() {
		s.hub.remove(c)
		_ = c.conn.Close()
		s.finish(c)
	}()

	c.conn.SetReadLimit(1 << 20)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("websocket read failed", zap.Error(err))
			}
			return
		}
		s.handleMessage(c, message)
	}
}

func (s *Server) handleMessage(c *Client, message []byte) {
	var env solitaire.Envelope
	if err := json.Unmarshal(message, &env); err != nil {
		c.reply(MessageError, "invalid message: "+err.Error())
		return
	}

	var action solitaire.Action
	if env.Type == MessageLoadDeckID {
		deck, err := s.lookupDeck(env.Payload)
		if err != nil {
			c.logger.Debug("deck lookup failed", zap.Error(err))
			c.reply(MessageError, err.Error())
			return
		}
		action = deck
	} else {
		decoded, err := solitaire.DecodeEnvelope(env)
		if err != nil {
			c.reply(MessageError, err.Error())
			return
		}
		action = decoded
	}

	c.reply(MessageState, c.engine.Dispatch(action))
}

func (s *Server) lookupDeck(payload json.RawMessage) (solitaire.LoadDeck, error) {
	if s.decks == nil {
		return solitaire.LoadDeck{}, errors.New("deck store not configured")
	}
	var req loadDeckID
	if err := json.Unmarshal(payload, &req); err != nil {
		return solitaire.LoadDeck{}, fmt.Errorf("decode %s payload: %w", MessageLoadDeckID, err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), writeWait)
	defer cancel()
	return s.decks.LoadDeck(ctx, req.DeckID)
}

// finish saves the session journal when replays are enabled.
func (s *Server) finish(c *Client) {
	c.logger.Info("session ended", zap.Int("actions", c.recorder.Size()))
	if s.opts.ReplayDir == "" || c.recorder.Size() == 0 {
		return
	}
	if _, err := c.recorder.Save(s.opts.ReplayDir); err != nil {
		c.logger.Error("failed to save replay", zap.Error(err))
	}
}

// Client is one connected player.
type Client struct {
	id       string
	conn     *websocket.Conn
	send     chan []byte
	engine   *solitaire.Engine
	recorder *replay.Recorder
	logger   *zap.Logger
}

func (c *Client) reply(kind string, data any) {
	payload, err := json.Marshal(Outbound{Type: kind, Data: data})
	if err != nil {
		c.logger.Error("failed to encode reply", zap.String("type", kind), zap.Error(err))
		return
	}
	select {
	case c.send <- payload:
	default:
		c.logger.Warn("send buffer full, dropping reply", zap.String("type", kind))
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Hub tracks live clients so they can be closed on shutdown.
type Hub struct {
	mu      sync.Mutex
	clients map[*Client]bool
	closed  bool
	logger  *zap.Logger
}

func newHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients: make(map[*Client]bool),
		logger:  logger,
	}
}

// add registers a client. It reports false once the hub has shut down.
func (h *Hub) add(c *Client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = true
	return true
}

// remove unregisters a client and stops its write pump.
func (h *Hub) remove(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

func (h *Hub) run(ctx context.Context) {
	<-ctx.Done()

	h.mu.Lock()
	h.closed = true
	for c := range h.clients {
		_ = c.conn.Close()
	}
	n := len(h.clients)
	h.mu.Unlock()
	h.logger.Info("hub stopped", zap.Int("open_sessions", n))
}

func (h *Hub) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
