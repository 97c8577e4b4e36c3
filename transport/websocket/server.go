package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	petname "github.com/dustinkirkland/golang-petname"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rocketscienceinc/tictactoe-arena/internal/arena"
	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
	"github.com/rocketscienceinc/tictactoe-arena/internal/usecase"
)

type arenaManager interface {
	Join(playerID, name string) (*usecase.JoinResult, error)
	MakeMove(playerID string, row, col int) (*arena.RoomState, error)
	ResetRound(playerID string) (*arena.RoomState, error)
	NewSeries(playerID string) (*arena.RoomState, error)
	RoomState(playerID string) (*arena.RoomState, error)
	Leave(playerID string) (string, []string)
}

type soloManager interface {
	StartGame(ctx context.Context, playerID, difficulty string) (*entity.Game, error)
	MakeTurn(ctx context.Context, playerID string, row, col int) (*entity.Game, error)
	ResetGame(ctx context.Context, playerID string) (*entity.Game, error)
	Forget(ctx context.Context, playerID string)
}

// client is one connected participant. The mutex serializes writes, since
// room broadcasts come from other connections' goroutines.
type client struct {
	id   string
	name string

	conn *websocket.Conn
	mu   sync.Mutex
}

func (that *client) send(action string, payload any) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	message, err := json.Marshal(Message{Action: action, Payload: payloadJSON})
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	if err = that.conn.WriteMessage(websocket.TextMessage, message); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

type Server struct {
	logger *slog.Logger
	arena  arenaManager
	solo   soloManager

	defaultDifficulty string

	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[string]*client

	handlers map[string]func(ctx context.Context, c *client, payload json.RawMessage) error
}

func New(logger *slog.Logger, arenaMgr arenaManager, soloMgr soloManager, defaultDifficulty string) *Server {
	server := &Server{
		logger:            logger,
		arena:             arenaMgr,
		solo:              soloMgr,
		defaultDifficulty: defaultDifficulty,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		clients:  make(map[string]*client),
		handlers: make(map[string]func(context.Context, *client, json.RawMessage) error),
	}

	server.handlers["join_pvp"] = server.handleJoinPVP
	server.handlers["make_move"] = server.handleMakeMove
	server.handlers["reset_game"] = server.handleResetGame
	server.handlers["start_new_match"] = server.handleNewSeries
	server.handlers["solo_start"] = server.handleSoloStart
	server.handlers["solo_move"] = server.handleSoloMove
	server.handlers["solo_reset"] = server.handleSoloReset

	return server
}

// Start - starts the WebSocket server and shuts it down when ctx is
// canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.handleConnection(ctx, w, r)
	})

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// handleConnection - upgrades the connection, assigns the participant an
// identity and display name, and pumps messages until the peer goes away.
func (that *Server) handleConnection(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleConnection")

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		name = petname.Generate(2, "-")
	}

	c := &client{
		id:   uuid.NewString(),
		name: name,
		conn: conn,
	}

	that.register(c)
	defer that.disconnect(ctx, c)

	log.Info("connection established", "playerID", c.id, "name", c.name)

	that.readLoop(ctx, c)
}

func (that *Server) readLoop(ctx context.Context, c *client) {
	log := that.logger.With("method", "readLoop", "playerID", c.id)

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			log.Info("connection closed", "error", err)
			return
		}

		var message Message
		if err = json.Unmarshal(raw, &message); err != nil {
			log.Error("failed to unmarshal message", "error", err)
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Error("unknown action", "action", message.Action)
			continue
		}

		if err = handler(ctx, c, message.Payload); err != nil {
			log.Error("failed to process message", "action", message.Action, "error", err)
		}
	}
}

func (that *Server) register(c *client) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.clients[c.id] = c
}

// disconnect - cleans up after a gone connection: vacates the room, tells
// any opponent left behind, and drops the solo session.
func (that *Server) disconnect(ctx context.Context, c *client) {
	roomID, shed := that.arena.Leave(c.id)
	if roomID != "" {
		for _, playerID := range shed {
			that.sendTo(playerID, "opponent_left", OpponentLeftAck{RoomID: roomID})
		}
	}

	that.solo.Forget(ctx, c.id)

	that.mu.Lock()
	delete(that.clients, c.id)
	that.mu.Unlock()

	_ = c.conn.Close()
}

// sendTo - delivers a payload to a single identity, if still connected.
func (that *Server) sendTo(playerID, action string, payload any) {
	that.mu.RLock()
	c, ok := that.clients[playerID]
	that.mu.RUnlock()

	if !ok {
		return
	}

	if err := c.send(action, payload); err != nil {
		that.logger.Error("failed to send message", "method", "sendTo", "playerID", playerID, "error", err)
	}
}

// broadcast - delivers a payload to every participant of the room snapshot.
func (that *Server) broadcast(state *arena.RoomState, action string, payload any) {
	for _, player := range state.Players {
		that.sendTo(player.ID, action, payload)
	}
}
