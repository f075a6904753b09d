package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/usecase"
)

const readLimit = 4096

type gameUseCase interface {
	GetGame(ctx context.Context, id string) (*entity.GameView, error)
	ApplyMove(ctx context.Context, id string, cell int) (*entity.GameView, error)
	JumpTo(ctx context.Context, id string, step int) (*entity.GameView, error)
	ToggleAscending(ctx context.Context, id string) (*entity.GameView, error)
	Subscribe(id string) *usecase.Subscription
}

type handlerFunc func(ctx context.Context, gameID string, payload RequestPayload) (*entity.GameView, error)

// Server drives one game per connection. Messages of a connection are handled one at a time, in order,
// and changes made by other connections or REST calls are pushed as they happen.
type Server struct {
	logger *slog.Logger
	games  gameUseCase

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, games gameUseCase) *Server {
	server := &Server{
		logger: logger.With("component", "websocket"),
		games:  games,

		handlers: make(map[string]handlerFunc),
	}

	server.handlers[actionState] = server.handleState
	server.handlers[actionMove] = server.handleMove
	server.handlers[actionJump] = server.handleJump
	server.handlers[actionSort] = server.handleSort

	return server
}

// ServeHTTP - upgrades the request for the game in the {id} route param and serves its messages.
func (that *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "id")
	log := that.logger.With("method", "ServeHTTP", "gameID", gameID)

	// subscribe first so no change between the initial state and the first update is missed
	sub := that.games.Subscribe(gameID)
	defer sub.Close()

	game, err := that.games.GetGame(r.Context(), gameID)
	if errors.Is(err, apperror.ErrGameNotFound) {
		http.Error(w, apperror.ErrGameNotFound.Error(), http.StatusNotFound)
		return
	}

	if err != nil {
		log.Error("failed to get game", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		log.Error("failed to accept websocket", "error", err)
		return
	}
	defer conn.CloseNow()

	conn.SetReadLimit(readLimit)

	log.Info("WebSocket connection established")

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	if err = that.write(ctx, conn, actionState, ResponsePayload{Game: game}); err != nil {
		log.Error("failed to send initial state", "error", err)
		return
	}

	go that.pushUpdates(ctx, conn, sub)

	if err = that.handleMessages(usecase.WithSubscriber(ctx, sub), conn, gameID); err != nil {
		log.Error("error handling messages", "error", err)
		return
	}

	_ = conn.Close(websocket.StatusNormalClosure, "")
}

// pushUpdates - forwards changes of the game made elsewhere until ctx ends or the game is deleted.
// Writes may run alongside the replies of handleMessages; the connection serializes them.
func (that *Server) pushUpdates(ctx context.Context, conn *websocket.Conn, sub *usecase.Subscription) {
	log := that.logger.With("method", "pushUpdates")

	for {
		select {
		case <-ctx.Done():
			return
		case game, ok := <-sub.Updates():
			if !ok {
				_ = conn.Close(websocket.StatusNormalClosure, apperror.ErrGameNotFound.Error())
				return
			}

			if err := that.write(ctx, conn, actionUpdate, ResponsePayload{Game: game}); err != nil {
				log.Debug("failed to push update", "gameID", game.ID, "error", err)
				return
			}
		}
	}
}

// handleMessages - processes messages from the client until it disconnects.
func (that *Server) handleMessages(ctx context.Context, conn *websocket.Conn, gameID string) error {
	log := that.logger.With("method", "handleMessages", "gameID", gameID)

	for {
		var message Message
		err := wsjson.Read(ctx, conn, &message)
		if status := websocket.CloseStatus(err); status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
			return nil
		}

		if err != nil {
			return fmt.Errorf("failed to read message: %w", err)
		}

		reply := that.process(ctx, gameID, &message)
		if reply.Error != "" {
			log.Warn("message rejected", "action", message.Action, "error", reply.Error)
		}

		if err = that.write(ctx, conn, message.Action, reply); err != nil {
			return fmt.Errorf("failed to write response: %w", err)
		}
	}
}

// write - sends one message. A payload that cannot be encoded closes the connection.
func (that *Server) write(ctx context.Context, conn *websocket.Conn, action string, payload ResponsePayload) error {
	message, err := newMessage(action, payload)
	if err != nil {
		_ = conn.Close(websocket.StatusInternalError, "internal error")
		return err
	}

	return wsjson.Write(ctx, conn, message)
}

func (that *Server) process(ctx context.Context, gameID string, message *Message) ResponsePayload {
	handler, ok := that.handlers[message.Action]
	if !ok {
		return ResponsePayload{Error: fmt.Sprintf("%v: %q", apperror.ErrUnknownAction, message.Action)}
	}

	var payload RequestPayload
	if len(message.Payload) > 0 {
		if err := json.Unmarshal(message.Payload, &payload); err != nil {
			return ResponsePayload{Error: "invalid payload"}
		}
	}

	game, err := handler(ctx, gameID, payload)
	if err != nil {
		return ResponsePayload{Error: publicError(err)}
	}

	return ResponsePayload{Game: game}
}

func (that *Server) handleState(ctx context.Context, gameID string, _ RequestPayload) (*entity.GameView, error) {
	return that.games.GetGame(ctx, gameID)
}

func (that *Server) handleMove(ctx context.Context, gameID string, payload RequestPayload) (*entity.GameView, error) {
	if payload.Cell == nil {
		return nil, fmt.Errorf("%w: cell is required", apperror.ErrInvalidCell)
	}

	return that.games.ApplyMove(ctx, gameID, *payload.Cell)
}

func (that *Server) handleJump(ctx context.Context, gameID string, payload RequestPayload) (*entity.GameView, error) {
	if payload.Step == nil {
		return nil, fmt.Errorf("%w: step is required", apperror.ErrInvalidStep)
	}

	return that.games.JumpTo(ctx, gameID, *payload.Step)
}

func (that *Server) handleSort(ctx context.Context, gameID string, _ RequestPayload) (*entity.GameView, error) {
	return that.games.ToggleAscending(ctx, gameID)
}

// publicError - hides storage failures from the client.
func publicError(err error) string {
	switch {
	case errors.Is(err, apperror.ErrGameNotFound):
		return apperror.ErrGameNotFound.Error()
	case errors.Is(err, apperror.ErrGameConflict):
		return apperror.ErrGameConflict.Error()
	case errors.Is(err, apperror.ErrInvalidCell), errors.Is(err, apperror.ErrInvalidStep):
		return err.Error()
	default:
		return "internal error"
	}
}
