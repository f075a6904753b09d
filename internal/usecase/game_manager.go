package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/repository"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/tictactoe"
)

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.GameState) error
	GetByID(ctx context.Context, id string) (*entity.GameState, error)
	DeleteByID(ctx context.Context, id string) error
	Update(ctx context.Context, id string, fn repository.UpdateFunc) error
}

// GameManager runs engine commands against stored games.
// Every command is one atomic update of the store, so a game has a single writer even when
// several processes share the store. Commands of this process are also queued per game.
type GameManager struct {
	logger   *slog.Logger
	gameRepo gameRepo

	locks gameLocks
	feed  feed
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo) *GameManager {
	return &GameManager{
		logger:   logger.With("component", "game_manager"),
		gameRepo: gameRepo,
	}
}

func (that *GameManager) CreateGame(ctx context.Context) (*entity.GameView, error) {
	id := uuid.NewString()
	engine := tictactoe.NewEngine()

	state := engine.State(id)
	if err := that.gameRepo.CreateOrUpdate(ctx, &state); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.logger.Info("game created", "gameID", id)

	return engine.View(id), nil
}

func (that *GameManager) GetGame(ctx context.Context, id string) (*entity.GameView, error) {
	engine, err := that.load(ctx, id)
	if err != nil {
		return nil, err
	}

	return engine.View(id), nil
}

// ApplyMove - plays cell for whoever moves next. Moves on a decided game or a taken cell are ignored.
func (that *GameManager) ApplyMove(ctx context.Context, id string, cell int) (*entity.GameView, error) {
	if cell < 0 || cell >= len(entity.Board{}) {
		return nil, fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	log := that.logger.With("method", "ApplyMove", "gameID", id, "cell", cell)

	return that.update(ctx, id, func(engine *tictactoe.Engine) error {
		before := engine.Cursor()
		mover := engine.NextMover()

		engine.ApplyMove(cell)

		if engine.Cursor() == before {
			log.Debug("move ignored")
			return nil
		}

		log.Info("move applied", "mover", mover, "step", engine.Cursor())

		return nil
	})
}

func (that *GameManager) JumpTo(ctx context.Context, id string, step int) (*entity.GameView, error) {
	return that.update(ctx, id, func(engine *tictactoe.Engine) error {
		if step < 0 || step >= engine.Len() {
			return fmt.Errorf("%w: step %d of %d", apperror.ErrInvalidStep, step, engine.Len())
		}

		engine.JumpTo(step)

		that.logger.Debug("jumped", "gameID", id, "step", step)

		return nil
	})
}

func (that *GameManager) ToggleAscending(ctx context.Context, id string) (*entity.GameView, error) {
	return that.update(ctx, id, func(engine *tictactoe.Engine) error {
		engine.ToggleAscending()
		return nil
	})
}

func (that *GameManager) DeleteGame(ctx context.Context, id string) error {
	release := that.locks.acquire(id)
	defer release()

	if err := that.gameRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	that.feed.closeGame(id)
	that.logger.Info("game deleted", "gameID", id)

	return nil
}

// Subscribe - delivers the game's views after changes made by other callers of this manager.
// The caller must Close the subscription.
func (that *GameManager) Subscribe(id string) *Subscription {
	return that.feed.subscribe(id)
}

// update - runs command on the stored game inside one store update and publishes the result.
// Errors of the command itself are returned as they are.
func (that *GameManager) update(ctx context.Context, id string, command func(*tictactoe.Engine) error) (*entity.GameView, error) {
	release := that.locks.acquire(id)
	defer release()

	var (
		view       *entity.GameView
		commandErr error
	)

	err := that.gameRepo.Update(ctx, id, func(state *entity.GameState) error {
		engine := tictactoe.Restore(*state)
		if commandErr = command(engine); commandErr != nil {
			return commandErr
		}

		*state = engine.State(id)
		view = engine.View(id)

		return nil
	})
	if commandErr != nil {
		return nil, commandErr
	}

	if err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	that.feed.publish(ctx, view)

	return view, nil
}

func (that *GameManager) load(ctx context.Context, id string) (*tictactoe.Engine, error) {
	state, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return tictactoe.Restore(*state), nil
}
