package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// memoryGame keeps games in process memory; they are gone when the process exits.
type memoryGame struct {
	mu    sync.Mutex
	games map[string]memoryEntry
	ttl   time.Duration
	now   func() time.Time
}

// NewMemoryGameRepository - a ttl of zero keeps games until they are deleted.
func NewMemoryGameRepository(ttl time.Duration) GameRepository {
	return &memoryGame{
		games: make(map[string]memoryEntry),
		ttl:   ttl,
		now:   time.Now,
	}
}

// The state is stored encoded so callers never share memory with the store.
func (that *memoryGame) CreateOrUpdate(_ context.Context, game *entity.GameState) error {
	gameJSON, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("could not marshal game: %w", err)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	that.games[game.ID] = that.newEntry(gameJSON)

	return nil
}

func (that *memoryGame) GetByID(_ context.Context, id string) (*entity.GameState, error) {
	that.mu.Lock()
	entry, ok := that.lookup(id)
	that.mu.Unlock()

	if !ok {
		return nil, apperror.ErrGameNotFound
	}

	var existingGame entity.GameState
	if err := json.Unmarshal(entry.data, &existingGame); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return &existingGame, nil
}

func (that *memoryGame) Update(_ context.Context, id string, fn UpdateFunc) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	entry, ok := that.lookup(id)
	if !ok {
		return apperror.ErrGameNotFound
	}

	var game entity.GameState
	if err := json.Unmarshal(entry.data, &game); err != nil {
		return fmt.Errorf("failed to unmarshal game: %w", err)
	}

	if err := fn(&game); err != nil {
		return err
	}

	gameJSON, err := json.Marshal(&game)
	if err != nil {
		return fmt.Errorf("could not marshal game: %w", err)
	}

	that.games[id] = that.newEntry(gameJSON)

	return nil
}

func (that *memoryGame) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.lookup(id); !ok {
		return apperror.ErrGameNotFound
	}

	delete(that.games, id)

	return nil
}

func (that *memoryGame) newEntry(data []byte) memoryEntry {
	entry := memoryEntry{data: data}
	if that.ttl > 0 {
		entry.expiresAt = that.now().Add(that.ttl)
	}

	return entry
}

// lookup - must be called with mu held. Drops the entry if it has expired.
func (that *memoryGame) lookup(id string) (memoryEntry, bool) {
	entry, ok := that.games[id]
	if !ok {
		return memoryEntry{}, false
	}

	if !entry.expiresAt.IsZero() && !that.now().Before(entry.expiresAt) {
		delete(that.games, id)
		return memoryEntry{}, false
	}

	return entry, true
}
