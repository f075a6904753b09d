package usecase

import (
	"context"
	"sync"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
)

type subscriberKey struct{}

// Subscription delivers the views of one game after every change made through this process.
// Only the latest view is kept for a subscriber that falls behind.
type Subscription struct {
	gameID  string
	updates chan *entity.GameView

	feed      *feed
	closeOnce sync.Once
}

// Updates - closed when the subscription ends or the game is deleted.
func (that *Subscription) Updates() <-chan *entity.GameView {
	return that.updates
}

// Close - stops delivery. Safe to call more than once.
func (that *Subscription) Close() {
	that.feed.remove(that)
}

func (that *Subscription) close() {
	that.closeOnce.Do(func() { close(that.updates) })
}

// offer - replaces a pending view nobody has read yet, so a slow reader only gets the newest one.
func (that *Subscription) offer(view *entity.GameView) {
	for {
		select {
		case that.updates <- view:
			return
		default:
		}

		select {
		case <-that.updates:
		default:
		}
	}
}

// WithSubscriber - commands run with the returned context are not echoed back to sub.
func WithSubscriber(ctx context.Context, sub *Subscription) context.Context {
	return context.WithValue(ctx, subscriberKey{}, sub)
}

type feed struct {
	mu   sync.Mutex
	subs map[string]map[*Subscription]struct{}
}

func (that *feed) subscribe(gameID string) *Subscription {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.subs == nil {
		that.subs = make(map[string]map[*Subscription]struct{})
	}

	set := that.subs[gameID]
	if set == nil {
		set = make(map[*Subscription]struct{})
		that.subs[gameID] = set
	}

	sub := &Subscription{gameID: gameID, updates: make(chan *entity.GameView, 1), feed: that}
	set[sub] = struct{}{}

	return sub
}

func (that *feed) remove(sub *Subscription) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if set, ok := that.subs[sub.gameID]; ok {
		delete(set, sub)
		if len(set) == 0 {
			delete(that.subs, sub.gameID)
		}
	}

	sub.close()
}

// publish - sends view to every subscriber of the game except the one that caused the change.
// Runs under the feed lock so it never races with close.
func (that *feed) publish(ctx context.Context, view *entity.GameView) {
	origin, _ := ctx.Value(subscriberKey{}).(*Subscription)

	that.mu.Lock()
	defer that.mu.Unlock()

	for sub := range that.subs[view.ID] {
		if sub != origin {
			sub.offer(view)
		}
	}
}

// closeGame - ends every subscription of a deleted game.
func (that *feed) closeGame(gameID string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	for sub := range that.subs[gameID] {
		sub.close()
	}

	delete(that.subs, gameID)
}

func (that *feed) len() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return len(that.subs)
}
