package usecase

import "sync"

type gameLock struct {
	mu   sync.Mutex
	refs int
}

// gameLocks hands out one mutex per game. An entry lives only while a command holds or waits for it,
// so ids of unknown or expired games leave nothing behind.
type gameLocks struct {
	mu    sync.Mutex
	locks map[string]*gameLock
}

// acquire - locks the game and returns the function that unlocks it.
func (that *gameLocks) acquire(id string) func() {
	that.mu.Lock()
	if that.locks == nil {
		that.locks = make(map[string]*gameLock)
	}

	lock, ok := that.locks[id]
	if !ok {
		lock = &gameLock{}
		that.locks[id] = lock
	}
	lock.refs++
	that.mu.Unlock()

	lock.mu.Lock()

	return func() {
		lock.mu.Unlock()

		that.mu.Lock()
		defer that.mu.Unlock()

		lock.refs--
		if lock.refs == 0 {
			delete(that.locks, id)
		}
	}
}

func (that *gameLocks) len() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return len(that.locks)
}
