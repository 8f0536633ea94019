// Package bot — states.go tracks per-user dialog state.
package bot

import "sync"

// userState marks what kind of free-text input the next message from a
// user should be interpreted as.
type userState int

const (
	stateNone userState = iota
	stateWaitingForWallet
)

// stateStore is a concurrency-safe user -> dialog state map. Updates are
// handled on separate goroutines, so plain map access would race.
type stateStore struct {
	mu     sync.Mutex
	states map[int64]userState
}

func newStateStore() *stateStore {
	return &stateStore{states: make(map[int64]userState)}
}

func (s *stateStore) get(userID int64) userState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.states[userID]
}

func (s *stateStore) set(userID int64, state userState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[userID] = state
}

func (s *stateStore) clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, userID)
}
