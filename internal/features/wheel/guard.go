// Package wheel — guard.go is the per-account concurrent-spin guard.
//
// The guard is a process-wide set of account ids with a spin in flight.
// It exists to reject obviously-duplicate concurrent taps quickly; the
// real lost-update protection is the database transaction in the
// repository. It is never persisted and is lost on restart, which is
// fine for a liveness guard.
package wheel

import "sync"

// Guard tracks accounts with a spin currently being handled.
type Guard struct {
	mu     sync.Mutex
	active map[int64]struct{}
}

func NewGuard() *Guard {
	return &Guard{active: make(map[int64]struct{})}
}

// TryAcquire atomically test-and-inserts the account id.
// Returns false when a spin for this account is already in flight.
func (g *Guard) TryAcquire(accountID int64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, busy := g.active[accountID]; busy {
		return false
	}
	g.active[accountID] = struct{}{}
	return true
}

// Release removes the account id. Must be called on every exit path
// after a successful TryAcquire, or the account wedges until restart.
func (g *Guard) Release(accountID int64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.active, accountID)
}
