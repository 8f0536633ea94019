package wheel

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGuardAcquireRelease(t *testing.T) {
	g := NewGuard()

	require.True(t, g.TryAcquire(1))
	require.False(t, g.TryAcquire(1), "second acquire for the same account must fail")

	// other accounts are unaffected
	require.True(t, g.TryAcquire(2))

	g.Release(1)
	require.True(t, g.TryAcquire(1), "acquire after release must succeed")
}

func TestGuardConcurrentAcquireAdmitsExactlyOne(t *testing.T) {
	g := NewGuard()

	const goroutines = 64
	var wg sync.WaitGroup
	var mu sync.Mutex
	acquired := 0

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if g.TryAcquire(42) {
				mu.Lock()
				acquired++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 1, acquired)
}

func TestGuardReleaseOfUnheldIDIsHarmless(t *testing.T) {
	g := NewGuard()
	g.Release(7) // no-op
	require.True(t, g.TryAcquire(7))
}
