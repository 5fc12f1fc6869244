package assign

import (
	"sync"
	"testing"
)

// Holders of the same key must serialize: with 50 goroutines incrementing a
// shared counter under the lock, no update may be lost.
func TestKeyedMutexSerializesSameKey(t *testing.T) {
	km := newKeyedMutex()
	const n = 50
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			km.lock("7|2026-03-14")
			counter++
			km.unlock("7|2026-03-14")
		}()
	}
	wg.Wait()

	if counter != n {
		t.Errorf("counter = %d, want %d", counter, n)
	}
}

// Different keys must not block each other: holding one key, another key
// stays acquirable.
func TestKeyedMutexDisjointKeys(t *testing.T) {
	km := newKeyedMutex()
	km.lock("7|2026-03-14")
	defer km.unlock("7|2026-03-14")

	done := make(chan struct{})
	go func() {
		km.lock("8|2026-03-14")
		km.unlock("8|2026-03-14")
		close(done)
	}()
	<-done
}

// Entries are removed once released so the map stays bounded.
func TestKeyedMutexReclaimsEntries(t *testing.T) {
	km := newKeyedMutex()
	for i := 0; i < 10; i++ {
		km.lock("7|2026-03-14")
		km.unlock("7|2026-03-14")
	}
	km.mu.Lock()
	size := len(km.locks)
	km.mu.Unlock()
	if size != 0 {
		t.Errorf("lock map holds %d entries after release, want 0", size)
	}
}
