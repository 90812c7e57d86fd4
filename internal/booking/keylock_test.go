package booking

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyLockSerializesSameKey(t *testing.T) {
	kl := newKeyLock()

	const workers = 100
	counter := 0

	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()

			kl.Lock("7:B2")
			defer kl.Unlock("7:B2")

			// Unsynchronized increment; the race detector flags this if
			// two holders ever overlap.
			counter++
		}()
	}

	wg.Wait()
	assert.Equal(t, workers, counter)
}

func TestKeyLockIndependentKeys(t *testing.T) {
	kl := newKeyLock()

	kl.Lock("7:B2")
	defer kl.Unlock("7:B2")

	done := make(chan struct{})
	go func() {
		kl.Lock("8:B2")
		kl.Unlock("8:B2")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("locking a different key blocked behind an unrelated holder")
	}
}

func TestKeyLockDropsIdleEntries(t *testing.T) {
	kl := newKeyLock()

	kl.Lock("7:B2")
	kl.Unlock("7:B2")

	total := 0
	for i := range kl.shards {
		kl.shards[i].mu.Lock()
		total += len(kl.shards[i].entries)
		kl.shards[i].mu.Unlock()
	}

	require.Zero(t, total)
}
