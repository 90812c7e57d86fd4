package booking

import (
	"hash/fnv"
	"sync"
)

const lockShards = 64

// keyLock is a sharded mutex map. Lock(key) blocks callers holding the same
// key while callers on other keys proceed independently; entries are dropped
// once the last holder releases them, so the map stays bounded by the number
// of in-flight operations.
type keyLock struct {
	shards [lockShards]lockShard
}

type lockShard struct {
	mu      sync.Mutex
	entries map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newKeyLock() *keyLock {
	kl := &keyLock{}

	for i := range kl.shards {
		kl.shards[i].entries = make(map[string]*lockEntry)
	}

	return kl
}

func (kl *keyLock) shard(key string) *lockShard {
	h := fnv.New32a()
	h.Write([]byte(key))

	return &kl.shards[h.Sum32()%lockShards]
}

func (kl *keyLock) Lock(key string) {
	s := kl.shard(key)

	s.mu.Lock()
	e, ok := s.entries[key]
	if !ok {
		e = &lockEntry{}
		s.entries[key] = e
	}
	e.refs++
	s.mu.Unlock()

	e.mu.Lock()
}

func (kl *keyLock) Unlock(key string) {
	s := kl.shard(key)

	s.mu.Lock()
	e := s.entries[key]
	e.refs--
	if e.refs == 0 {
		delete(s.entries, key)
	}
	s.mu.Unlock()

	e.mu.Unlock()
}
