package ledger

import "sync"

// keyedMutex serializes callers per key. Mutations on the same account number
// take the same lock; unrelated accounts proceed in parallel. Locks for
// active keys are created on demand and kept for the life of the process
// (the key space is bounded by the number of distinct account numbers seen).
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the lock for key and returns its unlock function.
func (k *keyedMutex) Lock(key string) func() {
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &sync.Mutex{}
		k.locks[key] = l
	}
	k.mu.Unlock()

	l.Lock()
	return l.Unlock
}
