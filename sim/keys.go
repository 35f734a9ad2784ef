package sim

import (
	"sync"
	"time"
)

type pendingKey struct {
	at  time.Duration
	key byte
}

// Keys is a serkey.KeySource fed by a test or by another goroutine. Keys
// pushed with PushAt stay hidden until Clock reaches their time.
type Keys struct {
	Clock *Clock

	mu      sync.Mutex
	pending []pendingKey
}

func (k *Keys) Push(keys ...byte) {
	k.mu.Lock()
	defer k.mu.Unlock()

	for _, b := range keys {
		k.pending = append(k.pending, pendingKey{key: b})
	}
}

func (k *Keys) PushAt(at time.Duration, key byte) {
	k.mu.Lock()
	defer k.mu.Unlock()

	k.pending = append(k.pending, pendingKey{at: at, key: key})
}

func (k *Keys) TryTake() (byte, bool) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if len(k.pending) == 0 {
		return 0, false
	}

	next := k.pending[0]
	if next.at > 0 && (k.Clock == nil || k.Clock.Elapsed() < next.at) {
		return 0, false
	}

	k.pending = k.pending[1:]
	return next.key, true
}

func (k *Keys) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()

	return len(k.pending)
}
