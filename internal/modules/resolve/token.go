package resolve

import "sync"

// TokenSource guards overlapping asynchronous loads. Each load acquires a
// monotonically increasing token; at commit time the token is compared with
// the newest one issued and stale responses are discarded, so a slow early
// request can never overwrite the result of a newer one.
type TokenSource struct {
	mu   sync.Mutex
	next uint64
}

// Acquire issues the next token. The most recently acquired token is the
// only one that will commit.
func (t *TokenSource) Acquire() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.next++
	return t.next
}

// Commit reports whether token is still the newest issued. A false return
// means a newer load started after this one; its result must be dropped.
func (t *TokenSource) Commit(token uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return token == t.next
}
