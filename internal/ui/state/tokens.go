package state

import "sync"

// RequestTokens hands out monotonically increasing tokens per panel so that a
// response can be dropped when a newer request for the same panel was issued.
type RequestTokens struct {
	mu     sync.Mutex
	next   uint64
	latest map[string]uint64
}

// NewRequestTokens constructs an empty token registry.
func NewRequestTokens() *RequestTokens {
	return &RequestTokens{latest: make(map[string]uint64)}
}

// Issue returns a new token for panel and marks it as the latest.
func (t *RequestTokens) Issue(panel string) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.next++
	t.latest[panel] = t.next
	return t.next
}

// IsLatest reports whether token is still the newest one issued for panel.
func (t *RequestTokens) IsLatest(panel string, token uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.latest[panel] == token
}
