package engine

import (
	"sync"
	"time"

	"github.com/campusops/caseledger/internal/ledger"
)

// viewCache memoizes one merged view for a bounded window. A successful
// write invalidates it immediately instead of waiting for expiry — the only
// cross-component invalidation signal in the system.
type viewCache struct {
	mu      sync.Mutex
	view    []ledger.MergedRecord // nil means empty
	expires time.Time
}

func (c *viewCache) get(now time.Time) ([]ledger.MergedRecord, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.view == nil || now.After(c.expires) {
		return nil, false
	}
	return c.view, true
}

func (c *viewCache) set(view []ledger.MergedRecord, expires time.Time) {
	if view == nil {
		view = []ledger.MergedRecord{}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view = view
	c.expires = expires
}

func (c *viewCache) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view = nil
}
