package dashboard

import (
	"context"
	"sync"
	"time"

	"carddash/internal/core"
	"carddash/internal/ledger"
)

// PageKey identifies one paged ledger request. Bounds are kept as unix
// nanoseconds so keys stay comparable.
type PageKey struct {
	AccountID  int64
	Page       int
	PageSize   int
	LowerBound int64
	UpperBound int64
}

// NewPageKey builds a key from the request parameters. Zero times map to
// zero bounds.
func NewPageKey(accountID int64, page, pageSize int, lower, upper time.Time) PageKey {
	k := PageKey{AccountID: accountID, Page: page, PageSize: pageSize}
	if !lower.IsZero() {
		k.LowerBound = lower.UnixNano()
	}
	if !upper.IsZero() {
		k.UpperBound = upper.UnixNano()
	}
	return k
}

func (k PageKey) query() ledger.PageQuery {
	q := ledger.PageQuery{AccountID: k.AccountID, Page: k.Page, PageSize: k.PageSize}
	if k.LowerBound != 0 {
		q.LowerBound = time.Unix(0, k.LowerBound)
	}
	if k.UpperBound != 0 {
		q.UpperBound = time.Unix(0, k.UpperBound)
	}
	return q
}

// PageView is a snapshot of the pager's state for one key.
type PageView struct {
	Key     PageKey
	Page    core.TransactionPage
	Err     error
	Loading bool
}

// LedgerPager maintains paging state for the ledger table. Every fetch
// carries the key it was issued for; a completion whose key no longer
// matches the current one is discarded on arrival. In-flight requests
// for abandoned keys are never cancelled, only ignored, so the newest
// completed response for the current key always wins.
type LedgerPager struct {
	mu      sync.Mutex
	source  ledger.TransactionReader
	key     PageKey
	keySet  bool
	loading bool
	page    core.TransactionPage
	loaded  bool
	err     error
}

func NewLedgerPager(source ledger.TransactionReader) *LedgerPager {
	return &LedgerPager{source: source}
}

// SetKey switches the pager to a new request key. The previous result is
// invalidated for presentation; nothing in flight is cancelled.
func (p *LedgerPager) SetKey(k PageKey) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.keySet && p.key == k {
		return
	}
	p.key = k
	p.keySet = true
	p.loaded = false
	p.err = nil
}

// Fetch issues a request for the current key and blocks until it
// completes. The result is applied only if the key is still current.
func (p *LedgerPager) Fetch(ctx context.Context) error {
	p.mu.Lock()
	if !p.keySet {
		p.mu.Unlock()
		return nil
	}
	k := p.key
	p.loading = true
	p.mu.Unlock()

	page, err := p.source.LedgerPage(ctx, k.query())
	p.apply(k, page, err)
	return err
}

// FetchAsync issues a request for the current key in the background.
// done, if non-nil, is closed after the response has been applied or
// discarded.
func (p *LedgerPager) FetchAsync(ctx context.Context, done chan<- struct{}) {
	p.mu.Lock()
	if !p.keySet {
		p.mu.Unlock()
		if done != nil {
			close(done)
		}
		return
	}
	k := p.key
	p.loading = true
	p.mu.Unlock()

	go func() {
		page, err := p.source.LedgerPage(ctx, k.query())
		p.apply(k, page, err)
		if done != nil {
			close(done)
		}
	}()
}

// apply records a completed response, unless its key has been abandoned
// in the meantime. Returns whether the response was kept.
func (p *LedgerPager) apply(k PageKey, page core.TransactionPage, err error) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.keySet || p.key != k {
		// Stale response for a superseded key.
		return false
	}
	p.loading = false
	if err != nil {
		p.err = err
		p.loaded = false
		return true
	}
	p.page = page
	p.loaded = true
	p.err = nil
	return true
}

// View returns the current snapshot. Loading is true until the first
// response for the current key arrives.
func (p *LedgerPager) View() PageView {
	p.mu.Lock()
	defer p.mu.Unlock()

	v := PageView{Key: p.key, Err: p.err}
	if p.loaded {
		v.Page = p.page
	}
	v.Loading = p.keySet && !p.loaded && p.err == nil
	return v
}
