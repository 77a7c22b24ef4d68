// Package http serves the dashboard JSON API: card listing, the paged
// ledger, balance-history reconstruction, and the transfer endpoint.
package http

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"carddash/internal/cache"
	"carddash/internal/core"
	"carddash/internal/dashboard"
	"carddash/internal/ledger"
	applog "carddash/internal/log"
	"carddash/internal/middleware/trace"
)

// Store combines the ledger ports the API serves from. The SQLite
// repository satisfies it.
type Store interface {
	ledger.AccountReader
	ledger.AccountWriter
	ledger.TransactionReader
	ledger.MonthReader
	ledger.Transferer
}

// TransferPublisher announces recorded transfers to the export worker.
type TransferPublisher interface {
	PublishTransferRecorded(ctx context.Context, transactionID int64, code string) error
}

// Options tunes the server. Zero values fall back to defaults.
type Options struct {
	Location        *time.Location
	DefaultPageSize int
	CacheSize       int
	CacheTTL        time.Duration
	RatePerMinute   int
}

func (o Options) withDefaults() Options {
	if o.Location == nil {
		o.Location = time.UTC
	}
	if o.DefaultPageSize < 1 {
		o.DefaultPageSize = 20
	}
	if o.CacheSize < 1 {
		o.CacheSize = 256
	}
	if o.CacheTTL <= 0 {
		o.CacheTTL = time.Minute
	}
	if o.RatePerMinute < 1 {
		o.RatePerMinute = 60
	}
	return o
}

type Server struct {
	http.Server

	store     Store
	history   *dashboard.HistoryService
	publisher TransferPublisher

	rateLimiter *rateLimiter

	// History and pages cache separately: a history entry is one month
	// snapshot per account, a page entry is one (account, page, size,
	// range) tuple. A transfer invalidates both sides it touched.
	historyCache *cache.LRUCache[dashboard.HistoryReport]
	pageCache    *cache.LRUCache[core.TransactionPage]
	cacheManager *cache.Manager

	opts         Options
	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run
// server. The publisher may be nil; transfers then skip the export
// announcement.
func NewServer(addr string, store Store, history *dashboard.HistoryService, publisher TransferPublisher, logger *applog.Logger, opts Options) *Server {
	opts = opts.withDefaults()

	mux := http.NewServeMux()

	s := &Server{
		store:        store,
		history:      history,
		publisher:    publisher,
		rateLimiter:  newRateLimiter(opts.RatePerMinute),
		historyCache: cache.NewLRUCache[dashboard.HistoryReport](opts.CacheSize, opts.CacheTTL),
		pageCache:    cache.NewLRUCache[core.TransactionPage](opts.CacheSize, opts.CacheTTL),
		cacheManager: cache.NewManager(),
		opts:         opts,
	}

	s.cacheManager.Register(s.historyCache)
	s.cacheManager.Register(s.pageCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	mux.HandleFunc("GET /health", handleHealth)
	mux.HandleFunc("GET /ready", handleReady)
	mux.HandleFunc("GET /cards", s.withSecurity(s.handleListCards))
	mux.HandleFunc("POST /cards", s.withSecurity(s.handleCreateCard))
	mux.HandleFunc("GET /transactions/thisMonth/{cardID}", s.withSecurity(s.handleMonthTransactions))
	mux.HandleFunc("GET /transactions/{cardID}", s.withSecurity(s.handleLedgerPage))
	mux.HandleFunc("GET /dashboard/balanceHistory/{cardID}", s.withSecurity(s.handleBalanceHistory))
	mux.HandleFunc("POST /transfer", s.withSecurity(s.handleTransfer))

	traceMW := trace.NewMiddleware(clientIP, applog.NewAccessLogger(logger))
	loggerMW := applog.Middleware(logger)

	s.Server = http.Server{
		Addr:    addr,
		Handler: loggerMW(traceMW.Middleware(mux)),
	}

	return s
}

// withSecurity applies security headers and rate limiting to handlers.
// Only writes are rate limited; reads are cached and cheap.
func (s *Server) withSecurity(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && !s.rateLimiter.allow(clientIP(r)) {
			logger := applog.FromContext(r.Context())
			logger.WarnContext(r.Context(), "Rate limit exceeded",
				applog.FieldClientIP, clientIP(r),
				applog.FieldMethod, r.Method,
				applog.FieldPath, r.URL.Path)
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded, try again later")
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "default-src 'none'")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		next(w, r)
	}
}

// Shutdown stops the HTTP server and the background cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		s.rateLimiter.stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func historyCacheKey(accountID int64) string {
	return fmt.Sprintf("history:%d", accountID)
}

func pageCachePrefix(accountID int64) string {
	return fmt.Sprintf("pages:%d:", accountID)
}

func pageCacheKey(q ledger.PageQuery) string {
	return fmt.Sprintf("pages:%d:%d:%d:%d:%d",
		q.AccountID, q.Page, q.PageSize,
		q.LowerBound.UnixNano(), q.UpperBound.UnixNano())
}

// invalidateAccount drops every cached view of the account after its
// balance changed.
func (s *Server) invalidateAccount(accountID int64) {
	s.historyCache.Delete(historyCacheKey(accountID))
	s.pageCache.DeletePrefix(pageCachePrefix(accountID))
}
