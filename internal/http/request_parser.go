package http

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// parseCardID reads the {cardID} path segment as a positive integer.
func parseCardID(r *http.Request) (int64, error) {
	raw := strings.TrimSpace(r.PathValue("cardID"))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid card id %q", raw)
	}
	return id, nil
}

// parsePage reads ?page= with a zero default. Pages are zero-based.
func parsePage(r *http.Request) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("page"))
	if raw == "" {
		return 0, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 0 {
		return 0, fmt.Errorf("invalid page %q", raw)
	}
	return page, nil
}

// parseSize reads ?size= falling back to the server default. Capped at
// 100 to bound a single query.
func parseSize(r *http.Request, defaultSize int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("size"))
	if raw == "" {
		return defaultSize, nil
	}
	size, err := strconv.Atoi(raw)
	if err != nil || size < 1 || size > 100 {
		return 0, fmt.Errorf("invalid page size %q", raw)
	}
	return size, nil
}

// parseDateBound reads an optional RFC 3339 query parameter. A missing
// parameter yields the zero time, which the repository treats as an
// open bound.
func parseDateBound(r *http.Request, name string) (time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s %q: expected RFC 3339", name, raw)
	}
	return t, nil
}

// clientIP extracts the client address, honoring proxy headers.
func clientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		if idx := strings.IndexByte(ip, ','); idx >= 0 {
			return strings.TrimSpace(ip[:idx])
		}
		return ip
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	return r.RemoteAddr
}
