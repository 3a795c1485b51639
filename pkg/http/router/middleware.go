package router

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// EnforceJSONHandler rejects bodied requests that do not declare a json
// content type. GET requests (including the websocket upgrade) pass through.
func EnforceJSONHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost || r.Method == http.MethodPut {
			contentType := r.Header.Get("Content-Type")
			if !strings.HasPrefix(contentType, "application/json") {
				http.Error(w, "Content-Type header must be application/json", http.StatusUnsupportedMediaType)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func (api *API) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")
				api.log.Error("recovered from panic", zap.Any("panic", err))
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// RealIP rewrites RemoteAddr from the usual proxy headers so logging and
// rate limiting key on the client, not the proxy.
func RealIP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ip := r.Header.Get("X-Real-IP"); ip != "" {
			r.RemoteAddr = ip
		} else if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
			r.RemoteAddr = strings.TrimSpace(strings.Split(fwd, ",")[0])
		}
		next.ServeHTTP(w, r)
	})
}

func Heartbeat(endpoint string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet && strings.EqualFold(r.URL.Path, "/"+endpoint) {
				w.Header().Set("Content-Type", "text/plain")
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte("."))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func Logger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			log.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("remote", r.RemoteAddr),
				zap.Duration("took", time.Since(start)))
		})
	}
}

// per-client token buckets, pruned lazily
type rateLimiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

var (
	rateMu       sync.Mutex
	rateLimiters = make(map[string]*rateLimiterEntry)
)

// Limit applies a per-IP token bucket: 10 req/s with bursts of 20.
func Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		rateMu.Lock()
		entry, ok := rateLimiters[ip]
		if !ok {
			entry = &rateLimiterEntry{limiter: rate.NewLimiter(10, 20)}
			rateLimiters[ip] = entry
		}
		entry.lastSeen = time.Now()
		for key, e := range rateLimiters {
			if time.Since(e.lastSeen) > 3*time.Minute {
				delete(rateLimiters, key)
			}
		}
		allowed := entry.limiter.Allow()
		rateMu.Unlock()

		if !allowed {
			http.Error(w, fmt.Sprintf("rate limit exceeded for %s", ip), http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
