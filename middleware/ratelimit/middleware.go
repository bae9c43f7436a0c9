package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/RealGoldAstro/roblox-playercount-proxy/middleware/ratelimit/application"
	"github.com/RealGoldAstro/roblox-playercount-proxy/middleware/ratelimit/domain"
)

type KeyFunc func(r *http.Request) string

type Options struct {
	Store               domain.AdmissionStore
	Stats               domain.StatsStore
	KeyFn               KeyFunc
	KeyHeader           string
	RejectStatus        int
	AddRateLimitHeaders bool
	// Now permite injetar relógio em teste. Default: time.Now.
	Now func() time.Time
}

type policyInfo interface {
	Policy() domain.Policy
}

func DefaultKeyFunc(keyHeader string) KeyFunc {
	return func(r *http.Request) string {
		if keyHeader != "" {
			if v := strings.TrimSpace(r.Header.Get(keyHeader)); v != "" {
				return v
			}
		}

		// pega o primeiro IP do X-Forwarded-For (cliente original)
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			parts := strings.Split(xff, ",")
			if len(parts) > 0 {
				ip := strings.TrimSpace(parts[0])
				if ip != "" {
					return ip
				}
			}
		}

		// fallback: RemoteAddr
		host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
		if err == nil && host != "" {
			return host
		}
		if r.RemoteAddr != "" {
			return r.RemoteAddr
		}
		return "unknown"
	}
}

func Middleware(opts Options) func(next http.Handler) http.Handler {
	if opts.RejectStatus == 0 {
		opts.RejectStatus = http.StatusTooManyRequests
	}
	if opts.KeyFn == nil {
		opts.KeyFn = DefaultKeyFunc(opts.KeyHeader)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	svc := application.Service{
		Store: opts.Store,
		Now:   opts.Now,
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := opts.KeyFn(r)

			if opts.AddRateLimitHeaders {
				w.Header().Set("X-RateLimit-Key", key)
				if pi, ok := opts.Store.(policyInfo); ok {
					p := pi.Policy()
					w.Header().Set("X-RateLimit-Limit", formatInt(p.MaxRequests))
					w.Header().Set("X-RateLimit-Window", formatSeconds(p.Window))
				}
			}

			adm := svc.Decide(domain.Key(key))
			if opts.Stats != nil {
				_ = opts.Stats.Record(r.Context(), domain.StatsEvent{
					Key:       domain.Key(key),
					Allowed:   adm.Allowed,
					Escalated: adm.Escalated,
					Method:    r.Method,
					Path:      r.URL.Path,
					At:        opts.Now(),
				})
			}
			if !adm.Allowed {
				w.Header().Set("Retry-After", formatSeconds(adm.RetryAfter))
				w.Header().Set("Content-Type", "application/json; charset=utf-8")
				w.WriteHeader(opts.RejectStatus)
				_, _ = w.Write([]byte(`{"error":"rate limit exceeded","retryAfter":` + formatSeconds(adm.RetryAfter) + `}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
