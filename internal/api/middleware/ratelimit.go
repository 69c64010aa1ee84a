package middleware

import (
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/glowbeauty/salon-booking-service/internal/api/handlers"
)

// rateLimitScript атомарный INCR с установкой TTL на первом инкременте
var rateLimitScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

// Logger интерфейс логгера для middleware
type Logger interface {
	Warn(format string, v ...interface{})
}

// RateLimit ограничивает частоту запросов с одного IP в фиксированном окне.
// Состояние хранится в Redis, лимит общий для всех инстансов сервиса.
// При недоступности Redis запросы пропускаются — лимитер не должен
// ронять публичную витрину.
func RateLimit(rdb *redis.Client, limit int, window time.Duration, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if rdb == nil || limit <= 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := "ratelimit:" + clientIP(r)

			count, err := rateLimitScript.Run(r.Context(), rdb, []string{key}, window.Milliseconds()).Int64()
			if err != nil {
				logger.Warn("RateLimit: redis unavailable, passing request through: %v", err)
				next.ServeHTTP(w, r)
				return
			}

			if count > int64(limit) {
				handlers.RespondError(w, http.StatusTooManyRequests, handlers.CodeRateLimited, "too many requests")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP определяет IP клиента с учетом прокси
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
