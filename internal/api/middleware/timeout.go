package middleware

import (
	"context"
	"net/http"
	"time"
)

// Timeout задает дедлайн каждому запросу. Use case'ы проверяют ctx
// и возвращают "результат неизвестен", если дедлайн истек во время записи.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
