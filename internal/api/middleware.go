// Файл: internal/api/middleware.go
package api

import (
	"crypto/subtle"
	"net/http"
)

// AuthMiddleware проверяет заголовок X-Api-Key по общему секрету.
// Сравнение постоянно по времени.
func AuthMiddleware(secretKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secretKey == "" {
				http.Error(w, "Unauthorized: API is not configured", http.StatusUnauthorized)
				return
			}

			key := r.Header.Get("X-Api-Key")
			if subtle.ConstantTimeCompare([]byte(key), []byte(secretKey)) != 1 {
				http.Error(w, "Unauthorized: Invalid API key", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
