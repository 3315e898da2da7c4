package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// ServiceToken защищает внутренние эндпоинты (чекаут, фулфилмент, возвраты)
// статическим токеном сервиса. Пользовательская аутентификация здесь
// не применима - вызовы приходят от соседних сервисов продукта.
func ServiceToken(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			if subtle.ConstantTimeCompare([]byte(parts[1]), []byte(token)) != 1 {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
