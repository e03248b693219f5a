package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-ConflictService/internal/api/handlers"
)

type contextKey string

const (
	userIDKey    contextKey = "userID"
	userIDHeader            = "X-User-ID"

	msgMissingUserID = "отсутствует или некорректен заголовок X-User-ID"
)

// Auth проверяет заголовок X-User-ID и кладет ID пользователя в контекст
// Аутентификацию выполняет API gateway, сервис только читает результат
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(userIDHeader)
		userID, err := strconv.ParseInt(raw, 10, 64)
		if raw == "" || err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userIDKey, userID)))
	})
}

// GetUserID достает ID пользователя, положенный Auth
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}
