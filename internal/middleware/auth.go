package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"neuronex/internal/auth"
	"neuronex/internal/logger"

	"go.uber.org/zap"
)

const SessionCookie = "session_id"

const UserIdKey contextKey = "user_id"

// Authenticate резолвит cookie через хранилище сессий на каждом запросе
// и кладёт id пользователя в контекст. Без валидной сессии - 401.
// Никакого глобального состояния: всё, что знают обработчики, лежит в контексте.
func Authenticate(sessions *auth.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookie)
			if err != nil {
				unauthorized(w, r)
				return
			}

			session, ok := sessions.Get(cookie.Value)
			if !ok {
				logger.Debug("Auth: Сессия не найдена или просрочена",
					zap.String("request_id", GetRequestID(r.Context())))
				unauthorized(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), UserIdKey, session.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]any{"message": "требуется авторизация"})
}

// GetUserID достаёт id пользователя, положенный Authenticate.
func GetUserID(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(UserIdKey).(int)
	return id, ok
}
