package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"neuronex/internal/auth"
	"neuronex/internal/handlers/dto"
	"neuronex/internal/logger"
	"neuronex/internal/middleware"

	"go.uber.org/zap"
)

type AuthHandler struct {
	users        UserService
	sessions     *auth.SessionManager
	secureCookie bool
}

func NewAuthHandler(users UserService, sessions *auth.SessionManager, secureCookie bool) AuthHandler {
	return AuthHandler{
		users:        users,
		sessions:     sessions,
		secureCookie: secureCookie,
	}
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, session *auth.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		MaxAge:   int(time.Until(session.ExpiresAt).Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

// Register создаёт пользователя и сразу открывает сессию, как логин.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	var request dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Warn("HTTP: ошибка чтения JSON", zap.Error(err))
		responseWithError(w, http.StatusBadRequest, "неверное тело запроса")
		return
	}

	if request.Username == "" || request.Password == "" {
		logger.Warn("HTTP: Ошибка валидации",
			zap.String("error", "empty_credentials"))
		responseWithError(w, http.StatusBadRequest, "имя пользователя и пароль обязательны")
		return
	}

	user, err := h.users.Register(r.Context(), request.Username, request.Password)
	if err != nil {
		handleServiceError(w, err, "не удалось зарегистрировать пользователя")
		return
	}

	session, err := h.sessions.Create(user.ID)
	if err != nil {
		logger.Error("HTTP: Не удалось создать сессию", err)
		responseWithError(w, http.StatusInternalServerError, "не удалось создать сессию")
		return
	}
	h.setSessionCookie(w, session)

	logger.Info("HTTP_OUT: Пользователь зарегистрирован",
		zap.Int("user_id", user.ID),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusCreated))

	responseWithBody(w, http.StatusCreated, dto.FromUser(user))
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	var request dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Warn("HTTP: ошибка чтения JSON", zap.Error(err))
		responseWithError(w, http.StatusBadRequest, "неверное тело запроса")
		return
	}

	user, err := h.users.Login(r.Context(), request.Username, request.Password)
	if err != nil {
		handleServiceError(w, err, "не удалось выполнить вход")
		return
	}

	session, err := h.sessions.Create(user.ID)
	if err != nil {
		logger.Error("HTTP: Не удалось создать сессию", err)
		responseWithError(w, http.StatusInternalServerError, "не удалось создать сессию")
		return
	}
	h.setSessionCookie(w, session)

	logger.Info("HTTP_OUT: Вход выполнен",
		zap.Int("user_id", user.ID),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithBody(w, http.StatusOK, dto.FromUser(user))
}

// Logout гасит сессию; повторный вызов без cookie тоже отвечает 200.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	if cookie, err := r.Cookie(middleware.SessionCookie); err == nil {
		h.sessions.Delete(cookie.Value)
	}
	h.clearSessionCookie(w)

	responseWithJSON(w, http.StatusOK, toPayload("message", "выход выполнен"))
}

func (h *AuthHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		responseWithError(w, http.StatusUnauthorized, "требуется авторизация")
		return
	}

	user, err := h.users.GetByID(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err, "не удалось получить пользователя")
		return
	}

	responseWithBody(w, http.StatusOK, dto.FromUser(user))
}
