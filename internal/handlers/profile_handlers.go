package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"neuronex/internal/handlers/dto"
	"neuronex/internal/logger"
	"neuronex/internal/middleware"
	"neuronex/internal/models"

	"go.uber.org/zap"
)

type ProfileHandler struct {
	users UserService
}

func NewProfileHandler(users UserService) ProfileHandler {
	return ProfileHandler{users: users}
}

func (h *ProfileHandler) PatchProfile(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	var request dto.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Warn("HTTP: ошибка чтения JSON", zap.Error(err))
		responseWithError(w, http.StatusBadRequest, "неверное тело запроса")
		return
	}

	userID, _ := middleware.GetUserID(r.Context())

	user, err := h.users.UpdateProfile(r.Context(), userID, request.Options()...)
	if err != nil {
		handleServiceError(w, err, "не удалось обновить профиль")
		return
	}

	logger.Info("HTTP_OUT: Профиль обновлён",
		zap.Int("user_id", user.ID),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithBody(w, http.StatusOK, dto.FromUser(user))
}

func (h *ProfileHandler) PostPreferences(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	var prefs models.Preferences
	if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
		logger.Warn("HTTP: ошибка чтения JSON", zap.Error(err))
		responseWithError(w, http.StatusBadRequest, "неверное тело запроса")
		return
	}

	userID, _ := middleware.GetUserID(r.Context())

	if err := h.users.UpdatePreferences(r.Context(), userID, prefs); err != nil {
		handleServiceError(w, err, "не удалось обновить настройки")
		return
	}

	logger.Info("HTTP_OUT: Настройки обновлены",
		zap.Int("user_id", userID),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, toPayload("message", "настройки сохранены"))
}
