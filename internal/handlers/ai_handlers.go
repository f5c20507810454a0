package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"neuronex/internal/handlers/dto"
	"neuronex/internal/logger"
	"neuronex/internal/middleware"

	"go.uber.org/zap"
)

// AIHandler гоняет задачи вызывающего через внешнюю модель.
// Задачи всегда берутся из хранилища по сессии, а не из тела запроса,
// чтобы нельзя было скормить модели чужие данные.
type AIHandler struct {
	assistant Assistant
	tasks     TaskService
}

func NewAIHandler(assistant Assistant, tasks TaskService) AIHandler {
	return AIHandler{
		assistant: assistant,
		tasks:     tasks,
	}
}

func (h *AIHandler) TaskPriorities(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	var request dto.TaskPrioritiesRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			logger.Warn("HTTP: ошибка чтения JSON", zap.Error(err))
			responseWithError(w, http.StatusBadRequest, "неверное тело запроса")
			return
		}
	}

	userID, _ := middleware.GetUserID(r.Context())

	tasks, err := h.tasks.ListTasks(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err, "не удалось получить задачи")
		return
	}

	priorities, err := h.assistant.TaskPriorities(r.Context(), tasks, request.UserContext)
	if err != nil {
		handleServiceError(w, err, "не удалось получить приоритеты задач")
		return
	}

	logger.Info("HTTP_OUT: Приоритеты получены",
		zap.Int("count", len(priorities)),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, toPayload("prioritizedTasks", priorities))
}

func (h *AIHandler) TimeManagement(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	var request dto.TimeManagementRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			logger.Warn("HTTP: ошибка чтения JSON", zap.Error(err))
			responseWithError(w, http.StatusBadRequest, "неверное тело запроса")
			return
		}
	}

	userID, _ := middleware.GetUserID(r.Context())

	tasks, err := h.tasks.ListTasks(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err, "не удалось получить задачи")
		return
	}

	advice, err := h.assistant.TimeManagement(r.Context(), tasks, request.Preferences)
	if err != nil {
		handleServiceError(w, err, "не удалось получить рекомендации")
		return
	}

	logger.Info("HTTP_OUT: Рекомендации получены",
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithBody(w, http.StatusOK, advice)
}

func (h *AIHandler) ImproveTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	var request dto.ImproveTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Warn("HTTP: ошибка чтения JSON", zap.Error(err))
		responseWithError(w, http.StatusBadRequest, "неверное тело запроса")
		return
	}

	if request.TaskDescription == "" {
		logger.Warn("HTTP: Ошибка валидации",
			zap.String("field", "taskDescription"),
			zap.String("error", "empty_field"))
		responseWithError(w, http.StatusBadRequest, "описание задачи не может быть пустым")
		return
	}

	improved, err := h.assistant.ImproveTask(r.Context(), request.TaskDescription)
	if err != nil {
		handleServiceError(w, err, "не удалось улучшить описание задачи")
		return
	}

	logger.Info("HTTP_OUT: Описание улучшено",
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, toPayload("improvedDescription", improved))
}

func (h *AIHandler) TaskBreakdown(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	var request dto.TaskBreakdownRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Warn("HTTP: ошибка чтения JSON", zap.Error(err))
		responseWithError(w, http.StatusBadRequest, "неверное тело запроса")
		return
	}

	if request.TaskTitle == "" {
		logger.Warn("HTTP: Ошибка валидации",
			zap.String("field", "taskTitle"),
			zap.String("error", "empty_field"))
		responseWithError(w, http.StatusBadRequest, "название задачи не может быть пустым")
		return
	}

	subtasks, err := h.assistant.TaskBreakdown(r.Context(), request.TaskTitle, request.TaskDescription)
	if err != nil {
		handleServiceError(w, err, "не удалось разбить задачу на подзадачи")
		return
	}

	logger.Info("HTTP_OUT: Задача разбита на подзадачи",
		zap.Int("count", len(subtasks)),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, toPayload("subtasks", subtasks))
}
