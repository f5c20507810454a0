package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"neuronex/internal/handlers/dto"
	"neuronex/internal/logger"
	"neuronex/internal/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type TaskHandler struct {
	tasks TaskService
}

func NewTaskHandler(tasks TaskService) TaskHandler {
	return TaskHandler{tasks: tasks}
}

func idParam(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	userID, _ := middleware.GetUserID(r.Context())

	tasks, err := h.tasks.ListTasks(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err, "не удалось получить задачи")
		return
	}

	logger.Info("HTTP_OUT: Задачи получены",
		zap.Int("count", len(tasks)),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithBody(w, http.StatusOK, tasks)
}

func (h *TaskHandler) PostTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	if !checkContentType(r, "application/json") {
		logger.Warn("HTTP: Неверный тип контента",
			zap.String("received", r.Header.Get("Content-Type")))
		responseWithError(w, http.StatusUnsupportedMediaType, "Content-Type должен быть application/json")
		return
	}

	var request dto.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Warn("HTTP: ошибка чтения JSON", zap.Error(err))
		responseWithError(w, http.StatusBadRequest, "неверное тело запроса")
		return
	}

	userID, _ := middleware.GetUserID(r.Context())

	task, err := h.tasks.CreateTask(r.Context(), userID, request.ToTask())
	if err != nil {
		handleServiceError(w, err, "не удалось создать задачу")
		return
	}

	logger.Info("HTTP_OUT: Задача создана",
		zap.Int("task_id", task.ID),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusCreated))

	responseWithBody(w, http.StatusCreated, task)
}

func (h *TaskHandler) GetTaskByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := idParam(r)
	if !ok {
		logger.Warn("HTTP: Неверное значение id", zap.String("id", chi.URLParam(r, "id")))
		responseWithError(w, http.StatusBadRequest, "неверный id задачи")
		return
	}

	userID, _ := middleware.GetUserID(r.Context())

	task, err := h.tasks.GetTask(r.Context(), id, userID)
	if err != nil {
		handleServiceError(w, err, "не удалось получить задачу")
		return
	}

	logger.Info("HTTP_OUT: Задача получена",
		zap.Int("task_id", task.ID),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithBody(w, http.StatusOK, task)
}

func (h *TaskHandler) PatchTaskByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := idParam(r)
	if !ok {
		logger.Warn("HTTP: Неверное значение id", zap.String("id", chi.URLParam(r, "id")))
		responseWithError(w, http.StatusBadRequest, "неверный id задачи")
		return
	}

	var request dto.UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Warn("HTTP: ошибка чтения JSON", zap.Error(err))
		responseWithError(w, http.StatusBadRequest, "неверное тело запроса")
		return
	}
	defer r.Body.Close()

	userID, _ := middleware.GetUserID(r.Context())

	task, err := h.tasks.UpdateTask(r.Context(), id, userID, request.Options()...)
	if err != nil {
		handleServiceError(w, err, "не удалось обновить задачу")
		return
	}

	logger.Info("HTTP_OUT: Задача обновлена",
		zap.Int("task_id", task.ID),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithBody(w, http.StatusOK, task)
}

func (h *TaskHandler) DeleteTaskByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := idParam(r)
	if !ok {
		logger.Warn("HTTP: Неверное значение id", zap.String("id", chi.URLParam(r, "id")))
		responseWithError(w, http.StatusBadRequest, "неверный id задачи")
		return
	}

	userID, _ := middleware.GetUserID(r.Context())

	if err := h.tasks.DeleteTask(r.Context(), id, userID); err != nil {
		handleServiceError(w, err, "не удалось удалить задачу")
		return
	}

	logger.Info("HTTP_OUT: Задача удалена",
		zap.Int("task_id", id),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusNoContent))

	w.WriteHeader(http.StatusNoContent)
}
