package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"neuronex/internal/handlers/dto"
	"neuronex/internal/logger"
	"neuronex/internal/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ProjectHandler struct {
	projects ProjectService
}

func NewProjectHandler(projects ProjectService) ProjectHandler {
	return ProjectHandler{projects: projects}
}

func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	userID, _ := middleware.GetUserID(r.Context())

	projects, err := h.projects.ListProjects(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err, "не удалось получить проекты")
		return
	}

	logger.Info("HTTP_OUT: Проекты получены",
		zap.Int("count", len(projects)),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithBody(w, http.StatusOK, projects)
}

func (h *ProjectHandler) PostProject(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	if !checkContentType(r, "application/json") {
		logger.Warn("HTTP: Неверный тип контента",
			zap.String("received", r.Header.Get("Content-Type")))
		responseWithError(w, http.StatusUnsupportedMediaType, "Content-Type должен быть application/json")
		return
	}

	var request dto.CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Warn("HTTP: ошибка чтения JSON", zap.Error(err))
		responseWithError(w, http.StatusBadRequest, "неверное тело запроса")
		return
	}

	userID, _ := middleware.GetUserID(r.Context())

	project, err := h.projects.CreateProject(r.Context(), userID, request.ToProject())
	if err != nil {
		handleServiceError(w, err, "не удалось создать проект")
		return
	}

	logger.Info("HTTP_OUT: Проект создан",
		zap.Int("project_id", project.ID),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusCreated))

	responseWithBody(w, http.StatusCreated, project)
}

func (h *ProjectHandler) GetProjectByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := idParam(r)
	if !ok {
		logger.Warn("HTTP: Неверное значение id", zap.String("id", chi.URLParam(r, "id")))
		responseWithError(w, http.StatusBadRequest, "неверный id проекта")
		return
	}

	userID, _ := middleware.GetUserID(r.Context())

	project, err := h.projects.GetProject(r.Context(), id, userID)
	if err != nil {
		handleServiceError(w, err, "не удалось получить проект")
		return
	}

	logger.Info("HTTP_OUT: Проект получен",
		zap.Int("project_id", project.ID),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithBody(w, http.StatusOK, project)
}

func (h *ProjectHandler) PatchProjectByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := idParam(r)
	if !ok {
		logger.Warn("HTTP: Неверное значение id", zap.String("id", chi.URLParam(r, "id")))
		responseWithError(w, http.StatusBadRequest, "неверный id проекта")
		return
	}

	var request dto.UpdateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Warn("HTTP: ошибка чтения JSON", zap.Error(err))
		responseWithError(w, http.StatusBadRequest, "неверное тело запроса")
		return
	}
	defer r.Body.Close()

	userID, _ := middleware.GetUserID(r.Context())

	project, err := h.projects.UpdateProject(r.Context(), id, userID, request.Options()...)
	if err != nil {
		handleServiceError(w, err, "не удалось обновить проект")
		return
	}

	logger.Info("HTTP_OUT: Проект обновлён",
		zap.Int("project_id", project.ID),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithBody(w, http.StatusOK, project)
}

func (h *ProjectHandler) DeleteProjectByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := idParam(r)
	if !ok {
		logger.Warn("HTTP: Неверное значение id", zap.String("id", chi.URLParam(r, "id")))
		responseWithError(w, http.StatusBadRequest, "неверный id проекта")
		return
	}

	userID, _ := middleware.GetUserID(r.Context())

	if err := h.projects.DeleteProject(r.Context(), id, userID); err != nil {
		handleServiceError(w, err, "не удалось удалить проект")
		return
	}

	logger.Info("HTTP_OUT: Проект удалён",
		zap.Int("project_id", id),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusNoContent))

	w.WriteHeader(http.StatusNoContent)
}
