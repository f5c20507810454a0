package service

import (
	"context"
	"errors"
	"fmt"

	"neuronex/internal/logger"
	"neuronex/internal/models"
	rep "neuronex/internal/repository"

	"go.uber.org/zap"
)

type ProjectService struct {
	projects rep.ProjectRepository
	tasks    rep.TaskRepository
}

func NewProjectService(projects rep.ProjectRepository, tasks rep.TaskRepository) ProjectService {
	return ProjectService{
		projects: projects,
		tasks:    tasks,
	}
}

func (s *ProjectService) CreateProject(ctx context.Context, userID int, project *models.Project) (*models.Project, error) {
	if project.Name == "" {
		return nil, NewBusinessError(CodeValidation, "название проекта обязательно",
			ToDetail("field", "name"))
	}

	if project.Status == "" {
		project.Status = models.ProjectStatusActive
	}
	if !project.Status.Valid() {
		return nil, NewBusinessError(CodeValidation, "недопустимый статус проекта",
			ToDetail("field", "status"),
			ToDetail("received", string(project.Status)))
	}

	if project.Progress < 0 || project.Progress > 100 {
		return nil, NewBusinessError(CodeValidation, "прогресс должен быть в пределах 0-100",
			ToDetail("field", "progress"))
	}

	project.UserID = userID

	if err := s.projects.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("создание проекта: %w", err)
	}
	return project, nil
}

func (s *ProjectService) ListProjects(ctx context.Context, userID int) ([]*models.Project, error) {
	projects, err := s.projects.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("получение проектов: %w", err)
	}
	return projects, nil
}

func (s *ProjectService) getOwned(ctx context.Context, id, userID int) (*models.Project, error) {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			logger.Info("Service: Проект не найден", zap.Int("project_id", id))
			return nil, NewBusinessError(CodeNotFound, "проект не найден")
		}
		return nil, fmt.Errorf("получение проекта: %w", err)
	}

	if project.UserID != userID {
		logger.Warn("Service: Попытка доступа к чужому проекту",
			zap.Int("project_id", id),
			zap.Int("owner_id", project.UserID),
			zap.Int("caller_id", userID))
		return nil, NewBusinessError(CodeAccessDenied, "доступ запрещён")
	}

	return project, nil
}

func (s *ProjectService) GetProject(ctx context.Context, id, userID int) (*models.Project, error) {
	return s.getOwned(ctx, id, userID)
}

func (s *ProjectService) UpdateProject(ctx context.Context, id, userID int, options ...models.ProjectOption) (*models.Project, error) {
	project, err := s.getOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	for _, opt := range options {
		if opt != nil {
			opt(project)
		}
	}

	if !project.Status.Valid() {
		return nil, NewBusinessError(CodeValidation, "недопустимый статус проекта",
			ToDetail("field", "status"))
	}

	if err := s.projects.Update(ctx, project); err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			return nil, NewBusinessError(CodeNotFound, "проект не найден")
		}
		return nil, fmt.Errorf("обновление проекта: %w", err)
	}
	return project, nil
}

// DeleteProject удаляет проект и отвязывает ссылающиеся на него задачи,
// сами задачи живут дальше без проекта.
func (s *ProjectService) DeleteProject(ctx context.Context, id, userID int) error {
	if _, err := s.getOwned(ctx, id, userID); err != nil {
		return err
	}

	if err := s.projects.Delete(ctx, id); err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			return NewBusinessError(CodeNotFound, "проект не найден")
		}
		return fmt.Errorf("удаление проекта: %w", err)
	}

	if err := s.tasks.DetachProject(ctx, id); err != nil {
		return fmt.Errorf("отвязка задач от проекта: %w", err)
	}
	return nil
}
