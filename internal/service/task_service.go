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

type TaskService struct {
	tasks rep.TaskRepository
}

func NewTaskService(tasks rep.TaskRepository) TaskService {
	return TaskService{tasks: tasks}
}

// CreateTask всегда пишет владельца из сессии, userId из тела клиента
// сюда не попадает вообще.
func (s *TaskService) CreateTask(ctx context.Context, userID int, task *models.Task) (*models.Task, error) {
	if task.Title == "" {
		return nil, NewBusinessError(CodeValidation, "название задачи обязательно",
			ToDetail("field", "title"))
	}

	if task.Status == "" {
		task.Status = models.StatusTodo
	}
	if !task.Status.Valid() {
		return nil, NewBusinessError(CodeValidation, "недопустимый статус задачи",
			ToDetail("field", "status"),
			ToDetail("received", string(task.Status)))
	}

	if task.Priority == "" {
		task.Priority = models.PriorityMedium
	}
	if !task.Priority.Valid() {
		return nil, NewBusinessError(CodeValidation, "недопустимый приоритет задачи",
			ToDetail("field", "priority"),
			ToDetail("received", string(task.Priority)))
	}

	task.UserID = userID
	task.Completed = task.Status == models.StatusCompleted

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("создание задачи: %w", err)
	}
	return task, nil
}

func (s *TaskService) ListTasks(ctx context.Context, userID int) ([]*models.Task, error) {
	tasks, err := s.tasks.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("получение задач: %w", err)
	}
	return tasks, nil
}

// getOwned - единая точка проверки владельца: 404 если задачи нет,
// 403 если она чужая. Раньше эта проверка была размазана по шести роутам.
func (s *TaskService) getOwned(ctx context.Context, id, userID int) (*models.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			logger.Info("Service: Задача не найдена", zap.Int("task_id", id))
			return nil, NewBusinessError(CodeNotFound, "задача не найдена")
		}
		return nil, fmt.Errorf("получение задачи: %w", err)
	}

	if task.UserID != userID {
		logger.Warn("Service: Попытка доступа к чужой задаче",
			zap.Int("task_id", id),
			zap.Int("owner_id", task.UserID),
			zap.Int("caller_id", userID))
		return nil, NewBusinessError(CodeAccessDenied, "доступ запрещён")
	}

	return task, nil
}

func (s *TaskService) GetTask(ctx context.Context, id, userID int) (*models.Task, error) {
	return s.getOwned(ctx, id, userID)
}

func (s *TaskService) UpdateTask(ctx context.Context, id, userID int, options ...models.TaskOption) (*models.Task, error) {
	task, err := s.getOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	for _, opt := range options {
		if opt != nil {
			opt(task)
		}
	}

	if !task.Status.Valid() {
		return nil, NewBusinessError(CodeValidation, "недопустимый статус задачи",
			ToDetail("field", "status"))
	}
	if !task.Priority.Valid() {
		return nil, NewBusinessError(CodeValidation, "недопустимый приоритет задачи",
			ToDetail("field", "priority"))
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			return nil, NewBusinessError(CodeNotFound, "задача не найдена")
		}
		return nil, fmt.Errorf("обновление задачи: %w", err)
	}
	return task, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, id, userID int) error {
	if _, err := s.getOwned(ctx, id, userID); err != nil {
		return err
	}

	if err := s.tasks.Delete(ctx, id); err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			return NewBusinessError(CodeNotFound, "задача не найдена")
		}
		return fmt.Errorf("удаление задачи: %w", err)
	}
	return nil
}
