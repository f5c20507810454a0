package handlers

import (
	"context"

	"neuronex/internal/ai"
	"neuronex/internal/models"
)

type UserService interface {
	Register(ctx context.Context, username, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (*models.User, error)
	GetByID(ctx context.Context, id int) (*models.User, error)
	UpdateProfile(ctx context.Context, id int, options ...models.UserOption) (*models.User, error)
	UpdatePreferences(ctx context.Context, id int, prefs models.Preferences) error
}

type TaskService interface {
	CreateTask(ctx context.Context, userID int, task *models.Task) (*models.Task, error)
	ListTasks(ctx context.Context, userID int) ([]*models.Task, error)
	GetTask(ctx context.Context, id, userID int) (*models.Task, error)
	UpdateTask(ctx context.Context, id, userID int, options ...models.TaskOption) (*models.Task, error)
	DeleteTask(ctx context.Context, id, userID int) error
}

type ProjectService interface {
	CreateProject(ctx context.Context, userID int, project *models.Project) (*models.Project, error)
	ListProjects(ctx context.Context, userID int) ([]*models.Project, error)
	GetProject(ctx context.Context, id, userID int) (*models.Project, error)
	UpdateProject(ctx context.Context, id, userID int, options ...models.ProjectOption) (*models.Project, error)
	DeleteProject(ctx context.Context, id, userID int) error
}

type Assistant interface {
	TaskPriorities(ctx context.Context, tasks []*models.Task, userContext string) ([]ai.TaskPriority, error)
	TimeManagement(ctx context.Context, tasks []*models.Task, prefs *models.Preferences) (*ai.TimeManagementAdvice, error)
	ImproveTask(ctx context.Context, description string) (string, error)
	TaskBreakdown(ctx context.Context, title, description string) ([]ai.Subtask, error)
}
