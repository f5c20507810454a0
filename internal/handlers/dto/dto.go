package dto

import (
	"time"

	"neuronex/internal/models"
)

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserResponse - пользователь без пароля. Поле пароля здесь отсутствует
// структурно, а не вычищается перед сериализацией.
type UserResponse struct {
	ID           int                 `json:"id"`
	Username     string              `json:"username"`
	ProfileImage *string             `json:"profileImage,omitempty"`
	FirstName    *string             `json:"firstName,omitempty"`
	LastName     *string             `json:"lastName,omitempty"`
	Email        *string             `json:"email,omitempty"`
	Bio          *string             `json:"bio,omitempty"`
	JobTitle     *string             `json:"jobTitle,omitempty"`
	Organization *string             `json:"organization,omitempty"`
	Preferences  *models.Preferences `json:"preferences,omitempty"`
	CreatedAt    time.Time           `json:"createdAt"`
}

func FromUser(u *models.User) UserResponse {
	return UserResponse{
		ID:           u.ID,
		Username:     u.Username,
		ProfileImage: u.ProfileImage,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Email:        u.Email,
		Bio:          u.Bio,
		JobTitle:     u.JobTitle,
		Organization: u.Organization,
		Preferences:  u.Preferences,
		CreatedAt:    u.CreatedAt,
	}
}

// у запросов на создание нет поля userId - владельца назначает сервер

type CreateTaskRequest struct {
	Title       string           `json:"title"`
	Description *string          `json:"description,omitempty"`
	Status      models.Status    `json:"status,omitempty"`
	Priority    models.Priority  `json:"priority,omitempty"`
	Category    *string          `json:"category,omitempty"`
	DueDate     *string          `json:"dueDate,omitempty"`
	ProjectID   *int             `json:"projectId,omitempty"`
	Assignees   []int            `json:"assignees,omitempty"`
}

func (r *CreateTaskRequest) ToTask() *models.Task {
	return &models.Task{
		Title:       r.Title,
		Description: r.Description,
		Status:      r.Status,
		Priority:    r.Priority,
		Category:    r.Category,
		DueDate:     r.DueDate,
		ProjectID:   r.ProjectID,
		Assignees:   r.Assignees,
	}
}

type UpdateTaskRequest struct {
	Title       *string          `json:"title,omitempty"`
	Description *string          `json:"description,omitempty"`
	Status      *models.Status   `json:"status,omitempty"`
	Priority    *models.Priority `json:"priority,omitempty"`
	Category    *string          `json:"category,omitempty"`
	DueDate     *string          `json:"dueDate,omitempty"`
	ProjectID   *int             `json:"projectId,omitempty"`
	Assignees   []int            `json:"assignees,omitempty"`
	Completed   *bool            `json:"completed,omitempty"`
}

// Options собирает опции только для переданных полей, PATCH остаётся частичным.
func (r *UpdateTaskRequest) Options() []models.TaskOption {
	options := []models.TaskOption{}
	if r.Title != nil {
		options = append(options, models.WithTitle(*r.Title))
	}
	if r.Description != nil {
		options = append(options, models.WithDescription(*r.Description))
	}
	if r.Status != nil {
		options = append(options, models.WithStatus(*r.Status))
	}
	if r.Priority != nil {
		options = append(options, models.WithPriority(*r.Priority))
	}
	if r.Category != nil {
		options = append(options, models.WithCategory(*r.Category))
	}
	if r.DueDate != nil {
		options = append(options, models.WithDueDate(*r.DueDate))
	}
	if r.ProjectID != nil {
		options = append(options, models.WithProject(*r.ProjectID))
	}
	if r.Assignees != nil {
		options = append(options, models.WithAssignees(r.Assignees))
	}
	if r.Completed != nil {
		options = append(options, models.WithCompleted(*r.Completed))
	}
	return options
}

type CreateProjectRequest struct {
	Name        string               `json:"name"`
	Description *string              `json:"description,omitempty"`
	Status      models.ProjectStatus `json:"status,omitempty"`
	Progress    int                  `json:"progress,omitempty"`
	DueDate     *string              `json:"dueDate,omitempty"`
	Members     []int                `json:"members,omitempty"`
}

func (r *CreateProjectRequest) ToProject() *models.Project {
	return &models.Project{
		Name:        r.Name,
		Description: r.Description,
		Status:      r.Status,
		Progress:    r.Progress,
		DueDate:     r.DueDate,
		Members:     r.Members,
	}
}

type UpdateProjectRequest struct {
	Name        *string               `json:"name,omitempty"`
	Description *string               `json:"description,omitempty"`
	Status      *models.ProjectStatus `json:"status,omitempty"`
	Progress    *int                  `json:"progress,omitempty"`
	DueDate     *string               `json:"dueDate,omitempty"`
	Members     []int                 `json:"members,omitempty"`
}

func (r *UpdateProjectRequest) Options() []models.ProjectOption {
	options := []models.ProjectOption{}
	if r.Name != nil {
		options = append(options, models.WithProjectName(*r.Name))
	}
	if r.Description != nil {
		options = append(options, models.WithProjectDescription(*r.Description))
	}
	if r.Status != nil {
		options = append(options, models.WithProjectStatus(*r.Status))
	}
	if r.Progress != nil {
		options = append(options, models.WithProgress(*r.Progress))
	}
	if r.DueDate != nil {
		options = append(options, models.WithProjectDueDate(*r.DueDate))
	}
	if r.Members != nil {
		options = append(options, models.WithMembers(r.Members))
	}
	return options
}

type UpdateProfileRequest struct {
	ProfileImage *string `json:"profileImage,omitempty"`
	FirstName    *string `json:"firstName,omitempty"`
	LastName     *string `json:"lastName,omitempty"`
	Email        *string `json:"email,omitempty"`
	Bio          *string `json:"bio,omitempty"`
	JobTitle     *string `json:"jobTitle,omitempty"`
	Organization *string `json:"organization,omitempty"`
}

func (r *UpdateProfileRequest) Options() []models.UserOption {
	options := []models.UserOption{}
	if r.ProfileImage != nil {
		options = append(options, models.WithProfileImage(*r.ProfileImage))
	}
	if r.FirstName != nil {
		options = append(options, models.WithFirstName(*r.FirstName))
	}
	if r.LastName != nil {
		options = append(options, models.WithLastName(*r.LastName))
	}
	if r.Email != nil {
		options = append(options, models.WithEmail(*r.Email))
	}
	if r.Bio != nil {
		options = append(options, models.WithBio(*r.Bio))
	}
	if r.JobTitle != nil {
		options = append(options, models.WithJobTitle(*r.JobTitle))
	}
	if r.Organization != nil {
		options = append(options, models.WithOrganization(*r.Organization))
	}
	return options
}

type TaskPrioritiesRequest struct {
	UserContext string `json:"userContext,omitempty"`
}

type TimeManagementRequest struct {
	Preferences *models.Preferences `json:"preferences,omitempty"`
}

type ImproveTaskRequest struct {
	TaskDescription string `json:"taskDescription"`
}

type TaskBreakdownRequest struct {
	TaskTitle       string `json:"taskTitle"`
	TaskDescription string `json:"taskDescription"`
}
