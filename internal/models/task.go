package models

import "time"

type Task struct {
	ID          int       `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description *string   `json:"description,omitempty" db:"description"`
	Status      Status    `json:"status" db:"status"`
	Priority    Priority  `json:"priority" db:"priority"`
	Category    *string   `json:"category,omitempty" db:"category"`
	DueDate     *string   `json:"dueDate,omitempty" db:"due_date"`
	UserID      int       `json:"userId" db:"user_id"`
	ProjectID   *int      `json:"projectId,omitempty" db:"project_id"`
	Assignees   []int     `json:"assignees" db:"assignees"`
	Completed   bool      `json:"completed" db:"completed"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

type Status string
type Priority string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

type TaskOption func(*Task)

func WithTitle(title string) TaskOption {
	if title == "" {
		return nil
	}
	return func(t *Task) {
		t.Title = title
	}
}

func WithDescription(description string) TaskOption {
	return func(t *Task) {
		t.Description = &description
	}
}

func WithStatus(status Status) TaskOption {
	if status == "" {
		return nil
	}
	return func(t *Task) {
		t.Status = status
		t.Completed = status == StatusCompleted
	}
}

func WithPriority(priority Priority) TaskOption {
	if priority == "" {
		return nil
	}
	return func(t *Task) {
		t.Priority = priority
	}
}

func WithCategory(category string) TaskOption {
	return func(t *Task) {
		t.Category = &category
	}
}

func WithDueDate(dueDate string) TaskOption {
	return func(t *Task) {
		t.DueDate = &dueDate
	}
}

func WithProject(projectID int) TaskOption {
	return func(t *Task) {
		t.ProjectID = &projectID
	}
}

func WithAssignees(assignees []int) TaskOption {
	return func(t *Task) {
		t.Assignees = assignees
	}
}

func WithCompleted(completed bool) TaskOption {
	return func(t *Task) {
		t.Completed = completed
		if completed {
			t.Status = StatusCompleted
		}
	}
}
