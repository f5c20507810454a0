package models

import "time"

type Project struct {
	ID          int           `json:"id" db:"id"`
	Name        string        `json:"name" db:"name"`
	Description *string       `json:"description,omitempty" db:"description"`
	Status      ProjectStatus `json:"status" db:"status"`
	Progress    int           `json:"progress" db:"progress"`
	DueDate     *string       `json:"dueDate,omitempty" db:"due_date"`
	UserID      int           `json:"userId" db:"user_id"`
	Members     []int         `json:"members" db:"members"`
	CreatedAt   time.Time     `json:"createdAt" db:"created_at"`
}

type ProjectStatus string

const (
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusOnHold    ProjectStatus = "on-hold"
	ProjectStatusCompleted ProjectStatus = "completed"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectStatusActive, ProjectStatusOnHold, ProjectStatusCompleted:
		return true
	}
	return false
}

type ProjectOption func(*Project)

func WithProjectName(name string) ProjectOption {
	if name == "" {
		return nil
	}
	return func(p *Project) {
		p.Name = name
	}
}

func WithProjectDescription(description string) ProjectOption {
	return func(p *Project) {
		p.Description = &description
	}
}

func WithProjectStatus(status ProjectStatus) ProjectOption {
	if status == "" {
		return nil
	}
	return func(p *Project) {
		p.Status = status
	}
}

// прогресс зажимается в 0..100, в базе это обычный integer
func WithProgress(progress int) ProjectOption {
	return func(p *Project) {
		if progress < 0 {
			progress = 0
		}
		if progress > 100 {
			progress = 100
		}
		p.Progress = progress
	}
}

func WithProjectDueDate(dueDate string) ProjectOption {
	return func(p *Project) {
		p.DueDate = &dueDate
	}
}

func WithMembers(members []int) ProjectOption {
	return func(p *Project) {
		p.Members = members
	}
}
