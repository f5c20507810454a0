package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"neuronex/internal/logger"
	"neuronex/internal/models"
	repo "neuronex/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type TaskRepo struct {
	pool *pgxpool.Pool
}

const taskColumns = `id,
				title,
				description,
				status,
				priority,
				category,
				due_date,
				user_id,
				project_id,
				assignees,
				completed,
				created_at`

func scanTask(row pgx.Row) (*models.Task, error) {
	task := &models.Task{}
	err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.Status,
		&task.Priority,
		&task.Category,
		&task.DueDate,
		&task.UserID,
		&task.ProjectID,
		&task.Assignees,
		&task.Completed,
		&task.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (r *TaskRepo) Create(ctx context.Context, task *models.Task) error {
	start := time.Now()

	if task.Assignees == nil {
		task.Assignees = []int{}
	}

	query := `INSERT INTO tasks
				(title, description, status, priority, category, due_date, user_id, project_id, assignees, completed)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
				RETURNING id, created_at`

	err := r.pool.QueryRow(ctx, query,
		task.Title,
		task.Description,
		task.Status,
		task.Priority,
		task.Category,
		task.DueDate,
		task.UserID,
		task.ProjectID,
		task.Assignees,
		task.Completed,
	).Scan(&task.ID, &task.CreatedAt)

	if err != nil {
		logger.Error("Repository: Не удалось добавить задачу", err, zap.Duration("ms", time.Since(start)))
		return fmt.Errorf("добавление задачи: %w", err)
	}

	warnIfSlow(start, 50*time.Millisecond)
	return nil
}

func (r *TaskRepo) GetByID(ctx context.Context, id int) (*models.Task, error) {
	start := time.Now()

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`

	task, err := scanTask(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось получить задачу", err)
		return nil, fmt.Errorf("получение задачи: %w", err)
	}

	warnIfSlow(start, 100*time.Millisecond)
	return task, nil
}

func (r *TaskRepo) ListByUser(ctx context.Context, userID int) ([]*models.Task, error) {
	start := time.Now()

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = $1 ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		logger.Error("Repository: Не удалось получить задачи", err)
		return nil, fmt.Errorf("получение задач: %w", err)
	}
	defer rows.Close()

	tasks := []*models.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			logger.Warn("Repository: Ошибка сканирования задачи", zap.Error(err))
			continue
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		logger.Error("Repository: Ошибка итерации по строкам", err)
		return nil, fmt.Errorf("итерация по строкам: %w", err)
	}

	warnIfSlow(start, 100*time.Millisecond)
	return tasks, nil
}

func (r *TaskRepo) Update(ctx context.Context, task *models.Task) error {
	start := time.Now()

	if task.Assignees == nil {
		task.Assignees = []int{}
	}

	query := `UPDATE tasks
			SET title = $1,
				description = $2,
				status = $3,
				priority = $4,
				category = $5,
				due_date = $6,
				project_id = $7,
				assignees = $8,
				completed = $9
			WHERE id = $10`

	tag, err := r.pool.Exec(ctx, query,
		task.Title,
		task.Description,
		task.Status,
		task.Priority,
		task.Category,
		task.DueDate,
		task.ProjectID,
		task.Assignees,
		task.Completed,
		task.ID,
	)

	if err != nil {
		logger.Error("Repository: Не удалось обновить задачу", err)
		return fmt.Errorf("обновление задачи: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}

	warnIfSlow(start, 100*time.Millisecond)
	return nil
}

func (r *TaskRepo) Delete(ctx context.Context, id int) error {
	start := time.Now()

	tag, err := r.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		logger.Error("Repository: Не удалось удалить задачу", err)
		return fmt.Errorf("удаление задачи: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}

	warnIfSlow(start, 100*time.Millisecond)
	return nil
}

// DetachProject обнуляет ссылку на проект у всех его задач.
// Вызывается при удалении проекта, сами задачи остаются.
func (r *TaskRepo) DetachProject(ctx context.Context, projectID int) error {
	start := time.Now()

	_, err := r.pool.Exec(ctx, `UPDATE tasks SET project_id = NULL WHERE project_id = $1`, projectID)
	if err != nil {
		logger.Error("Repository: Не удалось отвязать задачи от проекта", err)
		return fmt.Errorf("отвязка задач от проекта: %w", err)
	}

	warnIfSlow(start, 100*time.Millisecond)
	return nil
}
