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

type ProjectRepo struct {
	pool *pgxpool.Pool
}

const projectColumns = `id,
				name,
				description,
				status,
				progress,
				due_date,
				user_id,
				members,
				created_at`

func scanProject(row pgx.Row) (*models.Project, error) {
	project := &models.Project{}
	err := row.Scan(
		&project.ID,
		&project.Name,
		&project.Description,
		&project.Status,
		&project.Progress,
		&project.DueDate,
		&project.UserID,
		&project.Members,
		&project.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return project, nil
}

func (r *ProjectRepo) Create(ctx context.Context, project *models.Project) error {
	start := time.Now()

	if project.Members == nil {
		project.Members = []int{}
	}

	query := `INSERT INTO projects
				(name, description, status, progress, due_date, user_id, members)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
				RETURNING id, created_at`

	err := r.pool.QueryRow(ctx, query,
		project.Name,
		project.Description,
		project.Status,
		project.Progress,
		project.DueDate,
		project.UserID,
		project.Members,
	).Scan(&project.ID, &project.CreatedAt)

	if err != nil {
		logger.Error("Repository: Не удалось добавить проект", err, zap.Duration("ms", time.Since(start)))
		return fmt.Errorf("добавление проекта: %w", err)
	}

	warnIfSlow(start, 50*time.Millisecond)
	return nil
}

func (r *ProjectRepo) GetByID(ctx context.Context, id int) (*models.Project, error) {
	start := time.Now()

	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`

	project, err := scanProject(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось получить проект", err)
		return nil, fmt.Errorf("получение проекта: %w", err)
	}

	warnIfSlow(start, 100*time.Millisecond)
	return project, nil
}

func (r *ProjectRepo) ListByUser(ctx context.Context, userID int) ([]*models.Project, error) {
	start := time.Now()

	query := `SELECT ` + projectColumns + ` FROM projects WHERE user_id = $1 ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		logger.Error("Repository: Не удалось получить проекты", err)
		return nil, fmt.Errorf("получение проектов: %w", err)
	}
	defer rows.Close()

	projects := []*models.Project{}
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			logger.Warn("Repository: Ошибка сканирования проекта", zap.Error(err))
			continue
		}
		projects = append(projects, project)
	}

	if err := rows.Err(); err != nil {
		logger.Error("Repository: Ошибка итерации по строкам", err)
		return nil, fmt.Errorf("итерация по строкам: %w", err)
	}

	warnIfSlow(start, 100*time.Millisecond)
	return projects, nil
}

func (r *ProjectRepo) Update(ctx context.Context, project *models.Project) error {
	start := time.Now()

	if project.Members == nil {
		project.Members = []int{}
	}

	query := `UPDATE projects
			SET name = $1,
				description = $2,
				status = $3,
				progress = $4,
				due_date = $5,
				members = $6
			WHERE id = $7`

	tag, err := r.pool.Exec(ctx, query,
		project.Name,
		project.Description,
		project.Status,
		project.Progress,
		project.DueDate,
		project.Members,
		project.ID,
	)

	if err != nil {
		logger.Error("Repository: Не удалось обновить проект", err)
		return fmt.Errorf("обновление проекта: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}

	warnIfSlow(start, 100*time.Millisecond)
	return nil
}

func (r *ProjectRepo) Delete(ctx context.Context, id int) error {
	start := time.Now()

	tag, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		logger.Error("Repository: Не удалось удалить проект", err)
		return fmt.Errorf("удаление проекта: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}

	warnIfSlow(start, 100*time.Millisecond)
	return nil
}
