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
)

type UserRepo struct {
	pool *pgxpool.Pool
}

func (r *UserRepo) Create(ctx context.Context, user *models.User) error {
	start := time.Now()

	query := `INSERT INTO users
				(username, password, profile_image, first_name, last_name, email, bio, job_title, organization, preferences)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
				RETURNING id, created_at`

	err := r.pool.QueryRow(ctx, query,
		user.Username,
		user.Password,
		user.ProfileImage,
		user.FirstName,
		user.LastName,
		user.Email,
		user.Bio,
		user.JobTitle,
		user.Organization,
		user.Preferences,
	).Scan(&user.ID, &user.CreatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return repo.ErrAlreadyExists
		}
		logger.Error("Repository: Не удалось создать пользователя", err)
		return fmt.Errorf("создание пользователя: %w", err)
	}

	warnIfSlow(start, 50*time.Millisecond)
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id int) (*models.User, error) {
	return r.getBy(ctx, "id = $1", id)
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getBy(ctx, "username = $1", username)
}

func (r *UserRepo) getBy(ctx context.Context, where string, arg any) (*models.User, error) {
	start := time.Now()

	query := `SELECT
				id,
				username,
				password,
				profile_image,
				first_name,
				last_name,
				email,
				bio,
				job_title,
				organization,
				preferences,
				created_at
				FROM users
				WHERE ` + where

	user := &models.User{}
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.Password,
		&user.ProfileImage,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.Bio,
		&user.JobTitle,
		&user.Organization,
		&user.Preferences,
		&user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось получить пользователя", err)
		return nil, fmt.Errorf("получение пользователя: %w", err)
	}

	warnIfSlow(start, 100*time.Millisecond)
	return user, nil
}

func (r *UserRepo) Update(ctx context.Context, user *models.User) error {
	start := time.Now()

	query := `UPDATE users
			SET profile_image = $1,
				first_name = $2,
				last_name = $3,
				email = $4,
				bio = $5,
				job_title = $6,
				organization = $7,
				preferences = $8
			WHERE id = $9`

	tag, err := r.pool.Exec(ctx, query,
		user.ProfileImage,
		user.FirstName,
		user.LastName,
		user.Email,
		user.Bio,
		user.JobTitle,
		user.Organization,
		user.Preferences,
		user.ID,
	)

	if err != nil {
		logger.Error("Repository: Не удалось обновить пользователя", err)
		return fmt.Errorf("обновление пользователя: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}

	warnIfSlow(start, 100*time.Millisecond)
	return nil
}
