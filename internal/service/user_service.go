package service

import (
	"context"
	"errors"
	"fmt"

	"neuronex/internal/auth"
	"neuronex/internal/logger"
	"neuronex/internal/models"
	rep "neuronex/internal/repository"

	"go.uber.org/zap"
)

// здесь проверяются правила бизнес-логики, репозиторий ничего не знает о владельцах

type UserService struct {
	users rep.UserRepository
}

func NewUserService(users rep.UserRepository) UserService {
	return UserService{users: users}
}

// Register хеширует пароль и создаёт пользователя.
// Занятое имя - ALREADY_EXISTS, наружу уходит 400.
func (s *UserService) Register(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, NewBusinessError(CodeValidation, "имя пользователя и пароль обязательны")
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("хеширование пароля: %w", err)
	}

	user := &models.User{
		Username: username,
		Password: hashed,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, rep.ErrAlreadyExists) {
			logger.Info("Service: Имя пользователя занято", zap.String("username", username))
			return nil, NewBusinessError(CodeAlreadyExists, "имя пользователя уже занято")
		}
		return nil, fmt.Errorf("создание пользователя: %w", err)
	}

	return user, nil
}

// Login отвечает одной и той же ошибкой и на неизвестное имя, и на неверный
// пароль, а на неизвестное имя дополнительно сжигает время сверки,
// чтобы имена нельзя было перебирать.
func (s *UserService) Login(ctx context.Context, username, password string) (*models.User, error) {
	invalidCredentials := func() *BusinessError {
		return NewBusinessError(CodeUnauthorized, "неверное имя пользователя или пароль")
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			auth.DummyCompare(password)
			return nil, invalidCredentials()
		}
		return nil, fmt.Errorf("поиск пользователя: %w", err)
	}

	ok, err := auth.VerifyPassword(password, user.Password)
	if err != nil {
		return nil, fmt.Errorf("сверка пароля: %w", err)
	}
	if !ok {
		logger.Info("Service: Неудачная попытка входа", zap.String("username", username))
		return nil, invalidCredentials()
	}

	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id int) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			return nil, NewBusinessError(CodeNotFound, "пользователь не найден")
		}
		return nil, fmt.Errorf("получение пользователя: %w", err)
	}
	return user, nil
}

// UpdateProfile частично обновляет поля профиля через опции.
func (s *UserService) UpdateProfile(ctx context.Context, id int, options ...models.UserOption) (*models.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	for _, opt := range options {
		if opt != nil {
			opt(user)
		}
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("обновление профиля: %w", err)
	}
	return user, nil
}

// UpdatePreferences заменяет блок настроек целиком.
func (s *UserService) UpdatePreferences(ctx context.Context, id int, prefs models.Preferences) error {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	user.Preferences = &prefs
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("обновление настроек: %w", err)
	}
	return nil
}
