package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"neuronex/internal/ai"
	"neuronex/internal/auth"
	"neuronex/internal/config"
	"neuronex/internal/handlers"
	"neuronex/internal/logger"
	"neuronex/internal/middleware"
	"neuronex/internal/repository"
	"neuronex/internal/repository/inmemory"
	"neuronex/internal/repository/postgres"
	"neuronex/internal/service"
	"neuronex/internal/worker"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

type App struct {
	config    *config.Config
	server    *http.Server
	router    *chi.Mux
	sessions  *auth.SessionManager
	cleaner   *worker.SessionCleaner
	shutdowns []func() // функции для graceful shutdown
}

func New(cfg *config.Config) *App {
	return &App{
		config:    cfg,
		shutdowns: make([]func(), 0),
	}
}

func (a *App) Init(ctx context.Context) error {
	if err := logger.Init(a.config.Logging.Development); err != nil {
		return fmt.Errorf("инициализация логгера: %w", err)
	}

	a.shutdowns = append(a.shutdowns, func() {
		logger.Info("Завершение работы логгирования...")
		logger.Sync()
	})

	var (
		users    repository.UserRepository
		tasks    repository.TaskRepository
		projects repository.ProjectRepository
		checker  repository.HealthChecker
	)

	switch a.config.Repository.Type {
	case "postgres":
		if err := postgres.Migrate(a.config.Database.URL); err != nil {
			return fmt.Errorf("миграции: %w", err)
		}

		storage, err := postgres.New(ctx, a.config.Database)
		if err != nil {
			return fmt.Errorf("подключение к PostgreSQL: %w", err)
		}
		a.shutdowns = append(a.shutdowns, storage.Close)

		users = storage.Users()
		tasks = storage.Tasks()
		projects = storage.Projects()
		checker = storage
	case "inmemory":
		storage := inmemory.New()
		users = storage.Users()
		tasks = storage.Tasks()
		projects = storage.Projects()
		checker = storage
	default:
		return fmt.Errorf("неизвестный тип репозитория: %q", a.config.Repository.Type)
	}

	a.sessions = auth.NewSessionManager(a.config.Session.TTL)
	a.cleaner = worker.NewSessionCleaner(a.sessions, a.config.Session.CleanupInterval)

	userService := service.NewUserService(users)
	taskService := service.NewTaskService(tasks)
	projectService := service.NewProjectService(projects, tasks)

	authHandler := handlers.NewAuthHandler(&userService, a.sessions, a.config.Session.SecureCookie)
	taskHandler := handlers.NewTaskHandler(&taskService)
	projectHandler := handlers.NewProjectHandler(&projectService)
	profileHandler := handlers.NewProfileHandler(&userService)
	healthHandler := handlers.NewHealthHandler(checker)

	// без ключа приложение живёт, просто AI-маршруты не поднимаются
	var assistant *ai.Assistant
	if a.config.AI.APIKey != "" {
		gemini, err := ai.NewGeminiClient(ctx, a.config.AI.APIKey, a.config.AI.Model)
		if err != nil {
			return fmt.Errorf("инициализация AI клиента: %w", err)
		}
		assistant = ai.NewAssistant(gemini)
	} else {
		logger.Warn("App: GEMINI_API_KEY не задан, AI-маршруты отключены")
	}

	a.router = a.buildRouter(authHandler, taskHandler, projectHandler, profileHandler, healthHandler, assistant, &taskService)

	a.server = &http.Server{
		Addr:              a.config.GetServerAddr(),
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return nil
}

func (a *App) buildRouter(
	authHandler handlers.AuthHandler,
	taskHandler handlers.TaskHandler,
	projectHandler handlers.ProjectHandler,
	profileHandler handlers.ProfileHandler,
	healthHandler handlers.HealthHandler,
	assistant *ai.Assistant,
	taskService handlers.TaskService,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   a.config.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
	}))
	r.Use(middleware.RateLimit(a.config.RateLimit.RequestsPerMinute))

	r.Get("/health", healthHandler.HealthCheck)

	r.Route("/api", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Post("/logout", authHandler.Logout)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(a.sessions))

			r.Get("/user", authHandler.CurrentUser)
			r.Patch("/profile", profileHandler.PatchProfile)
			r.Post("/preferences", profileHandler.PostPreferences)

			r.Route("/tasks", func(r chi.Router) {
				r.Get("/", taskHandler.ListTasks)
				r.Post("/", taskHandler.PostTask)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", taskHandler.GetTaskByID)
					r.Patch("/", taskHandler.PatchTaskByID)
					r.Delete("/", taskHandler.DeleteTaskByID)
				})
			})

			r.Route("/projects", func(r chi.Router) {
				r.Get("/", projectHandler.ListProjects)
				r.Post("/", projectHandler.PostProject)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", projectHandler.GetProjectByID)
					r.Patch("/", projectHandler.PatchProjectByID)
					r.Delete("/", projectHandler.DeleteProjectByID)
				})
			})

			if assistant != nil {
				aiHandler := handlers.NewAIHandler(assistant, taskService)
				r.Route("/ai", func(r chi.Router) {
					r.Post("/task-priorities", aiHandler.TaskPriorities)
					r.Post("/time-management", aiHandler.TimeManagement)
					r.Post("/improve-task", aiHandler.ImproveTask)
					r.Post("/task-breakdown", aiHandler.TaskBreakdown)
				})
			}
		})
	})

	return r
}

func (a *App) Run(ctx context.Context) error {
	workerCtx, cancelWorker := context.WithCancel(ctx)
	go a.cleaner.Start(workerCtx)
	a.shutdowns = append(a.shutdowns, cancelWorker)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("App: Сервер запущен", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.Shutdown()
		return fmt.Errorf("работа сервера: %w", err)
	case <-ctx.Done():
		logger.Info("App: Получен сигнал завершения")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		logger.Error("App: Ошибка остановки сервера", err)
	}

	a.Shutdown()
	return nil
}

// Shutdown запускает отложенные функции завершения в обратном порядке.
func (a *App) Shutdown() {
	for i := len(a.shutdowns) - 1; i >= 0; i-- {
		a.shutdowns[i]()
	}
}
