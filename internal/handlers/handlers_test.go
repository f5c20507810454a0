package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"neuronex/internal/ai"
	"neuronex/internal/auth"
	"neuronex/internal/handlers"
	"neuronex/internal/middleware"
	"neuronex/internal/models"
	"neuronex/internal/repository/inmemory"
	"neuronex/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockAssistant - мок AI-ассистента, к настоящей модели из тестов не ходим
type MockAssistant struct {
	mock.Mock
}

func (m *MockAssistant) TaskPriorities(ctx context.Context, tasks []*models.Task, userContext string) ([]ai.TaskPriority, error) {
	args := m.Called(ctx, tasks, userContext)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ai.TaskPriority), args.Error(1)
}

func (m *MockAssistant) TimeManagement(ctx context.Context, tasks []*models.Task, prefs *models.Preferences) (*ai.TimeManagementAdvice, error) {
	args := m.Called(ctx, tasks, prefs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ai.TimeManagementAdvice), args.Error(1)
}

func (m *MockAssistant) ImproveTask(ctx context.Context, description string) (string, error) {
	args := m.Called(ctx, description)
	return args.String(0), args.Error(1)
}

func (m *MockAssistant) TaskBreakdown(ctx context.Context, title, description string) ([]ai.Subtask, error) {
	args := m.Called(ctx, title, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ai.Subtask), args.Error(1)
}

var _ handlers.Assistant = (*MockAssistant)(nil)

// testServer собирает маршруты поверх хранилища в памяти,
// вся цепочка сервисов и middleware настоящая
type testServer struct {
	router    *chi.Mux
	sessions  *auth.SessionManager
	assistant *MockAssistant
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	storage := inmemory.New()
	sessions := auth.NewSessionManager(time.Hour)
	assistant := new(MockAssistant)

	userService := service.NewUserService(storage.Users())
	taskService := service.NewTaskService(storage.Tasks())
	projectService := service.NewProjectService(storage.Projects(), storage.Tasks())

	authHandler := handlers.NewAuthHandler(&userService, sessions, false)
	taskHandler := handlers.NewTaskHandler(&taskService)
	projectHandler := handlers.NewProjectHandler(&projectService)
	profileHandler := handlers.NewProfileHandler(&userService)
	aiHandler := handlers.NewAIHandler(assistant, &taskService)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Post("/logout", authHandler.Logout)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(sessions))

			r.Get("/user", authHandler.CurrentUser)
			r.Patch("/profile", profileHandler.PatchProfile)
			r.Post("/preferences", profileHandler.PostPreferences)

			r.Route("/tasks", func(r chi.Router) {
				r.Get("/", taskHandler.ListTasks)
				r.Post("/", taskHandler.PostTask)
				r.Get("/{id}", taskHandler.GetTaskByID)
				r.Patch("/{id}", taskHandler.PatchTaskByID)
				r.Delete("/{id}", taskHandler.DeleteTaskByID)
			})

			r.Route("/projects", func(r chi.Router) {
				r.Get("/", projectHandler.ListProjects)
				r.Post("/", projectHandler.PostProject)
				r.Get("/{id}", projectHandler.GetProjectByID)
				r.Patch("/{id}", projectHandler.PatchProjectByID)
				r.Delete("/{id}", projectHandler.DeleteProjectByID)
			})

			r.Route("/ai", func(r chi.Router) {
				r.Post("/task-priorities", aiHandler.TaskPriorities)
				r.Post("/time-management", aiHandler.TimeManagement)
				r.Post("/improve-task", aiHandler.ImproveTask)
				r.Post("/task-breakdown", aiHandler.TaskBreakdown)
			})
		})
	})

	return &testServer{router: r, sessions: sessions, assistant: assistant}
}

func (s *testServer) do(t *testing.T, method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

// register создаёт пользователя и возвращает его сессионную cookie
func (s *testServer) register(t *testing.T, username, password string) *http.Cookie {
	t.Helper()

	rec := s.do(t, http.MethodPost, "/api/register", map[string]string{
		"username": username,
		"password": password,
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.SessionCookie {
			return c
		}
	}
	t.Fatal("ответ регистрации без сессионной cookie")
	return nil
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, target any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), target))
}

// TestAuthFlow тестирует регистрацию, вход и выход целиком
func TestAuthFlow(t *testing.T) {
	server := newTestServer(t)

	t.Run("register sets cookie and hides password", func(t *testing.T) {
		rec := server.do(t, http.MethodPost, "/api/register", map[string]string{
			"username": "alice", "password": "secret",
		}, nil)

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.NotContains(t, rec.Body.String(), "password")
		assert.NotContains(t, rec.Body.String(), "secret")

		var user struct {
			ID       int    `json:"id"`
			Username string `json:"username"`
		}
		decodeBody(t, rec, &user)
		assert.Equal(t, "alice", user.Username)
		assert.NotZero(t, user.ID)
	})

	t.Run("duplicate username is 400", func(t *testing.T) {
		rec := server.do(t, http.MethodPost, "/api/register", map[string]string{
			"username": "alice", "password": "another",
		}, nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("login with wrong password is 401 with generic message", func(t *testing.T) {
		rec := server.do(t, http.MethodPost, "/api/login", map[string]string{
			"username": "alice", "password": "wrong",
		}, nil)

		require.Equal(t, http.StatusUnauthorized, rec.Code)

		var body struct {
			Message string `json:"message"`
		}
		decodeBody(t, rec, &body)
		assert.Equal(t, "неверное имя пользователя или пароль", body.Message)
	})

	t.Run("login with unknown username gives the same answer", func(t *testing.T) {
		rec := server.do(t, http.MethodPost, "/api/login", map[string]string{
			"username": "nobody", "password": "secret",
		}, nil)

		require.Equal(t, http.StatusUnauthorized, rec.Code)

		var body struct {
			Message string `json:"message"`
		}
		decodeBody(t, rec, &body)
		assert.Equal(t, "неверное имя пользователя или пароль", body.Message)
	})

	t.Run("login and fetch current user", func(t *testing.T) {
		rec := server.do(t, http.MethodPost, "/api/login", map[string]string{
			"username": "alice", "password": "secret",
		}, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var cookie *http.Cookie
		for _, c := range rec.Result().Cookies() {
			if c.Name == middleware.SessionCookie {
				cookie = c
			}
		}
		require.NotNil(t, cookie)
		assert.True(t, cookie.HttpOnly)

		me := server.do(t, http.MethodGet, "/api/user", nil, cookie)
		require.Equal(t, http.StatusOK, me.Code)
		assert.Contains(t, me.Body.String(), "alice")

		// после выхода сессия мертва
		logout := server.do(t, http.MethodPost, "/api/logout", nil, cookie)
		require.Equal(t, http.StatusOK, logout.Code)

		after := server.do(t, http.MethodGet, "/api/user", nil, cookie)
		assert.Equal(t, http.StatusUnauthorized, after.Code)
	})

	t.Run("logout without cookie is still 200", func(t *testing.T) {
		rec := server.do(t, http.MethodPost, "/api/logout", nil, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

// TestTasksAPI тестирует CRUD задач и изоляцию пользователей
func TestTasksAPI(t *testing.T) {
	server := newTestServer(t)
	aliceCookie := server.register(t, "alice", "secret")
	bobCookie := server.register(t, "bob", "secret")

	t.Run("unauthorized without cookie", func(t *testing.T) {
		rec := server.do(t, http.MethodGet, "/api/tasks", nil, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("create assigns owner from session", func(t *testing.T) {
		rec := server.do(t, http.MethodPost, "/api/tasks", map[string]any{
			"title":  "Разобрать почту",
			"userId": 999, // чужое поле игнорируется
		}, aliceCookie)

		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var task models.Task
		decodeBody(t, rec, &task)
		assert.Equal(t, 1, task.UserID)
		assert.Equal(t, models.StatusTodo, task.Status)
		assert.Equal(t, models.PriorityMedium, task.Priority)
	})

	t.Run("create without title is 400", func(t *testing.T) {
		rec := server.do(t, http.MethodPost, "/api/tasks", map[string]any{
			"description": "без названия",
		}, aliceCookie)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("create without json content type is 415", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/tasks", bytes.NewReader([]byte("title=x")))
		req.Header.Set("Content-Type", "text/plain")
		req.AddCookie(aliceCookie)

		rec := httptest.NewRecorder()
		server.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	})

	t.Run("foreign task is 403, not 404", func(t *testing.T) {
		rec := server.do(t, http.MethodGet, "/api/tasks/1", nil, bobCookie)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("missing task is 404", func(t *testing.T) {
		rec := server.do(t, http.MethodGet, "/api/tasks/999", nil, aliceCookie)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("bad id is 400", func(t *testing.T) {
		rec := server.do(t, http.MethodGet, "/api/tasks/abc", nil, aliceCookie)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("partial update keeps other fields", func(t *testing.T) {
		rec := server.do(t, http.MethodPatch, "/api/tasks/1", map[string]any{
			"status": "completed",
		}, aliceCookie)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var task models.Task
		decodeBody(t, rec, &task)
		assert.Equal(t, "Разобрать почту", task.Title)
		assert.Equal(t, models.StatusCompleted, task.Status)
		assert.True(t, task.Completed)
	})

	t.Run("invalid status on update is 400", func(t *testing.T) {
		rec := server.do(t, http.MethodPatch, "/api/tasks/1", map[string]any{
			"status": "done",
		}, aliceCookie)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("list returns only own tasks", func(t *testing.T) {
		rec := server.do(t, http.MethodPost, "/api/tasks", map[string]any{
			"title": "задача боба",
		}, bobCookie)
		require.Equal(t, http.StatusCreated, rec.Code)

		list := server.do(t, http.MethodGet, "/api/tasks", nil, aliceCookie)
		require.Equal(t, http.StatusOK, list.Code)

		var tasks []models.Task
		decodeBody(t, list, &tasks)
		require.Len(t, tasks, 1)
		assert.Equal(t, "Разобрать почту", tasks[0].Title)
	})

	t.Run("delete is 204, repeat is 404", func(t *testing.T) {
		rec := server.do(t, http.MethodDelete, "/api/tasks/1", nil, aliceCookie)
		assert.Equal(t, http.StatusNoContent, rec.Code)

		again := server.do(t, http.MethodDelete, "/api/tasks/1", nil, aliceCookie)
		assert.Equal(t, http.StatusNotFound, again.Code)
	})
}

// TestProjectsAPI тестирует проекты и отвязку задач при удалении
func TestProjectsAPI(t *testing.T) {
	server := newTestServer(t)
	cookie := server.register(t, "alice", "secret")

	t.Run("create project with defaults", func(t *testing.T) {
		rec := server.do(t, http.MethodPost, "/api/projects", map[string]any{
			"name": "Переезд",
		}, cookie)

		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var project models.Project
		decodeBody(t, rec, &project)
		assert.Equal(t, models.ProjectStatusActive, project.Status)
		assert.Equal(t, 1, project.UserID)
	})

	t.Run("progress out of range is 400", func(t *testing.T) {
		rec := server.do(t, http.MethodPost, "/api/projects", map[string]any{
			"name":     "Сломанный",
			"progress": 150,
		}, cookie)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("deleting project detaches its tasks", func(t *testing.T) {
		rec := server.do(t, http.MethodPost, "/api/tasks", map[string]any{
			"title":     "в проекте",
			"projectId": 1,
		}, cookie)
		require.Equal(t, http.StatusCreated, rec.Code)

		var task models.Task
		decodeBody(t, rec, &task)
		require.NotNil(t, task.ProjectID)

		del := server.do(t, http.MethodDelete, "/api/projects/1", nil, cookie)
		require.Equal(t, http.StatusNoContent, del.Code)

		got := server.do(t, http.MethodGet, "/api/tasks/1", nil, cookie)
		require.Equal(t, http.StatusOK, got.Code)

		var detached models.Task
		decodeBody(t, got, &detached)
		assert.Nil(t, detached.ProjectID)
	})
}

// TestProfileAPI тестирует обновление профиля и настроек
func TestProfileAPI(t *testing.T) {
	server := newTestServer(t)
	cookie := server.register(t, "alice", "secret")

	t.Run("patch profile", func(t *testing.T) {
		rec := server.do(t, http.MethodPatch, "/api/profile", map[string]any{
			"firstName": "Алиса",
			"bio":       "работаю утрами",
		}, cookie)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Contains(t, rec.Body.String(), "Алиса")
		assert.NotContains(t, rec.Body.String(), "password")
	})

	t.Run("save preferences and read them back", func(t *testing.T) {
		rec := server.do(t, http.MethodPost, "/api/preferences", map[string]any{
			"theme":        "dark",
			"dyslexicFont": true,
			"workStyle":    "structured",
		}, cookie)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		me := server.do(t, http.MethodGet, "/api/user", nil, cookie)
		require.Equal(t, http.StatusOK, me.Code)

		var user struct {
			Preferences *models.Preferences `json:"preferences"`
		}
		decodeBody(t, me, &user)
		require.NotNil(t, user.Preferences)
		assert.Equal(t, "dark", user.Preferences.Theme)
		assert.True(t, user.Preferences.DyslexicFont)
	})
}

// TestAIAPI тестирует маршруты ассистента
func TestAIAPI(t *testing.T) {
	t.Run("improve task", func(t *testing.T) {
		server := newTestServer(t)
		cookie := server.register(t, "alice", "secret")

		server.assistant.On("ImproveTask", mock.Anything, "сделать отчёт").
			Return("1. Открыть документ.", nil)

		rec := server.do(t, http.MethodPost, "/api/ai/improve-task", map[string]any{
			"taskDescription": "сделать отчёт",
		}, cookie)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Contains(t, rec.Body.String(), "Открыть документ")
		server.assistant.AssertExpectations(t)
	})

	t.Run("improve task with empty description is 400", func(t *testing.T) {
		server := newTestServer(t)
		cookie := server.register(t, "alice", "secret")

		rec := server.do(t, http.MethodPost, "/api/ai/improve-task", map[string]any{
			"taskDescription": "",
		}, cookie)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		server.assistant.AssertExpectations(t)
	})

	t.Run("task priorities use caller's own tasks", func(t *testing.T) {
		server := newTestServer(t)
		cookie := server.register(t, "alice", "secret")

		created := server.do(t, http.MethodPost, "/api/tasks", map[string]any{
			"title": "Разобрать почту",
		}, cookie)
		require.Equal(t, http.StatusCreated, created.Code)

		server.assistant.On("TaskPriorities", mock.Anything, mock.MatchedBy(func(tasks []*models.Task) bool {
			return len(tasks) == 1 && tasks[0].Title == "Разобрать почту"
		}), "утром мало сил").Return([]ai.TaskPriority{
			{TaskID: 1, PriorityScore: 90, Reasoning: "дедлайн ближе"},
		}, nil)

		rec := server.do(t, http.MethodPost, "/api/ai/task-priorities", map[string]any{
			"userContext": "утром мало сил",
		}, cookie)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Contains(t, rec.Body.String(), "priorityScore")
		server.assistant.AssertExpectations(t)
	})

	t.Run("upstream failure is 502", func(t *testing.T) {
		server := newTestServer(t)
		cookie := server.register(t, "alice", "secret")

		server.assistant.On("TaskBreakdown", mock.Anything, "Написать отчёт", "").
			Return(nil, ai.ErrUpstream)

		rec := server.do(t, http.MethodPost, "/api/ai/task-breakdown", map[string]any{
			"taskTitle": "Написать отчёт",
		}, cookie)

		assert.Equal(t, http.StatusBadGateway, rec.Code)
		server.assistant.AssertExpectations(t)
	})

	t.Run("ai routes require session", func(t *testing.T) {
		server := newTestServer(t)

		rec := server.do(t, http.MethodPost, "/api/ai/time-management", nil, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
