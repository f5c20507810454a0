package inmemory

import (
	"context"
	"sync"
	"time"

	"neuronex/internal/models"
	repo "neuronex/internal/repository"
)

// Хранилище в памяти для разработки и тестов, выбирается конфигом
// repository.type: inmemory. Сурогатные id раздаёт счётчик.

type Storage struct {
	users    *UserStorage
	tasks    *TaskStorage
	projects *ProjectStorage
}

func New() *Storage {
	return &Storage{
		users:    NewUserStorage(),
		tasks:    NewTaskStorage(),
		projects: NewProjectStorage(),
	}
}

func (s *Storage) Users() *UserStorage       { return s.users }
func (s *Storage) Tasks() *TaskStorage       { return s.tasks }
func (s *Storage) Projects() *ProjectStorage { return s.projects }

func (s *Storage) HealthCheck(ctx context.Context) error {
	return nil
}

type UserStorage struct {
	storage map[int]*models.User
	byName  map[string]int
	nextID  int
	mtx     sync.RWMutex
}

func NewUserStorage() *UserStorage {
	return &UserStorage{
		storage: make(map[int]*models.User),
		byName:  make(map[string]int),
		nextID:  1,
	}
}

func (s *UserStorage) Create(ctx context.Context, user *models.User) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, exists := s.byName[user.Username]; exists {
		return repo.ErrAlreadyExists
	}

	user.ID = s.nextID
	s.nextID++
	user.CreatedAt = time.Now()

	copied := *user
	s.storage[user.ID] = &copied
	s.byName[user.Username] = user.ID
	return nil
}

func (s *UserStorage) GetByID(ctx context.Context, id int) (*models.User, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	user, ok := s.storage[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *UserStorage) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	id, ok := s.byName[username]
	if !ok {
		return nil, repo.ErrNotFound
	}
	copied := *s.storage[id]
	return &copied, nil
}

func (s *UserStorage) Update(ctx context.Context, user *models.User) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	existing, ok := s.storage[user.ID]
	if !ok {
		return repo.ErrNotFound
	}

	// имя и пароль через профильное обновление не меняются
	copied := *user
	copied.Username = existing.Username
	copied.Password = existing.Password
	copied.CreatedAt = existing.CreatedAt
	s.storage[user.ID] = &copied
	return nil
}

type TaskStorage struct {
	storage map[int]*models.Task
	nextID  int
	mtx     sync.RWMutex
}

func NewTaskStorage() *TaskStorage {
	return &TaskStorage{
		storage: make(map[int]*models.Task),
		nextID:  1,
	}
}

func (s *TaskStorage) Create(ctx context.Context, task *models.Task) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	task.ID = s.nextID
	s.nextID++
	task.CreatedAt = time.Now()
	if task.Assignees == nil {
		task.Assignees = []int{}
	}

	copied := *task
	s.storage[task.ID] = &copied
	return nil
}

func (s *TaskStorage) GetByID(ctx context.Context, id int) (*models.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	task, ok := s.storage[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	copied := *task
	return &copied, nil
}

func (s *TaskStorage) ListByUser(ctx context.Context, userID int) ([]*models.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	tasks := []*models.Task{}
	for id := 1; id < s.nextID; id++ {
		task, ok := s.storage[id]
		if !ok || task.UserID != userID {
			continue
		}
		copied := *task
		tasks = append(tasks, &copied)
	}
	return tasks, nil
}

func (s *TaskStorage) Update(ctx context.Context, task *models.Task) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.storage[task.ID]; !ok {
		return repo.ErrNotFound
	}
	if task.Assignees == nil {
		task.Assignees = []int{}
	}

	copied := *task
	s.storage[task.ID] = &copied
	return nil
}

func (s *TaskStorage) Delete(ctx context.Context, id int) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.storage[id]; !ok {
		return repo.ErrNotFound
	}
	delete(s.storage, id)
	return nil
}

func (s *TaskStorage) DetachProject(ctx context.Context, projectID int) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	for _, task := range s.storage {
		if task.ProjectID != nil && *task.ProjectID == projectID {
			task.ProjectID = nil
		}
	}
	return nil
}

type ProjectStorage struct {
	storage map[int]*models.Project
	nextID  int
	mtx     sync.RWMutex
}

func NewProjectStorage() *ProjectStorage {
	return &ProjectStorage{
		storage: make(map[int]*models.Project),
		nextID:  1,
	}
}

func (s *ProjectStorage) Create(ctx context.Context, project *models.Project) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	project.ID = s.nextID
	s.nextID++
	project.CreatedAt = time.Now()
	if project.Members == nil {
		project.Members = []int{}
	}

	copied := *project
	s.storage[project.ID] = &copied
	return nil
}

func (s *ProjectStorage) GetByID(ctx context.Context, id int) (*models.Project, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	project, ok := s.storage[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	copied := *project
	return &copied, nil
}

func (s *ProjectStorage) ListByUser(ctx context.Context, userID int) ([]*models.Project, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	projects := []*models.Project{}
	for id := 1; id < s.nextID; id++ {
		project, ok := s.storage[id]
		if !ok || project.UserID != userID {
			continue
		}
		copied := *project
		projects = append(projects, &copied)
	}
	return projects, nil
}

func (s *ProjectStorage) Update(ctx context.Context, project *models.Project) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.storage[project.ID]; !ok {
		return repo.ErrNotFound
	}
	if project.Members == nil {
		project.Members = []int{}
	}

	copied := *project
	s.storage[project.ID] = &copied
	return nil
}

func (s *ProjectStorage) Delete(ctx context.Context, id int) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.storage[id]; !ok {
		return repo.ErrNotFound
	}
	delete(s.storage, id)
	return nil
}
