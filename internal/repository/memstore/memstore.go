// Package memstore provides in-memory implementations of the repository
// interfaces. They back the service when no Postgres DSN is configured and
// stand in for the database in tests.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/onboarding-api/internal/domain"
	"github.com/spec-kit/onboarding-api/internal/repository"
)

// Clock returns the current time. Tests substitute a deterministic one.
type Clock func() time.Time

func utcNow() time.Time { return time.Now().UTC() }

// UserStore keeps users in a map keyed by id.
type UserStore struct {
	mu     sync.RWMutex
	now    Clock
	nextID int64
	users  map[int64]domain.User
}

// NewUserStore builds an empty store. A nil clock uses time.Now in UTC.
func NewUserStore(clock Clock) *UserStore {
	if clock == nil {
		clock = utcNow
	}
	return &UserStore{now: clock, users: make(map[int64]domain.User)}
}

var _ repository.UserRepository = (*UserStore)(nil)

func (s *UserStore) Create(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	s.nextID++
	now := s.now()
	user.ID = s.nextID
	user.CreatedAt = now
	user.UpdatedAt = now
	s.users[user.ID] = *user
	return nil
}

func (s *UserStore) GetByID(_ context.Context, id int64) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &user, nil
}

func (s *UserStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Email == email {
			found := user
			return &found, nil
		}
	}
	return nil, pgx.ErrNoRows
}

// Count returns the number of stored users.
func (s *UserStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

// ApplicationStore keeps applications in a map keyed by id.
type ApplicationStore struct {
	mu     sync.RWMutex
	now    Clock
	nextID int64
	apps   map[int64]domain.Application
}

// NewApplicationStore builds an empty store. A nil clock uses time.Now in UTC.
func NewApplicationStore(clock Clock) *ApplicationStore {
	if clock == nil {
		clock = utcNow
	}
	return &ApplicationStore{now: clock, apps: make(map[int64]domain.Application)}
}

var _ repository.ApplicationRepository = (*ApplicationStore)(nil)

func (s *ApplicationStore) Create(_ context.Context, app *domain.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	now := s.now()
	app.ID = s.nextID
	app.CreatedAt = now
	app.UpdatedAt = now
	s.apps[app.ID] = cloneApplication(*app)
	return nil
}

// List returns applications newest first, ties broken by id descending.
func (s *ApplicationStore) List(_ context.Context) ([]domain.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Application, 0, len(s.apps))
	for _, app := range s.apps {
		result = append(result, cloneApplication(app))
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

func (s *ApplicationStore) GetByID(_ context.Context, id int64) (*domain.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	app, ok := s.apps[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	found := cloneApplication(app)
	return &found, nil
}

func (s *ApplicationStore) UpdateStatus(_ context.Context, id int64, status domain.ApplicationStatus) (*domain.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	app, ok := s.apps[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	app.Status = status
	app.UpdatedAt = s.now()
	s.apps[id] = app
	updated := cloneApplication(app)
	return &updated, nil
}

func (s *ApplicationStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.apps[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(s.apps, id)
	return nil
}

func cloneApplication(app domain.Application) domain.Application {
	if app.UserID != nil {
		uid := *app.UserID
		app.UserID = &uid
	}
	return app
}
