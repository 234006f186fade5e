// Package usertest provides an in-memory user repository for service tests.
package usertest

import (
	"Maitri-Dhatri-Backend/domain"
	"Maitri-Dhatri-Backend/entities"
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Repository struct {
	mu    sync.Mutex
	users map[string]*entities.User
}

func NewRepository() *Repository {
	return &Repository{users: map[string]*entities.User{}}
}

// Add stores a user with the given role and returns it.
func (f *Repository) Add(name, role string) *entities.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := &entities.User{
		ID:    uuid.New(),
		Name:  name,
		Email: name + "@example.com",
		Role:  role,
	}
	u.CreatedAt = time.Now()
	f.users[u.ID.String()] = u
	return u
}

func (f *Repository) CreateUser(_ context.Context, user *entities.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	user.CreatedAt = time.Now()
	f.users[user.ID.String()] = user
	return nil
}

func (f *Repository) GetUserByEmail(_ context.Context, email string) (*entities.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (f *Repository) GetUserByID(_ context.Context, id string) (*entities.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (f *Repository) GetUsers(_ context.Context, _, _ int) ([]*entities.User, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*entities.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, int64(len(out)), nil
}

func (f *Repository) GetUserIDsByRole(_ context.Context, role string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var ids []string
	for id, u := range f.users {
		if u.Role == role {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (f *Repository) CountUsers(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.users)), nil
}
