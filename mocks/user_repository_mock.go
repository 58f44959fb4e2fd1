package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/Kotlang/leadsGo/db"
	"github.com/Kotlang/leadsGo/models"
)

type UserRepositoryMock struct {
	mu    sync.Mutex
	users map[string]models.UserModel
}

func NewUserRepositoryMock() *UserRepositoryMock {
	return &UserRepositoryMock{users: map[string]models.UserModel{}}
}

func (m *UserRepositoryMock) Save(ctx context.Context, user *models.UserModel) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	user.Id()
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	if err := user.Validate(); err != nil {
		return err
	}

	for _, existing := range m.users {
		if existing.Email == user.Email {
			return db.ErrDuplicateEmail
		}
	}

	m.users[user.UserId] = *user
	return nil
}

func (m *UserRepositoryMock) FindOneByEmail(ctx context.Context, email string) (*models.UserModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, user := range m.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, db.ErrNotFound
}

func (m *UserRepositoryMock) FindOneById(ctx context.Context, id string) (*models.UserModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	return &user, nil
}

// Remove deletes a stored user, simulating an account removed after its
// session token was issued.
func (m *UserRepositoryMock) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.users, id)
}
