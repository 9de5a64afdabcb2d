package creds

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/authkeep/authkeep/internal/common"
)

// MemoryRepository keeps identities in a map keyed by username. It is owned
// by the process: created once at startup and passed into the services that
// need it, so tests get isolation from fresh instances.
type MemoryRepository struct {
	mu    sync.RWMutex
	users map[string]*User
}

var _ Repository = (*MemoryRepository)(nil)

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{users: make(map[string]*User)}
}

// Create inserts a new identity. The existence check and the insert happen
// under one lock, which makes the duplicate rule hold under concurrency.
func (r *MemoryRepository) Create(ctx context.Context, user *User) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.UserName]; exists {
		return nil, common.ErrDuplicateUsername
	}

	stored := *user
	stored.ID = uuid.NewString()
	stored.CreatedAt = time.Now()
	r.users[stored.UserName] = &stored

	out := stored
	return &out, nil
}

func (r *MemoryRepository) GetUserByLogin(ctx context.Context, login string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[login]
	if !ok {
		return nil, common.ErrorNotFound
	}

	out := *user
	return &out, nil
}

// Len reports the number of stored identities.
func (r *MemoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users)
}
