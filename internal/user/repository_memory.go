package user

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"sharedeck/internal/apperr"
)

// InMemoryRepository backs handler and middleware tests.
type InMemoryRepository struct {
	mu    sync.Mutex
	users map[string]*User
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{users: make(map[string]*User)}
}

func (r *InMemoryRepository) Upsert(ctx context.Context, u *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UnixNano()
	if existing, ok := r.users[u.GoogleID]; ok {
		existing.Email = u.Email
		existing.Nickname = u.Nickname
		existing.Image = u.Image
		existing.UpdatedAt = now
		*u = *existing
		return nil
	}

	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Role == "" {
		u.Role = RoleMember
	}
	u.IsActive = true
	u.CreatedAt, u.UpdatedAt = now, now

	stored := *u
	r.users[u.GoogleID] = &stored
	return nil
}

func (r *InMemoryRepository) FindByGoogleID(ctx context.Context, googleID string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[googleID]
	if !ok {
		return nil, apperr.NotFound("user not found")
	}
	copied := *u
	return &copied, nil
}

func (r *InMemoryRepository) FindByID(ctx context.Context, id string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("user not found")
}
