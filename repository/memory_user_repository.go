package repository

import (
	"context"
	"sort"
	"sync"

	"userResourceService/internal/failure"
	"userResourceService/models"
)

// MemoryUserRepository keeps users in an insertion-ordered slice guarded by a
// single RWMutex. Data does not outlive the process.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users []models.User
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{}
}

// List returns a copy of all users in insertion order.
func (r *MemoryUserRepository) List(ctx context.Context) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.User, len(r.users))
	copy(out, r.users)
	return out, nil
}

// ListSortedByName returns all users ordered by name; ties keep insertion order.
func (r *MemoryUserRepository) ListSortedByName(ctx context.Context) ([]models.User, error) {
	out, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].UserName < out[j].UserName })
	return out, nil
}

func (r *MemoryUserRepository) GetByID(ctx context.Context, id uint64) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i := r.indexLocked(id)
	if i < 0 {
		return nil, failure.NewNotFound(failure.MsgNoValue)
	}
	u := r.users[i]
	return &u, nil
}

// Create appends u keeping its caller-supplied id.
func (r *MemoryUserRepository) Create(ctx context.Context, u models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.indexLocked(u.ID) >= 0 {
		return failure.NewConflict(failure.MsgDuplicate)
	}
	r.users = append(r.users, u)
	return nil
}

// Update overwrites name, role and active of the stored user with u.ID.
func (r *MemoryUserRepository) Update(ctx context.Context, u models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexLocked(u.ID)
	if i < 0 {
		return nil, failure.NewNotFound(failure.MsgNoValue)
	}
	cur := &r.users[i]
	cur.UserName = u.UserName
	cur.Role = u.Role
	cur.Active = u.Active
	out := *cur
	return &out, nil
}

func (r *MemoryUserRepository) Delete(ctx context.Context, id uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexLocked(id)
	if i < 0 {
		return nil
	}
	r.users = append(r.users[:i], r.users[i+1:]...)
	return nil
}

// Len returns the number of stored users.
func (r *MemoryUserRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users)
}

func (r *MemoryUserRepository) indexLocked(id uint64) int {
	for i := range r.users {
		if r.users[i].ID == id {
			return i
		}
	}
	return -1
}
