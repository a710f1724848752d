package repository

import (
	"context"

	"userResourceService/models"
)

// UserRepositoryI defines operations on User entities.
//
// GetByID and Update return a failure.NotFound error for unknown ids, Create
// returns failure.Conflict for a duplicate id. Delete of an unknown id is not
// an error.
type UserRepositoryI interface {
	List(ctx context.Context) ([]models.User, error)
	ListSortedByName(ctx context.Context) ([]models.User, error)
	GetByID(ctx context.Context, id uint64) (*models.User, error)
	Create(ctx context.Context, u models.User) error
	Update(ctx context.Context, u models.User) (*models.User, error)
	Delete(ctx context.Context, id uint64) error
}

var (
	_ UserRepositoryI = (*MemoryUserRepository)(nil)
	_ UserRepositoryI = (*UserRepository)(nil)
)
