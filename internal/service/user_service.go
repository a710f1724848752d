package service

import (
	"context"

	"github.com/rs/zerolog"

	"userResourceService/internal/cache"
	"userResourceService/internal/hateoas"
	"userResourceService/models"
	"userResourceService/repository"
)

// UserService is the facade used by the transport layer. It sequences the
// store, the cache overlay and the link builder; failures from the store are
// returned untouched for the error translator.
type UserService struct {
	users   repository.UserRepositoryI
	overlay *cache.Overlay
	log     zerolog.Logger
}

func NewUserService(users repository.UserRepositoryI, log zerolog.Logger) *UserService {
	return &UserService{
		users:   users,
		overlay: cache.NewOverlay(users),
		log:     log.With().Str("component", "user_service").Logger(),
	}
}

// List returns all users in insertion order.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	out, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	s.log.Debug().Int("count", len(out)).Msg("list users")
	return out, nil
}

// ListSorted returns all users ordered by name.
func (s *UserService) ListSorted(ctx context.Context) ([]models.User, error) {
	return s.users.ListSortedByName(ctx)
}

func (s *UserService) Get(ctx context.Context, id uint64) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}

// GetWithLinks returns the user with its hypermedia links rendered against base.
func (s *UserService) GetWithLinks(ctx context.Context, id uint64, base string) (*models.UserWithLinks, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	env := hateoas.NewBuilder(base).WithLinks(*u)
	return &env, nil
}

func (s *UserService) Create(ctx context.Context, u models.User) error {
	if err := s.users.Create(ctx, u); err != nil {
		return err
	}
	s.log.Debug().Uint64("id", u.ID).Msg("user created")
	return nil
}

// Update overwrites the stored user. A write to the cached record returns the
// evict directive so intermediaries drop the stale copy.
func (s *UserService) Update(ctx context.Context, u models.User) (*models.User, cache.Directive, error) {
	out, err := s.users.Update(ctx, u)
	if err != nil {
		return nil, cache.Directive{}, err
	}
	s.log.Debug().Uint64("id", u.ID).Msg("user updated")
	return out, cache.DirectiveForWrite(u.ID), nil
}

// Delete removes the user; deleting an absent user succeeds.
func (s *UserService) Delete(ctx context.Context, id uint64) (cache.Directive, error) {
	if err := s.users.Delete(ctx, id); err != nil {
		return cache.Directive{}, err
	}
	s.log.Debug().Uint64("id", id).Msg("user deleted")
	return cache.DirectiveForWrite(id), nil
}

// GetCachedFirst returns the reserved user and its max-age directive.
func (s *UserService) GetCachedFirst(ctx context.Context) (*models.User, cache.Directive, error) {
	return s.overlay.GetCachedFirst(ctx)
}

// ClearCache updates u and returns the evict-all directive.
func (s *UserService) ClearCache(ctx context.Context, u models.User) (cache.Directive, error) {
	_, d, err := s.overlay.EvictAndUpdate(ctx, u)
	if err != nil {
		return cache.Directive{}, err
	}
	s.log.Info().Str("cache", cache.Name).Uint64("id", u.ID).Msg("cache evicted")
	return d, nil
}
