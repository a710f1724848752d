package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"userResourceService/internal/cache"
	"userResourceService/internal/failure"
	"userResourceService/internal/testutil"
	"userResourceService/models"
)

func newTestService(t *testing.T) *UserService {
	t.Helper()
	return NewUserService(testutil.SeededMemoryRepo(t), zerolog.Nop())
}

func TestUserService_ListAndSorted(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	all, err := s.List(ctx)
	if err != nil || len(all) != 6 {
		t.Fatalf("list: %v len=%d", err, len(all))
	}
	if all[0].UserName != "Vitalii" || all[5].UserName != "Adam" {
		t.Fatalf("unexpected insertion order: %+v", all)
	}
	sorted, err := s.ListSorted(ctx)
	if err != nil {
		t.Fatalf("sorted: %v", err)
	}
	if sorted[0].UserName != "Adam" || sorted[5].UserName != "Volodya" {
		t.Fatalf("unexpected sort: %+v", sorted)
	}
}

func TestUserService_GetWithLinks(t *testing.T) {
	s := newTestService(t)
	env, err := s.GetWithLinks(context.Background(), 2, "http://localhost")
	if err != nil {
		t.Fatalf("get with links: %v", err)
	}
	if env.User.UserName != "Volodya" || len(env.Links) != 4 {
		t.Fatalf("unexpected envelope: %+v", env)
	}
	if env.Links[0].Href != "http://localhost/v2/user/2" {
		t.Fatalf("self href: %q", env.Links[0].Href)
	}
	if _, err := s.GetWithLinks(context.Background(), 7, ""); !errors.Is(err, failure.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUserService_CreateConflict(t *testing.T) {
	s := newTestService(t)
	err := s.Create(context.Background(), models.User{ID: 1, UserName: "Clone"})
	if failure.KindOf(err) != failure.Conflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestUserService_UpdateDirective(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	_, d, err := s.Update(ctx, models.User{ID: 3, UserName: "Petro", Role: "Capitan"})
	if err != nil {
		t.Fatalf("update 3: %v", err)
	}
	if !d.IsZero() {
		t.Fatalf("update of id 3 must not evict")
	}

	_, d, err = s.Update(ctx, models.User{ID: 1, UserName: "Vitalii", Role: "Boss", Active: true})
	if err != nil {
		t.Fatalf("update 1: %v", err)
	}
	if d.EvictName != cache.Name {
		t.Fatalf("update of reserved id must evict, got %+v", d)
	}
}

func TestUserService_DeleteIsIdempotent(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if _, err := s.Delete(ctx, 4); err != nil {
			t.Fatalf("delete #%d: %v", i, err)
		}
	}
	if _, err := s.Delete(ctx, 7); err != nil {
		t.Fatalf("delete absent: %v", err)
	}
	all, _ := s.List(ctx)
	if len(all) != 5 {
		t.Fatalf("expected 5 users, got %d", len(all))
	}
}

func TestUserService_CachedFirstAndClearCache(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	u, d, err := s.GetCachedFirst(ctx)
	if err != nil || u.ID != 1 {
		t.Fatalf("cached first: %v %+v", err, u)
	}
	if d.CacheControl() != "max-age=60" {
		t.Fatalf("cache control: %q", d.CacheControl())
	}

	d, err = s.ClearCache(ctx, models.User{ID: 1, UserName: "Vitalii", Role: "Retired"})
	if err != nil {
		t.Fatalf("clear cache: %v", err)
	}
	if d.EvictName != cache.Name {
		t.Fatalf("expected evict directive, got %+v", d)
	}
	u, _, _ = s.GetCachedFirst(ctx)
	if u.Role != "Retired" {
		t.Fatalf("read after evict returned stale data: %+v", u)
	}
}
