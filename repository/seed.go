package repository

import (
	"context"
	"fmt"

	"userResourceService/models"
)

// SeedUsers returns the fixture users with ids assigned from 1 upward.
func SeedUsers() []models.User {
	seeds := []struct {
		name, role string
		active     bool
	}{
		{"Vitalii", "Chief", true},
		{"Volodya", "Chief", true},
		{"Petro", "Developer", false},
		{"Oleg", "Manager", false},
		{"Nazar", "Homeless", true},
		{"Adam", "Homeless", true},
	}
	var next uint64
	out := make([]models.User, 0, len(seeds))
	for _, s := range seeds {
		next++
		out = append(out, models.User{ID: next, UserName: s.name, Role: s.role, Active: s.active})
	}
	return out
}

// Seed inserts the fixture users into repo.
func Seed(ctx context.Context, repo UserRepositoryI) error {
	for _, u := range SeedUsers() {
		if err := repo.Create(ctx, u); err != nil {
			return fmt.Errorf("seed user %d: %w", u.ID, err)
		}
	}
	return nil
}
