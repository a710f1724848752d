package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"

	"userResourceService/internal/failure"
	"userResourceService/models"
)

// UserRepository is the SQLite-backed user store. Insertion order is kept by
// the `seq` column, so updates never move a row.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, user_name, role, active`

func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	return r.query(ctx, `SELECT `+userColumns+` FROM users ORDER BY seq`)
}

// ListSortedByName orders by name, then by insertion order for ties.
func (r *UserRepository) ListSortedByName(ctx context.Context) ([]models.User, error) {
	return r.query(ctx, `SELECT `+userColumns+` FROM users ORDER BY user_name, seq`)
}

func (r *UserRepository) GetByID(ctx context.Context, id uint64) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var u models.User
	var sid int64
	err := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, int64(id)).
		Scan(&sid, &u.UserName, &u.Role, &u.Active)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, failure.NewNotFound(failure.MsgNoValue)
		}
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	u.ID = uint64(sid)
	return &u, nil
}

// Create inserts u with its caller-supplied id.
func (r *UserRepository) Create(ctx context.Context, u models.User) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err := r.db.ExecContext(ctx, `INSERT INTO users (id, user_name, role, active) VALUES (?,?,?,?)`,
		int64(u.ID), u.UserName, u.Role, u.Active)
	if err != nil {
		var se sqlite3.Error
		if errors.As(err, &se) && (se.ExtendedCode == sqlite3.ErrConstraintUnique || se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey) {
			return failure.NewConflict(failure.MsgDuplicate)
		}
		return fmt.Errorf("create user %d: %w", u.ID, err)
	}
	return nil
}

func (r *UserRepository) Update(ctx context.Context, u models.User) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `UPDATE users SET user_name = ?, role = ?, active = ? WHERE id = ?`,
		u.UserName, u.Role, u.Active, int64(u.ID))
	if err != nil {
		return nil, fmt.Errorf("update user %d: %w", u.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update user %d: %w", u.ID, err)
	}
	if n == 0 {
		return nil, failure.NewNotFound(failure.MsgNoValue)
	}
	out := u
	return &out, nil
}

// Delete removes the user with id. Unknown ids are ignored.
func (r *UserRepository) Delete(ctx context.Context, id uint64) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if _, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, int64(id)); err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	return nil
}

func (r *UserRepository) query(ctx context.Context, q string) ([]models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	out := []models.User{}
	for rows.Next() {
		var u models.User
		var sid int64
		if err := rows.Scan(&sid, &u.UserName, &u.Role, &u.Active); err != nil {
			return nil, err
		}
		u.ID = uint64(sid)
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
