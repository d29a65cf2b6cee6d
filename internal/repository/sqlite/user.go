package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/msomdec/item-ledger/internal/domain"
)

// UserRepository implements domain.UserRepository using SQLite.
type UserRepository struct {
	db *sql.DB
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO users (email, hashed_password, is_active, created_at, updated_at)
		 VALUES (?, ?, 1, ?, ?)`,
		user.Email, user.HashedPassword, now, now,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("insert user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	user.ID = id
	user.IsActive = true
	user.CreatedAt = now
	user.UpdatedAt = now
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user := &domain.User{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, email, hashed_password, is_active, created_at, updated_at
		 FROM users WHERE id = ?`, id,
	).Scan(&user.ID, &user.Email, &user.HashedPassword, &user.IsActive, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query user by id: %w", err)
	}
	return user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	user := &domain.User{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, email, hashed_password, is_active, created_at, updated_at
		 FROM users WHERE email = ?`, email,
	).Scan(&user.ID, &user.Email, &user.HashedPassword, &user.IsActive, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query user by email: %w", err)
	}
	return user, nil
}

func (r *UserRepository) List(ctx context.Context, skip, limit int) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, email, hashed_password, is_active, created_at, updated_at
		 FROM users ORDER BY id LIMIT ? OFFSET ?`, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Email, &u.HashedPassword, &u.IsActive, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepository) OldestActiveID(ctx context.Context) (int64, error) {
	var id sql.NullInt64
	err := r.db.QueryRowContext(ctx,
		"SELECT MIN(id) FROM users WHERE is_active = 1").Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("query oldest active user: %w", err)
	}
	if !id.Valid {
		return 0, domain.ErrNotFound
	}
	return id.Int64, nil
}

// DeactivateAndTransfer runs the whole deactivation inside one transaction so
// concurrent deletions cannot interleave between target selection and the
// ownership update. Precondition failures roll back with the store untouched.
func (r *UserRepository) DeactivateAndTransfer(ctx context.Context, targetID int64) (*domain.User, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	target := &domain.User{}
	err = tx.QueryRowContext(ctx,
		`SELECT id, email, hashed_password, is_active, created_at, updated_at
		 FROM users WHERE id = ?`, targetID,
	).Scan(&target.ID, &target.Email, &target.HashedPassword, &target.IsActive, &target.CreatedAt, &target.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query target user: %w", err)
	}

	if !target.IsActive {
		return nil, domain.ErrAlreadyInactive
	}

	// Oldest active user = minimum id among active users. The recipient must
	// be someone other than the target, even when the target owns no items.
	var oldestID sql.NullInt64
	if err := tx.QueryRowContext(ctx,
		"SELECT MIN(id) FROM users WHERE is_active = 1").Scan(&oldestID); err != nil {
		return nil, fmt.Errorf("query transfer target: %w", err)
	}
	if !oldestID.Valid || oldestID.Int64 == targetID {
		return nil, domain.ErrNoTransferTarget
	}

	now := time.Now().UTC()
	if _, err := tx.ExecContext(ctx,
		"UPDATE items SET owner_id = ?, updated_at = ? WHERE owner_id = ?",
		oldestID.Int64, now, targetID,
	); err != nil {
		return nil, fmt.Errorf("transfer items: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE users SET is_active = 0, updated_at = ? WHERE id = ?",
		now, targetID,
	); err != nil {
		return nil, fmt.Errorf("deactivate user: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	target.IsActive = false
	target.UpdatedAt = now
	return target, nil
}

// isUniqueConstraintError checks if the error is a SQLite unique constraint violation.
func isUniqueConstraintError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
