package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db: db,
	}
}

func (s *Store) createOne(ctx context.Context, newUser *User) error {
	query := `INSERT INTO users(first_name, last_name, email, password, role) VALUES($1, $2, $3, $4, $5) RETURNING user_id, created_at`

	err := s.db.QueryRowContext(
		ctx,
		query,
		newUser.FirstName,
		newUser.LastName,
		newUser.Email,
		newUser.Password,
		newUser.Role,
	).Scan(
		&newUser.UserID,
		&newUser.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf(
			"failed to insert new user in user store: %w",
			err,
		)
	}

	return nil
}

func (s *Store) findByEmail(ctx context.Context, email string) (*User, error) {
	query := `SELECT user_id, first_name, last_name, email, password, role, reset_code, reset_code_expires, created_at, updated_at FROM users WHERE email = $1`

	user := new(User)
	err := scanRowIntoUser(
		s.db.QueryRowContext(ctx, query, email),
		user,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return user, nil
		}

		return user, fmt.Errorf(
			"failed to scan user from user store: %w",
			err,
		)
	}

	return user, nil
}

func (s *Store) findByIDAndEmail(ctx context.Context, userID uuid.UUID, email string) (*User, error) {
	query := `SELECT user_id, first_name, last_name, email, password, role, reset_code, reset_code_expires, created_at, updated_at FROM users WHERE user_id = $1 AND email = $2`

	user := new(User)
	err := scanRowIntoUser(
		s.db.QueryRowContext(ctx, query, userID, email),
		user,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return user, nil
		}

		return user, fmt.Errorf(
			"failed to scan user from user store: %w",
			err,
		)
	}

	return user, nil
}

func (s *Store) setResetCode(ctx context.Context, userID uuid.UUID, code string, expires time.Time) error {
	query := `UPDATE users SET reset_code = $2, reset_code_expires = $3, updated_at = now() WHERE user_id = $1`

	_, err := s.db.ExecContext(
		ctx,
		query,
		userID,
		code,
		expires,
	)
	if err != nil {
		return fmt.Errorf(
			"failed to set reset code in user store: %w",
			err,
		)
	}

	return nil
}

func (s *Store) resetPassword(ctx context.Context, userID uuid.UUID, hashedPassword string) error {
	query := `UPDATE users SET password = $2, reset_code = NULL, reset_code_expires = NULL, updated_at = now() WHERE user_id = $1`

	_, err := s.db.ExecContext(
		ctx,
		query,
		userID,
		hashedPassword,
	)
	if err != nil {
		return fmt.Errorf(
			"failed to reset password in user store: %w",
			err,
		)
	}

	return nil
}

func scanRowIntoUser(row *sql.Row, user *User) error {
	return row.Scan(
		&user.UserID,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.Password,
		&user.Role,
		&user.ResetCode,
		&user.ResetCodeExpires,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
}
