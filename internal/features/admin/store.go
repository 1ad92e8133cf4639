package admin

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db: db,
	}
}

func (s *Store) findAllUsers(ctx context.Context) (users []*UserDTO, err error) {
	query := `SELECT user_id, first_name, last_name, email, role, created_at FROM users ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to get all users from admin store: %w",
			err,
		)
	}
	defer rows.Close()

	for rows.Next() {
		var user UserDTO
		err := rows.Scan(
			&user.UserID,
			&user.FirstName,
			&user.LastName,
			&user.Email,
			&user.Role,
			&user.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf(
				"failed to scan user from admin store: %w",
				err,
			)
		}
		users = append(users, &user)
	}

	return users, rows.Err()
}

func (s *Store) updateOneUser(ctx context.Context, update *UpdateUserRequest) (*UserDTO, error) {
	setClauses := []string{}
	queryParams := []any{update.UserID}

	if update.FirstName != nil {
		setClauses = append(
			setClauses,
			fmt.Sprintf("first_name = $%d", len(queryParams)+1),
		)
		queryParams = append(queryParams, *update.FirstName)
	}

	if update.LastName != nil {
		setClauses = append(
			setClauses,
			fmt.Sprintf("last_name = $%d", len(queryParams)+1),
		)
		queryParams = append(queryParams, *update.LastName)
	}

	if update.Email != nil {
		setClauses = append(
			setClauses,
			fmt.Sprintf("email = $%d", len(queryParams)+1),
		)
		queryParams = append(queryParams, *update.Email)
	}

	if update.Role != nil {
		setClauses = append(
			setClauses,
			fmt.Sprintf("role = $%d", len(queryParams)+1),
		)
		queryParams = append(queryParams, *update.Role)
	}

	user := new(UserDTO)

	if len(setClauses) == 0 {
		// nothing to change, return the current record
		query := `SELECT user_id, first_name, last_name, email, role, created_at FROM users WHERE user_id = $1`

		err := s.db.QueryRowContext(ctx, query, update.UserID).Scan(
			&user.UserID,
			&user.FirstName,
			&user.LastName,
			&user.Email,
			&user.Role,
			&user.CreatedAt,
		)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return user, nil
			}

			return user, fmt.Errorf(
				"failed to scan user from admin store: %w",
				err,
			)
		}

		return user, nil
	}

	setClauses = append(setClauses, "updated_at = now()")

	query := fmt.Sprintf(
		`UPDATE users SET %s WHERE user_id = $1 RETURNING user_id, first_name, last_name, email, role, created_at`,
		strings.Join(setClauses, ", "),
	)

	err := s.db.QueryRowContext(ctx, query, queryParams...).Scan(
		&user.UserID,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.Role,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return user, nil
		}

		return user, fmt.Errorf(
			"failed to update user in admin store: %w",
			err,
		)
	}

	return user, nil
}
