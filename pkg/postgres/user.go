package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/collectionsdesk/paxcash/pkg/core/model"
)

const userColumns = `username, password_hash, role, active, gender, email, telephone`

func scanUser(row pgx.Row) (*model.User, error) {
	var user model.User
	err := row.Scan(&user.Username, &user.PasswordHash, &user.Role, &user.Active,
		&user.Gender, &user.Email, &user.Telephone)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUser retrieves one account by username. Returns nil when no account exists.
func (d *DB) GetUser(ctx context.Context, username string) (*model.User, error) {
	row := d.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM app_user WHERE username = $1`, username)
	user, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return user, nil
}

// GetUsers retrieves every account, ordered by username
func (d *DB) GetUsers(ctx context.Context) ([]model.User, error) {
	rows, err := d.pool.Query(ctx, `SELECT `+userColumns+` FROM app_user ORDER BY username`)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}
	return users, nil
}

// InsertUser stores a new account
func (d *DB) InsertUser(ctx context.Context, user *model.User) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO app_user (`+userColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, user.Username, user.PasswordHash, user.Role, user.Active,
		user.Gender, user.Email, user.Telephone)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// UpdateUser overwrites an existing account
func (d *DB) UpdateUser(ctx context.Context, user *model.User) error {
	tag, err := d.pool.Exec(ctx, `
		UPDATE app_user SET
			password_hash = $2, role = $3, active = $4,
			gender = $5, email = $6, telephone = $7
		WHERE username = $1
	`, user.Username, user.PasswordHash, user.Role, user.Active,
		user.Gender, user.Email, user.Telephone)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %s not found", user.Username)
	}
	return nil
}

// DeleteUser removes an account
func (d *DB) DeleteUser(ctx context.Context, username string) error {
	_, err := d.pool.Exec(ctx, `DELETE FROM app_user WHERE username = $1`, username)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
