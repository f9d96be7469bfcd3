package db

import (
	"context"
	"fmt"

	"budget-planner/src/apperr"
	"budget-planner/src/models"
)

const userColumns = `id, username, email, first_name, last_name, password_hash, super_admin, locked, last_login, created_at`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	var user models.User
	var hash string
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&hash,
		&user.SuperAdmin,
		&user.Locked,
		&user.LastLogin,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = []byte(hash)
	return &user, nil
}

func (s *Store) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := scanUser(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapError(err, "user")
	}
	return user, nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(username) = LOWER($1)`
	user, err := scanUser(s.pool.QueryRow(ctx, query, username))
	if err != nil {
		return nil, mapError(err, "user")
	}
	return user, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(email) = LOWER($1)`
	user, err := scanUser(s.pool.QueryRow(ctx, query, email))
	if err != nil {
		return nil, mapError(err, "user")
	}
	return user, nil
}

func (s *Store) CreateUser(ctx context.Context, req models.RegisterRequest, hashedPassword string) (*models.RegisterResponse, error) {
	query := `
		INSERT INTO users (first_name, last_name, username, email, password_hash)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, super_admin
	`
	resp := models.RegisterResponse{
		Email:     req.Email,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
	err := s.pool.QueryRow(ctx, query,
		req.FirstName,
		req.LastName,
		req.Username,
		req.Email,
		hashedPassword,
	).Scan(&resp.ID, &resp.SuperAdmin)
	if err != nil {
		return nil, mapError(err, "email or username")
	}
	return &resp, nil
}

func (s *Store) UpdateUserLastLogin(ctx context.Context, userID int64) error {
	_, err := s.pool.Exec(ctx, `UPDATE users SET last_login = NOW() WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	return nil
}

func (s *Store) UpdateUserPassword(ctx context.Context, userID int64, hashedPassword string) error {
	cmd, err := s.pool.Exec(ctx, `UPDATE users SET password_hash = $1 WHERE id = $2`, hashedPassword, userID)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("user")
	}
	return nil
}
