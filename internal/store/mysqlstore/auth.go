package mysqlstore

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/ecowave/ecowave-hub/internal/model"
	"github.com/ecowave/ecowave-hub/internal/store"
	"github.com/ecowave/ecowave-hub/internal/utils"
)

// SignIn verifies credentials and returns the account. A missing account
// and a wrong password are indistinguishable to the caller.
func (s *Store) SignIn(ctx context.Context, email, password string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var hash string
	var id int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id, password_hash FROM users WHERE email = ? LIMIT 1`, email).Scan(&id, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, store.ErrInvalidCredentials
	}
	if err != nil {
		return model.User{}, err
	}
	if !utils.VerifyPassword(hash, password) {
		return model.User{}, store.ErrInvalidCredentials
	}
	return s.GetUser(ctx, id)
}

// SignUp creates an account with the requested role.
func (s *Store) SignUp(ctx context.Context, nu model.NewUser) (model.User, error) {
	return s.CreateUser(ctx, nu)
}

// SignOut has no server-side session state to tear down with stateless
// access tokens; it only confirms the account still exists so the audit
// trail never records a logout for a deleted user.
func (s *Store) SignOut(ctx context.Context, userID int64) error {
	_, err := s.GetUser(ctx, userID)
	return err
}
