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

// userCols is the native projection every user read uses. full_name is
// assembled from the split name columns at scan time.
const userCols = `id, email, first_name, last_name, role, redeemable_points, avatar_url, created_at`

// splitName breaks a canonical full name into the backend's
// first_name/last_name columns. Everything after the first space becomes
// the last name; a single word leaves last_name empty.
func splitName(full string) (first, last string) {
	full = strings.TrimSpace(full)
	if i := strings.IndexByte(full, ' '); i >= 0 {
		return full[:i], strings.TrimSpace(full[i+1:])
	}
	return full, ""
}

// joinName is the inverse mapping used on reads.
func joinName(first, last string) string {
	return strings.TrimSpace(first + " " + last)
}

func scanUser(row interface{ Scan(...any) error }) (model.User, error) {
	var u model.User
	var first, last string
	err := row.Scan(&u.ID, &u.Email, &first, &last, &u.Role, &u.Points, &u.AvatarURL, &u.CreatedAt)
	if err != nil {
		return model.User{}, err
	}
	u.FullName = joinName(first, last)
	return u, nil
}

// userSetClauses builds the SET fragment for a partial update. Only fields
// present in the payload produce clauses, so unspecified columns keep
// their stored values.
func userSetClauses(upd model.UserUpdate) (set []string, args []any) {
	if upd.Email != nil {
		set = append(set, "email = ?")
		args = append(args, strings.ToLower(strings.TrimSpace(*upd.Email)))
	}
	if upd.FullName != nil {
		first, last := splitName(*upd.FullName)
		set = append(set, "first_name = ?", "last_name = ?")
		args = append(args, first, last)
	}
	if upd.Role != nil {
		set = append(set, "role = ?")
		args = append(args, *upd.Role)
	}
	if upd.Points != nil {
		set = append(set, "redeemable_points = ?")
		args = append(args, *upd.Points)
	}
	if upd.AvatarURL != nil {
		set = append(set, "avatar_url = ?")
		args = append(args, *upd.AvatarURL)
	}
	return set, args
}

// ListUsers returns every user ordered by creation time descending.
func (s *Store) ListUsers(ctx context.Context) ([]model.User, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+userCols+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// GetUser fetches a user by id.
func (s *Store) GetUser(ctx context.Context, id int64) (model.User, error) {
	u, err := scanUser(s.db.QueryRowContext(ctx,
		`SELECT `+userCols+` FROM users WHERE id = ? LIMIT 1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, store.ErrNotFound
	}
	return u, err
}

// GetUserByEmail fetches a user by normalized email.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := scanUser(s.db.QueryRowContext(ctx,
		`SELECT `+userCols+` FROM users WHERE email = ? LIMIT 1`, email))
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, store.ErrNotFound
	}
	return u, err
}

// CreateUser inserts a user and returns the stored row.
func (s *Store) CreateUser(ctx context.Context, nu model.NewUser) (u model.User, err error) {
	defer recoverTo(&err)
	email := strings.ToLower(strings.TrimSpace(nu.Email))
	role := nu.Role
	if role != model.RoleAdmin {
		role = model.RoleUser
	}
	hash, err := utils.HashPassword(nu.Password, s.bcryptCost)
	if err != nil {
		return model.User{}, err
	}
	first, last := splitName(nu.FullName)
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO users (email, password_hash, first_name, last_name, role, redeemable_points, avatar_url)
		 VALUES (?,?,?,?,?,?,?)`,
		email, hash, first, last, role, nu.Points, nu.AvatarURL)
	if err != nil {
		if isDuplicate(err) {
			return model.User{}, store.ErrEmailExists
		}
		return model.User{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.User{}, err
	}
	return s.GetUser(ctx, id)
}

// UpdateUser applies a partial update and returns the stored row. Fields
// absent from the payload are left untouched.
func (s *Store) UpdateUser(ctx context.Context, id int64, upd model.UserUpdate) (u model.User, err error) {
	defer recoverTo(&err)
	set, args := userSetClauses(upd)
	if len(set) == 0 {
		return s.GetUser(ctx, id)
	}
	args = append(args, id)
	if _, err := s.db.ExecContext(ctx,
		`UPDATE users SET `+strings.Join(set, ", ")+` WHERE id = ?`, args...); err != nil {
		if isDuplicate(err) {
			return model.User{}, store.ErrEmailExists
		}
		return model.User{}, err
	}
	return s.GetUser(ctx, id)
}

// DeleteUser removes a user by id.
func (s *Store) DeleteUser(ctx context.Context, id int64) (err error) {
	defer recoverTo(&err)
	res, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// AddPoints adjusts a user's balance by delta (may be negative) without
// letting it drop below zero.
func (s *Store) AddPoints(ctx context.Context, id, delta int64) (u model.User, err error) {
	defer recoverTo(&err)
	if _, err := s.db.ExecContext(ctx,
		`UPDATE users SET redeemable_points = GREATEST(redeemable_points + ?, 0) WHERE id = ?`,
		delta, id); err != nil {
		return model.User{}, err
	}
	// Affected-row counts are unreliable here (0 when the clamped balance
	// is unchanged), so existence is settled by the read back.
	return s.GetUser(ctx, id)
}
