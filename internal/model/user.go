package model

import "time"

// Role values stored in users.role. Role changes take effect on the next
// request; no re-authentication is forced by this layer.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User is the canonical user record exposed at the data-service boundary.
// The primary backend stores the name split into first_name/last_name and
// calls the balance column redeemable_points; adapters remap both ways.
//
// Fields:
//  ID        - primary key, serialized as a string on the wire.
//  Email     - unique email address (normalized to lower case).
//  FullName  - display name ("First Last").
//  Role      - RoleAdmin or RoleUser.
//  Points    - redeemable point balance, never negative.
//  AvatarURL - public URL of the profile image, may be empty.
//  CreatedAt - timestamp of account creation.
type User struct {
	ID        int64     `json:"id,string"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	Points    int64     `json:"points"`
	AvatarURL string    `json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUser carries the fields required to create a user. The password is
// hashed inside the adapter; only the hash is ever persisted.
type NewUser struct {
	Email     string
	Password  string
	FullName  string
	Role      string
	Points    int64
	AvatarURL string
}

// UserUpdate is a partial-update payload. A nil field means "leave the
// stored value unchanged"; adapters must never write columns whose field
// is nil.
type UserUpdate struct {
	Email     *string
	FullName  *string
	Role      *string
	Points    *int64
	AvatarURL *string
}
