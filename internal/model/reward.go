package model

import "time"

// Reward is a redeemable catalog item. IsActive is derived (stock > 0) and
// never persisted; the primary backend stores the image under
// thumbnail_image.
type Reward struct {
	ID             int64     `json:"id,string"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	PointsRequired int64     `json:"points_required"`
	Stock          int       `json:"stock"`
	ImageURL       string    `json:"image_url"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
}

// Derive recomputes IsActive from the stored stock.
func (r *Reward) Derive() {
	r.IsActive = r.Stock > 0
}

// NewReward carries the fields required to create a reward.
// PointsRequired must be positive and Stock non-negative.
type NewReward struct {
	Name           string
	Description    string
	PointsRequired int64
	Stock          int
	ImageURL       string
}

// RewardUpdate is a partial-update payload; nil fields are left unchanged.
type RewardUpdate struct {
	Name           *string
	Description    *string
	PointsRequired *int64
	Stock          *int
	ImageURL       *string
}

// Redemption is one append-only record of a user spending points on a
// reward. UserName and RewardName are joined in by the adapter for display
// and never stored on the row itself.
type Redemption struct {
	ID             int64     `json:"id,string"`
	UserID         int64     `json:"user_id,string"`
	RewardID       int64     `json:"reward_id,string"`
	UserName       string    `json:"user_name"`
	RewardName     string    `json:"reward_name"`
	PointsDeducted int64     `json:"points_deducted"`
	Status         string    `json:"status"`
	RedeemedAt     time.Time `json:"redeemed_at"`
}

// RedemptionFilter narrows redemption queries to one user and/or one
// reward. Zero values mean "no constraint".
type RedemptionFilter struct {
	UserID   int64
	RewardID int64
}
