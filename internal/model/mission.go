package model

import (
	"strings"
	"time"
)

// Submission review states. Values are canonical lower case; adapters
// normalize whatever casing the backend returns through
// NormalizeSubmissionStatus before it leaves the store layer.
const (
	SubmissionPending  = "pending"
	SubmissionApproved = "approved"
	SubmissionRejected = "rejected"
)

// NormalizeSubmissionStatus folds a backend status value onto the
// canonical constants. Unknown values are lowercased and passed through so
// they remain visible rather than silently dropped.
func NormalizeSubmissionStatus(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Mission is a points-earning challenge with a submission window.
// Status and SubmissionCount are derived on read, same as events.
type Mission struct {
	ID              int64     `json:"id,string"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Points          int64     `json:"points"`
	StartsAt        time.Time `json:"start_date"`
	EndsAt          time.Time `json:"end_date"`
	Status          string    `json:"status"`
	SubmissionCount int       `json:"submission_count"`
}

// Derive fills the computed status from the stored window.
func (m *Mission) Derive(now time.Time) {
	m.Status = ScheduleStatus(now, m.StartsAt, m.EndsAt)
}

// NewMission carries the fields required to create a mission.
type NewMission struct {
	Title       string
	Description string
	Points      int64
	StartsAt    time.Time
	EndsAt      time.Time
}

// MissionUpdate is a partial-update payload; nil fields are left unchanged.
type MissionUpdate struct {
	Title       *string
	Description *string
	Points      *int64
	StartsAt    *time.Time
	EndsAt      *time.Time
}

// Submission is a user's proof entry for a mission. Only pending
// submissions can be reviewed; approving one triggers the points award
// side effect downstream.
type Submission struct {
	ID         int64     `json:"id,string"`
	UserID     int64     `json:"user_id,string"`
	MissionID  int64     `json:"mission_id,string"`
	PhotoCount int       `json:"photo_upload_count"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}
