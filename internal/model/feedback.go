package model

import "time"

// Feedback is a user-submitted comment. EventID is nil for general
// feedback and set when the feedback targets a specific event. Rating is
// optional; when present it is 1 to 5.
type Feedback struct {
	ID        int64     `json:"id,string"`
	UserID    int64     `json:"user_id,string"`
	EventID   *int64    `json:"event_id,string,omitempty"`
	Rating    *int      `json:"rating,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// NewFeedback carries the fields required to record feedback.
type NewFeedback struct {
	UserID  int64
	EventID *int64
	Rating  *int
	Message string
}
