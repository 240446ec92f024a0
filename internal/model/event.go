package model

import "time"

// Event is a scheduled sustainability event. EndsAt must be after StartsAt;
// the form layer enforces that before the payload reaches an adapter.
//
// Status, Date and ParticipantCount are derived on read: Status from the
// clock (see ScheduleStatus), Date as the date portion of StartsAt, and
// ParticipantCount from the event_participants rows. None of the three is
// ever written back.
type Event struct {
	ID               int64     `json:"id,string"`
	Title            string    `json:"title"`
	StartsAt         time.Time `json:"start_date"`
	EndsAt           time.Time `json:"end_date"`
	Location         string    `json:"location"`
	Points           int64     `json:"points"`
	ImageURL         string    `json:"image_url"`
	Status           string    `json:"status"`
	Date             string    `json:"date"`
	MaxParticipants  int       `json:"max_participants"`
	ParticipantCount int       `json:"participant_count"`
}

// Derive fills the computed fields from the stored primitives.
func (e *Event) Derive(now time.Time) {
	e.Status = ScheduleStatus(now, e.StartsAt, e.EndsAt)
	e.Date = e.StartsAt.Format("2006-01-02")
}

// NewEvent carries the fields required to create an event.
type NewEvent struct {
	Title           string
	StartsAt        time.Time
	EndsAt          time.Time
	Location        string
	Points          int64
	ImageURL        string
	MaxParticipants int
}

// EventUpdate is a partial-update payload; nil fields are left unchanged.
type EventUpdate struct {
	Title           *string
	StartsAt        *time.Time
	EndsAt          *time.Time
	Location        *string
	Points          *int64
	ImageURL        *string
	MaxParticipants *int
}
