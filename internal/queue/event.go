// Package queue defines message payloads exchanged over the message broker.
package queue

// SubmissionReviewedEvent is published when an admin reviews a mission
// submission. It carries enough information for downstream consumers to
// award points and log the outcome without querying the primary backend.
type SubmissionReviewedEvent struct {
	SubmissionID int64  `json:"submission_id"`
	MissionID    int64  `json:"mission_id"`
	MissionTitle string `json:"mission_title"`
	UserID       int64  `json:"user_id"`
	Approved     bool   `json:"approved"`
	Points       int64  `json:"points"`
	ReviewedBy   int64  `json:"reviewed_by"`
	ReviewedAt   string `json:"reviewed_at"`
}
