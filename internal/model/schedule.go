package model

import "time"

// Schedule states derived from the clock for events and missions. The
// status is never stored; adapters recompute it on every read.
const (
	StatusUpcoming  = "upcoming"
	StatusOngoing   = "ongoing"
	StatusCompleted = "completed"
)

// ScheduleStatus classifies a [start, end] window relative to now.
// Both boundaries count as ongoing: upcoming strictly before start,
// completed strictly after end.
func ScheduleStatus(now, start, end time.Time) string {
	switch {
	case now.Before(start):
		return StatusUpcoming
	case now.After(end):
		return StatusCompleted
	default:
		return StatusOngoing
	}
}
