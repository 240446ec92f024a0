package model

import (
	"testing"
	"time"
)

func TestScheduleStatus(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 12, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		now  time.Time
		want string
	}{
		{name: "before start", now: start.Add(-time.Minute), want: StatusUpcoming},
		{name: "exactly at start", now: start, want: StatusOngoing},
		{name: "between start and end", now: start.Add(24 * time.Hour), want: StatusOngoing},
		{name: "exactly at end", now: end, want: StatusOngoing},
		{name: "after end", now: end.Add(time.Second), want: StatusCompleted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScheduleStatus(tt.now, start, end); got != tt.want {
				t.Errorf("ScheduleStatus() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRewardDerive(t *testing.T) {
	r := Reward{Stock: 1}
	r.Derive()
	if !r.IsActive {
		t.Fatalf("stock=1 should be active")
	}
	r.Stock = 0
	r.Derive()
	if r.IsActive {
		t.Fatalf("stock=0 should be inactive")
	}
}

func TestNormalizeSubmissionStatus(t *testing.T) {
	for in, want := range map[string]string{
		"Pending":  SubmissionPending,
		"PENDING":  SubmissionPending,
		" pending": SubmissionPending,
		"Approved": SubmissionApproved,
		"rejected": SubmissionRejected,
	} {
		if got := NormalizeSubmissionStatus(in); got != want {
			t.Errorf("NormalizeSubmissionStatus(%q) = %q, want %q", in, got, want)
		}
	}
}
