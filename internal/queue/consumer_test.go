package queue

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/ecowave/ecowave-hub/internal/model"
	"github.com/ecowave/ecowave-hub/internal/store"
)

// pointsRecorder overrides only AddPoints; any other call panics through
// the embedded nil interface.
type pointsRecorder struct {
	store.DataService

	userID int64
	delta  int64
	calls  int
}

func (p *pointsRecorder) AddPoints(_ context.Context, id, delta int64) (model.User, error) {
	p.userID = id
	p.delta = delta
	p.calls++
	return model.User{ID: id, Points: delta}, nil
}

func TestHandleMessageAwardsPointsOnApproval(t *testing.T) {
	t.Chdir(t.TempDir())

	ev := SubmissionReviewedEvent{
		SubmissionID: 7,
		MissionID:    2,
		MissionTitle: "Beach Guardians",
		UserID:       3,
		Approved:     true,
		Points:       50,
		ReviewedBy:   1,
		ReviewedAt:   "2026-08-30T10:00:00Z",
	}
	body, err := json.Marshal(ev)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	svc := &pointsRecorder{}
	if err := handleMessage(context.Background(), body, svc); err != nil {
		t.Fatalf("handleMessage: %v", err)
	}
	if svc.calls != 1 {
		t.Fatalf("AddPoints calls = %d, want 1", svc.calls)
	}
	if svc.userID != 3 || svc.delta != 50 {
		t.Errorf("AddPoints(%d, %d), want (3, 50)", svc.userID, svc.delta)
	}
}

func TestHandleMessageSkipsPointsOnRejection(t *testing.T) {
	t.Chdir(t.TempDir())

	ev := SubmissionReviewedEvent{SubmissionID: 8, MissionID: 2, UserID: 3, Approved: false, Points: 50}
	body, err := json.Marshal(ev)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	svc := &pointsRecorder{}
	if err := handleMessage(context.Background(), body, svc); err != nil {
		t.Fatalf("handleMessage: %v", err)
	}
	if svc.calls != 0 {
		t.Errorf("AddPoints calls = %d, want 0", svc.calls)
	}
}
