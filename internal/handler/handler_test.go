package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/ecowave/ecowave-hub/internal/audit"
	"github.com/ecowave/ecowave-hub/internal/model"
	"github.com/ecowave/ecowave-hub/internal/store"
)

// fakeStore overrides only the operations a test needs; calling anything
// else panics through the embedded nil interface, which is exactly what a
// test wants to hear.
type fakeStore struct {
	store.DataService

	getUser    func(ctx context.Context, id int64) (model.User, error)
	updateUser func(ctx context.Context, id int64, upd model.UserUpdate) (model.User, error)
	redeem     func(ctx context.Context, userID, rewardID int64) (model.Redemption, error)
	listHist   func(ctx context.Context, limit int) ([]model.HistoryEntry, error)
	review     func(ctx context.Context, id int64, approve bool) (model.Submission, error)
	getMission func(ctx context.Context, id int64) (model.Mission, error)
	createFb   func(ctx context.Context, nf model.NewFeedback) (model.Feedback, error)
}

func (f *fakeStore) GetUser(ctx context.Context, id int64) (model.User, error) {
	return f.getUser(ctx, id)
}

func (f *fakeStore) UpdateUser(ctx context.Context, id int64, upd model.UserUpdate) (model.User, error) {
	return f.updateUser(ctx, id, upd)
}

func (f *fakeStore) RedeemReward(ctx context.Context, userID, rewardID int64) (model.Redemption, error) {
	return f.redeem(ctx, userID, rewardID)
}

func (f *fakeStore) ListHistory(ctx context.Context, limit int) ([]model.HistoryEntry, error) {
	return f.listHist(ctx, limit)
}

func (f *fakeStore) ReviewSubmission(ctx context.Context, id int64, approve bool) (model.Submission, error) {
	return f.review(ctx, id, approve)
}

func (f *fakeStore) GetMission(ctx context.Context, id int64) (model.Mission, error) {
	return f.getMission(ctx, id)
}

func (f *fakeStore) CreateFeedback(ctx context.Context, nf model.NewFeedback) (model.Feedback, error) {
	return f.createFb(ctx, nf)
}

func newTestAudit() (*audit.Logger, *audit.MemoryFallback) {
	fb := audit.NewMemoryFallback()
	return audit.New(nil, fb), fb
}

func TestUpdateUserRecordsRoleChange(t *testing.T) {
	before := model.User{ID: 5, Email: "rika@ecowave.org", FullName: "Rika Sato", Role: model.RoleUser}
	after := before
	after.Role = model.RoleAdmin

	svc := &fakeStore{
		getUser: func(_ context.Context, id int64) (model.User, error) {
			if id != 5 {
				t.Fatalf("unexpected id %d", id)
			}
			return before, nil
		},
		updateUser: func(_ context.Context, _ int64, upd model.UserUpdate) (model.User, error) {
			if upd.Role == nil || *upd.Role != model.RoleAdmin {
				t.Fatalf("role not forwarded: %+v", upd)
			}
			return after, nil
		},
	}
	auditLog, fb := newTestAudit()
	h := NewAdminHandler(svc, auditLog, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPut, "/v1/admin/users/5", strings.NewReader(`{"role":"admin"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/admin/users/:id")
	c.SetParamNames("id")
	c.SetParamValues("5")

	if err := h.UpdateUser(c); err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	entries, _ := fb.Recent(context.Background(), 1)
	if len(entries) != 1 {
		t.Fatalf("expected one audit entry, got %d", len(entries))
	}
	got := entries[0]
	if got.ActionType != model.ActionUpdate || got.EntityType != model.EntityUser {
		t.Errorf("entry = %+v", got)
	}
	want := "Updated user: rika@ecowave.org (role: user → admin)"
	if got.Details != want {
		t.Errorf("details = %q, want %q", got.Details, want)
	}
}

func TestRedeemRewardMapsStockAndBalanceErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "out of stock", err: store.ErrOutOfStock, wantStatus: http.StatusConflict},
		{name: "insufficient points", err: store.ErrInsufficientPoints, wantStatus: http.StatusConflict},
		{name: "missing reward", err: store.ErrNotFound, wantStatus: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeStore{
				redeem: func(_ context.Context, _, _ int64) (model.Redemption, error) {
					return model.Redemption{}, tt.err
				},
			}
			auditLog, _ := newTestAudit()
			h := NewAdminHandler(svc, auditLog, nil)

			e := echo.New()
			req := httptest.NewRequest(http.MethodPost, "/v1/admin/rewards/2/redeem", strings.NewReader(`{"user_id":"9"}`))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			c.SetPath("/v1/admin/rewards/:id/redeem")
			c.SetParamNames("id")
			c.SetParamValues("2")

			if err := h.RedeemReward(c); err != nil {
				t.Fatalf("RedeemReward: %v", err)
			}
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestReviewSubmissionRecordsStatusChange(t *testing.T) {
	svc := &fakeStore{
		review: func(_ context.Context, id int64, approve bool) (model.Submission, error) {
			if id != 7 || !approve {
				t.Fatalf("review(%d, %v)", id, approve)
			}
			return model.Submission{ID: 7, UserID: 3, MissionID: 2, Status: model.SubmissionApproved}, nil
		},
		getMission: func(_ context.Context, id int64) (model.Mission, error) {
			return model.Mission{ID: id, Title: "Beach Guardians", Points: 50}, nil
		},
	}
	auditLog, fb := newTestAudit()
	h := NewAdminHandler(svc, auditLog, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/admin/submissions/7/review", strings.NewReader(`{"approve":true}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/admin/submissions/:id/review")
	c.SetParamNames("id")
	c.SetParamValues("7")

	if err := h.ReviewSubmission(c); err != nil {
		t.Fatalf("ReviewSubmission: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	entries, _ := fb.Recent(context.Background(), 1)
	if len(entries) != 1 {
		t.Fatalf("expected one audit entry, got %d", len(entries))
	}
	got := entries[0]
	if got.ActionType != model.ActionUpdate || got.EntityType != model.EntityMission || got.EntityID != 2 {
		t.Errorf("entry = %+v", got)
	}
	want := "Updated mission: Beach Guardians (status: pending → approved)"
	if got.Details != want {
		t.Errorf("details = %q, want %q", got.Details, want)
	}
}

func TestCreateFeedbackIsAudited(t *testing.T) {
	svc := &fakeStore{
		createFb: func(_ context.Context, nf model.NewFeedback) (model.Feedback, error) {
			return model.Feedback{ID: 11, UserID: nf.UserID, Message: nf.Message}, nil
		},
	}
	auditLog, fb := newTestAudit()
	h := NewAdminHandler(svc, auditLog, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/admin/feedback", strings.NewReader(`{"user_id":"3","message":"great event"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/admin/feedback")

	if err := h.CreateFeedback(c); err != nil {
		t.Fatalf("CreateFeedback: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	entries, _ := fb.Recent(context.Background(), 1)
	if len(entries) != 1 {
		t.Fatalf("expected one audit entry, got %d", len(entries))
	}
	got := entries[0]
	if got.ActionType != model.ActionCreate || got.EntityType != model.EntityFeedback || got.EntityID != 11 {
		t.Errorf("entry = %+v", got)
	}
	if got.Details != "Recorded feedback #11 from user #3" {
		t.Errorf("details = %q", got.Details)
	}
}

func TestRedeemRewardIsAudited(t *testing.T) {
	svc := &fakeStore{
		redeem: func(_ context.Context, userID, rewardID int64) (model.Redemption, error) {
			return model.Redemption{ID: 20, UserID: userID, RewardID: rewardID,
				RewardName: "Steel Bottle", PointsDeducted: 75, Status: "completed"}, nil
		},
	}
	auditLog, fb := newTestAudit()
	h := NewAdminHandler(svc, auditLog, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/admin/rewards/2/redeem", strings.NewReader(`{"user_id":"9"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/admin/rewards/:id/redeem")
	c.SetParamNames("id")
	c.SetParamValues("2")

	if err := h.RedeemReward(c); err != nil {
		t.Fatalf("RedeemReward: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	entries, _ := fb.Recent(context.Background(), 1)
	if len(entries) != 1 {
		t.Fatalf("expected one audit entry, got %d", len(entries))
	}
	got := entries[0]
	if got.EntityType != model.EntityReward || got.EntityID != 2 {
		t.Errorf("entry = %+v", got)
	}
	if got.Details != `Redeemed reward "Steel Bottle" for user #9 (75 points deducted)` {
		t.Errorf("details = %q", got.Details)
	}
}

func TestListHistoryFallsBackToLocalEntries(t *testing.T) {
	svc := &fakeStore{
		listHist: func(_ context.Context, _ int) ([]model.HistoryEntry, error) {
			return nil, errors.New("backend down")
		},
	}
	auditLog, _ := newTestAudit()
	auditLog.LogAction(context.Background(), model.HistoryEntry{
		ActionType: model.ActionCreate,
		EntityType: model.EntityEvent,
		EntityID:   4,
		Details:    "Created event: Beach Cleanup",
	})
	h := NewAdminHandler(svc, auditLog, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/admin/history", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/admin/history")

	if err := h.ListHistory(c); err != nil {
		t.Fatalf("ListHistory: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var body struct {
		Items  []model.HistoryEntry `json:"items"`
		Source string               `json:"source"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Source != "local" {
		t.Errorf("source = %q, want local", body.Source)
	}
	if len(body.Items) != 1 || body.Items[0].Details != "Created event: Beach Cleanup" {
		t.Errorf("items = %+v", body.Items)
	}
}
