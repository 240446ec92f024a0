package reststore

import (
	"context"
	"net/http"
	"strconv"

	"github.com/ecowave/ecowave-hub/internal/model"
)

// Entity ids travel as strings in paths and payloads; formatting is
// centralized here so both directions stay consistent.
func pathID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// updateBody builds a partial-update JSON object holding only the fields
// present in the payload, so the backend never nulls out unspecified
// columns.
func updateBody(pairs map[string]any) map[string]any {
	body := make(map[string]any, len(pairs))
	for k, v := range pairs {
		switch p := v.(type) {
		case *string:
			if p != nil {
				body[k] = *p
			}
		case *int:
			if p != nil {
				body[k] = *p
			}
		case *int64:
			if p != nil {
				body[k] = *p
			}
		default:
			if v != nil {
				body[k] = v
			}
		}
	}
	return body
}

// ----- auth -----

func (s *Store) SignIn(ctx context.Context, email, password string) (model.User, error) {
	var u model.User
	err := s.do(ctx, http.MethodPost, "/auth/login",
		map[string]string{"email": email, "password": password}, &u)
	return u, err
}

func (s *Store) SignUp(ctx context.Context, nu model.NewUser) (model.User, error) {
	var u model.User
	err := s.do(ctx, http.MethodPost, "/auth/signup", map[string]any{
		"email":      nu.Email,
		"password":   nu.Password,
		"full_name":  nu.FullName,
		"role":       nu.Role,
		"points":     nu.Points,
		"avatar_url": nu.AvatarURL,
	}, &u)
	return u, err
}

func (s *Store) SignOut(ctx context.Context, userID int64) error {
	return s.do(ctx, http.MethodPost, "/auth/logout",
		map[string]string{"user_id": pathID(userID)}, nil)
}

// ----- users -----

func (s *Store) ListUsers(ctx context.Context) ([]model.User, error) {
	var out []model.User
	err := s.do(ctx, http.MethodGet, "/users", nil, &out)
	return out, err
}

func (s *Store) GetUser(ctx context.Context, id int64) (model.User, error) {
	var u model.User
	err := s.do(ctx, http.MethodGet, "/users/"+pathID(id), nil, &u)
	return u, err
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	var u model.User
	err := s.do(ctx, http.MethodGet, "/users/by-email/"+email, nil, &u)
	return u, err
}

func (s *Store) CreateUser(ctx context.Context, nu model.NewUser) (model.User, error) {
	var u model.User
	err := s.do(ctx, http.MethodPost, "/users", map[string]any{
		"email":      nu.Email,
		"password":   nu.Password,
		"full_name":  nu.FullName,
		"role":       nu.Role,
		"points":     nu.Points,
		"avatar_url": nu.AvatarURL,
	}, &u)
	return u, err
}

func (s *Store) UpdateUser(ctx context.Context, id int64, upd model.UserUpdate) (model.User, error) {
	var u model.User
	err := s.do(ctx, http.MethodPatch, "/users/"+pathID(id), updateBody(map[string]any{
		"email":      upd.Email,
		"full_name":  upd.FullName,
		"role":       upd.Role,
		"points":     upd.Points,
		"avatar_url": upd.AvatarURL,
	}), &u)
	return u, err
}

func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	return s.do(ctx, http.MethodDelete, "/users/"+pathID(id), nil, nil)
}

func (s *Store) AddPoints(ctx context.Context, id, delta int64) (model.User, error) {
	var u model.User
	err := s.do(ctx, http.MethodPost, "/users/"+pathID(id)+"/points",
		map[string]int64{"delta": delta}, &u)
	return u, err
}

// ----- events -----

func (s *Store) ListEvents(ctx context.Context) ([]model.Event, error) {
	var out []model.Event
	err := s.do(ctx, http.MethodGet, "/events", nil, &out)
	return out, err
}

func (s *Store) GetEvent(ctx context.Context, id int64) (model.Event, error) {
	var e model.Event
	err := s.do(ctx, http.MethodGet, "/events/"+pathID(id), nil, &e)
	return e, err
}

func (s *Store) CreateEvent(ctx context.Context, ne model.NewEvent) (model.Event, error) {
	var e model.Event
	err := s.do(ctx, http.MethodPost, "/events", map[string]any{
		"title":            ne.Title,
		"start_date":       ne.StartsAt,
		"end_date":         ne.EndsAt,
		"location":         ne.Location,
		"points":           ne.Points,
		"image_url":        ne.ImageURL,
		"max_participants": ne.MaxParticipants,
	}, &e)
	return e, err
}

func (s *Store) UpdateEvent(ctx context.Context, id int64, upd model.EventUpdate) (model.Event, error) {
	body := updateBody(map[string]any{
		"title":            upd.Title,
		"location":         upd.Location,
		"points":           upd.Points,
		"image_url":        upd.ImageURL,
		"max_participants": upd.MaxParticipants,
	})
	if upd.StartsAt != nil {
		body["start_date"] = *upd.StartsAt
	}
	if upd.EndsAt != nil {
		body["end_date"] = *upd.EndsAt
	}
	var e model.Event
	err := s.do(ctx, http.MethodPatch, "/events/"+pathID(id), body, &e)
	return e, err
}

func (s *Store) DeleteEvent(ctx context.Context, id int64) error {
	return s.do(ctx, http.MethodDelete, "/events/"+pathID(id), nil, nil)
}

// ----- rewards -----

func (s *Store) ListRewards(ctx context.Context) ([]model.Reward, error) {
	var out []model.Reward
	err := s.do(ctx, http.MethodGet, "/rewards", nil, &out)
	return out, err
}

func (s *Store) GetReward(ctx context.Context, id int64) (model.Reward, error) {
	var r model.Reward
	err := s.do(ctx, http.MethodGet, "/rewards/"+pathID(id), nil, &r)
	return r, err
}

func (s *Store) CreateReward(ctx context.Context, nr model.NewReward) (model.Reward, error) {
	var r model.Reward
	err := s.do(ctx, http.MethodPost, "/rewards", map[string]any{
		"name":            nr.Name,
		"description":     nr.Description,
		"points_required": nr.PointsRequired,
		"stock":           nr.Stock,
		"image_url":       nr.ImageURL,
	}, &r)
	return r, err
}

func (s *Store) UpdateReward(ctx context.Context, id int64, upd model.RewardUpdate) (model.Reward, error) {
	var r model.Reward
	err := s.do(ctx, http.MethodPatch, "/rewards/"+pathID(id), updateBody(map[string]any{
		"name":            upd.Name,
		"description":     upd.Description,
		"points_required": upd.PointsRequired,
		"stock":           upd.Stock,
		"image_url":       upd.ImageURL,
	}), &r)
	return r, err
}

func (s *Store) DeleteReward(ctx context.Context, id int64) error {
	return s.do(ctx, http.MethodDelete, "/rewards/"+pathID(id), nil, nil)
}

func (s *Store) ListRedemptions(ctx context.Context, f model.RedemptionFilter) ([]model.Redemption, error) {
	path := "/redemptions"
	sep := "?"
	if f.UserID != 0 {
		path += sep + "user_id=" + pathID(f.UserID)
		sep = "&"
	}
	if f.RewardID != 0 {
		path += sep + "reward_id=" + pathID(f.RewardID)
	}
	var out []model.Redemption
	err := s.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

func (s *Store) RedeemReward(ctx context.Context, userID, rewardID int64) (model.Redemption, error) {
	var r model.Redemption
	err := s.do(ctx, http.MethodPost, "/rewards/"+pathID(rewardID)+"/redeem",
		map[string]string{"user_id": pathID(userID)}, &r)
	return r, err
}

// ----- feedback -----

func (s *Store) ListFeedback(ctx context.Context, eventID int64) ([]model.Feedback, error) {
	path := "/feedback"
	if eventID != 0 {
		path += "?event_id=" + pathID(eventID)
	}
	var out []model.Feedback
	err := s.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

func (s *Store) GetFeedback(ctx context.Context, id int64) (model.Feedback, error) {
	var f model.Feedback
	err := s.do(ctx, http.MethodGet, "/feedback/"+pathID(id), nil, &f)
	return f, err
}

func (s *Store) CreateFeedback(ctx context.Context, nf model.NewFeedback) (model.Feedback, error) {
	body := map[string]any{
		"user_id": pathID(nf.UserID),
		"message": nf.Message,
	}
	if nf.EventID != nil {
		body["event_id"] = pathID(*nf.EventID)
	}
	if nf.Rating != nil {
		body["rating"] = *nf.Rating
	}
	var f model.Feedback
	err := s.do(ctx, http.MethodPost, "/feedback", body, &f)
	return f, err
}

func (s *Store) DeleteFeedback(ctx context.Context, id int64) error {
	return s.do(ctx, http.MethodDelete, "/feedback/"+pathID(id), nil, nil)
}

// ----- missions -----

func (s *Store) ListMissions(ctx context.Context) ([]model.Mission, error) {
	var out []model.Mission
	err := s.do(ctx, http.MethodGet, "/missions", nil, &out)
	return out, err
}

func (s *Store) GetMission(ctx context.Context, id int64) (model.Mission, error) {
	var m model.Mission
	err := s.do(ctx, http.MethodGet, "/missions/"+pathID(id), nil, &m)
	return m, err
}

func (s *Store) CreateMission(ctx context.Context, nm model.NewMission) (model.Mission, error) {
	var m model.Mission
	err := s.do(ctx, http.MethodPost, "/missions", map[string]any{
		"title":       nm.Title,
		"description": nm.Description,
		"points":      nm.Points,
		"start_date":  nm.StartsAt,
		"end_date":    nm.EndsAt,
	}, &m)
	return m, err
}

func (s *Store) UpdateMission(ctx context.Context, id int64, upd model.MissionUpdate) (model.Mission, error) {
	body := updateBody(map[string]any{
		"title":       upd.Title,
		"description": upd.Description,
		"points":      upd.Points,
	})
	if upd.StartsAt != nil {
		body["start_date"] = *upd.StartsAt
	}
	if upd.EndsAt != nil {
		body["end_date"] = *upd.EndsAt
	}
	var m model.Mission
	err := s.do(ctx, http.MethodPatch, "/missions/"+pathID(id), body, &m)
	return m, err
}

func (s *Store) DeleteMission(ctx context.Context, id int64) error {
	return s.do(ctx, http.MethodDelete, "/missions/"+pathID(id), nil, nil)
}

func (s *Store) ListSubmissions(ctx context.Context, missionID int64) ([]model.Submission, error) {
	path := "/submissions"
	if missionID != 0 {
		path += "?mission_id=" + pathID(missionID)
	}
	var out []model.Submission
	if err := s.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Status = model.NormalizeSubmissionStatus(out[i].Status)
	}
	return out, nil
}

func (s *Store) GetSubmission(ctx context.Context, id int64) (model.Submission, error) {
	var sub model.Submission
	err := s.do(ctx, http.MethodGet, "/submissions/"+pathID(id), nil, &sub)
	sub.Status = model.NormalizeSubmissionStatus(sub.Status)
	return sub, err
}

func (s *Store) ReviewSubmission(ctx context.Context, id int64, approve bool) (model.Submission, error) {
	var sub model.Submission
	err := s.do(ctx, http.MethodPost, "/submissions/"+pathID(id)+"/review",
		map[string]bool{"approve": approve}, &sub)
	sub.Status = model.NormalizeSubmissionStatus(sub.Status)
	return sub, err
}

// ----- history -----

func (s *Store) AppendHistory(ctx context.Context, e model.HistoryEntry) error {
	if e.EntityID == 0 {
		e.EntityID = model.SystemEntityID
	}
	return s.do(ctx, http.MethodPost, "/history", e, nil)
}

func (s *Store) ListHistory(ctx context.Context, limit int) ([]model.HistoryEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	var out []model.HistoryEntry
	err := s.do(ctx, http.MethodGet, "/history?limit="+strconv.Itoa(limit), nil, &out)
	return out, err
}

// ----- dashboard -----

func (s *Store) DashboardStats(ctx context.Context) (model.DashboardStats, error) {
	var st model.DashboardStats
	err := s.do(ctx, http.MethodGet, "/stats", nil, &st)
	return st, err
}

func (s *Store) MonthlyEngagement(ctx context.Context, months int) ([]model.EngagementPoint, error) {
	if months <= 0 {
		months = 6
	}
	var out []model.EngagementPoint
	err := s.do(ctx, http.MethodGet, "/stats/engagement?months="+strconv.Itoa(months), nil, &out)
	return out, err
}
