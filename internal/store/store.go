// Package store defines the data-service contract every backend must
// implement. Handlers depend only on this interface; which adapter sits
// behind it (the MySQL primary or the generic REST client) is decided once
// by the factory, so swapping backends never touches a caller.
package store

import (
	"context"
	"errors"

	"github.com/ecowave/ecowave-hub/internal/model"
)

// Sentinel errors shared by all adapters. Handlers translate these into
// HTTP status codes; everything else is treated as an internal error.
var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrEmailExists indicates a unique-email violation on user creation.
	ErrEmailExists = errors.New("email already exists")
	// ErrInvalidCredentials indicates a failed sign-in attempt.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrConflict indicates the operation cannot proceed from the record's
	// current state, e.g. reviewing a submission that is not pending.
	ErrConflict = errors.New("conflict")
	// ErrOutOfStock indicates a redemption against a reward with no stock.
	ErrOutOfStock = errors.New("reward out of stock")
	// ErrInsufficientPoints indicates the user cannot afford the reward.
	ErrInsufficientPoints = errors.New("insufficient points")
)

// DataService is the single contract holding every backend operation the
// dashboard needs. Write operations return normalized errors instead of
// panicking; adapters recover internally so nothing unexpected crosses
// this boundary.
type DataService interface {
	// Authentication.
	SignIn(ctx context.Context, email, password string) (model.User, error)
	SignUp(ctx context.Context, nu model.NewUser) (model.User, error)
	SignOut(ctx context.Context, userID int64) error

	// Users.
	ListUsers(ctx context.Context) ([]model.User, error)
	GetUser(ctx context.Context, id int64) (model.User, error)
	GetUserByEmail(ctx context.Context, email string) (model.User, error)
	CreateUser(ctx context.Context, nu model.NewUser) (model.User, error)
	UpdateUser(ctx context.Context, id int64, upd model.UserUpdate) (model.User, error)
	DeleteUser(ctx context.Context, id int64) error
	AddPoints(ctx context.Context, id, delta int64) (model.User, error)

	// Events.
	ListEvents(ctx context.Context) ([]model.Event, error)
	GetEvent(ctx context.Context, id int64) (model.Event, error)
	CreateEvent(ctx context.Context, ne model.NewEvent) (model.Event, error)
	UpdateEvent(ctx context.Context, id int64, upd model.EventUpdate) (model.Event, error)
	DeleteEvent(ctx context.Context, id int64) error

	// Rewards and redemptions.
	ListRewards(ctx context.Context) ([]model.Reward, error)
	GetReward(ctx context.Context, id int64) (model.Reward, error)
	CreateReward(ctx context.Context, nr model.NewReward) (model.Reward, error)
	UpdateReward(ctx context.Context, id int64, upd model.RewardUpdate) (model.Reward, error)
	DeleteReward(ctx context.Context, id int64) error
	ListRedemptions(ctx context.Context, f model.RedemptionFilter) ([]model.Redemption, error)
	RedeemReward(ctx context.Context, userID, rewardID int64) (model.Redemption, error)

	// Feedback. eventID 0 lists everything.
	ListFeedback(ctx context.Context, eventID int64) ([]model.Feedback, error)
	GetFeedback(ctx context.Context, id int64) (model.Feedback, error)
	CreateFeedback(ctx context.Context, nf model.NewFeedback) (model.Feedback, error)
	DeleteFeedback(ctx context.Context, id int64) error

	// Missions and submissions. missionID 0 lists everything.
	ListMissions(ctx context.Context) ([]model.Mission, error)
	GetMission(ctx context.Context, id int64) (model.Mission, error)
	CreateMission(ctx context.Context, nm model.NewMission) (model.Mission, error)
	UpdateMission(ctx context.Context, id int64, upd model.MissionUpdate) (model.Mission, error)
	DeleteMission(ctx context.Context, id int64) error
	ListSubmissions(ctx context.Context, missionID int64) ([]model.Submission, error)
	GetSubmission(ctx context.Context, id int64) (model.Submission, error)
	ReviewSubmission(ctx context.Context, id int64, approve bool) (model.Submission, error)

	// Admin activity trail (append-only).
	AppendHistory(ctx context.Context, e model.HistoryEntry) error
	ListHistory(ctx context.Context, limit int) ([]model.HistoryEntry, error)

	// Dashboard aggregates.
	DashboardStats(ctx context.Context) (model.DashboardStats, error)
	MonthlyEngagement(ctx context.Context, months int) ([]model.EngagementPoint, error)

	// Ping verifies backend connectivity; the audit logger's availability
	// probe and the health endpoint both use it.
	Ping(ctx context.Context) error
}
