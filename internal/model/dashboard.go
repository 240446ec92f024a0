package model

// DashboardStats aggregates the headline numbers shown on the admin
// dashboard. Every field is computed by the backend at read time.
type DashboardStats struct {
	TotalUsers         int64 `json:"total_users"`
	TotalPoints        int64 `json:"total_points"`
	UpcomingEvents     int64 `json:"upcoming_events"`
	PendingSubmissions int64 `json:"pending_submissions"`
	TotalRedemptions   int64 `json:"total_redemptions"`
	TotalFeedback      int64 `json:"total_feedback"`
}

// EngagementPoint is one month of activity for the engagement chart.
// Month is formatted "2006-01".
type EngagementPoint struct {
	Month        string `json:"month"`
	Participants int64  `json:"participants"`
	Submissions  int64  `json:"submissions"`
	Redemptions  int64  `json:"redemptions"`
}
