package mysqlstore

import (
	"context"
	"time"

	"github.com/ecowave/ecowave-hub/internal/model"
)

// DashboardStats computes the headline aggregates in one round trip.
func (s *Store) DashboardStats(ctx context.Context) (model.DashboardStats, error) {
	var st model.DashboardStats
	err := s.db.QueryRowContext(ctx, `SELECT
		(SELECT COUNT(*) FROM users),
		(SELECT COALESCE(SUM(redeemable_points), 0) FROM users),
		(SELECT COUNT(*) FROM events WHERE starts_at > UTC_TIMESTAMP()),
		(SELECT COUNT(*) FROM mission_submissions WHERE LOWER(status) = ?),
		(SELECT COUNT(*) FROM reward_redemptions),
		(SELECT COUNT(*) FROM feedback)`, model.SubmissionPending).
		Scan(&st.TotalUsers, &st.TotalPoints, &st.UpcomingEvents,
			&st.PendingSubmissions, &st.TotalRedemptions, &st.TotalFeedback)
	return st, err
}

// MonthlyEngagement returns one point per month for the trailing window,
// oldest first. Months with no activity still appear with zero counts so
// the chart axis stays continuous.
func (s *Store) MonthlyEngagement(ctx context.Context, months int) ([]model.EngagementPoint, error) {
	if months <= 0 {
		months = 6
	}
	now := s.now()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(months - 1), 0)

	byMonth := make(map[string]*model.EngagementPoint, months)
	var out []model.EngagementPoint
	for i := 0; i < months; i++ {
		m := first.AddDate(0, i, 0).Format("2006-01")
		out = append(out, model.EngagementPoint{Month: m})
	}
	for i := range out {
		byMonth[out[i].Month] = &out[i]
	}

	type src struct {
		query string
		apply func(p *model.EngagementPoint, n int64)
	}
	sources := []src{
		{`SELECT DATE_FORMAT(joined_at, '%Y-%m'), COUNT(*) FROM event_participants WHERE joined_at >= ? GROUP BY 1`,
			func(p *model.EngagementPoint, n int64) { p.Participants = n }},
		{`SELECT DATE_FORMAT(created_at, '%Y-%m'), COUNT(*) FROM mission_submissions WHERE created_at >= ? GROUP BY 1`,
			func(p *model.EngagementPoint, n int64) { p.Submissions = n }},
		{`SELECT DATE_FORMAT(redeemed_at, '%Y-%m'), COUNT(*) FROM reward_redemptions WHERE redeemed_at >= ? GROUP BY 1`,
			func(p *model.EngagementPoint, n int64) { p.Redemptions = n }},
	}
	for _, source := range sources {
		rows, err := s.db.QueryContext(ctx, source.query, first)
		if err != nil {
			return nil, err
		}
		for rows.Next() {
			var month string
			var n int64
			if err := rows.Scan(&month, &n); err != nil {
				rows.Close()
				return nil, err
			}
			if p, ok := byMonth[month]; ok {
				source.apply(p, n)
			}
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, err
		}
		rows.Close()
	}
	return out, nil
}
