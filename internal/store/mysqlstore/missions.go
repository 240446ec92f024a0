package mysqlstore

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/ecowave/ecowave-hub/internal/model"
	"github.com/ecowave/ecowave-hub/internal/store"
)

const missionCols = `m.id, m.title, m.description, m.reward_points, m.starts_at, m.ends_at,
	(SELECT COUNT(*) FROM mission_submissions ms WHERE ms.mission_id = m.id)`

func (s *Store) scanMission(row interface{ Scan(...any) error }) (model.Mission, error) {
	var m model.Mission
	err := row.Scan(&m.ID, &m.Title, &m.Description, &m.Points, &m.StartsAt, &m.EndsAt, &m.SubmissionCount)
	if err != nil {
		return model.Mission{}, err
	}
	m.Derive(s.now())
	return m, nil
}

// ListMissions returns all missions, soonest first.
func (s *Store) ListMissions(ctx context.Context) ([]model.Mission, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+missionCols+` FROM missions m ORDER BY m.starts_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Mission
	for rows.Next() {
		m, err := s.scanMission(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// GetMission fetches a mission by id.
func (s *Store) GetMission(ctx context.Context, id int64) (model.Mission, error) {
	m, err := s.scanMission(s.db.QueryRowContext(ctx,
		`SELECT `+missionCols+` FROM missions m WHERE m.id = ? LIMIT 1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Mission{}, store.ErrNotFound
	}
	return m, err
}

// CreateMission inserts a mission and returns the stored row.
func (s *Store) CreateMission(ctx context.Context, nm model.NewMission) (m model.Mission, err error) {
	defer recoverTo(&err)
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO missions (title, description, reward_points, starts_at, ends_at) VALUES (?,?,?,?,?)`,
		nm.Title, nm.Description, nm.Points, nm.StartsAt, nm.EndsAt)
	if err != nil {
		return model.Mission{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Mission{}, err
	}
	return s.GetMission(ctx, id)
}

func missionSetClauses(upd model.MissionUpdate) (set []string, args []any) {
	if upd.Title != nil {
		set = append(set, "title = ?")
		args = append(args, *upd.Title)
	}
	if upd.Description != nil {
		set = append(set, "description = ?")
		args = append(args, *upd.Description)
	}
	if upd.Points != nil {
		set = append(set, "reward_points = ?")
		args = append(args, *upd.Points)
	}
	if upd.StartsAt != nil {
		set = append(set, "starts_at = ?")
		args = append(args, *upd.StartsAt)
	}
	if upd.EndsAt != nil {
		set = append(set, "ends_at = ?")
		args = append(args, *upd.EndsAt)
	}
	return set, args
}

// UpdateMission applies a partial update and returns the stored row.
func (s *Store) UpdateMission(ctx context.Context, id int64, upd model.MissionUpdate) (m model.Mission, err error) {
	defer recoverTo(&err)
	set, args := missionSetClauses(upd)
	if len(set) == 0 {
		return s.GetMission(ctx, id)
	}
	args = append(args, id)
	if _, err := s.db.ExecContext(ctx,
		`UPDATE missions SET `+strings.Join(set, ", ")+` WHERE id = ?`, args...); err != nil {
		return model.Mission{}, err
	}
	return s.GetMission(ctx, id)
}

// DeleteMission removes a mission and its submissions.
func (s *Store) DeleteMission(ctx context.Context, id int64) (err error) {
	defer recoverTo(&err)
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	if _, err := tx.ExecContext(ctx, `DELETE FROM mission_submissions WHERE mission_id = ?`, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM missions WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return store.ErrNotFound
	}
	return tx.Commit()
}

const submissionCols = `id, user_id, mission_id, photo_count, status, created_at`

func scanSubmission(row interface{ Scan(...any) error }) (model.Submission, error) {
	var sub model.Submission
	err := row.Scan(&sub.ID, &sub.UserID, &sub.MissionID, &sub.PhotoCount, &sub.Status, &sub.CreatedAt)
	if err != nil {
		return model.Submission{}, err
	}
	// Legacy rows carry mixed-case status values; canonical form is lower.
	sub.Status = model.NormalizeSubmissionStatus(sub.Status)
	return sub, nil
}

// ListSubmissions returns submissions newest first; missionID 0 lists
// everything.
func (s *Store) ListSubmissions(ctx context.Context, missionID int64) ([]model.Submission, error) {
	q := `SELECT ` + submissionCols + ` FROM mission_submissions`
	var args []any
	if missionID != 0 {
		q += ` WHERE mission_id = ?`
		args = append(args, missionID)
	}
	q += ` ORDER BY created_at DESC`
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Submission
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sub)
	}
	return out, rows.Err()
}

// GetSubmission fetches one submission by id.
func (s *Store) GetSubmission(ctx context.Context, id int64) (model.Submission, error) {
	sub, err := scanSubmission(s.db.QueryRowContext(ctx,
		`SELECT `+submissionCols+` FROM mission_submissions WHERE id = ? LIMIT 1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Submission{}, store.ErrNotFound
	}
	return sub, err
}

// ReviewSubmission transitions a pending submission to approved or
// rejected. Reviewing a non-pending submission is a conflict, never a
// silent overwrite. The points award itself is applied downstream by the
// review-event consumer.
func (s *Store) ReviewSubmission(ctx context.Context, id int64, approve bool) (sub model.Submission, err error) {
	defer recoverTo(&err)
	next := model.SubmissionRejected
	if approve {
		next = model.SubmissionApproved
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE mission_submissions SET status = ? WHERE id = ? AND LOWER(status) = ?`,
		next, id, model.SubmissionPending)
	if err != nil {
		return model.Submission{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, getErr := s.GetSubmission(ctx, id); getErr != nil {
			return model.Submission{}, getErr
		}
		return model.Submission{}, store.ErrConflict
	}
	return s.GetSubmission(ctx, id)
}
