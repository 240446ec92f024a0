package mysqlstore

import (
	"context"
	"database/sql"
	"errors"

	"github.com/ecowave/ecowave-hub/internal/model"
	"github.com/ecowave/ecowave-hub/internal/store"
)

const feedbackCols = `id, user_id, event_id, rating, message, created_at`

func scanFeedback(row interface{ Scan(...any) error }) (model.Feedback, error) {
	var f model.Feedback
	var eventID sql.NullInt64
	var rating sql.NullInt64
	err := row.Scan(&f.ID, &f.UserID, &eventID, &rating, &f.Message, &f.CreatedAt)
	if err != nil {
		return model.Feedback{}, err
	}
	if eventID.Valid {
		f.EventID = &eventID.Int64
	}
	if rating.Valid {
		v := int(rating.Int64)
		f.Rating = &v
	}
	return f, nil
}

// ListFeedback returns feedback newest first; eventID 0 lists everything,
// otherwise only feedback targeting that event.
func (s *Store) ListFeedback(ctx context.Context, eventID int64) ([]model.Feedback, error) {
	q := `SELECT ` + feedbackCols + ` FROM feedback`
	var args []any
	if eventID != 0 {
		q += ` WHERE event_id = ?`
		args = append(args, eventID)
	}
	q += ` ORDER BY created_at DESC`
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Feedback
	for rows.Next() {
		f, err := scanFeedback(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// GetFeedback fetches one feedback record by id.
func (s *Store) GetFeedback(ctx context.Context, id int64) (model.Feedback, error) {
	f, err := scanFeedback(s.db.QueryRowContext(ctx,
		`SELECT `+feedbackCols+` FROM feedback WHERE id = ? LIMIT 1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Feedback{}, store.ErrNotFound
	}
	return f, err
}

// CreateFeedback inserts a feedback record. EventID and Rating are
// nullable columns; nil pointers insert NULL.
func (s *Store) CreateFeedback(ctx context.Context, nf model.NewFeedback) (f model.Feedback, err error) {
	defer recoverTo(&err)
	var eventID any
	if nf.EventID != nil {
		eventID = *nf.EventID
	}
	var rating any
	if nf.Rating != nil {
		rating = *nf.Rating
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO feedback (user_id, event_id, rating, message) VALUES (?,?,?,?)`,
		nf.UserID, eventID, rating, nf.Message)
	if err != nil {
		return model.Feedback{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Feedback{}, err
	}
	return s.GetFeedback(ctx, id)
}

// DeleteFeedback removes a feedback record by id.
func (s *Store) DeleteFeedback(ctx context.Context, id int64) (err error) {
	defer recoverTo(&err)
	res, err := s.db.ExecContext(ctx, `DELETE FROM feedback WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return store.ErrNotFound
	}
	return nil
}
