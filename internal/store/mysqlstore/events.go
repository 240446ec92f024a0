package mysqlstore

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/ecowave/ecowave-hub/internal/model"
	"github.com/ecowave/ecowave-hub/internal/store"
)

// eventCols selects native columns plus the participant count derived from
// event_participants. banner_image carries the canonical image_url.
const eventCols = `e.id, e.title, e.starts_at, e.ends_at, e.location, e.reward_points, e.banner_image, e.max_participants,
	(SELECT COUNT(*) FROM event_participants ep WHERE ep.event_id = e.id)`

func (s *Store) scanEvent(row interface{ Scan(...any) error }) (model.Event, error) {
	var e model.Event
	err := row.Scan(&e.ID, &e.Title, &e.StartsAt, &e.EndsAt, &e.Location, &e.Points,
		&e.ImageURL, &e.MaxParticipants, &e.ParticipantCount)
	if err != nil {
		return model.Event{}, err
	}
	e.Derive(s.now())
	return e, nil
}

// ListEvents returns all events, soonest first.
func (s *Store) ListEvents(ctx context.Context) ([]model.Event, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+eventCols+` FROM events e ORDER BY e.starts_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Event
	for rows.Next() {
		e, err := s.scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// GetEvent fetches an event by id.
func (s *Store) GetEvent(ctx context.Context, id int64) (model.Event, error) {
	e, err := s.scanEvent(s.db.QueryRowContext(ctx,
		`SELECT `+eventCols+` FROM events e WHERE e.id = ? LIMIT 1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Event{}, store.ErrNotFound
	}
	return e, err
}

// CreateEvent inserts an event and returns the stored row with derived
// fields recomputed.
func (s *Store) CreateEvent(ctx context.Context, ne model.NewEvent) (e model.Event, err error) {
	defer recoverTo(&err)
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO events (title, starts_at, ends_at, location, reward_points, banner_image, max_participants)
		 VALUES (?,?,?,?,?,?,?)`,
		ne.Title, ne.StartsAt, ne.EndsAt, ne.Location, ne.Points, ne.ImageURL, ne.MaxParticipants)
	if err != nil {
		return model.Event{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Event{}, err
	}
	return s.GetEvent(ctx, id)
}

func eventSetClauses(upd model.EventUpdate) (set []string, args []any) {
	if upd.Title != nil {
		set = append(set, "title = ?")
		args = append(args, *upd.Title)
	}
	if upd.StartsAt != nil {
		set = append(set, "starts_at = ?")
		args = append(args, *upd.StartsAt)
	}
	if upd.EndsAt != nil {
		set = append(set, "ends_at = ?")
		args = append(args, *upd.EndsAt)
	}
	if upd.Location != nil {
		set = append(set, "location = ?")
		args = append(args, *upd.Location)
	}
	if upd.Points != nil {
		set = append(set, "reward_points = ?")
		args = append(args, *upd.Points)
	}
	if upd.ImageURL != nil {
		set = append(set, "banner_image = ?")
		args = append(args, *upd.ImageURL)
	}
	if upd.MaxParticipants != nil {
		set = append(set, "max_participants = ?")
		args = append(args, *upd.MaxParticipants)
	}
	return set, args
}

// UpdateEvent applies a partial update and returns the stored row.
func (s *Store) UpdateEvent(ctx context.Context, id int64, upd model.EventUpdate) (e model.Event, err error) {
	defer recoverTo(&err)
	set, args := eventSetClauses(upd)
	if len(set) == 0 {
		return s.GetEvent(ctx, id)
	}
	args = append(args, id)
	if _, err := s.db.ExecContext(ctx,
		`UPDATE events SET `+strings.Join(set, ", ")+` WHERE id = ?`, args...); err != nil {
		return model.Event{}, err
	}
	return s.GetEvent(ctx, id)
}

// DeleteEvent removes an event and its participation rows.
func (s *Store) DeleteEvent(ctx context.Context, id int64) (err error) {
	defer recoverTo(&err)
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	if _, err := tx.ExecContext(ctx, `DELETE FROM event_participants WHERE event_id = ?`, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return store.ErrNotFound
	}
	return tx.Commit()
}
