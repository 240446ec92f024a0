package mysqlstore

import (
	"context"

	"github.com/ecowave/ecowave-hub/internal/model"
)

// AppendHistory writes one activity-trail row. The table is append-only;
// there is deliberately no update or delete counterpart.
func (s *Store) AppendHistory(ctx context.Context, e model.HistoryEntry) (err error) {
	defer recoverTo(&err)
	if e.EntityID == 0 {
		e.EntityID = model.SystemEntityID
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO admin_history (admin_id, action_type, entity_type, entity_id, details) VALUES (?,?,?,?,?)`,
		e.AdminID, e.ActionType, e.EntityType, e.EntityID, e.Details)
	return err
}

// ListHistory returns the most recent limit entries, newest first.
func (s *Store) ListHistory(ctx context.Context, limit int) ([]model.HistoryEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, admin_id, action_type, entity_type, entity_id, details, created_at
		 FROM admin_history ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.HistoryEntry
	for rows.Next() {
		var e model.HistoryEntry
		if err := rows.Scan(&e.ID, &e.AdminID, &e.ActionType, &e.EntityType, &e.EntityID, &e.Details, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
