// Package mysqlstore implements store.DataService against the primary
// hosted MySQL backend. The backend's native column names differ from the
// canonical entity shapes (first_name/last_name vs full_name,
// redeemable_points vs points, banner_image/thumbnail_image vs image_url);
// every read maps native→canonical and every write maps canonical→native,
// touching only the columns present in the payload.
package mysqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/ecowave/ecowave-hub/internal/store"
)

var _ store.DataService = (*Store)(nil)

// Store is the MySQL-backed DataService adapter.
type Store struct {
	db         *sql.DB
	bcryptCost int
	now        func() time.Time
}

// New constructs a Store over an open connection pool.
func New(db *sql.DB, bcryptCost int) *Store {
	return &Store{db: db, bcryptCost: bcryptCost, now: func() time.Time { return time.Now().UTC() }}
}

// Ping verifies connectivity to the backend.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// recoverTo converts a panic inside a write path into an error so nothing
// unexpected crosses the DataService boundary. Every mutating method
// installs it with a named error return.
func recoverTo(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("backend failure: %v", r)
	}
}

// isDuplicate reports whether err is a MySQL unique-key violation (1062).
func isDuplicate(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}
