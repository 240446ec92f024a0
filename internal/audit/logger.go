// Package audit records the admin activity trail. Delivery is best
// effort: at most one remote attempt per entry, then a guaranteed write
// to the capped local fallback. Nothing in this package ever panics out
// or returns an error to the caller; a failed audit write must never
// unwind the admin action it describes.
package audit

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/ecowave/ecowave-hub/internal/model"
)

// RemoteStore is the slice of the data service the logger needs. The
// full DataService satisfies it.
type RemoteStore interface {
	AppendHistory(ctx context.Context, e model.HistoryEntry) error
	Ping(ctx context.Context) error
}

// Logger writes the activity trail. Construct once at startup and hand
// to every handler; the availability flag and the current admin id are
// the only mutable state.
type Logger struct {
	mu        sync.Mutex
	adminID   int64
	available bool // false until a probe succeeds

	remote   RemoteStore
	fallback FallbackStore
	now      func() time.Time
}

// New constructs a Logger. The remote store starts marked unavailable;
// call TestConnection (or StartReprobe) to flip it.
func New(remote RemoteStore, fallback FallbackStore) *Logger {
	return &Logger{
		remote:   remote,
		fallback: fallback,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// SetCurrentAdmin records the admin id stamped on subsequent entries.
func (l *Logger) SetCurrentAdmin(id int64) {
	l.mu.Lock()
	l.adminID = id
	l.mu.Unlock()
}

// TestConnection probes the remote store with a minimal read and updates
// the availability flag. Failure here never blocks startup; callers fire
// it in a goroutine.
func (l *Logger) TestConnection(ctx context.Context) bool {
	ok := l.remote != nil && l.remote.Ping(ctx) == nil
	l.mu.Lock()
	l.available = ok
	l.mu.Unlock()
	return ok
}

// StartReprobe re-runs the connectivity probe on the given interval while
// the remote store is marked unavailable, so remote logging resumes after
// an outage instead of falling back for the rest of the process lifetime.
// A non-positive interval disables re-probing (startup probe only).
func (l *Logger) StartReprobe(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				l.mu.Lock()
				down := !l.available
				l.mu.Unlock()
				if down && l.TestConnection(ctx) {
					slog.Info("audit trail store reachable again", "type", "audit")
				}
			}
		}
	}()
}

// LogAction stamps and delivers one entry. When the remote store is
// marked available it gets exactly one attempt; a failed attempt flips
// the flag so later entries skip straight to the fallback until the next
// probe. The fallback write itself is the last resort and its error is
// only reported to the diagnostic log.
func (l *Logger) LogAction(ctx context.Context, e model.HistoryEntry) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("audit log write panicked", "type", "audit", "panic", r)
		}
	}()

	l.mu.Lock()
	e.AdminID = l.adminID
	available := l.available
	l.mu.Unlock()

	if e.EntityID == 0 {
		e.EntityID = model.SystemEntityID
	}
	e.CreatedAt = l.now()

	if available && l.remote != nil {
		err := l.remote.AppendHistory(ctx, e)
		if err == nil {
			return
		}
		l.mu.Lock()
		l.available = false
		l.mu.Unlock()
		slog.Warn("audit trail store unreachable, using local fallback", "type", "audit", "error", err)
	}
	if l.fallback == nil {
		return
	}
	if err := l.fallback.Push(ctx, e); err != nil {
		slog.Error("audit fallback write failed", "type", "audit", "error", err)
	}
}

// Recent serves the history read fallback path from the local store.
func (l *Logger) Recent(ctx context.Context, n int) ([]model.HistoryEntry, error) {
	if l.fallback == nil {
		return nil, nil
	}
	return l.fallback.Recent(ctx, n)
}

// LogCreate records a CREATE action with a templated description.
func (l *Logger) LogCreate(ctx context.Context, entityType string, entityID int64, meta Meta) {
	l.log(ctx, model.ActionCreate, entityType, entityID, meta)
}

// LogUpdate records an UPDATE action; meta["changes"] carries the
// field-level diffs rendered into the description.
func (l *Logger) LogUpdate(ctx context.Context, entityType string, entityID int64, meta Meta) {
	l.log(ctx, model.ActionUpdate, entityType, entityID, meta)
}

// LogDelete records a DELETE action.
func (l *Logger) LogDelete(ctx context.Context, entityType string, entityID int64, meta Meta) {
	l.log(ctx, model.ActionDelete, entityType, entityID, meta)
}

// LogLogin records an admin login as a system-level action.
func (l *Logger) LogLogin(ctx context.Context) {
	l.log(ctx, model.ActionLogin, model.EntitySystem, model.SystemEntityID, nil)
}

// LogLogout records an admin logout as a system-level action.
func (l *Logger) LogLogout(ctx context.Context) {
	l.log(ctx, model.ActionLogout, model.EntitySystem, model.SystemEntityID, nil)
}

// LogExport records a data export as a system-level action.
func (l *Logger) LogExport(ctx context.Context, what string) {
	l.log(ctx, model.ActionExport, model.EntitySystem, model.SystemEntityID, Meta{"details": what})
}

func (l *Logger) log(ctx context.Context, actionType, entityType string, entityID int64, meta Meta) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("audit description panicked", "type", "audit", "panic", r)
		}
	}()
	l.LogAction(ctx, model.HistoryEntry{
		ActionType: actionType,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    Describe(actionType, entityType, meta),
	})
}
