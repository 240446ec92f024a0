package audit

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/ecowave/ecowave-hub/internal/model"
)

type fakeRemote struct {
	appendCalls int
	pingErr     error
	appendErr   error
}

func (f *fakeRemote) AppendHistory(_ context.Context, _ model.HistoryEntry) error {
	f.appendCalls++
	return f.appendErr
}

func (f *fakeRemote) Ping(_ context.Context) error { return f.pingErr }

func TestLogActionFallsBackWhenRemoteDown(t *testing.T) {
	remote := &fakeRemote{appendErr: errors.New("gone")}
	fb := NewMemoryFallback()
	l := New(remote, fb)
	l.SetCurrentAdmin(7)
	ctx := context.Background()

	if !l.TestConnection(ctx) {
		t.Fatal("probe should succeed while ping works")
	}

	for i := 0; i < 150; i++ {
		l.LogAction(ctx, model.HistoryEntry{
			ActionType: model.ActionCreate,
			EntityType: model.EntityEvent,
			EntityID:   int64(i + 1),
			Details:    fmt.Sprintf("entry %d", i),
		})
	}

	// The first failed append flips the availability flag; later entries
	// must not touch the remote again until the next probe.
	if remote.appendCalls != 1 {
		t.Fatalf("remote attempts = %d, want exactly 1", remote.appendCalls)
	}

	got, err := fb.Recent(ctx, 200)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != FallbackCap {
		t.Fatalf("fallback holds %d entries, want cap %d", len(got), FallbackCap)
	}
	if got[0].Details != "entry 149" {
		t.Errorf("newest entry first, got %q", got[0].Details)
	}
	if got[len(got)-1].Details != "entry 50" {
		t.Errorf("oldest retained entry = %q, want %q", got[len(got)-1].Details, "entry 50")
	}
	if got[0].AdminID != 7 {
		t.Errorf("admin id not stamped, got %d", got[0].AdminID)
	}
}

func TestLogActionSkipsRemoteUntilProbe(t *testing.T) {
	remote := &fakeRemote{}
	l := New(remote, NewMemoryFallback())
	ctx := context.Background()

	// No probe has run yet, so the remote starts unavailable.
	l.LogAction(ctx, model.HistoryEntry{ActionType: model.ActionLogin, EntityType: model.EntitySystem})
	if remote.appendCalls != 0 {
		t.Fatalf("remote called before any probe, calls = %d", remote.appendCalls)
	}

	if !l.TestConnection(ctx) {
		t.Fatal("probe should succeed")
	}
	l.LogAction(ctx, model.HistoryEntry{ActionType: model.ActionLogin, EntityType: model.EntitySystem})
	if remote.appendCalls != 1 {
		t.Fatalf("remote calls after probe = %d, want 1", remote.appendCalls)
	}
}

func TestLogActionDefaultsEntityID(t *testing.T) {
	fb := NewMemoryFallback()
	l := New(&fakeRemote{pingErr: errors.New("down")}, fb)
	ctx := context.Background()
	l.TestConnection(ctx)

	l.LogAction(ctx, model.HistoryEntry{ActionType: model.ActionLogout, EntityType: model.EntitySystem})

	got, _ := fb.Recent(ctx, 1)
	if len(got) != 1 || got[0].EntityID != model.SystemEntityID {
		t.Fatalf("entity id not defaulted: %+v", got)
	}
	if got[0].CreatedAt.IsZero() {
		t.Error("timestamp not stamped")
	}
}

func TestLogActionNeverPanics(t *testing.T) {
	// Nil remote and nil fallback must still be safe to call.
	l := New(nil, nil)
	ctx := context.Background()
	l.LogAction(ctx, model.HistoryEntry{ActionType: model.ActionDelete})
	l.LogUpdate(ctx, model.EntityUser, 3, Meta{"changes": "not a slice", "name": make(chan int)})
	l.LogExport(ctx, "")
	l.LogLogin(ctx)
}

func TestMemoryFallbackOrderAndCap(t *testing.T) {
	fb := NewMemoryFallback()
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		if err := fb.Push(ctx, model.HistoryEntry{ID: int64(i)}); err != nil {
			t.Fatalf("push: %v", err)
		}
	}
	got, err := fb.Recent(ctx, 3)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	for i, e := range got {
		if want := int64(4 - i); e.ID != want {
			t.Errorf("entry %d id = %d, want %d", i, e.ID, want)
		}
	}
}
