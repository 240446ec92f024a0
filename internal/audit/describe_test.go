package audit

import (
	"strings"
	"testing"
	"time"

	"github.com/ecowave/ecowave-hub/internal/model"
)

func TestDescribe(t *testing.T) {
	start := time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name       string
		actionType string
		entityType string
		meta       Meta
		want       string
	}{
		{
			name:       "login",
			actionType: model.ActionLogin,
			entityType: model.EntitySystem,
			want:       "Admin logged in",
		},
		{
			name:       "logout",
			actionType: model.ActionLogout,
			entityType: model.EntitySystem,
			want:       "Admin logged out",
		},
		{
			name:       "export with details",
			actionType: model.ActionExport,
			entityType: model.EntitySystem,
			meta:       Meta{"details": "activity history (CSV)"},
			want:       "Exported activity history (CSV)",
		},
		{
			name:       "export without details",
			actionType: model.ActionExport,
			entityType: model.EntitySystem,
			want:       "Exported data",
		},
		{
			name:       "create with name",
			actionType: model.ActionCreate,
			entityType: model.EntityEvent,
			meta:       Meta{"name": "Beach Cleanup"},
			want:       "Created event: Beach Cleanup",
		},
		{
			name:       "delete with title",
			actionType: model.ActionDelete,
			entityType: model.EntityReward,
			meta:       Meta{"title": "Tote Bag"},
			want:       "Deleted reward: Tote Bag",
		},
		{
			name:       "update with role change",
			actionType: model.ActionUpdate,
			entityType: model.EntityUser,
			meta: Meta{
				"email":   "rika@ecowave.org",
				"changes": []Change{{Field: "role", Old: "user", New: "admin"}},
			},
			want: "Updated user: rika@ecowave.org (role: user → admin)",
		},
		{
			name:       "update with date and points",
			actionType: model.ActionUpdate,
			entityType: model.EntityEvent,
			meta: Meta{
				"name": "Beach Cleanup",
				"changes": []Change{
					{Field: "start_date", Old: start, New: start.AddDate(0, 0, 7)},
					{Field: "points", Old: 50, New: 75},
				},
			},
			want: "Updated event: Beach Cleanup (start_date: Mar 14, 2026 → Mar 21, 2026, points: 50 → 75)",
		},
		{
			name:       "update with nil old value",
			actionType: model.ActionUpdate,
			entityType: model.EntityMission,
			meta: Meta{
				"title":   "Plastic Free Week",
				"changes": []Change{{Field: "description", Old: nil, New: "Skip single-use plastic"}},
			},
			want: "Updated mission: Plastic Free Week (description: - → Skip single-use plastic)",
		},
		{
			name:       "no label falls back to raw details",
			actionType: model.ActionDelete,
			entityType: model.EntityFeedback,
			meta:       Meta{"details": "Removed feedback #42"},
			want:       "Removed feedback #42",
		},
		{
			name:       "no label and no details",
			actionType: model.ActionCreate,
			entityType: model.EntityUser,
			want:       "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Describe(tt.actionType, tt.entityType, tt.meta)
			if got != tt.want {
				t.Errorf("Describe() = %q, want %q", got, tt.want)
			}
			// Same inputs must render the same string every time.
			if again := Describe(tt.actionType, tt.entityType, tt.meta); again != got {
				t.Errorf("Describe() not deterministic: %q vs %q", got, again)
			}
		})
	}
}

func TestDescribeTruncatesLongValues(t *testing.T) {
	long := strings.Repeat("x", 80)
	got := Describe(model.ActionCreate, model.EntityEvent, Meta{"name": long})
	wantLabel := strings.Repeat("x", 30) + "…"
	if got != "Created event: "+wantLabel {
		t.Errorf("long label not truncated: %q", got)
	}

	got = Describe(model.ActionUpdate, model.EntityEvent, Meta{
		"name":    "Cleanup",
		"changes": []Change{{Field: "description", Old: "short", New: long}},
	})
	if !strings.Contains(got, wantLabel) {
		t.Errorf("long change value not truncated: %q", got)
	}
	if strings.Contains(got, strings.Repeat("x", 31)) {
		t.Errorf("value exceeds cap: %q", got)
	}
}
