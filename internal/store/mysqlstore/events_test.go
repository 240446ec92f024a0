package mysqlstore

import (
	"reflect"
	"testing"
	"time"

	"github.com/ecowave/ecowave-hub/internal/model"
)

func TestEventSetClausesMapsNativeColumns(t *testing.T) {
	points := int64(75)
	image := "https://cdn.example.com/banner.png"
	starts := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)

	set, args := eventSetClauses(model.EventUpdate{
		Points:   &points,
		ImageURL: &image,
		StartsAt: &starts,
	})

	wantSet := []string{"starts_at = ?", "reward_points = ?", "banner_image = ?"}
	if !reflect.DeepEqual(set, wantSet) {
		t.Errorf("set = %v, want %v", set, wantSet)
	}
	wantArgs := []any{starts, int64(75), image}
	if !reflect.DeepEqual(args, wantArgs) {
		t.Errorf("args = %v, want %v", args, wantArgs)
	}
}

func TestRewardSetClausesMapsNativeColumns(t *testing.T) {
	stock := 12
	set, args := rewardSetClauses(model.RewardUpdate{Stock: &stock})
	if !reflect.DeepEqual(set, []string{"stock_qty = ?"}) {
		t.Errorf("set = %v", set)
	}
	if !reflect.DeepEqual(args, []any{12}) {
		t.Errorf("args = %v", args)
	}
}

func TestMissionSetClausesEmptyUpdate(t *testing.T) {
	set, args := missionSetClauses(model.MissionUpdate{})
	if len(set) != 0 || len(args) != 0 {
		t.Errorf("empty update produced clauses: %v / %v", set, args)
	}
}
