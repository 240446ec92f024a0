package mysqlstore

import (
	"reflect"
	"testing"

	"github.com/ecowave/ecowave-hub/internal/model"
)

func TestSplitJoinName(t *testing.T) {
	tests := []struct {
		name  string
		full  string
		first string
		last  string
	}{
		{name: "two words", full: "Dewi Lestari", first: "Dewi", last: "Lestari"},
		{name: "three words", full: "Maria van Dijk", first: "Maria", last: "van Dijk"},
		{name: "single word", full: "Cher", first: "Cher", last: ""},
		{name: "surrounding spaces", full: "  Arif Putra  ", first: "Arif", last: "Putra"},
		{name: "empty", full: "", first: "", last: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, last := splitName(tt.full)
			if first != tt.first || last != tt.last {
				t.Errorf("splitName(%q) = %q, %q; want %q, %q", tt.full, first, last, tt.first, tt.last)
			}
		})
	}
}

func TestJoinNameSingleWord(t *testing.T) {
	if got := joinName("Cher", ""); got != "Cher" {
		t.Errorf("joinName trailing space not trimmed: %q", got)
	}
}

func TestUserSetClauses(t *testing.T) {
	email := "  New@Example.COM "
	full := "Siti Rahma"
	points := int64(40)

	set, args := userSetClauses(model.UserUpdate{Email: &email, FullName: &full, Points: &points})

	wantSet := []string{"email = ?", "first_name = ?", "last_name = ?", "redeemable_points = ?"}
	if !reflect.DeepEqual(set, wantSet) {
		t.Errorf("set = %v, want %v", set, wantSet)
	}
	wantArgs := []any{"new@example.com", "Siti", "Rahma", int64(40)}
	if !reflect.DeepEqual(args, wantArgs) {
		t.Errorf("args = %v, want %v", args, wantArgs)
	}
}

func TestUserSetClausesEmptyUpdate(t *testing.T) {
	set, args := userSetClauses(model.UserUpdate{})
	if len(set) != 0 || len(args) != 0 {
		t.Errorf("empty update produced clauses: %v / %v", set, args)
	}
}
