package audit

import (
	"fmt"
	"strings"
	"time"

	"github.com/ecowave/ecowave-hub/internal/model"
)

// Meta is the metadata payload the convenience wrappers template a
// description from. Recognized keys: "name", "title", "email",
// "full_name" (entity label, first match wins), "changes" ([]Change for
// updates) and "details" (raw fallback text when no template applies).
type Meta map[string]any

// Change is one field-level diff rendered as "field: old → new". Changes
// are a slice, not a map, so rendering order is caller-defined and the
// description is a pure function of its inputs.
type Change struct {
	Field string
	Old   any
	New   any
}

const truncateAt = 30

// labelKeys is the lookup order for the entity label in Meta.
var labelKeys = []string{"name", "title", "email", "full_name"}

// Describe renders the human-readable description for an audit entry.
// Identical inputs always produce the identical string.
func Describe(actionType, entityType string, meta Meta) string {
	switch actionType {
	case model.ActionLogin:
		return "Admin logged in"
	case model.ActionLogout:
		return "Admin logged out"
	case model.ActionExport:
		if what, ok := meta["details"].(string); ok && what != "" {
			return "Exported " + what
		}
		return "Exported data"
	}

	label := entityLabel(meta)
	if label == "" {
		// No template applies without a label; fall back to the raw
		// caller-supplied detail string.
		if raw, ok := meta["details"].(string); ok {
			return raw
		}
		return ""
	}

	noun := strings.ToLower(entityType)
	switch actionType {
	case model.ActionCreate:
		return fmt.Sprintf("Created %s: %s", noun, label)
	case model.ActionUpdate:
		desc := fmt.Sprintf("Updated %s: %s", noun, label)
		if diffs := renderChanges(meta); diffs != "" {
			desc += " (" + diffs + ")"
		}
		return desc
	case model.ActionDelete:
		return fmt.Sprintf("Deleted %s: %s", noun, label)
	}
	if raw, ok := meta["details"].(string); ok {
		return raw
	}
	return fmt.Sprintf("%s %s: %s", actionType, noun, label)
}

func entityLabel(meta Meta) string {
	for _, k := range labelKeys {
		if v, ok := meta[k].(string); ok && v != "" {
			return truncate(v)
		}
	}
	return ""
}

func renderChanges(meta Meta) string {
	changes, ok := meta["changes"].([]Change)
	if !ok || len(changes) == 0 {
		return ""
	}
	parts := make([]string, 0, len(changes))
	for _, ch := range changes {
		parts = append(parts, fmt.Sprintf("%s: %s → %s", ch.Field, formatValue(ch.Old), formatValue(ch.New)))
	}
	return strings.Join(parts, ", ")
}

// formatValue renders one diff side: dates as readable strings, long text
// truncated, everything else via fmt.
func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return "-"
	case time.Time:
		return t.Format("Jan 2, 2006")
	case *time.Time:
		if t == nil {
			return "-"
		}
		return t.Format("Jan 2, 2006")
	case string:
		return truncate(t)
	default:
		return truncate(fmt.Sprintf("%v", t))
	}
}

func truncate(s string) string {
	r := []rune(s)
	if len(r) <= truncateAt {
		return s
	}
	return string(r[:truncateAt]) + "…"
}
