package model

import "time"

// Action types recorded in the admin activity trail.
const (
	ActionCreate = "CREATE"
	ActionUpdate = "UPDATE"
	ActionDelete = "DELETE"
	ActionExport = "EXPORT"
	ActionLogin  = "LOGIN"
	ActionLogout = "LOGOUT"
)

// Entity types an action can target. EntitySystem covers actions with no
// concrete record (logins, exports).
const (
	EntityUser     = "USER"
	EntityEvent    = "EVENT"
	EntityReward   = "REWARD"
	EntityFeedback = "FEEDBACK"
	EntityMission  = "MISSION"
	EntitySystem   = "SYSTEM"
)

// SystemEntityID is the entity_id stamped on system-level actions that
// have no record of their own.
const SystemEntityID = 1

// HistoryEntry is one append-only row of the admin activity trail.
type HistoryEntry struct {
	ID         int64     `json:"log_id,string"`
	AdminID    int64     `json:"admin_id,string"`
	ActionType string    `json:"action_type"`
	EntityType string    `json:"entity_type"`
	EntityID   int64     `json:"entity_id"`
	Details    string    `json:"details"`
	CreatedAt  time.Time `json:"created_at"`
}
