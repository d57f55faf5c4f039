package entity

import "database/sql"

const (
	ActionDeletePost     = "DELETE_POST"
	ActionBanUser        = "BAN_USER"
	ActionUnbanUser      = "UNBAN_USER"
	ActionWarnUser       = "WARN_USER"
	ActionActivateUser   = "ACTIVATE_USER"
	ActionDeactivateUser = "DEACTIVATE_USER"
	ActionGrantAdmin     = "GRANT_ADMIN"
	ActionRevokeAdmin    = "REVOKE_ADMIN"
)

// ModerationAction is an append-only audit record. Rows are never updated or
// deleted.
type ModerationAction struct {
	Base
	AdminID      string `gorm:"not null;index"`
	ActionType   string `gorm:"not null"`
	TargetUserID sql.NullString
	TargetPostID sql.NullString
	Reason       sql.NullString
}
