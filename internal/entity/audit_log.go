package entity

import "time"

// AuditLog tracks admin actions (config edits, schedule promotions) for
// compliance and debugging.
type AuditLog struct {
	ID        StableId
	UserID    StableId
	Action    string // e.g., "UPDATE_CONFIG", "PROMOTE_GENERATED_SCHEDULE"
	Resource  string // e.g., "ConstraintConfig#<id>"
	OldValues string // JSON
	NewValues string // JSON
	Timestamp time.Time
	IPAddress string
}

// NewAuditLog stamps a new entry with the current time.
func NewAuditLog(userID StableId, action, resource, oldValues, newValues, ip string) AuditLog {
	return AuditLog{
		UserID:    userID,
		Action:    action,
		Resource:  resource,
		OldValues: oldValues,
		NewValues: newValues,
		Timestamp: Now(),
		IPAddress: ip,
	}
}
