package domain

import "time"

// AuditAction names an administrative change worth recording.
type AuditAction string

const (
	AuditRoleChanged AuditAction = "role_changed"
	AuditUserDeleted AuditAction = "user_deleted"
)

// AuditEntry records who changed which account and how.
type AuditEntry struct {
	Action    AuditAction
	ActorID   string
	TargetID  string
	Detail    string
	Timestamp time.Time
}
