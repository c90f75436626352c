package domain

import "time"

// AuditEntry records one reviewer action in the audit trail.
type AuditEntry struct {
	ID        string    `json:"_id,omitempty"`
	UserID    string    `json:"userId"`
	Action    string    `json:"action"`
	Resource  string    `json:"resource,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
