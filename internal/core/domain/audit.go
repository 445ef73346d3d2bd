package domain

import "time"

// AuditEntry records one console action for the audit trail.
type AuditEntry struct {
	Actor      string    `json:"actor"`
	Role       string    `json:"role"`
	Action     string    `json:"action"`
	Resource   string    `json:"resource"`
	ResourceID string    `json:"resource_id,omitempty"`
	At         time.Time `json:"at"`
}
