package repository

import "context"

// AuditEntry records an authentication-related event. Insert-only and
// best-effort: callers ignore write failures.
type AuditEntry struct {
	UserID    string
	Email     string
	Action    string
	IP        string
	UserAgent string
	Metadata  map[string]any
}

type AuditRepository interface {
	Insert(ctx context.Context, e AuditEntry) error
}
