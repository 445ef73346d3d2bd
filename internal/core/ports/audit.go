package ports

import (
	"context"

	"github.com/madahotspot/voucher-console/internal/core/domain"
)

// AuditRepository is the durable sink for audit entries.
type AuditRepository interface {
	Insert(ctx context.Context, entry domain.AuditEntry) error
}

// AuditRecorder accepts entries for asynchronous recording. Implementations
// must never block the caller beyond a bounded queue.
type AuditRecorder interface {
	Record(entry domain.AuditEntry)
}
