package ports

import (
	"context"

	"github.com/99minutos/inventory-system/internal/core/domain"
)

// AuditRepository persists audit entries.
type AuditRepository interface {
	Insert(ctx context.Context, entry *domain.AuditEntry) error
}

// AuditRecorder accepts audit entries without blocking the caller on storage.
type AuditRecorder interface {
	Record(entry domain.AuditEntry)
}
