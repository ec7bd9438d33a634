package audit

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/shared"
)

// LogRepository defines the interface for audit log persistence.
// Logs are append-only.
type LogRepository interface {
	// Create appends a log record
	Create(ctx context.Context, log *Log) error

	// FindByUser finds logs for a user
	FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Log, error)

	// FindByModule finds logs for an application module
	FindByModule(ctx context.Context, module string, filter shared.Filter) ([]Log, error)

	// FindByDateRange finds logs within a time window
	FindByDateRange(ctx context.Context, start, end time.Time, filter shared.Filter) ([]Log, error)
}
