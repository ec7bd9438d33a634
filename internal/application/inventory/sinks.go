package inventory

import (
	"context"

	"github.com/google/uuid"
)

// StockLevelNotification carries the post-commit stock level of a branch record.
type StockLevelNotification struct {
	ProductID       uuid.UUID `json:"product_id"`
	BranchID        uuid.UUID `json:"branch_id"`
	TransactionType string    `json:"transaction_type"`
	Quantity        int       `json:"quantity"`
	CurrentStock    int       `json:"current_stock"`
	Status          string    `json:"status"`
}

// LowStockAlert carries a reorder warning for a branch record.
type LowStockAlert struct {
	ProductID    uuid.UUID `json:"product_id"`
	BranchID     uuid.UUID `json:"branch_id"`
	CurrentStock int       `json:"current_stock"`
	ReorderPoint int       `json:"reorder_point"`
	Status       string    `json:"status"`
}

// NotificationSink receives stock level changes after they have been
// committed. Delivery is best-effort; errors are logged by the caller and
// never affect the committed mutation.
type NotificationSink interface {
	// PublishStockLevel publishes the new stock level for a branch record
	PublishStockLevel(ctx context.Context, notification StockLevelNotification) error
	// PublishLowStockAlert publishes a reorder warning
	PublishLowStockAlert(ctx context.Context, alert LowStockAlert) error
}

// AuditRecord describes a committed operation for the audit trail.
type AuditRecord struct {
	UserID      uuid.UUID
	Action      string
	Module      string
	RecordID    uuid.UUID
	Description string
}

// AuditSink records committed operations. Like NotificationSink, delivery is
// best-effort and never affects the committed mutation.
type AuditSink interface {
	Record(ctx context.Context, record AuditRecord) error
}

// NoopNotificationSink discards all notifications.
type NoopNotificationSink struct{}

// PublishStockLevel discards the notification.
func (NoopNotificationSink) PublishStockLevel(context.Context, StockLevelNotification) error {
	return nil
}

// PublishLowStockAlert discards the alert.
func (NoopNotificationSink) PublishLowStockAlert(context.Context, LowStockAlert) error {
	return nil
}

// NoopAuditSink discards all audit records.
type NoopAuditSink struct{}

// Record discards the audit record.
func (NoopAuditSink) Record(context.Context, AuditRecord) error {
	return nil
}

var (
	_ NotificationSink = NoopNotificationSink{}
	_ AuditSink        = NoopAuditSink{}
)
