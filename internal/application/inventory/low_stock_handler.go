package inventory

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/inventory"
	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/shared"
)

// LowStockHandler handles StockBelowReorder events and forwards reorder
// warnings to the notification sink. It is registered on the event bus so
// alerts flow regardless of which operation drained the stock.
type LowStockHandler struct {
	logger   *zap.Logger
	notifier NotificationSink
}

// NewLowStockHandler creates a new handler for stock below reorder events
func NewLowStockHandler(logger *zap.Logger) *LowStockHandler {
	return &LowStockHandler{
		logger:   logger,
		notifier: NoopNotificationSink{},
	}
}

// WithNotifier sets the sink for sending alerts
func (h *LowStockHandler) WithNotifier(notifier NotificationSink) *LowStockHandler {
	if notifier != nil {
		h.notifier = notifier
	}
	return h
}

// EventTypes returns the event types this handler is interested in
func (h *LowStockHandler) EventTypes() []string {
	return []string{inventory.EventTypeStockBelowReorder}
}

// Handle processes a StockBelowReorderEvent
func (h *LowStockHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	reorderEvent, ok := event.(*inventory.StockBelowReorderEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("expected", inventory.EventTypeStockBelowReorder),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			inventory.EventTypeStockBelowReorder, event.EventType())
	}

	h.logger.Warn("stock at or below reorder point",
		zap.String("product_id", reorderEvent.ProductID.String()),
		zap.String("branch_id", reorderEvent.BranchID.String()),
		zap.Int("current_stock", reorderEvent.CurrentStock),
		zap.Int("reorder_point", reorderEvent.ReorderPoint),
		zap.String("status", string(reorderEvent.Status)),
	)

	alert := LowStockAlert{
		ProductID:    reorderEvent.ProductID,
		BranchID:     reorderEvent.BranchID,
		CurrentStock: reorderEvent.CurrentStock,
		ReorderPoint: reorderEvent.ReorderPoint,
		Status:       string(reorderEvent.Status),
	}
	if err := h.notifier.PublishLowStockAlert(ctx, alert); err != nil {
		h.logger.Warn("failed to forward low stock alert", zap.Error(err))
	}

	return nil
}

var _ shared.EventHandler = (*LowStockHandler)(nil)
