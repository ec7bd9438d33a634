package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/catalog"
	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/inventory"
	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/shared"
	"github.com/maumaun30/CM-Pharmacy-API/internal/infrastructure/logger"
)

// LedgerService is the single authorized path for mutating a branch stock
// record's quantity. Every mutation is paired with an immutable ledger entry
// in the same atomic unit; no other component writes CurrentStock.
type LedgerService struct {
	stockRepo      inventory.BranchStockRepository
	entryRepo      inventory.StockEntryRepository
	productRepo    catalog.ProductRepository
	branchRepo     catalog.BranchRepository
	txScope        TransactionScope
	notifier       NotificationSink
	audit          AuditSink
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewLedgerService creates a new LedgerService. The direct repositories serve
// read paths; all writes go through the transaction scope.
func NewLedgerService(
	stockRepo inventory.BranchStockRepository,
	entryRepo inventory.StockEntryRepository,
	productRepo catalog.ProductRepository,
	branchRepo catalog.BranchRepository,
	txScope TransactionScope,
	logger *zap.Logger,
) *LedgerService {
	return &LedgerService{
		stockRepo:   stockRepo,
		entryRepo:   entryRepo,
		productRepo: productRepo,
		branchRepo:  branchRepo,
		txScope:     txScope,
		notifier:    NoopNotificationSink{},
		audit:       NoopAuditSink{},
		logger:      logger,
	}
}

// SetNotificationSink sets the sink for post-commit stock level notifications
func (s *LedgerService) SetNotificationSink(sink NotificationSink) {
	if sink != nil {
		s.notifier = sink
	}
}

// SetAuditSink sets the sink for post-commit audit records
func (s *LedgerService) SetAuditSink(sink AuditSink) {
	if sink != nil {
		s.audit = sink
	}
}

// SetEventPublisher sets the publisher for domain events
func (s *LedgerService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// ApplyTransaction applies a signed quantity change to a branch record and
// appends the matching ledger entry, both inside one database transaction.
// Side effects (notifications, audit) run only after the commit.
func (s *LedgerService) ApplyTransaction(ctx context.Context, req ApplyTransactionRequest) (*StockEntryResponse, error) {
	if err := s.ensureReferences(ctx, req.ProductID, req.BranchID); err != nil {
		return nil, err
	}

	var (
		entry *inventory.StockEntry
		stock *inventory.BranchStock
	)
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var innerErr error
		entry, stock, innerErr = s.ApplyTransactionInScope(ctx, repos, req)
		return innerErr
	})
	if err != nil {
		return nil, err
	}

	s.PublishSideEffects(ctx, stock, entry)

	response := ToStockEntryResponse(entry)
	return &response, nil
}

// ApplyTransactionInScope applies a mutation using the caller's transaction
// scope so composite operations (a sale with several line items, a transfer)
// commit or roll back as one unit. The caller is responsible for validating
// product/branch references and for publishing side effects after its own
// commit.
func (s *LedgerService) ApplyTransactionInScope(
	ctx context.Context,
	repos TransactionalRepositories,
	req ApplyTransactionRequest,
) (*inventory.StockEntry, *inventory.BranchStock, error) {
	txType := inventory.TransactionType(req.TransactionType)
	if !txType.IsValid() {
		return nil, nil, shared.NewDomainError("VALIDATION_ERROR", "Invalid transaction type: "+req.TransactionType)
	}
	if req.Quantity == 0 {
		return nil, nil, shared.NewDomainError("VALIDATION_ERROR", "Quantity must be non-zero")
	}

	// Row lock serializes concurrent writers to the same record.
	stock, err := repos.StockRepo().FindByProductAndBranchForUpdate(ctx, req.ProductID, req.BranchID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, nil, err
		}
		// Lazy creation: first stock event for this pair starts at zero
		// with default thresholds, inside the same atomic unit.
		stock, err = inventory.NewBranchStock(req.ProductID, req.BranchID)
		if err != nil {
			return nil, nil, err
		}
	}

	before, after, err := stock.ApplyDelta(req.Quantity)
	if err != nil {
		return nil, nil, err
	}

	entry, err := inventory.NewStockEntry(
		req.ProductID,
		req.BranchID,
		txType,
		req.Quantity,
		before,
		after,
		req.Metadata(),
		req.PerformedBy,
	)
	if err != nil {
		return nil, nil, err
	}

	if err := repos.StockRepo().Save(ctx, stock); err != nil {
		return nil, nil, err
	}
	if err := repos.EntryRepo().Create(ctx, entry); err != nil {
		return nil, nil, err
	}

	stock.AddDomainEvent(inventory.NewStockLevelChangedEvent(stock, entry))
	if stock.IsBelowReorderPoint() {
		stock.AddDomainEvent(inventory.NewStockBelowReorderEvent(stock))
	}

	return entry, stock, nil
}

// Transfer moves quantity from one branch to another as two ADJUSTMENT
// entries inside a single transaction: if either leg fails, no stock moves
// and no entries are created at either branch.
func (s *LedgerService) Transfer(ctx context.Context, req TransferRequest) (*TransferResponse, error) {
	if req.Quantity <= 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Transfer quantity must be positive")
	}
	if req.FromBranchID == req.ToBranchID {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Source and destination branches must differ")
	}
	if err := s.ensureReferences(ctx, req.ProductID, req.FromBranchID); err != nil {
		return nil, err
	}
	if exists, err := s.branchRepo.ExistsByID(ctx, req.ToBranchID); err != nil {
		return nil, err
	} else if !exists {
		return nil, shared.NewDomainError("NOT_FOUND", "Destination branch not found")
	}

	debitReason := req.Reason
	creditReason := req.Reason
	if debitReason == "" {
		debitReason = fmt.Sprintf("Transfer to branch %s", req.ToBranchID)
		creditReason = fmt.Sprintf("Transfer from branch %s", req.FromBranchID)
	}

	var (
		debitEntry, creditEntry *inventory.StockEntry
		debitStock, creditStock *inventory.BranchStock
	)
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var innerErr error
		debitEntry, debitStock, innerErr = s.ApplyTransactionInScope(ctx, repos, ApplyTransactionRequest{
			ProductID:       req.ProductID,
			BranchID:        req.FromBranchID,
			TransactionType: inventory.TransactionTypeAdjustment.String(),
			Quantity:        -req.Quantity,
			Reason:          debitReason,
			PerformedBy:     req.PerformedBy,
		})
		if innerErr != nil {
			return innerErr
		}

		creditEntry, creditStock, innerErr = s.ApplyTransactionInScope(ctx, repos, ApplyTransactionRequest{
			ProductID:       req.ProductID,
			BranchID:        req.ToBranchID,
			TransactionType: inventory.TransactionTypeAdjustment.String(),
			Quantity:        req.Quantity,
			Reason:          creditReason,
			PerformedBy:     req.PerformedBy,
		})
		return innerErr
	})
	if err != nil {
		return nil, err
	}

	s.PublishSideEffects(ctx, debitStock, debitEntry)
	s.PublishSideEffects(ctx, creditStock, creditEntry)

	return &TransferResponse{
		Debit:  ToStockEntryResponse(debitEntry),
		Credit: ToStockEntryResponse(creditEntry),
	}, nil
}

// Initialize creates a branch record with an opening balance. The initial
// quantity is treated as a zero-before baseline and recorded as an
// INITIAL_STOCK entry for audit symmetry.
func (s *LedgerService) Initialize(ctx context.Context, req InitializeStockRequest) (*BranchStockResponse, error) {
	if req.InitialStock < 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Initial stock cannot be negative")
	}
	if err := s.ensureReferences(ctx, req.ProductID, req.BranchID); err != nil {
		return nil, err
	}

	var stock *inventory.BranchStock
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		exists, err := repos.StockRepo().ExistsByProductAndBranch(ctx, req.ProductID, req.BranchID)
		if err != nil {
			return err
		}
		if exists {
			return shared.ErrAlreadyInitialized
		}

		stock, err = inventory.NewBranchStock(req.ProductID, req.BranchID)
		if err != nil {
			return err
		}
		if err := stock.SetThresholds(req.MinimumStock, req.MaximumStock, req.ReorderPoint); err != nil {
			return err
		}

		if req.InitialStock > 0 {
			before, after, err := stock.ApplyDelta(req.InitialStock)
			if err != nil {
				return err
			}
			entry, err := inventory.NewStockEntry(
				req.ProductID,
				req.BranchID,
				inventory.TransactionTypeInitialStock,
				req.InitialStock,
				before,
				after,
				inventory.EntryMetadata{Reason: "Initial stock"},
				req.PerformedBy,
			)
			if err != nil {
				return err
			}
			if err := repos.EntryRepo().Create(ctx, entry); err != nil {
				return err
			}
		}

		stock.AddDomainEvent(inventory.NewBranchStockInitializedEvent(stock))
		return repos.StockRepo().Save(ctx, stock)
	})
	if err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, stock)
	s.recordAudit(ctx, req.PerformedBy, "INITIALIZE", stock.ID,
		fmt.Sprintf("Initialized stock for product %s at branch %s with %d units", req.ProductID, req.BranchID, req.InitialStock))

	response := ToBranchStockResponse(stock)
	return &response, nil
}

// UpdateThresholds updates threshold configuration without touching the
// quantity and without creating a ledger entry.
func (s *LedgerService) UpdateThresholds(ctx context.Context, req UpdateThresholdsRequest) (*BranchStockResponse, error) {
	var stock *inventory.BranchStock
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var innerErr error
		stock, innerErr = repos.StockRepo().FindByProductAndBranch(ctx, req.ProductID, req.BranchID)
		if innerErr != nil {
			return innerErr
		}
		if innerErr = stock.SetThresholds(req.MinimumStock, req.MaximumStock, req.ReorderPoint); innerErr != nil {
			return innerErr
		}
		stock.AddDomainEvent(inventory.NewThresholdsUpdatedEvent(stock))
		return repos.StockRepo().SaveWithLock(ctx, stock)
	})
	if err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, stock)

	response := ToBranchStockResponse(stock)
	return &response, nil
}

// GetStock returns the branch record for a product-branch pair
func (s *LedgerService) GetStock(ctx context.Context, productID, branchID uuid.UUID) (*BranchStockResponse, error) {
	stock, err := s.stockRepo.FindByProductAndBranch(ctx, productID, branchID)
	if err != nil {
		return nil, err
	}
	response := ToBranchStockResponse(stock)
	return &response, nil
}

// ListByBranch returns all branch records for a branch
func (s *LedgerService) ListByBranch(ctx context.Context, branchID uuid.UUID, filter shared.Filter) ([]BranchStockResponse, error) {
	stocks, err := s.stockRepo.FindByBranch(ctx, branchID, filter)
	if err != nil {
		return nil, err
	}
	return ToBranchStockResponses(stocks), nil
}

// ListLowStock returns records at or below their reorder point for a branch
func (s *LedgerService) ListLowStock(ctx context.Context, branchID uuid.UUID, filter shared.Filter) ([]BranchStockResponse, error) {
	stocks, err := s.stockRepo.FindBelowReorder(ctx, branchID, filter)
	if err != nil {
		return nil, err
	}
	return ToBranchStockResponses(stocks), nil
}

// GetProductStock returns a product's stock across all branches with the total
func (s *LedgerService) GetProductStock(ctx context.Context, productID uuid.UUID) (*ProductStockResponse, error) {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, err
	}

	filter := shared.DefaultFilter()
	filter.PageSize = 0 // all branches
	stocks, err := s.stockRepo.FindByProduct(ctx, productID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.stockRepo.SumStockByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	return &ProductStockResponse{
		ProductID:  productID,
		TotalStock: total,
		Branches:   ToBranchStockResponses(stocks),
	}, nil
}

// GetBranchSummary returns per-status counts for a branch. Status is derived
// from per-row thresholds, so counting happens here rather than in SQL.
func (s *LedgerService) GetBranchSummary(ctx context.Context, branchID uuid.UUID) (*BranchStockSummaryResponse, error) {
	filter := shared.DefaultFilter()
	filter.PageSize = 0
	stocks, err := s.stockRepo.FindByBranch(ctx, branchID, filter)
	if err != nil {
		return nil, err
	}

	summary := BranchStockSummaryResponse{
		BranchID:      branchID,
		TotalProducts: int64(len(stocks)),
	}
	for i := range stocks {
		switch stocks[i].Status() {
		case inventory.StockStatusOutOfStock:
			summary.OutOfStock++
		case inventory.StockStatusCritical:
			summary.Critical++
		case inventory.StockStatusLow:
			summary.Low++
		default:
			summary.InStock++
		}
	}
	return &summary, nil
}

// LowStockAlerts returns the branch's at-risk records grouped by severity
func (s *LedgerService) LowStockAlerts(ctx context.Context, branchID uuid.UUID) (*LowStockAlertsResponse, error) {
	filter := shared.DefaultFilter()
	filter.PageSize = 0
	stocks, err := s.stockRepo.FindBelowReorder(ctx, branchID, filter)
	if err != nil {
		return nil, err
	}

	alerts := LowStockAlertsResponse{
		BranchID:   branchID,
		OutOfStock: []BranchStockResponse{},
		Critical:   []BranchStockResponse{},
		Low:        []BranchStockResponse{},
	}
	for i := range stocks {
		resp := ToBranchStockResponse(&stocks[i])
		switch stocks[i].Status() {
		case inventory.StockStatusOutOfStock:
			alerts.OutOfStock = append(alerts.OutOfStock, resp)
		case inventory.StockStatusCritical:
			alerts.Critical = append(alerts.Critical, resp)
		default:
			alerts.Low = append(alerts.Low, resp)
		}
	}
	return &alerts, nil
}

// ListEntries returns ledger history for a product-branch pair, newest first
func (s *LedgerService) ListEntries(ctx context.Context, productID, branchID uuid.UUID, filter EntryListFilter) ([]StockEntryResponse, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.TransactionType != "" {
		domainFilter.Filters["transaction_type"] = filter.TransactionType
	}
	if filter.StartDate != nil {
		domainFilter.Filters["start_date"] = *filter.StartDate
	}
	if filter.EndDate != nil {
		domainFilter.Filters["end_date"] = *filter.EndDate
	}

	entries, err := s.entryRepo.FindByProductAndBranch(ctx, productID, branchID, domainFilter)
	if err != nil {
		return nil, err
	}
	return ToStockEntryResponses(entries), nil
}

// GetEntry returns a single ledger entry
func (s *LedgerService) GetEntry(ctx context.Context, id uuid.UUID) (*StockEntryResponse, error) {
	entry, err := s.entryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToStockEntryResponse(entry)
	return &response, nil
}

// CheckAvailability reports whether a branch can cover the requested quantity
func (s *LedgerService) CheckAvailability(ctx context.Context, productID, branchID uuid.UUID, quantity int) (bool, int, error) {
	stock, err := s.stockRepo.FindByProductAndBranch(ctx, productID, branchID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return false, 0, nil
		}
		return false, 0, err
	}
	return stock.CanFulfill(quantity), stock.CurrentStock, nil
}

// PublishSideEffects delivers post-commit notifications and audit records
// for a committed entry. Failures are logged and never propagated: the
// ledger's consistency always takes priority over delivery.
func (s *LedgerService) PublishSideEffects(ctx context.Context, stock *inventory.BranchStock, entry *inventory.StockEntry) {
	s.publishDomainEvents(ctx, stock)

	notification := StockLevelNotification{
		ProductID:       entry.ProductID,
		BranchID:        entry.BranchID,
		TransactionType: entry.TransactionType.String(),
		Quantity:        entry.Quantity,
		CurrentStock:    entry.QuantityAfter,
		Status:          string(stock.Status()),
	}
	if err := s.notifier.PublishStockLevel(ctx, notification); err != nil {
		logger.WithLogger(ctx, s.logger).Warn("failed to publish stock level notification",
			zap.String("product_id", entry.ProductID.String()),
			zap.String("branch_id", entry.BranchID.String()),
			zap.Error(err),
		)
	}

	if stock.IsBelowReorderPoint() {
		alert := LowStockAlert{
			ProductID:    entry.ProductID,
			BranchID:     entry.BranchID,
			CurrentStock: entry.QuantityAfter,
			ReorderPoint: stock.EffectiveReorderPoint(),
			Status:       string(stock.Status()),
		}
		if err := s.notifier.PublishLowStockAlert(ctx, alert); err != nil {
			logger.WithLogger(ctx, s.logger).Warn("failed to publish low stock alert",
				zap.String("product_id", entry.ProductID.String()),
				zap.String("branch_id", entry.BranchID.String()),
				zap.Error(err),
			)
		}
	}

	s.recordAudit(ctx, entry.PerformedBy, entry.TransactionType.String(), entry.ID,
		fmt.Sprintf("%s of %d units for product %s at branch %s (%d -> %d)",
			entry.TransactionType, entry.AbsQuantity(), entry.ProductID, entry.BranchID,
			entry.QuantityBefore, entry.QuantityAfter))
}

func (s *LedgerService) publishDomainEvents(ctx context.Context, stock *inventory.BranchStock) {
	if s.eventPublisher == nil || stock == nil {
		return
	}
	events := stock.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		logger.WithLogger(ctx, s.logger).Warn("failed to publish domain events", zap.Error(err))
	}
	stock.ClearDomainEvents()
}

func (s *LedgerService) recordAudit(ctx context.Context, userID uuid.UUID, action string, recordID uuid.UUID, description string) {
	record := AuditRecord{
		UserID:      userID,
		Action:      action,
		Module:      "stock",
		RecordID:    recordID,
		Description: description,
	}
	if err := s.audit.Record(ctx, record); err != nil {
		logger.WithLogger(ctx, s.logger).Warn("failed to record audit entry",
			zap.String("action", action),
			zap.Error(err),
		)
	}
}

// ensureReferences verifies the product and branch exist before any write
func (s *LedgerService) ensureReferences(ctx context.Context, productID, branchID uuid.UUID) error {
	exists, err := s.productRepo.ExistsByID(ctx, productID)
	if err != nil {
		return err
	}
	if !exists {
		return shared.NewDomainError("NOT_FOUND", "Product not found")
	}

	exists, err = s.branchRepo.ExistsByID(ctx, branchID)
	if err != nil {
		return err
	}
	if !exists {
		return shared.NewDomainError("NOT_FOUND", "Branch not found")
	}

	return nil
}
