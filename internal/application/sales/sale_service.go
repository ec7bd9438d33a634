package sales

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	ledger "github.com/maumaun30/CM-Pharmacy-API/internal/application/inventory"
	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/catalog"
	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/inventory"
	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/sales"
	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/shared"
	"github.com/maumaun30/CM-Pharmacy-API/internal/infrastructure/logger"
)

// NotificationSink delivers sale side effects after the transaction commits.
type NotificationSink interface {
	PublishSaleCompleted(ctx context.Context, notification SaleCompletedNotification) error
}

// NoopNotificationSink discards sale notifications.
type NoopNotificationSink struct{}

func (NoopNotificationSink) PublishSaleCompleted(context.Context, SaleCompletedNotification) error {
	return nil
}

// SaleService handles point-of-sale checkouts. A checkout inserts the sale
// with its line items and debits the stock ledger once per line, all in one
// transaction. Insufficient stock on any line aborts the whole sale.
type SaleService struct {
	saleRepo     sales.SaleRepository
	productRepo  catalog.ProductRepository
	branchRepo   catalog.BranchRepository
	discountRepo catalog.DiscountRepository
	ledgerSvc    *ledger.LedgerService
	txScope      TransactionScope
	notifier     NotificationSink
	audit        ledger.AuditSink
	logger       *zap.Logger
}

// NewSaleService creates a new sale service
func NewSaleService(
	saleRepo sales.SaleRepository,
	productRepo catalog.ProductRepository,
	branchRepo catalog.BranchRepository,
	ledgerSvc *ledger.LedgerService,
	txScope TransactionScope,
	logger *zap.Logger,
) *SaleService {
	return &SaleService{
		saleRepo:    saleRepo,
		productRepo: productRepo,
		branchRepo:  branchRepo,
		ledgerSvc:   ledgerSvc,
		txScope:     txScope,
		notifier:    NoopNotificationSink{},
		audit:       ledger.NoopAuditSink{},
		logger:      logger,
	}
}

// SetDiscountRepository enables server-side discount resolution at checkout.
// Without it every line sells at full catalog price.
func (s *SaleService) SetDiscountRepository(repo catalog.DiscountRepository) {
	s.discountRepo = repo
}

// SetNotificationSink replaces the notification sink
func (s *SaleService) SetNotificationSink(sink NotificationSink) {
	if sink != nil {
		s.notifier = sink
	}
}

// SetAuditSink replaces the audit sink
func (s *SaleService) SetAuditSink(sink ledger.AuditSink) {
	if sink != nil {
		s.audit = sink
	}
}

type ledgerLeg struct {
	stock *inventory.BranchStock
	entry *inventory.StockEntry
}

// CreateSale validates the cart against the catalog, recomputes all totals
// server-side, then commits the sale and its per-line ledger debits atomically.
func (s *SaleService) CreateSale(ctx context.Context, req CreateSaleRequest) (*SaleResponse, error) {
	if len(req.Items) == 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Sale must have at least one item")
	}

	exists, err := s.branchRepo.ExistsByID(ctx, req.BranchID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, shared.NewDomainError("NOT_FOUND", "Branch not found")
	}

	sale, err := sales.NewSale(req.BranchID, req.SoldBy)
	if err != nil {
		return nil, err
	}

	// Prices and discounts always come from the catalog at checkout time;
	// the client never supplies either.
	for _, line := range req.Items {
		product, err := s.productRepo.FindByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("NOT_FOUND", "Product not found: "+line.ProductID.String())
			}
			return nil, err
		}
		if !product.IsActive() {
			return nil, shared.NewDomainError("VALIDATION_ERROR", "Product is not sellable: "+product.Name)
		}

		discount, err := s.resolveDiscount(ctx, product, sale.SoldAt)
		if err != nil {
			return nil, err
		}
		if err := sale.AddItem(product.ID, line.Quantity, product.Price, discount); err != nil {
			return nil, err
		}
	}

	if err := sale.SetPayment(req.CashAmount); err != nil {
		return nil, err
	}

	var legs []ledgerLeg
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.SaleRepo().Save(ctx, sale); err != nil {
			return err
		}

		for _, item := range sale.Items {
			unitPrice := item.DiscountedPrice
			entry, stock, err := s.ledgerSvc.ApplyTransactionInScope(ctx, repos, ledger.ApplyTransactionRequest{
				ProductID:       item.ProductID,
				BranchID:        sale.BranchID,
				TransactionType: inventory.TransactionTypeSale.String(),
				Quantity:        -item.Quantity,
				UnitCost:        &unitPrice,
				ReferenceID:     &sale.ID,
				ReferenceType:   "sale",
				PerformedBy:     sale.SoldBy,
			})
			if err != nil {
				return err
			}
			legs = append(legs, ledgerLeg{stock: stock, entry: entry})
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, leg := range legs {
		s.ledgerSvc.PublishSideEffects(ctx, leg.stock, leg.entry)
	}
	s.publishSaleSideEffects(ctx, sale)

	response := ToSaleResponse(sale)
	return &response, nil
}

// GetSale retrieves a sale with its line items
func (s *SaleService) GetSale(ctx context.Context, id uuid.UUID) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToSaleResponse(sale)
	return &response, nil
}

// ListByBranch retrieves sales for a branch with optional date and seller filters
func (s *SaleService) ListByBranch(ctx context.Context, branchID uuid.UUID, filter SaleListFilter) ([]SaleResponse, error) {
	repoFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		repoFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		repoFilter.PageSize = filter.PageSize
	}

	var (
		records []sales.Sale
		err     error
	)
	switch {
	case filter.StartDate != nil && filter.EndDate != nil:
		records, err = s.saleRepo.FindByDateRange(ctx, branchID, *filter.StartDate, *filter.EndDate, repoFilter)
	case filter.SoldBy != nil:
		records, err = s.saleRepo.FindBySeller(ctx, *filter.SoldBy, repoFilter)
	default:
		records, err = s.saleRepo.FindByBranch(ctx, branchID, repoFilter)
	}
	if err != nil {
		return nil, err
	}
	return ToSaleResponses(records), nil
}

// resolveDiscount returns the per-unit deduction for a product at the time
// of sale. When several rules apply the biggest single deduction wins;
// rules do not stack.
func (s *SaleService) resolveDiscount(ctx context.Context, product *catalog.Product, at time.Time) (decimal.Decimal, error) {
	if s.discountRepo == nil {
		return decimal.Zero, nil
	}

	active, err := s.discountRepo.FindActiveForProduct(ctx, product.ID, at)
	if err != nil {
		return decimal.Zero, err
	}

	best := decimal.Zero
	for i := range active {
		if amount := active[i].AmountFor(product.Price); amount.GreaterThan(best) {
			best = amount
		}
	}
	return best, nil
}

func (s *SaleService) publishSaleSideEffects(ctx context.Context, sale *sales.Sale) {
	if err := s.notifier.PublishSaleCompleted(ctx, SaleCompletedNotification{
		SaleID:      sale.ID,
		BranchID:    sale.BranchID,
		TotalAmount: sale.TotalAmount,
		ItemCount:   len(sale.Items),
		SoldBy:      sale.SoldBy,
	}); err != nil {
		logger.WithLogger(ctx, s.logger).Warn("failed to publish sale notification",
			zap.String("sale_id", sale.ID.String()),
			zap.Error(err))
	}

	description := fmt.Sprintf("Sale of %d items totaling %s at branch %s",
		sale.TotalQuantity(), sale.TotalAmount.StringFixed(2), sale.BranchID)
	if err := s.audit.Record(ctx, ledger.AuditRecord{
		UserID:      sale.SoldBy,
		Action:      "CREATE",
		Module:      "sales",
		RecordID:    sale.ID,
		Description: description,
	}); err != nil {
		logger.WithLogger(ctx, s.logger).Warn("failed to record sale audit entry",
			zap.String("sale_id", sale.ID.String()),
			zap.Error(err))
	}
}
