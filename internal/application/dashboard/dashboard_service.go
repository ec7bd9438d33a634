package dashboard

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/catalog"
	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/identity"
	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/inventory"
	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/sales"
	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/shared"
	"github.com/maumaun30/CM-Pharmacy-API/internal/infrastructure/logger"
)

const recentSalesLimit = 10

// Service composes read-only aggregates for the dashboard screen:
// today's revenue, stock alert counts, and the latest transactions.
type Service struct {
	saleRepo    sales.SaleRepository
	stockRepo   inventory.BranchStockRepository
	productRepo catalog.ProductRepository
	userRepo    identity.UserRepository
	logger      *zap.Logger
}

func NewService(
	saleRepo sales.SaleRepository,
	stockRepo inventory.BranchStockRepository,
	productRepo catalog.ProductRepository,
	userRepo identity.UserRepository,
	logger *zap.Logger,
) *Service {
	return &Service{
		saleRepo:    saleRepo,
		stockRepo:   stockRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

// Stats returns the dashboard snapshot. A nil branchID aggregates across
// every branch; the handler decides the scope from the caller's role.
func (s *Service) Stats(ctx context.Context, branchID *uuid.UUID) (*StatsResponse, error) {
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	endOfDay := startOfDay.AddDate(0, 0, 1)

	totals, err := s.saleRepo.SumByBranchAndDateRange(ctx, branchID, startOfDay, endOfDay)
	if err != nil {
		return nil, err
	}

	lowStock, err := s.stockRepo.CountBelowReorder(ctx, branchID)
	if err != nil {
		return nil, err
	}
	outOfStock, err := s.stockRepo.CountOutOfStock(ctx, branchID)
	if err != nil {
		return nil, err
	}

	productFilter := shared.DefaultFilter()
	productFilter.Filters["status"] = string(catalog.ProductStatusActive)
	activeProducts, err := s.productRepo.Count(ctx, productFilter)
	if err != nil {
		return nil, err
	}

	recent, err := s.recentSales(ctx, branchID)
	if err != nil {
		return nil, err
	}

	return &StatsResponse{
		BranchID:          branchID,
		TodaySales:        totals.TotalAmount,
		TodayTransactions: totals.TransactionCount,
		LowStockCount:     lowStock,
		OutOfStockCount:   outOfStock,
		ActiveProducts:    activeProducts,
		RecentSales:       recent,
	}, nil
}

func (s *Service) recentSales(ctx context.Context, branchID *uuid.UUID) ([]RecentSale, error) {
	records, err := s.saleRepo.FindRecent(ctx, branchID, recentSalesLimit)
	if err != nil {
		return nil, err
	}

	// Sellers repeat across transactions; resolve each one once. A seller
	// that cannot be loaded degrades to an empty name rather than failing
	// the whole snapshot.
	names := make(map[uuid.UUID]string)
	recent := make([]RecentSale, len(records))
	for i := range records {
		sale := &records[i]
		name, ok := names[sale.SoldBy]
		if !ok {
			if seller, err := s.userRepo.FindByID(ctx, sale.SoldBy); err == nil {
				name = seller.FullName()
			} else {
				logger.WithLogger(ctx, s.logger).Warn("failed to resolve seller for dashboard feed",
					zap.String("user_id", sale.SoldBy.String()),
					zap.Error(err))
			}
			names[sale.SoldBy] = name
		}
		recent[i] = RecentSale{
			ID:          sale.ID,
			BranchID:    sale.BranchID,
			TotalAmount: sale.TotalAmount,
			SoldAt:      sale.SoldAt,
			SoldBy:      sale.SoldBy,
			SellerName:  name,
		}
	}
	return recent, nil
}
