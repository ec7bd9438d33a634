package sales

import (
	"context"

	ledger "github.com/maumaun30/CM-Pharmacy-API/internal/application/inventory"
	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/inventory"
	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/sales"
)

// TransactionScope runs a checkout unit of work. The sale insert and every
// per-line ledger mutation share one database transaction.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes the repositories participating in a
// checkout transaction. It extends the stock repositories with the sale
// repository so a sale and its ledger entries commit together.
type TransactionalRepositories interface {
	ledger.TransactionalRepositories

	// SaleRepo returns the sale repository scoped to the current transaction
	SaleRepo() sales.SaleRepository
}

// NoOpTransactionScope runs checkout functions without a real transaction.
type NoOpTransactionScope struct {
	saleRepo   sales.SaleRepository
	stockScope ledger.TransactionalRepositories
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repositories.
func NewNoOpTransactionScope(saleRepo sales.SaleRepository, stockScope ledger.TransactionalRepositories) *NoOpTransactionScope {
	return &NoOpTransactionScope{saleRepo: saleRepo, stockScope: stockScope}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// SaleRepo returns the sale repository.
func (s *NoOpTransactionScope) SaleRepo() sales.SaleRepository {
	return s.saleRepo
}

// StockRepo returns the branch stock repository.
func (s *NoOpTransactionScope) StockRepo() inventory.BranchStockRepository {
	return s.stockScope.StockRepo()
}

// EntryRepo returns the ledger entry repository.
func (s *NoOpTransactionScope) EntryRepo() inventory.StockEntryRepository {
	return s.stockScope.EntryRepo()
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
