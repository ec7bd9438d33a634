package persistence

import (
	"context"

	"gorm.io/gorm"

	ledger "github.com/maumaun30/CM-Pharmacy-API/internal/application/inventory"
	appsales "github.com/maumaun30/CM-Pharmacy-API/internal/application/sales"
	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/inventory"
	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/sales"
)

// GormTransactionScope implements the stock ledger transaction scope using
// GORM transactions. A stock record update and its ledger entry insert run
// in the same database transaction and commit or roll back together.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos ledger.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// gormTransactionalRepositories provides stock repositories bound to one transaction
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// StockRepo returns the branch stock repository scoped to the current transaction
func (r *gormTransactionalRepositories) StockRepo() inventory.BranchStockRepository {
	return NewGormBranchStockRepository(r.tx)
}

// EntryRepo returns the ledger entry repository scoped to the current transaction
func (r *gormTransactionalRepositories) EntryRepo() inventory.StockEntryRepository {
	return NewGormStockEntryRepository(r.tx)
}

var _ ledger.TransactionScope = (*GormTransactionScope)(nil)
var _ ledger.TransactionalRepositories = (*gormTransactionalRepositories)(nil)

// GormCheckoutScope implements the sales checkout transaction scope. It
// extends the stock repositories with the sale repository so a sale insert
// and its per-line ledger debits land in one transaction.
type GormCheckoutScope struct {
	db *gorm.DB
}

// NewGormCheckoutScope creates a new GormCheckoutScope
func NewGormCheckoutScope(db *gorm.DB) *GormCheckoutScope {
	return &GormCheckoutScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormCheckoutScope) Execute(ctx context.Context, fn func(repos appsales.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormCheckoutRepositories{gormTransactionalRepositories{tx: tx}})
	})
}

// gormCheckoutRepositories provides checkout repositories bound to one transaction
type gormCheckoutRepositories struct {
	gormTransactionalRepositories
}

// SaleRepo returns the sale repository scoped to the current transaction
func (r *gormCheckoutRepositories) SaleRepo() sales.SaleRepository {
	return NewGormSaleRepository(r.tx)
}

var _ appsales.TransactionScope = (*GormCheckoutScope)(nil)
var _ appsales.TransactionalRepositories = (*gormCheckoutRepositories)(nil)
