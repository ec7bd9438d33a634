package inventory

import (
	"context"

	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/inventory"
)

// TransactionScope provides transactional access to stock repositories.
// When a function is executed within a transaction scope, all repository
// operations are part of the same database transaction and commit or roll
// back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the stock repositories within
// a transaction. All repositories returned share the same underlying database
// transaction, so a branch record update and its ledger entry insert always
// land together.
type TransactionalRepositories interface {
	// StockRepo returns the branch stock repository scoped to the current transaction
	StockRepo() inventory.BranchStockRepository
	// EntryRepo returns the ledger entry repository scoped to the current transaction
	EntryRepo() inventory.StockEntryRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. Useful for testing or when transaction support is not required.
type NoOpTransactionScope struct {
	stockRepo inventory.BranchStockRepository
	entryRepo inventory.StockEntryRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	stockRepo inventory.BranchStockRepository,
	entryRepo inventory.StockEntryRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		stockRepo: stockRepo,
		entryRepo: entryRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// StockRepo returns the branch stock repository.
func (s *NoOpTransactionScope) StockRepo() inventory.BranchStockRepository {
	return s.stockRepo
}

// EntryRepo returns the ledger entry repository.
func (s *NoOpTransactionScope) EntryRepo() inventory.StockEntryRepository {
	return s.entryRepo
}

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
