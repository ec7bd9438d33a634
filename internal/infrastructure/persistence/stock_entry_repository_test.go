package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/inventory"
	"github.com/maumaun30/CM-Pharmacy-API/internal/domain/shared"
)

func newMockStockEntryRepository(t *testing.T) (*GormStockEntryRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormStockEntryRepository(gormDB), mock, mockDB
}

func stockEntryRows(id, productID, branchID uuid.UUID, txType string, quantity, before, after int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "product_id", "branch_id", "transaction_type",
		"quantity", "quantity_before", "quantity_after",
		"performed_by", "created_at",
	}).AddRow(
		id, productID, branchID, txType,
		quantity, before, after,
		uuid.New(), time.Now(),
	)
}

func TestGormStockEntryRepository_FindByID(t *testing.T) {
	t.Run("finds existing entry", func(t *testing.T) {
		repo, mock, mockDB := newMockStockEntryRepository(t)
		defer mockDB.Close()

		entryID := uuid.New()
		productID := uuid.New()
		branchID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "stock_entries" WHERE id = \$1`).
			WithArgs(entryID, 1).
			WillReturnRows(stockEntryRows(entryID, productID, branchID, "SALE", -5, 50, 45))

		entry, err := repo.FindByID(context.Background(), entryID)

		assert.NoError(t, err)
		assert.NotNil(t, entry)
		assert.Equal(t, entryID, entry.ID)
		assert.Equal(t, inventory.TransactionTypeSale, entry.TransactionType)
		assert.Equal(t, -5, entry.Quantity)
		assert.Equal(t, 50, entry.QuantityBefore)
		assert.Equal(t, 45, entry.QuantityAfter)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns error for non-existent entry", func(t *testing.T) {
		repo, mock, mockDB := newMockStockEntryRepository(t)
		defer mockDB.Close()

		entryID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "stock_entries" WHERE id = \$1`).
			WithArgs(entryID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		entry, err := repo.FindByID(context.Background(), entryID)

		assert.Error(t, err)
		assert.Nil(t, entry)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormStockEntryRepository_FindLatestByProductAndBranch(t *testing.T) {
	t.Run("finds most recent entry", func(t *testing.T) {
		repo, mock, mockDB := newMockStockEntryRepository(t)
		defer mockDB.Close()

		productID := uuid.New()
		branchID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "stock_entries" WHERE product_id = \$1 AND branch_id = \$2 ORDER BY created_at DESC`).
			WithArgs(productID, branchID, 1).
			WillReturnRows(stockEntryRows(uuid.New(), productID, branchID, "PURCHASE", 100, 20, 120))

		entry, err := repo.FindLatestByProductAndBranch(context.Background(), productID, branchID)

		assert.NoError(t, err)
		assert.NotNil(t, entry)
		assert.Equal(t, 120, entry.QuantityAfter)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormStockEntryRepository_FindByReference(t *testing.T) {
	t.Run("finds entries by reference", func(t *testing.T) {
		repo, mock, mockDB := newMockStockEntryRepository(t)
		defer mockDB.Close()

		saleID := uuid.New()
		rows := stockEntryRows(uuid.New(), uuid.New(), uuid.New(), "SALE", -2, 10, 8).
			AddRow(uuid.New(), uuid.New(), uuid.New(), "SALE", -3, 8, 5, uuid.New(), time.Now())

		mock.ExpectQuery(`SELECT \* FROM "stock_entries" WHERE reference_type = \$1 AND reference_id = \$2`).
			WithArgs("sale", saleID).
			WillReturnRows(rows)

		entries, err := repo.FindByReference(context.Background(), "sale", saleID)

		assert.NoError(t, err)
		assert.Len(t, entries, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormStockEntryRepository_Create(t *testing.T) {
	t.Run("inserts entry", func(t *testing.T) {
		repo, mock, mockDB := newMockStockEntryRepository(t)
		defer mockDB.Close()

		entry, err := inventory.NewStockEntry(
			uuid.New(), uuid.New(),
			inventory.TransactionTypePurchase,
			100, 0, 100,
			inventory.EntryMetadata{Supplier: "Unilab"},
			uuid.New(),
		)
		require.NoError(t, err)

		mock.ExpectExec(`INSERT INTO "stock_entries"`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = repo.Create(context.Background(), entry)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormStockEntryRepository_CreateBatch(t *testing.T) {
	t.Run("skips empty batch without touching the database", func(t *testing.T) {
		repo, mock, mockDB := newMockStockEntryRepository(t)
		defer mockDB.Close()

		err := repo.CreateBatch(context.Background(), nil)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormStockEntryRepository_CountByProductAndBranch(t *testing.T) {
	t.Run("counts ledger entries", func(t *testing.T) {
		repo, mock, mockDB := newMockStockEntryRepository(t)
		defer mockDB.Close()

		productID := uuid.New()
		branchID := uuid.New()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "stock_entries" WHERE product_id = \$1 AND branch_id = \$2`).
			WithArgs(productID, branchID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

		count, err := repo.CountByProductAndBranch(context.Background(), productID, branchID)

		assert.NoError(t, err)
		assert.Equal(t, int64(7), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
