package sales

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSale(t *testing.T) {
	t.Run("creates empty sale", func(t *testing.T) {
		sale, err := NewSale(uuid.New(), uuid.New())

		require.NoError(t, err)
		assert.True(t, sale.IsEmpty())
		assert.True(t, sale.TotalAmount.IsZero())
		assert.False(t, sale.SoldAt.IsZero())
	})

	t.Run("fails with nil branch", func(t *testing.T) {
		sale, err := NewSale(uuid.Nil, uuid.New())

		require.Error(t, err)
		assert.Nil(t, sale)
	})

	t.Run("fails with nil seller", func(t *testing.T) {
		sale, err := NewSale(uuid.New(), uuid.Nil)

		require.Error(t, err)
		assert.Nil(t, sale)
	})
}

func TestSale_AddItem(t *testing.T) {
	t.Run("accumulates totals", func(t *testing.T) {
		sale, err := NewSale(uuid.New(), uuid.New())
		require.NoError(t, err)

		require.NoError(t, sale.AddItem(uuid.New(), 2, decimal.NewFromInt(100), decimal.Zero))
		require.NoError(t, sale.AddItem(uuid.New(), 3, decimal.NewFromInt(50), decimal.NewFromInt(10)))

		assert.Len(t, sale.Items, 2)
		assert.Equal(t, 5, sale.TotalQuantity())
		assert.True(t, sale.Subtotal.Equal(decimal.NewFromInt(350)))
		assert.True(t, sale.TotalDiscount.Equal(decimal.NewFromInt(30)))
		assert.True(t, sale.TotalAmount.Equal(decimal.NewFromInt(320)))
	})

	t.Run("rejects zero quantity", func(t *testing.T) {
		sale, err := NewSale(uuid.New(), uuid.New())
		require.NoError(t, err)

		err = sale.AddItem(uuid.New(), 0, decimal.NewFromInt(100), decimal.Zero)
		require.Error(t, err)
	})

	t.Run("rejects discount larger than price", func(t *testing.T) {
		sale, err := NewSale(uuid.New(), uuid.New())
		require.NoError(t, err)

		err = sale.AddItem(uuid.New(), 1, decimal.NewFromInt(10), decimal.NewFromInt(20))
		require.Error(t, err)
	})
}

func TestSale_SetPayment(t *testing.T) {
	sale, err := NewSale(uuid.New(), uuid.New())
	require.NoError(t, err)
	require.NoError(t, sale.AddItem(uuid.New(), 2, decimal.NewFromInt(100), decimal.Zero))

	t.Run("rejects underpayment", func(t *testing.T) {
		err := sale.SetPayment(decimal.NewFromInt(150))
		require.Error(t, err)
	})

	t.Run("computes change", func(t *testing.T) {
		err := sale.SetPayment(decimal.NewFromInt(500))
		require.NoError(t, err)
		assert.True(t, sale.ChangeAmount.Equal(decimal.NewFromInt(300)))
	})
}

func TestSaleItem_LineTotal(t *testing.T) {
	sale, err := NewSale(uuid.New(), uuid.New())
	require.NoError(t, err)
	require.NoError(t, sale.AddItem(uuid.New(), 4, decimal.NewFromInt(25), decimal.NewFromInt(5)))

	assert.True(t, sale.Items[0].LineTotal().Equal(decimal.NewFromInt(80)))
}
