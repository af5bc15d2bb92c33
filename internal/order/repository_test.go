package order

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"brytashop-be/internal/payment"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var orderCols = []string{
	"id", "user_id", "total", "charge", "payment_platform",
	"reference", "trans", "transaction", "trxref", "created_at", "updated_at",
}

var orderItemCols = []string{
	"id", "order_id", "item_id", "title", "description", "image", "large_image", "price", "quantity", "user_id",
}

func newMockRepo(t *testing.T) (Repository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func sampleOrder() *Order {
	itemID := uint(5)
	return &Order{
		UserID:          1,
		Total:           900,
		Charge:          "ch_1",
		PaymentPlatform: payment.PlatformStripe,
		Items: []OrderItem{
			{ItemID: &itemID, Title: "Hat", Description: "warm", Price: 300, Quantity: 3},
		},
	}
}

func TestRepository_CreateOrderTx(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	t.Run("Success", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO orders`).
			WithArgs(1, 900, "ch_1", payment.PlatformStripe, nil, nil, nil, nil).
			WillReturnRows(sqlmock.NewRows(orderCols).
				AddRow(10, 1, 900, "ch_1", "Stripe", nil, nil, nil, nil, now, now))
		mock.ExpectQuery(`INSERT INTO order_items`).
			WithArgs(10, 5, "Hat", "warm", nil, nil, 300, 3, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(100))
		mock.ExpectExec(`DELETE FROM cart_items WHERE user_id = \$1 AND id = ANY\(\$2\)`).
			WithArgs(1, pq.Array([]int64{7, 8})).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectCommit()

		saved, err := repo.CreateOrderTx(ctx, sampleOrder(), []uint{7, 8})
		require.NoError(t, err)
		assert.Equal(t, uint(10), saved.ID)
		require.Len(t, saved.Items, 1)
		assert.Equal(t, uint(100), saved.Items[0].ID)
		assert.Equal(t, uint(10), saved.Items[0].OrderID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DuplicateCharge", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO orders`).
			WillReturnError(&pq.Error{Code: "23505"})
		mock.ExpectRollback()

		_, err := repo.CreateOrderTx(ctx, sampleOrder(), []uint{7})
		assert.ErrorIs(t, err, ErrPaymentAlreadyUsed)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("CartClearFailsRollsBack", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO orders`).
			WillReturnRows(sqlmock.NewRows(orderCols).
				AddRow(10, 1, 900, "ch_1", "Stripe", nil, nil, nil, nil, now, now))
		mock.ExpectQuery(`INSERT INTO order_items`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(100))
		mock.ExpectExec(`DELETE FROM cart_items`).
			WillReturnError(errors.New("deadlock detected"))
		mock.ExpectRollback()

		_, err := repo.CreateOrderTx(ctx, sampleOrder(), []uint{7})
		assert.EqualError(t, err, "deadlock detected")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	t.Run("WithItems", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		ref := "ref-1"

		mock.ExpectQuery(`SELECT .+ FROM orders WHERE id = \$1`).
			WithArgs(10).
			WillReturnRows(sqlmock.NewRows(orderCols).
				AddRow(10, 1, 900, "ref-1", "Paystack", ref, nil, nil, ref, now, now))
		mock.ExpectQuery(`FROM order_items\s+WHERE order_id = ANY\(\$1\)`).
			WithArgs(pq.Array([]int64{10})).
			WillReturnRows(sqlmock.NewRows(orderItemCols).
				AddRow(100, 10, nil, "Hat", "warm", nil, nil, 300, 3, 1))

		o, err := repo.GetByID(ctx, 10)
		require.NoError(t, err)
		assert.Equal(t, payment.PlatformPaystack, o.PaymentPlatform)
		require.NotNil(t, o.Reference)
		assert.Equal(t, "ref-1", *o.Reference)
		require.Len(t, o.Items, 1)
		assert.Nil(t, o.Items[0].ItemID)
	})

	t.Run("NotFound", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(`FROM orders WHERE id = \$1`).WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByID(ctx, 10)
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}

func TestRepository_ListByUser(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery(`FROM orders WHERE user_id = \$1 ORDER BY total ASC, id`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(orderCols).
			AddRow(10, 1, 100, "ch_1", "Stripe", nil, nil, nil, nil, now, now).
			AddRow(11, 1, 200, "ch_2", "Stripe", nil, nil, nil, nil, now, now))
	mock.ExpectQuery(`FROM order_items`).
		WithArgs(pq.Array([]int64{10, 11})).
		WillReturnRows(sqlmock.NewRows(orderItemCols).
			AddRow(100, 10, 5, "Hat", "warm", nil, nil, 100, 1, 1).
			AddRow(101, 11, 6, "Scarf", "wool", nil, nil, 100, 2, 1))

	orders, err := repo.ListByUser(context.Background(), 1, &Sort{Field: SortTotal})
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Len(t, orders[0].Items, 1)
	assert.Equal(t, "Scarf", orders[1].Items[0].Title)
}

func TestRepository_ExistsByCharge(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM orders WHERE payment_platform = \$1 AND charge = \$2\)`).
		WithArgs(payment.PlatformPaystack, "ref-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := repo.ExistsByCharge(context.Background(), payment.PlatformPaystack, "ref-1")
	require.NoError(t, err)
	assert.True(t, ok)
}
