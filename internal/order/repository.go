package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"brytashop-be/internal/logger"
	"brytashop-be/internal/payment"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	CreateOrderTx(ctx context.Context, o *Order, cartItemIDs []uint) (*Order, error)
	GetByID(ctx context.Context, id uint) (*Order, error)
	ListByUser(ctx context.Context, userID uint, sort *Sort) ([]*Order, error)
	ExistsByCharge(ctx context.Context, platform payment.Platform, charge string) (bool, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const orderColumns = `id, user_id, total, charge, payment_platform, reference, trans, transaction, trxref, created_at, updated_at`

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row scanner) (*Order, error) {
	var o Order
	err := row.Scan(
		&o.ID, &o.UserID, &o.Total, &o.Charge, &o.PaymentPlatform,
		&o.Reference, &o.Trans, &o.Transaction, &o.Trxref,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// CreateOrderTx stores the order with its items and removes the purchased
// cart lines in one transaction.
func (r *repository) CreateOrderTx(ctx context.Context, o *Order, cartItemIDs []uint) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateOrderTx"),
		zap.Uint("user_id", o.UserID),
		zap.String("charge", o.Charge),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin tx", zap.Error(err))
		return nil, err
	}
	defer tx.Rollback()

	// 1. Insert order
	saved, err := scanOrder(tx.QueryRowContext(ctx, `
		INSERT INTO orders (
			user_id, total, charge, payment_platform,
			reference, trans, transaction, trxref
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING `+orderColumns,
		o.UserID, o.Total, o.Charge, o.PaymentPlatform,
		o.Reference, o.Trans, o.Transaction, o.Trxref,
	))
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
			log.Warn("payment already backs an order")
			return nil, ErrPaymentAlreadyUsed
		}
		log.Error("failed to insert order", zap.Error(err))
		return nil, err
	}

	// 2. Insert order items
	for _, it := range o.Items {
		it.OrderID = saved.ID
		it.UserID = o.UserID
		err = tx.QueryRowContext(ctx, `
			INSERT INTO order_items (
				order_id, item_id, title, description,
				image, large_image, price, quantity, user_id
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
			RETURNING id`,
			it.OrderID, it.ItemID, it.Title, it.Description,
			it.Image, it.LargeImage, it.Price, it.Quantity, it.UserID,
		).Scan(&it.ID)
		if err != nil {
			log.Error("failed to insert order item", zap.Error(err))
			return nil, err
		}
		saved.Items = append(saved.Items, it)
	}

	// 3. Clear exactly the purchased cart lines
	if len(cartItemIDs) > 0 {
		_, err = tx.ExecContext(ctx,
			`DELETE FROM cart_items WHERE user_id = $1 AND id = ANY($2)`,
			o.UserID, pq.Array(toInt64s(cartItemIDs)),
		)
		if err != nil {
			log.Error("failed to clear cart", zap.Error(err))
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit order", zap.Error(err))
		return nil, err
	}

	log.Info("order stored", zap.Uint("order_id", saved.ID), zap.Int("items", len(saved.Items)))
	return saved, nil
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := r.attachItems(ctx, []*Order{o}); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uint, sort *Sort) ([]*Order, error) {
	orderBy := "created_at DESC"
	if sort != nil {
		dir := "ASC"
		if sort.Desc {
			dir = "DESC"
		}
		switch sort.Field {
		case SortTotal:
			orderBy = "total " + dir
		case SortCreatedAt:
			orderBy = "created_at " + dir
		}
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY `+orderBy+`, id`, userID)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to query orders", zap.Uint("user_id", userID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	orders := []*Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repository) ExistsByCharge(ctx context.Context, platform payment.Platform, charge string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM orders WHERE payment_platform = $1 AND charge = $2)`,
		platform, charge,
	).Scan(&exists)
	return exists, err
}

func (r *repository) attachItems(ctx context.Context, orders []*Order) error {
	if len(orders) == 0 {
		return nil
	}

	byID := make(map[uint]*Order, len(orders))
	ids := make([]int64, 0, len(orders))
	for _, o := range orders {
		byID[o.ID] = o
		ids = append(ids, int64(o.ID))
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, item_id, title, description, image, large_image, price, quantity, user_id
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY id`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("load order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var it OrderItem
		if err := rows.Scan(
			&it.ID, &it.OrderID, &it.ItemID, &it.Title, &it.Description,
			&it.Image, &it.LargeImage, &it.Price, &it.Quantity, &it.UserID,
		); err != nil {
			return err
		}
		if o, ok := byID[it.OrderID]; ok {
			o.Items = append(o.Items, it)
		}
	}
	return rows.Err()
}

func toInt64s(ids []uint) []int64 {
	out := make([]int64, len(ids))
	for i, id := range ids {
		out[i] = int64(id)
	}
	return out
}
