package cart

import (
	"context"
	"database/sql"
	"errors"

	"brytashop-be/internal/item"
	"brytashop-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	Upsert(ctx context.Context, userID, itemID uint) (*CartItem, error)
	GetByID(ctx context.Context, id uint) (*CartItem, error)
	Delete(ctx context.Context, id uint) error
	ListByUser(ctx context.Context, userID uint) ([]*CartItem, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const lineSelect = `
	SELECT
		c.id, c.quantity, c.user_id,
		i.id, i.title, i.description, i.image, i.large_image, i.price, i.user_id, i.created_at, i.updated_at
`

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanLine(row scanner) (*CartItem, error) {
	var c CartItem
	err := row.Scan(
		&c.ID, &c.Quantity, &c.UserID,
		&c.Item.ID, &c.Item.Title, &c.Item.Description, &c.Item.Image, &c.Item.LargeImage,
		&c.Item.Price, &c.Item.UserID, &c.Item.CreatedAt, &c.Item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Upsert adds one unit of the item to the user's cart in a single statement.
func (r *repository) Upsert(ctx context.Context, userID, itemID uint) (*CartItem, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Upsert"),
		zap.Uint("user_id", userID),
		zap.Uint("item_id", itemID),
	)

	line, err := scanLine(r.db.QueryRowContext(ctx, `
		WITH c AS (
			INSERT INTO cart_items (user_id, item_id, quantity)
			VALUES ($1, $2, 1)
			ON CONFLICT (user_id, item_id)
			DO UPDATE SET quantity = cart_items.quantity + 1, updated_at = NOW()
			RETURNING id, quantity, user_id, item_id
		)`+lineSelect+`
		FROM c
		JOIN items i ON i.id = c.item_id`,
		userID, itemID,
	))
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgForeignKeyViolation {
			return nil, item.ErrItemNotFound
		}
		log.Error("db: failed to upsert cart item", zap.Error(err))
		return nil, err
	}

	log.Debug("cart item upserted", zap.Int("quantity", line.Quantity))
	return line, nil
}

func (r *repository) GetByID(ctx context.Context, id uint) (*CartItem, error) {
	line, err := scanLine(r.db.QueryRowContext(ctx, lineSelect+`
		FROM cart_items c
		JOIN items i ON i.id = c.item_id
		WHERE c.id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCartItemNotFound
	}
	return line, err
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE id = $1`, id)
	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to delete cart item", zap.Uint("cart_item_id", id), zap.Error(err))
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

func (r *repository) ListByUser(ctx context.Context, userID uint) ([]*CartItem, error) {
	rows, err := r.db.QueryContext(ctx, lineSelect+`
		FROM cart_items c
		JOIN items i ON i.id = c.item_id
		WHERE c.user_id = $1
		ORDER BY c.id`, userID)
	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to list cart", zap.Uint("user_id", userID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	lines := []*CartItem{}
	for rows.Next() {
		l, err := scanLine(rows)
		if err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}
