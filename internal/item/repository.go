package item

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"brytashop-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, it *Item) (*Item, error)
	GetByID(ctx context.Context, id uint) (*Item, error)
	Update(ctx context.Context, id uint, p UpdateParams) (*Item, error)
	Delete(ctx context.Context, id uint) (*Item, error)
	List(ctx context.Context, p ListParams) ([]*Item, error)
	Count(ctx context.Context, f *Filter) (int, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const itemColumns = `id, title, description, image, large_image, price, user_id, created_at, updated_at`

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanItem(row scanner) (*Item, error) {
	var it Item
	err := row.Scan(
		&it.ID, &it.Title, &it.Description, &it.Image, &it.LargeImage,
		&it.Price, &it.UserID, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *repository) Create(ctx context.Context, it *Item) (*Item, error) {
	created, err := scanItem(r.db.QueryRowContext(ctx, `
		INSERT INTO items (title, description, image, large_image, price, user_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+itemColumns,
		it.Title, it.Description, it.Image, it.LargeImage, it.Price, it.UserID,
	))
	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to insert item",
			zap.String("layer", "repository"),
			zap.Uint("user_id", it.UserID),
			zap.Error(err),
		)
		return nil, err
	}
	return created, nil
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Item, error) {
	it, err := scanItem(r.db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrItemNotFound
	}
	return it, err
}

func (r *repository) Update(ctx context.Context, id uint, p UpdateParams) (*Item, error) {
	it, err := scanItem(r.db.QueryRowContext(ctx, `
		UPDATE items SET
			title = COALESCE($1, title),
			description = COALESCE($2, description),
			image = COALESCE($3, image),
			large_image = COALESCE($4, large_image),
			price = COALESCE($5, price),
			updated_at = NOW()
		WHERE id = $6
		RETURNING `+itemColumns,
		p.Title, p.Description, p.Image, p.LargeImage, p.Price, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to update item", zap.Uint("item_id", id), zap.Error(err))
	}
	return it, err
}

func (r *repository) Delete(ctx context.Context, id uint) (*Item, error) {
	it, err := scanItem(r.db.QueryRowContext(ctx,
		`DELETE FROM items WHERE id = $1 RETURNING `+itemColumns, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrItemNotFound
	}
	return it, err
}

func (r *repository) List(ctx context.Context, p ListParams) ([]*Item, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "List"),
	)

	where, args := buildWhere(p.Filter)
	query := `SELECT ` + itemColumns + ` FROM items` + where + ` ORDER BY ` + orderClause(p.Sort)

	limit := MaxPageSize
	if p.First != nil {
		limit = min(max(*p.First, 0), MaxPageSize)
	}
	if limit == 0 {
		return []*Item{}, nil
	}
	offset := p.Skip
	if offset < 0 {
		offset = 0
	}
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	log.Debug("executing list items query", zap.String("query", query), zap.Any("args", args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query items", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	items := []*Item{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *repository) Count(ctx context.Context, f *Filter) (int, error) {
	where, args := buildWhere(f)
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM items`+where, args...).Scan(&n)
	return n, err
}

func buildWhere(f *Filter) (string, []any) {
	if f == nil {
		return "", nil
	}

	var (
		clauses []string
		args    []any
	)
	add := func(clause string, arg any) {
		args = append(args, arg)
		clauses = append(clauses, fmt.Sprintf(clause, len(args)))
	}

	if f.ID != nil {
		add("id = $%d", *f.ID)
	}
	if f.TitleContains != nil && *f.TitleContains != "" {
		add("title ILIKE $%d", "%"+*f.TitleContains+"%")
	}
	if f.DescriptionContains != nil && *f.DescriptionContains != "" {
		add("description ILIKE $%d", "%"+*f.DescriptionContains+"%")
	}
	if f.Search != nil && *f.Search != "" {
		args = append(args, "%"+*f.Search+"%")
		n := len(args)
		clauses = append(clauses, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", n, n))
	}

	if len(clauses) == 0 {
		return "", nil
	}
	where := " WHERE " + clauses[0]
	for _, c := range clauses[1:] {
		where += " AND " + c
	}
	return where, args
}

func orderClause(s *Sort) string {
	if s == nil {
		return "created_at DESC, id DESC"
	}

	field := SortCreatedAt
	switch s.Field {
	case SortPrice, SortTitle, SortCreatedAt:
		field = s.Field
	}

	dir := "ASC"
	if s.Desc {
		dir = "DESC"
	}
	return string(field) + " " + dir + ", id " + dir
}
