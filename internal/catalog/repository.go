package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/devNatanFrei/e-commerce/internal/model"
	"github.com/devNatanFrei/e-commerce/internal/platform/db"
)

var (
	ErrNotFound            = errors.New("catalog repository: product not found")
	ErrQueryFailed         = errors.New("catalog repository: query failed")
	ErrConstraintViolation = errors.New("catalog repository: constraint violation")
)

type SQLRepository struct {
	db db.Executor
}

var _ Repository = &SQLRepository{}

func NewSQLRepository(dbExec db.Executor) *SQLRepository {
	return &SQLRepository{db: dbExec}
}

// exec returns the transaction bound to ctx when one is present, otherwise
// the repository's own executor.
func (r *SQLRepository) exec(ctx context.Context) db.Executor {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db
}

type CreateParams struct {
	ID               string
	Name             string
	ShortDescription string
	LongDescription  string
	Slug             string
	Price            float64
	PromoPrice       float64
	Type             string
	Now              time.Time
}

const QueryProductCreate = `
INSERT INTO products (id, name, short_description, long_description, image, slug, price, promo_price, type, created_at, updated_at)
VALUES (?, ?, ?, ?, '', ?, ?, ?, ?, ?, ?)
`

func (r *SQLRepository) Create(ctx context.Context, params CreateParams) (Product, error) {
	_, err := r.exec(ctx).ExecContext(ctx, QueryProductCreate,
		params.ID, params.Name, params.ShortDescription, params.LongDescription,
		params.Slug, params.Price, params.PromoPrice, params.Type, params.Now, params.Now)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return Product{}, fmt.Errorf("%w: product with slug %s already exists", ErrConstraintViolation, params.Slug)
		}
		return Product{}, fmt.Errorf("%w: create product %s: %v", ErrQueryFailed, params.Name, err)
	}

	p := Product{
		Model: model.Model{
			ID:        params.ID,
			CreatedAt: params.Now,
			UpdatedAt: params.Now,
		},
		Name:             params.Name,
		ShortDescription: params.ShortDescription,
		LongDescription:  params.LongDescription,
		Slug:             params.Slug,
		Price:            params.Price,
		PromoPrice:       params.PromoPrice,
		Type:             params.Type,
	}
	return p, nil
}

type UpdateParams struct {
	ID               string
	Name             string
	ShortDescription string
	LongDescription  string
	Slug             string
	Price            float64
	PromoPrice       float64
	Type             string
	Now              time.Time
}

const QueryProductUpdate = `
UPDATE products
SET name = ?, short_description = ?, long_description = ?, slug = ?, price = ?, promo_price = ?, type = ?, updated_at = ?
WHERE id = ?
`

func (r *SQLRepository) Update(ctx context.Context, params UpdateParams) error {
	res, err := r.exec(ctx).ExecContext(ctx, QueryProductUpdate,
		params.Name, params.ShortDescription, params.LongDescription, params.Slug,
		params.Price, params.PromoPrice, params.Type, params.Now, params.ID)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("%w: product with slug %s already exists", ErrConstraintViolation, params.Slug)
		}
		return fmt.Errorf("%w: update product with id %s: %v", ErrQueryFailed, params.ID, err)
	}

	return r.checkAffected(res, params.ID)
}

const QueryProductSetImage = `
UPDATE products
SET image = ?, updated_at = ?
WHERE id = ?
`

func (r *SQLRepository) SetImage(ctx context.Context, productID, image string, now time.Time) error {
	res, err := r.exec(ctx).ExecContext(ctx, QueryProductSetImage, image, now, productID)
	if err != nil {
		return fmt.Errorf("%w: set image of product with id %s: %v", ErrQueryFailed, productID, err)
	}

	return r.checkAffected(res, productID)
}

const QueryProductDelete = `
DELETE FROM products
WHERE id = ?
`

func (r *SQLRepository) Delete(ctx context.Context, productID string) error {
	res, err := r.exec(ctx).ExecContext(ctx, QueryProductDelete, productID)
	if err != nil {
		return fmt.Errorf("%w: delete product with id %s: %v", ErrQueryFailed, productID, err)
	}

	return r.checkAffected(res, productID)
}

// checkAffected maps a zero-row write to ErrNotFound.
func (r *SQLRepository) checkAffected(res sql.Result, productID string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: rows affected: %v", ErrQueryFailed, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: no product with id %s", ErrNotFound, productID)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.Name, &p.ShortDescription, &p.LongDescription, &p.Image,
		&p.Slug, &p.Price, &p.PromoPrice, &p.Type, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

const QueryProductFind = `
SELECT id, name, short_description, long_description, image, slug, price, promo_price, type, created_at, updated_at FROM products
WHERE id = ?
LIMIT 1
`

func (r *SQLRepository) Find(ctx context.Context, productID string) (*Product, error) {
	p, err := scanProduct(r.exec(ctx).QueryRowContext(ctx, QueryProductFind, productID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: find product with id %s: %v", ErrQueryFailed, productID, err)
	}

	variations, err := r.variationsOf(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	p.Variations = variations

	return &p, nil
}

const QueryProductFindBySlug = `
SELECT id, name, short_description, long_description, image, slug, price, promo_price, type, created_at, updated_at FROM products
WHERE slug = ?
LIMIT 1
`

func (r *SQLRepository) FindBySlug(ctx context.Context, slug string) (*Product, error) {
	p, err := scanProduct(r.exec(ctx).QueryRowContext(ctx, QueryProductFindBySlug, slug))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: find product with slug %s: %v", ErrQueryFailed, slug, err)
	}

	variations, err := r.variationsOf(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	p.Variations = variations

	return &p, nil
}

const QueryProductList = `
SELECT id, name, short_description, long_description, image, slug, price, promo_price, type, created_at, updated_at FROM products
ORDER BY created_at DESC
LIMIT ? OFFSET ?
`

func (r *SQLRepository) List(ctx context.Context, limit, offset int) ([]Product, error) {
	rows, err := r.exec(ctx).QueryContext(ctx, QueryProductList, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%w: list products: %v", ErrQueryFailed, err)
	}
	defer rows.Close()

	products := make([]Product, 0, limit)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("catalog repository: scan product row: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("catalog repository: iterate over product rows: %w", err)
	}

	if len(products) == 0 {
		return products, nil
	}

	productIDs := make([]string, 0, len(products))
	for _, p := range products {
		productIDs = append(productIDs, p.ID)
	}

	byProduct, err := r.variationsForProducts(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	for i := range products {
		products[i].Variations = byProduct[products[i].ID]
	}

	return products, nil
}

const QueryProductCount = `
SELECT COUNT(*) FROM products
`

func (r *SQLRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.exec(ctx).QueryRowContext(ctx, QueryProductCount).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: count products: %v", ErrQueryFailed, err)
	}
	return count, nil
}

const QueryProductSlugExists = `
SELECT EXISTS (SELECT 1 FROM products WHERE slug = ?)
`

func (r *SQLRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	if err := r.exec(ctx).QueryRowContext(ctx, QueryProductSlugExists, slug).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: check slug %s: %v", ErrQueryFailed, slug, err)
	}
	return exists, nil
}

type VariationParams struct {
	ID         string
	Name       string
	Price      float64
	PromoPrice float64
	Stock      int
	Now        time.Time
}

const (
	QueryVariationsDelete = `
DELETE FROM variations
WHERE product_id = ?
`
	QueryVariationCreate = `
INSERT INTO variations (id, product_id, name, price, promo_price, stock, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`
)

// ReplaceVariations swaps the variations of a product for the given set.
// Callers mutating the product in the same request should run it inside a
// transaction via the TxManager.
func (r *SQLRepository) ReplaceVariations(ctx context.Context, productID string, params []VariationParams) ([]Variation, error) {
	ex := r.exec(ctx)
	if _, err := ex.ExecContext(ctx, QueryVariationsDelete, productID); err != nil {
		return nil, fmt.Errorf("%w: delete variations of product with id %s: %v", ErrQueryFailed, productID, err)
	}

	variations := make([]Variation, 0, len(params))
	for _, vp := range params {
		_, err := ex.ExecContext(ctx, QueryVariationCreate,
			vp.ID, productID, vp.Name, vp.Price, vp.PromoPrice, vp.Stock, vp.Now, vp.Now)
		if err != nil {
			if strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
				return nil, fmt.Errorf("%w: no product with id %s", ErrNotFound, productID)
			}
			return nil, fmt.Errorf("%w: create variation of product with id %s: %v", ErrQueryFailed, productID, err)
		}

		variations = append(variations, Variation{
			Model: model.Model{
				ID:        vp.ID,
				CreatedAt: vp.Now,
				UpdatedAt: vp.Now,
			},
			ProductID:  productID,
			Name:       vp.Name,
			Price:      vp.Price,
			PromoPrice: vp.PromoPrice,
			Stock:      vp.Stock,
		})
	}

	return variations, nil
}

const QueryVariationsFind = `
SELECT id, product_id, name, price, promo_price, stock, created_at, updated_at FROM variations
WHERE product_id = ?
ORDER BY created_at, id
`

func (r *SQLRepository) variationsOf(ctx context.Context, productID string) ([]Variation, error) {
	rows, err := r.exec(ctx).QueryContext(ctx, QueryVariationsFind, productID)
	if err != nil {
		return nil, fmt.Errorf("%w: list variations of product with id %s: %v", ErrQueryFailed, productID, err)
	}
	defer rows.Close()

	return scanVariations(rows)
}

const QueryFmtVariationsForProducts = `
SELECT id, product_id, name, price, promo_price, stock, created_at, updated_at FROM variations
WHERE product_id IN (%s)
ORDER BY product_id, created_at, id
`

// variationsForProducts loads the variations of a page of products in one
// query, grouped by product ID.
func (r *SQLRepository) variationsForProducts(ctx context.Context, productIDs []string) (map[string][]Variation, error) {
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(productIDs)), ", ")
	query := fmt.Sprintf(QueryFmtVariationsForProducts, placeholders)

	args := make([]any, 0, len(productIDs))
	for _, id := range productIDs {
		args = append(args, id)
	}

	rows, err := r.exec(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: list variations: %v", ErrQueryFailed, err)
	}
	defer rows.Close()

	variations, err := scanVariations(rows)
	if err != nil {
		return nil, err
	}

	byProduct := make(map[string][]Variation, len(productIDs))
	for _, v := range variations {
		byProduct[v.ProductID] = append(byProduct[v.ProductID], v)
	}

	return byProduct, nil
}

func scanVariations(rows *sql.Rows) ([]Variation, error) {
	//nolint:prealloc //Cannot identify the length of the rows without running another query.
	var variations []Variation
	for rows.Next() {
		var v Variation
		if err := rows.Scan(&v.ID, &v.ProductID, &v.Name, &v.Price, &v.PromoPrice, &v.Stock, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("catalog repository: scan variation row: %w", err)
		}
		variations = append(variations, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("catalog repository: iterate over variation rows: %w", err)
	}

	return variations, nil
}
