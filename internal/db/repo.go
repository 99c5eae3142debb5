package db

import (
	"context"
	"errors"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"catalog/internal/config"
	"catalog/internal/interfaces"
	"catalog/internal/models"
)

// A ProductRepo is a repository pattern implementation for working with database
type ProductRepo struct {
	db *DB
}

// NewProductRepo creates a new instance of ProductRepo with specified configuration
func NewProductRepo(ctx context.Context, cfg *config.Config) (*ProductRepo, error) {
	db, err := NewDBWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &ProductRepo{db}, nil
}

// NewProductRepoWithDB creates a new instance of ProductRepo over an existing pool
func NewProductRepoWithDB(db *DB) *ProductRepo {
	return &ProductRepo{db}
}

// SaveProduct inserts a product or updates the existing row for its SKU
func (r *ProductRepo) SaveProduct(ctx context.Context, product *models.Product) error {
	_, err := r.db.WithTx(
		ctx, func(tx pgx.Tx) (any, error) {
			return nil, r.upsertProduct(ctx, tx, product)
		},
	)
	return err
}

// upsertProduct is a private method to write a product with the specified querier
func (r *ProductRepo) upsertProduct(ctx context.Context, q interfaces.Queryable, product *models.Product) error {
	query := `
		INSERT INTO products (sku, name, brand, category, description, price_cents, currency, stock, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (sku) DO UPDATE SET
			name = EXCLUDED.name,
			brand = EXCLUDED.brand,
			category = EXCLUDED.category,
			description = EXCLUDED.description,
			price_cents = EXCLUDED.price_cents,
			currency = EXCLUDED.currency,
			stock = EXCLUDED.stock,
			updated_at = EXCLUDED.updated_at;
	`

	_, err := q.Exec(
		ctx, query, product.SKU, product.Name, product.Brand, product.Category, product.Description,
		product.PriceCents, product.Currency, product.Stock, product.UpdatedAt,
	)
	return err
}

// GetProduct returns a product by SKU from the database using transaction
func (r *ProductRepo) GetProduct(ctx context.Context, sku string) (*models.Product, error) {
	query := `
		SELECT
			p.sku, p.name, p.brand, p.category, p.description, p.price_cents, p.currency, p.stock, p.updated_at
		FROM products p
		WHERE p.sku=$1
	`

	product, err := r.db.WithTx(
		ctx, func(tx pgx.Tx) (any, error) {
			var product models.Product
			err := pgxscan.Get(ctx, tx, &product, query, sku)
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return nil, nil
				}
				return nil, err
			}
			return &product, nil
		},
	)

	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, pgx.ErrNoRows
	}

	return product.(*models.Product), err
}

// GetNProducts returns at most n most recently updated products from the database
func (r *ProductRepo) GetNProducts(ctx context.Context, n int) ([]models.Product, error) {
	query := `
		SELECT
			p.sku, p.name, p.brand, p.category, p.description, p.price_cents, p.currency, p.stock, p.updated_at
		FROM products p
		ORDER BY p.updated_at DESC
		LIMIT $1
	`

	products, err := r.db.WithTx(
		ctx, func(tx pgx.Tx) (any, error) {
			var products []models.Product
			err := pgxscan.Select(ctx, tx, &products, query, n)
			if err != nil {
				return nil, err
			}
			return products, nil
		},
	)

	if err != nil {
		return nil, err
	}

	return products.([]models.Product), err
}

// GetAllProducts returns all the products from the database using transaction
func (r *ProductRepo) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	query := `
		SELECT
			p.sku, p.name, p.brand, p.category, p.description, p.price_cents, p.currency, p.stock, p.updated_at
		FROM products p
	`

	products, err := r.db.WithTx(
		ctx, func(tx pgx.Tx) (any, error) {
			var products []models.Product
			err := pgxscan.Select(ctx, tx, &products, query)
			if err != nil {
				return nil, err
			}
			return products, nil
		},
	)

	if err != nil {
		return nil, err
	}

	return products.([]models.Product), err
}
