package interfaces

import (
	"context"

	"github.com/jackc/pgx/v5/pgconn"

	"catalog/internal/models"
)

type Repository interface {
	SaveProduct(ctx context.Context, product *models.Product) error
	GetProduct(ctx context.Context, sku string) (*models.Product, error)
	GetNProducts(ctx context.Context, n int) ([]models.Product, error)
	GetAllProducts(ctx context.Context) ([]models.Product, error)
}

// Queryable is the statement-execution subset shared by a pgx pool and a pgx
// transaction, so the repository can run the same statements through either.
type Queryable interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}
