package ports

import (
	"context"

	"github.com/99minutos/inventory-system/internal/core/domain"
)

// ProductService defines the inventory use cases.
type ProductService interface {
	Create(ctx context.Context, p domain.Product) (string, error)
	CreateMany(ctx context.Context, ps []domain.Product) ([]string, error)
	List(ctx context.Context) ([]domain.Product, error)
	ByCategory(ctx context.Context, category string) ([]domain.Product, error)
	ByPriceRange(ctx context.Context, lo, hi float64) ([]domain.Product, error)
	Search(ctx context.Context, keyword string) ([]domain.Product, error)
	Page(ctx context.Context, page, limit int) ([]domain.Product, error)
	LowStock(ctx context.Context, threshold int) ([]domain.Product, error)
	Update(ctx context.Context, id string, patch domain.ProductPatch) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)

	TotalValue(ctx context.Context) (float64, error)
	CategoryCounts(ctx context.Context) ([]domain.CategoryCount, error)
	AveragePrices(ctx context.Context) ([]domain.CategoryAveragePrice, error)
	TopSelling(ctx context.Context) ([]domain.ProductSales, error)
	GroupByCategory(ctx context.Context) ([]domain.CategoryGroup, error)
	SetupIndexes(ctx context.Context) error
}
