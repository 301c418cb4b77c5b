package ports

import (
	"context"

	"github.com/99minutos/inventory-system/internal/core/domain"
)

// ProductQuery carries every filter the product listings use.
// Zero-valued fields do not filter.
type ProductQuery struct {
	Category     string
	MinPrice     *float64 // price >= MinPrice
	MaxPrice     *float64 // price <= MaxPrice
	NameContains string   // case-insensitive literal substring
	StockBelow   *int     // stock < StockBelow
	Skip         int64
	Limit        int64 // 0 = no limit
}

// ProductRepository defines persistence and aggregation over the product collection.
type ProductRepository interface {
	Insert(ctx context.Context, p *domain.Product) (string, error)
	InsertMany(ctx context.Context, ps []domain.Product) ([]string, error)
	Find(ctx context.Context, q ProductQuery) ([]domain.Product, error)
	// Update applies patch and returns (matched, modified) counts.
	Update(ctx context.Context, id string, patch domain.ProductPatch) (int64, int64, error)
	Delete(ctx context.Context, id string) (int64, error)

	TotalValue(ctx context.Context) (float64, error)
	CountByCategory(ctx context.Context) ([]domain.CategoryCount, error)
	AveragePriceByCategory(ctx context.Context) ([]domain.CategoryAveragePrice, error)
	TopSelling(ctx context.Context) ([]domain.ProductSales, error)
	GroupByCategory(ctx context.Context) ([]domain.CategoryGroup, error)

	EnsureIndexes(ctx context.Context) error
}
