package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/rs/zerolog"

	"github.com/99minutos/inventory-system/internal/core/domain"
	"github.com/99minutos/inventory-system/internal/core/ports"
)

const (
	DefaultMinPrice       float64 = 0
	DefaultMaxPrice       float64 = 10000
	DefaultPageLimit              = 10
	MaxPageLimit                  = 100
	DefaultStockThreshold         = 10
)

type ProductService struct {
	repo   ports.ProductRepository
	logger zerolog.Logger
}

func NewProductService(repo ports.ProductRepository, logger zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, logger: logger}
}

func (s *ProductService) Create(ctx context.Context, p domain.Product) (string, error) {
	id, err := s.repo.Insert(ctx, &p)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create product")
		return "", err
	}
	s.logger.Info().Str("product_id", id).Str("name", p.Name).Msg("product created")
	return id, nil
}

// CreateMany inserts ps in one batch.
func (s *ProductService) CreateMany(ctx context.Context, ps []domain.Product) ([]string, error) {
	if len(ps) == 0 {
		return nil, domain.InvalidInput("batch cannot be empty")
	}
	ids, err := s.repo.InsertMany(ctx, ps)
	if err != nil {
		s.logger.Error().Err(err).Int("count", len(ps)).Msg("failed to create products")
		return nil, err
	}
	s.logger.Info().Int("count", len(ids)).Msg("products created")
	return ids, nil
}

func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.Find(ctx, ports.ProductQuery{})
}

func (s *ProductService) ByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	if category == "" {
		return nil, domain.InvalidInput("category is required")
	}
	return s.repo.Find(ctx, ports.ProductQuery{Category: category})
}

// ByPriceRange returns products priced within [lo, hi].
func (s *ProductService) ByPriceRange(ctx context.Context, lo, hi float64) ([]domain.Product, error) {
	if lo > hi {
		return nil, domain.InvalidInput("min must not exceed max")
	}
	return s.repo.Find(ctx, ports.ProductQuery{MinPrice: &lo, MaxPrice: &hi})
}

// Search matches keyword anywhere in the product name, ignoring case.
// An empty keyword matches every product.
func (s *ProductService) Search(ctx context.Context, keyword string) ([]domain.Product, error) {
	return s.repo.Find(ctx, ports.ProductQuery{NameContains: strings.TrimSpace(keyword)})
}

// Page returns the 1-based page of products. page is clamped to at least 1
// and limit to [1, MaxPageLimit]. A page whose offset does not fit in an
// int64 is rejected.
func (s *ProductService) Page(ctx context.Context, page, limit int) ([]domain.Product, error) {
	page, limit = clampPage(page, limit)
	if int64(page-1) > math.MaxInt64/int64(limit) {
		return nil, domain.InvalidInput("page out of range")
	}
	return s.repo.Find(ctx, ports.ProductQuery{
		Skip:  int64(page-1) * int64(limit),
		Limit: int64(limit),
	})
}

func clampPage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return page, limit
}

// LowStock returns products whose stock is strictly below threshold.
func (s *ProductService) LowStock(ctx context.Context, threshold int) ([]domain.Product, error) {
	return s.repo.Find(ctx, ports.ProductQuery{StockBelow: &threshold})
}

// Update applies patch and returns the number of modified products.
func (s *ProductService) Update(ctx context.Context, id string, patch domain.ProductPatch) (int64, error) {
	if patch.Empty() {
		return 0, domain.InvalidInput("no updatable fields supplied")
	}
	matched, modified, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return 0, fmt.Errorf("update product: %w", err)
	}
	if matched == 0 {
		return 0, domain.ErrProductNotFound
	}
	s.logger.Info().Str("product_id", id).Int64("modified", modified).Msg("product updated")
	return modified, nil
}

func (s *ProductService) Delete(ctx context.Context, id string) (int64, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("delete product: %w", err)
	}
	if deleted == 0 {
		return 0, domain.ErrProductNotFound
	}
	s.logger.Info().Str("product_id", id).Msg("product deleted")
	return deleted, nil
}

func (s *ProductService) TotalValue(ctx context.Context) (float64, error) {
	return s.repo.TotalValue(ctx)
}

func (s *ProductService) CategoryCounts(ctx context.Context) ([]domain.CategoryCount, error) {
	return s.repo.CountByCategory(ctx)
}

func (s *ProductService) AveragePrices(ctx context.Context) ([]domain.CategoryAveragePrice, error) {
	return s.repo.AveragePriceByCategory(ctx)
}

func (s *ProductService) TopSelling(ctx context.Context) ([]domain.ProductSales, error) {
	return s.repo.TopSelling(ctx)
}

func (s *ProductService) GroupByCategory(ctx context.Context) ([]domain.CategoryGroup, error) {
	return s.repo.GroupByCategory(ctx)
}

func (s *ProductService) SetupIndexes(ctx context.Context) error {
	if err := s.repo.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("setup indexes: %w", err)
	}
	s.logger.Info().Msg("product indexes ensured")
	return nil
}
