package testutil

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/99minutos/inventory-system/internal/core/domain"
	"github.com/99minutos/inventory-system/internal/core/ports"
)

// ProductStore is an in-memory ports.ProductRepository. Listings come back in
// insertion order and grouped reports are sorted by key.
type ProductStore struct {
	mu     sync.Mutex
	items  []domain.Product
	nextID int

	Err            error
	IndexesEnsured int
	LastQuery      ports.ProductQuery
}

func NewProductStore(seed ...domain.Product) *ProductStore {
	s := &ProductStore{}
	for _, p := range seed {
		_, _ = s.Insert(context.Background(), &p)
	}
	return s
}

func (s *ProductStore) Insert(_ context.Context, p *domain.Product) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return "", s.Err
	}
	return s.insertLocked(*p), nil
}

func (s *ProductStore) insertLocked(p domain.Product) string {
	s.nextID++
	p.ID = fmt.Sprintf("%024x", s.nextID)
	s.items = append(s.items, p)
	return p.ID
}

func (s *ProductStore) InsertMany(_ context.Context, ps []domain.Product) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	ids := make([]string, 0, len(ps))
	for _, p := range ps {
		ids = append(ids, s.insertLocked(p))
	}
	return ids, nil
}

func (s *ProductStore) Find(_ context.Context, q ports.ProductQuery) ([]domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.LastQuery = q
	if s.Err != nil {
		return nil, s.Err
	}

	matched := []domain.Product{}
	for _, p := range s.items {
		if q.Category != "" && p.Category != q.Category {
			continue
		}
		if q.MinPrice != nil && p.Price < *q.MinPrice {
			continue
		}
		if q.MaxPrice != nil && p.Price > *q.MaxPrice {
			continue
		}
		if q.NameContains != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(q.NameContains)) {
			continue
		}
		if q.StockBelow != nil && p.Stock >= *q.StockBelow {
			continue
		}
		matched = append(matched, p)
	}

	skip := int(q.Skip)
	if skip > len(matched) {
		return []domain.Product{}, nil
	}
	end := len(matched)
	if q.Limit > 0 && skip+int(q.Limit) < end {
		end = skip + int(q.Limit)
	}
	return matched[skip:end], nil
}

func (s *ProductStore) Update(_ context.Context, id string, patch domain.ProductPatch) (int64, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, 0, s.Err
	}
	for i := range s.items {
		if s.items[i].ID != id {
			continue
		}
		before := s.items[i]
		applyPatch(&s.items[i], patch)
		if s.items[i] == before {
			return 1, 0, nil
		}
		return 1, 1, nil
	}
	return 0, 0, nil
}

func applyPatch(p *domain.Product, patch domain.ProductPatch) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Quantity != nil {
		p.Quantity = *patch.Quantity
	}
	if patch.Stock != nil {
		p.Stock = *patch.Stock
	}
	if patch.Sales != nil {
		p.Sales = *patch.Sales
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
}

func (s *ProductStore) Delete(_ context.Context, id string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (s *ProductStore) TotalValue(_ context.Context) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	var total float64
	for _, p := range s.items {
		total += p.Price * float64(p.Quantity)
	}
	return total, nil
}

func (s *ProductStore) CountByCategory(_ context.Context) ([]domain.CategoryCount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	counts := map[string]int64{}
	for _, p := range s.items {
		counts[p.Category]++
	}
	out := make([]domain.CategoryCount, 0, len(counts))
	for c, n := range counts {
		out = append(out, domain.CategoryCount{Category: c, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out, nil
}

func (s *ProductStore) AveragePriceByCategory(_ context.Context) ([]domain.CategoryAveragePrice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	sums := map[string]float64{}
	counts := map[string]int{}
	for _, p := range s.items {
		sums[p.Category] += p.Price
		counts[p.Category]++
	}
	out := make([]domain.CategoryAveragePrice, 0, len(sums))
	for c, sum := range sums {
		out = append(out, domain.CategoryAveragePrice{Category: c, AveragePrice: sum / float64(counts[c])})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out, nil
}

func (s *ProductStore) TopSelling(_ context.Context) ([]domain.ProductSales, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	sales := map[string]int64{}
	for _, p := range s.items {
		sales[p.Name] += int64(p.Sales)
	}
	out := make([]domain.ProductSales, 0, len(sales))
	for n, total := range sales {
		out = append(out, domain.ProductSales{Name: n, TotalSales: total})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalSales != out[j].TotalSales {
			return out[i].TotalSales > out[j].TotalSales
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (s *ProductStore) GroupByCategory(_ context.Context) ([]domain.CategoryGroup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	groups := map[string][]domain.Product{}
	for _, p := range s.items {
		groups[p.Category] = append(groups[p.Category], p)
	}
	out := make([]domain.CategoryGroup, 0, len(groups))
	for c, ps := range groups {
		out = append(out, domain.CategoryGroup{Category: c, Products: ps})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out, nil
}

func (s *ProductStore) EnsureIndexes(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.IndexesEnsured++
	return nil
}

// Len returns the number of stored products.
func (s *ProductStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
