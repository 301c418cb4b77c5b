package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/99minutos/inventory-system/internal/core/domain"
	"github.com/99minutos/inventory-system/internal/testutil"
)

func seedProducts() []domain.Product {
	return []domain.Product{
		{Name: "Laptop", Category: "electronics", Price: 1200, Quantity: 5, Stock: 5, Sales: 40},
		{Name: "Phone", Category: "electronics", Price: 800, Quantity: 10, Stock: 20, Sales: 90},
		{Name: "Desk", Category: "furniture", Price: 300, Quantity: 2, Stock: 2, Sales: 10},
		{Name: "Laptop Stand", Category: "accessories", Price: 40, Quantity: 30, Stock: 30, Sales: 15},
	}
}

func TestProductService_CreateAndCreateMany(t *testing.T) {
	repo := testutil.NewProductStore()
	svc := NewProductService(repo, discardLogger)

	id, err := svc.Create(context.Background(), domain.Product{Name: "Lamp", Category: "furniture", Price: 25})
	if err != nil || id == "" {
		t.Fatalf("create: id=%q err=%v", id, err)
	}

	ids, err := svc.CreateMany(context.Background(), seedProducts())
	if err != nil {
		t.Fatalf("create many: %v", err)
	}
	if len(ids) != 4 || repo.Len() != 5 {
		t.Fatalf("expected 4 new ids and 5 products, got %d and %d", len(ids), repo.Len())
	}

	if _, err := svc.CreateMany(context.Background(), nil); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty batch, got %v", err)
	}
}

func TestProductService_Filters(t *testing.T) {
	svc := NewProductService(testutil.NewProductStore(seedProducts()...), discardLogger)
	ctx := context.Background()

	byCat, _ := svc.ByCategory(ctx, "electronics")
	if len(byCat) != 2 {
		t.Fatalf("expected 2 electronics, got %d", len(byCat))
	}
	if _, err := svc.ByCategory(ctx, ""); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty category, got %v", err)
	}

	inRange, _ := svc.ByPriceRange(ctx, 300, 800)
	if len(inRange) != 2 {
		t.Fatalf("expected inclusive range to match 2, got %d", len(inRange))
	}
	if _, err := svc.ByPriceRange(ctx, 10, 1); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for inverted range, got %v", err)
	}

	found, _ := svc.Search(ctx, "LAPTOP")
	if len(found) != 2 {
		t.Fatalf("expected case-insensitive search to match 2, got %d", len(found))
	}
	all, _ := svc.Search(ctx, "")
	if len(all) != 4 {
		t.Fatalf("expected empty keyword to match all, got %d", len(all))
	}

	low, _ := svc.LowStock(ctx, DefaultStockThreshold)
	if len(low) != 2 {
		t.Fatalf("expected 2 products below 10, got %d", len(low))
	}
}

func TestProductService_Page(t *testing.T) {
	repo := testutil.NewProductStore(seedProducts()...)
	svc := NewProductService(repo, discardLogger)

	cases := []struct {
		page, limit         int
		wantSkip, wantLimit int64
		wantLen             int
	}{
		{1, 10, 0, 10, 4},
		{2, 3, 3, 3, 1},
		{0, 0, 0, 1, 1},
		{-4, 1000, 0, MaxPageLimit, 4},
		{5, 2, 8, 2, 0},
	}
	for _, tc := range cases {
		got, err := svc.Page(context.Background(), tc.page, tc.limit)
		if err != nil {
			t.Fatalf("page(%d,%d): %v", tc.page, tc.limit, err)
		}
		if repo.LastQuery.Skip != tc.wantSkip || repo.LastQuery.Limit != tc.wantLimit {
			t.Fatalf("page(%d,%d): skip=%d limit=%d, want %d/%d", tc.page, tc.limit,
				repo.LastQuery.Skip, repo.LastQuery.Limit, tc.wantSkip, tc.wantLimit)
		}
		if len(got) != tc.wantLen {
			t.Fatalf("page(%d,%d): got %d items, want %d", tc.page, tc.limit, len(got), tc.wantLen)
		}
	}
}

func TestProductService_Page_OffsetOverflow(t *testing.T) {
	repo := testutil.NewProductStore(seedProducts()...)
	svc := NewProductService(repo, discardLogger)

	_, err := svc.Page(context.Background(), 1_000_000_000_000_000_000, 10)
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if repo.LastQuery.Limit != 0 {
		t.Fatalf("expected no query for an unreachable page, got %+v", repo.LastQuery)
	}

	if _, err := svc.Page(context.Background(), math.MaxInt64/int(MaxPageLimit), MaxPageLimit); err != nil {
		t.Fatalf("largest reachable page: %v", err)
	}
}

func TestProductService_UpdateAndDelete(t *testing.T) {
	repo := testutil.NewProductStore(seedProducts()...)
	svc := NewProductService(repo, discardLogger)
	ctx := context.Background()

	all, _ := svc.List(ctx)
	id := all[0].ID

	price := 999.0
	modified, err := svc.Update(ctx, id, domain.ProductPatch{Price: &price})
	if err != nil || modified != 1 {
		t.Fatalf("update: modified=%d err=%v", modified, err)
	}

	if _, err := svc.Update(ctx, id, domain.ProductPatch{}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty patch, got %v", err)
	}
	if _, err := svc.Update(ctx, "missing", domain.ProductPatch{Price: &price}); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}

	if n, err := svc.Delete(ctx, id); err != nil || n != 1 {
		t.Fatalf("delete: n=%d err=%v", n, err)
	}
	if _, err := svc.Delete(ctx, id); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestProductService_Reports(t *testing.T) {
	repo := testutil.NewProductStore(seedProducts()...)
	svc := NewProductService(repo, discardLogger)
	ctx := context.Background()

	total, _ := svc.TotalValue(ctx)
	if want := 1200.0*5 + 800*10 + 300*2 + 40*30; total != want {
		t.Fatalf("total value %v, want %v", total, want)
	}

	counts, _ := svc.CategoryCounts(ctx)
	if len(counts) != 3 || counts[1].Category != "electronics" || counts[1].Count != 2 {
		t.Fatalf("unexpected counts: %+v", counts)
	}

	top, _ := svc.TopSelling(ctx)
	if top[0].Name != "Phone" || top[0].TotalSales != 90 {
		t.Fatalf("unexpected top seller: %+v", top[0])
	}

	if err := svc.SetupIndexes(ctx); err != nil || repo.IndexesEnsured != 1 {
		t.Fatalf("setup indexes: ensured=%d err=%v", repo.IndexesEnsured, err)
	}
}
