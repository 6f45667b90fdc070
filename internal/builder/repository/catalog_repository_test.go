package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/prkshverma09/ComputerSpecLogic-sub001/internal/builder/entity"
	"github.com/prkshverma09/ComputerSpecLogic-sub001/internal/builder/testutil"
)

func str(s string) *string { return &s }

func seededRepo(t *testing.T) *CatalogRepository {
	t.Helper()
	db := testutil.SetupTestDB(t)
	testutil.SeedCatalog(t, db, testutil.SampleCatalog()...)
	return NewCatalogRepository(db)
}

func ids(items []entity.CatalogItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ObjectID
	}
	return out
}

func TestCatalogSearch(t *testing.T) {
	repo := seededRepo(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		query SearchQuery
		total int64
		first string
	}{
		{"by kind ordered by price", SearchQuery{Kind: "CPU"}, 2, "cpu-intel-core-i5-12400"},
		{"by text", SearchQuery{Text: "RTX"}, 2, "gpu-nvidia-rtx-4070"},
		{"text with hyphen", SearchQuery{Text: "i5-12400"}, 1, "cpu-intel-core-i5-12400"},
		{"percent matches literally", SearchQuery{Text: "%"}, 0, ""},
		{"underscore matches literally", SearchQuery{Text: "_"}, 0, ""},
		{"backslash matches literally", SearchQuery{Text: `\`}, 0, ""},
		{"socket filter on cpus", SearchQuery{Kind: "CPU", Filters: entity.ActiveFilters{Socket: str("AM5")}}, 1, "cpu-amd-ryzen-7-7700x"},
		{"socket filter on coolers", SearchQuery{Kind: "Cooler", Filters: entity.ActiveFilters{Socket: str("AM5")}}, 1, "cooler-noctua-nh-d15"},
		{"socket filter leaves other kinds", SearchQuery{Filters: entity.ActiveFilters{Socket: str("AM5")}}, 11, ""},
		{"memory filter on cpus", SearchQuery{Kind: "CPU", Filters: entity.ActiveFilters{MemoryType: str("DDR4")}}, 1, "cpu-intel-core-i5-12400"},
		{"memory filter on ram", SearchQuery{Kind: "RAM", Filters: entity.ActiveFilters{MemoryType: str("DDR5")}}, 1, "ram-gskill-flare-x5-32gb"},
		{"form factor on cases", SearchQuery{Kind: "Case", Filters: entity.ActiveFilters{FormFactor: str("Mini-ITX")}}, 2, "case-fractal-pop-air"},
		{"form factor on boards", SearchQuery{Kind: "Motherboard", Filters: entity.ActiveFilters{FormFactor: str("Micro-ATX")}}, 1, "motherboard-msi-pro-b660m-a"},
		{
			"combined filters",
			SearchQuery{Kind: "Motherboard", Filters: entity.ActiveFilters{Socket: str("AM5"), MemoryType: str("DDR4")}},
			0, "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, total, err := repo.Search(ctx, tt.query)
			if err != nil {
				t.Fatalf("Search: %v", err)
			}
			if total != tt.total {
				t.Fatalf("expected %d results, got %d: %v", tt.total, total, ids(items))
			}
			if tt.first != "" && (len(items) == 0 || items[0].ObjectID != tt.first) {
				t.Fatalf("expected %s first, got %v", tt.first, ids(items))
			}
		})
	}
}

func TestCatalogSearchPagination(t *testing.T) {
	repo := seededRepo(t)
	items, total, err := repo.Search(context.Background(), SearchQuery{Page: 3, PageSize: 5})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if total != 14 || len(items) != 4 {
		t.Fatalf("expected 4 of 14, got %d of %d", len(items), total)
	}

	_, _, err = repo.Search(context.Background(), SearchQuery{PageSize: 1000})
	if err != nil {
		t.Fatalf("Search with oversized page: %v", err)
	}
}

func TestCatalogFindAndDecode(t *testing.T) {
	repo := seededRepo(t)
	ctx := context.Background()

	item, err := repo.FindByID(ctx, "gpu-nvidia-rtx-4090")
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	c, err := item.Component()
	if err != nil {
		t.Fatalf("Component: %v", err)
	}
	if gpu, ok := c.(*entity.GPU); !ok || gpu.LengthMM != 336 {
		t.Fatalf("unexpected component %#v", c)
	}

	if _, err := repo.FindByID(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCatalogUpsert(t *testing.T) {
	repo := seededRepo(t)
	ctx := context.Background()

	psu := testutil.FindSample("psu-corsair-rm850x").(*entity.PSU)
	psu.PriceUSD = 119
	item, err := entity.NewCatalogItem(psu)
	if err != nil {
		t.Fatalf("NewCatalogItem: %v", err)
	}
	if err := repo.Upsert(ctx, item); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	got, err := repo.FindByID(ctx, "psu-corsair-rm850x")
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.PriceUSD != 119 {
		t.Fatalf("expected updated price, got %v", got.PriceUSD)
	}
	all, err := repo.List(ctx, "PSU")
	if err != nil || len(all) != 2 {
		t.Fatalf("expected 2 PSUs after upsert, got %d (%v)", len(all), err)
	}
	if err := repo.Upsert(ctx); err != nil {
		t.Fatalf("empty upsert: %v", err)
	}
}

func TestCatalogCountAndDelete(t *testing.T) {
	repo := seededRepo(t)
	ctx := context.Background()

	counts, err := repo.CountByKind(ctx)
	if err != nil {
		t.Fatalf("CountByKind: %v", err)
	}
	if len(counts) != 7 {
		t.Fatalf("expected 7 kinds, got %+v", counts)
	}
	for _, c := range counts {
		if c.Count != 2 {
			t.Fatalf("expected 2 of %s, got %d", c.ComponentType, c.Count)
		}
	}

	if err := repo.Delete(ctx, "case-nzxt-h1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := repo.Delete(ctx, "case-nzxt-h1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}

	n, err := repo.DeleteAll(ctx)
	if err != nil {
		t.Fatalf("DeleteAll: %v", err)
	}
	if n != 13 {
		t.Fatalf("expected 13 deleted rows, got %d", n)
	}
}
