package domain

import (
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func price(v float64) *float64 { return &v }

func testCatalog() []Product {
	return []Product{
		{ID: "top-1", Name: "Classic Scrub Top", Price: 24.9, Rating: 4.6, Category: "Tops", Tags: []string{"unisex", "breathable"}, InStock: true, Badge: BadgeBestseller},
		{ID: "top-2", Name: "Flex Scrub Top", Price: 29.9, OriginalPrice: price(36.9), Rating: 4.8, Category: "Tops", Tags: []string{"stretch", "women"}, InStock: true, Badge: BadgeSale},
		{ID: "pants-1", Name: "Jogger Pants", Price: 34.9, Rating: 4.9, Category: "Pants", Tags: []string{"stretch", "unisex"}, InStock: true, Badge: BadgeBestseller},
		{ID: "pants-2", Name: "Cargo Pants", Price: 31.9, Rating: 4.2, Category: "Pants", Tags: []string{"men"}, InStock: true, Badge: BadgeNew},
		{ID: "coat-1", Name: "Antimicrobial Coat", Price: 58.0, Rating: 4.8, Category: "Coats", Tags: []string{"antimicrobial"}, InStock: true, Badge: BadgeNew},
		{ID: "cap-1", Name: "Printed Cap", Price: 9.9, Rating: 4.1, Category: "Accessories", Tags: []string{"unisex"}, InStock: false},
	}
}

func openSpec(catalog []Product) FilterSpec {
	facets := ComputeFacets(catalog)
	return FilterSpec{
		MinPrice: facets.PriceRange.Min,
		MaxPrice: facets.PriceRange.Max,
	}
}

func ids(products []Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func TestFilterOpenSpecReturnsWholeCatalog(t *testing.T) {
	catalog := testCatalog()

	result := Filter(catalog, openSpec(catalog))

	require.Len(t, result, len(catalog))
	seen := make(map[string]int)
	for _, p := range result {
		seen[p.ID]++
	}
	for _, p := range catalog {
		assert.Equal(t, 1, seen[p.ID], "product %s must appear exactly once", p.ID)
	}
}

func TestFilterByQuery(t *testing.T) {
	catalog := testCatalog()

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"matches name substring", "scrub", []string{"top-1", "top-2"}},
		{"is case insensitive", "SCRUB", []string{"top-1", "top-2"}},
		{"trims whitespace", "  scrub  ", []string{"top-1", "top-2"}},
		{"matches category", "accessor", []string{"cap-1"}},
		{"matches tags", "antimicrobial", []string{"coat-1"}},
		{"no match yields empty list", "stethoscope", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := openSpec(catalog)
			spec.Query = tt.query
			assert.Equal(t, tt.want, ids(Filter(catalog, spec)))
		})
	}
}

func TestFilterByCategories(t *testing.T) {
	catalog := testCatalog()

	spec := openSpec(catalog)
	spec.Categories = []string{"Pants", "Coats"}

	assert.Equal(t, []string{"pants-1", "pants-2", "coat-1"}, ids(Filter(catalog, spec)))
}

func TestFilterByPriceBounds(t *testing.T) {
	catalog := testCatalog()

	spec := openSpec(catalog)
	spec.MinPrice = 24.9
	spec.MaxPrice = 31.9

	// Bounds are inclusive on both ends.
	assert.Equal(t, []string{"top-1", "top-2", "pants-2"}, ids(Filter(catalog, spec)))
}

func TestFilterMinAboveMaxYieldsEmpty(t *testing.T) {
	catalog := testCatalog()

	spec := openSpec(catalog)
	spec.MinPrice = 100
	spec.MaxPrice = 10

	result := Filter(catalog, spec)
	assert.Empty(t, result)
	assert.NotNil(t, result)
}

func TestFilterByTagsUsesOrSemantics(t *testing.T) {
	catalog := testCatalog()

	spec := openSpec(catalog)
	spec.Tags = []string{"stretch", "antimicrobial"}

	// One shared tag is enough; the product does not need all of them.
	assert.Equal(t, []string{"top-2", "pants-1", "coat-1"}, ids(Filter(catalog, spec)))
}

func TestFilterCombinesAllPredicates(t *testing.T) {
	catalog := testCatalog()

	spec := FilterSpec{
		Query:      "pants",
		Categories: []string{"Pants"},
		MinPrice:   32,
		MaxPrice:   40,
		Tags:       []string{"stretch"},
	}

	assert.Equal(t, []string{"pants-1"}, ids(Filter(catalog, spec)))
}

func TestFilterEmptyCatalog(t *testing.T) {
	result := Filter(nil, FilterSpec{MaxPrice: 1000})
	assert.Empty(t, result)
}

func TestFilterIsPure(t *testing.T) {
	catalog := testCatalog()
	spec := openSpec(catalog)
	spec.Query = "scrub"
	spec.SortBy = SortPriceDesc

	first := Filter(catalog, spec)
	second := Filter(catalog, spec)

	assert.Equal(t, first, second)
	// The input catalog keeps its order.
	assert.Equal(t, "top-1", catalog[0].ID)
	assert.Equal(t, "cap-1", catalog[5].ID)
}

func TestSortingLaws(t *testing.T) {
	catalog := testCatalog()

	t.Run("price ascending is non-decreasing", func(t *testing.T) {
		spec := openSpec(catalog)
		spec.SortBy = SortPriceAsc
		result := Filter(catalog, spec)
		require.NotEmpty(t, result)
		assert.True(t, sort.SliceIsSorted(result, func(i, j int) bool {
			return result[i].Price < result[j].Price
		}))
	})

	t.Run("price descending is non-increasing", func(t *testing.T) {
		spec := openSpec(catalog)
		spec.SortBy = SortPriceDesc
		result := Filter(catalog, spec)
		for i := 1; i < len(result); i++ {
			assert.GreaterOrEqual(t, result[i-1].Price, result[i].Price)
		}
	})

	t.Run("rating descending is non-increasing", func(t *testing.T) {
		spec := openSpec(catalog)
		spec.SortBy = SortRatingDesc
		result := Filter(catalog, spec)
		for i := 1; i < len(result); i++ {
			assert.GreaterOrEqual(t, result[i-1].Rating, result[i].Rating)
		}
	})

	t.Run("name ascending is lexicographically non-decreasing", func(t *testing.T) {
		spec := openSpec(catalog)
		spec.SortBy = SortNameAsc
		result := Filter(catalog, spec)
		assert.Equal(t, []string{"coat-1", "pants-2", "top-1", "top-2", "pants-1", "cap-1"}, ids(result))
	})

	t.Run("ties keep catalog order", func(t *testing.T) {
		spec := openSpec(catalog)
		spec.SortBy = SortRatingDesc
		result := Filter(catalog, spec)
		// top-2 and coat-1 share rating 4.8; top-2 comes first in the catalog.
		require.Equal(t, "pants-1", result[0].ID)
		assert.Equal(t, "top-2", result[1].ID)
		assert.Equal(t, "coat-1", result[2].ID)
	})
}

func TestPaginate(t *testing.T) {
	list := make([]Product, 30)
	for i := range list {
		list[i] = Product{ID: string(rune('a' + i))}
	}

	t.Run("first page", func(t *testing.T) {
		page := Paginate(list, PageCursor{Page: 1, PageSize: 12})
		require.Len(t, page, 12)
		assert.Equal(t, list[0].ID, page[0].ID)
		assert.Equal(t, list[11].ID, page[11].ID)
	})

	t.Run("last partial page", func(t *testing.T) {
		page := Paginate(list, PageCursor{Page: 3, PageSize: 12})
		require.Len(t, page, 6)
		assert.Equal(t, list[24].ID, page[0].ID)
		assert.Equal(t, list[29].ID, page[5].ID)
	})

	t.Run("page beyond range yields empty page", func(t *testing.T) {
		assert.Empty(t, Paginate(list, PageCursor{Page: 4, PageSize: 12}))
		assert.Empty(t, Paginate(list, PageCursor{Page: 100, PageSize: 12}))
	})

	t.Run("degenerate cursor yields empty page", func(t *testing.T) {
		assert.Empty(t, Paginate(list, PageCursor{Page: 0, PageSize: 12}))
		assert.Empty(t, Paginate(list, PageCursor{Page: 1, PageSize: 0}))
	})

	t.Run("extreme cursor yields empty page, not a panic", func(t *testing.T) {
		assert.Empty(t, Paginate(list, PageCursor{Page: 900000000000000000, PageSize: 12}))
		assert.Empty(t, Paginate(list, PageCursor{Page: math.MaxInt, PageSize: math.MaxInt}))
		assert.Empty(t, Paginate(list, PageCursor{Page: 2, PageSize: math.MaxInt}))
	})
}

func TestComputeFacets(t *testing.T) {
	catalog := testCatalog()

	facets := ComputeFacets(catalog)

	assert.Equal(t, []string{"Accessories", "Coats", "Pants", "Tops"}, facets.Categories)
	assert.Equal(t, []string{"antimicrobial", "breathable", "men", "stretch", "unisex", "women"}, facets.Tags)
	assert.Equal(t, 9.0, facets.PriceRange.Min)
	assert.Equal(t, 58.0, facets.PriceRange.Max)
}

func TestComputeFacetsEmptyCatalog(t *testing.T) {
	facets := ComputeFacets(nil)

	assert.Empty(t, facets.Categories)
	assert.Empty(t, facets.Tags)
	assert.Equal(t, 0.0, facets.PriceRange.Min)
	assert.Equal(t, 1000.0, facets.PriceRange.Max)
}

func TestDiscountPercent(t *testing.T) {
	assert.Equal(t, 19, DiscountPercent(36.9, 29.9))
	assert.Equal(t, 50, DiscountPercent(100, 50))
	assert.Equal(t, 0, DiscountPercent(50, 100), "markup is not a discount")
	assert.Equal(t, 0, DiscountPercent(50, 50))
	assert.Equal(t, 0, DiscountPercent(50, 0))
	assert.Equal(t, 0, DiscountPercent(0, 0))
}

func TestRelated(t *testing.T) {
	catalog := testCatalog()

	related := Related(catalog, &catalog[0], 4)

	require.Len(t, related, 1)
	assert.Equal(t, "top-2", related[0].ID)

	t.Run("limit caps the result", func(t *testing.T) {
		assert.Len(t, Related(catalog, &Product{ID: "other", Category: "Pants"}, 1), 1)
	})

	t.Run("lonely category has no related products", func(t *testing.T) {
		assert.Empty(t, Related(catalog, &catalog[5], 4))
	})
}

func TestHighlights(t *testing.T) {
	catalog := testCatalog()

	t.Run("bestseller", func(t *testing.T) {
		assert.Equal(t, []string{"top-1", "pants-1"}, ids(Highlights(catalog, TabBestseller, 4)))
	})

	t.Run("new", func(t *testing.T) {
		assert.Equal(t, []string{"pants-2", "coat-1"}, ids(Highlights(catalog, TabNew, 4)))
	})

	t.Run("sale picks discounted products", func(t *testing.T) {
		assert.Equal(t, []string{"top-2"}, ids(Highlights(catalog, TabSale, 4)))
	})

	t.Run("premium picks top rated", func(t *testing.T) {
		got := ids(Highlights(catalog, TabPremium, 2))
		assert.Equal(t, []string{"pants-1", "top-2"}, got)
	})

	t.Run("unknown tab falls back to catalog order", func(t *testing.T) {
		assert.Equal(t, []string{"top-1", "top-2"}, ids(Highlights(catalog, "unknown", 2)))
	})
}
