package domain

import (
	"math"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey selects the ordering applied after filtering.
type SortKey string

// Supported sort keys. The storefront defaults to rating-desc.
const (
	SortPriceAsc   SortKey = "price-asc"
	SortPriceDesc  SortKey = "price-desc"
	SortRatingDesc SortKey = "rating"
	SortNameAsc    SortKey = "name"
)

// FilterSpec is the user-selected filtering and sorting criteria. Empty
// category and tag sets mean no restriction.
type FilterSpec struct {
	Query      string
	Categories []string
	MinPrice   float64
	MaxPrice   float64
	Tags       []string
	SortBy     SortKey
}

// PageCursor addresses one page of a filtered result list. TotalItems is
// derived and must be refreshed by the owner whenever the filtered set
// changes; Filter and Paginate never touch it.
type PageCursor struct {
	Page       int
	PageSize   int
	TotalItems int
}

// Facets is aggregate metadata over the full catalog, used to populate
// filter controls.
type Facets struct {
	Categories []string   `json:"categories"`
	Tags       []string   `json:"tags"`
	PriceRange PriceRange `json:"price_range"`
}

// PriceRange holds the floor/ceil price bounds of the catalog.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Shop names are compared with locale-aware collation rather than byte
// order.
var nameCollator = collate.New(language.English)

// Filter returns the catalog entries matching spec, ordered by spec.SortBy.
// It is a pure function: same inputs produce the same output, products are
// only reordered, never copied into new values beyond the result slice, and
// a zero-match spec yields an empty list rather than an error. MinPrice
// above MaxPrice matches nothing.
func Filter(catalog []Product, spec FilterSpec) []Product {
	query := strings.ToLower(strings.TrimSpace(spec.Query))

	filtered := make([]Product, 0, len(catalog))
	for _, p := range catalog {
		if query != "" && !matchesQuery(&p, query) {
			continue
		}
		if len(spec.Categories) > 0 && !contains(spec.Categories, p.Category) {
			continue
		}
		if p.Price < spec.MinPrice || p.Price > spec.MaxPrice {
			continue
		}
		if len(spec.Tags) > 0 && !hasAnyTag(&p, spec.Tags) {
			continue
		}
		filtered = append(filtered, p)
	}

	sortProducts(filtered, spec.SortBy)
	return filtered
}

// matchesQuery reports whether the product name, category or any tag
// contains the already-lowercased query as a substring.
func matchesQuery(p *Product, query string) bool {
	if strings.Contains(strings.ToLower(p.Name), query) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Category), query) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

func contains(values []string, v string) bool {
	for _, val := range values {
		if val == v {
			return true
		}
	}
	return false
}

// hasAnyTag implements OR semantics over the selected tags.
func hasAnyTag(p *Product, selected []string) bool {
	for _, want := range selected {
		if contains(p.Tags, want) {
			return true
		}
	}
	return false
}

// sortProducts orders the list in place. Ties keep catalog order.
func sortProducts(products []Product, key SortKey) {
	switch key {
	case SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price < products[j].Price
		})
	case SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price > products[j].Price
		})
	case SortRatingDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Rating > products[j].Rating
		})
	case SortNameAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return nameCollator.CompareString(products[i].Name, products[j].Name) < 0
		})
	}
}

// Paginate returns the slice of list addressed by cursor, clipped to the
// list bounds. A page beyond the end yields an empty page, never an error.
// The cursor is left untouched; clamping the page number back into range is
// the caller's responsibility.
func Paginate(list []Product, cursor PageCursor) []Product {
	if cursor.Page < 1 || cursor.PageSize < 1 {
		return []Product{}
	}

	start := (cursor.Page - 1) * cursor.PageSize
	// An overflowed start index means the page is far past the end.
	if start < 0 || start/cursor.PageSize != cursor.Page-1 {
		return []Product{}
	}
	if start >= len(list) {
		return []Product{}
	}

	end := start + cursor.PageSize
	if end > len(list) {
		end = len(list)
	}
	return list[start:end]
}

// ComputeFacets derives filter-control metadata from the full catalog:
// lexicographically sorted distinct categories and tags plus floor/ceil
// price bounds. The empty catalog gets the documented {0, 1000} default.
func ComputeFacets(catalog []Product) Facets {
	if len(catalog) == 0 {
		return Facets{
			Categories: []string{},
			Tags:       []string{},
			PriceRange: PriceRange{Min: 0, Max: 1000},
		}
	}

	categorySet := make(map[string]struct{})
	tagSet := make(map[string]struct{})
	minPrice := catalog[0].Price
	maxPrice := catalog[0].Price

	for _, p := range catalog {
		categorySet[p.Category] = struct{}{}
		for _, tag := range p.Tags {
			tagSet[tag] = struct{}{}
		}
		if p.Price < minPrice {
			minPrice = p.Price
		}
		if p.Price > maxPrice {
			maxPrice = p.Price
		}
	}

	return Facets{
		Categories: sortedKeys(categorySet),
		Tags:       sortedKeys(tagSet),
		PriceRange: PriceRange{
			Min: math.Floor(minPrice),
			Max: math.Ceil(maxPrice),
		},
	}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Related returns up to limit products sharing the category of p, excluding
// p itself, in catalog order.
func Related(catalog []Product, p *Product, limit int) []Product {
	related := make([]Product, 0, limit)
	for _, candidate := range catalog {
		if len(related) == limit {
			break
		}
		if candidate.Category == p.Category && candidate.ID != p.ID {
			related = append(related, candidate)
		}
	}
	return related
}

// HighlightTab names one of the storefront's featured-product collections.
type HighlightTab string

// Highlight collections shown on the landing page.
const (
	TabBestseller HighlightTab = "bestseller"
	TabNew        HighlightTab = "new"
	TabSale       HighlightTab = "sale"
	TabPremium    HighlightTab = "premium"
)

// Highlights returns up to limit products for the given collection:
// badge matches for bestseller/new, discounted products for sale and the
// top-rated products for premium. An unknown tab falls back to catalog
// order.
func Highlights(catalog []Product, tab HighlightTab, limit int) []Product {
	picked := make([]Product, 0, limit)

	switch tab {
	case TabBestseller, TabNew:
		want := Badge(tab)
		for _, p := range catalog {
			if len(picked) == limit {
				break
			}
			if p.Badge == want {
				picked = append(picked, p)
			}
		}
	case TabSale:
		for _, p := range catalog {
			if len(picked) == limit {
				break
			}
			if p.OnSale() {
				picked = append(picked, p)
			}
		}
	case TabPremium:
		byRating := make([]Product, len(catalog))
		copy(byRating, catalog)
		sortProducts(byRating, SortRatingDesc)
		if len(byRating) > limit {
			byRating = byRating[:limit]
		}
		picked = append(picked, byRating...)
	default:
		if len(catalog) > limit {
			catalog = catalog[:limit]
		}
		picked = append(picked, catalog...)
	}

	return picked
}
