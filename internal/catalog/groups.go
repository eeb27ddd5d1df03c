// Package catalog holds read-side projections over persisted catalog rows.
package catalog

import (
	"sort"

	"catalog-ingest-service/internal/models"
)

// GroupByStyle folds flat variant rows into one ProductGroup per style
// code, with deduplicated colors/sizes and the retail price range across
// the group. It is a pure projection: no side effects, recomputable from
// the catalog store at any time. Rows without a style code group under
// their own SKU so no variant is dropped.
func GroupByStyle(products []models.CatalogProduct) []models.ProductGroup {
	byStyle := make(map[string]*models.ProductGroup)
	order := make([]string, 0)

	for _, p := range products {
		key := p.StyleCode
		if key == "" {
			key = p.SKU
		}

		group, ok := byStyle[key]
		if !ok {
			group = &models.ProductGroup{
				StyleCode:   key,
				ProductName: p.Name,
				Category:    p.Category,
				SubCategory: p.SubCategory,
				Colors:      make([]string, 0),
				Sizes:       make([]string, 0),
				PriceRange:  models.PriceRange{Min: p.Price, Max: p.Price},
			}
			byStyle[key] = group
			order = append(order, key)
		}

		group.Variants = append(group.Variants, p)
		group.Colors = appendUnique(group.Colors, p.Colors...)
		group.Sizes = appendUnique(group.Sizes, p.Sizes...)

		if p.Price < group.PriceRange.Min {
			group.PriceRange.Min = p.Price
		}
		if p.Price > group.PriceRange.Max {
			group.PriceRange.Max = p.Price
		}
		if group.ImageURL == "" && p.ImageURL != nil {
			group.ImageURL = *p.ImageURL
		}
	}

	sort.Strings(order)
	groups := make([]models.ProductGroup, 0, len(order))
	for _, key := range order {
		groups = append(groups, *byStyle[key])
	}
	return groups
}

func appendUnique(values []string, extras ...string) []string {
	for _, extra := range extras {
		if extra == "" {
			continue
		}
		found := false
		for _, v := range values {
			if v == extra {
				found = true
				break
			}
		}
		if !found {
			values = append(values, extra)
		}
	}
	return values
}
