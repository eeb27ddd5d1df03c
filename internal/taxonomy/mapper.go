// Package taxonomy translates free-form vendor category strings into the
// internal type/category/style-tag/season vocabulary. The lookup is a static
// two-tier table: the category row gives the baseline, the sub-category row
// contributes extra style tags and may override the season list entirely.
package taxonomy

import "strings"

// Mapping is the internal classification for one vendor category
type Mapping struct {
	Type      string   `json:"type"`
	Category  string   `json:"category"`
	StyleTags []string `json:"styleTags"`
	Seasons   []string `json:"seasons"`
}

type subCategoryRule struct {
	addTags []string
	seasons []string // non-empty replaces the category-level seasons
}

var allSeasons = []string{"spring", "summer", "autumn", "winter"}

var categoryTable = map[string]Mapping{
	"outerwear": {
		Type:      "outerwear",
		Category:  "jackets",
		StyleTags: []string{"casual", "layered"},
		Seasons:   []string{"autumn", "winter"},
	},
	"knitwear": {
		Type:      "top",
		Category:  "sweaters",
		StyleTags: []string{"casual", "cozy"},
		Seasons:   []string{"autumn", "winter"},
	},
	"shirts": {
		Type:      "top",
		Category:  "shirts",
		StyleTags: []string{"smart casual"},
		Seasons:   allSeasons,
	},
	"t-shirts": {
		Type:      "top",
		Category:  "t-shirts",
		StyleTags: []string{"casual", "basic"},
		Seasons:   []string{"spring", "summer"},
	},
	"sweatshirts": {
		Type:      "top",
		Category:  "sweatshirts",
		StyleTags: []string{"casual", "sporty"},
		Seasons:   []string{"spring", "autumn"},
	},
	"trousers": {
		Type:      "bottom",
		Category:  "trousers",
		StyleTags: []string{"smart casual"},
		Seasons:   allSeasons,
	},
	"jeans": {
		Type:      "bottom",
		Category:  "jeans",
		StyleTags: []string{"casual", "denim"},
		Seasons:   allSeasons,
	},
	"shorts": {
		Type:      "bottom",
		Category:  "shorts",
		StyleTags: []string{"casual"},
		Seasons:   []string{"summer"},
	},
	"dresses": {
		Type:      "dress",
		Category:  "dresses",
		StyleTags: []string{"feminine"},
		Seasons:   []string{"spring", "summer"},
	},
	"skirts": {
		Type:      "bottom",
		Category:  "skirts",
		StyleTags: []string{"feminine"},
		Seasons:   []string{"spring", "summer"},
	},
	"footwear": {
		Type:      "footwear",
		Category:  "shoes",
		StyleTags: []string{"casual"},
		Seasons:   allSeasons,
	},
	"accessories": {
		Type:      "accessory",
		Category:  "accessories",
		StyleTags: []string{"casual"},
		Seasons:   allSeasons,
	},
	"swimwear": {
		Type:      "swimwear",
		Category:  "swimwear",
		StyleTags: []string{"beach"},
		Seasons:   []string{"summer"},
	},
	"suits & blazers": {
		Type:      "outerwear",
		Category:  "blazers",
		StyleTags: []string{"formal", "tailored"},
		Seasons:   allSeasons,
	},
}

var subCategoryTable = map[string]subCategoryRule{
	"puffer jackets":   {addTags: []string{"padded", "streetwear"}, seasons: []string{"winter"}},
	"parkas":           {addTags: []string{"utility"}, seasons: []string{"winter"}},
	"trench coats":     {addTags: []string{"classic"}, seasons: []string{"spring", "autumn"}},
	"denim jackets":    {addTags: []string{"denim"}, seasons: []string{"spring", "autumn"}},
	"bomber jackets":   {addTags: []string{"streetwear"}},
	"cardigans":        {addTags: []string{"layered"}},
	"turtlenecks":      {addTags: []string{"classic"}, seasons: []string{"winter"}},
	"oxford shirts":    {addTags: []string{"preppy"}},
	"flannel shirts":   {addTags: []string{"casual"}, seasons: []string{"autumn", "winter"}},
	"linen shirts":     {addTags: []string{"lightweight"}, seasons: []string{"summer"}},
	"graphic tees":     {addTags: []string{"streetwear"}},
	"polo shirts":      {addTags: []string{"preppy"}},
	"hoodies":          {addTags: []string{"streetwear"}},
	"chinos":           {addTags: []string{"preppy"}},
	"cargo trousers":   {addTags: []string{"utility", "streetwear"}},
	"skinny jeans":     {addTags: []string{"slim fit"}},
	"wide leg jeans":   {addTags: []string{"relaxed fit"}},
	"maxi dresses":     {addTags: []string{"boho"}, seasons: []string{"summer"}},
	"sneakers":         {addTags: []string{"sporty", "streetwear"}},
	"boots":            {addTags: []string{"rugged"}, seasons: []string{"autumn", "winter"}},
	"sandals":          {addTags: []string{"beach"}, seasons: []string{"summer"}},
	"loafers":          {addTags: []string{"smart casual"}},
	"belts":            {addTags: []string{"classic"}},
	"scarves":          {addTags: []string{"cozy"}, seasons: []string{"autumn", "winter"}},
	"caps":             {addTags: []string{"streetwear"}},
	"tailored blazers": {addTags: []string{"business"}},
}

// fallback classification for vendor categories the table does not know.
// The mapper is total: it never fails on unknown input.
var fallbackMapping = Mapping{
	Type:      "other",
	Category:  "other",
	StyleTags: []string{"casual"},
	Seasons:   allSeasons,
}

// Resolve maps a vendor (category, subCategory) pair onto the internal
// vocabulary. Sub-category tags are unioned with the category tags without
// duplicates; a sub-category season list wins over the category one.
func Resolve(category, subCategory string) Mapping {
	base, ok := categoryTable[normalize(category)]
	if !ok {
		base = fallbackMapping
	}

	result := Mapping{
		Type:      base.Type,
		Category:  base.Category,
		StyleTags: append([]string(nil), base.StyleTags...),
		Seasons:   append([]string(nil), base.Seasons...),
	}

	if rule, ok := subCategoryTable[normalize(subCategory)]; ok {
		result.StyleTags = unionTags(result.StyleTags, rule.addTags)
		if len(rule.seasons) > 0 {
			result.Seasons = append([]string(nil), rule.seasons...)
		}
	}

	return result
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// unionTags appends extras to tags, skipping values already present
func unionTags(tags, extras []string) []string {
	seen := make(map[string]struct{}, len(tags)+len(extras))
	for _, t := range tags {
		seen[t] = struct{}{}
	}
	for _, t := range extras {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		tags = append(tags, t)
	}
	return tags
}
