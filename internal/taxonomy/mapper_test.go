package taxonomy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveKnownCategory(t *testing.T) {
	mapping := Resolve("Outerwear", "")

	assert.Equal(t, "outerwear", mapping.Type)
	assert.Equal(t, "jackets", mapping.Category)
	assert.Contains(t, mapping.StyleTags, "casual")
	assert.Equal(t, []string{"autumn", "winter"}, mapping.Seasons)
}

func TestResolveSubCategoryAddsTagsAndOverridesSeasons(t *testing.T) {
	mapping := Resolve("Outerwear", "Puffer Jackets")

	assert.Contains(t, mapping.StyleTags, "padded")
	assert.Contains(t, mapping.StyleTags, "streetwear")
	// Category-level tags survive the union
	assert.Contains(t, mapping.StyleTags, "layered")
	// Sub-category season list replaces the category one entirely
	assert.Equal(t, []string{"winter"}, mapping.Seasons)
}

func TestResolveSubCategoryWithoutSeasonsKeepsCategorySeasons(t *testing.T) {
	mapping := Resolve("Outerwear", "Bomber Jackets")

	assert.Contains(t, mapping.StyleTags, "streetwear")
	assert.Equal(t, []string{"autumn", "winter"}, mapping.Seasons)
}

func TestResolveDeduplicatesTags(t *testing.T) {
	// "flannel shirts" contributes "casual", which "t-shirts" already has
	mapping := Resolve("T-Shirts", "Flannel Shirts")

	seen := make(map[string]int)
	for _, tag := range mapping.StyleTags {
		seen[tag]++
	}
	for tag, count := range seen {
		assert.Equal(t, 1, count, "tag %q appears %d times", tag, count)
	}
}

func TestResolveIsTotal(t *testing.T) {
	cases := []struct {
		name        string
		category    string
		subCategory string
	}{
		{"unknown category", "UnknownCat", ""},
		{"garbage strings", "~~~###", "!!!"},
		{"empty input", "", ""},
		{"unknown sub-category only", "Jeans", "Galaxy Wash"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mapping := Resolve(tc.category, tc.subCategory)

			require.NotEmpty(t, mapping.Type)
			require.NotEmpty(t, mapping.Category)
			require.NotEmpty(t, mapping.StyleTags)
			require.NotEmpty(t, mapping.Seasons)
		})
	}
}

func TestResolveUnknownFallsBackToGeneric(t *testing.T) {
	mapping := Resolve("UnknownCat", "")

	assert.Equal(t, "other", mapping.Type)
	assert.Equal(t, "other", mapping.Category)
	assert.Equal(t, []string{"casual"}, mapping.StyleTags)
	assert.Len(t, mapping.Seasons, 4)
}

func TestResolveIsCaseInsensitive(t *testing.T) {
	assert.Equal(t, Resolve("outerwear", "puffer jackets"), Resolve("  OUTERWEAR ", "Puffer Jackets"))
}

func TestResolveDoesNotMutateTables(t *testing.T) {
	first := Resolve("Outerwear", "Puffer Jackets")
	second := Resolve("Outerwear", "")

	// The sub-category tags from the first call must not leak into the
	// shared category table
	assert.NotContains(t, second.StyleTags, "padded")
	assert.Equal(t, []string{"autumn", "winter"}, second.Seasons)
	_ = first
}
