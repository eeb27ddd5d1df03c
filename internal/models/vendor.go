package models

// VendorRow is one parsed spreadsheet row, keyed by column header. No schema
// is assumed at decode time; missing columns simply have no entry.
type VendorRow map[string]string

// Get returns the cell value for a header, or empty string when the column
// is absent. All field extraction goes through this accessor so a row
// missing a column never fails.
func (r VendorRow) Get(header string) string {
	return r[header]
}

// VendorProduct is the typed, validated view of one vendor row. SKU is
// guaranteed non-empty after transformation and is the natural key for
// catalog upserts; StyleCode groups color/size variants of one design.
type VendorProduct struct {
	ProductID           string  `json:"productId"`
	StyleCode           string  `json:"styleCode"`
	ParentID            string  `json:"parentId"`
	Department          string  `json:"department"`
	Category            string  `json:"category"`
	SubCategory         string  `json:"subCategory"`
	ProductName         string  `json:"productName"`
	MaterialComposition string  `json:"materialComposition,omitempty"`
	Barcode             string  `json:"barcode,omitempty"`
	Gender              string  `json:"gender"`
	ColorFamily         string  `json:"colorFamily"`
	Color               string  `json:"color"`
	Size                string  `json:"size"`
	CountryOfOrigin     string  `json:"countryOfOrigin,omitempty"`
	SKU                 string  `json:"sku"`
	HSCode              string  `json:"hsCode,omitempty"`
	IsPack              bool    `json:"isPack"`
	WholesalePrice      float64 `json:"wholesalePrice"`
	RetailPrice         float64 `json:"retailPrice"`
	Currency            string  `json:"currency"`
	ImageURL            *string `json:"imageUrl,omitempty"`
	AffiliateLink       *string `json:"affiliateLink,omitempty"`
	IsActive            bool    `json:"isActive"`
}
