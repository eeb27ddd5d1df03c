package ingest

import (
	"fmt"
	"strconv"
	"strings"

	"catalog-ingest-service/internal/models"
)

// Vendor sheet headers. Lookups are by name, never by position, so vendors
// may reorder or omit columns freely.
const (
	colProductID           = "Product ID"
	colStyleCode           = "Style Code"
	colParentID            = "Parent ID"
	colDepartment          = "Department"
	colCategory            = "Category"
	colSubCategory         = "Sub Category"
	colProductName         = "Product Name"
	colMaterialComposition = "Material Composition"
	colBarcode             = "Barcode"
	colGender              = "Gender"
	colColorFamily         = "Color Family"
	colColor               = "Color"
	colSize                = "Size"
	colCountryOfOrigin     = "Country of Origin"
	colSKU                 = "SKU"
	colHSCode              = "HS Code"
	colIsPack              = "Is It a Pack?"
	colWholesalePrice      = "Wholesale Price"
	colRetailPrice         = "Retail Price"
	colCurrency            = "Currency"
)

// TransformRow maps one raw vendor row into a typed VendorProduct. Missing
// columns degrade to empty fields, non-numeric prices to 0, and a blank SKU
// is synthesized from the product ID so the natural key is never empty.
func TransformRow(row models.VendorRow) *models.VendorProduct {
	product := &models.VendorProduct{
		ProductID:           row.Get(colProductID),
		StyleCode:           row.Get(colStyleCode),
		ParentID:            row.Get(colParentID),
		Department:          row.Get(colDepartment),
		Category:            row.Get(colCategory),
		SubCategory:         row.Get(colSubCategory),
		ProductName:         row.Get(colProductName),
		MaterialComposition: row.Get(colMaterialComposition),
		Barcode:             row.Get(colBarcode),
		Gender:              row.Get(colGender),
		ColorFamily:         row.Get(colColorFamily),
		Color:               row.Get(colColor),
		Size:                row.Get(colSize),
		CountryOfOrigin:     row.Get(colCountryOfOrigin),
		SKU:                 row.Get(colSKU),
		HSCode:              row.Get(colHSCode),
		IsPack:              parseYes(row.Get(colIsPack)),
		WholesalePrice:      parsePrice(row.Get(colWholesalePrice)),
		RetailPrice:         parsePrice(row.Get(colRetailPrice)),
		Currency:            row.Get(colCurrency),
		IsActive:            true,
	}

	if product.SKU == "" {
		product.SKU = fmt.Sprintf("BF-%s", product.ProductID)
	}

	return product
}

// parsePrice parses a decimal cell value, falling back to 0 on anything
// non-numeric rather than failing the row. Commas are thousands separators
// when a decimal point is present, otherwise the decimal separator.
func parsePrice(value string) float64 {
	cleaned := strings.TrimSpace(value)
	if strings.Contains(cleaned, ".") {
		cleaned = strings.ReplaceAll(cleaned, ",", "")
	} else {
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	}
	if cleaned == "" {
		return 0
	}
	price, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || price < 0 {
		return 0
	}
	return price
}

// parseYes matches the vendor's "yes" literal case-insensitively; anything
// else is false
func parseYes(value string) bool {
	return strings.EqualFold(strings.TrimSpace(value), "yes")
}
