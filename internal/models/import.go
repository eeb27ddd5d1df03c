package models

// ImportFormat represents the file format for import
type ImportFormat string

const (
	ImportFormatXLSX ImportFormat = "xlsx"
	ImportFormatXLS  ImportFormat = "xls"
)

// ImportRowError records why a single data row failed to reach the catalog
type ImportRowError struct {
	Row     int    `json:"row"`
	SKU     string `json:"sku,omitempty"`
	Message string `json:"message"`
}

// ImportResult is the outcome of one ingestion run. Success is true iff no
// row failed; a non-zero Failed count still means the run completed, and
// the caller inspects Errors for remediation.
type ImportResult struct {
	Success         bool             `json:"success"`
	Imported        int              `json:"imported"`
	Failed          int              `json:"failed"`
	Errors          []ImportRowError `json:"errors,omitempty"`
	ImagesExtracted int              `json:"imagesExtracted"`
	ProcessingMs    int64            `json:"processingMs,omitempty"`
}

// ImportTemplateColumn defines a column in the vendor import template
type ImportTemplateColumn struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
	Type        string `json:"type"`
	Example     string `json:"example"`
}

// ImportTemplate defines the structure of a vendor import template
type ImportTemplate struct {
	Entity  string                 `json:"entity"`
	Version string                 `json:"version"`
	Columns []ImportTemplateColumn `json:"columns"`
}

// VendorImportColumns returns the recognized vendor sheet headers. Columns
// beyond these are ignored at import time; missing ones default to empty.
func VendorImportColumns() []ImportTemplateColumn {
	return []ImportTemplateColumn{
		{Name: "Product ID", Description: "Vendor product identifier", Required: true, Type: "string", Example: "100234"},
		{Name: "Style Code", Description: "Shared across color/size variants of one design", Required: true, Type: "string", Example: "BF-JKT-009"},
		{Name: "Parent ID", Description: "Parent product identifier", Required: false, Type: "string", Example: ""},
		{Name: "Department", Description: "Vendor department", Required: false, Type: "string", Example: "Menswear"},
		{Name: "Category", Description: "Vendor category", Required: true, Type: "string", Example: "Outerwear"},
		{Name: "Sub Category", Description: "Vendor sub-category", Required: false, Type: "string", Example: "Puffer Jackets"},
		{Name: "Product Name", Description: "Display name", Required: true, Type: "string", Example: "Quilted Puffer Jacket"},
		{Name: "Material Composition", Description: "Fabric composition", Required: false, Type: "string", Example: "100% Polyester"},
		{Name: "Barcode", Description: "EAN/UPC", Required: false, Type: "string", Example: "5704000000000"},
		{Name: "Gender", Description: "Target gender", Required: false, Type: "string", Example: "Men"},
		{Name: "Color Family", Description: "Normalized color family", Required: false, Type: "string", Example: "Blue"},
		{Name: "Color", Description: "Vendor color name", Required: false, Type: "string", Example: "Navy Blazer"},
		{Name: "Size", Description: "Size of this variant", Required: false, Type: "string", Example: "M"},
		{Name: "Country of Origin", Description: "Manufacturing country", Required: false, Type: "string", Example: "CN"},
		{Name: "SKU", Description: "Unique per physical variant; synthesized from Product ID when blank", Required: false, Type: "string", Example: "BF-100234-NVY-M"},
		{Name: "HS Code", Description: "Harmonized system code", Required: false, Type: "string", Example: "6201.40"},
		{Name: "Is It a Pack?", Description: "\"yes\" for multipacks", Required: false, Type: "boolean", Example: "no"},
		{Name: "Wholesale Price", Description: "Wholesale unit price", Required: false, Type: "number", Example: "49.95"},
		{Name: "Retail Price", Description: "Recommended retail price", Required: false, Type: "number", Example: "119.95"},
		{Name: "Currency", Description: "ISO currency code", Required: false, Type: "string", Example: "EUR"},
		{Name: "Product Image", Description: "Image column; embedded pictures are anchored here", Required: false, Type: "image", Example: ""},
	}
}

// VendorImportTemplate returns the template definition for vendor catalogs
func VendorImportTemplate() ImportTemplate {
	return ImportTemplate{
		Entity:  "vendor-products",
		Version: "1.0",
		Columns: VendorImportColumns(),
	}
}
