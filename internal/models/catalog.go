package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// StringArray is stored as a PostgreSQL JSONB array of strings
type StringArray []string

func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal(a)
}

func (a *StringArray) Scan(value interface{}) error {
	if value == nil {
		*a = make(StringArray, 0)
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, a)
}

// CatalogProduct is the persisted catalog entity. Rows are keyed by SKU:
// re-importing a vendor file overwrites matching rows instead of inserting
// duplicates. The ingestion pipeline never deletes rows.
type CatalogProduct struct {
	ID            uuid.UUID   `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	SKU           string      `json:"sku" gorm:"not null;uniqueIndex:idx_catalog_products_sku"`
	StyleCode     string      `json:"styleCode" gorm:"index:idx_catalog_products_style"`
	Name          string      `json:"name" gorm:"not null"`
	Description   *string     `json:"description,omitempty"`
	ImageURL      *string     `json:"imageUrl,omitempty" gorm:"column:image_url"`
	Price         float64     `json:"price" gorm:"not null"`
	OriginalPrice *float64    `json:"originalPrice,omitempty"`
	Retailer      string      `json:"retailer" gorm:"not null;index:idx_catalog_products_retailer"`
	Brand         string      `json:"brand"`
	Category      string      `json:"category" gorm:"index"`
	SubCategory   string      `json:"subCategory"`
	Gender        string      `json:"gender"`
	Type          string      `json:"type"`
	Colors        StringArray `json:"colors" gorm:"type:jsonb"`
	Sizes         StringArray `json:"sizes" gorm:"type:jsonb"`
	Tags          StringArray `json:"tags" gorm:"type:jsonb"`
	InStock       bool        `json:"inStock" gorm:"default:true"`
	AffiliateURL  *string     `json:"affiliateUrl,omitempty" gorm:"column:affiliate_url"`
	ProductURL    *string     `json:"productUrl,omitempty" gorm:"column:product_url"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

// TableName returns the table name for the CatalogProduct model
func (CatalogProduct) TableName() string {
	return "catalog_products"
}

// PriceRange holds the min/max retail price across a product group
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// ProductGroup is the read-side aggregate over all catalog rows sharing a
// style code. It is recomputed on read and never persisted.
type ProductGroup struct {
	StyleCode   string           `json:"styleCode"`
	ProductName string           `json:"productName"`
	Category    string           `json:"category"`
	SubCategory string           `json:"subCategory"`
	Variants    []CatalogProduct `json:"variants"`
	Colors      []string         `json:"colors"`
	Sizes       []string         `json:"sizes"`
	PriceRange  PriceRange       `json:"priceRange"`
	ImageURL    string           `json:"imageUrl,omitempty"`
}

type ErrorResponse struct {
	Success   bool   `json:"success"`
	Error     Error  `json:"error"`
	Timestamp string `json:"timestamp,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message *string     `json:"message,omitempty"`
}
