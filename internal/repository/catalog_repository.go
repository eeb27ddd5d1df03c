package repository

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"catalog-ingest-service/internal/models"
)

// Cache TTL constants
const (
	ProductCacheTTL     = 5 * time.Minute
	ProductListCacheTTL = 2 * time.Minute
)

// ErrProductNotFound is returned when no catalog row matches the SKU
var ErrProductNotFound = errors.New("catalog product not found")

// ProductFilter narrows catalog list queries
type ProductFilter struct {
	Retailer string
	Category string
	Gender   string
	Type     string
	InStock  *bool
	Limit    int
	Offset   int
}

// CatalogRepository is the persistence boundary for catalog rows. The
// ingestion orchestrator only depends on this interface, so tests run
// against an in-memory fake.
type CatalogRepository interface {
	UpsertProduct(ctx context.Context, product *models.CatalogProduct) error
	GetBySKU(ctx context.Context, sku string) (*models.CatalogProduct, error)
	ListProducts(ctx context.Context, filter ProductFilter) ([]models.CatalogProduct, int64, error)
	ListByRetailer(ctx context.Context, retailer string) ([]models.CatalogProduct, error)
}

// GormCatalogRepository persists catalog rows in Postgres with a Redis
// read-through cache for list queries
type GormCatalogRepository struct {
	db    *gorm.DB
	redis *redis.Client
}

var _ CatalogRepository = (*GormCatalogRepository)(nil)

func NewCatalogRepository(db *gorm.DB, redisClient *redis.Client) *GormCatalogRepository {
	return &GormCatalogRepository{
		db:    db,
		redis: redisClient,
	}
}

// UpsertProduct creates or overwrites the row matching the SKU. The write
// is atomic per key: a conflicting SKU updates in place, last writer wins,
// and no duplicate row is ever inserted.
func (r *GormCatalogRepository) UpsertProduct(ctx context.Context, product *models.CatalogProduct) error {
	product.UpdatedAt = time.Now()

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "sku"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"style_code", "name", "description", "image_url", "price",
			"original_price", "retailer", "brand", "category", "sub_category",
			"gender", "type", "colors", "sizes", "tags", "in_stock",
			"affiliate_url", "product_url", "updated_at",
		}),
	}).Create(product).Error
	if err != nil {
		return fmt.Errorf("failed to upsert product %s: %w", product.SKU, err)
	}

	r.invalidateRetailerCaches(ctx, product.Retailer)
	if r.redis != nil {
		_ = r.redis.Del(ctx, fmt.Sprintf("catalog:product:%s", product.SKU)).Err()
	}
	return nil
}

// GetBySKU fetches a single row, consulting the cache first
func (r *GormCatalogRepository) GetBySKU(ctx context.Context, sku string) (*models.CatalogProduct, error) {
	cacheKey := fmt.Sprintf("catalog:product:%s", sku)

	if r.redis != nil {
		if cached, err := r.redis.Get(ctx, cacheKey).Result(); err == nil {
			var product models.CatalogProduct
			if json.Unmarshal([]byte(cached), &product) == nil {
				return &product, nil
			}
		}
	}

	var product models.CatalogProduct
	err := r.db.WithContext(ctx).Where("sku = ?", sku).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	if r.redis != nil {
		if data, err := json.Marshal(product); err == nil {
			_ = r.redis.Set(ctx, cacheKey, data, ProductCacheTTL).Err()
		}
	}

	return &product, nil
}

// ListProducts returns a filtered, paginated page of catalog rows plus the
// total match count
func (r *GormCatalogRepository) ListProducts(ctx context.Context, filter ProductFilter) ([]models.CatalogProduct, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.CatalogProduct{})

	if filter.Retailer != "" {
		query = query.Where("retailer = ?", filter.Retailer)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Gender != "" {
		query = query.Where("gender = ?", filter.Gender)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.InStock != nil {
		query = query.Where("in_stock = ?", *filter.InStock)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}

	var products []models.CatalogProduct
	err := query.Order("style_code, sku").Limit(limit).Offset(filter.Offset).Find(&products).Error
	if err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

// ListByRetailer returns every catalog row for a retailer, cached briefly
// since the read-side materializer recomputes groups from the full set
func (r *GormCatalogRepository) ListByRetailer(ctx context.Context, retailer string) ([]models.CatalogProduct, error) {
	cacheKey := listCacheKey(retailer)

	if r.redis != nil {
		if cached, err := r.redis.Get(ctx, cacheKey).Result(); err == nil {
			var products []models.CatalogProduct
			if json.Unmarshal([]byte(cached), &products) == nil {
				return products, nil
			}
		}
	}

	var products []models.CatalogProduct
	err := r.db.WithContext(ctx).
		Where("retailer = ?", retailer).
		Order("style_code, sku").
		Find(&products).Error
	if err != nil {
		return nil, err
	}

	if r.redis != nil {
		if data, err := json.Marshal(products); err == nil {
			_ = r.redis.Set(ctx, cacheKey, data, ProductListCacheTTL).Err()
		}
	}

	return products, nil
}

func (r *GormCatalogRepository) invalidateRetailerCaches(ctx context.Context, retailer string) {
	if r.redis == nil {
		return
	}
	_ = r.redis.Del(ctx, listCacheKey(retailer)).Err()
}

// listCacheKey creates a deterministic cache key for retailer list queries
func listCacheKey(retailer string) string {
	hash := md5.Sum([]byte(retailer))
	return fmt.Sprintf("catalog:list:%s", hex.EncodeToString(hash[:]))
}
