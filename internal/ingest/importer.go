package ingest

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"catalog-ingest-service/internal/metrics"
	"catalog-ingest-service/internal/models"
	"catalog-ingest-service/internal/repository"
	"catalog-ingest-service/internal/storage"
	"catalog-ingest-service/internal/taxonomy"
)

const (
	// BatchSize is both the batch width and the row-concurrency bound:
	// batches run sequentially, rows within a batch run concurrently.
	BatchSize = 10

	// rowOpTimeout bounds each per-row network call (image upload,
	// catalog upsert); a timeout is a row-level failure, never a
	// whole-run abort.
	rowOpTimeout = 30 * time.Second
)

// Upload is the untrusted candidate file handed to an import run
type Upload struct {
	Filename    string
	Size        int64
	ContentType string
	Data        []byte
}

// Importer drives the end-to-end ingestion pipeline: validate, decode,
// then per row transform, map taxonomy, re-host the anchored image and
// upsert, in bounded-concurrency batches with per-row failure isolation.
type Importer struct {
	repo    repository.CatalogRepository
	store   storage.ObjectStore
	decoder *Decoder
	logger  *logrus.Entry
}

// NewImporter wires the orchestrator. store may be nil, in which case rows
// import without images (a degraded success, not a failure).
func NewImporter(repo repository.CatalogRepository, store storage.ObjectStore, logger *logrus.Logger) *Importer {
	return &Importer{
		repo:    repo,
		store:   store,
		decoder: NewDecoder(logger),
		logger:  logger.WithField("component", "catalog-importer"),
	}
}

// Run executes one ingestion run for a retailer's vendor file and returns
// its ImportResult. The only whole-run aborts are a validation rejection or
// an unreadable workbook; every other failure is scoped to its row.
func (im *Importer) Run(ctx context.Context, upload Upload, retailer string) *models.ImportResult {
	start := time.Now()
	result := im.run(ctx, upload, retailer)
	result.ProcessingMs = time.Since(start).Milliseconds()

	status := "completed"
	if !result.Success {
		status = "failed"
	}
	metrics.ImportsTotal.WithLabelValues(retailer, status).Inc()
	metrics.ImportDuration.WithLabelValues(retailer).Observe(time.Since(start).Seconds())

	im.logger.WithFields(logrus.Fields{
		"retailer": retailer,
		"imported": result.Imported,
		"failed":   result.Failed,
		"images":   result.ImagesExtracted,
	}).Info("Import run finished")

	return result
}

func (im *Importer) run(ctx context.Context, upload Upload, retailer string) *models.ImportResult {
	if err := ValidateUpload(upload.Filename, upload.Size, upload.ContentType); err != nil {
		return rejected(err.Error())
	}

	sheet, err := im.decoder.Decode(upload.Data)
	if err == ErrEmptySheet {
		return rejected("empty spreadsheet")
	}
	if err != nil {
		// excelize reads xlsx only; a legacy binary .xls always lands here
		if strings.HasSuffix(strings.ToLower(upload.Filename), ".xls") {
			return rejected("legacy .xls workbooks cannot be read, please re-save the file as .xlsx")
		}
		return rejected(err.Error())
	}

	result := &models.ImportResult{
		ImagesExtracted: len(sheet.Images),
		Errors:          make([]models.ImportRowError, 0),
	}

	var mu sync.Mutex
	for batchStart := 0; batchStart < len(sheet.Rows); batchStart += BatchSize {
		batchEnd := batchStart + BatchSize
		if batchEnd > len(sheet.Rows) {
			batchEnd = len(sheet.Rows)
		}

		var wg sync.WaitGroup
		for idx := batchStart; idx < batchEnd; idx++ {
			wg.Add(1)
			go func(rowIdx int) {
				defer wg.Done()
				sku, err := im.processRow(ctx, sheet, rowIdx, retailer)

				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					result.Failed++
					result.Errors = append(result.Errors, models.ImportRowError{
						Row:     rowIdx + 2, // 1-based sheet row, after the header
						SKU:     sku,
						Message: err.Error(),
					})
					metrics.RowsProcessed.WithLabelValues(retailer, "failed").Inc()
				} else {
					result.Imported++
					metrics.RowsProcessed.WithLabelValues(retailer, "imported").Inc()
				}
			}(idx)
		}
		wg.Wait()
	}

	sort.Slice(result.Errors, func(i, j int) bool {
		return result.Errors[i].Row < result.Errors[j].Row
	})
	result.Success = result.Failed == 0
	return result
}

// processRow is the per-row isolated unit of work. Any panic or error is
// converted into a row error; an image-upload failure alone is not one.
func (im *Importer) processRow(ctx context.Context, sheet *SheetData, rowIdx int, retailer string) (sku string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("row processing panicked: %v", r)
		}
	}()

	product := TransformRow(sheet.Rows[rowIdx])
	sku = product.SKU

	if blob, ok := sheet.Images[rowIdx]; ok {
		im.rehostImage(ctx, product, blob, retailer)
	}

	mapping := taxonomy.Resolve(product.Category, product.SubCategory)
	record := buildCatalogProduct(product, mapping, retailer)

	upsertCtx, cancel := context.WithTimeout(ctx, rowOpTimeout)
	defer cancel()
	if err := im.repo.UpsertProduct(upsertCtx, record); err != nil {
		return sku, err
	}
	return sku, nil
}

// rehostImage uploads the row's anchored image and attaches the returned
// URL. Failures are logged and the row continues without an image.
func (im *Importer) rehostImage(ctx context.Context, product *models.VendorProduct, blob ImageBlob, retailer string) {
	if im.store == nil {
		return
	}

	uploadCtx, cancel := context.WithTimeout(ctx, rowOpTimeout)
	defer cancel()

	url, err := im.store.UploadImage(uploadCtx, product.StyleCode, blob.Data, blob.MIME)
	if err != nil {
		metrics.ImagesRehosted.WithLabelValues(retailer, "failed").Inc()
		im.logger.WithFields(logrus.Fields{
			"styleCode": product.StyleCode,
			"sku":       product.SKU,
		}).WithError(err).Warn("Image upload failed, importing row without image")
		return
	}

	metrics.ImagesRehosted.WithLabelValues(retailer, "uploaded").Inc()
	product.ImageURL = &url
}

// buildCatalogProduct assembles the persisted record from the typed vendor
// row and its taxonomy mapping
func buildCatalogProduct(product *models.VendorProduct, mapping taxonomy.Mapping, retailer string) *models.CatalogProduct {
	record := &models.CatalogProduct{
		SKU:         product.SKU,
		StyleCode:   product.StyleCode,
		Name:        product.ProductName,
		Price:       product.RetailPrice,
		Retailer:    retailer,
		Brand:       retailer,
		Category:    mapping.Category,
		SubCategory: product.SubCategory,
		Gender:      strings.ToLower(product.Gender),
		Type:        mapping.Type,
		Colors:      make(models.StringArray, 0),
		Sizes:       make(models.StringArray, 0),
		Tags:        make(models.StringArray, 0, len(mapping.StyleTags)+len(mapping.Seasons)),
		InStock:     true,
		ImageURL:    product.ImageURL,
	}

	if product.MaterialComposition != "" {
		desc := fmt.Sprintf("%s. Material: %s", product.ProductName, product.MaterialComposition)
		record.Description = &desc
	}
	if product.AffiliateLink != nil && *product.AffiliateLink != "" {
		record.AffiliateURL = product.AffiliateLink
	}

	if color := firstNonEmpty(product.Color, product.ColorFamily); color != "" {
		record.Colors = append(record.Colors, color)
	}
	if product.Size != "" {
		record.Sizes = append(record.Sizes, product.Size)
	}

	record.Tags = append(record.Tags, mapping.StyleTags...)
	record.Tags = append(record.Tags, mapping.Seasons...)

	return record
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func rejected(message string) *models.ImportResult {
	return &models.ImportResult{
		Success: false,
		Errors: []models.ImportRowError{
			{Row: 0, Message: message},
		},
	}
}
