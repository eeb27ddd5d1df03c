package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"catalog-ingest-service/internal/catalog"
	"catalog-ingest-service/internal/models"
	"catalog-ingest-service/internal/repository"
)

type CatalogHandler struct {
	repo            repository.CatalogRepository
	defaultPageSize int
	maxPageSize     int
}

func NewCatalogHandler(repo repository.CatalogRepository, defaultPageSize, maxPageSize int) *CatalogHandler {
	return &CatalogHandler{
		repo:            repo,
		defaultPageSize: defaultPageSize,
		maxPageSize:     maxPageSize,
	}
}

// GetProducts lists catalog rows with optional filters
// GET /api/v1/catalog/products
func (h *CatalogHandler) GetProducts(c *gin.Context) {
	filter := repository.ProductFilter{
		Retailer: c.Query("retailer"),
		Category: c.Query("category"),
		Gender:   c.Query("gender"),
		Type:     c.Query("type"),
	}

	if v := c.Query("inStock"); v != "" {
		inStock := v == "true"
		filter.InStock = &inStock
	}
	filter.Limit = h.defaultPageSize
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			filter.Limit = parsed
		}
	}
	if filter.Limit > h.maxPageSize {
		filter.Limit = h.maxPageSize
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			filter.Offset = parsed
		}
	}

	products, total, err := h.repo.ListProducts(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "LIST_FAILED",
				Message: err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"products": products,
		"total":    total,
	})
}

// GetProduct fetches one catalog row by SKU
// GET /api/v1/catalog/products/:sku
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	sku := c.Param("sku")

	product, err := h.repo.GetBySKU(c.Request.Context(), sku)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Success: false,
				Error: models.Error{
					Code:    "PRODUCT_NOT_FOUND",
					Message: "No catalog product with SKU " + sku,
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "FETCH_FAILED",
				Message: err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Data:    product,
	})
}

// GetProductGroups returns variant rows grouped by style code
// GET /api/v1/catalog/product-groups
func (h *CatalogHandler) GetProductGroups(c *gin.Context) {
	retailer := c.Query("retailer")
	if retailer == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "RETAILER_REQUIRED",
				Message: "Query parameter 'retailer' is required",
				Field:   "retailer",
			},
		})
		return
	}

	products, err := h.repo.ListByRetailer(c.Request.Context(), retailer)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "LIST_FAILED",
				Message: err.Error(),
			},
		})
		return
	}

	groups := catalog.GroupByStyle(products)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"groups":  groups,
		"total":   len(groups),
	})
}
