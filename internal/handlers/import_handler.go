package handlers

import (
	"encoding/csv"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"catalog-ingest-service/internal/events"
	"catalog-ingest-service/internal/ingest"
	"catalog-ingest-service/internal/models"
)

type ImportHandler struct {
	importer  *ingest.Importer
	publisher *events.Publisher
}

// NewImportHandler wires the import endpoint. publisher may be nil when
// NATS is not configured.
func NewImportHandler(importer *ingest.Importer, publisher *events.Publisher) *ImportHandler {
	return &ImportHandler{
		importer:  importer,
		publisher: publisher,
	}
}

// ImportCatalog ingests a vendor spreadsheet into the catalog
// POST /api/v1/catalog/import
// The response is always a full ImportResult; partial failure is the
// expected common case for real vendor feeds and still returns 200.
func (h *ImportHandler) ImportCatalog(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "FILE_REQUIRED",
				Message: "Please upload an Excel vendor file",
			},
		})
		return
	}
	defer file.Close()

	retailer := c.DefaultPostForm("retailer", "")
	if retailer == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "RETAILER_REQUIRED",
				Message: "Form field 'retailer' is required",
				Field:   "retailer",
			},
		})
		return
	}

	// One byte past the ceiling is enough to reject oversized uploads
	// whose declared size lies.
	data, err := io.ReadAll(io.LimitReader(file, ingest.MaxUploadBytes+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "READ_ERROR",
				Message: "Failed to read uploaded file",
			},
		})
		return
	}

	size := header.Size
	if int64(len(data)) > size {
		size = int64(len(data))
	}

	result := h.importer.Run(c.Request.Context(), ingest.Upload{
		Filename:    header.Filename,
		Size:        size,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, retailer)

	if h.publisher != nil {
		h.publisher.PublishImportCompleted(c.Request.Context(), retailer, result)
	}

	// A rejected run processed zero rows; everything else completed.
	if !result.Success && result.Imported == 0 && result.Failed == 0 {
		c.JSON(http.StatusBadRequest, result)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetImportTemplate returns the vendor import template definition or file
// GET /api/v1/catalog/import/template
func (h *ImportHandler) GetImportTemplate(c *gin.Context) {
	format := c.DefaultQuery("format", "json")

	template := models.VendorImportTemplate()

	switch format {
	case "csv":
		h.generateCSVTemplate(c, template)
	case "xlsx":
		h.generateXLSXTemplate(c, template)
	default:
		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"template": template,
		})
	}
}

// generateCSVTemplate generates and downloads a CSV template (headers only)
func (h *ImportHandler) generateCSVTemplate(c *gin.Context, template models.ImportTemplate) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename=vendor_catalog_template.csv")

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	headers := make([]string, len(template.Columns))
	for i, col := range template.Columns {
		headers[i] = col.Name
	}
	writer.Write(headers)
}

// generateXLSXTemplate generates and downloads an Excel template
func (h *ImportHandler) generateXLSXTemplate(c *gin.Context, template models.ImportTemplate) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Products"
	f.SetSheetName("Sheet1", sheetName)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	requiredStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"C65911"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	for i, col := range template.Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		headerText := col.Name
		if col.Required {
			headerText = col.Name + " *"
		}
		f.SetCellValue(sheetName, cell, headerText)

		if col.Required {
			f.SetCellStyle(sheetName, cell, cell, requiredStyle)
		} else {
			f.SetCellStyle(sheetName, cell, cell, headerStyle)
		}

		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, colName, colName, 20)
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=vendor_catalog_template.xlsx")

	f.Write(c.Writer)
}
