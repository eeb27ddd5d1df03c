package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"catalog-ingest-service/internal/ingest"
	"catalog-ingest-service/internal/models"
	"catalog-ingest-service/internal/repository"
)

func importRouter(repo repository.CatalogRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	importer := ingest.NewImporter(repo, nil, logger)
	h := NewImportHandler(importer, nil)
	r := gin.New()
	r.POST("/api/v1/catalog/import", h.ImportCatalog)
	r.GET("/api/v1/catalog/import/template", h.GetImportTemplate)
	return r
}

func vendorWorkbook(t *testing.T, rows [][]string) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetList()[0]
	headers := []string{"Product ID", "Style Code", "Category", "Product Name", "SKU", "Retail Price"}
	require.NoError(t, f.SetSheetRow(sheet, "A1", &headers))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		require.NoError(t, f.SetSheetRow(sheet, cell, &values))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func multipartUpload(t *testing.T, filename, contentType string, data []byte, retailer string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)

	if retailer != "" {
		require.NoError(t, writer.WriteField("retailer", retailer))
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestImportCatalogRequiresFile(t *testing.T) {
	router := importRouter(newStubRepo())

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("retailer", "acme"))
	require.NoError(t, writer.Close())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/catalog/import", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "FILE_REQUIRED", resp.Error.Code)
}

func TestImportCatalogRequiresRetailer(t *testing.T) {
	router := importRouter(newStubRepo())

	data := vendorWorkbook(t, [][]string{{"1", "ST-A", "Jeans", "Jeans A", "SKU-A", "10"}})
	body, contentType := multipartUpload(t, "catalog.xlsx",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data, "")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/catalog/import", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "RETAILER_REQUIRED", resp.Error.Code)
}

func TestImportCatalogRejectsWrongFileType(t *testing.T) {
	repo := newStubRepo()
	router := importRouter(repo)

	body, contentType := multipartUpload(t, "catalog.csv", "text/csv", []byte("sku,name"), "acme")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/catalog/import", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var result models.ImportResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.False(t, result.Success)
	assert.Zero(t, result.Imported)
	assert.Empty(t, repo.products)
}

func TestImportCatalogEndToEnd(t *testing.T) {
	repo := newStubRepo()
	router := importRouter(repo)

	data := vendorWorkbook(t, [][]string{
		{"1", "ST-A", "Jeans", "Jeans A", "SKU-A", "59.95"},
		{"2", "ST-A", "Jeans", "Jeans A", "SKU-B", "59.95"},
	})
	body, contentType := multipartUpload(t, "catalog.xlsx",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data, "acme")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/catalog/import", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var result models.ImportResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.True(t, result.Success)
	assert.Equal(t, 2, result.Imported)
	assert.Zero(t, result.Failed)

	require.Len(t, repo.products, 2)
	assert.Equal(t, "acme", repo.products["SKU-A"].Retailer)
}

func TestGetImportTemplateJSON(t *testing.T) {
	router := importRouter(newStubRepo())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/import/template", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Success  bool                  `json:"success"`
		Template models.ImportTemplate `json:"template"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Template.Columns)

	names := make([]string, 0, len(resp.Template.Columns))
	for _, col := range resp.Template.Columns {
		names = append(names, col.Name)
	}
	assert.Contains(t, names, "SKU")
	assert.Contains(t, names, "Style Code")
}

func TestGetImportTemplateCSV(t *testing.T) {
	router := importRouter(newStubRepo())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/import/template?format=csv", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Body.String(), "Style Code")
}
