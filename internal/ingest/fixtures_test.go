package ingest

import (
	_ "image/png"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// tinyPNG is a valid 1x1 transparent PNG used as an embedded-picture payload
var tinyPNG = []byte{
	0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0x00, 0x00, 0x0D,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1F, 0x15, 0xC4, 0x89, 0x00, 0x00, 0x00,
	0x0D, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9C, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0D, 0x0A, 0x2D, 0xB4, 0x00, 0x00, 0x00, 0x00, 0x49,
	0x45, 0x4E, 0x44, 0xAE, 0x42, 0x60, 0x82,
}

// makeWorkbook builds an in-memory xlsx with a header row, data rows, and
// optional pictures anchored by 0-based data-row index.
func makeWorkbook(t *testing.T, headers []string, rows [][]string, imageRows ...int) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetList()[0]
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

	imageCol := len(headers) + 1
	for _, dataIdx := range imageRows {
		cell, err := excelize.CoordinatesToCellName(imageCol, dataIdx+2)
		require.NoError(t, err)
		require.NoError(t, f.AddPictureFromBytes(sheet, cell, &excelize.Picture{
			Extension: ".png",
			File:      tinyPNG,
			Format:    &excelize.GraphicOptions{},
		}))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func vendorUpload(data []byte) Upload {
	return Upload{
		Filename:    "vendor_catalog.xlsx",
		Size:        int64(len(data)),
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Data:        data,
	}
}

var vendorHeaders = []string{
	"Product ID", "Style Code", "Category", "Sub Category", "Product Name",
	"Gender", "Color", "Size", "SKU", "Retail Price",
}

func vendorRow(id, style, category, name, color, size, sku, price string) []string {
	return []string{id, style, category, "", name, "Men", color, size, sku, price}
}
