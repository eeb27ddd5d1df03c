package ingest

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"catalog-ingest-service/internal/models"
)

// ErrEmptySheet signals a workbook with no data rows beyond the header.
// Callers report it as zero imported / zero failed rather than a crash.
var ErrEmptySheet = errors.New("empty spreadsheet")

// ImageBlob is an embedded picture extracted from the workbook, decoded to
// raw bytes and tagged with its MIME type for re-upload.
type ImageBlob struct {
	Data []byte
	MIME string
}

// SheetData is the decoded first sheet: the header row, all data rows keyed
// by header name, and embedded images keyed by data-row index.
type SheetData struct {
	Headers []string
	Rows    []models.VendorRow
	// Images maps a 0-based data-row index (anchor row minus the header
	// row) to the picture anchored there.
	Images map[int]ImageBlob
	// ImagesSkipped counts pictures dropped for a bad anchor or empty
	// payload; these are logged, never fatal.
	ImagesSkipped int
}

// Decoder parses one untrusted workbook per call. Each Decode opens its own
// excelize file handle so no parser state is shared between runs or
// reachable by row data.
type Decoder struct {
	logger *logrus.Entry
}

func NewDecoder(logger *logrus.Logger) *Decoder {
	return &Decoder{
		logger: logger.WithField("component", "sheet-decoder"),
	}
}

// Decode reads the first sheet into headers and rows and walks the sheet's
// picture anchors. Returns ErrEmptySheet when the sheet holds no data rows.
func (d *Decoder) Decode(data []byte) (*SheetData, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data), excelize.Options{
		// Bound in-memory decompression of untrusted archives
		UnzipSizeLimit:    MaxUploadBytes * 10,
		UnzipXMLSizeLimit: MaxUploadBytes,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptySheet
	}
	sheet := sheets[0]

	grid, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(grid) < 2 {
		return nil, ErrEmptySheet
	}

	headers := make([]string, len(grid[0]))
	for i, h := range grid[0] {
		// The downloadable template marks required columns with a " *"
		// suffix; strip it so round-tripped templates keep their headers.
		headers[i] = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(h), " *"))
	}

	rows := make([]models.VendorRow, 0, len(grid)-1)
	for _, raw := range grid[1:] {
		row := make(models.VendorRow, len(headers))
		for i, value := range raw {
			if i < len(headers) && headers[i] != "" {
				row[headers[i]] = strings.TrimSpace(value)
			}
		}
		rows = append(rows, row)
	}

	result := &SheetData{
		Headers: headers,
		Rows:    rows,
		Images:  make(map[int]ImageBlob),
	}
	d.extractImages(f, sheet, result)

	return result, nil
}

// extractImages walks the sheet's drawing anchors and associates each
// embedded picture with a data row. A picture with no usable anchor or an
// empty payload is skipped and counted, not treated as fatal.
func (d *Decoder) extractImages(f *excelize.File, sheet string, out *SheetData) {
	cells, err := f.GetPictureCells(sheet)
	if err != nil {
		d.logger.WithError(err).Warn("Failed to enumerate picture anchors, continuing without images")
		return
	}

	for _, cell := range cells {
		_, row, err := excelize.CellNameToCoordinates(cell)
		if err != nil || row < 2 {
			// No anchor, or anchored to the header row
			out.ImagesSkipped++
			d.logger.WithField("cell", cell).Warn("Skipping picture with unusable anchor")
			continue
		}

		pics, err := f.GetPictures(sheet, cell)
		if err != nil || len(pics) == 0 {
			out.ImagesSkipped++
			d.logger.WithField("cell", cell).WithError(err).Warn("Skipping picture with unreadable payload")
			continue
		}

		pic := pics[0]
		if len(pic.File) == 0 {
			out.ImagesSkipped++
			d.logger.WithField("cell", cell).Warn("Skipping picture with empty payload")
			continue
		}

		// Excel rows are 1-based and row 1 is the header, so the 0-based
		// data-row index is the anchor row minus 2.
		dataRow := row - 2
		if dataRow >= len(out.Rows) {
			out.ImagesSkipped++
			d.logger.WithField("cell", cell).Warn("Skipping picture anchored below the data rows")
			continue
		}
		if _, exists := out.Images[dataRow]; exists {
			continue
		}
		out.Images[dataRow] = ImageBlob{
			Data: pic.File,
			MIME: mimeFromExtension(pic.Extension),
		}
	}
}

func mimeFromExtension(ext string) string {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "jpg", "jpeg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "gif":
		return "image/gif"
	case "webp":
		return "image/webp"
	case "bmp":
		return "image/bmp"
	case "tif", "tiff":
		return "image/tiff"
	default:
		return "application/octet-stream"
	}
}
