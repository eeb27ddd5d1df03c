package ingest

import (
	"fmt"
	"strings"
)

// MaxUploadBytes bounds decompression and parsing cost for untrusted
// workbooks (zip bombs, pathological archives).
const MaxUploadBytes = 10 * 1024 * 1024

var allowedContentTypes = map[string]struct{}{
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": {},
	"application/vnd.ms-excel": {},
	"application/excel":        {},
	"application/x-excel":      {},
	// Some user agents mislabel spreadsheet uploads
	"application/octet-stream": {},
}

// RejectionError is a fatal pre-parse failure: the whole run aborts with
// zero rows processed.
type RejectionError struct {
	Code    string
	Message string
}

func (e *RejectionError) Error() string {
	return e.Message
}

// ValidateUpload gates an untrusted upload on file metadata alone: suffix,
// size ceiling and declared content type. It never reads file content, and
// must pass before any parsing happens.
func ValidateUpload(filename string, size int64, contentType string) error {
	lower := strings.ToLower(filename)
	if !strings.HasSuffix(lower, ".xlsx") && !strings.HasSuffix(lower, ".xls") {
		return &RejectionError{
			Code:    "INVALID_FORMAT",
			Message: "Only .xlsx and .xls files are supported",
		}
	}

	if size > MaxUploadBytes {
		return &RejectionError{
			Code:    "FILE_TOO_LARGE",
			Message: fmt.Sprintf("File exceeds the %d MB upload limit", MaxUploadBytes/(1024*1024)),
		}
	}

	if contentType != "" {
		base := contentType
		if idx := strings.Index(base, ";"); idx >= 0 {
			base = base[:idx]
		}
		base = strings.TrimSpace(strings.ToLower(base))
		if _, ok := allowedContentTypes[base]; !ok {
			return &RejectionError{
				Code:    "UNSUPPORTED_MEDIA_TYPE",
				Message: fmt.Sprintf("Content type %q is not a spreadsheet type", base),
			}
		}
	}

	return nil
}
