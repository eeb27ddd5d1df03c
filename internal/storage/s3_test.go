package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtensionForMIME(t *testing.T) {
	tests := []struct {
		contentType string
		want        string
	}{
		{"image/jpeg", "jpg"},
		{"image/png", "png"},
		{"image/gif", "gif"},
		{"image/webp", "webp"},
		{"image/tiff", "tif"},
		{"application/octet-stream", "bin"},
		{"", "bin"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, extensionForMIME(tt.contentType), tt.contentType)
	}
}

func TestSanitizeStyleCode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ST-1001", "ST-1001"},
		{"st_1001.v2", "st_1001.v2"},
		{"a/b", "a-b"},
		{"../../etc", "..-..-etc"},
		{"style code", "style-code"},
		{"", "unknown"},
		{"///", "---"},
		{".", "unknown"},
		{"..", "unknown"},
		{"...", "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeStyleCode(tt.in), tt.in)
	}
}

func TestObjectKey(t *testing.T) {
	s := &S3ObjectStore{bucket: "catalog", prefix: "assets"}
	assert.Equal(t, "assets/products/ST-1/main.png", s.objectKey("ST-1", "image/png"))

	s = &S3ObjectStore{bucket: "catalog"}
	assert.Equal(t, "products/ST-1/main.jpg", s.objectKey("ST-1", "image/jpeg"))
	assert.Equal(t, "products/a-b/main.bin", s.objectKey("a/b", "video/mp4"))
	// Relative path segments must never leave the products/ template
	assert.Equal(t, "products/unknown/main.png", s.objectKey("..", "image/png"))
}

func TestPublicURL(t *testing.T) {
	key := "products/ST-1/main.png"

	s := &S3ObjectStore{bucket: "catalog", cdnDomain: "cdn.example.com"}
	assert.Equal(t, "https://cdn.example.com/products/ST-1/main.png", s.publicURL(key))

	s = &S3ObjectStore{bucket: "catalog", endpoint: "http://localhost:9000"}
	assert.Equal(t, "http://localhost:9000/catalog/products/ST-1/main.png", s.publicURL(key))

	s = &S3ObjectStore{bucket: "catalog"}
	assert.Equal(t, "https://catalog.s3.amazonaws.com/products/ST-1/main.png", s.publicURL(key))
}
