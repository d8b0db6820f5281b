package extraction

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/gen2brain/go-fitz"
	"go.uber.org/zap"
)

// Rasterizer turns a document file into its first page as a PNG image.
// Only the first page is submitted for extraction; multi-page invoices
// are not specially handled.
type Rasterizer interface {
	FirstPage(path string) ([]byte, error)
}

// FitzRasterizer renders PDF pages with mupdf. Standalone image files
// (.png, .jpg, .jpeg) are accepted directly and re-encoded to PNG.
type FitzRasterizer struct {
	logger *zap.Logger
}

// NewFitzRasterizer creates a rasterizer backed by mupdf.
func NewFitzRasterizer(logger *zap.Logger) *FitzRasterizer {
	return &FitzRasterizer{logger: logger}
}

// FirstPage renders the first page of the document at path as PNG bytes.
func (r *FitzRasterizer) FirstPage(path string) ([]byte, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("document not found: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".pdf":
		return r.firstPDFPage(path)
	case ".png", ".jpg", ".jpeg":
		return r.readImageFile(path, ext)
	default:
		return nil, fmt.Errorf("unsupported document type: %s", ext)
	}
}

func (r *FitzRasterizer) firstPDFPage(path string) ([]byte, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	if doc.NumPage() == 0 {
		return nil, fmt.Errorf("PDF has no pages")
	}

	r.logger.Debug("Rasterizing PDF",
		zap.String("path", path),
		zap.Int("total_pages", doc.NumPage()))

	img, err := doc.Image(0)
	if err != nil {
		return nil, fmt.Errorf("failed to render page: %w", err)
	}

	return encodePNG(img)
}

func (r *FitzRasterizer) readImageFile(path, ext string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	var img image.Image
	switch ext {
	case ".jpg", ".jpeg":
		img, err = jpeg.Decode(file)
	case ".png":
		img, err = png.Decode(file)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	return encodePNG(img)
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}
