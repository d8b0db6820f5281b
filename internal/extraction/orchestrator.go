package extraction

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// supportedExtensions lists the document types accepted for extraction.
var supportedExtensions = map[string]bool{
	".pdf":  true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

// Result pairs one document filename with the outcome of its
// extraction: either the raw JSON payload or the captured failure.
type Result struct {
	Filename string
	RawJSON  string
	Err      error
}

// Orchestrator fans out one extraction request per document and joins
// the results back in the original enumeration order. A failure on one
// document never aborts its siblings.
type Orchestrator struct {
	rasterizer     Rasterizer
	extractor      Extractor
	maxInFlight    int
	requestTimeout time.Duration
	logger         *zap.Logger
}

// NewOrchestrator creates an orchestrator. maxInFlight bounds the
// number of concurrent extraction requests; requestTimeout applies per
// request, and a timeout is recorded as that document's failure.
func NewOrchestrator(
	rasterizer Rasterizer,
	extractor Extractor,
	maxInFlight int,
	requestTimeout time.Duration,
	logger *zap.Logger,
) *Orchestrator {
	if maxInFlight <= 0 {
		maxInFlight = 4
	}
	return &Orchestrator{
		rasterizer:     rasterizer,
		extractor:      extractor,
		maxInFlight:    maxInFlight,
		requestTimeout: requestTimeout,
		logger:         logger,
	}
}

// ExtractDirectory enumerates supported documents in dir in
// lexicographic filename order and extracts each concurrently. The
// returned slice corresponds 1:1 with the enumerated filenames
// regardless of completion order. Only enumeration itself can fail;
// per-document failures are recorded inside the results.
func (o *Orchestrator) ExtractDirectory(ctx context.Context, dir string) ([]Result, error) {
	files, err := o.listDocuments(dir)
	if err != nil {
		return nil, err
	}

	o.logger.Info("Extracting invoice data",
		zap.String("dir", dir),
		zap.Int("documents", len(files)))

	results := make([]Result, len(files))
	sem := make(chan struct{}, o.maxInFlight)
	var wg sync.WaitGroup

	for i, name := range files {
		results[i].Filename = name

		// Rasterization is local and synchronous; only the service
		// call runs concurrently.
		img, err := o.rasterizer.FirstPage(filepath.Join(dir, name))
		if err != nil {
			o.logger.Warn("Failed to rasterize document",
				zap.String("file", name),
				zap.Error(err))
			results[i].Err = fmt.Errorf("rasterize %s: %w", name, err)
			continue
		}

		wg.Add(1)
		go func(i int, name string, img []byte) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			reqCtx := ctx
			if o.requestTimeout > 0 {
				var cancel context.CancelFunc
				reqCtx, cancel = context.WithTimeout(ctx, o.requestTimeout)
				defer cancel()
			}

			raw, err := o.extractor.Extract(reqCtx, img)
			if err != nil {
				o.logger.Warn("Extraction failed",
					zap.String("file", name),
					zap.Error(err))
				results[i].Err = fmt.Errorf("extract %s: %w", name, err)
				return
			}

			results[i].RawJSON = raw
			o.logger.Info("Extracted document", zap.String("file", name))
		}(i, name, img)
	}

	wg.Wait()
	return results, nil
}

// listDocuments returns the supported document filenames in dir,
// sorted lexicographically.
func (o *Orchestrator) listDocuments(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read invoices directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if supportedExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}
