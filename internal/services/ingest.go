package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"docuseek/internal/models"
)

type IngestService interface {
	// Ingest runs the full pipeline for one uploaded PDF: extract per-page
	// text, upload the original to the object store, then submit every page
	// as one bulk write. Upload failure aborts before any index write.
	Ingest(ctx context.Context, file io.Reader, originalFilename string) (*models.IngestResponse, error)

	// DeleteDocument removes every indexed page of the named document.
	DeleteDocument(ctx context.Context, documentName string) (int, error)
}

type ingestService struct {
	extractor   PDFExtractorService
	storage     ObjectStorageService
	searchIndex SearchIndexService
}

func NewIngestService(
	extractor PDFExtractorService,
	storage ObjectStorageService,
	searchIndex SearchIndexService,
) IngestService {
	return &ingestService{
		extractor:   extractor,
		storage:     storage,
		searchIndex: searchIndex,
	}
}

// Ingest implements IngestService.
func (s *ingestService) Ingest(ctx context.Context, file io.Reader, originalFilename string) (*models.IngestResponse, error) {
	documentName := DocumentNameFromFilename(originalFilename)
	if documentName == "" {
		return nil, fmt.Errorf("%w: empty filename", ErrMalformedDocument)
	}

	// The parser and the uploader both want a file on disk. The temp file is
	// removed on every exit path, win or lose.
	tmpFile, err := os.CreateTemp("", "docuseek-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := io.Copy(tmpFile, file); err != nil {
		tmpFile.Close()
		return nil, fmt.Errorf("failed to buffer uploaded file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return nil, fmt.Errorf("failed to flush uploaded file: %w", err)
	}

	log.Printf("📄 Extracting pages from '%s'...\n", documentName)
	pages, err := s.extractor.ExtractPages(tmpFile.Name())
	if err != nil {
		return nil, err
	}

	log.Printf("☁️  Uploading '%s' to object store...\n", documentName)
	baseLink, err := s.storage.Upload(ctx, tmpFile.Name(), originalFilename)
	if err != nil {
		// No partial indexing without a successful upload: every page link
		// depends on the base URL.
		return nil, err
	}

	records := make([]models.Page, 0, len(pages))
	for _, page := range pages {
		records = append(records, models.Page{
			DocumentName: documentName,
			PageNumber:   page.Number,
			Content:      page.Content,
			Link:         PageLink(baseLink, page.Number),
		})
	}

	log.Printf("🔍 Indexing %d pages of '%s'...\n", len(records), documentName)
	if err := s.searchIndex.IndexPages(ctx, records); err != nil {
		// The file stays uploaded but unsearchable; the caller should retry
		// indexing.
		return nil, err
	}

	log.Printf("✅ Ingested '%s' (%d pages)\n", documentName, len(records))
	return &models.IngestResponse{
		DocumentName: documentName,
		Link:         baseLink,
		Pages:        len(records),
	}, nil
}

// DeleteDocument implements IngestService.
func (s *ingestService) DeleteDocument(ctx context.Context, documentName string) (int, error) {
	deleted, err := s.searchIndex.DeleteDocument(ctx, documentName)
	if err != nil {
		return 0, err
	}

	log.Printf("🗑️  Deleted %d pages of '%s'\n", deleted, documentName)
	return deleted, nil
}

// DocumentNameFromFilename derives the document identifier from the uploaded
// filename: base name, extension stripped.
func DocumentNameFromFilename(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// PageLink derives the deep link for one page from the stored file's base URL.
func PageLink(baseLink string, pageNumber int) string {
	return fmt.Sprintf("%s#page=%d", baseLink, pageNumber)
}
