package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"docuseek/internal/config"
	"docuseek/internal/models"
)

type SearchIndexService interface {
	EnsureIndex(ctx context.Context) error
	// IndexPages submits every page of one document as a single bulk write.
	// Either all pages become searchable or the call fails; a partial bulk
	// rejection is surfaced as ErrIndexingFailed.
	IndexPages(ctx context.Context, pages []models.Page) error
	// Search runs a relevance-ranked full-text match on page content. Ranking
	// is entirely the engine's; hits come back in engine order. limit <= 0
	// leaves the engine's default page size in effect.
	Search(ctx context.Context, query string, limit int) ([]models.SearchHit, error)
	// DeleteDocument removes every page whose document_name matches, returning
	// how many records were deleted.
	DeleteDocument(ctx context.Context, documentName string) (int, error)
}

// indexMapping is the page record schema. document_name carries a keyword
// subfield so delete-by-name matches exactly while search stays full-text.
const indexMapping = `{
	"mappings": {
		"properties": {
			"document_name": {"type": "text", "fields": {"keyword": {"type": "keyword"}}},
			"page_number":   {"type": "integer"},
			"content":       {"type": "text"},
			"link":          {"type": "keyword"}
		}
	}
}`

type searchIndexService struct {
	client *elasticsearch.Client
	index  string
}

func NewSearchIndexService(cfg config.ElasticConfig) (SearchIndexService, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{cfg.URL},
		APIKey:    cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create elasticsearch client: %w", err)
	}

	return &searchIndexService{
		client: client,
		index:  cfg.Index,
	}, nil
}

// EnsureIndex implements SearchIndexService. It is an idempotent startup
// check, not part of request handling.
func (s *searchIndexService) EnsureIndex(ctx context.Context) error {
	res, err := s.client.Indices.Exists(
		[]string{s.index},
		s.client.Indices.Exists.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("failed to check index: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == 200 {
		log.Println("✅ Index already exists")
		return nil
	}

	createRes, err := s.client.Indices.Create(
		s.index,
		s.client.Indices.Create.WithContext(ctx),
		s.client.Indices.Create.WithBody(bytes.NewReader([]byte(indexMapping))),
	)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	defer createRes.Body.Close()

	if createRes.IsError() {
		return fmt.Errorf("failed to create index: %s", createRes.String())
	}

	log.Printf("✅ Index '%s' created successfully\n", s.index)
	return nil
}

// IndexPages implements SearchIndexService.
func (s *searchIndexService) IndexPages(ctx context.Context, pages []models.Page) error {
	if len(pages) == 0 {
		return nil
	}

	var buf bytes.Buffer
	for _, page := range pages {
		buf.WriteString(`{"index":{}}` + "\n")

		doc, err := json.Marshal(page)
		if err != nil {
			return fmt.Errorf("%w: failed to encode page %d: %v", ErrIndexingFailed, page.PageNumber, err)
		}
		buf.Write(doc)
		buf.WriteByte('\n')
	}

	res, err := s.client.Bulk(
		bytes.NewReader(buf.Bytes()),
		s.client.Bulk.WithContext(ctx),
		s.client.Bulk.WithIndex(s.index),
		s.client.Bulk.WithRefresh("true"),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIndexingFailed, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("%w: bulk request rejected: %s", ErrIndexingFailed, res.String())
	}

	var bulkResp struct {
		Errors bool `json:"errors"`
		Items  []map[string]struct {
			Status int `json:"status"`
			Error  *struct {
				Type   string `json:"type"`
				Reason string `json:"reason"`
			} `json:"error"`
		} `json:"items"`
	}
	if err := json.NewDecoder(res.Body).Decode(&bulkResp); err != nil {
		return fmt.Errorf("%w: failed to decode bulk response: %v", ErrIndexingFailed, err)
	}

	// A partial failure must not be silently ignored.
	if bulkResp.Errors {
		for _, item := range bulkResp.Items {
			for _, action := range item {
				if action.Error != nil {
					return fmt.Errorf("%w: %s: %s", ErrIndexingFailed, action.Error.Type, action.Error.Reason)
				}
			}
		}
		return fmt.Errorf("%w: bulk response reported errors", ErrIndexingFailed)
	}

	return nil
}

// Search implements SearchIndexService.
func (s *searchIndexService) Search(ctx context.Context, query string, limit int) ([]models.SearchHit, error) {
	body := map[string]interface{}{
		"query": map[string]interface{}{
			"match": map[string]interface{}{
				"content": query,
			},
		},
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, fmt.Errorf("%w: failed to encode query: %v", ErrRetrievalFailed, err)
	}

	opts := []func(*esapi.SearchRequest){
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(s.index),
		s.client.Search.WithBody(&buf),
	}
	if limit > 0 {
		opts = append(opts, s.client.Search.WithSize(limit))
	}

	res, err := s.client.Search(opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRetrievalFailed, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("%w: search rejected: %s", ErrRetrievalFailed, res.String())
	}

	var searchResp struct {
		Hits struct {
			Hits []struct {
				Score  float64     `json:"_score"`
				Source models.Page `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("%w: failed to decode search response: %v", ErrRetrievalFailed, err)
	}

	hits := make([]models.SearchHit, 0, len(searchResp.Hits.Hits))
	for _, hit := range searchResp.Hits.Hits {
		hits = append(hits, models.SearchHit{
			DocumentName: hit.Source.DocumentName,
			PageNumber:   hit.Source.PageNumber,
			Content:      hit.Source.Content,
			Link:         hit.Source.Link,
			Score:        hit.Score,
		})
	}

	return hits, nil
}

// DeleteDocument implements SearchIndexService.
func (s *searchIndexService) DeleteDocument(ctx context.Context, documentName string) (int, error) {
	body := map[string]interface{}{
		"query": map[string]interface{}{
			"term": map[string]interface{}{
				"document_name.keyword": documentName,
			},
		},
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, fmt.Errorf("failed to encode delete query: %w", err)
	}

	res, err := s.client.DeleteByQuery(
		[]string{s.index},
		&buf,
		s.client.DeleteByQuery.WithContext(ctx),
		s.client.DeleteByQuery.WithRefresh(true),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to delete document pages: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return 0, fmt.Errorf("delete rejected: %s", res.String())
	}

	var deleteResp struct {
		Deleted int `json:"deleted"`
	}
	if err := json.NewDecoder(res.Body).Decode(&deleteResp); err != nil {
		return 0, fmt.Errorf("failed to decode delete response: %w", err)
	}

	return deleteResp.Deleted, nil
}
