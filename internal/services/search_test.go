package services

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docuseek/internal/config"
	"docuseek/internal/models"
)

// newTestIndexService spins up a fake Elasticsearch endpoint. The product
// header must be present on every response or the client refuses to talk.
func newTestIndexService(t *testing.T, handler http.HandlerFunc) SearchIndexService {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	svc, err := NewSearchIndexService(config.ElasticConfig{
		URL:   server.URL,
		Index: "pdf_documents",
	})
	require.NoError(t, err)
	return svc
}

func TestEnsureIndexSkipsExisting(t *testing.T) {
	created := false
	svc := newTestIndexService(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodHead && r.URL.Path == "/pdf_documents":
			w.WriteHeader(http.StatusOK)
		case r.Method == http.MethodPut && r.URL.Path == "/pdf_documents":
			created = true
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"acknowledged":true}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	require.NoError(t, svc.EnsureIndex(context.Background()))
	assert.False(t, created, "an existing index must not be recreated")
}

func TestEnsureIndexCreatesWithMapping(t *testing.T) {
	var mappingBody string
	svc := newTestIndexService(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodHead && r.URL.Path == "/pdf_documents":
			w.WriteHeader(http.StatusNotFound)
		case r.Method == http.MethodPut && r.URL.Path == "/pdf_documents":
			body, _ := io.ReadAll(r.Body)
			mappingBody = string(body)
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"acknowledged":true}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	require.NoError(t, svc.EnsureIndex(context.Background()))
	assert.Contains(t, mappingBody, `"page_number"`)
	assert.Contains(t, mappingBody, `"keyword"`)
}

func TestIndexPagesSubmitsSingleBulkRequest(t *testing.T) {
	var bulkCalls int
	var bulkBody string
	svc := newTestIndexService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/pdf_documents/_bulk" {
			bulkCalls++
			body, _ := io.ReadAll(r.Body)
			bulkBody = string(body)
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"errors":false,"items":[{"index":{"status":201}},{"index":{"status":201}}]}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})

	pages := []models.Page{
		{DocumentName: "report", PageNumber: 1, Content: "alpha", Link: "http://cdn/x.pdf#page=1"},
		{DocumentName: "report", PageNumber: 2, Content: "beta", Link: "http://cdn/x.pdf#page=2"},
	}

	require.NoError(t, svc.IndexPages(context.Background(), pages))
	assert.Equal(t, 1, bulkCalls)

	lines := strings.Split(strings.TrimRight(bulkBody, "\n"), "\n")
	assert.Len(t, lines, 4, "one action line and one document line per page")
	assert.Contains(t, bulkBody, `"page_number":1`)
	assert.Contains(t, bulkBody, `"link":"http://cdn/x.pdf#page=2"`)
}

func TestIndexPagesSurfacesPartialBulkFailure(t *testing.T) {
	svc := newTestIndexService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"errors":true,"items":[` +
			`{"index":{"status":201}},` +
			`{"index":{"status":400,"error":{"type":"mapper_parsing_exception","reason":"boom"}}}]}`))
	})

	err := svc.IndexPages(context.Background(), []models.Page{
		{DocumentName: "report", PageNumber: 1},
		{DocumentName: "report", PageNumber: 2},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIndexingFailed)
	assert.Contains(t, err.Error(), "mapper_parsing_exception")
}

func TestIndexPagesNoopOnEmptyInput(t *testing.T) {
	svc := newTestIndexService(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected for an empty page set")
	})

	require.NoError(t, svc.IndexPages(context.Background(), nil))
}

func TestSearchProjectsHitsInEngineOrder(t *testing.T) {
	var searchBody string
	svc := newTestIndexService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/pdf_documents/_search" {
			body, _ := io.ReadAll(r.Body)
			searchBody = string(body)
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"hits":{"hits":[` +
				`{"_score":2.4,"_source":{"document_name":"report","page_number":7,"content":"alpha","link":"http://cdn/x.pdf#page=7"}},` +
				`{"_score":1.1,"_source":{"document_name":"manual","page_number":2,"content":"beta","link":"http://cdn/y.pdf#page=2"}}]}}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})

	hits, err := svc.Search(context.Background(), "alpha beta", 0)
	require.NoError(t, err)

	assert.Contains(t, searchBody, `"match"`)
	assert.Contains(t, searchBody, `"content":"alpha beta"`)

	require.Len(t, hits, 2)
	assert.Equal(t, "report", hits[0].DocumentName)
	assert.Equal(t, 7, hits[0].PageNumber)
	assert.Equal(t, 2.4, hits[0].Score)
	assert.Equal(t, "http://cdn/y.pdf#page=2", hits[1].Link)
}

func TestSearchPassesLimitThrough(t *testing.T) {
	var sizeParam string
	svc := newTestIndexService(t, func(w http.ResponseWriter, r *http.Request) {
		sizeParam = r.URL.Query().Get("size")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"hits":{"hits":[]}}`))
	})

	hits, err := svc.Search(context.Background(), "anything", 5)
	require.NoError(t, err)
	assert.Equal(t, "5", sizeParam)
	assert.Empty(t, hits)
}

func TestSearchEmptyResultIsNotAnError(t *testing.T) {
	svc := newTestIndexService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"hits":{"hits":[]}}`))
	})

	hits, err := svc.Search(context.Background(), "no such phrase", 0)
	require.NoError(t, err)
	assert.NotNil(t, hits)
	assert.Empty(t, hits)
}

func TestSearchFailureIsHardError(t *testing.T) {
	svc := newTestIndexService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"type":"search_phase_execution_exception"}}`))
	})

	_, err := svc.Search(context.Background(), "anything", 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRetrievalFailed)
}

func TestDeleteDocumentReturnsDeletedCount(t *testing.T) {
	var deleteBody string
	svc := newTestIndexService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/pdf_documents/_delete_by_query" {
			body, _ := io.ReadAll(r.Body)
			deleteBody = string(body)
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"deleted":4}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})

	deleted, err := svc.DeleteDocument(context.Background(), "report")
	require.NoError(t, err)
	assert.Equal(t, 4, deleted)
	assert.Contains(t, deleteBody, `"document_name.keyword":"report"`)
}
