package models

// Page is the atomic indexed unit: one record per page of an uploaded PDF.
// Field names match the search index mapping.
type Page struct {
	DocumentName string `json:"document_name"`
	PageNumber   int    `json:"page_number"`
	Content      string `json:"content"`
	Link         string `json:"link"`
}

// SearchHit is one ranked result returned by the search index, projected to
// the fields clients care about. Score is the engine-native relevance score.
type SearchHit struct {
	DocumentName string  `json:"document_name"`
	PageNumber   int     `json:"page_number"`
	Content      string  `json:"content"`
	Link         string  `json:"link"`
	Score        float64 `json:"score"`
}

// PageText is one extracted page before indexing: its 1-based ordinal and the
// whitespace-trimmed plain text (empty for blank or image-only pages).
type PageText struct {
	Number  int
	Content string
}
