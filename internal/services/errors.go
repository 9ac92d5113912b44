package services

import "errors"

// Ingestion and retrieval error taxonomy. Ingestion errors are all-or-nothing:
// nothing is indexed unless extraction and upload both succeeded, and a bulk
// rejection leaves the file uploaded but unsearchable. Generation failures are
// deliberately absent here; they degrade to a fixed answer string instead of
// failing the request.
var (
	// ErrMalformedDocument means the uploaded bytes could not be parsed as a PDF.
	ErrMalformedDocument = errors.New("malformed document")

	// ErrUploadFailed means the object store rejected the file or was unreachable.
	ErrUploadFailed = errors.New("upload failed")

	// ErrIndexingFailed means the bulk write was rejected in whole or in part.
	ErrIndexingFailed = errors.New("indexing failed")

	// ErrRetrievalFailed means the search index was unreachable or errored.
	ErrRetrievalFailed = errors.New("retrieval failed")
)
