package constant

import "errors"

var (
	// ErrNoContentExtracted is terminal for an ingestion run: the document
	// yielded zero chunks after extraction, merge and image steps.
	ErrNoContentExtracted = errors.New("no text extracted from document")

	// ErrExtractionFailed marks a document that could not be opened at all.
	ErrExtractionFailed = errors.New("document could not be parsed")

	ErrUnknownSourceKind = errors.New("unknown source kind")
	ErrUnknownSourceType = errors.New("unknown source type")

	ErrDocumentNotFound  = errors.New("document not found")
	ErrDocumentNotIdle   = errors.New("document is already being processed")
	ErrEmptyQuery        = errors.New("query must not be empty")
)
