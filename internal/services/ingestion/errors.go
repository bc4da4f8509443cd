package ingestion

import "errors"

// Fatal ingestion errors. Per-file extraction failures are logged and
// skipped, never surfaced through these.
var (
	// ErrEmptyResult indicates no content could be extracted from any
	// candidate file. No partial project is created.
	ErrEmptyResult = errors.New("ingestion: no content could be extracted from folder")

	// ErrMalformedStructuring indicates the LLM response could not be parsed
	// into the expected JSON shape. No partial project is created.
	ErrMalformedStructuring = errors.New("ingestion: structuring response could not be parsed")
)
