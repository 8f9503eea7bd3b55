package ingest

import "fmt"

// FetchError reports that the external source could not be fetched. Fetch
// failures are never retried and happen before any storage write, so no
// recovery is needed for them.
type FetchError struct {
	Source string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch records from source %q: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ExtractionError reports that a declared attribute could not be derived
// from a record: a missing key, a malformed date, a missing nested entry.
// It aborts the record's remaining writes and fails the whole run.
type ExtractionError struct {
	Field string
	Err   error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract field %q: %v", e.Field, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }
