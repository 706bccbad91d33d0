package service

import "errors"

var (
	// ErrBusy means a turn is already in flight; submissions are rejected
	// rather than queued.
	ErrBusy = errors.New("a message is already being processed")

	// ErrNoRelevantDocType means the selector found no DocType worth
	// querying. Raised before any schema fetch or query execution.
	ErrNoRelevantDocType = errors.New("I couldn't find any relevant DocTypes for your question")

	// ErrSchemaUnavailable means every per-DocType schema fetch failed.
	ErrSchemaUnavailable = errors.New("failed to retrieve schema details for the selected DocTypes")
)
