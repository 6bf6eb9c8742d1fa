package audit

import "errors"

var (
	// ErrStorageNotAvailable indicates the storage backend has shut down
	ErrStorageNotAvailable = errors.New("storage backend is unavailable")

	// ErrIndexingFailed indicates OpenSearch rejected a decision event
	ErrIndexingFailed = errors.New("failed to index decision event")
)
