package core

import "fmt"

// GatewayError wraps a failure of an external collaborator (LLM API,
// embedding gateway). Gateway failures are request-level: no partial report
// is returned and the caller decides whether to retry the whole request.
type GatewayError struct {
	Gateway string
	Message string
	Err     error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("%s gateway: %s", e.Gateway, e.Message)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// SourceError wraps an asset catalogue read failure. It is recoverable: the
// pipeline degrades to an extraction-only result with an empty compliance map.
type SourceError struct {
	Source  string
	Message string
	Err     error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("asset source %s: %s", e.Source, e.Message)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// IngestError wraps a document ingestion failure (unreadable upload, empty
// text). The server maps it to a client error.
type IngestError struct {
	Message string
	Err     error
}

func (e *IngestError) Error() string {
	return fmt.Sprintf("ingest: %s", e.Message)
}

func (e *IngestError) Unwrap() error {
	return e.Err
}
