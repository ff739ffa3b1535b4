package server

import "errors"

var (
	// ErrResponderRequired is returned when no responder is provided.
	ErrResponderRequired = errors.New("responder is required")

	// ErrIngestorRequired is returned when no ingestor is provided.
	ErrIngestorRequired = errors.New("ingestor is required")
)
