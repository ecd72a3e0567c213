package core

import (
	"errors"
)

// Loading error taxonomy. Every failure recorded on a cache entry wraps one
// of these sentinels so callers can classify with errors.Is.
var (
	// ErrNotFound indicates a resource path could not be resolved against
	// any search path.
	ErrNotFound = errors.New("resource not found")
	// ErrNoImporter indicates no registered importer claims the format.
	ErrNoImporter = errors.New("no importer for format")
	// ErrDecodeFailed indicates an importer rejected the raw bytes.
	ErrDecodeFailed = errors.New("decode failed")
	// ErrIO indicates the storage collaborator failed while reading bytes.
	ErrIO = errors.New("i/o failure")
)
