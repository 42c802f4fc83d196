package service

import "errors"

// Fatal build errors surfaced to the caller. Per-source and per-enrichment
// failures never become errors; they are carried as statuses on the
// records and results and degrade the merged profile instead.
var (
	// ErrInvalidRequest marks an empty or malformed build request,
	// rejected before any fetch is dispatched.
	ErrInvalidRequest = errors.New("invalid build request")

	// ErrNoUsableData marks a build where every source failed and no
	// profile field could be populated. Nothing is persisted.
	ErrNoUsableData = errors.New("no usable data from any source")
)
