package domain

import "errors"

var (
	// ErrTemplate signals that the search template could not be loaded.
	ErrTemplate = errors.New("template unavailable")
	// ErrCompose signals that the query could not be composed from the template.
	ErrCompose = errors.New("query composition failed")
	// ErrBackendUnreachable signals a transport failure talking to the search backend.
	ErrBackendUnreachable = errors.New("search backend unreachable")
)
