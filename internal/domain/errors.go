package domain

import "errors"

var (
	ErrNotFound = errors.New("not found")
	// ErrDanglingReference marks a link step whose target id resolved to no node.
	ErrDanglingReference = errors.New("referenced node does not exist")
	// ErrInvalidInput marks arguments rejected before any query runs.
	ErrInvalidInput = errors.New("invalid input")
)
