package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/AndrivA89/question-forge/internal/domain"
	"github.com/AndrivA89/question-forge/internal/platform/neo4jdb"
)

type Kind int

const (
	KindStore Kind = iota
	KindUnavailable
	KindNotFound
	KindInvalid
)

func (k Kind) String() string {
	switch k {
	case KindUnavailable:
		return "unavailable"
	case KindNotFound:
		return "not_found"
	case KindInvalid:
		return "invalid"
	default:
		return "store"
	}
}

// Error is returned by every repository operation. Its message is safe to
// show to users; the driver error stays reachable through Unwrap.
type Error struct {
	Op   string
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Kind == KindNotFound || e.Kind == KindInvalid {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, neo4jdb.Describe(e.Err))
}

func (e *Error) Unwrap() error { return e.Err }

func classify(err error) Kind {
	var neoErr *neo4j.Neo4jError
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return KindInvalid
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrDanglingReference):
		return KindNotFound
	case errors.Is(err, neo4jdb.ErrClosed), neo4j.IsConnectivityError(err):
		return KindUnavailable
	case errors.As(err, &neoErr) && strings.HasPrefix(neoErr.Code, "Neo.TransientError"):
		return KindUnavailable
	default:
		return KindStore
	}
}

// KindOf reports the kind of a repository error, KindStore for anything else.
func KindOf(err error) Kind {
	var repoErr *Error
	if errors.As(err, &repoErr) {
		return repoErr.Kind
	}
	return KindStore
}

// Sentinels callers may match with errors.Is on repository errors.
var (
	ErrNotFound          = domain.ErrNotFound
	ErrDanglingReference = domain.ErrDanglingReference
	ErrInvalidInput      = domain.ErrInvalidInput
)
