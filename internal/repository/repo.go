package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/AndrivA89/question-forge/internal/domain"
	"github.com/AndrivA89/question-forge/internal/platform/config"
	"github.com/AndrivA89/question-forge/internal/platform/logger"
	"github.com/AndrivA89/question-forge/internal/platform/neo4jdb"
)

type Options struct {
	// MaxDepth bounds subtopic walks; 0 means unbounded.
	MaxDepth int
	LinkMode config.LinkMode
	Now      func() time.Time
	NewID    func() string
}

// CurriculumRepository is the only component that builds graph queries.
// It holds no mutable state and is safe for concurrent use.
type CurriculumRepository struct {
	client   *neo4jdb.Client
	log      *logger.Logger
	maxDepth int
	linkMode config.LinkMode
	now      func() time.Time
	newID    func() string
}

func NewCurriculumRepository(client *neo4jdb.Client, log *logger.Logger, opts Options) *CurriculumRepository {
	if log == nil {
		log = logger.Nop()
	}
	r := &CurriculumRepository{
		client:   client,
		log:      log.With("component", "CurriculumRepository"),
		maxDepth: opts.MaxDepth,
		linkMode: opts.LinkMode,
		now:      opts.Now,
		newID:    opts.NewID,
	}
	if r.linkMode == "" {
		r.linkMode = config.LinkLenient
	}
	if r.now == nil {
		r.now = time.Now
	}
	if r.newID == nil {
		r.newID = uuid.NewString
	}
	return r
}

func (r *CurriculumRepository) timestamp() time.Time {
	return r.now().UTC()
}

// fail logs the raw cause and wraps it into the caller-facing error.
func (r *CurriculumRepository) fail(op string, err error) error {
	kind := classify(err)
	switch kind {
	case KindNotFound:
		r.log.Debug("repository lookup missed", "op", op, "error", err)
	case KindInvalid:
		r.log.Debug("repository input rejected", "op", op, "error", err)
	default:
		r.log.Error("repository operation failed", "op", op, "kind", kind.String(), "error", err)
	}
	return &Error{Op: op, Kind: kind, Err: err}
}

// link runs a MATCH ... CREATE edge statement and checks that an edge was
// created. When the match finds nothing, lenient mode logs and moves on while
// strict mode fails the surrounding transaction.
func (r *CurriculumRepository) link(ctx context.Context, tx neo4j.ManagedTransaction, rel domain.RelationType, ref, query string, params map[string]any) error {
	res, err := tx.Run(ctx, query, params)
	if err != nil {
		return err
	}
	summary, err := res.Consume(ctx)
	if err != nil {
		return err
	}
	if summary.Counters().RelationshipsCreated() > 0 {
		return nil
	}
	if r.linkMode == config.LinkStrict {
		return fmt.Errorf("%s %q: %w", rel, ref, domain.ErrDanglingReference)
	}
	r.log.Warn("link matched no node, edge not created", "relation", string(rel), "ref", ref)
	return nil
}

// Health reports store connectivity and the total node count.
func (r *CurriculumRepository) Health(ctx context.Context) domain.Health {
	return r.client.Verify(ctx)
}
