package neo4jdb

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/AndrivA89/question-forge/internal/domain"
	"github.com/AndrivA89/question-forge/internal/platform/config"
	"github.com/AndrivA89/question-forge/internal/platform/logger"
)

// ErrClosed is returned by every operation on a client whose driver has
// been closed or was never opened.
var ErrClosed = errors.New("neo4jdb: client is closed")

// Client owns the process-wide driver. It is built once at start-up, shared
// by every repository and closed once at shutdown.
type Client struct {
	Driver   neo4j.DriverWithContext
	Database string
	log      *logger.Logger
}

func New(ctx context.Context, cfg config.Neo4jConfig, log *logger.Logger) (*Client, error) {
	if log == nil {
		return nil, fmt.Errorf("neo4jdb: logger required")
	}
	if strings.TrimSpace(cfg.URI) == "" {
		return nil, fmt.Errorf("neo4jdb: uri required")
	}

	auth := neo4j.BasicAuth(cfg.User, cfg.Password, "")
	driver, err := neo4j.NewDriverWithContext(cfg.URI, auth, func(c *neo4j.Config) {
		if cfg.MaxPoolSize > 0 {
			c.MaxConnectionPoolSize = cfg.MaxPoolSize
		}
		if cfg.Timeout > 0 {
			c.SocketConnectTimeout = cfg.Timeout
		}
	})
	if err != nil {
		return nil, fmt.Errorf("neo4jdb: init driver: %w", err)
	}

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("neo4jdb: verify connectivity: %w", err)
	}

	return NewWithDriver(driver, cfg.Database, log), nil
}

// NewWithDriver wraps an already opened driver.
func NewWithDriver(driver neo4j.DriverWithContext, database string, log *logger.Logger) *Client {
	if log == nil {
		log = logger.Nop()
	}
	return &Client{
		Driver:   driver,
		Database: database,
		log:      log.With("client", "Neo4jDB"),
	}
}

func (c *Client) Close(ctx context.Context) error {
	if c == nil || c.Driver == nil {
		return nil
	}
	err := c.Driver.Close(ctx)
	c.Driver = nil
	return err
}

// RunWrite executes work in a write transaction. The transaction commits when
// work returns nil and rolls back otherwise; the session is closed on every path.
func RunWrite[T any](ctx context.Context, c *Client, work func(tx neo4j.ManagedTransaction) (T, error)) (T, error) {
	return run(ctx, c, neo4j.AccessModeWrite, work)
}

// RunRead executes work in a read transaction.
func RunRead[T any](ctx context.Context, c *Client, work func(tx neo4j.ManagedTransaction) (T, error)) (T, error) {
	return run(ctx, c, neo4j.AccessModeRead, work)
}

func run[T any](ctx context.Context, c *Client, mode neo4j.AccessMode, work func(tx neo4j.ManagedTransaction) (T, error)) (T, error) {
	var zero T
	if c == nil || c.Driver == nil {
		return zero, ErrClosed
	}

	session := c.Driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   mode,
		DatabaseName: c.Database,
	})
	defer func() {
		if err := session.Close(ctx); err != nil {
			c.log.Warn("neo4j session close failed", "error", err)
		}
	}()

	fn := func(tx neo4j.ManagedTransaction) (any, error) {
		return work(tx)
	}

	var (
		out any
		err error
	)
	if mode == neo4j.AccessModeWrite {
		out, err = session.ExecuteWrite(ctx, fn)
	} else {
		out, err = session.ExecuteRead(ctx, fn)
	}
	if err != nil {
		return zero, err
	}
	v, _ := out.(T)
	return v, nil
}

// Verify runs a trivial read and reports connectivity plus the node count.
// It never returns an error: failures are folded into the returned status.
func (c *Client) Verify(ctx context.Context) domain.Health {
	count, err := RunRead(ctx, c, func(tx neo4j.ManagedTransaction) (int64, error) {
		res, err := tx.Run(ctx, `MATCH (n) RETURN count(n) AS count`, nil)
		if err != nil {
			return 0, err
		}
		record, err := res.Single(ctx)
		if err != nil {
			return 0, err
		}
		v, _ := record.Get("count")
		n, _ := v.(int64)
		return n, nil
	})
	if err != nil {
		if c != nil && c.log != nil {
			c.log.Warn("neo4j health check failed", "error", err)
		}
		return domain.Health{Status: domain.HealthError, Message: Describe(err)}
	}
	return domain.Health{Status: domain.HealthConnected, NodeCount: count}
}

// Initialize declares a uniqueness constraint on the identity property of
// every entity label. It is idempotent and safe to call on every start.
func (c *Client) Initialize(ctx context.Context) error {
	if c == nil || c.Driver == nil {
		return ErrClosed
	}
	session := c.Driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: c.Database,
	})
	defer session.Close(ctx)

	for _, q := range ConstraintStatements() {
		res, err := session.Run(ctx, q, nil)
		if err != nil {
			return fmt.Errorf("neo4jdb: create constraint: %w", err)
		}
		if _, err := res.Consume(ctx); err != nil {
			return fmt.Errorf("neo4jdb: create constraint: %w", err)
		}
	}
	c.log.Info("neo4j constraints ensured", "count", len(domain.Labels))
	return nil
}

// ConstraintStatements returns the schema statements issued by Initialize.
func ConstraintStatements() []string {
	stmts := make([]string, 0, len(domain.Labels))
	for _, label := range domain.Labels {
		key := label.IdentityKey()
		name := strings.ToLower(string(label)) + "_" + key
		stmts = append(stmts, fmt.Sprintf(
			"CREATE CONSTRAINT %s IF NOT EXISTS FOR (n:%s) REQUIRE n.%s IS UNIQUE",
			name, label, key,
		))
	}
	return stmts
}

// Describe turns a driver error into a message fit for callers. Raw driver
// text stays in the logs.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrClosed) {
		return "graph store connection is closed"
	}
	if neo4j.IsConnectivityError(err) {
		return "graph store is unreachable"
	}
	var neoErr *neo4j.Neo4jError
	if errors.As(err, &neoErr) {
		if strings.HasPrefix(neoErr.Code, "Neo.ClientError.Security") {
			return "graph store rejected the credentials"
		}
		if strings.HasPrefix(neoErr.Code, "Neo.TransientError") {
			return "graph store is temporarily unavailable"
		}
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return "graph store request timed out or was cancelled"
	}
	return "graph store query failed"
}
