package database

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"sync"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	// ErrPoolExhausted is returned when no live connection can be obtained
	// within the bounded number of replacement attempts. It is fatal for the
	// current request, unlike a single validation failure which the pool
	// handles internally.
	ErrPoolExhausted = errors.New("connection pool exhausted")

	// ErrAcquireTimeout is returned when the caller's context expires while
	// waiting for a connection.
	ErrAcquireTimeout = errors.New("timed out acquiring connection")

	// ErrPoolClosed is returned when acquiring from a shut-down pool.
	ErrPoolClosed = errors.New("connection pool is shut down")
)

// validationStatement is the trivial no-op executed against a candidate
// connection to prove it is still alive.
const validationStatement = "SET NAMES utf8mb4"

// Pool hands out validated database connections on top of the driver pool
// underneath a gorm handle. A connection that fails validation is discarded
// so the driver pool mints a replacement; acquisition retries up to the pool
// size before giving up with ErrPoolExhausted.
type Pool struct {
	mu     sync.Mutex
	base   *sql.DB
	size   int
	closed bool
}

// Conn is a checked-out connection, owned exclusively by the caller until
// Release. DB exposes a gorm session pinned to this single connection.
type Conn struct {
	raw *sql.Conn
	db  *gorm.DB
}

// Raw returns the underlying sql.Conn.
func (c *Conn) Raw() *sql.Conn {
	return c.raw
}

// DB returns a gorm session bound to this connection.
func (c *Conn) DB() *gorm.DB {
	return c.db
}

// NewPool creates a pool manager over the sql.DB beneath db. size is the
// bounded connection count; 0 means unpooled (fresh connection per request,
// no validation).
func NewPool(db *gorm.DB, size int) (*Pool, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if size < 0 {
		size = 0
	}
	return &Pool{base: sqlDB, size: size}, nil
}

// Acquire returns a live connection. Pooled mode validates the candidate with
// a no-op statement, discards dead connections and retries with a replacement
// up to the pool size; exceeding that ceiling fails with ErrPoolExhausted.
// All pool mutation is serialized under a single lock.
func (p *Pool) Acquire(ctx context.Context) (*Conn, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, ErrPoolClosed
	}

	if p.size == 0 {
		// Unpooled: a freshly dialed connection needs no validation.
		raw, err := p.base.Conn(ctx)
		if err != nil {
			return nil, wrapAcquireErr(ctx, err)
		}
		return p.wrap(raw)
	}

	for attempt := 0; attempt < p.size; attempt++ {
		raw, err := p.base.Conn(ctx)
		if err != nil {
			return nil, wrapAcquireErr(ctx, err)
		}

		if _, err := raw.ExecContext(ctx, validationStatement); err != nil {
			if ctx.Err() != nil {
				_ = raw.Close()
				return nil, fmt.Errorf("%w: %v", ErrAcquireTimeout, ctx.Err())
			}
			// Connection might have died. Mark it bad so the driver pool
			// replaces it, then retry with the next candidate.
			discard(raw)
			continue
		}

		return p.wrap(raw)
	}

	return nil, fmt.Errorf("%w: %d replacement attempts failed", ErrPoolExhausted, p.size)
}

// Release returns a connection to the pool.
func (p *Pool) Release(c *Conn) {
	if c == nil || c.raw == nil {
		return
	}
	_ = c.raw.Close()
	c.raw = nil
	c.db = nil
}

// Shutdown drains and closes all connections. It is idempotent and safe to
// call from a termination signal handler.
func (p *Pool) Shutdown() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	p.closed = true
	_ = p.base.Close()
}

// Stats reports the in-use and idle connection counts of the driver pool.
func (p *Pool) Stats() (inUse, idle int) {
	s := p.base.Stats()
	return s.InUse, s.Idle
}

// wrap builds the caller-facing Conn with a gorm session pinned to raw.
func (p *Pool) wrap(raw *sql.Conn) (*Conn, error) {
	gdb, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      raw,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		_ = raw.Close()
		return nil, fmt.Errorf("failed to open session on connection: %w", err)
	}
	return &Conn{raw: raw, db: gdb}, nil
}

// discard marks raw as bad so the driver pool drops it instead of reusing it.
func discard(raw *sql.Conn) {
	_ = raw.Raw(func(driverConn any) error {
		return driver.ErrBadConn
	})
	_ = raw.Close()
}

func wrapAcquireErr(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return fmt.Errorf("%w: %v", ErrAcquireTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrPoolExhausted, err)
}
