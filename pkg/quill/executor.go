package quill

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// Executor is the shared connection resource statements run against: single
// rows for updates, row iterations for selects. It is satisfied by both
// *sqlx.DB and *sqlx.Tx, so generated code works with a pooled connection or
// an open transaction alike. Pooling, timeouts, and retries are the
// resource's responsibility, not quill's.
type Executor interface {
	QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
	QueryxContext(ctx context.Context, query string, args ...interface{}) (*sqlx.Rows, error)
}

var (
	_ Executor = (*sqlx.DB)(nil)
	_ Executor = (*sqlx.Tx)(nil)
)
