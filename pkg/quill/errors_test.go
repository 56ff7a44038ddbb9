package quill

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotFound(t *testing.T) {
	err := NotFound("users")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "no matching record(s) found in users table")

	var qerr *Error
	require.True(t, errors.As(err, &qerr))
	assert.Equal(t, "fetch", qerr.Op)
	assert.Equal(t, "users", qerr.Table)
}

func TestParsePostgresError(t *testing.T) {
	tests := []struct {
		name       string
		input      error
		sentinel   error
		constraint string
		column     string
	}{
		{
			name:     "no rows is not found",
			input:    sql.ErrNoRows,
			sentinel: ErrNotFound,
		},
		{
			name:       "duplicate key",
			input:      fmt.Errorf(`pq: duplicate key value violates unique constraint "users_email_key"`),
			sentinel:   ErrDuplicateKey,
			constraint: "users_email_key",
		},
		{
			name:       "foreign key",
			input:      fmt.Errorf(`pq: insert or update violates foreign key constraint "posts_author_fkey"`),
			sentinel:   ErrForeignKey,
			constraint: "posts_author_fkey",
		},
		{
			name:     "not null",
			input:    fmt.Errorf(`pq: null value in column "email" violates not-null constraint`),
			sentinel: ErrNotNull,
			column:   "email",
		},
		{
			name:       "check constraint",
			input:      fmt.Errorf(`pq: new row violates check constraint "users_age_check"`),
			sentinel:   ErrCheckConstraint,
			constraint: "users_age_check",
		},
		{
			name:     "context canceled",
			input:    fmt.Errorf("driver: context canceled"),
			sentinel: ErrCanceled,
		},
		{
			name:     "connection refused",
			input:    fmt.Errorf("dial tcp 127.0.0.1:5432: connection refused"),
			sentinel: ErrConnectionFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ParsePostgresError(tt.input, "update", "users")
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.sentinel))

			var qerr *Error
			require.True(t, errors.As(err, &qerr))
			if tt.constraint != "" {
				assert.Equal(t, tt.constraint, qerr.Constraint)
			}
			if tt.column != "" {
				assert.Equal(t, tt.column, qerr.Column)
			}
		})
	}

	t.Run("nil passes through", func(t *testing.T) {
		assert.NoError(t, ParsePostgresError(nil, "fetch", "users"))
	})

	t.Run("unknown errors keep their cause", func(t *testing.T) {
		cause := errors.New("something odd")
		err := ParsePostgresError(cause, "fetch", "users")
		assert.True(t, errors.Is(err, cause))
	})
}

func TestErrorFormatting(t *testing.T) {
	err := &Error{
		Op:         "update",
		Table:      "users",
		Column:     "email",
		Constraint: "users_email_key",
		Err:        ErrDuplicateKey,
	}
	msg := err.Error()
	assert.Contains(t, msg, "quill: update")
	assert.Contains(t, msg, "table=users")
	assert.Contains(t, msg, "column=email")
	assert.Contains(t, msg, "constraint=users_email_key")
	assert.Contains(t, msg, ErrDuplicateKey.Error())
}
