package quill

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	row := Row{
		"users_id":    "u1",
		"users_name":  []byte("Ada"),
		"users_email": nil,
		"users_age":   int64(36),
		"created":     now,
	}

	t.Run("direct type match", func(t *testing.T) {
		n := Get[string](row, "users_id")
		assert.True(t, n.IsSet())
		assert.Equal(t, "u1", n.OrZero())
	})

	t.Run("missing column is unset", func(t *testing.T) {
		assert.True(t, Get[string](row, "users_nickname").IsUnset())
	})

	t.Run("SQL NULL is explicit absence", func(t *testing.T) {
		n := Get[string](row, "users_email")
		assert.True(t, n.IsNull())
		assert.False(t, n.IsUnset())
	})

	t.Run("type mismatch falls back to unset", func(t *testing.T) {
		assert.True(t, Get[bool](row, "users_id").IsUnset())
	})

	t.Run("time passes through", func(t *testing.T) {
		assert.Equal(t, now, Get[time.Time](row, "created").OrZero())
	})
}

func TestGetCoercions(t *testing.T) {
	t.Run("bytes to string", func(t *testing.T) {
		n := Get[string](Row{"k": []byte("Ada")}, "k")
		assert.Equal(t, "Ada", n.OrZero())
	})

	t.Run("string to bytes", func(t *testing.T) {
		n := Get[[]byte](Row{"k": "Ada"}, "k")
		assert.Equal(t, []byte("Ada"), n.OrZero())
	})

	t.Run("int64 narrows to int", func(t *testing.T) {
		assert.Equal(t, 36, Get[int](Row{"k": int64(36)}, "k").OrZero())
	})

	t.Run("int32 widens to int64", func(t *testing.T) {
		assert.Equal(t, int64(7), Get[int64](Row{"k": int32(7)}, "k").OrZero())
	})

	t.Run("int64 to float64", func(t *testing.T) {
		assert.Equal(t, 2.0, Get[float64](Row{"k": int64(2)}, "k").OrZero())
	})

	t.Run("int to bool", func(t *testing.T) {
		assert.True(t, Get[bool](Row{"k": int64(1)}, "k").OrZero())
		assert.False(t, Get[bool](Row{"k": int64(0)}, "k").OrZero())
	})

	t.Run("postgres array literal to string slice", func(t *testing.T) {
		n := Get[[]string](Row{"k": []byte(`{go,sql}`)}, "k")
		assert.Equal(t, []string{"go", "sql"}, n.OrZero())
	})
}
