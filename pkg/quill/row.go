package quill

import (
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Row is a column-keyed view of one fetched datastore row. Parsers extract
// typed values from it by renamed column key; the map form keeps extraction
// failures isolated per column instead of failing the whole scan.
type Row map[string]any

// RowOf drains a single sqlx row into a Row.
func RowOf(r *sqlx.Row) (Row, error) {
	row := Row{}
	if err := r.MapScan(row); err != nil {
		return nil, err
	}
	return row, nil
}

// NextRow scans the current result row of an iteration into a Row.
func NextRow(rows *sqlx.Rows) (Row, error) {
	row := Row{}
	if err := rows.MapScan(row); err != nil {
		return nil, err
	}
	return row, nil
}

// Get extracts the column under key as a T.
//
// A missing column yields the unset state, a SQL NULL yields the explicit
// absence state, and a value the driver cannot represent as T falls back to
// unset. The overall parse never aborts on a single column.
func Get[T any](row Row, key string) Null[T] {
	raw, ok := row[key]
	if !ok {
		return Undefined[T]()
	}
	if raw == nil {
		return Absent[T]()
	}
	if v, ok := raw.(T); ok {
		return NullOf(v)
	}
	if v, ok := coerce[T](raw); ok {
		return NullOf(v)
	}
	return Undefined[T]()
}

// coerce widens the handful of concrete types postgres drivers hand back
// (int64, float64, bool, []byte, string, time.Time) into the requested
// field type.
func coerce[T any](raw any) (T, bool) {
	var zero T

	switch any(zero).(type) {
	case string:
		if b, ok := raw.([]byte); ok {
			return as[T](string(b))
		}

	case []byte:
		if s, ok := raw.(string); ok {
			return as[T]([]byte(s))
		}

	case int:
		if i, ok := rawInt(raw); ok {
			return as[T](int(i))
		}
	case int16:
		if i, ok := rawInt(raw); ok {
			return as[T](int16(i))
		}
	case int32:
		if i, ok := rawInt(raw); ok {
			return as[T](int32(i))
		}
	case int64:
		if i, ok := rawInt(raw); ok {
			return as[T](i)
		}

	case float64:
		switch v := raw.(type) {
		case float32:
			return as[T](float64(v))
		case int64:
			return as[T](float64(v))
		}
	case float32:
		switch v := raw.(type) {
		case float64:
			return as[T](float32(v))
		case int64:
			return as[T](float32(v))
		}

	case bool:
		if i, ok := rawInt(raw); ok {
			return as[T](i != 0)
		}

	case time.Time:
		// Drivers deliver time.Time directly; nothing to widen.

	case []string:
		var arr pq.StringArray
		if err := arr.Scan(raw); err == nil {
			return as[T]([]string(arr))
		}
	}

	return zero, false
}

func rawInt(raw any) (int64, bool) {
	switch v := raw.(type) {
	case int64:
		return v, true
	case int32:
		return int64(v), true
	case int:
		return int64(v), true
	}
	return 0, false
}

func as[T any](v any) (T, bool) {
	t, ok := v.(T)
	return t, ok
}
