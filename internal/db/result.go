package db

import (
	"database/sql"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ResultSet is the first result set of an execution, fully buffered.
type ResultSet struct {
	Columns []string
	Rows    []Row
}

// Row is one buffered row. Lookups are by exact, case-sensitive column name.
// Missing columns and NULL values both read as the zero value of the requested type.
type Row struct {
	index  map[string]int
	values []any
}

// NewResultSet builds a ResultSet from literal values; each entry of rows is
// ordered like columns.
func NewResultSet(columns []string, rows ...[]any) ResultSet {
	index := columnIndex(columns)
	rs := ResultSet{Columns: columns, Rows: make([]Row, 0, len(rows))}
	for _, values := range rows {
		rs.Rows = append(rs.Rows, Row{index: index, values: values})
	}
	return rs
}

func columnIndex(columns []string) map[string]int {
	index := make(map[string]int, len(columns))
	for i, col := range columns {
		if _, dup := index[col]; !dup {
			index[col] = i
		}
	}
	return index
}

func (rs ResultSet) HasData() bool {
	return len(rs.Rows) > 0
}

// First returns the first row, or false when the set is empty or the row carries no fields.
func (rs ResultSet) First() (Row, bool) {
	if !rs.HasData() || !rs.Rows[0].HasData() {
		return Row{}, false
	}
	return rs.Rows[0], true
}

// MapRows converts every row with fn. An empty set yields nil, never a single zero record.
func MapRows[T any](rs ResultSet, fn func(Row) T) []T {
	if !rs.HasData() {
		return nil
	}
	out := make([]T, 0, len(rs.Rows))
	for _, row := range rs.Rows {
		out = append(out, fn(row))
	}
	return out
}

func (r Row) HasData() bool {
	return len(r.values) > 0
}

func (r Row) Has(col string) bool {
	_, ok := r.index[col]
	return ok
}

// Value returns the raw value; ok is false for missing columns and NULLs.
func (r Row) Value(col string) (any, bool) {
	i, ok := r.index[col]
	if !ok || i >= len(r.values) || r.values[i] == nil {
		return nil, false
	}
	return r.values[i], true
}

func (r Row) String(col string) string {
	v, ok := r.Value(col)
	if !ok {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case []byte:
		return string(t)
	case time.Time:
		return t.Format(time.RFC3339Nano)
	default:
		return fmt.Sprint(t)
	}
}

func (r Row) Int(col string) int {
	n := r.Int64(col)
	if n > math.MaxInt || n < math.MinInt {
		return 0
	}
	return int(n)
}

func (r Row) Int64(col string) int64 {
	v, ok := r.Value(col)
	if !ok {
		return 0
	}
	n, _ := toInt64(v)
	return n
}

func (r Row) Float(col string) float64 {
	v, ok := r.Value(col)
	if !ok {
		return 0
	}
	switch t := v.(type) {
	case float64:
		return t
	case float32:
		return float64(t)
	case string, []byte:
		f, err := strconv.ParseFloat(strings.TrimSpace(asString(t)), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		n, _ := toInt64(t)
		return float64(n)
	}
}

func (r Row) Bool(col string) bool {
	v, ok := r.Value(col)
	if !ok {
		return false
	}
	switch t := v.(type) {
	case bool:
		return t
	case string, []byte:
		b, _ := strconv.ParseBool(strings.TrimSpace(asString(t)))
		return b
	default:
		n, _ := toInt64(t)
		return n != 0
	}
}

func (r Row) Time(col string) time.Time {
	v, ok := r.Value(col)
	if !ok {
		return time.Time{}
	}
	switch t := v.(type) {
	case time.Time:
		return t
	case string, []byte:
		parsed, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(asString(t)))
		if err != nil {
			return time.Time{}
		}
		return parsed
	default:
		return time.Time{}
	}
}

func asString(v any) string {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	s, _ := v.(string)
	return s
}

// toInt64 coerces driver values to an integer. SQL Server hands DECIMAL
// (SCOPE_IDENTITY) back as []byte, so text is parsed as well.
func toInt64(v any) (int64, error) {
	switch t := v.(type) {
	case nil:
		return 0, nil
	case int64:
		return t, nil
	case int32:
		return int64(t), nil
	case int16:
		return int64(t), nil
	case int8:
		return int64(t), nil
	case int:
		return int64(t), nil
	case uint8:
		return int64(t), nil
	case float64:
		return int64(t), nil
	case float32:
		return int64(t), nil
	case bool:
		if t {
			return 1, nil
		}
		return 0, nil
	case string, []byte:
		s := strings.TrimSpace(asString(t))
		if s == "" {
			return 0, nil
		}
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("value %q is not numeric", s)
		}
		return int64(f), nil
	default:
		return 0, fmt.Errorf("unsupported scalar type %T", v)
	}
}

func collectRows(rows *sql.Rows) (ResultSet, error) {
	cols, err := rows.Columns()
	if err != nil {
		return ResultSet{}, err
	}

	index := columnIndex(cols)
	rs := ResultSet{Columns: cols, Rows: make([]Row, 0)}
	for rows.Next() {
		values := make([]any, len(cols))
		scanArgs := make([]any, len(cols))
		for i := range values {
			scanArgs[i] = &values[i]
		}

		if err := rows.Scan(scanArgs...); err != nil {
			return ResultSet{}, err
		}

		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		rs.Rows = append(rs.Rows, Row{index: index, values: values})
	}
	if err := rows.Err(); err != nil {
		return ResultSet{}, err
	}

	return rs, nil
}
