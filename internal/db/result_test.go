package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRowAccessors(t *testing.T) {
	when := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	rs := NewResultSet(
		[]string{"Id", "Name", "Score", "Open", "Created", "Total", "Missing"},
		[]any{int32(5), "Pasta House", 4.5, true, when, "17.00", nil},
	)

	row, ok := rs.First()
	assert.True(t, ok)
	assert.Equal(t, 5, row.Int("Id"))
	assert.Equal(t, int64(5), row.Int64("Id"))
	assert.Equal(t, "Pasta House", row.String("Name"))
	assert.Equal(t, 4.5, row.Float("Score"))
	assert.True(t, row.Bool("Open"))
	assert.Equal(t, when, row.Time("Created"))
	assert.Equal(t, 17, row.Int("Total"))
	assert.Equal(t, "5", row.String("Id"))

	assert.True(t, row.Has("Missing"))
	assert.Equal(t, "", row.String("Missing"))
	assert.Equal(t, 0, row.Int("Missing"))
	assert.True(t, row.Time("Missing").IsZero())
}

func TestColumnNamesAreCaseSensitive(t *testing.T) {
	rs := NewResultSet([]string{"Name"}, []any{"Pasta House"})
	row := rs.Rows[0]

	assert.Equal(t, "Pasta House", row.String("Name"))
	assert.False(t, row.Has("name"))
	assert.Equal(t, "", row.String("name"))
}

func TestMismatchedTypesReadAsZero(t *testing.T) {
	rs := NewResultSet([]string{"Id", "When"}, []any{"abc", 12})
	row := rs.Rows[0]

	assert.Equal(t, 0, row.Int("Id"))
	assert.True(t, row.Time("When").IsZero())
}

func TestEmptySignals(t *testing.T) {
	empty := NewResultSet([]string{"Id"})
	assert.False(t, empty.HasData())
	_, ok := empty.First()
	assert.False(t, ok)

	mapped := MapRows(empty, func(r Row) int { return r.Int("Id") })
	assert.Nil(t, mapped)

	noFields := NewResultSet(nil, []any{})
	assert.True(t, noFields.HasData())
	_, ok = noFields.First()
	assert.False(t, ok, "a row with zero fields is absent")
}

func TestMapRows(t *testing.T) {
	rs := NewResultSet([]string{"Id"}, []any{int64(1)}, []any{int64(2)}, []any{nil})
	ids := MapRows(rs, func(r Row) int { return r.Int("Id") })
	assert.Equal(t, []int{1, 2, 0}, ids)
}

func TestToInt64(t *testing.T) {
	tests := []struct {
		in      any
		want    int64
		wantErr bool
	}{
		{in: nil, want: 0},
		{in: int64(3), want: 3},
		{in: 3.0, want: 3},
		{in: []byte("12"), want: 12},
		{in: "12.0000", want: 12},
		{in: " ", want: 0},
		{in: "x", wantErr: true},
		{in: struct{}{}, wantErr: true},
	}
	for _, tt := range tests {
		got, err := toInt64(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "%v", tt.in)
			continue
		}
		assert.NoError(t, err, "%v", tt.in)
		assert.Equal(t, tt.want, got, "%v", tt.in)
	}
}
