// Package dbtest wires go-sqlmock so that table-valued parameters survive
// argument conversion and can be asserted on.
package dbtest

import (
	"database/sql"
	"database/sql/driver"
	"reflect"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	mssql "github.com/microsoft/go-mssqldb"
)

type tvpConverter struct{}

func (tvpConverter) ConvertValue(v any) (driver.Value, error) {
	if _, ok := v.(mssql.TVP); ok {
		return v, nil
	}
	return driver.DefaultParameterConverter.ConvertValue(v)
}

// New returns a mock database that accepts mssql.TVP arguments. The mock is
// closed and its expectations verified when the test ends.
func New(t testing.TB) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	dbConn, mock, err := sqlmock.New(sqlmock.ValueConverterOption(tvpConverter{}))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet sql expectations: %v", err)
		}
		_ = dbConn.Close()
	})
	return dbConn, mock
}

// Table matches a table-valued parameter of the given type carrying rows rows.
type Table struct {
	TypeName string
	Rows     int
	// Check, when set, receives the row slice for deeper assertions.
	Check func(rows any) bool
}

func (m Table) Match(v driver.Value) bool {
	tvp, ok := v.(mssql.TVP)
	if !ok {
		return false
	}
	if m.TypeName != "" && tvp.TypeName != m.TypeName {
		return false
	}
	rv := reflect.ValueOf(tvp.Value)
	if rv.Kind() != reflect.Slice || rv.Len() != m.Rows {
		return false
	}
	if m.Check != nil {
		return m.Check(tvp.Value)
	}
	return true
}
