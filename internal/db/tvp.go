package db

import (
	"database/sql"
	"reflect"
	"sync"

	mssql "github.com/microsoft/go-mssqldb"
)

// IntCollectionType is the generic list-of-ids table type.
const IntCollectionType = "dbo.IntCollection"

// Shape describes a user-defined table type: how to turn a collection of
// values into the row structs the driver sends as the table body.
// Row struct fields are matched to table columns by position.
type Shape struct {
	TypeName string
	// Rows returns a slice of row structs, or false when values is not a
	// collection this shape understands.
	Rows func(values any) (any, bool)
	// Empty is a zero-length slice of the row struct.
	Empty any
}

type intCollectionRow struct {
	ID int32
}

// emptyRow stands in for an unknown shape; it carries no columns.
type emptyRow struct{}

var shapes = struct {
	mu sync.RWMutex
	m  map[string]Shape
}{m: map[string]Shape{}}

func init() {
	RegisterShape(RowsShape(IntCollectionType, func(id int) intCollectionRow {
		return intCollectionRow{ID: int32(id)}
	}))
}

// RowsShape builds a Shape for a []T collection using row to project each element.
func RowsShape[T any, R any](typeName string, row func(T) R) Shape {
	return Shape{
		TypeName: typeName,
		Rows: func(values any) (any, bool) {
			in, ok := values.([]T)
			if !ok {
				return nil, false
			}
			out := make([]R, 0, len(in))
			for _, v := range in {
				out = append(out, row(v))
			}
			return out, true
		},
		Empty: []R{},
	}
}

func RegisterShape(s Shape) {
	shapes.mu.Lock()
	defer shapes.mu.Unlock()
	shapes.m[s.TypeName] = s
}

// LookupShape reports whether typeName has been registered.
func LookupShape(typeName string) (Shape, bool) {
	shapes.mu.RLock()
	defer shapes.mu.RUnlock()
	s, ok := shapes.m[typeName]
	return s, ok
}

// StructuredParam builds a table-valued parameter. An unregistered type name,
// or values the shape cannot read, produce an empty table instead of an error.
func StructuredParam(name, typeName string, values any) sql.NamedArg {
	return sql.Named(name, buildTable(typeName, values))
}

func buildTable(typeName string, values any) mssql.TVP {
	s, ok := LookupShape(typeName)
	if !ok {
		return mssql.TVP{TypeName: typeName, Value: []emptyRow{}}
	}
	rows, ok := s.Rows(values)
	if !ok {
		return mssql.TVP{TypeName: typeName, Value: s.Empty}
	}
	return mssql.TVP{TypeName: typeName, Value: rows}
}

// TableLen reports the number of rows carried by a StructuredParam value.
func TableLen(arg sql.NamedArg) int {
	tvp, ok := arg.Value.(mssql.TVP)
	if !ok {
		return 0
	}
	return sliceLen(tvp.Value)
}

func sliceLen(v any) int {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice {
		return 0
	}
	return rv.Len()
}
