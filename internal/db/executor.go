package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/go-multierror"

	"restaurant-api/internal/logger"
)

const (
	opRead     = "read"
	opScalar   = "scalar"
	opNonQuery = "nonquery"
)

// Observer receives one callback per execution. outcome is "ok" or a Kind name.
type Observer interface {
	ObserveQuery(op, target, outcome string, elapsed time.Duration)
}

// Executor runs procedures and text commands. Each call checks out its own
// connection from the pool and returns it before the call ends.
type Executor struct {
	db     *sql.DB
	schema string
	log    logger.LoggerService
	obs    Observer
}

func NewExecutor(dbConn *sql.DB, schema string, log logger.LoggerService, obs Observer) *Executor {
	if log == nil {
		log = logger.Discard()
	}
	return &Executor{db: dbConn, schema: schema, log: log, obs: obs}
}

func (e *Executor) Schema() string { return e.schema }

// ReadRows returns the first result set. Reads do not open a transaction.
func (e *Executor) ReadRows(ctx context.Context, target Target, args ...any) (ResultSet, error) {
	start := time.Now()
	cmd := target.command(e.schema)

	conn, err := e.conn(ctx)
	if err != nil {
		return ResultSet{}, e.fail(opRead, target, KindConnect, err, start)
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, cmd, args...)
	if err != nil {
		return ResultSet{}, e.fail(opRead, target, KindExecute, err, start)
	}
	defer rows.Close()

	rs, err := collectRows(rows)
	if err != nil {
		return ResultSet{}, e.fail(opRead, target, KindScan, err, start)
	}

	e.observe(opRead, target, "ok", start)
	return rs, nil
}

// SelectOne returns the first row of ReadRows; ok is false when nothing came back.
func (e *Executor) SelectOne(ctx context.Context, target Target, args ...any) (Row, bool, error) {
	rs, err := e.ReadRows(ctx, target, args...)
	if err != nil {
		return Row{}, false, err
	}
	row, ok := rs.First()
	return row, ok, nil
}

// ExecuteScalar runs target in a transaction and returns the first column of
// the first row as an integer. No row, or a NULL, reads as 0.
func (e *Executor) ExecuteScalar(ctx context.Context, target Target, args ...any) (int64, error) {
	var scalar int64
	err := e.inTx(ctx, opScalar, target, func(tx *sql.Tx, cmd string) error {
		var v any
		err := tx.QueryRowContext(ctx, cmd, args...).Scan(&v)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return err
		}
		n, err := toInt64(v)
		if err != nil {
			return err
		}
		scalar = n
		return nil
	})
	if err != nil {
		return 0, err
	}
	return scalar, nil
}

// ExecuteNonQuery runs target in a transaction and returns the affected row count.
func (e *Executor) ExecuteNonQuery(ctx context.Context, target Target, args ...any) (int64, error) {
	var affected int64
	err := e.inTx(ctx, opNonQuery, target, func(tx *sql.Tx, cmd string) error {
		res, err := tx.ExecContext(ctx, cmd, args...)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		affected = n
		return nil
	})
	if err != nil {
		return 0, err
	}
	return affected, nil
}

func (e *Executor) inTx(ctx context.Context, op string, target Target, fn func(tx *sql.Tx, cmd string) error) error {
	start := time.Now()
	cmd := target.command(e.schema)

	conn, err := e.conn(ctx)
	if err != nil {
		return e.fail(op, target, KindConnect, err, start)
	}
	defer conn.Close()

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return e.fail(op, target, KindBegin, err, start)
	}

	if err := fn(tx, cmd); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return e.fail(op, target, KindRollback, multierror.Append(err, rbErr), start)
		}
		return e.fail(op, target, KindExecute, err, start)
	}

	if err := tx.Commit(); err != nil {
		return e.fail(op, target, KindCommit, err, start)
	}

	e.observe(op, target, "ok", start)
	return nil
}

func (e *Executor) conn(ctx context.Context) (*sql.Conn, error) {
	if e.db == nil {
		return nil, errors.New("db connection is required")
	}
	return e.db.Conn(ctx)
}

func (e *Executor) fail(op string, target Target, kind Kind, err error, start time.Time) error {
	execErr := &ExecError{Kind: kind, Op: op, Command: target.label(), Err: err}
	e.log.Error(fmt.Sprintf("db %s %s failed after %s", op, target.label(), time.Since(start).Truncate(time.Millisecond)), execErr)
	e.observe(op, target, kind.String(), start)
	return execErr
}

func (e *Executor) observe(op string, target Target, outcome string, start time.Time) {
	if e.obs == nil {
		return
	}
	e.obs.ObserveQuery(op, target.label(), outcome, time.Since(start))
}
