package db

import (
	"errors"
	"fmt"
)

// Kind classifies where an execution failed.
type Kind int

const (
	KindConnect Kind = iota + 1
	KindBegin
	KindExecute
	KindScan
	KindCommit
	KindRollback
)

func (k Kind) String() string {
	switch k {
	case KindConnect:
		return "connect"
	case KindBegin:
		return "begin"
	case KindExecute:
		return "execute"
	case KindScan:
		return "scan"
	case KindCommit:
		return "commit"
	case KindRollback:
		return "rollback"
	default:
		return "unknown"
	}
}

// ExecError is returned by every Executor operation that did not complete.
// The accompanying numeric result is always zero and result sets are always empty.
type ExecError struct {
	Kind    Kind
	Op      string
	Command string
	Err     error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("%s %s: %s failed: %v", e.Op, e.Command, e.Kind, e.Err)
}

func (e *ExecError) Unwrap() error { return e.Err }

// KindOf reports the failure kind of err, or 0 when err is not an ExecError.
func KindOf(err error) Kind {
	var execErr *ExecError
	if errors.As(err, &execErr) {
		return execErr.Kind
	}
	return 0
}
