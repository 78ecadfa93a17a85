package gitutil

import (
	"fmt"
	"strings"

	"github.com/samzong/git-autocommit/internal/gitcmd"
)

// QueryError reports a failed read-only git invocation. Callers must not use any
// partially collected output once a query fails.
type QueryError struct {
	Args   []string
	Stderr string
	Err    error
}

func (e *QueryError) Error() string {
	return describe(e.Args, e.Stderr, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

// MutationError reports a failed git invocation that changes the index or history.
type MutationError struct {
	Args   []string
	Stderr string
	Err    error
}

func (e *MutationError) Error() string {
	return describe(e.Args, e.Stderr, e.Err)
}

func (e *MutationError) Unwrap() error { return e.Err }

// NewQueryError builds a QueryError that prefers git stderr output when present.
func NewQueryError(args []string, result gitcmd.Result, err error) *QueryError {
	return &QueryError{Args: args, Stderr: result.StderrString(true), Err: err}
}

// NewMutationError builds a MutationError that prefers git stderr output when present.
func NewMutationError(args []string, result gitcmd.Result, err error) *MutationError {
	return &MutationError{Args: args, Stderr: result.StderrString(true), Err: err}
}

func describe(args []string, stderr string, err error) string {
	action := gitcmd.CommandLine(args)
	errMsg := strings.TrimSpace(stderr)
	if errMsg != "" {
		return fmt.Sprintf("%s: %s: %v", action, errMsg, err)
	}
	return fmt.Sprintf("%s: %v", action, err)
}
