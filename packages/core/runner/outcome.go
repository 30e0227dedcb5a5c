package runner

import (
	"errors"
	"fmt"
	"time"

	"github.com/abdul-hamid-achik/hookspec/packages/core/hooks"
)

// Status is the final state of one hook dispatch.
type Status int

const (
	StatusSucceeded Status = iota + 1
	StatusSkipped
	StatusRecoverable
	StatusFatal
)

func (s Status) String() string {
	switch s {
	case StatusSucceeded:
		return "passed"
	case StatusSkipped:
		return "skipped"
	case StatusRecoverable:
		return "failed"
	case StatusFatal:
		return "fatal"
	}
	return "unknown"
}

// FailureRecord describes one failed hook attempt.
type FailureRecord struct {
	Hook    string
	Message string
	Fatal   bool
	Err     error
}

// Outcome is the result of dispatching one hook, retries included.
type Outcome struct {
	Hook        string
	Kind        hooks.Kind
	Status      Status
	Attempts    int
	SkipReason  string
	Substituted bool
	Failures    []FailureRecord
	Duration    time.Duration
}

// LastFailure returns the most recent failure, or nil.
func (o *Outcome) LastFailure() *FailureRecord {
	if len(o.Failures) == 0 {
		return nil
	}
	return &o.Failures[len(o.Failures)-1]
}

// StopExecutionError is returned when a hook failure must stop the run.
type StopExecutionError struct {
	Record FailureRecord
}

func (e *StopExecutionError) Error() string {
	return e.Record.Message
}

func (e *StopExecutionError) Unwrap() error {
	return e.Record.Err
}

// IsStopExecution reports whether err is or wraps a StopExecutionError.
func IsStopExecution(err error) bool {
	var stop *StopExecutionError
	return errors.As(err, &stop)
}

// PanicError wraps a value recovered from a panicking hook.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// FormatFailure builds the failure message for method, including the
// panic stack when the failure was a panic.
func FormatFailure(method string, err error) string {
	var trace string
	var p *PanicError
	if errors.As(err, &p) {
		trace = fmt.Sprintf("%s\n%s", p.Error(), p.Stack)
	} else {
		trace = fmt.Sprintf("%+v", err)
	}
	return fmt.Sprintf("Precondition method '%s' failed \n %s", method, trace)
}
