package symgeo

import (
	"errors"
	"fmt"
)

// Sentinel errors for broad classification. Every error returned by this
// package wraps exactly one of them.
var (
	ErrType         = errors.New("invalid argument type")
	ErrPrecondition = errors.New("precondition violated")
	ErrName         = errors.New("invalid name")
	ErrNotFound     = errors.New("not found")
	ErrUndefined    = errors.New("undefined for conic kind")
)

// OpError wraps a sentinel with the operation that failed.
type OpError struct {
	Op   string
	Kind error
	Msg  string
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}
	base := fmt.Sprintf("%s: %v", e.Op, e.Kind)
	if e.Msg != "" {
		base += ": " + e.Msg
	}
	return base
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Kind
}

func opErr(op string, kind error, format string, args ...any) error {
	return &OpError{Op: op, Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// must is for constructions whose inputs were validated upstream.
func must[T any](v T, err error) T {
	if err != nil {
		panic("symgeo: internal construction failed: " + err.Error())
	}
	return v
}
