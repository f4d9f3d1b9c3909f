// Package errortypes defines error interfaces for attaching a source
// location to an error without each caller inventing its own wrapper.
// The lexer, parser and tree builder do not use it; they report
// problems as syntax.Diagnostic values.
package errortypes

import (
	"golang.org/x/xerrors"

	"github.com/twigcst/twigcst/syntax"
)

// ErrSpan extends the error interface to add the source byte range an
// error occurred at.
type ErrSpan interface {
	error
	Range() syntax.TextRange
}

// NewErrSpanf creates an error conforming to the ErrSpan interface.
func NewErrSpanf(rng syntax.TextRange, format string, args ...interface{}) error {
	return &errSpan{
		error: xerrors.Errorf(format, args...),
		rng:   rng,
	}
}

// IsErrSpan identifies whether err, or anything it wraps, is an ErrSpan.
func IsErrSpan(err error) bool {
	var target ErrSpan
	return xerrors.As(err, &target)
}

// ToErrSpan converts err to an ErrSpan if possible, or nil if not.
// If IsErrSpan returns true, this will not return nil.
func ToErrSpan(err error) ErrSpan {
	var target ErrSpan
	if xerrors.As(err, &target) {
		return target
	}
	return nil
}

var _ ErrSpan = &errSpan{}

type errSpan struct {
	error
	rng syntax.TextRange
}

func (e *errSpan) Range() syntax.TextRange { return e.rng }
func (e *errSpan) Unwrap() error           { return xerrors.Unwrap(e.error) }
