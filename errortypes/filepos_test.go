package errortypes_test

import (
	"errors"
	"testing"

	"github.com/twigcst/twigcst/errortypes"
	"github.com/twigcst/twigcst/syntax"
)

func TestIsErrSpan(t *testing.T) {
	var tests = []struct {
		name string
		in   error
		out  bool
	}{
		{
			name: "nil",
			out:  false,
		},
		{
			name: "errors.New",
			in:   errors.New("an error"),
			out:  false,
		},
		{
			name: "new ErrSpan",
			in:   errortypes.NewErrSpanf(syntax.TextRange{Start: 1, End: 2}, "message"),
			out:  true,
		},
	}
	for _, test := range tests {
		got := errortypes.IsErrSpan(test.in)
		if got != test.out {
			t.Errorf("%s: Expected %v, got %v", test.name, test.out, got)
		}
	}
}

func TestToErrSpan(t *testing.T) {
	var tests = []struct {
		name          string
		in            error
		expectNil     bool
		expectedRange syntax.TextRange
	}{
		{
			name:      "nil",
			expectNil: true,
		},
		{
			name:      "errors.New",
			in:        errors.New("an error"),
			expectNil: true,
		},
		{
			name:          "new ErrSpan",
			in:            errortypes.NewErrSpanf(syntax.TextRange{Start: 3, End: 7}, "message"),
			expectNil:     false,
			expectedRange: syntax.TextRange{Start: 3, End: 7},
		},
	}
	for _, test := range tests {
		got := errortypes.ToErrSpan(test.in)
		if test.expectNil && got != nil {
			t.Errorf("%s: expected ErrSpan to be nil", test.name)
		}
		if !test.expectNil {
			if got == nil {
				t.Errorf("%s: expected ErrSpan to be non-nil", test.name)
				continue
			}
			if got.Range() != test.expectedRange {
				t.Errorf("%s: expected range %v, got %v", test.name, test.expectedRange, got.Range())
			}
		}
	}
}
