package apperr

import (
	"errors"
	"fmt"
)

type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func NewValidation(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func NewValidationWrap(msg string, err error) *ValidationError {
	return &ValidationError{Message: msg, Err: err}
}

// ShapeError reports a scores input that is not a 2-D matrix.
type ShapeError struct {
	Shape  []int
	Reason string
}

func (e *ShapeError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("scores must be a 2-D matrix, got shape %v: %s", e.Shape, e.Reason)
	}
	return fmt.Sprintf("scores must be a 2-D matrix, got shape %v", e.Shape)
}

func NewShape(shape []int, reason string) *ShapeError {
	return &ShapeError{Shape: shape, Reason: reason}
}

// CutoffBoundError reports cutoffs larger than the number of score columns.
type CutoffBoundError struct {
	Cutoffs []int
	Shape   [2]int
}

func (e *CutoffBoundError) Error() string {
	return fmt.Sprintf("cutoff must be <= scores columns, got: %v and %v", e.Cutoffs, e.Shape)
}

func NewCutoffBound(cutoffs []int, shape [2]int) *CutoffBoundError {
	return &CutoffBoundError{Cutoffs: cutoffs, Shape: shape}
}

// IndexError reports an out-of-range lookup into a relevance sequence.
type IndexError struct {
	Sequence string
	Index    int
	Len      int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s index %d out of range [0:%d]", e.Sequence, e.Index, e.Len)
}

func NewIndex(sequence string, index, length int) *IndexError {
	return &IndexError{Sequence: sequence, Index: index, Len: length}
}

// InvalidConfigTypeError reports a config field holding a value of an unsupported type.
type InvalidConfigTypeError struct {
	Field string
	Value any
	Want  string
}

func (e *InvalidConfigTypeError) Error() string {
	return fmt.Sprintf("unknown %s datatype passed %v (%T), should be %s", e.Field, e.Value, e.Value, e.Want)
}

func NewInvalidConfigType(field string, value any, want string) *InvalidConfigTypeError {
	return &InvalidConfigTypeError{Field: field, Value: value, Want: want}
}

// IsValidation reports whether err is one of the caller-input error types.
func IsValidation(err error) bool {
	switch {
	case As[*ValidationError](err), As[*ShapeError](err),
		As[*CutoffBoundError](err), As[*InvalidConfigTypeError](err):
		return true
	}
	return false
}

// As reports whether any error in err's chain has type T.
func As[T error](err error) bool {
	var target T
	return errors.As(err, &target)
}
