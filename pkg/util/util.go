package util

import (
	"errors"
	"fmt"
	"math"
)

// error

type Error struct {
	orig error
	msg  string
	code error
}

func (e *Error) Error() string {
	if e.orig != nil {
		return fmt.Sprintf("%s", e.msg)
	}

	return e.msg
}

func (e *Error) Unwrap() error {
	return e.orig
}

func WrapErrorf(orig error, code error, format string, a ...interface{}) error {
	return &Error{
		code: code,
		orig: orig,
		msg:  fmt.Sprintf(format, a...),
	}
}

func (e *Error) Code() error {
	return e.code
}

var (
	// ErrInvalidNode a graph query referenced a node id that is not in the tree.
	ErrInvalidNode = errors.New("unknown passive node id")
	// ErrBudgetViolation the defensive budget re-check failed on an accepted
	// mutation. this is a logic defect in the neighbor generator, never a
	// user-facing condition.
	ErrBudgetViolation = errors.New("budget violation on accepted mutation")
	// ErrCalculationFailure the calculation oracle failed for one candidate.
	// recoverable: the candidate is excluded from the iteration.
	ErrCalculationFailure = errors.New("calculation engine failure")
	// ErrInvalidConfiguration malformed optimization options or initial build,
	// rejected before the run starts.
	ErrInvalidConfiguration = errors.New("invalid optimization configuration")

	ErrInternalServerError = errors.New("internal Server Error")
	ErrNotFound            = errors.New("your requested Item is not found")
	ErrBadParamInput       = errors.New("given Param is not valid")
)

var MessageInternalServerError string = "internal server error"

func Abs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}

func MaxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func RoundFloat(val float64, precision uint) float64 {
	ratio := math.Pow(10, float64(precision))
	return math.Round(val*ratio) / ratio
}
