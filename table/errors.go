package table

import (
	"errors"
	"fmt"
)

var (
	ErrColumnNotFound = errors.New("column not found")
	ErrRowNotFound    = errors.New("row not found")
)

// TypeError reports a host argument that is not of the expected shape.
// No table state is modified when an operation fails with a TypeError.
type TypeError struct {
	Op   string // operation, e.g. "table.Init"
	Arg  string // argument name, e.g. "columns"
	Want string // expected shape
	Got  string // Go type of the rejected value
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("%s: `%s` must be %s, got %s", e.Op, e.Arg, e.Want, e.Got)
}

func typeError(op, arg, want string, got any) *TypeError {
	return &TypeError{Op: op, Arg: arg, Want: want, Got: fmt.Sprintf("%T", got)}
}
