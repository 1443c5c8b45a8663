package scan

import (
	"fmt"

	"github.com/tuannm99/colstore/internal/types"
)

// Op is a scan predicate operator.
type Op uint8

const (
	Eq Op = iota + 1
	Ne
	Lt
	Le
	Gt
	Ge
)

func (op Op) String() string {
	switch op {
	case Eq:
		return "="
	case Ne:
		return "!="
	case Lt:
		return "<"
	case Le:
		return "<="
	case Gt:
		return ">"
	case Ge:
		return ">="
	default:
		return fmt.Sprintf("op(%d)", uint8(op))
	}
}

// comparatorFor returns the monomorphic comparator for op over T. Every
// supported T has native ordering operators, so this is a direct switch
// rather than a generic "less" abstraction.
func comparatorFor[T types.Value](op Op) (func(a, b T) bool, error) {
	switch op {
	case Eq:
		return func(a, b T) bool { return a == b }, nil
	case Ne:
		return func(a, b T) bool { return a != b }, nil
	case Lt:
		return func(a, b T) bool { return a < b }, nil
	case Le:
		return func(a, b T) bool { return a <= b }, nil
	case Gt:
		return func(a, b T) bool { return a > b }, nil
	case Ge:
		return func(a, b T) bool { return a >= b }, nil
	default:
		return nil, fmt.Errorf("%w: unhandled scan op %v", types.ErrInternal, op)
	}
}
