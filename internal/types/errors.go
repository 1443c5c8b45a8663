package types

import "errors"

// Error kinds surfaced by the storage and scan core. These are sentinel
// values rather than distinct types so callers can compare with errors.Is
// even after a wrapping fmt.Errorf("...: %w", ...).
var (
	ErrTypeMismatch           = errors.New("type mismatch")
	ErrBadColumn              = errors.New("bad column id")
	ErrDuplicateName          = errors.New("duplicate table name")
	ErrNoSuchTable            = errors.New("no such table")
	ErrImmutable              = errors.New("segment is immutable")
	ErrBadValueID             = errors.New("bad value id")
	ErrDictionaryTooLarge     = errors.New("dictionary too large")
	ErrMixedSegmentIndirection = errors.New("mixed segment indirection in chunk")
	ErrInternal               = errors.New("internal error")
	ErrOutOfBounds            = errors.New("index out of bounds")
)
