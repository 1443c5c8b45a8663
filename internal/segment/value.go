package segment

import (
	"fmt"

	"github.com/tuannm99/colstore/internal/types"
)

// ValueSegment is a dense, mutable column slice storing raw typed values. It
// is the representation a Table starts every column out as; Table's
// CompressChunk may later replace it in place with a DictionarySegment.
type ValueSegment[T types.Value] struct {
	values []T
}

// NewValue creates an empty value segment.
func NewValue[T types.Value]() *ValueSegment[T] {
	return &ValueSegment[T]{}
}

// NewValueFrom wraps an existing slice of typed values without copying.
func NewValueFrom[T types.Value](values []T) *ValueSegment[T] {
	return &ValueSegment[T]{values: values}
}

func (s *ValueSegment[T]) Kind() Kind             { return KindValue }
func (s *ValueSegment[T]) DataType() types.DataType { return types.DataTypeOf[T]() }
func (s *ValueSegment[T]) Size() uint32           { return uint32(len(s.values)) }

// Values returns the underlying slice. The caller must not retain it past a
// subsequent Append, which may reallocate.
func (s *ValueSegment[T]) Values() []T { return s.values }

// Get returns the typed value at off, without boxing it into an
// AllTypeVariant. This is the path the scan's hot loop takes.
func (s *ValueSegment[T]) Get(off types.ChunkOffset) (T, error) {
	if uint32(off) >= uint32(len(s.values)) {
		var zero T
		return zero, fmt.Errorf("%w: offset %d, size %d", types.ErrOutOfBounds, off, len(s.values))
	}
	return s.values[off], nil
}

// At satisfies Segment; see the DESIGN NOTES in the spec for why this path
// (AllTypeVariant boxing) is reserved for callers that have erased T.
func (s *ValueSegment[T]) At(off types.ChunkOffset) (types.AllTypeVariant, error) {
	v, err := s.Get(off)
	if err != nil {
		return types.AllTypeVariant{}, err
	}
	return types.VariantOf(v), nil
}

// Append type-checks and appends a schema-erased value.
func (s *ValueSegment[T]) Append(v types.AllTypeVariant) error {
	t, err := types.CastTo[T](v)
	if err != nil {
		return err
	}
	s.values = append(s.values, t)
	return nil
}

// AppendTyped appends a value already known to be of type T.
func (s *ValueSegment[T]) AppendTyped(v T) {
	s.values = append(s.values, v)
}

// EstimateMemoryUsage is advisory only, per the spec's DictionarySegment
// counterpart.
func (s *ValueSegment[T]) EstimateMemoryUsage() int {
	var zero T
	return int(sizeofValue(zero)) * len(s.values)
}

func sizeofValue[T types.Value](v T) uintptr {
	switch any(v).(type) {
	case int32, float32:
		return 4
	case int64, float64:
		return 8
	case string:
		return uintptr(len(any(v).(string))) + 16
	default:
		return 0
	}
}

var _ Segment = (*ValueSegment[int32])(nil)
