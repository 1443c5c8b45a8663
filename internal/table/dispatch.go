package table

import (
	"fmt"

	"github.com/tuannm99/colstore/internal/segment"
	"github.com/tuannm99/colstore/internal/types"
)

// newValueSegment creates an empty ValueSegment for dtype. This, along with
// compressSegment below, is the type-dispatch plumbing that resolves a
// schema-erased DataType to a monomorphic generic instantiation.
func newValueSegment(dtype types.DataType) segment.Segment {
	switch dtype {
	case types.Int32:
		return segment.NewValue[int32]()
	case types.Int64:
		return segment.NewValue[int64]()
	case types.Float32:
		return segment.NewValue[float32]()
	case types.Float64:
		return segment.NewValue[float64]()
	case types.String:
		return segment.NewValue[string]()
	default:
		panic(fmt.Sprintf("table: unsupported data type %s", dtype))
	}
}

// compressSegment builds the dictionary-encoded equivalent of a
// ValueSegment. It is a no-op (returns src unchanged) if src is already
// dictionary-encoded, and fails with ErrInternal for any other segment kind
// (TableScan output columns, i.e. ReferenceSegment, are never compressed).
func compressSegment(src segment.Segment) (segment.Segment, error) {
	switch src.Kind() {
	case segment.KindDictionary:
		return src, nil
	case segment.KindReference:
		return nil, fmt.Errorf("%w: cannot compress a reference segment", types.ErrInternal)
	}

	switch vs := src.(type) {
	case *segment.ValueSegment[int32]:
		return segment.FromValue(vs)
	case *segment.ValueSegment[int64]:
		return segment.FromValue(vs)
	case *segment.ValueSegment[float32]:
		return segment.FromValue(vs)
	case *segment.ValueSegment[float64]:
		return segment.FromValue(vs)
	case *segment.ValueSegment[string]:
		return segment.FromValue(vs)
	default:
		return nil, fmt.Errorf("%w: unhandled segment type in compressSegment", types.ErrInternal)
	}
}
