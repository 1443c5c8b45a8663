// Package scan implements the TableScan operator: a single-column
// comparison predicate evaluated chunk by chunk, producing a new table
// whose columns are ReferenceSegments into the input (or, when the input
// itself is the result of a prior scan, into whatever non-reference table
// that scan's own reference segments ultimately point to).
package scan

import (
	"fmt"

	"github.com/tuannm99/colstore/internal/table"
	"github.com/tuannm99/colstore/internal/types"
)

// Execute runs a TableScan over input's column, testing literal against
// every row with op, and returns a new table of matching rows. It fails
// with ErrBadColumn if column is out of range, ErrTypeMismatch if literal's
// runtime type does not match the column's declared type, and
// ErrMixedSegmentIndirection if any chunk mixes reference and non-reference
// columns.
func Execute(input *table.Table, column types.ColumnID, op Op, literal types.AllTypeVariant) (*table.Table, error) {
	dtype, err := input.ColumnType(column)
	if err != nil {
		return nil, err
	}

	switch dtype {
	case types.Int32:
		return execute[int32](input, column, op, literal)
	case types.Int64:
		return execute[int64](input, column, op, literal)
	case types.Float32:
		return execute[float32](input, column, op, literal)
	case types.Float64:
		return execute[float64](input, column, op, literal)
	case types.String:
		return execute[string](input, column, op, literal)
	default:
		return nil, fmt.Errorf("%w: unsupported column type %s", types.ErrInternal, dtype)
	}
}

func execute[T types.Value](input *table.Table, column types.ColumnID, op Op, literalVariant types.AllTypeVariant) (*table.Table, error) {
	literal, err := types.CastTo[T](literalVariant)
	if err != nil {
		return nil, err
	}
	cmp, err := comparatorFor[T](op)
	if err != nil {
		return nil, err
	}

	names := input.ColumnNames()
	result := table.New(input.MaxChunkSize())
	for i, name := range names {
		dtype, err := input.ColumnType(types.ColumnID(i))
		if err != nil {
			return nil, err
		}
		if err := result.AddColumn(name, dtype); err != nil {
			return nil, err
		}
	}

	for cid := types.ChunkID(0); cid < input.ChunkCount(); cid++ {
		chunk, err := input.GetChunk(cid)
		if err != nil {
			return nil, err
		}
		if chunk.HasMixedIndirection() {
			return nil, fmt.Errorf("%w: chunk %d", types.ErrMixedSegmentIndirection, cid)
		}
		if chunk.Size() == 0 {
			continue
		}

		src, err := chunk.Segment(column)
		if err != nil {
			return nil, err
		}

		sel, err := selectOffsets[T](src, op, literal, cmp)
		if err != nil {
			return nil, err
		}
		if len(sel.offsets) == 0 && !sel.addAll {
			continue
		}

		resultChunk, err := assembleChunk(cid, chunk, sel, input)
		if err != nil {
			return nil, err
		}
		result.EmplaceChunk(resultChunk)
	}

	return result, nil
}
