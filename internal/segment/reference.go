package segment

import (
	"fmt"

	"github.com/tuannm99/colstore/internal/types"
)

// ReferenceSegment is a logical column that redirects each of its rows to a
// RowID in another, non-reference table. It holds a non-owning handle to the
// referenced table: TableScan is responsible for never producing a
// ReferenceSegment whose ReferencedColumn is itself a ReferenceSegment
// (chains are flattened on construction).
type ReferenceSegment struct {
	dtype            types.DataType
	referencedTable  SourceTable
	referencedColumn types.ColumnID
	posList          []types.RowID
}

// NewReference builds a ReferenceSegment. dtype is the declared type of the
// referenced column, carried here only so Segment.DataType can answer
// without resolving a row.
func NewReference(dtype types.DataType, table SourceTable, column types.ColumnID, posList []types.RowID) *ReferenceSegment {
	return &ReferenceSegment{dtype: dtype, referencedTable: table, referencedColumn: column, posList: posList}
}

func (s *ReferenceSegment) Kind() Kind             { return KindReference }
func (s *ReferenceSegment) DataType() types.DataType { return s.dtype }
func (s *ReferenceSegment) Size() uint32           { return uint32(len(s.posList)) }

// PosList returns the underlying row references. Callers must not mutate
// the returned slice: it may be shared across every column of a result
// chunk (see the scan's output-assembly sharing rules).
func (s *ReferenceSegment) PosList() []types.RowID { return s.posList }

// ReferencedTable returns the table this segment's rows resolve into.
func (s *ReferenceSegment) ReferencedTable() SourceTable { return s.referencedTable }

// ReferencedColumn returns the column within the referenced table that this
// segment's rows resolve into.
func (s *ReferenceSegment) ReferencedColumn() types.ColumnID { return s.referencedColumn }

// RowIDAt returns the RowID this segment maps offset to.
func (s *ReferenceSegment) RowIDAt(off types.ChunkOffset) (types.RowID, error) {
	if uint32(off) >= uint32(len(s.posList)) {
		return types.RowID{}, fmt.Errorf("%w: offset %d, size %d", types.ErrOutOfBounds, off, len(s.posList))
	}
	return s.posList[off], nil
}

// At resolves pos_list[off] and returns the value of the referenced table at
// that row.
func (s *ReferenceSegment) At(off types.ChunkOffset) (types.AllTypeVariant, error) {
	row, err := s.RowIDAt(off)
	if err != nil {
		return types.AllTypeVariant{}, err
	}

	chunk, ok := s.referencedTable.ChunkAt(row.ChunkID)
	if !ok {
		return types.AllTypeVariant{}, fmt.Errorf("%w: referenced chunk %d does not exist", types.ErrInternal, row.ChunkID)
	}
	seg, ok := chunk.SegmentAt(s.referencedColumn)
	if !ok {
		return types.AllTypeVariant{}, fmt.Errorf("%w: referenced column %d does not exist", types.ErrInternal, s.referencedColumn)
	}
	if seg.Kind() == KindReference {
		return types.AllTypeVariant{}, fmt.Errorf("%w: referenced segment is itself a reference", types.ErrInternal)
	}
	return seg.At(row.ChunkOffset)
}

// EstimateMemoryUsage is advisory only.
func (s *ReferenceSegment) EstimateMemoryUsage() int {
	return 8 * len(s.posList)
}

var _ Segment = (*ReferenceSegment)(nil)
