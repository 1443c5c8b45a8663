package scan

import (
	"github.com/tuannm99/colstore/internal/segment"
	"github.com/tuannm99/colstore/internal/table"
	"github.com/tuannm99/colstore/internal/types"
)

// assembleChunk builds the output chunk for one source chunk that matched
// at least one row (or addAll). Every column becomes a ReferenceSegment.
// Two sharing rules are mandatory here, mirroring the original's output
// assembly:
//
//   - all columns sourced from a ValueSegment or DictionarySegment share a
//     single freshly-built pos_list, since their selected offsets are
//     identical by construction;
//   - a column sourced from a ReferenceSegment is never re-pointed at
//     inputTable; it keeps pointing at that segment's own ReferencedTable
//     and ReferencedColumn, with a pos_list built by indexing into the
//     source segment's own pos_list (or aliased directly to it, under
//     addAll, rather than copied).
func assembleChunk(sourceChunkID types.ChunkID, sourceChunk *table.Chunk, sel selection, inputTable *table.Table) (*table.Chunk, error) {
	result := table.NewChunk()
	var sharedPosList []types.RowID

	for col := 0; col < sourceChunk.ColumnCount(); col++ {
		srcSeg, err := sourceChunk.Segment(types.ColumnID(col))
		if err != nil {
			return nil, err
		}

		if refSeg, ok := srcSeg.(*segment.ReferenceSegment); ok {
			var newPosList []types.RowID
			if sel.addAll {
				newPosList = refSeg.PosList()
			} else {
				src := refSeg.PosList()
				newPosList = make([]types.RowID, len(sel.offsets))
				for i, off := range sel.offsets {
					newPosList[i] = src[off]
				}
			}
			result.AddSegment(segment.NewReference(refSeg.DataType(), refSeg.ReferencedTable(), refSeg.ReferencedColumn(), newPosList))
			continue
		}

		if sharedPosList == nil {
			if sel.addAll {
				n := sourceChunk.Size()
				sharedPosList = make([]types.RowID, n)
				for i := types.ChunkOffset(0); i < n; i++ {
					sharedPosList[i] = types.RowID{ChunkID: sourceChunkID, ChunkOffset: i}
				}
			} else {
				sharedPosList = make([]types.RowID, len(sel.offsets))
				for i, off := range sel.offsets {
					sharedPosList[i] = types.RowID{ChunkID: sourceChunkID, ChunkOffset: off}
				}
			}
		}
		result.AddSegment(segment.NewReference(srcSeg.DataType(), inputTable, types.ColumnID(col), sharedPosList))
	}

	return result, nil
}
