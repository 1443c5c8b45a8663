package scan

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tuannm99/colstore/internal/segment"
	"github.com/tuannm99/colstore/internal/table"
	"github.com/tuannm99/colstore/internal/types"
)

func newIntTable(t *testing.T, maxChunkSize types.ChunkOffset, values []int32) *table.Table {
	t.Helper()
	tbl := table.New(maxChunkSize)
	require.NoError(t, tbl.AddColumn("x", types.Int32))
	for _, v := range values {
		require.NoError(t, tbl.Append([]types.AllTypeVariant{types.VariantOf(v)}))
	}
	return tbl
}

func columnValues(t *testing.T, tbl *table.Table, col types.ColumnID) []int32 {
	t.Helper()
	var out []int32
	for cid := types.ChunkID(0); cid < tbl.ChunkCount(); cid++ {
		chunk, err := tbl.GetChunk(cid)
		require.NoError(t, err)
		for off := types.ChunkOffset(0); off < chunk.Size(); off++ {
			seg, err := chunk.Segment(col)
			require.NoError(t, err)
			v, err := seg.At(off)
			require.NoError(t, err)
			i, err := types.CastTo[int32](v)
			require.NoError(t, err)
			out = append(out, i)
		}
	}
	return out
}

// Scenario A: ValueSegment equality, result spans multiple source chunks.
func TestScenarioAValueSegmentEquality(t *testing.T) {
	tbl := newIntTable(t, 2, []int32{3, 5, 3, 7, 5})

	result, err := Execute(tbl, 0, Eq, types.VariantOf(int32(3)))
	require.NoError(t, err)

	require.Equal(t, []int32{3, 3}, columnValues(t, result, 0))
	require.Equal(t, types.ChunkID(2), result.ChunkCount())
}

// Scenario B: dictionary add_none short-circuit yields an empty result
// table with no output chunk appended (the single default chunk remains).
func TestScenarioBDictionaryAddNone(t *testing.T) {
	tbl := newIntTable(t, 10, []int32{3, 5, 3, 7, 5})
	require.NoError(t, tbl.CompressChunk(0))

	result, err := Execute(tbl, 0, Eq, types.VariantOf(int32(4)))
	require.NoError(t, err)

	require.Equal(t, uint64(0), result.RowCount())
	require.Equal(t, types.ChunkID(1), result.ChunkCount())
}

// Scenario C: dictionary add_all short-circuit, every row returned.
func TestScenarioCDictionaryAddAll(t *testing.T) {
	tbl := newIntTable(t, 10, []int32{2, 2, 2})
	require.NoError(t, tbl.CompressChunk(0))

	result, err := Execute(tbl, 0, Ne, types.VariantOf(int32(5)))
	require.NoError(t, err)

	require.Equal(t, []int32{2, 2, 2}, columnValues(t, result, 0))
}

// Scenario D: range predicate over a compressed column.
func TestScenarioDRangeOverCompressed(t *testing.T) {
	tbl := newIntTable(t, 10, []int32{0, 2, 4, 6, 8, 10})
	require.NoError(t, tbl.CompressChunk(0))

	result, err := Execute(tbl, 0, Gt, types.VariantOf(int32(4)))
	require.NoError(t, err)

	require.Equal(t, []int32{6, 8, 10}, columnValues(t, result, 0))
}

// Scenario E: chained scans flatten indirection to the original table.
func TestScenarioEChainedScansFlattenIndirection(t *testing.T) {
	tbl := table.New(10)
	require.NoError(t, tbl.AddColumn("x", types.Int32))
	require.NoError(t, tbl.AddColumn("y", types.String))
	rows := []struct {
		x int32
		y string
	}{
		{1, "k"}, {5, "k"}, {7, "j"}, {9, "k"},
	}
	for _, r := range rows {
		require.NoError(t, tbl.Append([]types.AllTypeVariant{types.VariantOf(r.x), types.VariantOf(r.y)}))
	}

	s1, err := Execute(tbl, 0, Gt, types.VariantOf(int32(3)))
	require.NoError(t, err)

	s2, err := Execute(s1, 1, Eq, types.VariantOf("k"))
	require.NoError(t, err)

	require.Equal(t, []int32{5, 9}, columnValues(t, s2, 0))

	chunk, err := s2.GetChunk(0)
	require.NoError(t, err)
	seg, err := chunk.Segment(0)
	require.NoError(t, err)
	refSeg, ok := seg.(*segment.ReferenceSegment)
	require.True(t, ok)
	require.Same(t, tbl, refSeg.ReferencedTable())
}

// Scenario F: a chunk mixing reference and non-reference predicate-column
// segments is rejected.
func TestScenarioFMixedIndirectionRejected(t *testing.T) {
	tbl := table.New(10)
	require.NoError(t, tbl.AddColumn("x", types.Int32))
	require.NoError(t, tbl.Append([]types.AllTypeVariant{types.VariantOf(int32(1))}))

	chunk, err := tbl.GetChunk(0)
	require.NoError(t, err)
	chunk.AddSegment(segment.NewReference(types.Int32, tbl, 0, nil))

	_, err = Execute(tbl, 0, Eq, types.VariantOf(int32(1)))
	require.ErrorIs(t, err, types.ErrMixedSegmentIndirection)
}

// P5: encoding invariance. The same predicate over the same values returns
// the same rows in the same order whether the column is an uncompressed
// ValueSegment or its DictionarySegment compression.
func TestEncodingInvarianceValueVsDictionary(t *testing.T) {
	values := []int32{3, 5, 3, 7, 5, 2, 9, 1}
	ops := []struct {
		op      Op
		literal int32
	}{
		{Eq, 5}, {Ne, 5}, {Lt, 5}, {Le, 5}, {Gt, 5}, {Ge, 5},
	}

	for _, tc := range ops {
		uncompressed := newIntTable(t, 10, values)
		compressed := newIntTable(t, 10, values)
		require.NoError(t, compressed.CompressChunk(0))

		chunk, err := compressed.GetChunk(0)
		require.NoError(t, err)
		seg, err := chunk.Segment(0)
		require.NoError(t, err)
		require.Equal(t, segment.KindDictionary, seg.Kind())

		wantResult, err := Execute(uncompressed, 0, tc.op, types.VariantOf(tc.literal))
		require.NoError(t, err)
		gotResult, err := Execute(compressed, 0, tc.op, types.VariantOf(tc.literal))
		require.NoError(t, err)

		require.Equal(t, columnValues(t, wantResult, 0), columnValues(t, gotResult, 0), "op %v", tc.op)
	}
}

// P7: structural sharing. When a scan over a ReferenceSegment determines
// add_all, the output's pos_list is the same slice (same backing array) as
// the input segment's pos_list, not a freshly allocated copy.
func TestAddAllReferenceScanSharesPosList(t *testing.T) {
	tbl := newIntTable(t, 10, []int32{2, 2, 2})
	require.NoError(t, tbl.CompressChunk(0))

	s1, err := Execute(tbl, 0, Ne, types.VariantOf(int32(5)))
	require.NoError(t, err)
	s2, err := Execute(s1, 0, Ne, types.VariantOf(int32(5)))
	require.NoError(t, err)

	chunk1, err := s1.GetChunk(0)
	require.NoError(t, err)
	seg1, err := chunk1.Segment(0)
	require.NoError(t, err)
	ref1, ok := seg1.(*segment.ReferenceSegment)
	require.True(t, ok)
	posList1 := ref1.PosList()

	chunk2, err := s2.GetChunk(0)
	require.NoError(t, err)
	seg2, err := chunk2.Segment(0)
	require.NoError(t, err)
	ref2, ok := seg2.(*segment.ReferenceSegment)
	require.True(t, ok)
	posList2 := ref2.PosList()

	require.NotEmpty(t, posList1)
	require.Equal(t, len(posList1), len(posList2))
	require.Same(t, &posList1[0], &posList2[0])

	original := posList1[0]
	posList1[0] = types.RowID{ChunkID: 99, ChunkOffset: 99}
	require.Equal(t, posList1[0], posList2[0])
	posList1[0] = original
}

// P6: indirection idempotence, two chained scans equal a single conjunction.
func TestChainedScansMatchConjunction(t *testing.T) {
	tbl := newIntTable(t, 3, []int32{1, 2, 3, 4, 5, 6, 7, 8})

	s1, err := Execute(tbl, 0, Gt, types.VariantOf(int32(2)))
	require.NoError(t, err)
	s2, err := Execute(s1, 0, Lt, types.VariantOf(int32(7)))
	require.NoError(t, err)

	require.Equal(t, []int32{3, 4, 5, 6}, columnValues(t, s2, 0))
}

func TestTypeMismatchLiteral(t *testing.T) {
	tbl := newIntTable(t, 10, []int32{1, 2, 3})
	_, err := Execute(tbl, 0, Eq, types.VariantOf("not an int"))
	require.ErrorIs(t, err, types.ErrTypeMismatch)
}

func TestBadColumn(t *testing.T) {
	tbl := newIntTable(t, 10, []int32{1, 2, 3})
	_, err := Execute(tbl, 5, Eq, types.VariantOf(int32(1)))
	require.ErrorIs(t, err, types.ErrBadColumn)
}
