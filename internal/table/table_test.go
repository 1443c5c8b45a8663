package table

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tuannm99/colstore/internal/segment"
	"github.com/tuannm99/colstore/internal/types"
)

func newIntTable(t *testing.T, maxChunkSize types.ChunkOffset, values []int32) *Table {
	tbl := New(maxChunkSize)
	require.NoError(t, tbl.AddColumn("x", types.Int32))
	for _, v := range values {
		require.NoError(t, tbl.Append([]types.AllTypeVariant{types.VariantOf(v)}))
	}
	return tbl
}

func TestTableAppendSpansMultipleChunks(t *testing.T) {
	tbl := newIntTable(t, 2, []int32{3, 5, 3, 7, 5})

	require.Equal(t, uint64(5), tbl.RowCount())
	require.Equal(t, types.ChunkID(3), tbl.ChunkCount())

	sizes := []types.ChunkOffset{}
	for i := types.ChunkID(0); i < tbl.ChunkCount(); i++ {
		c, err := tbl.GetChunk(i)
		require.NoError(t, err)
		sizes = append(sizes, c.Size())
	}
	require.Equal(t, []types.ChunkOffset{2, 2, 1}, sizes)
}

func TestAddColumnAfterRowsFails(t *testing.T) {
	tbl := newIntTable(t, 10, []int32{1})
	err := tbl.AddColumn("y", types.Int64)
	require.Error(t, err)
}

func TestCompressChunkReplacesValueSegmentInPlace(t *testing.T) {
	tbl := newIntTable(t, 10, []int32{0, 2, 4, 6, 8, 10})

	require.NoError(t, tbl.CompressChunk(0))

	chunk, err := tbl.GetChunk(0)
	require.NoError(t, err)
	seg, err := chunk.Segment(0)
	require.NoError(t, err)
	require.Equal(t, segment.KindDictionary, seg.Kind())

	ds := seg.(*segment.DictionarySegment[int32])
	require.Equal(t, 6, ds.UniqueValuesCount())
	for i := 0; i < 6; i++ {
		v, err := ds.Get(types.ChunkOffset(i))
		require.NoError(t, err)
		require.Equal(t, int32(i*2), v)
	}
}

func TestChunkRejectsMixedIndirection(t *testing.T) {
	c := NewChunk()
	c.AddSegment(segment.NewReference(types.Int32, &dummyTable{}, 0, nil))
	c.AddSegment(segment.NewValue[int32]())
	require.True(t, c.HasMixedIndirection())
}

type dummyTable struct{}

func (*dummyTable) ChunkAt(types.ChunkID) (segment.SourceChunk, bool) { return nil, false }
