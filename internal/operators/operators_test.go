package operators

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tuannm99/colstore/internal/catalog"
	"github.com/tuannm99/colstore/internal/scan"
	"github.com/tuannm99/colstore/internal/table"
	"github.com/tuannm99/colstore/internal/types"
)

func buildTable(t *testing.T) *table.Table {
	t.Helper()
	tbl := table.New(10)
	require.NoError(t, tbl.AddColumn("x", types.Int32))
	for _, v := range []int32{1, 2, 3, 4, 5} {
		require.NoError(t, tbl.Append([]types.AllTypeVariant{types.VariantOf(v)}))
	}
	return tbl
}

func TestGetTableExecute(t *testing.T) {
	m := catalog.New()
	tbl := buildTable(t)
	require.NoError(t, m.AddTable("t1", tbl))

	op := &GetTable{Manager: m, Name: "t1"}
	got, err := op.Execute()
	require.NoError(t, err)
	require.Same(t, tbl, got)
}

func TestGetTableExecuteNoSuchTable(t *testing.T) {
	m := catalog.New()
	op := &GetTable{Manager: m, Name: "missing"}
	_, err := op.Execute()
	require.ErrorIs(t, err, types.ErrNoSuchTable)
}

func TestChainedTableScanOperators(t *testing.T) {
	m := catalog.New()
	require.NoError(t, m.AddTable("t1", buildTable(t)))

	get := &GetTable{Manager: m, Name: "t1"}
	filtered := &TableScan{Input: get, Column: 0, Op: scan.Gt, Literal: types.VariantOf(int32(1))}
	narrower := &TableScan{Input: filtered, Column: 0, Op: scan.Lt, Literal: types.VariantOf(int32(5))}

	result, err := narrower.Execute()
	require.NoError(t, err)
	require.Equal(t, uint64(3), result.RowCount())
}
