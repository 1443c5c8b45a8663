package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tuannm99/colstore/internal/table"
	"github.com/tuannm99/colstore/internal/types"
)

func TestAddGetDropTable(t *testing.T) {
	m := New()
	tbl := table.New(10)

	require.NoError(t, m.AddTable("t1", tbl))
	require.True(t, m.HasTable("t1"))

	got, err := m.GetTable("t1")
	require.NoError(t, err)
	require.Same(t, tbl, got)

	require.NoError(t, m.DropTable("t1"))
	require.False(t, m.HasTable("t1"))
}

func TestAddTableDuplicateName(t *testing.T) {
	m := New()
	require.NoError(t, m.AddTable("t1", table.New(10)))
	err := m.AddTable("t1", table.New(10))
	require.ErrorIs(t, err, types.ErrDuplicateName)
}

func TestGetTableNoSuchTable(t *testing.T) {
	m := New()
	_, err := m.GetTable("missing")
	require.ErrorIs(t, err, types.ErrNoSuchTable)
}

func TestDropTableNoSuchTable(t *testing.T) {
	m := New()
	err := m.DropTable("missing")
	require.ErrorIs(t, err, types.ErrNoSuchTable)
}

func TestTableNamesSorted(t *testing.T) {
	m := New()
	require.NoError(t, m.AddTable("zeta", table.New(10)))
	require.NoError(t, m.AddTable("alpha", table.New(10)))
	require.Equal(t, []string{"alpha", "zeta"}, m.TableNames())
}

func TestReset(t *testing.T) {
	m := New()
	require.NoError(t, m.AddTable("t1", table.New(10)))
	m.Reset()
	require.False(t, m.HasTable("t1"))
	require.Empty(t, m.TableNames())
}
