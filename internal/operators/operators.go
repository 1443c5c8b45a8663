// Package operators provides the two composable operators a query pipeline
// chains together: GetTable, which resolves a name against a catalog, and
// TableScan, which filters an upstream operator's output. Both implement
// Operator so a TableScan can take another TableScan as its input without
// either package depending on a planner.
package operators

import (
	"github.com/tuannm99/colstore/internal/catalog"
	"github.com/tuannm99/colstore/internal/scan"
	"github.com/tuannm99/colstore/internal/table"
	"github.com/tuannm99/colstore/internal/types"
)

// Operator produces a table when executed. A pipeline is built by chaining
// operators together before any of them runs.
type Operator interface {
	Execute() (*table.Table, error)
}

// GetTable resolves a table by name against a Manager.
type GetTable struct {
	Manager *catalog.Manager
	Name    string
}

// Execute looks up Name, failing with ErrNoSuchTable if it isn't registered.
func (op *GetTable) Execute() (*table.Table, error) {
	return op.Manager.GetTable(op.Name)
}

// TableScan filters its Input's output by a single-column predicate. The
// input is executed lazily, once, when this operator runs, so a chain of
// TableScans composes without materializing intermediate tables until
// Execute walks down the chain.
type TableScan struct {
	Input   Operator
	Column  types.ColumnID
	Op      scan.Op
	Literal types.AllTypeVariant
}

// Execute runs Input, then applies the predicate to its result.
func (op *TableScan) Execute() (*table.Table, error) {
	input, err := op.Input.Execute()
	if err != nil {
		return nil, err
	}
	return scan.Execute(input, op.Column, op.Op, op.Literal)
}
