// Package table implements the Table and Chunk entities: a schema plus an
// ordered sequence of chunks, with append, per-chunk dictionary compression,
// and read-only access. Table is the concrete type that satisfies the
// segment.SourceTable interface a ReferenceSegment holds a handle to.
package table

import (
	"fmt"
	"sync"

	"github.com/sourcegraph/conc"

	"github.com/tuannm99/colstore/internal/segment"
	"github.com/tuannm99/colstore/internal/types"
)

// DefaultMaxChunkSize is used when a caller does not specify one.
const DefaultMaxChunkSize = 1 << 16

// Table is a schema plus an ordered sequence of chunks, with a fixed
// maximum chunk size. It owns its chunks and their segment contents
// exclusively; a ReferenceSegment elsewhere may hold a non-owning handle to
// it, but nothing here holds a handle back.
type Table struct {
	mu sync.Mutex

	columnNames []string
	columnTypes []types.DataType
	chunks      []*Chunk

	maxChunkSize types.ChunkOffset
}

// New creates a table with the given maximum chunk size and, like the
// original, a single empty chunk ready to receive columns.
func New(maxChunkSize types.ChunkOffset) *Table {
	if maxChunkSize == 0 {
		maxChunkSize = DefaultMaxChunkSize
	}
	t := &Table{maxChunkSize: maxChunkSize}
	t.chunks = append(t.chunks, NewChunk())
	return t
}

// AddColumn appends a new column definition. Only legal before any row has
// been appended, matching the original's DebugAssert.
func (t *Table) AddColumn(name string, dtype types.DataType) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.rowCountLocked() != 0 {
		return fmt.Errorf("%w: cannot add column %q after rows have been appended", types.ErrInternal, name)
	}

	t.columnNames = append(t.columnNames, name)
	t.columnTypes = append(t.columnTypes, dtype)
	t.chunks[len(t.chunks)-1].AddSegment(newValueSegment(dtype))
	return nil
}

// Append adds one row, starting a new chunk first if the current one has
// reached MaxChunkSize.
func (t *Table) Append(values []types.AllTypeVariant) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	last := t.chunks[len(t.chunks)-1]
	if last.Size() >= t.maxChunkSize {
		last = t.appendNewChunkLocked()
	}
	return last.Append(values)
}

func (t *Table) appendNewChunkLocked() *Chunk {
	c := NewChunk()
	for _, dtype := range t.columnTypes {
		c.AddSegment(newValueSegment(dtype))
	}
	t.chunks = append(t.chunks, c)
	return c
}

// ColumnCount returns the number of columns in the schema.
func (t *Table) ColumnCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.columnNames)
}

// RowCount returns the total number of rows across all chunks.
func (t *Table) RowCount() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.rowCountLocked()
}

func (t *Table) rowCountLocked() uint64 {
	var sum uint64
	for _, c := range t.chunks {
		sum += uint64(c.Size())
	}
	return sum
}

// ChunkCount returns the number of chunks.
func (t *Table) ChunkCount() types.ChunkID {
	t.mu.Lock()
	defer t.mu.Unlock()
	return types.ChunkID(len(t.chunks))
}

// MaxChunkSize returns the configured maximum rows per chunk.
func (t *Table) MaxChunkSize() types.ChunkOffset { return t.maxChunkSize }

// ColumnNames returns the schema's column names, in order.
func (t *Table) ColumnNames() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]string, len(t.columnNames))
	copy(out, t.columnNames)
	return out
}

// ColumnName returns the name of a single column.
func (t *Table) ColumnName(col types.ColumnID) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if int(col) >= len(t.columnNames) {
		return "", fmt.Errorf("%w: %d", types.ErrBadColumn, col)
	}
	return t.columnNames[col], nil
}

// ColumnType returns the declared type of a single column.
func (t *Table) ColumnType(col types.ColumnID) (types.DataType, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if int(col) >= len(t.columnTypes) {
		return 0, fmt.Errorf("%w: %d", types.ErrBadColumn, col)
	}
	return t.columnTypes[col], nil
}

// ColumnIDByName resolves a column name to its ColumnID.
func (t *Table) ColumnIDByName(name string) (types.ColumnID, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, n := range t.columnNames {
		if n == name {
			return types.ColumnID(i), nil
		}
	}
	return 0, fmt.Errorf("%w: column %q", types.ErrBadColumn, name)
}

// GetChunk returns the chunk at chunkID for read access. Concurrent readers
// of finalized (non-append-target) chunks require no further coordination;
// the lock here only guards the slice/header, not the segment contents.
func (t *Table) GetChunk(chunkID types.ChunkID) (*Chunk, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if int(chunkID) >= len(t.chunks) {
		return nil, fmt.Errorf("%w: chunk %d, table has %d chunks", types.ErrInternal, chunkID, len(t.chunks))
	}
	return t.chunks[chunkID], nil
}

// ChunkAt satisfies segment.SourceTable, letting a Table serve as the target
// of a ReferenceSegment.
func (t *Table) ChunkAt(id types.ChunkID) (segment.SourceChunk, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if int(id) >= len(t.chunks) {
		return nil, false
	}
	return t.chunks[id], true
}

// EmplaceChunk adds a fully-built chunk (e.g. assembled by TableScan) to the
// table. If the current last chunk is still the empty placeholder left by
// New/AddColumn (no rows appended to it yet), it is overwritten in place;
// otherwise the new chunk is appended. This mirrors the original's
// emplace_chunk, and is why a table that never receives a matching row still
// reports exactly one (empty) chunk rather than zero.
func (t *Table) EmplaceChunk(c *Chunk) {
	t.mu.Lock()
	defer t.mu.Unlock()
	last := t.chunks[len(t.chunks)-1]
	if last.Size() == 0 {
		t.chunks[len(t.chunks)-1] = c
		return
	}
	t.chunks = append(t.chunks, c)
}

// CompressChunk replaces every ValueSegment column of chunkID with its
// dictionary-encoded equivalent. The per-column dictionary builds run off
// the table's critical section (in parallel, one goroutine per column, like
// the original's std::thread-per-column implementation) and only the final
// swap into place is serialized against readers and other mutators.
func (t *Table) CompressChunk(chunkID types.ChunkID) error {
	uncompressed, err := t.GetChunk(chunkID)
	if err != nil {
		return err
	}

	colCount := uncompressed.ColumnCount()
	compressed := make([]segment.Segment, colCount)

	var wg conc.WaitGroup
	errs := make([]error, colCount)
	for i := 0; i < colCount; i++ {
		i := i
		wg.Go(func() {
			src, err := uncompressed.Segment(types.ColumnID(i))
			if err != nil {
				errs[i] = err
				return
			}
			out, err := compressSegment(src)
			if err != nil {
				errs[i] = err
				return
			}
			compressed[i] = out
		})
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	for i, s := range compressed {
		if err := t.chunks[chunkID].ReplaceSegment(types.ColumnID(i), s); err != nil {
			return err
		}
	}
	return nil
}
