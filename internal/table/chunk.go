package table

import (
	"fmt"

	"github.com/tuannm99/colstore/internal/segment"
	"github.com/tuannm99/colstore/internal/types"
)

// Chunk is a horizontal slice of a table: an ordered list of segments, one
// per column, all of equal length. Chunk does not fix its column count:
// AddSegment appends a column whenever it is called, and it is Table.AddColumn
// that refuses new columns once rows exist.
type Chunk struct {
	segments []segment.Segment
}

// NewChunk builds an empty chunk with no segments yet.
func NewChunk() *Chunk {
	return &Chunk{}
}

// AddSegment appends a segment as the next column. Used only while building
// a chunk (at table construction, or by TableScan assembling its output).
func (c *Chunk) AddSegment(s segment.Segment) {
	c.segments = append(c.segments, s)
}

// ColumnCount returns the number of columns (segments) in this chunk.
func (c *Chunk) ColumnCount() int { return len(c.segments) }

// Size returns the number of rows in this chunk, i.e. the length shared by
// every segment. A chunk with no segments has size 0.
func (c *Chunk) Size() types.ChunkOffset {
	if len(c.segments) == 0 {
		return 0
	}
	return types.ChunkOffset(c.segments[0].Size())
}

// Segment returns the segment at column_id.
func (c *Chunk) Segment(col types.ColumnID) (segment.Segment, error) {
	if int(col) >= len(c.segments) {
		return nil, fmt.Errorf("%w: column %d, chunk has %d columns", types.ErrBadColumn, col, len(c.segments))
	}
	return c.segments[col], nil
}

// SegmentAt satisfies segment.SourceChunk, letting a Chunk serve as the
// target of a ReferenceSegment without this package depending back on the
// segment package's ReferenceSegment type.
func (c *Chunk) SegmentAt(col types.ColumnID) (segment.Segment, bool) {
	if int(col) >= len(c.segments) {
		return nil, false
	}
	return c.segments[col], true
}

// ReplaceSegment swaps in a new segment for a column, used by CompressChunk
// once the dictionary-encoded replacement has been built off the critical
// section.
func (c *Chunk) ReplaceSegment(col types.ColumnID, s segment.Segment) error {
	if int(col) >= len(c.segments) {
		return fmt.Errorf("%w: column %d, chunk has %d columns", types.ErrBadColumn, col, len(c.segments))
	}
	c.segments[col] = s
	return nil
}

// HasMixedIndirection reports whether some but not all of this chunk's
// segments are ReferenceSegments. TableScan rejects such chunks with
// ErrMixedSegmentIndirection.
func (c *Chunk) HasMixedIndirection() bool {
	refs, nonRefs := 0, 0
	for _, s := range c.segments {
		if s.Kind() == segment.KindReference {
			refs++
		} else {
			nonRefs++
		}
	}
	return refs > 0 && nonRefs > 0
}

// Append adds one row, type-checking each value against its column's
// segment. The caller (Table.Append) holds the table-wide write lock for
// the duration.
func (c *Chunk) Append(values []types.AllTypeVariant) error {
	if len(values) != len(c.segments) {
		return fmt.Errorf("%w: got %d values, chunk has %d columns", types.ErrInternal, len(values), len(c.segments))
	}
	// Check every value's type before touching any segment, so a mismatch in
	// a later column cannot leave earlier columns one row longer.
	for i, v := range values {
		if want := c.segments[i].DataType(); v.DataType() != want {
			return fmt.Errorf("%w: column %d expects %s, got %s", types.ErrTypeMismatch, i, want, v.DataType())
		}
	}
	for i, v := range values {
		appendable, ok := c.segments[i].(appendableSegment)
		if !ok {
			return fmt.Errorf("%w: column %d segment does not support append", types.ErrImmutable, i)
		}
		if err := appendable.Append(v); err != nil {
			return err
		}
	}
	return nil
}

// appendableSegment is satisfied by ValueSegment[T] and by
// DictionarySegment[T], whose Append always fails with ErrImmutable; that
// path is taken when rows are appended to a table whose last chunk has been
// compressed.
type appendableSegment interface {
	Append(types.AllTypeVariant) error
}
