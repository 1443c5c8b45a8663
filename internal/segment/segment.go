// Package segment implements the three column representations a Chunk can
// hold: a dense mutable ValueSegment, an immutable dictionary-encoded
// DictionarySegment, and a ReferenceSegment that redirects each of its rows
// into another table. All three satisfy the Segment interface, which is the
// closed tagged variant the scan core dispatches on.
package segment

import "github.com/tuannm99/colstore/internal/types"

// Kind identifies which of the three segment representations a Segment is.
// The scan operator dispatches on this rather than on a type hierarchy.
type Kind uint8

const (
	KindValue Kind = iota + 1
	KindDictionary
	KindReference
)

func (k Kind) String() string {
	switch k {
	case KindValue:
		return "value"
	case KindDictionary:
		return "dictionary"
	case KindReference:
		return "reference"
	default:
		return "unknown"
	}
}

// Segment is a column slice with a fixed row-kind variant. It is the
// schema-erased view used by Chunk, Table and the scan operator; typed
// access (values, dictionaries, comparators) lives on the concrete types
// below and is reached by a type switch once the caller knows T.
type Segment interface {
	// Kind reports which concrete representation this segment is.
	Kind() Kind
	// DataType reports the column element type this segment carries.
	DataType() types.DataType
	// Size returns the number of rows in this segment.
	Size() uint32
	// At resolves the value at a chunk-local offset, following indirection
	// for ReferenceSegment.
	At(offset types.ChunkOffset) (types.AllTypeVariant, error)
}

// SourceTable is the minimal surface a ReferenceSegment needs from the table
// it points into. Table satisfies it implicitly; segment never imports the
// table package, which is what lets a ReferenceSegment hold a table handle
// without creating an import cycle between the two packages.
type SourceTable interface {
	ChunkAt(id types.ChunkID) (SourceChunk, bool)
}

// SourceChunk is the minimal surface a ReferenceSegment needs from a chunk
// of its referenced table.
type SourceChunk interface {
	SegmentAt(col types.ColumnID) (Segment, bool)
}
