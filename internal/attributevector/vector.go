// Package attributevector implements the fixed-width packed array of
// dictionary codes that backs every DictionarySegment. The backing width (1,
// 2 or 4 bytes) is chosen by the dictionary builder from the number of
// distinct values it needs to address, not by the caller.
package attributevector

import (
	"fmt"

	"github.com/tuannm99/colstore/internal/types"
)

// Vector is a width-specialized packed array of dictionary codes addressed
// by chunk-local offset.
type Vector interface {
	Get(i uint32) (types.ValueID, error)
	Set(i uint32, v types.ValueID) error
	Size() uint32
	// Width reports the backing integer width in bytes: 1, 2 or 4.
	Width() int
}

// New allocates a zero-initialized vector of n codes using the narrowest of
// the three supported widths that is large enough to address dictionarySize
// distinct values. It fails with ErrDictionaryTooLarge if none fits.
func New(n uint32, dictionarySize int) (Vector, error) {
	switch {
	case dictionarySize <= maxForWidth(1):
		return &width1{codes: make([]uint8, n)}, nil
	case dictionarySize <= maxForWidth(2):
		return &width2{codes: make([]uint16, n)}, nil
	case dictionarySize <= maxForWidth(4):
		return &width4{codes: make([]uint32, n)}, nil
	default:
		return nil, fmt.Errorf("%w: %d distinct values exceed the largest supported width", types.ErrDictionaryTooLarge, dictionarySize)
	}
}

// maxForWidth returns 2^(8*width)-1, the largest dictionary cardinality that
// width bytes can address (the all-ones pattern is reserved as a sentinel).
func maxForWidth(width int) int {
	switch width {
	case 1:
		return 1<<8 - 1
	case 2:
		return 1<<16 - 1
	case 4:
		return 1<<32 - 1
	default:
		return 0
	}
}

func getAt[U uint8 | uint16 | uint32](codes []U, i uint32) (types.ValueID, error) {
	if i >= uint32(len(codes)) {
		return 0, fmt.Errorf("%w: offset %d, size %d", types.ErrOutOfBounds, i, len(codes))
	}
	return types.ValueID(codes[i]), nil
}

func setAt[U uint8 | uint16 | uint32](codes []U, i uint32, v types.ValueID, width int) error {
	if i >= uint32(len(codes)) {
		return fmt.Errorf("%w: offset %d, size %d", types.ErrOutOfBounds, i, len(codes))
	}
	if v != types.InvalidValueID && int(v) > maxForWidth(width) {
		return fmt.Errorf("%w: value id %d does not fit in %d bytes (overflow)", types.ErrOutOfBounds, v, width)
	}
	codes[i] = U(v)
	return nil
}

type width1 struct{ codes []uint8 }

func (w *width1) Get(i uint32) (types.ValueID, error)  { return getAt(w.codes, i) }
func (w *width1) Set(i uint32, v types.ValueID) error   { return setAt(w.codes, i, v, 1) }
func (w *width1) Size() uint32                          { return uint32(len(w.codes)) }
func (w *width1) Width() int                            { return 1 }

type width2 struct{ codes []uint16 }

func (w *width2) Get(i uint32) (types.ValueID, error)  { return getAt(w.codes, i) }
func (w *width2) Set(i uint32, v types.ValueID) error   { return setAt(w.codes, i, v, 2) }
func (w *width2) Size() uint32                          { return uint32(len(w.codes)) }
func (w *width2) Width() int                            { return 2 }

type width4 struct{ codes []uint32 }

func (w *width4) Get(i uint32) (types.ValueID, error)  { return getAt(w.codes, i) }
func (w *width4) Set(i uint32, v types.ValueID) error   { return setAt(w.codes, i, v, 4) }
func (w *width4) Size() uint32                          { return uint32(len(w.codes)) }
func (w *width4) Width() int                            { return 4 }
