package segment

import (
	"fmt"
	"sort"

	"github.com/tuannm99/colstore/internal/attributevector"
	"github.com/tuannm99/colstore/internal/types"
)

// DictionarySegment is an immutable, order-preserving dictionary encoding of
// a ValueSegment: a sorted vector of distinct values plus a packed array of
// per-row codes into that vector.
type DictionarySegment[T types.Value] struct {
	dictionary []T
	attributes attributevector.Vector
}

// FromValue builds a DictionarySegment from the contents of a ValueSegment.
// It fails with ErrDictionaryTooLarge if the source has more distinct values
// than any supported attribute-vector width can address.
func FromValue[T types.Value](src *ValueSegment[T]) (*DictionarySegment[T], error) {
	values := src.Values()

	distinct := make(map[T]struct{}, len(values))
	for _, v := range values {
		distinct[v] = struct{}{}
	}

	dict := make([]T, 0, len(distinct))
	for v := range distinct {
		dict = append(dict, v)
	}
	sort.Slice(dict, func(i, j int) bool { return dict[i] < dict[j] })

	attrs, err := attributevector.New(uint32(len(values)), len(dict))
	if err != nil {
		return nil, err
	}

	codeOf := make(map[T]types.ValueID, len(dict))
	for i, v := range dict {
		codeOf[v] = types.ValueID(i)
	}

	for i, v := range values {
		if err := attrs.Set(uint32(i), codeOf[v]); err != nil {
			return nil, fmt.Errorf("%w: encoding row %d", err, i)
		}
	}

	return &DictionarySegment[T]{dictionary: dict, attributes: attrs}, nil
}

func (s *DictionarySegment[T]) Kind() Kind             { return KindDictionary }
func (s *DictionarySegment[T]) DataType() types.DataType { return types.DataTypeOf[T]() }
func (s *DictionarySegment[T]) Size() uint32           { return s.attributes.Size() }

// UniqueValuesCount returns the number of distinct values in the dictionary.
func (s *DictionarySegment[T]) UniqueValuesCount() int { return len(s.dictionary) }

// Dictionary returns the sorted, distinct backing values. Callers must not
// mutate the returned slice.
func (s *DictionarySegment[T]) Dictionary() []T { return s.dictionary }

// AttributeVector returns the packed per-row dictionary codes.
func (s *DictionarySegment[T]) AttributeVector() attributevector.Vector { return s.attributes }

// Get returns the decoded value at a chunk offset.
func (s *DictionarySegment[T]) Get(off types.ChunkOffset) (T, error) {
	code, err := s.attributes.Get(uint32(off))
	if err != nil {
		var zero T
		return zero, err
	}
	return s.ValueByValueID(code)
}

// At satisfies Segment.
func (s *DictionarySegment[T]) At(off types.ChunkOffset) (types.AllTypeVariant, error) {
	v, err := s.Get(off)
	if err != nil {
		return types.AllTypeVariant{}, err
	}
	return types.VariantOf(v), nil
}

// ValueByValueID returns the dictionary entry for a code, failing with
// ErrBadValueID if it is out of range.
func (s *DictionarySegment[T]) ValueByValueID(id types.ValueID) (T, error) {
	if int(id) >= len(s.dictionary) {
		var zero T
		return zero, fmt.Errorf("%w: %d, dictionary size %d", types.ErrBadValueID, id, len(s.dictionary))
	}
	return s.dictionary[id], nil
}

// LowerBound returns the first ValueID whose dictionary entry is >= x, or
// InvalidValueID if every entry is smaller than x.
func (s *DictionarySegment[T]) LowerBound(x T) types.ValueID {
	i := sort.Search(len(s.dictionary), func(i int) bool { return s.dictionary[i] >= x })
	if i == len(s.dictionary) {
		return types.InvalidValueID
	}
	return types.ValueID(i)
}

// UpperBound returns the first ValueID whose dictionary entry is > x, or
// InvalidValueID if no such entry exists.
func (s *DictionarySegment[T]) UpperBound(x T) types.ValueID {
	i := sort.Search(len(s.dictionary), func(i int) bool { return s.dictionary[i] > x })
	if i == len(s.dictionary) {
		return types.InvalidValueID
	}
	return types.ValueID(i)
}

// Append always fails: dictionary segments are immutable post-construction.
func (s *DictionarySegment[T]) Append(types.AllTypeVariant) error {
	return types.ErrImmutable
}

// EstimateMemoryUsage is advisory only.
func (s *DictionarySegment[T]) EstimateMemoryUsage() int {
	var zero T
	return int(sizeofValue(zero))*len(s.dictionary) + s.attributes.Width()*int(s.attributes.Size())
}

var _ Segment = (*DictionarySegment[int32])(nil)
