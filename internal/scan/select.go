package scan

import (
	"fmt"

	"github.com/tuannm99/colstore/internal/segment"
	"github.com/tuannm99/colstore/internal/types"
)

// selection is the result of evaluating a predicate against one chunk's
// source segment: either an explicit, ascending list of local offsets that
// qualify, or addAll, meaning every row of the segment qualifies without
// having been walked individually. For a segment reached through a
// ReferenceSegment, "local offset" means an index into that segment's own
// pos_list, not a freshly minted row coordinate.
type selection struct {
	offsets []types.ChunkOffset
	addAll  bool
}

// selectOffsets dispatches on the concrete representation of src and
// evaluates the predicate (op, literal) against it.
func selectOffsets[T types.Value](src segment.Segment, op Op, literal T, cmp func(a, b T) bool) (selection, error) {
	switch s := src.(type) {
	case *segment.ValueSegment[T]:
		return selectFromValue(s, cmp, literal), nil
	case *segment.DictionarySegment[T]:
		return selectFromDictionary(s, op, literal)
	case *segment.ReferenceSegment:
		return selectFromReference[T](s, op, literal, cmp)
	default:
		return selection{}, fmt.Errorf("%w: unhandled segment type in scan", types.ErrInternal)
	}
}

func selectFromValue[T types.Value](vs *segment.ValueSegment[T], cmp func(a, b T) bool, literal T) selection {
	values := vs.Values()
	var offsets []types.ChunkOffset
	for i, v := range values {
		if cmp(v, literal) {
			offsets = append(offsets, types.ChunkOffset(i))
		}
	}
	return selection{offsets: offsets}
}

func selectFromDictionary[T types.Value](ds *segment.DictionarySegment[T], op Op, literal T) (selection, error) {
	f := dictionaryFlags(ds, op, literal)
	if f.addNone {
		return selection{}, nil
	}
	if f.addAll {
		return selection{addAll: true}, nil
	}

	av := ds.AttributeVector()
	n := av.Size()
	var offsets []types.ChunkOffset
	for i := uint32(0); i < n; i++ {
		code, err := av.Get(i)
		if err != nil {
			return selection{}, err
		}
		if f.matches(code) {
			offsets = append(offsets, types.ChunkOffset(i))
		}
	}
	return selection{offsets: offsets}, nil
}

// referencedDict pairs a referenced chunk's dictionary segment with the
// predicate flags computed against it, so the per-row loop below can reuse
// both without recomputing lower_bound/upper_bound per row.
type referencedDict[T types.Value] struct {
	seg   *segment.DictionarySegment[T]
	flags dictFlags
}

// selectFromReference evaluates the predicate through a ReferenceSegment's
// indirection. Each distinct referenced chunk is classified once (as
// dictionary-with-flags or plain value), and if every referenced chunk
// reached turns out to be a dictionary wholly satisfying the predicate, the
// whole pos_list qualifies without a single per-row comparison.
func selectFromReference[T types.Value](ref *segment.ReferenceSegment, op Op, literal T, cmp func(a, b T) bool) (selection, error) {
	posList := ref.PosList()
	if len(posList) == 0 {
		return selection{}, nil
	}

	referencedTable := ref.ReferencedTable()
	referencedColumn := ref.ReferencedColumn()

	dicts := map[types.ChunkID]referencedDict[T]{}
	values := map[types.ChunkID]*segment.ValueSegment[T]{}
	seen := map[types.ChunkID]bool{}
	allDictAddAll := true

	for _, row := range posList {
		if seen[row.ChunkID] {
			continue
		}
		seen[row.ChunkID] = true

		rc, ok := referencedTable.ChunkAt(row.ChunkID)
		if !ok {
			return selection{}, fmt.Errorf("%w: referenced chunk %d does not exist", types.ErrInternal, row.ChunkID)
		}
		rs, ok := rc.SegmentAt(referencedColumn)
		if !ok {
			return selection{}, fmt.Errorf("%w: referenced column %d does not exist", types.ErrInternal, referencedColumn)
		}

		switch s := rs.(type) {
		case *segment.DictionarySegment[T]:
			f := dictionaryFlags(s, op, literal)
			dicts[row.ChunkID] = referencedDict[T]{seg: s, flags: f}
			if !f.addAll {
				allDictAddAll = false
			}
		case *segment.ValueSegment[T]:
			values[row.ChunkID] = s
			allDictAddAll = false
		default:
			return selection{}, fmt.Errorf("%w: reference segment points at another reference segment", types.ErrInternal)
		}
	}

	if allDictAddAll {
		return selection{addAll: true}, nil
	}

	var offsets []types.ChunkOffset
	for idx, row := range posList {
		if rd, ok := dicts[row.ChunkID]; ok {
			if rd.flags.addNone {
				continue
			}
			if rd.flags.addAll {
				offsets = append(offsets, types.ChunkOffset(idx))
				continue
			}
			code, err := rd.seg.AttributeVector().Get(uint32(row.ChunkOffset))
			if err != nil {
				return selection{}, err
			}
			if rd.flags.matches(code) {
				offsets = append(offsets, types.ChunkOffset(idx))
			}
			continue
		}

		vs, ok := values[row.ChunkID]
		if !ok {
			return selection{}, fmt.Errorf("%w: no classified segment for referenced chunk %d", types.ErrInternal, row.ChunkID)
		}
		v, err := vs.Get(row.ChunkOffset)
		if err != nil {
			return selection{}, err
		}
		if cmp(v, literal) {
			offsets = append(offsets, types.ChunkOffset(idx))
		}
	}
	return selection{offsets: offsets}, nil
}
