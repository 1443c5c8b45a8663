package scan

import (
	"github.com/tuannm99/colstore/internal/segment"
	"github.com/tuannm99/colstore/internal/types"
)

// dictFlags captures how a predicate resolves against a single dictionary
// without touching its attribute vector: either every row qualifies
// (addAll), no row qualifies (addNone), or matches must be tested per code
// via the matches function.
type dictFlags struct {
	addNone bool
	addAll  bool
	matches func(types.ValueID) bool
}

// dictionaryFlags computes dictFlags for op and literal against ds's sorted
// dictionary, per the lower_bound/upper_bound construction the original
// table scan uses to avoid ever touching the attribute vector for every
// row of a dictionary segment that is wholly in or wholly out.
func dictionaryFlags[T types.Value](ds *segment.DictionarySegment[T], op Op, literal T) dictFlags {
	switch op {
	case Eq:
		lb := ds.LowerBound(literal)
		addNone := lb == types.InvalidValueID
		if !addNone {
			if v, _ := ds.ValueByValueID(lb); v != literal {
				addNone = true
			}
		}
		return dictFlags{addNone: addNone, matches: func(c types.ValueID) bool { return c == lb }}

	case Ne:
		lb := ds.LowerBound(literal)
		addAll := lb == types.InvalidValueID
		if !addAll {
			if v, _ := ds.ValueByValueID(lb); v != literal {
				addAll = true
			}
		}
		return dictFlags{addAll: addAll, matches: func(c types.ValueID) bool { return c != lb }}

	case Lt:
		lb := ds.LowerBound(literal)
		return dictFlags{
			addNone: lb == 0,
			addAll:  lb == types.InvalidValueID,
			matches: func(c types.ValueID) bool { return c < lb },
		}

	case Le:
		ub := ds.UpperBound(literal)
		return dictFlags{
			addNone: ub == 0,
			addAll:  ub == types.InvalidValueID,
			matches: func(c types.ValueID) bool { return c < ub },
		}

	case Ge:
		lb := ds.LowerBound(literal)
		return dictFlags{
			addNone: lb == types.InvalidValueID,
			addAll:  lb == 0,
			matches: func(c types.ValueID) bool { return c >= lb },
		}

	case Gt:
		ub := ds.UpperBound(literal)
		return dictFlags{
			addNone: ub == types.InvalidValueID,
			addAll:  ub == 0,
			matches: func(c types.ValueID) bool { return c >= ub },
		}

	default:
		return dictFlags{addNone: true}
	}
}
