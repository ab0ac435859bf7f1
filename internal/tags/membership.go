package tags

import (
	"fmt"

	"github.com/azverev/relaycal/internal/errs"
)

// Membership mutation over a container's wire tag list. Both functions are
// pure: the input is never modified and the result shares no backing storage
// with it. Duplicate detection compares raw reference strings; an id-form and
// a coordinate-form reference to the same underlying record are distinct.

// ComputeAddition returns wire with one membership tag for ref appended,
// preserving the order of all existing tags. It fails with
// errs.ErrAlreadyPresent if any a/e tag already carries an identical
// reference value.
func ComputeAddition(wire [][]string, ref Reference) ([][]string, error) {
	decoded := Decode(wire)
	for _, t := range decoded {
		if existing, ok := memberRef(t); ok && existing == ref {
			return nil, fmt.Errorf("%w: %s", errs.ErrAlreadyPresent, ref)
		}
	}
	var added Tag
	if ref.IsCoordinate() {
		added = AddrRef{Ref: ref}
	} else {
		added = EventRef{Ref: ref}
	}
	return Encode(append(decoded, added)), nil
}

// ComputeRemoval returns wire with every a/e tag equal to ref dropped,
// preserving the order of the remaining tags. It fails with
// errs.ErrNotPresent if ref was absent.
func ComputeRemoval(wire [][]string, ref Reference) ([][]string, error) {
	decoded := Decode(wire)
	kept := make([]Tag, 0, len(decoded))
	for _, t := range decoded {
		if existing, ok := memberRef(t); ok && existing == ref {
			continue
		}
		kept = append(kept, t)
	}
	if len(kept) == len(decoded) {
		return nil, fmt.Errorf("%w: %s", errs.ErrNotPresent, ref)
	}
	return Encode(kept), nil
}
