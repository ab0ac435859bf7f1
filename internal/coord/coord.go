// Package coord constructs and parses the (typeCode, authorId, slug)
// addressing triple used to reference replaceable records.
package coord

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/azverev/relaycal/internal/errs"
	"github.com/azverev/relaycal/internal/model"
)

// Make serializes a coordinate as "{typeCode}:{authorId}:{slug}".
// The slug is opaque and is not validated here; callers must not pass an
// empty slug.
func Make(typeCode int, authorID, slug string) string {
	return strconv.Itoa(typeCode) + ":" + authorID + ":" + slug
}

// String serializes c in the wire form used by membership tags.
func String(c model.Coordinate) string {
	return Make(c.TypeCode, c.AuthorID, c.Slug)
}

// Parse splits s into its coordinate triple. It fails with errs.ErrInvalidFormat
// unless s has exactly three non-empty colon-delimited segments and the first
// parses as an integer.
func Parse(s string) (model.Coordinate, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return model.Coordinate{}, fmt.Errorf("%w: %q", errs.ErrInvalidFormat, s)
	}
	for _, p := range parts {
		if p == "" {
			return model.Coordinate{}, fmt.Errorf("%w: %q", errs.ErrInvalidFormat, s)
		}
	}
	typeCode, err := strconv.Atoi(parts[0])
	if err != nil {
		return model.Coordinate{}, fmt.Errorf("%w: %q", errs.ErrInvalidFormat, s)
	}
	return model.Coordinate{TypeCode: typeCode, AuthorID: parts[1], Slug: parts[2]}, nil
}

// IsReplaceableTypeCode reports whether n lies in the reserved replaceable range.
func IsReplaceableTypeCode(n int) bool {
	return n >= model.ReplaceableRangeStart && n < model.ReplaceableRangeEnd
}
