// Package tags models record attributes (tags) as typed variants with an
// explicit encode/decode boundary to the flat array-of-strings wire form,
// and implements set membership over container records.
package tags

import "strings"

// Wire tag names understood by this package.
const (
	nameIdentifier = "d"
	nameAddrRef    = "a"
	nameEventRef   = "e"
)

// Reference points to a record, either by raw content hash or by serialized
// coordinate "type:authorId:slug". The two forms are distinguished
// syntactically by the presence of exactly two colon separators.
type Reference string

// IsCoordinate reports whether r is a coordinate-form reference.
func (r Reference) IsCoordinate() bool {
	return strings.Count(string(r), ":") == 2
}

// TagName returns the membership tag name used for r: "a" for
// coordinate-form references, "e" for id-form references.
func (r Reference) TagName() string {
	if r.IsCoordinate() {
		return nameAddrRef
	}
	return nameEventRef
}

// Tag is one decoded record attribute.
type Tag interface {
	// Encode returns the wire form of the tag, first element is the name.
	Encode() []string
}

// Identifier is the d-tag carrying a replaceable record's slug. Rest holds
// any trailing wire elements so a decode/encode cycle never loses them.
type Identifier struct {
	Slug string
	Rest []string
}

func (t Identifier) Encode() []string {
	return append([]string{nameIdentifier, t.Slug}, t.Rest...)
}

// AddrRef is an a-tag membership attribute holding a coordinate-form reference.
// Rest carries trailing elements such as relay hints.
type AddrRef struct {
	Ref  Reference
	Rest []string
}

func (t AddrRef) Encode() []string {
	return append([]string{nameAddrRef, string(t.Ref)}, t.Rest...)
}

// EventRef is an e-tag membership attribute holding an id-form reference.
// Rest carries trailing elements such as relay hints.
type EventRef struct {
	Ref  Reference
	Rest []string
}

func (t EventRef) Encode() []string {
	return append([]string{nameEventRef, string(t.Ref)}, t.Rest...)
}

// Generic carries any tag this package does not interpret, unchanged.
type Generic struct {
	Fields []string
}

func (t Generic) Encode() []string {
	out := make([]string, len(t.Fields))
	copy(out, t.Fields)
	return out
}

// Decode converts the flat wire form into typed variants. Unrecognized or
// malformed tags become Generic and pass through untouched.
func Decode(wire [][]string) []Tag {
	out := make([]Tag, 0, len(wire))
	for _, f := range wire {
		if len(f) >= 2 {
			switch f[0] {
			case nameIdentifier:
				out = append(out, Identifier{Slug: f[1], Rest: rest(f)})
				continue
			case nameAddrRef:
				out = append(out, AddrRef{Ref: Reference(f[1]), Rest: rest(f)})
				continue
			case nameEventRef:
				out = append(out, EventRef{Ref: Reference(f[1]), Rest: rest(f)})
				continue
			}
		}
		cp := make([]string, len(f))
		copy(cp, f)
		out = append(out, Generic{Fields: cp})
	}
	return out
}

func rest(f []string) []string {
	if len(f) <= 2 {
		return nil
	}
	cp := make([]string, len(f)-2)
	copy(cp, f[2:])
	return cp
}

// Encode converts typed variants back to the flat wire form. The result
// shares no backing storage with the input.
func Encode(ts []Tag) [][]string {
	out := make([][]string, 0, len(ts))
	for _, t := range ts {
		out = append(out, t.Encode())
	}
	return out
}

// memberRef extracts the reference from a membership tag, if t is one.
func memberRef(t Tag) (Reference, bool) {
	switch v := t.(type) {
	case AddrRef:
		return v.Ref, true
	case EventRef:
		return v.Ref, true
	}
	return "", false
}

// References returns the member reference set of a container's wire tags,
// in tag order.
func References(wire [][]string) []Reference {
	var out []Reference
	for _, t := range Decode(wire) {
		if ref, ok := memberRef(t); ok {
			out = append(out, ref)
		}
	}
	return out
}

// Slug returns the value of the d-tag, if present.
func Slug(wire [][]string) (string, bool) {
	for _, t := range Decode(wire) {
		if id, ok := t.(Identifier); ok {
			return id.Slug, true
		}
	}
	return "", false
}

// First returns the second element of the first tag named name, if any.
func First(wire [][]string, name string) (string, bool) {
	for _, f := range wire {
		if len(f) >= 2 && f[0] == name {
			return f[1], true
		}
	}
	return "", false
}
