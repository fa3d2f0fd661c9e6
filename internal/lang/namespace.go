package lang

import (
	"slices"
	"strings"
)

// NamespaceSeparator joins the segments of a NamespacedId.
const NamespaceSeparator = "::"

// NamespacedId is an ordered list of name segments.
type NamespacedId []string

// Global is the reserved empty id.
var Global = NamespacedId{}

// ParseNamespacedId splits s on "::". An empty string yields Global.
func ParseNamespacedId(s string) NamespacedId {
	if s == "" {
		return Global
	}
	return NamespacedId(strings.Split(s, NamespaceSeparator))
}

// IsGlobal reports whether id is the reserved global id.
func (id NamespacedId) IsGlobal() bool {
	return len(id) == 0
}

// Equal compares ids segment by segment.
func (id NamespacedId) Equal(other NamespacedId) bool {
	return slices.Equal(id, other)
}

// Child returns a new id with name appended; id itself is not modified.
func (id NamespacedId) Child(name string) NamespacedId {
	out := make(NamespacedId, 0, len(id)+1)
	out = append(out, id...)
	return append(out, name)
}

// Parent drops the last segment. The parent of Global is Global.
func (id NamespacedId) Parent() NamespacedId {
	if len(id) == 0 {
		return Global
	}
	return slices.Clone(id[:len(id)-1])
}

// Key returns a string usable as a map key; equal ids produce equal keys.
func (id NamespacedId) Key() string {
	return id.String()
}

func (id NamespacedId) String() string {
	return strings.Join(id, NamespaceSeparator)
}
