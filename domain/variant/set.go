package variant

import "strings"

// Set is a bitmask over variants, used for capability allow-sets.
type Set uint32

// Any is the wildcard allow-set: always attempt the operation and let the
// remote service reject it if it turns out to be unsupported.
const Any Set = 1 << 31

// NewSet builds a set from the given variants.
func NewSet(vs ...Variant) Set {
	var s Set
	for _, v := range vs {
		s |= 1 << v
	}
	return s
}

// Contains reports whether v is permitted by the set.
func (s Set) Contains(v Variant) bool {
	if s&Any != 0 {
		return true
	}
	return s&(1<<v) != 0
}

// IsAny reports whether the set is the wildcard.
func (s Set) IsAny() bool {
	return s&Any != 0
}

// Variants returns the members of the set in declaration order.
func (s Set) Variants() []Variant {
	if s.IsAny() {
		return nil
	}
	var vs []Variant
	for v := Variant(0); v < numVariants; v++ {
		if s&(1<<v) != 0 {
			vs = append(vs, v)
		}
	}
	return vs
}

// String renders the set for error messages and logs.
func (s Set) String() string {
	if s.IsAny() {
		return "Any"
	}
	var b strings.Builder
	for i, v := range s.Variants() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(v.String())
	}
	return b.String()
}
