// Package objpath decomposes hierarchical object keys into ordered path
// components. Keys are slash-delimited ("/ops/etl/daily"); a key that is a
// plain integer addresses an object by its stable numeric ID instead.
package objpath

import (
	"strconv"
	"strings"
)

// Component is one prefix of a decomposed key, shortest first.
type Component struct {
	Key    string // full key up to and including this segment
	Parent string // key of the parent container
	Label  string // display label, the bare segment text
}

// IsNumericID reports whether key addresses an object by numeric ID.
// IDs cannot name containers that do not exist yet, so path creation does
// not apply to them.
func IsNumericID(key string) bool {
	_, err := strconv.ParseInt(key, 10, 64)
	return err == nil
}

// Decompose splits a slash-delimited key into components ordered root to
// leaf, so that each component's parent precedes it. The root itself ("/")
// is not a component. Empty segments from doubled or trailing slashes are
// dropped.
func Decompose(key string) []Component {
	segments := strings.Split(key, "/")
	var out []Component
	prefix := ""
	for _, seg := range segments {
		if seg == "" {
			continue
		}
		parent := prefix
		if parent == "" {
			parent = "/"
		}
		prefix += "/" + seg
		out = append(out, Component{Key: prefix, Parent: parent, Label: seg})
	}
	return out
}
