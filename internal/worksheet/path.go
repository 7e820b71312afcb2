package worksheet

import (
	"fmt"
	"strings"
)

// Path is a parsed dotted field path ("idealCustomerProfile.problem"),
// resolved segment by segment through nested section maps.
type Path []string

// ParsePath splits a dotted path into segments. Empty paths and empty
// segments are rejected.
func ParsePath(s string) (Path, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("empty field path")
	}
	segments := strings.Split(s, ".")
	for _, seg := range segments {
		if seg == "" {
			return nil, fmt.Errorf("invalid field path %q", s)
		}
	}
	return Path(segments), nil
}

func (p Path) String() string {
	return strings.Join(p, ".")
}

// Get resolves the path against a nested map. The second return is false
// when any segment is missing or a non-map value is traversed; an absent
// field is a normal condition, not an error.
func (p Path) Get(m map[string]any) (any, bool) {
	cur := any(m)
	for _, seg := range p {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = obj[seg]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// Set writes a value at the path, creating intermediate maps as needed.
// It fails if an intermediate segment holds a non-map value.
func (p Path) Set(m map[string]any, value any) error {
	cur := m
	for i, seg := range p {
		if i == len(p)-1 {
			cur[seg] = value
			return nil
		}
		next, ok := cur[seg]
		if !ok || next == nil {
			child := map[string]any{}
			cur[seg] = child
			cur = child
			continue
		}
		child, ok := next.(map[string]any)
		if !ok {
			return fmt.Errorf("path %q: segment %q is not an object", p, seg)
		}
		cur = child
	}
	return nil
}
