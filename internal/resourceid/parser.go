package resourceid

import (
	"fmt"
	"regexp"
	"strings"
)

// minSegments is the smallest number of colon-delimited segments in an ID.
const minSegments = 4

// segmentRegex matches a single identifier segment.
var segmentRegex = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// Parse creates a new Address by parsing the canonical string form of an ID.
func Parse(raw string) (*Address, error) {
	if raw == "" {
		return nil, fmt.Errorf("resource id cannot be empty")
	}

	segments := strings.Split(raw, ":")
	if len(segments) < minSegments {
		return nil, fmt.Errorf("resource id %q has %d segments, want at least %d", raw, len(segments), minSegments)
	}
	for i, s := range segments {
		if s == "" {
			return nil, fmt.Errorf("resource id %q has an empty segment at position %d", raw, i)
		}
		if !segmentRegex.MatchString(s) {
			return nil, fmt.Errorf("resource id %q has an invalid segment %q", raw, s)
		}
	}

	last := len(segments) - 1
	addr := &Address{
		EntityGroup: segments[0],
		Entity:      segments[1],
		Kind:        segments[2],
		Suffix:      segments[last],
	}
	if last > 3 {
		addr.Qualifiers = append([]string(nil), segments[3:last]...)
	}
	return addr, nil
}

// IsLike reports whether raw looks like a resource id: any string with at
// least three colons. It is looser than Parse and picks the descriptor
// export out of a built artifact.
func IsLike(raw string) bool {
	return strings.Count(raw, ":") >= minSegments-1
}
