package resourceid

import (
	"slices"
	"strings"
)

// String serializes the Address into its canonical colon-delimited form.
func (a *Address) String() string {
	if a == nil {
		return ""
	}

	parts := make([]string, 0, minSegments+len(a.Qualifiers))
	parts = append(parts, a.EntityGroup, a.Entity, a.Kind)
	parts = append(parts, a.Qualifiers...)
	parts = append(parts, a.Suffix)
	return strings.Join(parts, ":")
}

// ID returns the Address as an ID.
func (a *Address) ID() ID {
	return ID(a.String())
}

// Equal checks two addresses for equality.
func (a *Address) Equal(other *Address) bool {
	if a == nil || other == nil {
		return a == other
	}
	return a.EntityGroup == other.EntityGroup &&
		a.Entity == other.Entity &&
		a.Kind == other.Kind &&
		a.Suffix == other.Suffix &&
		slices.Equal(a.Qualifiers, other.Qualifiers)
}
