package resourceid

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// suffixLen is the number of hex characters kept from a random UUID.
const suffixLen = 12

// New builds a fresh ID for a resource with a random unique suffix.
func New(entityGroup, entity, kind string, qualifiers ...string) (ID, error) {
	addr := &Address{
		EntityGroup: entityGroup,
		Entity:      entity,
		Kind:        kind,
		Qualifiers:  qualifiers,
		Suffix:      NewSuffix(),
	}

	// Generated ids must satisfy Parse like scanned ones.
	if _, err := Parse(addr.String()); err != nil {
		return "", fmt.Errorf("cannot build resource id: %w", err)
	}
	return addr.ID(), nil
}

// NewSuffix returns a random lowercase hex suffix.
func NewSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:suffixLen]
}
