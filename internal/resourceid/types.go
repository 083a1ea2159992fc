package resourceid

// ID is the opaque, globally unique identifier of a resource.
type ID string

// String returns the raw identifier.
func (id ID) String() string {
	return string(id)
}

// Address is the structured form of an ID.
type Address struct {
	EntityGroup string
	Entity      string
	Kind        string
	// Qualifiers holds any segments between Kind and Suffix, such as a
	// descriptor or version token.
	Qualifiers []string
	Suffix     string
}
