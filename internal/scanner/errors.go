package scanner

import "fmt"

// ScanError reports a resource directory that does not follow the layout
// convention.
type ScanError struct {
	Dir    string
	Path   string
	Reason string
}

func (e *ScanError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("invalid resource directory %s: %s", e.Dir, e.Reason)
	}
	return fmt.Sprintf("invalid resource directory %s: %s: %s", e.Dir, e.Reason, e.Path)
}
