package statestore

import (
	"fmt"

	"github.com/gasoline-dev/gas/internal/config"
)

// Open returns the store selected by the project configuration.
func Open(state config.State, project string) (Store, error) {
	switch state.Backend {
	case config.BackendFile:
		return NewFileStore(state.Path, project), nil
	case config.BackendBolt:
		return OpenBolt(state.Path, project)
	default:
		return nil, fmt.Errorf("unknown state backend %q", state.Backend)
	}
}
