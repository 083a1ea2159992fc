package identity

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

//go:embed embed/exports.mjs
var exportsScript []byte

// NodeLoader loads artifacts by running them through Node.js.
type NodeLoader struct {
	binary string
}

// NewNodeLoader creates a loader that runs the given node binary. An empty
// binary defaults to "node" on PATH.
func NewNodeLoader(binary string) *NodeLoader {
	if binary == "" {
		binary = "node"
	}
	return &NodeLoader{binary: binary}
}

// Load implements ExportLoader.
func (l *NodeLoader) Load(ctx context.Context, artifactPath string) ([]Export, error) {
	cmd := exec.CommandContext(ctx, l.binary, "--input-type=module")
	cmd.Stdin = bytes.NewReader(exportsScript)
	cmd.Env = append(os.Environ(), "GAS_ARTIFACT_PATH="+artifactPath)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("node failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return decodeExports(out)
}

// decodeExports parses the script output: a JSON array of [name, value] pairs.
func decodeExports(data []byte) ([]Export, error) {
	var pairs [][]json.RawMessage
	if err := json.Unmarshal(bytes.TrimSpace(data), &pairs); err != nil {
		return nil, fmt.Errorf("failed to decode artifact exports: %w", err)
	}

	exports := make([]Export, 0, len(pairs))
	for i, pair := range pairs {
		if len(pair) != 2 {
			return nil, fmt.Errorf("failed to decode artifact exports: entry %d is not a pair", i)
		}
		var exp Export
		if err := json.Unmarshal(pair[0], &exp.Name); err != nil {
			return nil, fmt.Errorf("failed to decode export name at %d: %w", i, err)
		}
		if err := json.Unmarshal(pair[1], &exp.Value); err != nil {
			// Arrays and other non-object values cannot be descriptors.
			continue
		}
		exports = append(exports, exp)
	}
	return exports, nil
}
