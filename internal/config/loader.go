package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"slices"

	"github.com/gasoline-dev/gas/internal/ctxlog"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
)

// fileRoot mirrors the top level of gasoline.hcl.
type fileRoot struct {
	Project               *string     `hcl:"project,optional"`
	ResourceContainerDirs *[]string   `hcl:"resource_container_dirs,optional"`
	Exclude               []string    `hcl:"exclude,optional"`
	NodeBinary            *string     `hcl:"node_binary,optional"`
	State                 *stateBlock `hcl:"state,block"`
	Remain                hcl.Body    `hcl:",remain"`
}

type stateBlock struct {
	Backend *string `hcl:"backend,optional"`
	Path    *string `hcl:"path,optional"`
}

// Load reads the project file at path. A missing file is not an error: the
// defaults for projectRoot are returned instead.
func Load(ctx context.Context, path, projectRoot string) (*File, error) {
	logger := ctxlog.FromContext(ctx)
	cfg := Default(projectRoot)

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Debug("No project file found, using defaults.", "path", path)
			return cfg, nil
		}
		return nil, fmt.Errorf("error accessing project file %s: %w", path, err)
	}

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse project file %s: %w", path, diags)
	}

	var root fileRoot
	diags = gohcl.DecodeBody(hclFile.Body, evalContext(projectRoot), &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode project file %s: %w", path, diags)
	}
	warnUnknown(ctx, root.Remain)

	if root.Project != nil {
		cfg.Project = *root.Project
	}
	if root.ResourceContainerDirs != nil {
		cfg.ResourceContainerDirs = *root.ResourceContainerDirs
	}
	cfg.Exclude = root.Exclude
	if root.NodeBinary != nil && *root.NodeBinary != "" {
		cfg.NodeBinary = *root.NodeBinary
	}
	if root.State != nil {
		if root.State.Backend != nil {
			cfg.State.Backend = *root.State.Backend
		}
		if root.State.Path != nil {
			cfg.State.Path = *root.State.Path
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid project file %s: %w", path, err)
	}
	logger.Debug("Project file loaded.", "path", path, "project", cfg.Project, "containers", cfg.ResourceContainerDirs)
	return cfg, nil
}

func evalContext(projectRoot string) *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"project_root": cty.StringVal(projectRoot),
		},
		Functions: map[string]function.Function{
			"env": envFunc,
		},
	}
}

// envFunc returns the value of an environment variable, or "" when unset.
var envFunc = function.New(&function.Spec{
	Params: []function.Parameter{
		{Name: "name", Type: cty.String},
	},
	Type: function.StaticReturnType(cty.String),
	Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
		return cty.StringVal(os.Getenv(args[0].AsString())), nil
	},
})

// warnUnknown logs every attribute and block of the project file that
// fileRoot does not declare.
func warnUnknown(ctx context.Context, body hcl.Body) {
	if body == nil {
		return
	}
	logger := ctxlog.FromContext(ctx)

	// JustAttributes also reports blocks as errors; the attributes it
	// returns are still complete.
	attrs, _ := body.JustAttributes()
	for _, name := range slices.Sorted(maps.Keys(attrs)) {
		logger.Warn("Ignoring unknown project file setting.", "name", name)
	}

	syntaxBody, ok := body.(*hclsyntax.Body)
	if !ok {
		return
	}
	schema, _ := gohcl.ImpliedBodySchema(fileRoot{})
	known := make(map[string]struct{}, len(schema.Blocks))
	for _, b := range schema.Blocks {
		known[b.Type] = struct{}{}
	}
	for _, block := range syntaxBody.Blocks {
		if _, ok := known[block.Type]; !ok {
			logger.Warn("Ignoring unknown project file block.", "type", block.Type, "range", block.DefRange().String())
		}
	}
}
