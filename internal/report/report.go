// Package report renders command results as styled text, JSON or YAML.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/gasoline-dev/gas/internal/dag"
	"github.com/gasoline-dev/gas/internal/resourceid"
	"github.com/gasoline-dev/gas/internal/topology"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Graph is the result of resolving a project's resource graph.
type Graph struct {
	Resources topology.Tree   `json:"resources" yaml:"resources"`
	Upstream  dag.UpstreamMap `json:"upstream" yaml:"upstream"`
	// Dependents is the reverse of the direct dependency map.
	Dependents dag.DirectMap     `json:"dependents" yaml:"dependents"`
	Endpoints  []resourceid.ID   `json:"endpoints" yaml:"endpoints"`
	Cycles     [][]resourceid.ID `json:"cycles,omitempty" yaml:"cycles,omitempty"`
}

// Renderer writes results to an output stream.
type Renderer struct {
	w      io.Writer
	format string

	title lipgloss.Style
	id    lipgloss.Style
	muted lipgloss.Style
	warn  lipgloss.Style
	good  lipgloss.Style
	bad   lipgloss.Style
}

// NewRenderer creates a renderer for one of the supported formats. Styles
// adapt to the color capabilities of w.
func NewRenderer(w io.Writer, format string) (*Renderer, error) {
	switch format {
	case FormatText, FormatJSON, FormatYAML:
	default:
		return nil, fmt.Errorf("invalid format %q: must be 'text', 'json' or 'yaml'", format)
	}

	lr := lipgloss.NewRenderer(w)
	return &Renderer{
		w:      w,
		format: format,
		title:  lr.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF")),
		id:     lr.NewStyle().Foreground(lipgloss.Color("#E0E0E0")),
		muted:  lr.NewStyle().Foreground(lipgloss.Color("#AAAAAA")),
		warn:   lr.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFB86C")),
		good:   lr.NewStyle().Foreground(lipgloss.Color("#50FA7B")),
		bad:    lr.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B")),
	}, nil
}

// encode writes v in a structured format. It reports false for text.
func (r *Renderer) encode(v any) (bool, error) {
	switch r.format {
	case FormatJSON:
		enc := json.NewEncoder(r.w)
		enc.SetIndent("", "  ")
		return true, enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(r.w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return true, err
		}
		return true, enc.Close()
	}
	return false, nil
}

func (r *Renderer) line(indent int, s string) {
	fmt.Fprintf(r.w, "%s%s\n", strings.Repeat("  ", indent), s)
}

func joinIDs(ids []resourceid.ID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.String()
	}
	return strings.Join(parts, ", ")
}
