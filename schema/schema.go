package schema

import (
	"github.com/spektr-org/express/engine"
)

// ============================================================================
// SCHEMA — Describes the shape of a dataset for the loader and the CLI
// ============================================================================
// Auto-discovered from CSV. The loader uses column kinds to type the go-gg
// table; the CLI uses roles and display names to suggest chart arguments.
// Column keys are the raw headers, exactly as the engine addresses them.
// ============================================================================

// Role is what a column is good for when building a chart.
type Role string

const (
	RoleDimension Role = "dimension" // grouping: color, facets, animation frames
	RoleMeasure   Role = "measure"   // numeric positions and sizes
	RoleSkipped   Role = "skipped"   // identifiers, free text, empty columns
)

// Config describes the complete shape of a dataset.
type Config struct {
	Name    string       `json:"name"`
	Rows    int          `json:"rows"`
	Columns []ColumnMeta `json:"columns"`

	// Auto-discovery metadata
	DiscoveredFrom string `json:"discoveredFrom,omitempty"`
	DiscoveredAt   string `json:"discoveredAt,omitempty"`
}

// ColumnMeta describes one column.
type ColumnMeta struct {
	Key             string            `json:"key"`
	DisplayName     string            `json:"displayName"`
	Kind            engine.ColumnKind `json:"-"`
	KindName        string            `json:"kind"`
	Role            Role              `json:"role"`
	SkipReason      string            `json:"skipReason,omitempty"`
	TimeLayout      string            `json:"timeLayout,omitempty"` // Go layout for temporal columns
	SampleValues    []string          `json:"sampleValues"`
	Unique          int               `json:"unique"`
	Nulls           int               `json:"nulls"`
	CardinalityHint string            `json:"cardinalityHint,omitempty"` // "low", "medium", "high"
}

// Column returns the metadata of key, or nil.
func (c Config) Column(key string) *ColumnMeta {
	for i := range c.Columns {
		if c.Columns[i].Key == key {
			return &c.Columns[i]
		}
	}
	return nil
}

// DimensionKeys returns all dimension keys.
func (c Config) DimensionKeys() []string { return c.keys(RoleDimension) }

// MeasureKeys returns all measure keys.
func (c Config) MeasureKeys() []string { return c.keys(RoleMeasure) }

// SkippedKeys returns the columns discovery found no chart use for.
func (c Config) SkippedKeys() []string { return c.keys(RoleSkipped) }

func (c Config) keys(role Role) []string {
	var keys []string
	for _, col := range c.Columns {
		if col.Role == role {
			keys = append(keys, col.Key)
		}
	}
	return keys
}

// DefaultMeasure returns the first measure's key, or "" when there is none.
func (c Config) DefaultMeasure() string {
	if ms := c.MeasureKeys(); len(ms) > 0 {
		return ms[0]
	}
	return ""
}

// Labels maps every column whose display name differs from its key to
// that display name, in the shape of engine.Args.Labels.
func (c Config) Labels() map[string]string {
	out := make(map[string]string)
	for _, col := range c.Columns {
		if col.DisplayName != "" && col.DisplayName != col.Key {
			out[col.Key] = col.DisplayName
		}
	}
	return out
}
