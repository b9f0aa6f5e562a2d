package cache

import "strings"

// Keyer derives cache keys for each pipeline stage.
type Keyer interface {
	GraphKey(source, jobID string) string
	LayoutKey(graphHash string, opts LayoutKeyOpts) string
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts holds everything besides the graph that changes a layout.
type LayoutKeyOpts struct {
	Kind              string  `json:"kind"`
	HorizontalSpacing float64 `json:"hspace,omitempty"`
	VerticalSpacing   float64 `json:"vspace,omitempty"`
	BaseRadius        float64 `json:"base_radius,omitempty"`
	DepthIncrement    float64 `json:"depth_increment,omitempty"`
	RingSpacing       float64 `json:"ring_spacing,omitempty"`
	CellSize          float64 `json:"cell_size,omitempty"`
}

// ArtifactKeyOpts holds everything besides the layout that changes a
// rendered artifact.
type ArtifactKeyOpts struct {
	Format     string `json:"format"`
	EdgeLabels bool   `json:"edge_labels,omitempty"`
	Detailed   bool   `json:"detailed,omitempty"`
}

// DefaultKeyer is the standard Keyer.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// GraphKey is readable so a job's graph can be evicted by pattern:
// "graph:<source>:<jobID>".
func (DefaultKeyer) GraphKey(source, jobID string) string {
	return "graph:" + strings.ToLower(source) + ":" + jobID
}

// LayoutKey hashes the graph hash together with the layout options.
func (DefaultKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", graphHash, opts)
}

// ArtifactKey hashes the layout hash together with the render options.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

var _ Keyer = DefaultKeyer{}
