package crawl

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"

	errs "github.com/matzehuels/crawlviz/pkg/errors"
)

// =============================================================================
// Graph Serialization API
// =============================================================================

// ReadGraph decodes a crawl graph in the crawler's JSON wire format.
//
// Nodes missing depth or discovery_order, and graphs failing [Validate],
// produce a MALFORMED_NODE error. The result is normalized, see
// [Graph.Normalize].
func ReadGraph(r io.Reader) (*Graph, error) {
	var w RawGraph
	if err := json.NewDecoder(r).Decode(&w); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "decode crawl graph")
	}
	return w.Graph()
}

// ReadGraphFile reads a crawl graph from a JSON file.
func ReadGraphFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadGraph(f)
}

// UnmarshalGraph decodes a crawl graph from JSON bytes.
func UnmarshalGraph(data []byte) (*Graph, error) {
	return ReadGraph(bytes.NewReader(data))
}

// WriteGraph encodes g as pretty-printed JSON in the wire format.
func WriteGraph(g *Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(g); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteGraphFile writes g to a JSON file.
// The file is created with 0644 permissions.
func WriteGraphFile(g *Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteGraph(g, f)
}

// MarshalGraph converts g to JSON bytes.
func MarshalGraph(g *Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteGraph(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Hash returns the SHA-256 of g's canonical encoding. The job id is
// excluded so identical crawl data shares cache entries across jobs.
// g is hashed as [Graph.Normalize] would leave it, so a graph and its
// decoded encoding hash the same.
func Hash(g *Graph) string {
	c := Graph{Nodes: slices.Clone(g.Nodes), Edges: g.Edges}
	c.Normalize()
	data, _ := json.Marshal(c)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// =============================================================================
// Raw Types
// =============================================================================

// RawNode is a node as stored upstream, with pointer fields so absent
// values can be told apart from zero. Sources decode into RawNode and
// convert with [RawNode.Node].
type RawNode struct {
	ID             string `json:"id" bson:"id"`
	URL            string `json:"url" bson:"url"`
	Title          string `json:"title" bson:"title"`
	Depth          *int   `json:"depth" bson:"depth"`
	DiscoveryOrder *int   `json:"discovery_order" bson:"discovery_order"`
	Domain         string `json:"domain" bson:"domain"`
	Size           int64  `json:"size" bson:"size"`
}

// Node converts r, failing with MALFORMED_NODE if depth or discovery_order
// is absent.
func (r RawNode) Node() (Node, error) {
	if r.Depth == nil {
		return Node{}, malformed(ErrMissingField, "node %q: depth", r.ID)
	}
	if r.DiscoveryOrder == nil {
		return Node{}, malformed(ErrMissingField, "node %q: discovery_order", r.ID)
	}
	return Node{
		ID:             r.ID,
		URL:            r.URL,
		Title:          r.Title,
		Depth:          *r.Depth,
		DiscoveryOrder: *r.DiscoveryOrder,
		Domain:         r.Domain,
		SizeBytes:      r.Size,
	}, nil
}

// RawGraph is a graph of [RawNode]s.
type RawGraph struct {
	JobID string    `json:"job_id" bson:"_id"`
	Nodes []RawNode `json:"nodes" bson:"nodes"`
	Edges []Edge    `json:"edges" bson:"edges"`
}

// Graph converts every node, validates the result and normalizes it.
func (w RawGraph) Graph() (*Graph, error) {
	g := &Graph{
		JobID: w.JobID,
		Nodes: make([]Node, len(w.Nodes)),
		Edges: w.Edges,
	}
	for i, rn := range w.Nodes {
		n, err := rn.Node()
		if err != nil {
			return nil, err
		}
		g.Nodes[i] = n
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	g.Normalize()
	return g, nil
}

// Normalize fills in missing domains and replaces nil node and edge slices
// with empty ones. Decoded graphs are always normalized; graphs built in
// memory are normalized by the pipeline before they are cached.
func (g *Graph) Normalize() {
	if g.Nodes == nil {
		g.Nodes = []Node{}
	}
	if g.Edges == nil {
		g.Edges = []Edge{}
	}
	FillDomains(g.Nodes)
}
