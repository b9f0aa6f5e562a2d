package crawl

// Node is a page (or external reference) discovered during a crawl.
//
// Depth is the hop distance from the seed URL (the seed has depth 0).
// DiscoveryOrder increases strictly in the order pages were first observed
// and breaks ties when choosing a page's parent. SizeBytes is 0 for pages
// that were referenced but never fetched.
type Node struct {
	ID             string `json:"id" bson:"id"`
	URL            string `json:"url" bson:"url"`
	Title          string `json:"title,omitempty" bson:"title,omitempty"`
	Depth          int    `json:"depth" bson:"depth"`
	DiscoveryOrder int    `json:"discovery_order" bson:"discovery_order"`
	Domain         string `json:"domain,omitempty" bson:"domain,omitempty"`
	SizeBytes      int64  `json:"size" bson:"size"`
}

// IsRoot reports whether the node is the crawl seed.
func (n Node) IsRoot() bool { return n.Depth == 0 }

// IsUnvisited reports whether the node was referenced but never fetched.
func (n Node) IsUnvisited() bool { return n.SizeBytes == 0 }

// Label returns the title if set, otherwise the URL, otherwise the ID.
func (n Node) Label() string {
	switch {
	case n.Title != "":
		return n.Title
	case n.URL != "":
		return n.URL
	}
	return n.ID
}

// Edge is a link found on the Source page pointing at the Target page.
type Edge struct {
	Source   string `json:"source" bson:"source"`
	Target   string `json:"target" bson:"target"`
	LinkText string `json:"link_text,omitempty" bson:"link_text,omitempty"`
}

// IsSelf reports whether the edge links a page to itself.
func (e Edge) IsSelf() bool { return e.Source == e.Target }

// Graph holds the discovery data of one crawl job.
// Node order is significant: layouts break ties by it.
type Graph struct {
	JobID string `json:"job_id,omitempty" bson:"_id,omitempty"`
	Nodes []Node `json:"nodes" bson:"nodes"`
	Edges []Edge `json:"edges" bson:"edges"`
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.Nodes) }

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int { return len(g.Edges) }

// Index returns an id → node lookup. With duplicate ids the first
// occurrence wins.
func (g *Graph) Index() map[string]Node {
	return IndexNodes(g.Nodes)
}

// IndexNodes builds an id → node lookup from a slice.
// With duplicate ids the first occurrence wins.
func IndexNodes(nodes []Node) map[string]Node {
	m := make(map[string]Node, len(nodes))
	for _, n := range nodes {
		if _, ok := m[n.ID]; !ok {
			m[n.ID] = n
		}
	}
	return m
}

// MaxDepth returns the deepest crawl depth in the graph, or 0 when empty.
func (g *Graph) MaxDepth() int {
	depth := 0
	for _, n := range g.Nodes {
		depth = max(depth, n.Depth)
	}
	return depth
}

// Domains returns the distinct domains in first-seen order.
func (g *Graph) Domains() []string {
	seen := make(map[string]bool)
	var out []string
	for _, n := range g.Nodes {
		if n.Domain == "" || seen[n.Domain] {
			continue
		}
		seen[n.Domain] = true
		out = append(out, n.Domain)
	}
	return out
}
