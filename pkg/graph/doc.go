// Package graph provides the serialization types handed to the graph
// rendering surface.
//
// This package sits at the boundary between the layout engine and whatever
// draws the graph (a browser canvas, Graphviz, a JSON consumer). It
// combines a crawl graph, a computed [layout.Result] and an edge
// classification into one [Layout] document.
//
// # Core Types
//
//   - [Layout]: positioned nodes and classified edges for one crawl job
//   - [PositionedNode]: node id, coordinates and [StyleHints]
//   - [ClassifiedEdge]: edge id, endpoints and kind
//
// # Style Tiers
//
// Nodes are colored by crawl depth:
//
//	graph.TierRoot       // depth 0 (the seed)
//	graph.TierDepth1     // depth 1
//	graph.TierDepth2     // depth 2
//	graph.TierDepth3Plus // depth 3 and deeper
//	graph.TierExternal   // referenced but never fetched (size 0)
//
// # Serialization
//
//	{
//	  "job_id": "job-42",
//	  "kind": "hierarchical",
//	  "nodes": [{"id": "a", "x": 0, "y": 0, "style_hints": {"tier": "root", "color": "#e4572e"}}],
//	  "edges": [{"id": "e0", "source": "a", "target": "b", "kind": "hierarchical"}]
//	}
//
// Common operations:
//
//	l := graph.Build(g, layout.Compute(g.Nodes, kind), layout.EdgeKinds(g.Nodes, g.Edges))
//	data, _ := graph.MarshalLayout(l)
//	graph.WriteLayoutFile(l, "job.layout.json")
//	l, _ = graph.ReadLayoutFile("job.layout.json")
//
// # Concurrency
//
// All functions are safe for concurrent reads but not concurrent writes.
package graph
