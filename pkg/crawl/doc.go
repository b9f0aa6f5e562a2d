// Package crawl defines the crawl-discovery data consumed by the layout
// engine: pages found during a crawl ([Node]) and the links between them
// ([Edge]).
//
// The data is produced by an external crawler. This package only decodes,
// validates and re-encodes it; nothing here fetches pages.
//
// # Wire Format
//
// Graphs use the crawler's JSON format:
//
//	{
//	  "nodes": [
//	    {"id": "a", "url": "https://example.com/", "depth": 0, "discovery_order": 0, "size": 5120},
//	    {"id": "b", "url": "https://example.com/about", "depth": 1, "discovery_order": 1, "size": 2048}
//	  ],
//	  "edges": [{"source": "a", "target": "b", "link_text": "About"}]
//	}
//
// A node without "depth" or "discovery_order" is rejected with a
// MALFORMED_NODE error. A missing "domain" is derived from the URL using
// the public suffix list.
//
// # Validation
//
// [Validate] checks the preconditions the layout engine relies on (unique,
// non-empty ids; non-negative depth and discovery order). The engine does
// not call it; callers decide where to enforce it.
package crawl
