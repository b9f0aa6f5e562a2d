package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/goccy/go-graphviz"

	errs "github.com/matzehuels/crawlviz/pkg/errors"
	"github.com/matzehuels/crawlviz/pkg/graph"
	"github.com/matzehuels/crawlviz/pkg/render"
)

// DefaultScale is the number of Graphviz points per layout unit.
const DefaultScale = 0.5

const crossLinkColor = "#9e9e9e"

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the URL and depth to node labels.
	// When false, only the node label is shown.
	Detailed bool

	// EdgeLabels draws link text next to edges.
	EdgeLabels bool

	// Scale converts layout units to Graphviz points. Zero means [DefaultScale].
	Scale float64
}

func (o Options) scale() float64 {
	if o.Scale <= 0 {
		return DefaultScale
	}
	return o.Scale
}

// ToDOT converts a layout to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG] or [RenderPNG].
//
// Every node is pinned at its computed position. Layout y grows downward
// while Graphviz y grows upward, so y is negated. Hierarchical edges are
// solid; cross-links are dashed grey.
func ToDOT(l graph.Layout, opts Options) string {
	scale := opts.scale()

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  notranslate=true;\n")
	buf.WriteString("  overlap=true;\n")
	buf.WriteString("  splines=true;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontsize=14, margin=\"0.15,0.08\"];\n")
	buf.WriteString("  edge [arrowsize=0.7];\n")
	buf.WriteString("\n")

	for _, n := range l.Nodes {
		attrs := fmtAttrs(n, fmtLabel(n, opts.Detailed), scale)
		fmt.Fprintf(&buf, "  %s [%s];\n", quoteDOT(n.ID), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range l.Edges {
		attrs := edgeAttrs(e, opts.EdgeLabels)
		if len(attrs) == 0 {
			fmt.Fprintf(&buf, "  %s -> %s;\n", quoteDOT(e.Source), quoteDOT(e.Target))
			continue
		}
		fmt.Fprintf(&buf, "  %s -> %s [%s];\n", quoteDOT(e.Source), quoteDOT(e.Target), strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n graph.PositionedNode, detailed bool) string {
	label := n.Label
	if label == "" {
		label = n.ID
	}
	if !detailed {
		return label
	}

	parts := []string{label}
	if n.URL != "" && n.URL != label {
		parts = append(parts, n.URL)
	}
	parts = append(parts, fmt.Sprintf("depth: %d", n.Depth))
	return strings.Join(parts, "\n")
}

func fmtAttrs(n graph.PositionedNode, label string, scale float64) []string {
	attrs := []string{
		"label="+quoteDOT(label),
		fmt.Sprintf("pos=\"%s,%s!\"", fmtCoord(n.X*scale), fmtCoord(-n.Y*scale)),
	}
	if n.Style.Color != "" {
		attrs = append(attrs, "fillcolor="+quoteDOT(n.Style.Color))
	}
	if n.Style.Tier == graph.TierExternal {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"")
	}
	if n.URL != "" {
		attrs = append(attrs, "tooltip="+quoteDOT(n.URL))
	}
	return attrs
}

func edgeAttrs(e graph.ClassifiedEdge, labels bool) []string {
	var attrs []string
	if !e.IsHierarchical() {
		attrs = append(attrs, "style=dashed", "color="+quoteDOT(crossLinkColor))
	}
	if labels && e.Label != "" {
		attrs = append(attrs, "label="+quoteDOT(e.Label), "fontsize=10")
	}
	return attrs
}

// quoteDOT returns s as a DOT double-quoted string. Only quotes and
// backslashes are escaped and newlines become \n line breaks; other
// control characters turn into spaces and invalid UTF-8 into U+FFFD.
func quoteDOT(s string) string {
	s = strings.ToValidUTF8(s, "\uFFFD")

	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch {
		case r == '"' || r == '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
		case unicode.IsControl(r):
			b.WriteByte(' ')
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func fmtCoord(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// RenderSVG renders a DOT graph to SVG using Graphviz's neato engine, which
// keeps pinned node positions.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	out, err := renderDOT(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(out), nil
}

// RenderPNG renders a DOT graph to PNG using Graphviz's built-in image
// renderer.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return renderDOT(ctx, dot, graphviz.PNG)
}

func renderDOT(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="(-?[0-9.]+)\s+(-?[0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// Render produces the layout in the given format. JSON is the layout
// document itself; the other formats go through [ToDOT].
func Render(ctx context.Context, l graph.Layout, format render.Format, opts Options) ([]byte, error) {
	switch format {
	case render.FormatJSON:
		return graph.MarshalLayout(l)
	case render.FormatDOT:
		return []byte(ToDOT(l, opts)), nil
	case render.FormatSVG:
		return RenderSVG(ctx, ToDOT(l, opts))
	case render.FormatPNG:
		return RenderPNG(ctx, ToDOT(l, opts))
	}
	return nil, errs.New(errs.ErrCodeInvalidFormat, "unsupported format %q", format)
}
