package pressure

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/edawolf/city-lines-sub002/pkg/analysis"
)

// Options configures pressure graph rendering.
type Options struct {
	// Detailed includes the pressure count in node labels.
	// When false, only the element ID and visibility are shown.
	Detailed bool
}

// ToDOT converts an analysis snapshot to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG].
//
// Elements become nodes, overlap pressures become undirected edges
// labeled with the pressure magnitude, and clusters become boxed
// subgraphs labeled with their dominant region. Elements below half
// visibility are highlighted with a red fill.
func ToDOT(a *analysis.Analysis, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=fdp;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	clustered := make(map[string]bool)
	for i, c := range a.Clusters {
		fmt.Fprintf(&buf, "  subgraph cluster_%d {\n", i)
		fmt.Fprintf(&buf, "    label=%q;\n", fmt.Sprintf("cluster: %s", c.Region))
		buf.WriteString("    style=dashed;\n")
		for _, id := range c.Members {
			clustered[id] = true
			if r, ok := a.Report(id); ok {
				fmt.Fprintf(&buf, "    %q [%s];\n", id, strings.Join(fmtAttrs(r, opts.Detailed), ", "))
			}
		}
		buf.WriteString("  }\n")
	}

	for i := range a.Reports {
		r := &a.Reports[i]
		if clustered[r.AgentID] {
			continue
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", r.AgentID, strings.Join(fmtAttrs(*r, opts.Detailed), ", "))
	}

	buf.WriteString("\n")
	for i := range a.Reports {
		r := &a.Reports[i]
		for _, p := range r.Pressures {
			// Pressures come in symmetric pairs; emit each edge once.
			if p.Type != analysis.PressureOverlap || r.AgentID >= p.Source {
				continue
			}
			fmt.Fprintf(&buf, "  %q -- %q [label=%q];\n", r.AgentID, p.Source, fmt.Sprintf("%.2f", p.Magnitude))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtAttrs(r analysis.Report, detailed bool) []string {
	label := fmt.Sprintf("%s\nvis: %.2f", r.AgentID, r.Visibility)
	if detailed {
		label += fmt.Sprintf("\npressures: %d", len(r.Pressures))
	}

	attrs := []string{fmt.Sprintf("label=%q", label)}
	if r.Visibility < 0.5 {
		attrs = append(attrs, "fillcolor=lightcoral")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
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
