package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/edawolf/city-lines-sub002/pkg/pipeline"
	"github.com/edawolf/city-lines-sub002/pkg/render/pressure"
)

// graphCommand creates the graph command for rendering pressure graphs.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		output   string
		format   string
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "graph [scene-file]",
		Short: "Render a scene's pressure graph",
		Long: `Render a scene's pressure graph.

The graph command analyzes a scene and renders the result as a
Graphviz diagram: elements as boxes, overlap pressures as labeled
edges, clusters as dashed subgraphs. Low-visibility elements are
highlighted.

Output formats are DOT source (-f dot) and rendered SVG (-f svg).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGraph(cmd.Context(), args[0], output, format, detailed)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.pressure.<format>)")
	cmd.Flags().StringVarP(&format, "format", "f", "svg", "output format: svg (default), dot")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include pressure counts in node labels")

	return cmd
}

func (c *CLI) runGraph(ctx context.Context, input, output, format string, detailed bool) error {
	if format != "svg" && format != "dot" {
		return fmt.Errorf("unsupported format %q (want svg or dot)", format)
	}

	sc, err := loadScene(input)
	if err != nil {
		return fmt.Errorf("load scene %s: %w", input, err)
	}
	reg, err := sc.Registry()
	if err != nil {
		return fmt.Errorf("build registry: %w", err)
	}

	runner := pipeline.NewRunner(reg, nil, c.Logger)
	runner.SetViewport(sc.Viewport.Width, sc.Viewport.Height)

	snapshot, err := runner.Analyze(ctx)
	if err != nil {
		return err
	}

	dot := pressure.ToDOT(snapshot, pressure.Options{Detailed: detailed})

	var blob []byte
	if format == "svg" {
		blob, err = pressure.RenderSVG(dot)
		if err != nil {
			return fmt.Errorf("render pressure graph: %w", err)
		}
	} else {
		blob = []byte(dot)
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".pressure." + format
	}
	if err := os.WriteFile(outputPath, blob, 0644); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Pressure graph rendered")
	printFile(outputPath)
	printStats(len(snapshot.Reports), len(snapshot.Clusters), snapshot.OverlapCount())
	return nil
}
