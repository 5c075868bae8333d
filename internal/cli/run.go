package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/edawolf/city-lines-sub002/pkg/pipeline"
)

// runCommand creates the run command for executing layout passes.
func (c *CLI) runCommand() *cobra.Command {
	var (
		output  string
		passes  int
		summary bool
	)

	cmd := &cobra.Command{
		Use:   "run [scene-file]",
		Short: "Run layout passes over a scene and write the corrected scene",
		Long: `Run layout passes over a scene and write the corrected scene.

The run command loads a scene file (.toml or .json), executes one or
more analyze-plan-apply passes, and writes the corrected element
positions to a new scene file.

A pass detects crowded clusters, off-screen elements and overlapping
pairs, then applies prioritized corrective moves. Multiple passes let
moves from one pass settle before the next analysis; layouts usually
converge after two or three.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRun(cmd.Context(), args[0], output, passes, summary)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.corrected.json)")
	cmd.Flags().IntVarP(&passes, "passes", "n", 1, "number of layout passes to run")
	cmd.Flags().BoolVar(&summary, "summary", false, "print the execution summary of the last pass")

	return cmd
}

// runRun loads the scene, executes the passes, and writes the output.
func (c *CLI) runRun(ctx context.Context, input, output string, passes int, summary bool) error {
	if passes < 1 {
		return fmt.Errorf("passes must be at least 1, got %d", passes)
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

	prog := newProgress(c.Logger)
	var last *pipeline.Result
	for i := 0; i < passes; i++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		last, err = runner.Execute(ctx)
		if err != nil {
			return fmt.Errorf("pass %d: %w", i+1, err)
		}
	}
	prog.done(fmt.Sprintf("Applied %d moves across %d passes",
		totalMoves(runner), passes))

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".corrected.json"
	}

	corrected := reg.Export(runner.Viewport())
	data, err := corrected.Marshal()
	if err != nil {
		return fmt.Errorf("marshal corrected scene: %w", err)
	}
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	if last.Execution.FailedMoves > 0 {
		printWarning("%d moves failed", last.Execution.FailedMoves)
	}
	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(last.Stats.ElementCount, last.Stats.ClusterCount, last.Stats.OverlapCount)

	if summary {
		printNewline()
		fmt.Println(runner.Summary())
	}
	return nil
}

func totalMoves(r *pipeline.Runner) int {
	n := 0
	for _, rec := range r.History().Records() {
		n += rec.Results.TotalMoves
	}
	return n
}
