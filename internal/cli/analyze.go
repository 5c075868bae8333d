package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/edawolf/city-lines-sub002/pkg/pipeline"
	"github.com/edawolf/city-lines-sub002/pkg/plan"
)

// analyzeCommand creates the analyze command for inspecting scenes.
func (c *CLI) analyzeCommand() *cobra.Command {
	var showPlan bool

	cmd := &cobra.Command{
		Use:   "analyze [scene-file]",
		Short: "Analyze a scene without moving anything",
		Long: `Analyze a scene without moving anything.

The analyze command runs the analysis stage alone: it reports each
element's visibility, the overlap pressures between elements, and any
clusters of crowded elements. With --plan it also shows the corrective
moves a run would apply, without applying them.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runAnalyze(cmd.Context(), args[0], showPlan)
		},
	}

	cmd.Flags().BoolVar(&showPlan, "plan", false, "also show the moves a layout pass would apply")

	return cmd
}

func (c *CLI) runAnalyze(ctx context.Context, input string, showPlan bool) error {
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

	fmt.Println(StyleTitle.Render("Elements"))
	for _, r := range snapshot.Reports {
		line := fmt.Sprintf("%-20s visibility %.2f", r.AgentID, r.Visibility)
		switch {
		case r.Visibility < 0.5:
			printWarning("%s", line)
		case len(r.Pressures) > 0:
			printInfo("%s  (%d pressures)", line, len(r.Pressures))
		default:
			printDetail("%s", line)
		}
	}

	printNewline()
	fmt.Println(StyleTitle.Render("Clusters"))
	if len(snapshot.Clusters) == 0 {
		printDetail("none")
	}
	for _, cl := range snapshot.Clusters {
		printInfo("%s near %s (centroid %.0f, %.0f)",
			strings.Join(cl.Members, ", "), cl.Region, cl.Centroid.X, cl.Centroid.Y)
	}

	printNewline()
	printStats(len(snapshot.Reports), len(snapshot.Clusters), snapshot.OverlapCount())

	if showPlan {
		p := plan.NewPlanner().Build(snapshot)
		printNewline()
		fmt.Println(StyleTitle.Render("Planned Moves"))
		if p.Empty() {
			printDetail("none")
		}
		for _, m := range p.Moves {
			printInfo("%s %s (%.0f, %.0f)  %s  priority %.1f",
				m.ElementID, iconArrow, m.Target.X, m.Target.Y, m.Reason, m.Priority)
		}
	}
	return nil
}
