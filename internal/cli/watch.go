package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/edawolf/city-lines-sub002/pkg/analysis"
	"github.com/edawolf/city-lines-sub002/pkg/pipeline"
)

// watchCommand creates the watch command, an interactive terminal view
// of repeated layout passes over one scene.
func (c *CLI) watchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [scene-file]",
		Short: "Interactively run layout passes over a scene",
		Long: `Interactively run layout passes over a scene.

The watch command opens a terminal view of the scene's elements and
their layout defects. Each keypress runs one full pass, so corrections
can be stepped through move by move:

  space  run one layout pass
  r      reload the scene from disk, discarding corrections
  q      quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runWatch(cmd.Context(), args[0])
		},
	}
	return cmd
}

func (c *CLI) runWatch(ctx context.Context, input string) error {
	model, err := newWatchModel(input, c)
	if err != nil {
		return err
	}

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = program.Run()
	return err
}

// =============================================================================
// watchModel - Interactive pass stepping
// =============================================================================

// watchModel is the bubbletea model for the watch command.
type watchModel struct {
	cli       *CLI
	scenePath string

	runner   *pipeline.Runner
	snapshot *analysis.Analysis
	last     *pipeline.Result
	passes   int
	err      error
}

func newWatchModel(scenePath string, c *CLI) (*watchModel, error) {
	m := &watchModel{cli: c, scenePath: scenePath}
	if err := m.reload(); err != nil {
		return nil, err
	}
	return m, nil
}

// reload rebuilds the runner from the scene file, discarding all
// applied corrections and history.
func (m *watchModel) reload() error {
	sc, err := loadScene(m.scenePath)
	if err != nil {
		return fmt.Errorf("load scene %s: %w", m.scenePath, err)
	}
	reg, err := sc.Registry()
	if err != nil {
		return fmt.Errorf("build registry: %w", err)
	}

	runner := pipeline.NewRunner(reg, nil, m.cli.Logger)
	runner.SetViewport(sc.Viewport.Width, sc.Viewport.Height)

	snapshot, err := runner.Analyze(context.Background())
	if err != nil {
		return err
	}

	m.runner = runner
	m.snapshot = snapshot
	m.last = nil
	m.passes = 0
	m.err = nil
	return nil
}

func (m *watchModel) Init() tea.Cmd {
	return nil
}

func (m *watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ", "enter":
			result, err := m.runner.Execute(context.Background())
			if err != nil {
				m.err = err
				return m, nil
			}
			m.last = result
			m.snapshot = result.Analysis
			m.passes++
			m.err = nil

			// Re-analyze so the table reflects the applied moves.
			if snapshot, err := m.runner.Analyze(context.Background()); err == nil {
				m.snapshot = snapshot
			}
		case "r":
			m.err = m.reload()
		}
	}
	return m, nil
}

func (m *watchModel) View() string {
	var b strings.Builder

	vp := m.runner.Viewport()
	b.WriteString(StyleTitle.Render(fmt.Sprintf("citylines watch · %s", m.scenePath)))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("viewport %.0fx%.0f · pass %d · space run  r reload  q quit",
		vp.Width, vp.Height, m.passes)))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(styleIconError.Render(iconError) + " " + m.err.Error())
		b.WriteString("\n\n")
	}

	b.WriteString(m.elementTable())
	b.WriteString("\n\n")
	b.WriteString(m.statusLine())

	return b.String()
}

func (m *watchModel) elementTable() string {
	clustered := make(map[string]bool)
	for _, cl := range m.snapshot.Clusters {
		for _, id := range cl.Members {
			clustered[id] = true
		}
	}

	rows := [][]string{}
	lowVis := make(map[int]bool)
	for _, id := range m.runner.Registry().IDs() {
		el, ok := m.runner.Registry().Get(id)
		if !ok {
			continue
		}
		visibility := "—"
		pressures := "—"
		if r, found := m.snapshot.Report(id); found {
			visibility = fmt.Sprintf("%.2f", r.Visibility)
			pressures = fmt.Sprintf("%d", len(r.Pressures))
			if r.Visibility < 0.5 {
				lowVis[len(rows)] = true
			}
		}
		inCluster := ""
		if clustered[id] {
			inCluster = "✓"
		}
		rows = append(rows, []string{
			id,
			fmt.Sprintf("%.0f, %.0f", el.GlobalPosition.X, el.GlobalPosition.Y),
			visibility,
			pressures,
			inCluster,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Element", "Position", "Visibility", "Pressures", "Clustered").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 2 && lowVis[row] {
				return lipgloss.NewStyle().Foreground(colorYellow)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	return t.Render()
}

func (m *watchModel) statusLine() string {
	if m.last == nil {
		return StyleDim.Render(fmt.Sprintf("  %d clusters · %d overlaps · no passes yet",
			len(m.snapshot.Clusters), m.snapshot.OverlapCount()))
	}

	ex := m.last.Execution
	status := StyleSuccess.Render(fmt.Sprintf("%d/%d moves applied", ex.SuccessfulMoves, ex.TotalMoves))
	if ex.FailedMoves > 0 {
		status = StyleWarning.Render(fmt.Sprintf("%d/%d moves applied, %d failed",
			ex.SuccessfulMoves, ex.TotalMoves, ex.FailedMoves))
	}
	return "  " + status + StyleDim.Render(fmt.Sprintf(" · %d clusters · %d overlaps remain",
		len(m.snapshot.Clusters), m.snapshot.OverlapCount()))
}
