package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/hierpart/internal/config"
	"github.com/Sumatoshi-tech/hierpart/pkg/alg/stats"
	"github.com/Sumatoshi-tech/hierpart/pkg/hierpart"
	"github.com/Sumatoshi-tech/hierpart/pkg/persist"
)

// StatsCommand holds configuration for the stats command.
type StatsCommand struct {
	configPath string
	format     string
	noColor    bool
}

// NewStatsCommand creates the stats cobra command.
func NewStatsCommand() *cobra.Command {
	sc := &StatsCommand{}

	cmd := &cobra.Command{
		Use:   "stats FILE",
		Short: "Print structural statistics for a partition tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return sc.Run(args[0], cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&sc.format, "format", "f", "", "output format: table or json (default from config)")
	cmd.Flags().BoolVar(&sc.noColor, "no-color", false, "disable colorized output")
	cmd.Flags().StringVarP(&sc.configPath, "config", "c", "", "path to a config file")

	return cmd
}

// treeStats is the JSON shape of the stats output.
type treeStats struct {
	Nodes         int         `json:"nodes"`
	Edges         int         `json:"edges"`
	Elements      int         `json:"elements"`
	Leaves        int         `json:"leaves"`
	MaxDepth      int         `json:"max_depth"`
	LeafDepths    stats.Basic `json:"leaf_depths"`
	Branching     stats.Basic `json:"branching_factors"`
	Consistent    bool        `json:"consistent"`
	ChecksEnabled bool        `json:"checks_enabled"`
}

// Run loads the tree and renders its statistics.
func (sc *StatsCommand) Run(path string, w io.Writer) error {
	cfg, err := config.Load(sc.configPath)
	if err != nil {
		return err
	}

	format := cfg.Output.Format
	if sc.format != "" {
		format = sc.format
	}

	p, err := persist.Load(path)
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}

	ts := collectStats(p)

	if format == config.OutputJSON {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")

		encodeErr := encoder.Encode(ts)
		if encodeErr != nil {
			return fmt.Errorf("encode stats: %w", encodeErr)
		}

		return nil
	}

	sc.renderTable(w, ts, cfg.Output.NoColor || sc.noColor)

	return nil
}

func collectStats(p *hierpart.Partition[string]) treeStats {
	return treeStats{
		Nodes:         p.NumNodes(),
		Edges:         p.NumEdges(),
		Elements:      p.TotalNumElements(),
		Leaves:        len(p.Leaves()),
		MaxDepth:      p.MaxDepth(),
		LeafDepths:    p.DepthsBasicStats(),
		Branching:     p.BranchingFactorsBasicStats(true),
		Consistent:    p.Consistency(),
		ChecksEnabled: p.Checks(),
	}
}

func (sc *StatsCommand) renderTable(w io.Writer, ts treeStats, noColor bool) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Metric", "Value"})
	t.AppendRows([]table.Row{
		{"Nodes", humanize.Comma(int64(ts.Nodes))},
		{"Edges", humanize.Comma(int64(ts.Edges))},
		{"Elements", humanize.Comma(int64(ts.Elements))},
		{"Leaves", humanize.Comma(int64(ts.Leaves))},
		{"Max depth", ts.MaxDepth},
		{"Leaf depth", formatBasic(ts.LeafDepths)},
		{"Branching factor", formatBasic(ts.Branching)},
		{"Consistent", formatBool(ts.Consistent, noColor)},
	})
	t.Render()
}

// formatBasic renders a basic-stats summary as "mean ± std [min, max] (n)".
func formatBasic(b stats.Basic) string {
	return fmt.Sprintf("%.3f ± %.3f [%.0f, %.0f] (n=%d)", b.Mean, b.StdDev, b.Min, b.Max, b.Count)
}

func formatBool(v, noColor bool) string {
	if v {
		if noColor {
			return "yes"
		}

		return color.GreenString("yes")
	}

	if noColor {
		return "no"
	}

	return color.RedString("no")
}
