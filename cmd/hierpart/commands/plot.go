package commands

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/hierpart/pkg/hierpart"
	"github.com/Sumatoshi-tech/hierpart/pkg/persist"
)

// defaultPlotOutput is the output file when -o is not given.
const defaultPlotOutput = "hierpart.html"

// PlotCommand holds configuration for the plot command.
type PlotCommand struct {
	output string
}

// NewPlotCommand creates the plot cobra command.
func NewPlotCommand() *cobra.Command {
	pc := &PlotCommand{}

	cmd := &cobra.Command{
		Use:   "plot FILE",
		Short: "Render depth and branching distributions as an HTML page",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return pc.Run(args[0])
		},
	}

	cmd.Flags().StringVarP(&pc.output, "output", "o", defaultPlotOutput, "output HTML file")

	return cmd
}

// Run loads the tree and writes the plot page.
func (pc *PlotCommand) Run(path string) error {
	p, err := persist.Load(path)
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}

	file, err := os.Create(pc.output)
	if err != nil {
		return fmt.Errorf("create plot file: %w", err)
	}
	defer file.Close()

	err = renderPlots(p, file)
	if err != nil {
		return err
	}

	err = file.Close()
	if err != nil {
		return fmt.Errorf("close plot file: %w", err)
	}

	return nil
}

func renderPlots(p *hierpart.Partition[string], w io.Writer) error {
	page := components.NewPage()
	page.SetLayout(components.PageFlexLayout)
	page.AddCharts(
		nodesPerDepthChart(p),
		branchingChart(p),
	)

	err := page.Render(w)
	if err != nil {
		return fmt.Errorf("render plot page: %w", err)
	}

	return nil
}

// nodesPerDepthChart builds a bar chart of node counts per depth level.
func nodesPerDepthChart(p *hierpart.Partition[string]) *charts.Bar {
	maxDepth := p.MaxDepth()

	labels := make([]string, maxDepth+1)
	data := make([]opts.BarData, maxDepth+1)

	for d := 0; d <= maxDepth; d++ {
		labels[d] = strconv.Itoa(d)
		data[d] = opts.BarData{Value: len(p.NodesAtDepth(d))}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Nodes per depth",
			Subtitle: "Number of partition cells at each level of the hierarchy",
		}),
	)
	bar.SetXAxis(labels).AddSeries("nodes", data)

	return bar
}

// branchingChart builds a bar chart of the branching factor distribution over
// non-leaf nodes.
func branchingChart(p *hierpart.Partition[string]) *charts.Bar {
	counts := make(map[int]int)
	for _, f := range p.BranchingFactors(true) {
		counts[f]++
	}

	factors := make([]int, 0, len(counts))
	for f := range counts {
		factors = append(factors, f)
	}

	sort.Ints(factors)

	labels := make([]string, len(factors))
	data := make([]opts.BarData, len(factors))

	for i, f := range factors {
		labels[i] = strconv.Itoa(f)
		data[i] = opts.BarData{Value: counts[f]}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Branching factor distribution",
			Subtitle: "How many children non-leaf cells have",
		}),
	)
	bar.SetXAxis(labels).AddSeries("non-leaf nodes", data)

	return bar
}
