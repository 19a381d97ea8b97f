// Package commands implements CLI command handlers for hierpart.
package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/hierpart/internal/config"
	"github.com/Sumatoshi-tech/hierpart/pkg/hmi"
	"github.com/Sumatoshi-tech/hierpart/pkg/persist"
)

// compareArgCount is the number of positional arguments of compare.
const compareArgCount = 2

// Normalized score thresholds for colorized output.
const (
	scoreHigh = 0.8
	scoreLow  = 0.4
)

// floatFormat renders HMI values with the precision of the underlying doubles
// that is still readable in a terminal.
const floatFormat = "%.9f"

// CompareCommand holds configuration for the compare command.
type CompareCommand struct {
	configPath string
	format     string
	noColor    bool
	normalized bool
}

// NewCompareCommand creates the compare cobra command.
func NewCompareCommand() *cobra.Command {
	cc := &CompareCommand{}

	cmd := &cobra.Command{
		Use:   "compare X_FILE Y_FILE",
		Short: "Compute hierarchical mutual information between two partition trees",
		Args:  cobra.ExactArgs(compareArgCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cc.Run(args[0], args[1], cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&cc.format, "format", "f", "", "output format: table or json (default from config)")
	cmd.Flags().BoolVarP(&cc.normalized, "normalized", "n", false, "also compute the normalized score")
	cmd.Flags().BoolVar(&cc.noColor, "no-color", false, "disable colorized output")
	cmd.Flags().StringVarP(&cc.configPath, "config", "c", "", "path to a config file")

	return cmd
}

// Run loads both trees, compares them and renders the result.
func (cc *CompareCommand) Run(xPath, yPath string, w io.Writer) error {
	cfg, err := config.Load(cc.configPath)
	if err != nil {
		return err
	}

	format := cfg.Output.Format
	if cc.format != "" {
		format = cc.format
	}

	x, err := persist.Load(xPath)
	if err != nil {
		return fmt.Errorf("load %s: %w", xPath, err)
	}

	y, err := persist.Load(yPath)
	if err != nil {
		return fmt.Errorf("load %s: %w", yPath, err)
	}

	if !cc.normalized {
		return cc.render(w, format, cfg.Output.NoColor || cc.noColor, hmi.Compare(x, y), nil)
	}

	res := hmi.Normalized(x, y)

	return cc.render(w, format, cfg.Output.NoColor || cc.noColor, res.Cross, &res)
}

func (cc *CompareCommand) render(w io.Writer, format string, noColor bool, cross float64, res *hmi.Result) error {
	if format == config.OutputJSON {
		return cc.renderJSON(w, cross, res)
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Metric", "Value"})
	t.AppendRow(table.Row{"HMI(X;Y)", fmt.Sprintf(floatFormat, cross)})

	if res != nil {
		t.AppendRow(table.Row{"HMI(X;X)", fmt.Sprintf(floatFormat, res.SelfX)})
		t.AppendRow(table.Row{"HMI(Y;Y)", fmt.Sprintf(floatFormat, res.SelfY)})
		t.AppendRow(table.Row{"NHMI", colorizeScore(res.Score, noColor)})
	}

	t.Render()

	return nil
}

func (cc *CompareCommand) renderJSON(w io.Writer, cross float64, res *hmi.Result) error {
	payload := map[string]float64{"hmi": cross}
	if res != nil {
		payload["normalized"] = res.Score
		payload["self_x"] = res.SelfX
		payload["self_y"] = res.SelfY
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	err := encoder.Encode(payload)
	if err != nil {
		return fmt.Errorf("encode comparison result: %w", err)
	}

	return nil
}

// colorizeScore renders a normalized score green/yellow/red by similarity.
func colorizeScore(score float64, noColor bool) string {
	text := fmt.Sprintf(floatFormat, score)
	if noColor {
		return text
	}

	switch {
	case score >= scoreHigh:
		return color.GreenString(text)
	case score >= scoreLow:
		return color.YellowString(text)
	default:
		return color.RedString(text)
	}
}
