package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/hierpart/pkg/persist"
)

// convertArgCount is the number of positional arguments of convert.
const convertArgCount = 2

// NewConvertCommand creates the convert cobra command. Formats are selected
// by file extension (.tree, .json, optionally with a trailing .lz4).
func NewConvertCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "convert IN_FILE OUT_FILE",
		Short: "Transcode a partition tree between persistence formats",
		Args:  cobra.ExactArgs(convertArgCount),
		RunE: func(_ *cobra.Command, args []string) error {
			p, err := persist.Load(args[0])
			if err != nil {
				return fmt.Errorf("load %s: %w", args[0], err)
			}

			err = persist.Save(args[1], p)
			if err != nil {
				return fmt.Errorf("save %s: %w", args[1], err)
			}

			return nil
		},
	}
}
