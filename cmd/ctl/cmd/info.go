package cmd

import (
	"context"
	"fmt"

	"github.com/jpfielding/pixshift.go/pkg/imageio"
	"github.com/spf13/cobra"
)

// NewInfoCmd prints image header information
func NewInfoCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info [file]",
		Short: "print image dimensions, format and color model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := imageio.Info(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "File:        %s\n", info.Path)
			fmt.Fprintf(out, "Format:      %s\n", info.Format)
			fmt.Fprintf(out, "Dimensions:  %d x %d\n", info.Width, info.Height)
			fmt.Fprintf(out, "Color model: %s\n", info.ColorModel)
			fmt.Fprintf(out, "File size:   %d bytes\n", info.Size)
			return nil
		},
	}
	return cmd
}
