package cmd

import (
	"context"
	"fmt"

	"github.com/jpfielding/pixshift.go/pkg/pipeline"
	"github.com/spf13/cobra"
)

// NewDemoCmd runs encrypt/decrypt for both transforms and checks the round trips
func NewDemoCmd(ctx context.Context) *cobra.Command {
	defaults := pipeline.DefaultDemoOptions()
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "encrypt and decrypt an image with both transforms",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.DefaultDemoOptions()
			opts.Input, _ = cmd.Flags().GetString("input")
			opts.Dir, _ = cmd.Flags().GetString("dir")
			opts.Constant, _ = cmd.Flags().GetInt("constant")

			rep := runnerFor(cmd).Demo(ctx, opts)
			if verify, _ := cmd.Flags().GetBool("verify"); verify {
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "\nswap round trip: %s\n", verdict(rep.SwapVerified))
				fmt.Fprintf(out, "add round trip:  %s\n", verdict(rep.AddVerified))
				if !rep.OK() {
					return fmt.Errorf("demo round trip failed")
				}
			}
			return nil
		},
	}
	pf := cmd.Flags()
	pf.StringP("input", "i", defaults.Input, "Input image file")
	pf.String("dir", defaults.Dir, "Directory for the four output images")
	pf.IntP("constant", "k", defaults.Constant, "Shift for the additive transform")
	pf.Bool("verify", false, "Report whether decrypted pixels match the original and fail if not")
	return cmd
}

func verdict(ok bool) string {
	if ok {
		return "verified"
	}
	return "NOT verified"
}
