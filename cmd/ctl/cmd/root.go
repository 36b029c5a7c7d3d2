package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/jpfielding/pixshift.go/pkg/logging"
	"github.com/jpfielding/pixshift.go/pkg/pipeline"
	"github.com/spf13/cobra"
)

func NewRoot(ctx context.Context, gitsha string) *cobra.Command {
	var logFile io.Closer
	cmd := &cobra.Command{
		Use:   "pixshift",
		Short: "reversible toy pixel transforms (channel swap, modular shift)",
		Long: "pixshift swaps red/blue channels or shifts every channel by a constant modulo 256, " +
			"then reverses the transform. Run with no subcommand to encrypt and decrypt " +
			pipeline.DemoInput + " with both transforms.",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logLevel, _ := cmd.Flags().GetString("log-level")
			logJSON, _ := cmd.Flags().GetBool("log-json")
			logPath, _ := cmd.Flags().GetString("log-file")

			// Parse log level
			var level slog.Level
			levelErr := level.UnmarshalText([]byte(strings.ToUpper(logLevel)))
			if levelErr != nil {
				level = slog.LevelWarn
			}

			var w io.Writer = cmd.ErrOrStderr()
			if logPath != "" {
				lj := logging.RotatingFile(logPath)
				logFile, w = lj, lj
			}
			slog.SetDefault(logging.Logger(w, logJSON, level))

			if levelErr != nil {
				slog.WarnContext(ctx, "Invalid log level, defaulting to WARN", "level", logLevel, "error", levelErr)
			}
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logFile != nil {
				logFile.Close()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			runnerFor(cmd).Demo(ctx, pipeline.DefaultDemoOptions())
			return nil
		},
	}
	cmd.AddCommand(
		NewVersionCmd(ctx, gitsha),
		NewTreeCmd(ctx),
		NewSwapCmd(ctx),
		NewAddCmd(ctx),
		NewDemoCmd(ctx),
		NewInfoCmd(ctx),
	)
	pf := cmd.PersistentFlags()
	pf.String("log-level", "WARN", "Log level (DEBUG, INFO, WARN, ERROR)")
	pf.Bool("log-json", false, "Emit logs as JSON")
	pf.String("log-file", "", "Write logs to a rotating file instead of stderr")
	return cmd
}

func printCommandTree(w io.Writer, cmd *cobra.Command, indent int) {
	fmt.Fprintln(w, strings.Repeat("\t", indent), cmd.Use+":", cmd.Short)
	for _, subCmd := range cmd.Commands() {
		printCommandTree(w, subCmd, indent+1)
	}
}

func NewTreeCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "print the command tree",
		Run: func(cmd *cobra.Command, args []string) {
			printCommandTree(cmd.OutOrStdout(), cmd.Root(), 0)
		},
	}
	return cmd
}

func NewVersionCmd(ctx context.Context, gitsha string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "git sha for this build",
		Long:  "git sha for this build",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), gitsha)
		},
	}
	return cmd
}
