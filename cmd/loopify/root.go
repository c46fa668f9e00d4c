package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"loopify/internal/loop"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var outputFlag string
	var forceFlag bool

	ctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:   "loopify <input> <cut-seconds>",
		Short: "Rotate an audio file so it loops seamlessly",
		Long: "Loopify splits an audio file at the requested timestamp, swaps the two\n" +
			"parts, and writes a loop-friendly file whose end connects back to the\n" +
			"original start. Negative cut values count back from the end.",
		Example: "  loopify song.mp3 12.5\n" +
			"  loopify in.wav 3.0 -o rotated.wav\n" +
			"  loopify --force -- track.flac -2.0",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cutSeconds, err := strconv.ParseFloat(strings.TrimSpace(args[1]), 64)
			if err != nil {
				return fmt.Errorf("cut seconds %q is not a number", args[1])
			}

			service := loop.NewService(ctx.configValue(), ctx.logger(cmd))
			output, err := service.Run(cmd.Context(), loop.Request{
				Input:      args[0],
				CutSeconds: cutSeconds,
				OutputPath: outputFlag,
				Force:      forceFlag,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), output)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Output path (default: input name with suffix)")
	rootCmd.Flags().BoolVar(&forceFlag, "force", false, "Allow overwriting the destination")

	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newDepsCommand(ctx))

	return rootCmd
}
