package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"loopify/internal/deps"
)

func newDepsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Check availability of ffmpeg and ffprobe",
		RunE: func(cmd *cobra.Command, args []string) error {
			statuses := deps.CheckBinaries(deps.Defaults(ctx.configValue()))

			rows := make([][]string, 0, len(statuses))
			missing := 0
			for _, status := range statuses {
				state := "ok"
				detail := status.Description
				if !status.Available {
					state = "missing"
					if status.Detail != "" {
						detail = status.Detail
					}
					missing++
				}
				rows = append(rows, []string{status.Name, status.Command, state, detail})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(out, []string{"Tool", "Command", "Status", "Detail"}, rows))

			if missing > 0 {
				return fmt.Errorf("%d required binary(ies) missing", missing)
			}
			return nil
		},
	}
}
