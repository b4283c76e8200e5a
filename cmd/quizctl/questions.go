package main

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Print the question catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		defer rt.logger.Sync()

		out := cmd.OutOrStdout()
		if _, err := authorize(rt.svc, rt.cfg.AccessSecret, bufio.NewReader(cmd.InOrStdin()), out); err != nil {
			return err
		}

		var current string
		for _, item := range rt.svc.Questions() {
			if label := item.Group.String(); label != current {
				current = label
				fmt.Fprintf(out, "\n%s\n", label)
			}
			fmt.Fprintf(out, "  %3d  %s\n", item.ID, item.Text)
		}
		return nil
	},
}
