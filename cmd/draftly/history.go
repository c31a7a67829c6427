package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const historyPreview = 60

func newHistoryCmd(a *app) *cobra.Command {
	var clearAll bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List or clear recent transforms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			defer a.close()

			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			rec, err := a.history(cfg)
			if err != nil {
				return err
			}

			if clearAll {
				if err := rec.Clear(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("history cleared"))
				return nil
			}

			entries, err := rec.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No history")
				return nil
			}
			for _, e := range entries {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
					color.HiBlackString(e.Timestamp.Local().Format("2006-01-02 15:04")),
					color.CyanString("%-13s", e.Action),
					preview(e.Text))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&clearAll, "clear", false, "delete all entries")
	return cmd
}

func preview(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= historyPreview {
		return s
	}
	return string(runes[:historyPreview]) + "..."
}
