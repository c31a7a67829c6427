package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/SharangSharma09/Draftly/internal/credential"
	"github.com/SharangSharma09/Draftly/internal/registry"
)

func newModelsCmd(a *app) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "models",
		Short: "List selectable models and whether their provider has a key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			defer a.close()

			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			keys, err := a.keys(cfg)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "MODEL\tNAME\tPROVIDER\tKEY")
			for _, m := range registry.Models(all) {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", m.ID, m.Name, m.Provider, keyMark(cmd, keys, m.Provider))
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "include placeholder models answered locally")
	return cmd
}

func keyMark(cmd *cobra.Command, keys credential.Source, p registry.Provider) string {
	if p == registry.Other {
		return color.HiBlackString("-")
	}
	st := credential.Inspect(cmd.Context(), keys, p)
	switch {
	case st.ValidFormat:
		return color.GreenString("ok")
	case st.Exists:
		return color.YellowString("bad format")
	default:
		return color.RedString("missing")
	}
}
