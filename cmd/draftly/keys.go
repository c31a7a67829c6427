package main

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/SharangSharma09/Draftly/internal/credential"
	"github.com/SharangSharma09/Draftly/internal/registry"
)

var errNoRedis = errors.New("redis_url is not configured")

func newKeysCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Show which provider keys are configured",
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
			fmt.Fprintln(w, "PROVIDER\tSTATUS\tPREFIX\tMODELS")
			for _, p := range registry.Providers() {
				st := credential.Inspect(cmd.Context(), keys, p)
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p, keyMark(cmd, keys, p), st.Prefix, modelList(p))
			}
			return w.Flush()
		},
	}

	cmd.AddCommand(newKeysSetCmd(a), newKeysDeleteCmd(a))
	return cmd
}

func modelList(p registry.Provider) string {
	models := registry.ModelsFor(p)
	names := make([]string, len(models))
	for i, m := range models {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}

func newKeysSetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set <provider> <key>",
		Short: "Store a provider key in Redis",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := parseProviderArg(args[0])
			if err != nil {
				return err
			}
			if !credential.ValidFormat(p, args[1]) {
				fmt.Fprintln(cmd.ErrOrStderr(), color.YellowString("warning: key does not look like a %s key", p))
			}
			store, err := redisKeys(a)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Set(cmd.Context(), p, args[1]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("stored key for %s", p))
			return nil
		},
	}
}

func newKeysDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <provider>",
		Short: "Remove a provider key from Redis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := parseProviderArg(args[0])
			if err != nil {
				return err
			}
			store, err := redisKeys(a)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Delete(cmd.Context(), p); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("deleted key for %s", p))
			return nil
		},
	}
}

func redisKeys(a *app) (*credential.Redis, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, err
	}
	if cfg.RedisURL == "" {
		return nil, errNoRedis
	}
	return credential.NewRedis(cfg.RedisURL)
}
