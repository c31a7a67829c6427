package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/SharangSharma09/Draftly/internal/action"
	"github.com/SharangSharma09/Draftly/internal/orchestrator"
	"github.com/SharangSharma09/Draftly/internal/registry"
)

var errNoInput = errors.New("no text given: pass it as an argument or pipe it on stdin")

func newTransformCmd(a *app) *cobra.Command {
	var (
		actionName string
		model      string
		emojiOpt   string
		fallback   string
	)

	cmd := &cobra.Command{
		Use:   "transform [text]",
		Short: "Rewrite text once and print the result",
		Long: `Rewrite text once and print the result on stdout.

The text is taken from the argument, or from stdin when it is piped. With the
default --fallback mock, a failed provider call prints placeholder output
instead of failing; use --fallback surface to see the provider error.

Actions: ` + actionList(),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer a.close()

			act, err := action.Parse(actionName)
			if err != nil {
				return err
			}
			opt, err := action.ParseEmojiOption(emojiOpt)
			if err != nil {
				return err
			}
			policy, err := orchestrator.ParsePolicy(fallback)
			if err != nil {
				return err
			}
			text, err := readText(args, cmd.InOrStdin())
			if err != nil {
				return err
			}

			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			keys, err := a.keys(cfg)
			if err != nil {
				return err
			}
			rec, err := a.history(cfg)
			if err != nil {
				return err
			}

			orch := newOrchestrator(cfg, keys, policy, a.cliLogger(cfg, cmd.ErrOrStderr()))
			req := orchestrator.Request{
				Text:   text,
				Action: act,
				Model:  registry.Model(model),
				Emoji:  opt,
			}

			start := time.Now()
			out, err := orch.Transform(cmd.Context(), req)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), color.RedString(orchestrator.FormatError(err)))
				return errReported
			}

			fmt.Fprintln(cmd.OutOrStdout(), out)
			if a.verbose {
				fmt.Fprintln(cmd.ErrOrStderr(), color.HiBlackString("%s via %s in %s",
					act, registry.ResolveProvider(req.Model), time.Since(start).Round(time.Millisecond)))
			}

			if out != "" {
				if _, err := rec.Record(cmd.Context(), act, out); err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), color.YellowString("history: %v", err))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&actionName, "action", "a", string(action.Simplify), "transform action")
	cmd.Flags().StringVarP(&model, "model", "m", string(registry.GPT35Turbo), "model id (see draftly models)")
	cmd.Flags().StringVarP(&emojiOpt, "emoji", "e", "off", "append emojis to rewrites (on, off)")
	cmd.Flags().StringVar(&fallback, "fallback", string(orchestrator.PolicyMock), "on provider failure: mock or surface")
	return cmd
}

// readText returns the argument, or all of in when it is not a terminal.
func readText(args []string, in io.Reader) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return "", errNoInput
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	text := strings.TrimRight(string(data), "\r\n")
	if text == "" {
		return "", errNoInput
	}
	return text, nil
}

func actionList() string {
	names := make([]string, 0, len(action.All()))
	for _, a := range action.All() {
		names = append(names, string(a))
	}
	return strings.Join(names, ", ")
}
