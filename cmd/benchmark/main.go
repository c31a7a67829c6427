package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

type modelInfo struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Provider string `json:"provider"`
}

type transformRequest struct {
	Text        string `json:"text"`
	Action      string `json:"action"`
	Model       string `json:"model"`
	EmojiOption string `json:"emojiOption,omitempty"`
}

type transformResponse struct {
	Transformed string `json:"transformed"`
	Model       string `json:"model"`
	Provider    string `json:"provider"`
	ElapsedMs   int64  `json:"elapsed_ms"`
}

type result struct {
	Sample    string `json:"sample"`
	Action    string `json:"action"`
	Chars     int    `json:"chars"`
	Model     string `json:"model"`
	Run       int    `json:"run"`
	ElapsedMs int64  `json:"elapsed_ms"`
	WallMs    int64  `json:"wall_ms"`
	OutChars  int    `json:"out_chars"`
	Error     string `json:"error,omitempty"`
}

type options struct {
	url     string
	apiKey  string
	runs    int
	model   string
	actions []string
	emoji   string
	quality bool
	jsonOut string
	warmup  bool
}

type client struct {
	http    *http.Client
	baseURL string
	apiKey  string
}

func main() {
	if err := newCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error: %v", err))
		os.Exit(1)
	}
}

func newCmd() *cobra.Command {
	var o options

	cmd := &cobra.Command{
		Use:           "benchmark",
		Short:         "Measure /api/transform latency across samples and actions",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := &client{
				http:    &http.Client{Timeout: 180 * time.Second},
				baseURL: strings.TrimRight(o.url, "/"),
				apiKey:  o.apiKey,
			}
			if o.model == "" {
				m, err := c.firstModel(cmd.Context())
				if err != nil {
					return err
				}
				o.model = m
			}
			if o.quality {
				return runQuality(cmd.Context(), c, o)
			}
			return runBenchmark(cmd.Context(), c, o)
		},
	}

	f := cmd.Flags()
	f.StringVar(&o.url, "url", "http://localhost:5000", "API base URL")
	f.StringVar(&o.apiKey, "api-key", "", "API key (optional)")
	f.IntVar(&o.runs, "runs", 3, "number of runs per sample and action")
	f.StringVar(&o.model, "model", "", "model id (default: first listed)")
	f.StringSliceVar(&o.actions, "actions", []string{"fix_grammar", "simplify", "formal"}, "actions to benchmark")
	f.StringVar(&o.emoji, "emoji", "off", "emojiOption sent with each request (on, off)")
	f.BoolVar(&o.quality, "quality", false, "print input and output for each quality sample instead of timing")
	f.StringVar(&o.jsonOut, "json", "", "write results to a JSON file")
	f.BoolVar(&o.warmup, "warmup", false, "send one discarded request per sample first")
	return cmd
}

func runBenchmark(ctx context.Context, c *client, o options) error {
	fmt.Printf("Benchmarking %s with model %s (%d runs, actions %s",
		c.baseURL, o.model, o.runs, strings.Join(o.actions, ","))
	if o.warmup {
		fmt.Print(", warmup enabled")
	}
	fmt.Println(")")

	var results []result
	var failures int
	for _, sample := range Samples {
		for _, act := range o.actions {
			if o.warmup {
				fmt.Printf("  Warming up %s/%s...", sample.Name, act)
				w := c.run(ctx, o, sample, act, 0)
				if w.Error != "" {
					fmt.Printf(" %s (%s)\n", color.RedString("FAILED"), w.Error)
				} else {
					fmt.Printf(" %dms (discarded)\n", w.ElapsedMs)
				}
			}
			for run := 1; run <= o.runs; run++ {
				fmt.Printf("  %s/%s (run %d/%d)...", sample.Name, act, run, o.runs)
				r := c.run(ctx, o, sample, act, run)
				results = append(results, r)
				if r.Error != "" {
					fmt.Printf(" %s (%s)\n", color.RedString("FAILED"), r.Error)
					failures++
				} else {
					fmt.Printf(" %dms\n", r.ElapsedMs)
				}
			}
		}
	}

	fmt.Println()
	printTable(results)
	printSummary(results)

	if o.jsonOut != "" {
		if err := writeReport(o.jsonOut, results, c.baseURL, o.model); err != nil {
			fmt.Fprintln(os.Stderr, color.RedString("write %s: %v", o.jsonOut, err))
		} else {
			fmt.Printf("\nResults written to %s\n", o.jsonOut)
		}
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d runs failed", failures, len(results))
	}
	return nil
}

func (c *client) firstModel(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/models", nil)
	if err != nil {
		return "", err
	}
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch models: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("models endpoint returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var models []modelInfo
	if err := json.NewDecoder(resp.Body).Decode(&models); err != nil {
		return "", fmt.Errorf("decode models: %w", err)
	}
	if len(models) == 0 {
		return "", fmt.Errorf("no models available")
	}
	return models[0].ID, nil
}

func (c *client) authorize(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}
}

// transform posts one request and returns the decoded response with the
// client-observed duration.
func (c *client) transform(ctx context.Context, body transformRequest) (transformResponse, time.Duration, error) {
	payload, _ := json.Marshal(body)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/transform", bytes.NewReader(payload))
	if err != nil {
		return transformResponse{}, 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	start := time.Now()
	resp, err := c.http.Do(req)
	wall := time.Since(start)
	if err != nil {
		return transformResponse{}, wall, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return transformResponse{}, wall, fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var tr transformResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return transformResponse{}, wall, err
	}
	return tr, wall, nil
}

func (c *client) run(ctx context.Context, o options, sample Sample, act string, run int) result {
	r := result{Sample: sample.Name, Action: act, Chars: len([]rune(sample.Text)), Run: run}

	tr, wall, err := c.transform(ctx, transformRequest{Text: sample.Text, Action: act, Model: o.model, EmojiOption: o.emoji})
	if err != nil {
		r.Error = err.Error()
		return r
	}
	r.Model = tr.Model
	r.ElapsedMs = tr.ElapsedMs
	r.WallMs = wall.Milliseconds()
	r.OutChars = len([]rune(tr.Transformed))
	return r
}

func printTable(results []result) {
	fmt.Println("| Sample | Action | Chars | Model | Run | Elapsed (ms) | Wall (ms) | Out Chars | Ratio |")
	fmt.Println("|--------|--------|-------|-------|-----|--------------|-----------|-----------|-------|")
	for _, r := range results {
		if r.Error != "" {
			fmt.Printf("| %-6s | %-11s | %5d | %-16s | %d | %12s | %9s | %9s | %5s |\n",
				r.Sample, r.Action, r.Chars, "-", r.Run, "FAIL", "-", "-", "-")
			continue
		}
		fmt.Printf("| %-6s | %-11s | %5d | %-16s | %d | %12d | %9d | %9d | %5.2f |\n",
			r.Sample, r.Action, r.Chars, r.Model, r.Run, r.ElapsedMs, r.WallMs, r.OutChars, ratio(r))
	}
}

func ratio(r result) float64 {
	if r.Chars == 0 {
		return 0
	}
	return float64(r.OutChars) / float64(r.Chars)
}

func runQuality(ctx context.Context, c *client, o options) error {
	fmt.Printf("Quality check against %s with model %s\n", c.baseURL, o.model)
	fmt.Println(strings.Repeat("=", 72))

	var failures, total int
	for i, sample := range QualitySamples {
		fmt.Printf("\n--- %d/%d: %s (%d chars) ---\n", i+1, len(QualitySamples), sample.Name, len([]rune(sample.Text)))
		fmt.Printf("IN:  %s\n", sample.Text)

		for _, act := range o.actions {
			total++
			tr, _, err := c.transform(ctx, transformRequest{Text: sample.Text, Action: act, Model: o.model, EmojiOption: o.emoji})
			if err != nil {
				fmt.Printf("%s %s\n", color.RedString("ERR %-11s", act), err)
				failures++
				continue
			}
			fmt.Printf("%s %s\n", color.CyanString("%-15s", act), tr.Transformed)
			fmt.Printf("     [%dms, %d->%d chars]\n", tr.ElapsedMs, len([]rune(sample.Text)), len([]rune(tr.Transformed)))
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 72))
	fmt.Printf("Done: %d/%d passed\n", total-failures, total)
	if failures > 0 {
		return fmt.Errorf("%d requests failed", failures)
	}
	return nil
}

func printSummary(results []result) {
	var ok []result
	for _, r := range results {
		if r.Error == "" {
			ok = append(ok, r)
		}
	}

	if len(ok) == 0 {
		fmt.Printf("\nSummary: all %d runs failed\n", len(results))
		return
	}

	var totalElapsed int64
	var totalChars int
	fastest, slowest := ok[0], ok[0]
	for _, r := range ok {
		totalElapsed += r.ElapsedMs
		totalChars += r.Chars
		if r.ElapsedMs < fastest.ElapsedMs {
			fastest = r
		}
		if r.ElapsedMs > slowest.ElapsedMs {
			slowest = r
		}
	}

	fmt.Printf("\nSummary:\n")
	fmt.Printf("- Avg ms/char: %.2f\n", float64(totalElapsed)/float64(max(totalChars, 1)))
	fmt.Printf("- Min elapsed: %dms (%s/%s)\n", fastest.ElapsedMs, fastest.Sample, fastest.Action)
	fmt.Printf("- Max elapsed: %dms (%s/%s)\n", slowest.ElapsedMs, slowest.Sample, slowest.Action)
	fmt.Printf("- Total runs: %d (%d ok, %d failed)\n", len(results), len(ok), len(results)-len(ok))
}

type report struct {
	Timestamp string   `json:"timestamp"`
	URL       string   `json:"url"`
	Model     string   `json:"model"`
	Results   []result `json:"results"`
}

func writeReport(path string, results []result, baseURL, model string) error {
	data, err := json.MarshalIndent(report{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		URL:       baseURL,
		Model:     model,
		Results:   results,
	}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
