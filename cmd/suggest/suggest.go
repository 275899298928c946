// Package suggest handles narration-to-ledger suggestion commands
package suggest

import (
	"context"
	"fmt"
	"sort"

	"vkrishnan/ledger-match/cmd/root"
	"vkrishnan/ledger-match/internal/container"
	"vkrishnan/ledger-match/internal/logging"
	"vkrishnan/ledger-match/internal/matcher"
	"vkrishnan/ledger-match/internal/statement"

	"github.com/spf13/cobra"
)

// Cmd represents the suggest command
var Cmd = &cobra.Command{
	Use:   "suggest",
	Short: "Suggest ledger mappings for statement narrations",
	Long: `Suggest reads a bank statement CSV and resolves each narration to a
ledger name with a confidence score and the strategy that produced it.
With --auto, only trusted knowledge (learned mappings and rules) is
applied and everything else goes to the suspense ledger.`,
	Run: suggestFunc,
}

func init() {
	Cmd.Flags().BoolVarP(&root.AutoMap, "auto", "a", false, "Apply only learned mappings and rules")
	Cmd.Flags().BoolVarP(&root.ShowTrace, "trace", "t", false, "Show the strategy cascade for each narration")
}

func suggestFunc(cmd *cobra.Command, args []string) {
	if root.SharedFlags.Input == "" {
		root.Log.Error("Input file is required (use --input)")
		return
	}

	c, err := container.NewContainer(root.Cfg)
	if err != nil {
		root.Log.Fatalf("Failed to initialize application: %v", err)
	}
	defer func() {
		if err := c.Close(); err != nil {
			root.Log.WithError(err).Warn("failed to close container")
		}
	}()

	req, err := c.BuildRequest()
	if err != nil {
		root.Log.Fatalf("Failed to load mapping data: %v", err)
	}

	rows, err := statement.ReadFile(root.SharedFlags.Input, root.Log)
	if err != nil {
		root.Log.Fatalf("Failed to read statement: %v", err)
	}
	narrations := statement.Narrations(rows)

	if root.AutoMap {
		runAutoMap(c, narrations, req)
		return
	}
	runSuggestions(c, narrations, req)
}

func runSuggestions(c *container.Container, narrations []string, req matcher.Request) {
	ctx := context.Background()
	m := c.GetMatcher()

	// Both modes report from the same result set, so the reserved
	// missing-narration entry always reaches the output.
	results := m.Suggestions(ctx, narrations, req)
	suggestions := statement.SuggestionsFromResults(results)

	if root.ShowTrace {
		seen := make(map[string]bool, len(narrations))
		for _, narration := range narrations {
			if narration == "" || seen[narration] {
				continue
			}
			seen[narration] = true
			result, trace := m.ResolveWithTrace(ctx, narration, req)
			fmt.Printf("%s\n  -> %s (%.0f, %s)\n  cascade: %s\n",
				narration, result.Ledger, result.Confidence, result.Strategy, trace.Summary())
		}
	} else {
		for _, s := range suggestions {
			fmt.Printf("%-50s -> %s (%.0f, %s)\n", s.Narration, s.Ledger, s.Confidence, s.Strategy)
		}
	}

	if root.SharedFlags.Output != "" {
		if err := statement.WriteSuggestions(suggestions, root.SharedFlags.Output); err != nil {
			root.Log.Fatalf("Failed to write suggestions: %v", err)
		}
		root.Log.Info("wrote suggestions",
			logging.Field{Key: "file", Value: root.SharedFlags.Output},
			logging.Field{Key: "count", Value: len(suggestions)})
	}
}

func runAutoMap(c *container.Container, narrations []string, req matcher.Request) {
	results := c.GetMatcher().AutoMap(narrations, req)

	keys := make([]string, 0, len(results))
	for key := range results {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		fmt.Printf("%-50s -> %s\n", key, results[key])
	}
}
