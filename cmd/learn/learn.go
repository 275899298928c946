// Package learn handles recording user corrections as learned mappings
package learn

import (
	"strings"

	"vkrishnan/ledger-match/cmd/root"
	"vkrishnan/ledger-match/internal/container"
	"vkrishnan/ledger-match/internal/logging"
	"vkrishnan/ledger-match/internal/matcher"

	"github.com/spf13/cobra"
)

// Cmd represents the learn command
var Cmd = &cobra.Command{
	Use:   "learn",
	Short: "Record a narration-to-ledger correction",
	Long: `Learn records a user correction so future statements with the same or
similar narration resolve to the corrected ledger with high confidence.
Repeated corrections for the same narration reinforce the mapping.`,
	Run: learnFunc,
}

func init() {
	Cmd.Flags().StringVarP(&root.Narration, "narration", "n", "", "Statement narration to learn")
	Cmd.Flags().StringVarP(&root.Ledger, "ledger", "l", "", "Ledger the narration maps to")
	Cmd.Flags().Float64VarP(&root.Score, "score", "s", 0, "Observed confidence of the correction (optional)")
	Cmd.MarkFlagRequired("narration")
	Cmd.MarkFlagRequired("ledger")
}

func learnFunc(cmd *cobra.Command, args []string) {
	c, err := container.NewContainer(root.Cfg)
	if err != nil {
		root.Log.Fatalf("Failed to initialize application: %v", err)
	}
	defer func() {
		if err := c.Close(); err != nil {
			root.Log.WithError(err).Warn("failed to close container")
		}
	}()

	key := strings.TrimSpace(root.Narration)
	if key == "" {
		root.Log.Error("Narration is empty, nothing to learn")
		return
	}

	entry, err := matcher.Reinforce(c.GetLearnedStore(), key, root.Ledger, root.Score)
	if err != nil {
		root.Log.Fatalf("Failed to record correction: %v", err)
	}

	root.Log.Info("learned mapping recorded",
		logging.Field{Key: "narration", Value: key},
		logging.Field{Key: "ledger", Value: entry.Ledger},
		logging.Field{Key: "score", Value: entry.Score},
		logging.Field{Key: "usage_count", Value: entry.UsageCount})
}
