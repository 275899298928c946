// Package index inspects the ledger keyword index used for matching
package index

import (
	"fmt"
	"sort"
	"strings"

	"vkrishnan/ledger-match/cmd/root"
	"vkrishnan/ledger-match/internal/container"
	"vkrishnan/ledger-match/internal/matcher"

	"github.com/spf13/cobra"
)

// Cmd represents the index command
var Cmd = &cobra.Command{
	Use:   "index",
	Short: "Show the keyword index built from the ledger master",
	Long: `Index prints each ledger with the normalized form and expanded keyword
set (noise words removed, synonyms added) used by the ledger-name focus
stage. Useful for diagnosing why a narration does or does not match.`,
	Run: indexFunc,
}

func indexFunc(cmd *cobra.Command, args []string) {
	c, err := container.NewContainer(root.Cfg)
	if err != nil {
		root.Log.Fatalf("Failed to initialize application: %v", err)
	}
	defer func() {
		if err := c.Close(); err != nil {
			root.Log.WithError(err).Warn("failed to close container")
		}
	}()

	ledgers, err := c.GetMappingStore().LoadLedgerMaster()
	if err != nil {
		root.Log.Fatalf("Failed to load ledger master: %v", err)
	}
	if len(ledgers) == 0 {
		root.Log.Warn("Ledger master is empty, nothing to index")
		return
	}

	for _, entry := range matcher.BuildIndex(ledgers) {
		keywords := make([]string, 0, len(entry.Keywords))
		for keyword := range entry.Keywords {
			keywords = append(keywords, keyword)
		}
		sort.Strings(keywords)
		fmt.Printf("%s\n  normalized: %s\n  keywords:   %s\n",
			entry.Ledger, entry.Clean, strings.Join(keywords, ", "))
	}
}
