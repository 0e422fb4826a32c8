// Package cli wires the crawler into a cobra command tree, grounded
// on the teacher's internal/cli root/crawl/resume command split.
package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "spacetime-crawler",
	Short: "A polite, multi-threaded academic web crawler",
	Long:  `spacetime-crawler discovers, fetches, and analyzes pages within a configured set of allowed domains.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(crawlCmd)
}
