package cli

import (
	"testing"
)

func TestRootCommandHasCrawlSubcommand(t *testing.T) {
	found := false
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == "crawl" {
			found = true
		}
	}
	if !found {
		t.Fatal("rootCmd has no crawl subcommand registered")
	}
}

func TestCrawlCommandHelp(t *testing.T) {
	// cobra always executes from the root command with the root's args,
	// so the subcommand is selected through rootCmd.
	rootCmd.SetArgs([]string{"crawl", "--help"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("crawl --help: %v", err)
	}
}

func TestCrawlCommandDefaultFlagValues(t *testing.T) {
	defaults := map[string]string{
		"root-domain":      "uci.edu",
		"workers":          "8",
		"delay-ms":         "500",
		"seeding-strategy": "none",
		"max-retries":      "3",
		"fetch-timeout":    "15",
	}

	for name, want := range defaults {
		flag := crawlCmd.Flags().Lookup(name)
		if flag == nil {
			t.Fatalf("flag %q not registered", name)
			continue
		}
		if flag.DefValue != want {
			t.Errorf("flag %q default = %q, want %q", name, flag.DefValue, want)
		}
	}
}
