package cli

import (
	"fmt"
	"time"

	"github.com/arjunsahni/spacetime-crawler-go/internal/crawler"
	"github.com/arjunsahni/spacetime-crawler-go/internal/types"
	"github.com/arjunsahni/spacetime-crawler-go/internal/urlfilter"
	"github.com/spf13/cobra"
)

var (
	seedURLs        []string
	allowedDomains  []string
	rootDomain      string
	workers         int
	timeDelayMS     int
	saveFile        string
	cacheServer     string
	restart         bool
	seedingStrategy string
	maxRetries      int
	fetchTimeoutSec int
	reportFile      string
	auditLogFile    string
)

var crawlCmd = &cobra.Command{
	Use:   "crawl",
	Short: "Crawl a set of allowed domains and write an analytics report",
	Long:  `Crawl starts (or resumes, with --restart=false and a matching --save-file) a polite multi-threaded crawl.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		domains := allowedDomains
		if len(domains) == 0 {
			domains = urlfilter.AllowedDomains
		}

		cfg := types.Config{
			SeedURLs:        seedURLs,
			AllowedDomains:  domains,
			RootDomain:      rootDomain,
			Workers:         workers,
			TimeDelay:       time.Duration(timeDelayMS) * time.Millisecond,
			SaveFile:        saveFile,
			CacheServer:     cacheServer,
			Restart:         restart,
			SeedingStrategy: seedingStrategy,
			MaxRetries:      maxRetries,
			FetchTimeout:    time.Duration(fetchTimeoutSec) * time.Second,
			ReportFile:      reportFile,
			AuditLogFile:    auditLogFile,
		}

		c, err := crawler.New(cfg)
		if err != nil {
			return fmt.Errorf("creating crawler: %w", err)
		}

		results, err := c.Crawl(cmd.Context())
		if err != nil {
			return fmt.Errorf("crawl failed: %w", err)
		}

		fmt.Printf("Crawl complete. Discovered: %d, Processed: %d, Errors: %d\n",
			results.Discovered, results.Processed, results.Errors)
		return nil
	},
}

func init() {
	crawlCmd.Flags().StringSliceVar(&seedURLs, "seed", nil, "Seed URL (repeatable)")
	crawlCmd.Flags().StringSliceVar(&allowedDomains, "allowed-domain", nil, "Allowed domain (repeatable); defaults to the assignment's ics.uci.edu set")
	crawlCmd.Flags().StringVar(&rootDomain, "root-domain", "uci.edu", "Root domain for subdomain analytics")
	crawlCmd.Flags().IntVar(&workers, "workers", 8, "Number of concurrent worker threads")
	crawlCmd.Flags().IntVar(&timeDelayMS, "delay-ms", 500, "Minimum per-host politeness delay in milliseconds")
	crawlCmd.Flags().StringVar(&saveFile, "save-file", "./data/frontier.db", "Durable frontier database path")
	crawlCmd.Flags().StringVar(&cacheServer, "cache-server", "", "Opaque cache/proxy fetch endpoint (blank fetches directly)")
	crawlCmd.Flags().BoolVar(&restart, "restart", false, "Discard any saved frontier state and start fresh from --seed")
	crawlCmd.Flags().StringVar(&seedingStrategy, "seeding-strategy", "none", "Comma-separated seed discovery strategies: sitemap,ct,commoncrawl, or none")
	crawlCmd.Flags().IntVar(&maxRetries, "max-retries", 3, "Maximum fetch retry attempts per request")
	crawlCmd.Flags().IntVar(&fetchTimeoutSec, "fetch-timeout", 15, "Per-request fetch timeout in seconds")
	crawlCmd.Flags().StringVar(&reportFile, "report-file", "./data/report.txt", "Plain-text analytics report output path")
	crawlCmd.Flags().StringVar(&auditLogFile, "audit-log", "./data/audit.jsonl", "JSONL per-page audit log path (blank disables)")
}
