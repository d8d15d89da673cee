package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "tracefirst",
		Short:         "Cluster news reports about a story and rank them by TraceScore",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml if present)")

	root.AddCommand(analyzeCmd())
	root.AddCommand(similarityCmd())
	root.AddCommand(normalizeCmd())

	return root
}

func analyzeCmd() *cobra.Command {
	var opts analyzeOptions

	cmd := &cobra.Command{
		Use:   "analyze [batch.json ...]",
		Short: "Cluster an article batch and score each cluster",
		Long: `Loads articles from JSON batch files (use - for stdin) and saved RSS/Atom
feeds, groups near-duplicate titles into clusters and prints each cluster
with its TraceScore.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.inputs = append(opts.inputs, args...)
			opts.thresholdSet = cmd.Flags().Changed("threshold")
			opts.minMatchesSet = cmd.Flags().Changed("min-matches")
			return runAnalyze(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	f := cmd.Flags()
	f.StringSliceVar(&opts.inputs, "input", nil, "JSON batch files")
	f.StringSliceVar(&opts.feeds, "feed", nil, "RSS/Atom files, as path or name=path")
	f.StringVar(&opts.feedType, "feed-type", "press", "source type for --feed entries (press, community, aggregator)")
	f.StringVar(&opts.query, "query", "", "search query used to rank and filter articles")
	f.IntVar(&opts.minMatches, "min-matches", 0, "drop articles matching fewer query keywords")
	f.StringVar(&opts.now, "now", "", "reference time for relative timestamps, RFC 3339 (default: current time)")
	f.Float64Var(&opts.threshold, "threshold", 0, "title similarity needed to join a cluster (default: from config)")
	f.StringVar(&opts.strategy, "strategy", "", "similarity strategy: ratio or jaccard (default: from config)")
	f.BoolVar(&opts.jsonOutput, "json", false, "output as JSON")
	f.BoolVar(&opts.explain, "explain", false, "include the per-article score breakdown")
	f.BoolVar(&opts.sortByScore, "sort", false, "order clusters by score instead of creation order")
	return cmd
}

func similarityCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "similarity <title> <title>",
		Short: "Show how similar two titles are under every strategy",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimilarity(cmd.OutOrStdout(), args[0], args[1])
		},
	}
}

func normalizeCmd() *cobra.Command {
	var now string

	cmd := &cobra.Command{
		Use:   "normalize <timestamp> [timestamp ...]",
		Short: "Resolve relative or absolute timestamps to RFC 3339",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNormalize(cmd.OutOrStdout(), args, now)
		},
	}

	cmd.Flags().StringVar(&now, "now", "", "reference time, RFC 3339 (default: current time)")
	return cmd
}
