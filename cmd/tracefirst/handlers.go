package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/elonfeng/tracefirst/internal/config"
	"github.com/elonfeng/tracefirst/internal/logger"
	"github.com/elonfeng/tracefirst/pkg/similarity"
	"github.com/elonfeng/tracefirst/pkg/source"
	"github.com/elonfeng/tracefirst/pkg/story"
	"github.com/elonfeng/tracefirst/pkg/timeparse"
)

type analyzeOptions struct {
	inputs        []string
	feeds         []string
	feedType      string
	query         string
	minMatches    int
	minMatchesSet bool
	now           string
	threshold     float64
	thresholdSet  bool
	strategy      string
	jsonOutput    bool
	explain       bool
	sortByScore   bool
}

func loadConfig() (*config.Config, error) {
	path := cfgFile
	if path == "" {
		if _, err := os.Stat("config.yaml"); err == nil {
			path = "config.yaml"
		}
	}
	return config.Load(path)
}

// applyFlags folds command line overrides into cfg and revalidates it.
func applyFlags(cfg *config.Config, opts analyzeOptions) error {
	if opts.thresholdSet {
		cfg.Analysis.Threshold = opts.threshold
	}
	if opts.strategy != "" {
		cfg.Analysis.Strategy = opts.strategy
	}
	if opts.query != "" {
		cfg.Filter.Query = opts.query
	}
	if opts.minMatchesSet {
		cfg.Filter.MinMatches = opts.minMatches
	}
	for _, in := range opts.inputs {
		cfg.Sources.JSON = append(cfg.Sources.JSON, config.JSONInput{Path: in})
	}
	for _, f := range opts.feeds {
		name, path, ok := strings.Cut(f, "=")
		if !ok {
			name, path = "", f
		}
		cfg.Sources.Feeds = append(cfg.Sources.Feeds, config.FeedInput{
			Name:       name,
			Path:       path,
			SourceType: opts.feedType,
		})
	}
	return cfg.Validate()
}

func buildSources(cfg *config.Config, log logger.Logger) []source.Source {
	classifier := source.NewClassifier(cfg.Trust.HighDomains, cfg.Trust.MidDomains)

	var sources []source.Source
	for _, in := range cfg.Sources.JSON {
		sources = append(sources, source.NewJSONFile(in.Path, config.SourceType(in.SourceType), classifier))
	}
	for _, in := range cfg.Sources.Feeds {
		sources = append(sources, source.NewFeedFile(in.Name, in.Path, config.SourceType(in.SourceType), classifier, log))
	}
	return sources
}

// collect loads every source in order. A failing source does not stop the
// others, but any failure fails the run.
func collect(ctx context.Context, sources []source.Source, log logger.Logger) ([]source.Article, error) {
	var (
		articles []source.Article
		errs     []error
	)
	for _, src := range sources {
		items, err := src.Collect(ctx)
		if err != nil {
			log.Error("load failed", zap.String("source", src.Name()), zap.Error(err))
			errs = append(errs, err)
			continue
		}
		log.Debug("loaded", zap.String("source", src.Name()), zap.Int("articles", len(items)))
		articles = append(articles, items...)
	}
	return articles, errors.Join(errs...)
}

func parseNow(v string) (time.Time, error) {
	if v == "" {
		return time.Now(), nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse --now %q: %w", v, err)
	}
	return t, nil
}

func runAnalyze(ctx context.Context, out io.Writer, opts analyzeOptions) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := applyFlags(cfg, opts); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	now, err := parseNow(opts.now)
	if err != nil {
		return err
	}

	engineOpts, err := cfg.EngineOptions()
	if err != nil {
		return err
	}
	engine, err := story.New(engineOpts)
	if err != nil {
		return fmt.Errorf("build engine: %w", err)
	}

	sources := buildSources(cfg, log)
	if len(sources) == 0 {
		return errors.New("no input: pass batch files, --input or --feed, or configure sources")
	}

	started := time.Now()
	articles, err := collect(ctx, sources, log)
	if err != nil {
		return fmt.Errorf("load articles: %w", err)
	}

	if cfg.Filter.Query != "" {
		filter := source.NewQueryFilter(cfg.Filter.Query, cfg.Filter.MinMatches, cfg.Filter.ExtraStopwords)
		before := len(articles)
		articles = filter.Apply(articles)
		log.Debug("query filter applied",
			zap.Strings("keywords", filter.Keywords()),
			zap.Int("before", before),
			zap.Int("after", len(articles)))
	}

	clusters, err := engine.Analyze(articles, now)
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}
	log.Info("analysis complete",
		zap.Int("articles", len(articles)),
		zap.Int("clusters", len(clusters)),
		zap.String("strategy", engine.Strategy().Name()),
		zap.Float64("threshold", engine.Threshold()),
		zap.Duration("elapsed", time.Since(started)))

	if opts.sortByScore {
		clusters = story.SortByScore(clusters)
	}

	var breakdowns map[string][]story.ArticleScore
	if opts.explain {
		breakdowns = make(map[string][]story.ArticleScore, len(clusters))
		for _, c := range clusters {
			breakdowns[c.ID] = engine.Scorer().Explain(c.Members, now)
		}
	}

	if opts.jsonOutput {
		return writeClustersJSON(out, clusters, breakdowns)
	}
	return writeClustersTable(out, clusters, breakdowns)
}

type explainedCluster struct {
	story.Cluster
	Breakdown []story.ArticleScore `json:"breakdown,omitempty"`
}

func writeClustersJSON(out io.Writer, clusters []story.Cluster, breakdowns map[string][]story.ArticleScore) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if breakdowns == nil {
		return enc.Encode(clusters)
	}

	explained := make([]explainedCluster, len(clusters))
	for i, c := range clusters {
		explained[i] = explainedCluster{Cluster: c, Breakdown: breakdowns[c.ID]}
	}
	return enc.Encode(explained)
}

func writeClustersTable(out io.Writer, clusters []story.Cluster, breakdowns map[string][]story.ArticleScore) error {
	if len(clusters) == 0 {
		_, err := fmt.Fprintln(out, "no clusters (empty batch)")
		return err
	}

	rows := [][]string{{"SCORE", "SIZE", "CLUSTER", "LABEL"}}
	for _, c := range clusters {
		rows = append(rows, []string{
			strconv.FormatFloat(c.Score, 'f', 3, 64),
			strconv.Itoa(c.Size),
			c.ID,
			c.Label,
		})
		for _, b := range breakdowns[c.ID] {
			rows = append(rows, []string{
				"",
				"",
				fmt.Sprintf("  #%d %.3f", b.Rank+1, b.Score),
				fmt.Sprintf("%s  T=%.2f X=%.2f B=%.2f S=-%.2f C=+%.2f  %s",
					b.ArticleID, b.Temporal, b.CrossVerification, b.Backlink,
					b.SyndicationPenalty, b.CommunityBonus,
					b.PublishedAt.UTC().Format(time.RFC3339)),
			})
		}
	}
	return writeTable(out, rows)
}

func runSimilarity(out io.Writer, a, b string) error {
	rows := [][]string{{"STRATEGY", "SIMILARITY"}}
	for _, name := range similarity.Names() {
		s, err := similarity.ByName(name)
		if err != nil {
			return err
		}
		rows = append(rows, []string{name, strconv.FormatFloat(s.Similarity(a, b), 'f', 4, 64)})
	}
	return writeTable(out, rows)
}

func runNormalize(out io.Writer, raws []string, nowFlag string) error {
	now, err := parseNow(nowFlag)
	if err != nil {
		return err
	}

	rows := [][]string{{"INPUT", "RESOLVED", "KIND"}}
	for _, raw := range raws {
		resolved, kind := timeparse.Resolve(raw, now)
		rows = append(rows, []string{raw, resolved.Format(time.RFC3339), kind.String()})
	}
	return writeTable(out, rows)
}
