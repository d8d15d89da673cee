package source

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mmcdole/gofeed"
	"go.uber.org/zap"

	"github.com/elonfeng/tracefirst/internal/logger"
)

// FeedFile loads articles from a saved RSS or Atom document.
type FeedFile struct {
	name       string
	path       string
	sourceType SourceType
	parser     *gofeed.Parser
	classifier *Classifier
	log        logger.Logger
}

// NewFeedFile creates a feed loader. Every entry is tagged with sourceType.
func NewFeedFile(name, path string, sourceType SourceType, classifier *Classifier, log logger.Logger) *FeedFile {
	if name == "" {
		name = path
	}
	if sourceType == "" {
		sourceType = SourcePress
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &FeedFile{
		name:       name,
		path:       path,
		sourceType: sourceType,
		parser:     gofeed.NewParser(),
		classifier: classifier,
		log:        log.With(zap.String("feed", name)),
	}
}

func (f *FeedFile) Name() string { return "feed:" + f.name }

func (f *FeedFile) Collect(ctx context.Context) ([]Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("open feed %s: %w", f.name, err)
	}
	defer file.Close()

	parsed, err := f.parser.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", f.name, err)
	}

	var articles []Article
	seen := make(map[string]bool, len(parsed.Items))
	for _, entry := range parsed.Items {
		title := strings.TrimSpace(entry.Title)
		if title == "" {
			f.log.Debug("skipping untitled entry", zap.String("guid", entry.GUID))
			continue
		}

		link := entry.Link
		if link == "" && len(entry.Links) > 0 {
			link = entry.Links[0]
		}

		domain := hostOf(link)
		if domain == "" {
			domain = hostOf(parsed.Link)
		}

		id := entry.GUID
		if id == "" {
			id = uuid.NewSHA1(uuid.NameSpaceURL, []byte(link+"\x00"+title)).String()
		}

		id = fmt.Sprintf("feed:%s:%s", f.name, id)
		if seen[id] {
			f.log.Debug("skipping repeated entry", zap.String("id", id))
			continue
		}
		seen[id] = true

		articles = append(articles, Article{
			ID:         id,
			Title:      title,
			Content:    strings.TrimSpace(entry.Description + "\n" + entry.Content),
			URL:        link,
			Domain:     domain,
			SourceType: f.sourceType,
			Timestamp:  entryTimestamp(entry),
		})
	}

	if f.classifier != nil {
		f.classifier.Fill(articles)
	}
	f.log.Debug("feed loaded", zap.Int("entries", len(parsed.Items)), zap.Int("articles", len(articles)))
	return articles, nil
}

func entryTimestamp(entry *gofeed.Item) string {
	switch {
	case entry.PublishedParsed != nil:
		return entry.PublishedParsed.UTC().Format(time.RFC3339)
	case entry.UpdatedParsed != nil:
		return entry.UpdatedParsed.UTC().Format(time.RFC3339)
	case entry.Published != "":
		return entry.Published
	}
	return entry.Updated
}

// hostOf returns the lowercase host of rawURL without a leading "www.".
func hostOf(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}
