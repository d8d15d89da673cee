package source

import (
	"context"
	"fmt"
	"strings"
)

// SourceType describes how an outlet relates to the story it reports.
// The set is open; unknown values are scored as neutral.
type SourceType string

const (
	SourcePress      SourceType = "press"
	SourceCommunity  SourceType = "community"
	SourceAggregator SourceType = "aggregator"
)

// Confidence is the trust grade assigned to an article's outlet.
type Confidence string

const (
	ConfidenceHigh Confidence = "High"
	ConfidenceMid  Confidence = "Mid"
	ConfidenceLow  Confidence = "Low"
)

// Article is a single collected report about the searched story.
type Article struct {
	ID         string     `json:"id" yaml:"id"`
	Title      string     `json:"title" yaml:"title"`
	Content    string     `json:"content" yaml:"content"`
	URL        string     `json:"url" yaml:"url"`
	Domain     string     `json:"domain" yaml:"domain"`
	SourceType SourceType `json:"source_type" yaml:"source_type"`
	Timestamp  string     `json:"timestamp" yaml:"timestamp"`
	Confidence Confidence `json:"confidence" yaml:"confidence"`
}

// Source is the interface every article loader must implement.
type Source interface {
	Name() string
	Collect(ctx context.Context) ([]Article, error)
}

// Validation problems reported in ValidationError.Problem.
const (
	ProblemMissing   = "missing"
	ProblemDuplicate = "duplicate"
)

// ValidationError reports an article missing a field the analysis depends on,
// or reusing an id already taken by an earlier article.
type ValidationError struct {
	Index     int
	ArticleID string
	Field     string
	// Problem is ProblemMissing or ProblemDuplicate. Empty reads as missing.
	Problem string
}

func (e *ValidationError) Error() string {
	problem := e.Problem
	if problem == "" {
		problem = ProblemMissing
	}
	if e.ArticleID == "" {
		return fmt.Sprintf("article at index %d: %s %s", e.Index, problem, e.Field)
	}
	return fmt.Sprintf("article %q (index %d): %s %s", e.ArticleID, e.Index, problem, e.Field)
}

// Validate checks that every article carries an id, a title and a domain,
// and that no two articles share an id. It stops at the first offending
// article.
func Validate(articles []Article) error {
	seen := make(map[string]bool, len(articles))
	for i := range articles {
		a := &articles[i]
		var missing string
		switch {
		case strings.TrimSpace(a.ID) == "":
			missing = "id"
		case strings.TrimSpace(a.Title) == "":
			missing = "title"
		case strings.TrimSpace(a.Domain) == "":
			missing = "domain"
		}
		if missing != "" {
			return &ValidationError{Index: i, ArticleID: a.ID, Field: missing, Problem: ProblemMissing}
		}
		if seen[a.ID] {
			return &ValidationError{Index: i, ArticleID: a.ID, Field: "id", Problem: ProblemDuplicate}
		}
		seen[a.ID] = true
	}
	return nil
}
