package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// JSONFile loads an article batch from a JSON file. The document is either an
// array of articles or an object with an "articles" array. Path "-" reads
// standard input.
type JSONFile struct {
	path        string
	defaultType SourceType
	classifier  *Classifier
	stdin       io.Reader
}

// NewJSONFile creates a JSON batch loader. Articles without a source type get
// defaultType; articles without a confidence are graded by classifier when it
// is non-nil.
func NewJSONFile(path string, defaultType SourceType, classifier *Classifier) *JSONFile {
	return &JSONFile{
		path:        path,
		defaultType: defaultType,
		classifier:  classifier,
		stdin:       os.Stdin,
	}
}

func (j *JSONFile) Name() string { return "json:" + j.path }

func (j *JSONFile) Collect(ctx context.Context) ([]Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		data []byte
		err  error
	)
	if j.path == "-" {
		data, err = io.ReadAll(j.stdin)
	} else {
		data, err = os.ReadFile(j.path)
	}
	if err != nil {
		return nil, fmt.Errorf("read batch %s: %w", j.path, err)
	}

	articles, err := decodeBatch(data)
	if err != nil {
		return nil, fmt.Errorf("decode batch %s: %w", j.path, err)
	}

	for i := range articles {
		if articles[i].SourceType == "" {
			articles[i].SourceType = j.defaultType
		}
	}
	if j.classifier != nil {
		j.classifier.Fill(articles)
	}
	return articles, nil
}

func decodeBatch(data []byte) ([]Article, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	var articles []Article
	if data[0] == '[' {
		if err := json.Unmarshal(data, &articles); err != nil {
			return nil, err
		}
		return articles, nil
	}

	var wrapped struct {
		Articles []Article `json:"articles"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, err
	}
	return wrapped.Articles, nil
}
