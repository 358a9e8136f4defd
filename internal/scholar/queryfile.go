// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scholar

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/scholar-engine/pkg/types"
)

// QueryFile is the on-disk representation of a query and its articles.
// A query can be saved to a file and reloaded later without re-fetching
// Scholar pages.
type QueryFile struct {
	Query   QueryParams     `yaml:"query"`
	Results []ArticleRecord `yaml:"results"`
	Summary QuerySummary    `yaml:"summary"`
}

// QueryParams stores the query parameters in a serializable form.
type QueryParams struct {
	Text         string `yaml:"text,omitempty"`
	Author       string `yaml:"author,omitempty"`
	SearchAuthor bool   `yaml:"search_author,omitempty"`
	Count        int    `yaml:"count,omitempty"`
}

// ArticleRecord is the flat serialized form of an Article's canonical
// fields. Absent string fields are omitted; counts always serialize.
type ArticleRecord struct {
	Title        string `yaml:"title" json:"title"`
	Authors      string `yaml:"authors,omitempty" json:"authors,omitempty"`
	URL          string `yaml:"url,omitempty" json:"url,omitempty"`
	NumCitations int    `yaml:"num_citations" json:"num_citations"`
	NumVersions  int    `yaml:"num_versions" json:"num_versions"`
	URLCitations string `yaml:"url_citations,omitempty" json:"url_citations,omitempty"`
	URLVersions  string `yaml:"url_versions,omitempty" json:"url_versions,omitempty"`
	Year         string `yaml:"year,omitempty" json:"year,omitempty"`
	Journal      string `yaml:"journal,omitempty" json:"journal,omitempty"`
}

// QuerySummary stores result statistics and a timestamp.
type QuerySummary struct {
	Total     int       `yaml:"total"`
	Timestamp time.Time `yaml:"timestamp"`
}

// NewArticleRecord flattens an Article into its serializable form.
func NewArticleRecord(art *types.Article) ArticleRecord {
	return ArticleRecord{
		Title:        art.GetString(types.FieldTitle),
		Authors:      art.GetString(types.FieldAuthors),
		URL:          art.GetString(types.FieldURL),
		NumCitations: art.GetInt(types.FieldNumCitations),
		NumVersions:  art.GetInt(types.FieldNumVersions),
		URLCitations: art.GetString(types.FieldURLCitations),
		URLVersions:  art.GetString(types.FieldURLVersions),
		Year:         art.GetString(types.FieldYear),
		Journal:      art.GetString(types.FieldJournal),
	}
}

// ToArticle rebuilds an Article from its serialized form.
func (r ArticleRecord) ToArticle() *types.Article {
	art := types.NewArticle()
	setIfPresent := func(key, value string) {
		if value != "" {
			art.Set(key, value)
		}
	}
	setIfPresent(types.FieldTitle, r.Title)
	setIfPresent(types.FieldAuthors, r.Authors)
	setIfPresent(types.FieldURL, r.URL)
	art.Set(types.FieldNumCitations, r.NumCitations)
	art.Set(types.FieldNumVersions, r.NumVersions)
	setIfPresent(types.FieldURLCitations, r.URLCitations)
	setIfPresent(types.FieldURLVersions, r.URLVersions)
	setIfPresent(types.FieldYear, r.Year)
	setIfPresent(types.FieldJournal, r.Journal)
	return art
}

// WriteQueryFile saves query parameters and articles to a YAML file.
func WriteQueryFile(path string, params QueryParams, articles []*types.Article) error {
	qf := QueryFile{
		Query:   params,
		Results: make([]ArticleRecord, 0, len(articles)),
		Summary: QuerySummary{
			Total:     len(articles),
			Timestamp: time.Now(),
		},
	}
	for _, art := range articles {
		qf.Results = append(qf.Results, NewArticleRecord(art))
	}

	data, err := yaml.Marshal(&qf)
	if err != nil {
		return fmt.Errorf("marshaling query file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadQueryFile loads a previously saved query file from disk.
func ReadQueryFile(path string) (*QueryFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading query file: %w", err)
	}
	var qf QueryFile
	if err := yaml.Unmarshal(data, &qf); err != nil {
		return nil, fmt.Errorf("parsing query file: %w", err)
	}
	return &qf, nil
}
