// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scholar orchestrates Scholar retrieval flows: a direct
// results-page query, and an author flow that chains the author-search
// page, the author profile's citation table, and one detail page per
// citation row into a single article collection.
package scholar

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/pdiddy/scholar-engine/internal/parse"
	"github.com/pdiddy/scholar-engine/pkg/types"
)

// Fetcher is the transport the querier consumes: one blocking round
// trip per call, returning the full response body.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Search URL templates. The first slot is the site origin; query and
// author text are URL-escaped into the remaining slots.
const (
	authorSearchURL  = "%s/scholar?hl=en&q=%s+author:%s&btnG=Search&as_subj=eng&as_sdt=1,5&as_ylo=&as_vis=0"
	plainSearchURL   = "%s/scholar?hl=en&q=%s&btnG=Search&as_subj=eng&as_std=1,5&as_ylo=&as_vis=0"
	profileSearchURL = "%s/citations?hl=en&view_op=search_authors&mauthors=%s"
)

// maxResultCap is the largest result count Scholar honors.
const maxResultCap = 100

// enrichWorkers bounds the concurrent citation-detail fetches in the
// author flow. Results are merged back by row index, so output order
// always matches the citation table's row order.
const enrichWorkers = 4

// Querier runs Scholar queries and collects the extracted articles.
// One Querier serves one session; starting a new query clears the
// previous session's collection.
type Querier struct {
	fetcher  Fetcher
	cfg      types.ScholarConfig
	author   string
	count    int
	articles []*types.Article
}

// New returns a Querier. The author constraint may be empty; count
// caps results and is clamped to [0, 100], with 0 meaning no cap.
func New(fetcher Fetcher, cfg types.ScholarConfig, author string, count int) *Querier {
	if count < 0 {
		count = 0
	}
	if count > maxResultCap {
		count = maxResultCap
	}
	return &Querier{fetcher: fetcher, cfg: cfg, author: author, count: count}
}

// Articles returns the collection accumulated by the last query, in
// discovery order.
func (q *Querier) Articles() []*types.Article {
	return q.articles
}

func (q *Querier) clear() {
	q.articles = nil
}

func (q *Querier) site() string {
	return q.cfg.SiteOrigin()
}

// searchURL builds the results-page URL for query, using the
// author-qualified template when an author constraint is set.
func (q *Querier) searchURL(query string) string {
	var u string
	if q.author == "" {
		u = fmt.Sprintf(plainSearchURL, q.site(), url.QueryEscape(query))
	} else {
		u = fmt.Sprintf(authorSearchURL, q.site(), url.QueryEscape(query), url.QueryEscape(q.author))
	}
	return q.withCount(u)
}

func (q *Querier) profileSearchURL() string {
	return q.withCount(fmt.Sprintf(profileSearchURL, q.site(), url.QueryEscape(q.author)))
}

func (q *Querier) withCount(u string) string {
	if q.count != 0 {
		u += fmt.Sprintf("&num=%d", q.count)
	}
	return u
}

// Query runs the direct flow: fetch one results page and extract its
// articles with the most recent layout revision.
func (q *Querier) Query(ctx context.Context, query string) ([]*types.Article, error) {
	q.clear()

	html, err := q.fetcher.Fetch(ctx, q.searchURL(query))
	if err != nil {
		return nil, fmt.Errorf("fetching results page: %w", err)
	}

	extractor := parse.NewExtractor(parse.LayoutRevisionB, q.site())
	articles, err := extractor.Extract(html)
	if err != nil {
		return nil, err
	}

	q.articles = articles
	return q.articles, nil
}

// QueryAuthor runs the author flow: locate the author's profile from
// the author-search page, walk the profile's citation table, and
// enrich each row from its detail page. A missing profile link is not
// an error; the flow ends with an empty collection.
func (q *Querier) QueryAuthor(ctx context.Context) ([]*types.Article, error) {
	q.clear()

	html, err := q.fetcher.Fetch(ctx, q.profileSearchURL())
	if err != nil {
		return nil, fmt.Errorf("fetching author search page: %w", err)
	}

	profileURL, ok, err := parse.AuthorProfileURL(html, q.site())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	html, err = q.fetcher.Fetch(ctx, profileURL)
	if err != nil {
		return nil, fmt.Errorf("fetching author profile page: %w", err)
	}

	rows, err := parse.ParseCitationRows(html, q.site())
	if err != nil {
		return nil, err
	}

	articles, err := q.enrichRows(ctx, rows)
	if err != nil {
		return nil, err
	}

	q.articles = articles
	return q.articles, nil
}

// enrichRows runs the per-row citation-detail fetches through a small
// worker pool and returns the articles in row order.
func (q *Querier) enrichRows(ctx context.Context, rows []parse.CitationRow) ([]*types.Article, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	workers := enrichWorkers
	if workers > len(rows) {
		workers = len(rows)
	}

	jobs := make(chan int)
	errs := make(chan error, len(rows))
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if err := enrichRow(ctx, q.fetcher, q.site(), rows[i]); err != nil {
					errs <- fmt.Errorf("citation detail for %q: %w", rows[i].Article.Title(), err)
				}
			}
		}()
	}

	for i := range rows {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	close(errs)

	if err := <-errs; err != nil {
		return nil, err
	}

	articles := make([]*types.Article, len(rows))
	for i, row := range rows {
		articles[i] = row.Article
	}
	return articles, nil
}

// enrichRow fetches one citation's detail page and merges the canonical
// URL and version fields into the row's article. A row without a
// detail link keeps its table-derived fields only.
func enrichRow(ctx context.Context, fetcher Fetcher, site string, row parse.CitationRow) error {
	if row.DetailURL == "" {
		return nil
	}

	detail, err := citationDetail(ctx, fetcher, site, row.DetailURL)
	if err != nil {
		return err
	}

	if detail.URL != "" {
		row.Article.Set(types.FieldURL, detail.URL)
	}
	if detail.VersionsURL != "" {
		row.Article.Set(types.FieldURLVersions, detail.VersionsURL)
		if detail.HasCount {
			row.Article.Set(types.FieldNumVersions, detail.NumVersions)
		}
	}
	return nil
}

// citationDetail fetches and parses one per-citation detail page.
func citationDetail(ctx context.Context, fetcher Fetcher, site, pageURL string) (parse.CitationDetail, error) {
	html, err := fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return parse.CitationDetail{}, err
	}
	return parse.ParseCitationDetail(html, site)
}

// LookupURL runs a direct query for title and returns the url and year
// of the article whose title matches exactly, ignoring case and
// whitespace. ok is false when no article matches.
func (q *Querier) LookupURL(ctx context.Context, title string) (articleURL, year string, ok bool, err error) {
	articles, err := q.Query(ctx, title)
	if err != nil {
		return "", "", false, err
	}

	want := normalizeTitle(title)
	for _, art := range articles {
		if normalizeTitle(art.Title()) == want {
			return art.GetString(types.FieldURL), art.GetString(types.FieldYear), true, nil
		}
	}
	return "", "", false, nil
}

// Titles runs an empty direct query, which Scholar answers with the
// author's works when an author constraint is set, and returns the
// extracted titles in discovery order.
func (q *Querier) Titles(ctx context.Context) ([]string, error) {
	articles, err := q.Query(ctx, "")
	if err != nil {
		return nil, err
	}

	titles := make([]string, 0, len(articles))
	for _, art := range articles {
		titles = append(titles, art.Title())
	}
	return titles, nil
}

// normalizeTitle lowercases and strips all whitespace for exact-match
// comparison.
func normalizeTitle(title string) string {
	return strings.Join(strings.Fields(strings.ToLower(title)), "")
}
