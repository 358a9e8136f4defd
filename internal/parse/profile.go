// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parse

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pdiddy/scholar-engine/pkg/types"
)

const (
	// profilePathMarker identifies an anchor leading to an author
	// profile on an author-search results page.
	profilePathMarker = "/citations?user="

	// profilePageSuffix forces the profile's citation table to list
	// works at the largest page size Scholar supports.
	profilePageSuffix = "&view_op=list_works&pagesize=100"

	// luckySuffix marks the "I'm Feeling Lucky" cluster link on a
	// citation detail page, which is not a versions link.
	luckySuffix = "&btnI=Lucky"
)

// AuthorProfileURL scans an author-search results page for the first
// anchor leading to an author profile and returns that profile's
// citation-list URL. ok is false when the page contains no profile
// link; that ends the author flow with an empty result set.
func AuthorProfileURL(html, site string) (profileURL string, ok bool, err error) {
	if site == "" {
		site = types.DefaultSite
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", false, fmt.Errorf("parsing author search page: %w", err)
	}

	var found string
	doc.Find("a").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, hasHref := a.Attr("href")
		if !hasHref {
			return true
		}
		resolved := site + href + profilePageSuffix
		if strings.Contains(resolved, profilePathMarker) {
			found = resolved
			return false
		}
		return true
	})

	return found, found != "", nil
}

// CitationRow is one entry of an author profile's citation table: the
// partially populated Article plus the detail-page URL the querier
// follows to finish it.
type CitationRow struct {
	Article   *types.Article
	DetailURL string
}

// ParseCitationRows parses an author profile page and returns its
// citation-table rows in page order. Rows without a title are dropped.
func ParseCitationRows(html, site string) ([]CitationRow, error) {
	if site == "" {
		site = types.DefaultSite
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing author profile page: %w", err)
	}

	var rows []CitationRow
	doc.Find("tr.cit-table.item").Each(func(_ int, tr *goquery.Selection) {
		if row, ok := parseCitationRow(tr, site); ok {
			rows = append(rows, row)
		}
	})
	return rows, nil
}

func parseCitationRow(tr *goquery.Selection, site string) (CitationRow, bool) {
	titleCell := tr.Find("#col-title").First()
	titleLink := titleCell.Find("a").First()
	if titleLink.Length() == 0 {
		return CitationRow{}, false
	}

	title := titleLink.Text()
	if title == "" {
		return CitationRow{}, false
	}

	art := types.NewArticle()
	art.Set(types.FieldTitle, title)

	row := CitationRow{Article: art}
	if href, ok := titleLink.Attr("href"); ok {
		row.DetailURL = resolveURL(site, href)
	}

	// The title cell carries the byline as spans: authors first, then
	// the journal when present.
	spans := titleCell.Find("span")
	if spans.Length() > 0 {
		art.Set(types.FieldAuthors, spans.Eq(0).Text())
		if spans.Length() > 1 {
			art.Set(types.FieldJournal, spans.Eq(1).Text())
		}
	}

	// An uncited work renders an empty citations cell; its fields stay
	// at their defaults.
	citedCell := tr.Find("#col-citedby").First()
	if citedCell.Text() != "" {
		citedLink := citedCell.Find("a").First()
		if href, ok := citedLink.Attr("href"); ok {
			if n, ok := asInt(citedLink.Text()); ok {
				art.Set(types.FieldNumCitations, n)
			}
			art.Set(types.FieldURLCitations, resolveURL(site, href))
		}
	}

	if year := strings.TrimSpace(tr.Find("#col-year").First().Text()); year != "" {
		art.Set(types.FieldYear, year)
	}

	return row, true
}

// CitationDetail holds the enrichment fields recovered from a
// per-citation detail page.
type CitationDetail struct {
	// URL is the canonical article link from the detail page's title
	// anchor, or "" when the anchor is missing.
	URL string

	// VersionsURL is the "all versions" cluster link, or "" when the
	// page lists no versions.
	VersionsURL string

	// NumVersions is the parsed versions count; valid only when
	// HasCount is true.
	NumVersions int
	HasCount    bool
}

// ParseCitationDetail parses a per-citation detail page. A page
// without the expected content cell is malformed: unlike block-level
// misses there is no fallback field source, so that is an error.
func ParseCitationDetail(html, site string) (CitationDetail, error) {
	if site == "" {
		site = types.DefaultSite
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return CitationDetail{}, fmt.Errorf("parsing citation detail page: %w", err)
	}

	cell := doc.Find("td.cit-contentcell").First()
	if cell.Length() == 0 {
		return CitationDetail{}, fmt.Errorf("citation detail page has no content cell")
	}

	var detail CitationDetail
	if href, ok := cell.Find("#title a").First().Attr("href"); ok {
		detail.URL = href
	}

	cell.Find("a").Each(func(_ int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		if !ok {
			return
		}
		if !strings.Contains(href, "&cluster=") || strings.HasSuffix(href, luckySuffix) {
			return
		}
		detail.VersionsURL = href
		tokens := strings.Fields(a.Text())
		if len(tokens) > 1 {
			if n, ok := asInt(tokens[1]); ok {
				detail.NumVersions = n
				detail.HasCount = true
			}
		}
	})

	return detail, nil
}
