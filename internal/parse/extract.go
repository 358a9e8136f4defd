// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package parse extracts Article records from Scholar HTML pages.
// It covers the three page families the querier fetches: search
// results (in three layout revisions), author profile pages, and
// per-citation detail pages.
package parse

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pdiddy/scholar-engine/pkg/types"
)

// Layout identifies which markup revision a results page uses. Google
// has reshuffled the result-block markup over time; the layout is a
// configuration choice of the caller, never sniffed from content.
type Layout int

const (
	// LayoutBaseline is the original result markup: the title heading
	// sits in a classed div and the actions row inside a font element.
	LayoutBaseline Layout = iota

	// LayoutRevisionA moved the title onto a classed heading and gave
	// the byline and actions row their own top-level divs.
	LayoutRevisionA

	// LayoutRevisionB nests the whole per-article content one level
	// deeper under a single container div.
	LayoutRevisionB
)

// yearRe matches a four-digit year anywhere in a byline.
var yearRe = regexp.MustCompile(`\b(?:20|19)\d{2}\b`)

// Extractor parses a results page in one fixed layout and collects the
// articles it contains. An article is kept only when a title was found.
type Extractor struct {
	layout Layout
	site   string
}

// NewExtractor returns an Extractor for the given layout. Relative
// result links are resolved against site.
func NewExtractor(layout Layout, site string) *Extractor {
	if site == "" {
		site = types.DefaultSite
	}
	return &Extractor{layout: layout, site: site}
}

// Extract parses html and returns all articles found, in page order.
func (e *Extractor) Extract(html string) ([]*types.Article, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing results page: %w", err)
	}

	var articles []*types.Article
	doc.Find("div.gs_r").Each(func(_ int, blk *goquery.Selection) {
		art := e.extractBlock(blk)
		if art != nil && art.Title() != "" {
			articles = append(articles, art)
		}
	})
	return articles, nil
}

// extractBlock populates one Article from a result block according to
// the configured layout. It returns nil when the layout's required
// structure is missing from the block.
func (e *Extractor) extractBlock(blk *goquery.Selection) *types.Article {
	switch e.layout {
	case LayoutRevisionA:
		return e.extractRevisionA(blk)
	case LayoutRevisionB:
		return e.extractRevisionB(blk)
	default:
		return e.extractBaseline(blk)
	}
}

func (e *Extractor) extractBaseline(blk *goquery.Selection) *types.Article {
	art := types.NewArticle()

	e.setTitle(art, blk.Find("div.gs_rt h3 a").First())

	blk.Find("font span.gs_fl a").Each(func(_ int, a *goquery.Selection) {
		classifyActionLink(e.site, a, art)
	})
	return art
}

func (e *Extractor) extractRevisionA(blk *goquery.Selection) *types.Article {
	art := types.NewArticle()

	e.setTitle(art, blk.Find("h3.gs_rt a").First())
	e.setYear(art, blk.Find("div.gs_a").First())

	blk.Find("div.gs_fl a").Each(func(_ int, a *goquery.Selection) {
		classifyActionLink(e.site, a, art)
	})
	return art
}

func (e *Extractor) extractRevisionB(blk *goquery.Selection) *types.Article {
	// All content sits under the gs_ri container; without it the block
	// is skipped entirely rather than partially extracted.
	inner := blk.Find("div.gs_ri").First()
	if inner.Length() == 0 {
		return nil
	}

	art := types.NewArticle()

	e.setTitle(art, inner.Find("a").First())
	e.setYear(art, inner.Find("div.gs_a").First())

	inner.Find("div.gs_fl a").Each(func(_ int, a *goquery.Selection) {
		classifyActionLink(e.site, a, art)
	})
	return art
}

// setTitle sets the title and resolved url from a title anchor, when
// one exists.
func (e *Extractor) setTitle(art *types.Article, a *goquery.Selection) {
	if a.Length() == 0 {
		return
	}
	href, ok := a.Attr("href")
	if !ok {
		return
	}
	art.Set(types.FieldTitle, a.Text())
	art.Set(types.FieldURL, resolveURL(e.site, href))
}

// setYear scans a byline element for the first four-digit year.
func (e *Extractor) setYear(art *types.Article, byline *goquery.Selection) {
	if byline.Length() == 0 {
		return
	}
	if year := yearRe.FindString(byline.Text()); year != "" {
		art.Set(types.FieldYear, year)
	}
}
