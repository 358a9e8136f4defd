// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parse

import (
	"testing"

	"github.com/pdiddy/scholar-engine/pkg/types"
)

const testSite = "http://scholar.google.com"

func TestExtractBaselineBlock(t *testing.T) {
	html := `<html><body>
<div class="gs_r">
  <div class="gs_rt"><h3><a href="/scholar?q=x">Deep Learning</a></h3></div>
  <font><span class="gs_fl"><a href="/scholar?cites=1">Cited by 42</a></span></font>
</div>
</body></html>`

	articles := mustExtract(t, LayoutBaseline, html)
	if len(articles) != 1 {
		t.Fatalf("got %d articles, want 1", len(articles))
	}

	art := articles[0]
	if got := art.Title(); got != "Deep Learning" {
		t.Errorf("title = %q, want %q", got, "Deep Learning")
	}
	if got := art.GetString(types.FieldURL); got != testSite+"/scholar?q=x" {
		t.Errorf("url = %q, want %q", got, testSite+"/scholar?q=x")
	}
	if got := art.GetInt(types.FieldNumCitations); got != 42 {
		t.Errorf("num_citations = %d, want 42", got)
	}
	if got := art.GetString(types.FieldURLCitations); got != testSite+"/scholar?cites=1" {
		t.Errorf("url_citations = %q, want %q", got, testSite+"/scholar?cites=1")
	}
}

func TestExtractRevisionABlock(t *testing.T) {
	html := `<html><body>
<div class="gs_r">
  <h3 class="gs_rt"><a href="/scholar?q=y">Attention Is All You Need</a></h3>
  <div class="gs_a">A Vaswani, N Shazeer - NeurIPS, 2017 - papers.nips.cc</div>
  <div class="gs_fl">
    <a href="/scholar?cites=7">Cited by 90000</a>
    <a href="/scholar?cluster=9">All 3 versions</a>
  </div>
</div>
</body></html>`

	articles := mustExtract(t, LayoutRevisionA, html)
	if len(articles) != 1 {
		t.Fatalf("got %d articles, want 1", len(articles))
	}

	art := articles[0]
	if got := art.Title(); got != "Attention Is All You Need" {
		t.Errorf("title = %q", got)
	}
	if got := art.GetString(types.FieldYear); got != "2017" {
		t.Errorf("year = %q, want 2017", got)
	}
	if got := art.GetInt(types.FieldNumCitations); got != 90000 {
		t.Errorf("num_citations = %d, want 90000", got)
	}
	if got := art.GetInt(types.FieldNumVersions); got != 3 {
		t.Errorf("num_versions = %d, want 3", got)
	}
	if got := art.GetString(types.FieldURLVersions); got != testSite+"/scholar?cluster=9" {
		t.Errorf("url_versions = %q", got)
	}
}

func TestExtractRevisionBBlock(t *testing.T) {
	html := `<html><body>
<div class="gs_r">
  <div class="gs_ri">
    <h3 class="gs_rt"><a href="/scholar?q=z">ImageNet Classification</a></h3>
    <div class="gs_a">A Krizhevsky - 2012 - papers.nips.cc</div>
    <div class="gs_fl"><a href="/scholar?cluster=5">All 12 versions</a></div>
  </div>
</div>
</body></html>`

	articles := mustExtract(t, LayoutRevisionB, html)
	if len(articles) != 1 {
		t.Fatalf("got %d articles, want 1", len(articles))
	}

	art := articles[0]
	if got := art.Title(); got != "ImageNet Classification" {
		t.Errorf("title = %q", got)
	}
	if got := art.GetString(types.FieldYear); got != "2012" {
		t.Errorf("year = %q, want 2012", got)
	}
	if got := art.GetInt(types.FieldNumVersions); got != 12 {
		t.Errorf("num_versions = %d, want 12", got)
	}
}

func TestExtractRevisionBSkipsBlockWithoutContainer(t *testing.T) {
	// A block without the gs_ri container is skipped entirely, even
	// when a title anchor exists at the top level.
	html := `<html><body>
<div class="gs_r">
  <h3 class="gs_rt"><a href="/scholar?q=old">Old Layout Result</a></h3>
</div>
</body></html>`

	articles := mustExtract(t, LayoutRevisionB, html)
	if len(articles) != 0 {
		t.Errorf("got %d articles, want 0 (no partial extraction)", len(articles))
	}
}

func TestExtractDropsUntitledBlocks(t *testing.T) {
	html := `<html><body>
<div class="gs_r">
  <div class="gs_ri">
    <div class="gs_a">Byline only, no title anchor - 2020</div>
  </div>
</div>
<div class="gs_r">
  <div class="gs_ri">
    <h3 class="gs_rt"><a href="/scholar?q=ok">Titled Result</a></h3>
  </div>
</div>
</body></html>`

	articles := mustExtract(t, LayoutRevisionB, html)
	if len(articles) != 1 {
		t.Fatalf("got %d articles, want 1", len(articles))
	}
	if got := articles[0].Title(); got != "Titled Result" {
		t.Errorf("title = %q", got)
	}
}

func TestExtractMultipleBlocksInPageOrder(t *testing.T) {
	html := `<html><body>
<div class="gs_r"><div class="gs_ri"><a href="/a">First</a></div></div>
<div class="gs_r"><div class="gs_ri"><a href="/b">Second</a></div></div>
<div class="gs_r"><div class="gs_ri"><a href="/c">Third</a></div></div>
</body></html>`

	articles := mustExtract(t, LayoutRevisionB, html)
	want := []string{"First", "Second", "Third"}
	if len(articles) != len(want) {
		t.Fatalf("got %d articles, want %d", len(articles), len(want))
	}
	for i, w := range want {
		if got := articles[i].Title(); got != w {
			t.Errorf("articles[%d].Title() = %q, want %q", i, got, w)
		}
	}
}

func TestExtractYearVariants(t *testing.T) {
	tests := []struct {
		name   string
		byline string
		want   string // "" means absent
	}{
		{"modern year", "J Smith - Journal, 2019 - publisher", "2019"},
		{"nineties year", "J Smith - Proc., 1997", "1997"},
		{"first of several years", "reprint 2005 of a 1998 paper", "2005"},
		{"no year", "J Smith - Journal - publisher", ""},
		{"five digit number ignored", "volume 20190", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html := `<html><body><div class="gs_r"><div class="gs_ri">` +
				`<a href="/x">T</a><div class="gs_a">` + tt.byline + `</div>` +
				`</div></div></body></html>`

			articles := mustExtract(t, LayoutRevisionB, html)
			if len(articles) != 1 {
				t.Fatalf("got %d articles, want 1", len(articles))
			}
			got := articles[0].GetString(types.FieldYear)
			if got != tt.want {
				t.Errorf("year = %q, want %q", got, tt.want)
			}
		})
	}
}

func mustExtract(t *testing.T, layout Layout, html string) []*types.Article {
	t.Helper()
	articles, err := NewExtractor(layout, testSite).Extract(html)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	return articles
}
