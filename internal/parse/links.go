// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parse

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pdiddy/scholar-engine/pkg/types"
)

// Scholar query-path prefixes distinguishing the two action-link kinds.
const (
	citationsPrefix = "/scholar?cites"
	versionsPrefix  = "/scholar?cluster"
)

// classifyActionLink inspects one anchor from a result block's actions
// row and fills the matching citation or version fields. The resolved
// link URL is always stored for a matched prefix; the count is stored
// only when its token parses as an integer. Anchors matching neither
// prefix are ignored.
func classifyActionLink(site string, a *goquery.Selection, art *types.Article) {
	href, ok := a.Attr("href")
	if !ok {
		return
	}
	text := a.Text()

	switch {
	case strings.HasPrefix(href, citationsPrefix):
		if strings.HasPrefix(text, "Cited by") {
			tokens := strings.Fields(text)
			if n, ok := asInt(tokens[len(tokens)-1]); ok {
				art.Set(types.FieldNumCitations, n)
			}
		}
		art.Set(types.FieldURLCitations, resolveURL(site, href))

	case strings.HasPrefix(href, versionsPrefix):
		if strings.HasPrefix(text, "All ") {
			tokens := strings.Fields(text)
			if len(tokens) > 1 {
				if n, ok := asInt(tokens[1]); ok {
					art.Set(types.FieldNumVersions, n)
				}
			}
		}
		art.Set(types.FieldURLVersions, resolveURL(site, href))
	}
}

// asInt parses s as a base-10 integer. Scholar sometimes renders count
// tokens as non-numeric text; that is an expected miss, not an error.
func asInt(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// resolveURL turns a Scholar result path into an absolute URL.
// Absolute http:// links pass through; everything else is rooted and
// prefixed with the site origin.
func resolveURL(site, path string) string {
	if strings.HasPrefix(path, "http://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return site + path
}
