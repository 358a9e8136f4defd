// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the scholar-engine
// pipeline.
package types

import (
	"fmt"
	"sort"
	"strings"
)

// Canonical Article field names. Fields beyond this set can be added at
// runtime through Set; they render after the canonical fields.
const (
	FieldTitle        = "title"
	FieldAuthors      = "authors"
	FieldURL          = "url"
	FieldNumCitations = "num_citations"
	FieldNumVersions  = "num_versions"
	FieldURLCitations = "url_citations"
	FieldURLVersions  = "url_versions"
	FieldYear         = "year"
	FieldJournal      = "journal"
)

// absentValue is what an unset field renders as. Row output keeps a
// fixed column shape, so absent fields are printed rather than omitted.
const absentValue = "None"

// attr is one labeled Article value. A nil value means the field is
// absent. The order index fixes the display position for the lifetime
// of the record, independent of when the value is set.
type attr struct {
	value any
	label string
	order int
}

// Article represents one bibliographic entry extracted from a Scholar
// results or citation page. It behaves like an ordered dictionary:
// lookups of unknown fields return nil rather than failing, and new
// fields are appended after the canonical ones.
type Article struct {
	attrs map[string]*attr
}

// NewArticle returns an Article seeded with the canonical fields in
// display order. The counting fields start at 0; all others are absent.
func NewArticle() *Article {
	return &Article{attrs: map[string]*attr{
		FieldTitle:        {nil, "Title", 0},
		FieldAuthors:      {nil, "Authors", 1},
		FieldURL:          {nil, "URL", 2},
		FieldNumCitations: {0, "Citations", 3},
		FieldNumVersions:  {0, "Versions", 4},
		FieldURLCitations: {nil, "Citations list", 5},
		FieldURLVersions:  {nil, "Versions list", 6},
		FieldYear:         {nil, "Year", 7},
		FieldJournal:      {nil, "Journal", 8},
	}}
}

// Get returns the value stored under key, or nil when the field is
// absent or unknown.
func (a *Article) Get(key string) any {
	if f, ok := a.attrs[key]; ok {
		return f.value
	}
	return nil
}

// GetString returns the string value under key, or "" when the field
// is absent or holds a non-string.
func (a *Article) GetString(key string) string {
	if s, ok := a.Get(key).(string); ok {
		return s
	}
	return ""
}

// GetInt returns the integer value under key, or 0 when the field is
// absent or holds a non-integer.
func (a *Article) GetInt(key string) int {
	if n, ok := a.Get(key).(int); ok {
		return n
	}
	return 0
}

// Title returns the article title, or "" when none was extracted.
// Articles without a title are never surfaced to callers.
func (a *Article) Title() string {
	return a.GetString(FieldTitle)
}

// Set stores value under key. An unknown key is created with the key
// itself as label and the next free display index, so it renders after
// every existing field.
func (a *Article) Set(key string, value any) {
	if f, ok := a.attrs[key]; ok {
		f.value = value
		return
	}
	a.attrs[key] = &attr{value: value, label: key, order: a.nextOrder()}
}

// Delete removes key from the record. Deleting an unknown key is a no-op.
func (a *Article) Delete(key string) {
	delete(a.attrs, key)
}

func (a *Article) nextOrder() int {
	next := 0
	for _, f := range a.attrs {
		if f.order >= next {
			next = f.order + 1
		}
	}
	return next
}

// Keys returns the field names in display order.
func (a *Article) Keys() []string {
	keys := make([]string, 0, len(a.attrs))
	for k := range a.attrs {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return a.attrs[keys[i]].order < a.attrs[keys[j]].order
	})
	return keys
}

// Text renders the record as one label-value line per field in display
// order, with labels right-aligned to the longest label.
func (a *Article) Text() string {
	keys := a.Keys()

	maxLabel := 0
	for _, k := range keys {
		if n := len(a.attrs[k].label); n > maxLabel {
			maxLabel = n
		}
	}

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		f := a.attrs[k]
		lines = append(lines, fmt.Sprintf("%*s %s", maxLabel, f.label, formatValue(f.value)))
	}
	return strings.Join(lines, "\n")
}

// Row renders the record as a single sep-delimited line of raw values
// in display order, optionally preceded by a header line of field names.
func (a *Article) Row(header bool, sep string) string {
	keys := a.Keys()

	values := make([]string, 0, len(keys))
	for _, k := range keys {
		values = append(values, formatValue(a.attrs[k].value))
	}

	var lines []string
	if header {
		lines = append(lines, strings.Join(keys, sep))
	}
	lines = append(lines, strings.Join(values, sep))
	return strings.Join(lines, "\n")
}

func formatValue(v any) string {
	if v == nil {
		return absentValue
	}
	return fmt.Sprintf("%v", v)
}
