// Package catalog holds the browse-side filtering rules for the book
// catalog. Filtering operates on an already-fetched list, mirroring the
// way the catalog page narrows results on every keystroke.
package catalog

import (
	"strings"

	"github.com/diabros/apiserver/types"
)

// VersionAll disables version filtering.
const VersionAll = "all"

// Filter narrows books by a case-insensitive substring match on title
// or author, and by an exact version match. An empty query matches
// everything; version "" or "all" disables the version filter. The
// input order is preserved.
func Filter(books []types.Book, query, version string) []types.Book {
	query = strings.ToLower(strings.TrimSpace(query))
	byVersion := version != "" && version != VersionAll

	if query == "" && !byVersion {
		return books
	}

	filtered := make([]types.Book, 0, len(books))
	for _, book := range books {
		if query != "" &&
			!strings.Contains(strings.ToLower(book.Title), query) &&
			!strings.Contains(strings.ToLower(book.Author), query) {
			continue
		}
		if byVersion && book.Version != version {
			continue
		}
		filtered = append(filtered, book)
	}
	return filtered
}
