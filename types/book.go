package types

import "time"

// Book versions. A book is either sold in its original foreign-language
// edition or as a local translation.
const (
	VersionImported   = "imported"
	VersionTranslated = "translated"
)

// Book represents a catalog entry in the diabros system.
// Books are created by admins and are immutable afterwards.
type Book struct {
	// ID is the unique identifier of the book.
	ID int `json:"id" db:"id"`

	// Title is the book's title. Required.
	Title string `json:"title" db:"title"`

	// Author is the book's author. Required.
	Author string `json:"author" db:"author"`

	// Description is an optional free-form summary of the book.
	Description string `json:"description" db:"description"`

	// CoverImageURL points at the book's cover image. It may reference
	// an object served from this server's media endpoint or any
	// external URL.
	CoverImageURL string `json:"cover_image_url" db:"cover_image_url"`

	// Version classifies the edition: VersionImported for the original
	// foreign-language edition, VersionTranslated for a local
	// translation. Defaults to VersionImported.
	Version string `json:"version" db:"version"`

	// TokopediaURL is an optional link to the book's Tokopedia listing.
	TokopediaURL string `json:"tokopedia_url" db:"tokopedia_url"`

	// OpenLibraryID is an optional Open Library identifier for the book.
	OpenLibraryID string `json:"openlibrary_id" db:"openlibrary_id"`

	// CreatedAt is the timestamp at which the book was added.
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ValidVersion reports whether v is one of the enumerated book versions.
func ValidVersion(v string) bool {
	return v == VersionImported || v == VersionTranslated
}
