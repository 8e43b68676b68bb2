package types

import "time"

// Recommendation links one Person to one Book they recommend.
// Each (person, book) pair exists at most once; uniqueness is enforced
// by the database.
type Recommendation struct {
	// ID is the unique identifier of the link.
	ID int `json:"id" db:"id"`

	// PersonID identifies the recommending person.
	PersonID int `json:"person_id" db:"person_id"`

	// BookID identifies the recommended book.
	BookID int `json:"book_id" db:"book_id"`

	// CreatedAt is the timestamp at which the link was created.
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// RecommendationDetail is a Recommendation joined with the names of the
// entities it links, used by the admin overview listing.
type RecommendationDetail struct {
	Recommendation

	// PersonName is the name of the recommending person.
	PersonName string `json:"person_name" db:"person_name"`

	// BookTitle is the title of the recommended book.
	BookTitle string `json:"book_title" db:"book_title"`

	// BookAuthor is the author of the recommended book.
	BookAuthor string `json:"book_author" db:"book_author"`
}
