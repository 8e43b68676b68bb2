package types

import "time"

// Person represents a public figure who recommends books.
// People are created by admins and are immutable afterwards.
type Person struct {
	// ID is the unique identifier of the person.
	ID int `json:"id" db:"id"`

	// Name is the person's display name. Required.
	Name string `json:"name" db:"name"`

	// Bio is an optional short biography.
	Bio string `json:"bio" db:"bio"`

	// AvatarURL points at the person's avatar image.
	AvatarURL string `json:"avatar_url" db:"avatar_url"`

	// CreatedAt is the timestamp at which the person was added.
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
