package models

import "time"

// DefaultNoteTitle is used when a note is created with a blank title.
const DefaultNoteTitle = "Untitled"

// Note represents a single note owned by exactly one user. Image and Audio
// are opaque references (typically data URIs) stored and returned verbatim.
type Note struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	CreatedAt  time.Time `json:"createdAt"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	IsFavorite bool      `json:"isFavorite"`
	Image      string    `json:"image,omitempty"`
	Audio      string    `json:"audio,omitempty"`
}
