package models

import "time"

// Place is a user-owned point of interest. Tags is the free-form
// comma-separated string as entered; TagSlugs is the normalized form
// used for filtering.
type Place struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Location    string    `json:"location"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	Rating      float64   `json:"rating"`
	Tags        string    `json:"tags,omitempty"`
	UserID      int64     `json:"-"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TagSlugs returns the normalized slugs of the place's tags, empty
// entries dropped.
func (p *Place) TagSlugs() []string {
	return SlugifyList(p.Tags)
}
