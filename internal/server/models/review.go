package models

import "time"

// Review is a user's rating of a place. One review per (user, place).
type Review struct {
	ID        int64     `json:"id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	UserID    int64     `json:"userId"`
	PlaceID   int64     `json:"placeId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
