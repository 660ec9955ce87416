package model

import "time"

// Item is a catalog item owned by a user (in-memory store variant).
type Item struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	OwnerID     uint      `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	IsAvailable bool      `json:"is_available"`
}

// ItemPatch enumerates the item fields a partial update may change.
type ItemPatch struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category"`
	OwnerID     *uint    `json:"owner_id"`
}

// Apply merges the set fields into it.
func (p ItemPatch) Apply(it *Item) {
	if p.Title != nil {
		it.Title = *p.Title
	}
	if p.Description != nil {
		it.Description = *p.Description
	}
	if p.Price != nil {
		it.Price = *p.Price
	}
	if p.Category != nil {
		it.Category = *p.Category
	}
	if p.OwnerID != nil {
		it.OwnerID = *p.OwnerID
	}
}
