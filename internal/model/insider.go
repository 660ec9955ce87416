package model

import "time"

// Insider represents a corporate insider of a company.
type Insider struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:200;not null;index" json:"name"`
	Title     string    `gorm:"size:200" json:"title,omitempty"`
	CompanyID uint      `gorm:"not null;index" json:"company_id"`
	CreatedAt time.Time `json:"created_at"`
	IsActive  bool      `json:"is_active"`
}

// InsiderPatch enumerates the insider fields a partial update may change.
type InsiderPatch struct {
	Name      *string `json:"name"`
	Title     *string `json:"title"`
	CompanyID *uint   `json:"company_id"`
}

// Changes returns the set fields as a column-keyed map for the store.
func (p InsiderPatch) Changes() map[string]any {
	changes := map[string]any{}
	if p.Name != nil {
		changes["name"] = *p.Name
	}
	if p.Title != nil {
		changes["title"] = *p.Title
	}
	if p.CompanyID != nil {
		changes["company_id"] = *p.CompanyID
	}
	return changes
}
