package models

import "time"

// Company is a flat reference list entry. Tickets point at it by name
// only; deleting a company does not touch tickets that mention it.
type Company struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Paid      string    `json:"paid"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
