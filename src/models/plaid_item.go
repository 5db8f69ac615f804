package models

import "time"

// PlaidItem is one linked institution login.
type PlaidItem struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"user_id"`
	AccessToken     string    `json:"-"`
	ItemID          string    `json:"item_id"`
	InstitutionName string    `json:"institution_name"`
	CreatedAt       time.Time `json:"created_at"`
}
