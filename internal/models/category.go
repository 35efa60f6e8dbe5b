package models

import "time"

type Category struct {
	ID          string  `gorm:"primaryKey;size:36" json:"id"`
	Name        string  `gorm:"size:100;not null;unique" json:"name"`
	Color       string  `gorm:"size:7;not null" json:"color"` // display hex, e.g. #3B82F6
	Icon        string  `gorm:"size:50;not null" json:"icon"` // symbolic icon name
	Description *string `gorm:"size:255" json:"description"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
