package models

import "time"

type Product struct {
	ID          string  `gorm:"primaryKey;size:36" json:"id"`
	Name        string  `gorm:"size:255;not null" json:"name"`
	Description *string `gorm:"size:1000" json:"description"`
	ImageURL    *string `gorm:"size:500" json:"image_url"`

	// Secondary lookup keys. Not unique: two products may carry the same
	// code, lookup returns the first match.
	ProductCode *string `gorm:"size:100;index" json:"product_code"`
	QRCode      *string `gorm:"size:100;index" json:"qr_code"`

	// Explicit category assignment. When nil the category is inferred
	// from the name at query time.
	CategoryID *string `gorm:"size:36;index" json:"category_id"`

	// Occupied slot. The composite unique index is the hard guard behind
	// the store-level duplicate check.
	BoxNo  int `gorm:"not null;uniqueIndex:idx_products_location" json:"box_no"`
	RowNo  int `gorm:"not null;uniqueIndex:idx_products_location" json:"row_no"`
	SlotNo int `gorm:"not null;uniqueIndex:idx_products_location" json:"slot_no"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Product) Location() Location {
	return Location{BoxNo: p.BoxNo, RowNo: p.RowNo, SlotNo: p.SlotNo}
}

type Location struct {
	BoxNo  int `json:"box_no"`
	RowNo  int `json:"row_no"`
	SlotNo int `json:"slot_no"`
}
