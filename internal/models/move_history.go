package models

import "time"

// MoveHistory is an append-only ledger of relocations. Records are never
// mutated or deleted by the application, and they outlive the product they
// reference: ProductID has no foreign key and keeps its value after the
// product is gone, with ProductName as the snapshot taken at move time.
type MoveHistory struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ProductID   *string `gorm:"size:36;index" json:"product_id"`
	ProductName string  `gorm:"size:255;not null" json:"product_name"`

	FromBox  int `json:"from_box"`
	FromRow  int `json:"from_row"`
	FromSlot int `json:"from_slot"`
	ToBox    int `json:"to_box"`
	ToRow    int `json:"to_row"`
	ToSlot   int `json:"to_slot"`

	MovedAt time.Time `gorm:"index" json:"moved_at"`
	MovedBy *string   `gorm:"size:100" json:"moved_by"`
	Notes   *string   `gorm:"size:255" json:"notes"`
}
