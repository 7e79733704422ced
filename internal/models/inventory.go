package models

import "time"

// ChemistInventory is stored whole, one document per chemist
type ChemistInventory struct {
	ChemistID uint64     `bson:"chemist_id" json:"chemist_id"`
	Inventory []Medicine `bson:"inventory" json:"inventory"`
	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updated_at"`
}

type Medicine struct {
	MedicineName string     `bson:"medicine_name" json:"medicine_name" binding:"required"`
	BatchNo      string     `bson:"batch_no" json:"batch_no" binding:"required"`
	ExpiryDate   time.Time  `bson:"expiry_date" json:"expiry_date" binding:"required"`
	Quantity     int        `bson:"quantity" json:"quantity" binding:"gte=0"`
	UnitPrice    float64    `bson:"unit_price" json:"unit_price" binding:"gte=0"`
	Category     string     `bson:"category,omitempty" json:"category,omitempty"`
	Manufacturer string     `bson:"manufacturer,omitempty" json:"manufacturer,omitempty"`
	LastRestock  *time.Time `bson:"last_restock,omitempty" json:"last_restock,omitempty"`
}

type ReplaceInventoryInput struct {
	Inventory []Medicine `json:"inventory" binding:"dive"`
}
