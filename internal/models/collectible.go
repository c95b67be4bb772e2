package models

import "time"

// MaxRoyaltyPercent is the highest royalty a collectible may carry
const MaxRoyaltyPercent = 20

// Collectible is the tradable token minted from exactly one recipe
type Collectible struct {
	TokenID        uint64    `gorm:"primaryKey;autoIncrement:false" json:"token_id"`
	RecipeID       uint64    `gorm:"not null;uniqueIndex" json:"recipe_id"`
	Creator        string    `gorm:"type:varchar(42);not null;index" json:"creator"`
	Owner          string    `gorm:"type:varchar(42);not null;index" json:"owner"`
	RoyaltyPercent uint8     `gorm:"not null" json:"royalty_percent"`
	MintPrice      uint64    `gorm:"not null" json:"mint_price"`
	Description    string    `gorm:"type:text" json:"description"`
	TokenURI       string    `gorm:"size:1024" json:"token_uri"`
	MintedAt       time.Time `gorm:"not null" json:"minted_at"`
	IsForSale      bool      `gorm:"not null;default:false;index" json:"is_for_sale"`
	SalePrice      uint64    `gorm:"not null;default:0" json:"sale_price"`
}

func (Collectible) TableName() string {
	return "collectibles"
}
