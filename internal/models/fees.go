package models

import "time"

// FeeConfigID is the primary key of the single fee configuration row
const FeeConfigID = 1

// FeeConfig is the process-wide platform fee setting
type FeeConfig struct {
	ID             uint      `gorm:"primaryKey" json:"-"`
	PlatformFeeBps uint64    `gorm:"not null" json:"platform_fee_bps"`
	FeeRecipient   string    `gorm:"type:varchar(42);not null" json:"fee_recipient"`
	UpdatedBy      string    `gorm:"type:varchar(42)" json:"updated_by,omitempty"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (FeeConfig) TableName() string {
	return "fee_config"
}

// Payout kinds
const (
	PayoutRoyalty     = "royalty"
	PayoutPlatformFee = "platform_fee"
	PayoutSeller      = "seller"
	PayoutMintFee     = "mint_fee"
)

// Payout is one internal credit issued by a mint or a sale
type Payout struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	TokenID   uint64    `gorm:"not null;index" json:"token_id"`
	Kind      string    `gorm:"size:32;not null" json:"kind"`
	Recipient string    `gorm:"type:varchar(42);not null;index" json:"recipient"`
	Amount    uint64    `gorm:"not null" json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

func (Payout) TableName() string {
	return "payouts"
}

// Balance is the running total credited to an address
type Balance struct {
	Address   string    `gorm:"type:varchar(42);primaryKey" json:"address"`
	Amount    uint64    `gorm:"not null;default:0" json:"amount"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Balance) TableName() string {
	return "balances"
}
