package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// StringList stores a string slice as a JSON array column
type StringList []string

// Value implements the driver.Valuer interface
func (a StringList) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal([]string(a))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (a *StringList) Scan(value interface{}) error {
	if value == nil {
		*a = StringList{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("unsupported StringList source %T", value)
	}

	return json.Unmarshal(bytes, a)
}

// Recipe content is immutable after submission. Only Votes and the
// one-time mint transition change.
type Recipe struct {
	ID            uint64     `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Creator       string     `gorm:"type:varchar(42);not null;index" json:"creator"`
	Title         string     `gorm:"size:255;not null" json:"title"`
	Ingredients   StringList `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	Instructions  StringList `gorm:"type:jsonb;not null;default:'[]'" json:"instructions"`
	ImageURL      string     `gorm:"size:1024" json:"image_url"`
	Votes         uint64     `gorm:"not null;default:0" json:"votes"`
	IsMinted      bool       `gorm:"not null;default:false" json:"is_minted"`
	MintedTokenID *uint64    `json:"minted_token_id,omitempty"`
	CreatedAt     time.Time  `json:"timestamp"`
}

func (Recipe) TableName() string {
	return "recipes"
}

// VoteRecord marks that Voter has voted on RecipeID. Written once, never cleared.
type VoteRecord struct {
	RecipeID  uint64    `gorm:"primaryKey;autoIncrement:false" json:"recipe_id"`
	Voter     string    `gorm:"type:varchar(42);primaryKey" json:"voter"`
	CreatedAt time.Time `json:"created_at"`
}

func (VoteRecord) TableName() string {
	return "vote_records"
}
