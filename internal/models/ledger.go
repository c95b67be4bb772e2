package models

import "time"

// Sequence names
const (
	SequenceRecipe = "recipe"
	SequenceToken  = "token"
)

// Sequence is a monotonic id counter per entity type
type Sequence struct {
	Name  string `gorm:"size:32;primaryKey"`
	Value uint64 `gorm:"not null;default:0"`
}

func (Sequence) TableName() string {
	return "sequences"
}

// Event is an outbox row written in the same transaction as the command
// that produced it
type Event struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	EventID   string    `gorm:"type:varchar(36);not null;uniqueIndex" json:"event_id"`
	Type      string    `gorm:"size:64;not null;index" json:"type"`
	Payload   string    `gorm:"type:text;not null" json:"payload"`
	CreatedAt time.Time `json:"created_at"`
}

func (Event) TableName() string {
	return "events"
}

// All returns every ledger model in migration order
func All() []interface{} {
	return []interface{}{
		&UserProfile{},
		&Recipe{},
		&VoteRecord{},
		&Collectible{},
		&FeeConfig{},
		&Payout{},
		&Balance{},
		&Sequence{},
		&Event{},
	}
}
