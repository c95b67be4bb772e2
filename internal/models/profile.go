package models

import "time"

// Theme values accepted in Preferences
const (
	ThemeSystem = "system"
	ThemeLight  = "light"
	ThemeDark   = "dark"
)

// Preferences holds the recognised per-user preference flags
type Preferences struct {
	Theme         string `gorm:"size:16;not null;default:'system'" json:"theme"`
	Notifications bool   `gorm:"not null" json:"notifications"`
	AgentEnabled  bool   `gorm:"not null;default:false" json:"agent_enabled"`
}

// UserProfile is keyed by wallet address and never deleted. A row can exist
// before the address registers: counters accrue from its first interaction
// and Registered is set by an explicit profile creation.
type UserProfile struct {
	Address        string      `gorm:"type:varchar(42);primaryKey" json:"address"`
	Registered     bool        `gorm:"not null;default:false" json:"-"`
	Reputation     uint64      `gorm:"not null;default:0" json:"reputation"`
	RecipesCreated uint64      `gorm:"not null;default:0" json:"recipes_created"`
	VotesReceived  uint64      `gorm:"not null;default:0" json:"votes_received"`
	IsOnboarded    bool        `gorm:"not null;default:false" json:"is_onboarded"`
	Preferences    Preferences `gorm:"embedded;embeddedPrefix:pref_" json:"preferences"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}

// NewUserProfile returns a zeroed profile with default preferences
func NewUserProfile(addr string, now time.Time) *UserProfile {
	return &UserProfile{
		Address:     addr,
		Preferences: Preferences{Theme: ThemeSystem, Notifications: true},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
