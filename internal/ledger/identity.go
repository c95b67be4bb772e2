package ledger

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/pageza/recipemint/backend/internal/events"
	"github.com/pageza/recipemint/backend/internal/models"
)

// PreferencesUpdate carries the preference fields to merge; nil fields are left alone
type PreferencesUpdate struct {
	Theme         *string `json:"theme,omitempty"`
	Notifications *bool   `json:"notifications,omitempty"`
	AgentEnabled  *bool   `json:"agent_enabled,omitempty"`
}

// CreateProfile registers the profile for addr. Counters accrued before
// registration are kept.
func (l *Ledger) CreateProfile(ctx context.Context, addr string) (*models.UserProfile, error) {
	addr, err := normalize(addr)
	if err != nil {
		return nil, err
	}

	var created *models.UserProfile
	err = l.commit(ctx, func(t *txn) error {
		existing, err := t.findProfile(addr)
		if err != nil {
			return err
		}
		switch {
		case existing == nil:
			created = models.NewUserProfile(addr, t.now)
			created.Registered = true
			if err := t.db.Create(created).Error; err != nil {
				return fmt.Errorf("failed to create profile: %w", err)
			}
		case existing.Registered:
			return fmt.Errorf("profile %s: %w", addr, ErrAlreadyExists)
		default:
			created = existing
			created.Registered = true
			created.UpdatedAt = t.now
			if err := t.db.Save(created).Error; err != nil {
				return fmt.Errorf("failed to register profile: %w", err)
			}
		}
		return t.emit(events.TypeProfileCreated, events.ProfileCreated{Address: addr})
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// CompleteOnboarding marks the profile as onboarded
func (l *Ledger) CompleteOnboarding(ctx context.Context, addr string) (*models.UserProfile, error) {
	addr, err := normalize(addr)
	if err != nil {
		return nil, err
	}

	var profile *models.UserProfile
	err = l.commit(ctx, func(t *txn) error {
		profile, err = t.mustProfile(addr)
		if err != nil {
			return err
		}
		profile.IsOnboarded = true
		profile.UpdatedAt = t.now
		if err := t.db.Save(profile).Error; err != nil {
			return fmt.Errorf("failed to save profile: %w", err)
		}
		return t.emit(events.TypeProfileUpdated, events.ProfileUpdated{Address: addr, Fields: []string{"is_onboarded"}})
	})
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// UpdatePreferences merges the supplied preference fields into the profile
func (l *Ledger) UpdatePreferences(ctx context.Context, addr string, upd PreferencesUpdate) (*models.UserProfile, error) {
	addr, err := normalize(addr)
	if err != nil {
		return nil, err
	}
	if upd.Theme != nil && !validTheme(*upd.Theme) {
		return nil, fmt.Errorf("%w: unknown theme %q", ErrInvalidInput, *upd.Theme)
	}

	var profile *models.UserProfile
	err = l.commit(ctx, func(t *txn) error {
		profile, err = t.mustProfile(addr)
		if err != nil {
			return err
		}

		var fields []string
		if upd.Theme != nil {
			profile.Preferences.Theme = *upd.Theme
			fields = append(fields, "theme")
		}
		if upd.Notifications != nil {
			profile.Preferences.Notifications = *upd.Notifications
			fields = append(fields, "notifications")
		}
		if upd.AgentEnabled != nil {
			profile.Preferences.AgentEnabled = *upd.AgentEnabled
			fields = append(fields, "agent_enabled")
		}
		profile.UpdatedAt = t.now

		if err := t.db.Save(profile).Error; err != nil {
			return fmt.Errorf("failed to save profile: %w", err)
		}
		return t.emit(events.TypeProfileUpdated, events.ProfileUpdated{Address: addr, Fields: fields})
	})
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// GetProfile returns the registered profile for addr or ErrNotFound. It
// never creates one.
func (l *Ledger) GetProfile(ctx context.Context, addr string) (*models.UserProfile, error) {
	addr, err := normalize(addr)
	if err != nil {
		return nil, err
	}

	var profile models.UserProfile
	err = l.read(ctx, func(db *gorm.DB) error {
		return db.First(&profile, "address = ? AND registered = ?", addr, true).Error
	})
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("profile %s: %w", addr, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &profile, nil
}

// GetReputation returns the reputation of addr, registered or not. Unknown
// addresses have zero.
func (l *Ledger) GetReputation(ctx context.Context, addr string) (uint64, error) {
	addr, err := normalize(addr)
	if err != nil {
		return 0, err
	}

	var profile models.UserProfile
	err = l.read(ctx, func(db *gorm.DB) error {
		return db.Select("reputation").First(&profile, "address = ?", addr).Error
	})
	if err != nil {
		if isNotFound(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get reputation: %w", err)
	}
	return profile.Reputation, nil
}

func validTheme(theme string) bool {
	switch theme {
	case models.ThemeSystem, models.ThemeLight, models.ThemeDark:
		return true
	}
	return false
}

func (t *txn) findProfile(addr string) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := t.db.First(&profile, "address = ?", addr).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return &profile, nil
}

func (t *txn) mustProfile(addr string) (*models.UserProfile, error) {
	profile, err := t.findProfile(addr)
	if err != nil {
		return nil, err
	}
	if profile == nil || !profile.Registered {
		return nil, fmt.Errorf("profile %s: %w", addr, ErrNotFound)
	}
	return profile, nil
}

// ensureProfile loads the row for addr, inserting an unregistered one on
// first interaction
func (t *txn) ensureProfile(addr string) (*models.UserProfile, error) {
	profile, err := t.findProfile(addr)
	if err != nil {
		return nil, err
	}
	if profile != nil {
		return profile, nil
	}
	profile = models.NewUserProfile(addr, t.now)
	if err := t.db.Create(profile).Error; err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	return profile, nil
}

// bumpReputation adds delta to addr's reputation and vote count, saturating
// at MaxAmount
func (t *txn) bumpReputation(addr string, delta uint64) error {
	profile, err := t.ensureProfile(addr)
	if err != nil {
		return err
	}
	profile.Reputation = saturatingAdd(profile.Reputation, delta)
	profile.VotesReceived = saturatingAdd(profile.VotesReceived, 1)
	profile.UpdatedAt = t.now
	if err := t.db.Save(profile).Error; err != nil {
		return fmt.Errorf("failed to update reputation: %w", err)
	}
	return nil
}

func saturatingAdd(a, b uint64) uint64 {
	if a >= MaxAmount || b > MaxAmount-a {
		return MaxAmount
	}
	return a + b
}
