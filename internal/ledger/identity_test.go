package ledger_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipemint/backend/internal/events"
	"github.com/pageza/recipemint/backend/internal/ledger"
	"github.com/pageza/recipemint/backend/internal/models"
	"github.com/pageza/recipemint/backend/internal/testhelpers"
)

func TestCreateProfile(t *testing.T) {
	l, _ := setupLedger(t)
	ctx := context.Background()

	profile, err := l.CreateProfile(ctx, testhelpers.Alice)
	require.NoError(t, err)
	assert.Equal(t, testhelpers.Alice, profile.Address)
	assert.Zero(t, profile.Reputation)
	assert.Zero(t, profile.RecipesCreated)
	assert.Zero(t, profile.VotesReceived)
	assert.False(t, profile.IsOnboarded)
	assert.Equal(t, models.ThemeSystem, profile.Preferences.Theme)
	assert.True(t, profile.Preferences.Notifications)
	assert.False(t, profile.Preferences.AgentEnabled)

	_, err = l.CreateProfile(ctx, testhelpers.Alice)
	assert.ErrorIs(t, err, ledger.ErrAlreadyExists)

	_, err = l.CreateProfile(ctx, strings.ToUpper(testhelpers.Alice[2:]))
	assert.ErrorIs(t, err, ledger.ErrInvalidInput)

	// mixed case is the same address
	_, err = l.CreateProfile(ctx, "0x"+strings.ToUpper(testhelpers.Alice[2:]))
	assert.ErrorIs(t, err, ledger.ErrAlreadyExists)
}

func TestGetProfileNotFound(t *testing.T) {
	l, _ := setupLedger(t)
	ctx := context.Background()

	_, err := l.GetProfile(ctx, testhelpers.Bob)
	assert.ErrorIs(t, err, ledger.ErrNotFound)

	// still absent afterwards
	_, err = l.GetProfile(ctx, testhelpers.Bob)
	assert.ErrorIs(t, err, ledger.ErrNotFound)

	rep, err := l.GetReputation(ctx, testhelpers.Bob)
	require.NoError(t, err)
	assert.Zero(t, rep)
}

func TestCompleteOnboarding(t *testing.T) {
	l, _ := setupLedger(t)
	ctx := context.Background()

	_, err := l.CompleteOnboarding(ctx, testhelpers.Alice)
	assert.ErrorIs(t, err, ledger.ErrNotFound)

	_, err = l.CreateProfile(ctx, testhelpers.Alice)
	require.NoError(t, err)

	profile, err := l.CompleteOnboarding(ctx, testhelpers.Alice)
	require.NoError(t, err)
	assert.True(t, profile.IsOnboarded)

	stored, err := l.GetProfile(ctx, testhelpers.Alice)
	require.NoError(t, err)
	assert.True(t, stored.IsOnboarded)
}

func TestCreateProfileAfterActivity(t *testing.T) {
	pub := &recordingPublisher{}
	l, _ := setupLedger(t, func(o *ledger.Options) { o.Publisher = pub })
	ctx := context.Background()

	id := submit(t, l, testhelpers.Alice, "Nasi Goreng")
	require.NoError(t, l.VoteRecipe(ctx, testhelpers.Bob, id))

	_, err := l.GetProfile(ctx, testhelpers.Alice)
	assert.ErrorIs(t, err, ledger.ErrNotFound)
	_, err = l.CompleteOnboarding(ctx, testhelpers.Alice)
	assert.ErrorIs(t, err, ledger.ErrNotFound)
	rep, err := l.GetReputation(ctx, testhelpers.Alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), rep)

	profile, err := l.CreateProfile(ctx, testhelpers.Alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), profile.RecipesCreated)
	assert.Equal(t, uint64(1), profile.Reputation)
	assert.Equal(t, uint64(1), profile.VotesReceived)

	stored, err := l.GetProfile(ctx, testhelpers.Alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), stored.RecipesCreated)

	_, err = l.CreateProfile(ctx, testhelpers.Alice)
	assert.ErrorIs(t, err, ledger.ErrAlreadyExists)

	assert.Equal(t, []string{
		events.TypeRecipeSubmitted,
		events.TypeRecipeVoted,
		events.TypeProfileCreated,
	}, pub.types())
}

func TestUpdatePreferences(t *testing.T) {
	l, _ := setupLedger(t)
	ctx := context.Background()
	_, err := l.CreateProfile(ctx, testhelpers.Alice)
	require.NoError(t, err)

	dark := models.ThemeDark
	off := false
	profile, err := l.UpdatePreferences(ctx, testhelpers.Alice, ledger.PreferencesUpdate{
		Theme:         &dark,
		Notifications: &off,
	})
	require.NoError(t, err)
	assert.Equal(t, models.ThemeDark, profile.Preferences.Theme)
	assert.False(t, profile.Preferences.Notifications)
	assert.False(t, profile.Preferences.AgentEnabled)

	// untouched fields keep their values
	on := true
	_, err = l.UpdatePreferences(ctx, testhelpers.Alice, ledger.PreferencesUpdate{AgentEnabled: &on})
	require.NoError(t, err)

	stored, err := l.GetProfile(ctx, testhelpers.Alice)
	require.NoError(t, err)
	assert.Equal(t, models.ThemeDark, stored.Preferences.Theme)
	assert.False(t, stored.Preferences.Notifications)
	assert.True(t, stored.Preferences.AgentEnabled)

	bad := "neon"
	_, err = l.UpdatePreferences(ctx, testhelpers.Alice, ledger.PreferencesUpdate{Theme: &bad})
	assert.ErrorIs(t, err, ledger.ErrInvalidInput)

	_, err = l.UpdatePreferences(ctx, testhelpers.Bob, ledger.PreferencesUpdate{AgentEnabled: &on})
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}
