package ledger

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/pageza/recipemint/backend/internal/events"
	"github.com/pageza/recipemint/backend/internal/models"
)

// RecipeInput is the immutable content of a new recipe
type RecipeInput struct {
	Title        string   `json:"title"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	ImageURL     string   `json:"image_url"`
}

// SubmitRecipe stores a new recipe and returns its id. Ids start at 1.
func (l *Ledger) SubmitRecipe(ctx context.Context, creator string, in RecipeInput) (uint64, error) {
	creator, err := normalize(creator)
	if err != nil {
		return 0, err
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return 0, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	var id uint64
	err = l.commit(ctx, func(t *txn) error {
		profile, err := t.ensureProfile(creator)
		if err != nil {
			return err
		}

		id, err = t.nextID(models.SequenceRecipe)
		if err != nil {
			return err
		}
		recipe := models.Recipe{
			ID:           id,
			Creator:      creator,
			Title:        title,
			Ingredients:  models.StringList(in.Ingredients),
			Instructions: models.StringList(in.Instructions),
			ImageURL:     in.ImageURL,
			CreatedAt:    t.now,
		}
		if err := t.db.Create(&recipe).Error; err != nil {
			return fmt.Errorf("failed to create recipe: %w", err)
		}

		profile.RecipesCreated = saturatingAdd(profile.RecipesCreated, 1)
		profile.UpdatedAt = t.now
		if err := t.db.Save(profile).Error; err != nil {
			return fmt.Errorf("failed to update creator profile: %w", err)
		}

		return t.emit(events.TypeRecipeSubmitted, events.RecipeSubmitted{
			RecipeID: id,
			Creator:  creator,
			Title:    title,
		})
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// VoteRecipe records voter's single vote on a recipe and credits the
// creator one reputation point. Self-votes are allowed.
func (l *Ledger) VoteRecipe(ctx context.Context, voter string, recipeID uint64) error {
	voter, err := normalize(voter)
	if err != nil {
		return err
	}

	return l.commit(ctx, func(t *txn) error {
		recipe, err := loadRecipe(t.db, recipeID)
		if err != nil {
			return err
		}

		var count int64
		if err := t.db.Model(&models.VoteRecord{}).
			Where("recipe_id = ? AND voter = ?", recipeID, voter).
			Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check vote: %w", err)
		}
		if count > 0 {
			return fmt.Errorf("recipe %d by %s: %w", recipeID, voter, ErrAlreadyVoted)
		}

		vote := models.VoteRecord{RecipeID: recipeID, Voter: voter, CreatedAt: t.now}
		if err := t.db.Create(&vote).Error; err != nil {
			return fmt.Errorf("failed to record vote: %w", err)
		}
		if err := t.db.Model(recipe).Update("votes", recipe.Votes+1).Error; err != nil {
			return fmt.Errorf("failed to count vote: %w", err)
		}
		if err := t.bumpReputation(recipe.Creator, 1); err != nil {
			return err
		}

		return t.emit(events.TypeRecipeVoted, events.RecipeVoted{RecipeID: recipeID, Voter: voter})
	})
}

// GetRecipe returns a recipe. Id 0 and ids past the total are ErrInvalidID.
func (l *Ledger) GetRecipe(ctx context.Context, id uint64) (*models.Recipe, error) {
	var recipe *models.Recipe
	err := l.read(ctx, func(db *gorm.DB) error {
		var err error
		recipe, err = loadRecipe(db, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return recipe, nil
}

// GetAllRecipes returns every recipe in ascending id order
func (l *Ledger) GetAllRecipes(ctx context.Context) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := l.read(ctx, func(db *gorm.DB) error {
		return db.Order("id ASC").Find(&recipes).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	return recipes, nil
}

// GetCreatorRecipes returns the recipes submitted by creator in ascending id order
func (l *Ledger) GetCreatorRecipes(ctx context.Context, creator string) ([]models.Recipe, error) {
	creator, err := normalize(creator)
	if err != nil {
		return nil, err
	}

	var recipes []models.Recipe
	err = l.read(ctx, func(db *gorm.DB) error {
		return db.Where("creator = ?", creator).Order("id ASC").Find(&recipes).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	return recipes, nil
}

// GetTotalRecipes returns the number of recipes ever submitted
func (l *Ledger) GetTotalRecipes(ctx context.Context) (uint64, error) {
	var total uint64
	err := l.read(ctx, func(db *gorm.DB) error {
		var err error
		total, err = currentID(db, models.SequenceRecipe)
		return err
	})
	return total, err
}

// HasVoted reports whether addr has voted on the recipe
func (l *Ledger) HasVoted(ctx context.Context, recipeID uint64, addr string) (bool, error) {
	addr, err := normalize(addr)
	if err != nil {
		return false, err
	}

	var count int64
	err = l.read(ctx, func(db *gorm.DB) error {
		return db.Model(&models.VoteRecord{}).
			Where("recipe_id = ? AND voter = ?", recipeID, addr).
			Count(&count).Error
	})
	if err != nil {
		return false, fmt.Errorf("failed to check vote: %w", err)
	}
	return count > 0, nil
}

func loadRecipe(db *gorm.DB, id uint64) (*models.Recipe, error) {
	total, err := currentID(db, models.SequenceRecipe)
	if err != nil {
		return nil, err
	}
	if id == 0 || id > total {
		return nil, fmt.Errorf("recipe %d: %w", id, ErrInvalidID)
	}

	var recipe models.Recipe
	if err := db.First(&recipe, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("recipe %d: %w", id, ErrInvalidID)
		}
		return nil, fmt.Errorf("failed to load recipe: %w", err)
	}
	return &recipe, nil
}
