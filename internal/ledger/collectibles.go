package ledger

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/pageza/recipemint/backend/internal/events"
	"github.com/pageza/recipemint/backend/internal/models"
)

// MintRequest describes the collectible to create from a recipe. Payment
// is the amount the caller attaches and must equal MintPrice.
type MintRequest struct {
	RecipeID       uint64 `json:"recipe_id"`
	MintPrice      uint64 `json:"mint_price"`
	RoyaltyPercent uint64 `json:"royalty_percent"`
	Description    string `json:"description"`
	TokenURI       string `json:"token_uri"`
	Payment        uint64 `json:"payment"`
}

// MintRecipeNFT converts a recipe into its one collectible, owned by the
// recipe creator, and credits the mint price to the fee recipient.
func (l *Ledger) MintRecipeNFT(ctx context.Context, caller string, req MintRequest) (uint64, error) {
	caller, err := normalize(caller)
	if err != nil {
		return 0, err
	}

	var tokenID uint64
	err = l.commit(ctx, func(t *txn) error {
		recipe, err := loadRecipe(t.db, req.RecipeID)
		if errors.Is(err, ErrInvalidID) {
			return fmt.Errorf("recipe %d: %w", req.RecipeID, ErrNotFound)
		}
		if err != nil {
			return err
		}
		// minted is checked before the caller so every caller sees the same error
		if recipe.IsMinted {
			return fmt.Errorf("recipe %d: %w", recipe.ID, ErrAlreadyMinted)
		}
		if caller != recipe.Creator {
			return fmt.Errorf("recipe %d: %w", recipe.ID, ErrNotCreator)
		}
		if req.RoyaltyPercent > models.MaxRoyaltyPercent {
			return fmt.Errorf("%d%% exceeds %d%%: %w", req.RoyaltyPercent, models.MaxRoyaltyPercent, ErrRoyaltyTooHigh)
		}
		if req.MintPrice > MaxAmount {
			return fmt.Errorf("%w: mint price %d too large", ErrInvalidPrice, req.MintPrice)
		}
		if req.Payment != req.MintPrice {
			return fmt.Errorf("paid %d for %d: %w", req.Payment, req.MintPrice, ErrInsufficientPayment)
		}

		tokenID, err = t.nextID(models.SequenceToken)
		if err != nil {
			return err
		}
		c := models.Collectible{
			TokenID:        tokenID,
			RecipeID:       recipe.ID,
			Creator:        caller,
			Owner:          caller,
			RoyaltyPercent: uint8(req.RoyaltyPercent),
			MintPrice:      req.MintPrice,
			Description:    req.Description,
			TokenURI:       req.TokenURI,
			MintedAt:       t.now,
		}
		if err := t.db.Create(&c).Error; err != nil {
			return fmt.Errorf("failed to create collectible: %w", err)
		}

		if err := t.db.Model(recipe).Updates(map[string]interface{}{
			"is_minted":       true,
			"minted_token_id": tokenID,
		}).Error; err != nil {
			return fmt.Errorf("failed to mark recipe minted: %w", err)
		}

		fees, err := t.feeConfig()
		if err != nil {
			return err
		}
		if err := t.credit(tokenID, models.PayoutMintFee, fees.FeeRecipient, req.MintPrice); err != nil {
			return err
		}

		return t.emit(events.TypeNFTMinted, events.NFTMinted{
			TokenID:   tokenID,
			RecipeID:  recipe.ID,
			Creator:   caller,
			MintPrice: req.MintPrice,
		})
	})
	if err != nil {
		return 0, err
	}
	return tokenID, nil
}

// GetCollectible returns the collectible or ErrNotFound
func (l *Ledger) GetCollectible(ctx context.Context, tokenID uint64) (*models.Collectible, error) {
	var c *models.Collectible
	err := l.read(ctx, func(db *gorm.DB) error {
		var err error
		c, err = loadCollectible(db, tokenID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// GetAllCollectibles returns every collectible in ascending token order
func (l *Ledger) GetAllCollectibles(ctx context.Context) ([]models.Collectible, error) {
	var all []models.Collectible
	err := l.read(ctx, func(db *gorm.DB) error {
		return db.Order("token_id ASC").Find(&all).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list collectibles: %w", err)
	}
	return all, nil
}

// GetTotalCollectibles returns the number of collectibles ever minted
func (l *Ledger) GetTotalCollectibles(ctx context.Context) (uint64, error) {
	var total uint64
	err := l.read(ctx, func(db *gorm.DB) error {
		var err error
		total, err = currentID(db, models.SequenceToken)
		return err
	})
	return total, err
}

// GetRecipeIDForToken returns the recipe a token was minted from
func (l *Ledger) GetRecipeIDForToken(ctx context.Context, tokenID uint64) (uint64, error) {
	c, err := l.GetCollectible(ctx, tokenID)
	if err != nil {
		return 0, err
	}
	return c.RecipeID, nil
}

// GetOwnerTokens lists the token ids owned by addr in ascending order
func (l *Ledger) GetOwnerTokens(ctx context.Context, addr string) ([]uint64, error) {
	addr, err := normalize(addr)
	if err != nil {
		return nil, err
	}

	ids := []uint64{}
	err = l.read(ctx, func(db *gorm.DB) error {
		return db.Model(&models.Collectible{}).
			Where("owner = ?", addr).
			Order("token_id ASC").
			Pluck("token_id", &ids).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list owner tokens: %w", err)
	}
	return ids, nil
}

func loadCollectible(db *gorm.DB, tokenID uint64) (*models.Collectible, error) {
	var c models.Collectible
	if err := db.First(&c, "token_id = ?", tokenID).Error; err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("token %d: %w", tokenID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load token: %w", err)
	}
	return &c, nil
}
