package ledger

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/pageza/recipemint/backend/internal/events"
	"github.com/pageza/recipemint/backend/internal/models"
)

// Receipt describes a completed purchase
type Receipt struct {
	TokenID uint64 `json:"token_id"`
	Seller  string `json:"seller"`
	Buyer   string `json:"buyer"`
	Price   uint64 `json:"price"`
	Split
}

// ListForSale offers a token at price. Listing a listed token changes its price.
func (l *Ledger) ListForSale(ctx context.Context, owner string, tokenID, price uint64) error {
	owner, err := normalize(owner)
	if err != nil {
		return err
	}
	if price == 0 || price > MaxAmount {
		return fmt.Errorf("%w: %d", ErrInvalidPrice, price)
	}

	return l.commit(ctx, func(t *txn) error {
		c, err := loadCollectible(t.db, tokenID)
		if err != nil {
			return err
		}
		if c.Owner != owner {
			return fmt.Errorf("token %d: %w", tokenID, ErrNotOwner)
		}

		if err := t.db.Model(c).Updates(map[string]interface{}{
			"is_for_sale": true,
			"sale_price":  price,
		}).Error; err != nil {
			return fmt.Errorf("failed to list token: %w", err)
		}
		return t.emit(events.TypeNFTListed, events.NFTListed{TokenID: tokenID, Owner: owner, Price: price})
	})
}

// RemoveFromSale withdraws a listed token
func (l *Ledger) RemoveFromSale(ctx context.Context, owner string, tokenID uint64) error {
	owner, err := normalize(owner)
	if err != nil {
		return err
	}

	return l.commit(ctx, func(t *txn) error {
		c, err := loadCollectible(t.db, tokenID)
		if err != nil {
			return err
		}
		if c.Owner != owner {
			return fmt.Errorf("token %d: %w", tokenID, ErrNotOwner)
		}
		if !c.IsForSale {
			return fmt.Errorf("token %d: %w", tokenID, ErrNotForSale)
		}

		if err := t.db.Model(c).Updates(map[string]interface{}{
			"is_for_sale": false,
			"sale_price":  0,
		}).Error; err != nil {
			return fmt.Errorf("failed to unlist token: %w", err)
		}
		return t.emit(events.TypeNFTUnlisted, events.NFTUnlisted{TokenID: tokenID, Owner: owner})
	})
}

// Buy transfers a listed token to buyer and pays out the sale price. The
// ownership change is written before any credit is issued and both commit
// together. Buying your own token is allowed.
func (l *Ledger) Buy(ctx context.Context, buyer string, tokenID, payment uint64) (*Receipt, error) {
	buyer, err := normalize(buyer)
	if err != nil {
		return nil, err
	}

	var receipt *Receipt
	err = l.commit(ctx, func(t *txn) error {
		c, err := loadCollectible(t.db, tokenID)
		if err != nil {
			return err
		}
		if !c.IsForSale {
			return fmt.Errorf("token %d: %w", tokenID, ErrNotForSale)
		}
		if payment != c.SalePrice {
			return fmt.Errorf("paid %d for %d: %w", payment, c.SalePrice, ErrWrongPayment)
		}

		fees, err := t.feeConfig()
		if err != nil {
			return err
		}
		seller := c.Owner
		price := c.SalePrice
		split := SplitSale(price, c.RoyaltyPercent, fees.PlatformFeeBps)
		// a creator buying back pays no royalty to itself; the seller keeps it
		if buyer == c.Creator && split.Royalty > 0 {
			split.Proceeds += split.Royalty
			split.Royalty = 0
		}

		if err := t.db.Model(c).Updates(map[string]interface{}{
			"owner":       buyer,
			"is_for_sale": false,
			"sale_price":  0,
		}).Error; err != nil {
			return fmt.Errorf("failed to transfer token: %w", err)
		}

		if err := t.credit(tokenID, models.PayoutRoyalty, c.Creator, split.Royalty); err != nil {
			return err
		}
		if err := t.credit(tokenID, models.PayoutPlatformFee, fees.FeeRecipient, split.Fee); err != nil {
			return err
		}
		if err := t.credit(tokenID, models.PayoutSeller, seller, split.Proceeds); err != nil {
			return err
		}

		if err := t.emit(events.TypeNFTSold, events.NFTSold{
			TokenID: tokenID,
			Seller:  seller,
			Buyer:   buyer,
			Price:   price,
		}); err != nil {
			return err
		}
		if split.Royalty > 0 {
			if err := t.emit(events.TypeRoyaltyPaid, events.RoyaltyPaid{
				TokenID:   tokenID,
				Recipient: c.Creator,
				Amount:    split.Royalty,
			}); err != nil {
				return err
			}
		}

		receipt = &Receipt{
			TokenID: tokenID,
			Seller:  seller,
			Buyer:   buyer,
			Price:   price,
			Split:   split,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return receipt, nil
}

// GetForSale lists the ids of listed tokens in ascending order
func (l *Ledger) GetForSale(ctx context.Context) ([]uint64, error) {
	ids := []uint64{}
	err := l.read(ctx, func(db *gorm.DB) error {
		return db.Model(&models.Collectible{}).
			Where("is_for_sale = ?", true).
			Order("token_id ASC").
			Pluck("token_id", &ids).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list tokens for sale: %w", err)
	}
	return ids, nil
}
