package ledger

import (
	"context"
	"fmt"
	"math"

	"gorm.io/gorm"

	"github.com/pageza/recipemint/backend/internal/address"
	"github.com/pageza/recipemint/backend/internal/models"
)

// MaxAmount is the largest amount, balance or counter the store can hold
const MaxAmount uint64 = math.MaxInt64

// Split is how one sale price is divided
type Split struct {
	Royalty  uint64 `json:"royalty"`
	Fee      uint64 `json:"fee"`
	Proceeds uint64 `json:"proceeds"` // what the seller keeps
}

// SplitSale divides price into creator royalty, platform fee and seller
// proceeds. Each share is truncated toward zero and the seller keeps the
// remainder, so the three always add up to price. royaltyPercent must be at
// most MaxRoyaltyPercent and feeBps at most MaxPlatformFeeBps.
func SplitSale(price uint64, royaltyPercent uint8, feeBps uint64) Split {
	royalty := mulDiv(price, uint64(royaltyPercent), 100)
	fee := mulDiv(price, feeBps, BasisPoints)
	return Split{
		Royalty:  royalty,
		Fee:      fee,
		Proceeds: price - royalty - fee,
	}
}

// mulDiv returns floor(amount*rate/denom) for rate <= denom without overflow
func mulDiv(amount, rate, denom uint64) uint64 {
	return (amount/denom)*rate + (amount%denom)*rate/denom
}

// credit records a payout and adds it to the recipient's balance. Zero
// amounts are skipped; a missing recipient fails the whole command.
func (t *txn) credit(tokenID uint64, kind, recipient string, amount uint64) error {
	if amount == 0 {
		return nil
	}
	if address.IsZero(recipient) {
		return fmt.Errorf("%w: no recipient for %s of token %d", ErrPayoutFailed, kind, tokenID)
	}

	payout := models.Payout{
		TokenID:   tokenID,
		Kind:      kind,
		Recipient: recipient,
		Amount:    amount,
		CreatedAt: t.now,
	}
	if err := t.db.Create(&payout).Error; err != nil {
		return fmt.Errorf("failed to record %s payout: %w", kind, err)
	}

	var bal models.Balance
	err := t.db.First(&bal, "address = ?", recipient).Error
	switch {
	case isNotFound(err):
		bal = models.Balance{Address: recipient}
	case err != nil:
		return fmt.Errorf("failed to load balance: %w", err)
	}
	if bal.Amount > MaxAmount-amount {
		return fmt.Errorf("%w: balance of %s would overflow", ErrPayoutFailed, recipient)
	}
	bal.Amount += amount
	bal.UpdatedAt = t.now
	if err := t.db.Save(&bal).Error; err != nil {
		return fmt.Errorf("failed to credit %s: %w", recipient, err)
	}
	return nil
}

// GetBalance returns the total credited to addr
func (l *Ledger) GetBalance(ctx context.Context, addr string) (uint64, error) {
	addr, err := normalize(addr)
	if err != nil {
		return 0, err
	}

	var bal models.Balance
	err = l.read(ctx, func(db *gorm.DB) error {
		return db.First(&bal, "address = ?", addr).Error
	})
	if err != nil {
		if isNotFound(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get balance: %w", err)
	}
	return bal.Amount, nil
}

// GetPayouts lists the credits issued for a token, oldest first
func (l *Ledger) GetPayouts(ctx context.Context, tokenID uint64) ([]models.Payout, error) {
	var payouts []models.Payout
	err := l.read(ctx, func(db *gorm.DB) error {
		return db.Where("token_id = ?", tokenID).Order("id ASC").Find(&payouts).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list payouts: %w", err)
	}
	return payouts, nil
}
