package ledger

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/pageza/recipemint/backend/internal/address"
	"github.com/pageza/recipemint/backend/internal/events"
	"github.com/pageza/recipemint/backend/internal/models"
)

const (
	// BasisPoints is 100%
	BasisPoints uint64 = 10000
	// MaxPlatformFeeBps caps the platform fee at 10%. With royalties capped
	// at 20% the seller share of a sale can never go negative.
	MaxPlatformFeeBps uint64 = 1000
)

// SetPlatformFee changes the fee taken from every sale
func (l *Ledger) SetPlatformFee(ctx context.Context, admin string, feeBps uint64) error {
	if err := l.checkAdmin(admin); err != nil {
		return err
	}
	if feeBps > MaxPlatformFeeBps {
		return fmt.Errorf("%d bps exceeds %d: %w", feeBps, MaxPlatformFeeBps, ErrInvalidFee)
	}

	return l.commit(ctx, func(t *txn) error {
		if err := t.db.Model(&models.FeeConfig{}).Where("id = ?", models.FeeConfigID).Updates(map[string]interface{}{
			"platform_fee_bps": feeBps,
			"updated_by":       l.admin,
			"updated_at":       t.now,
		}).Error; err != nil {
			return fmt.Errorf("failed to set platform fee: %w", err)
		}
		return t.emit(events.TypePlatformFeeUpdated, events.PlatformFeeUpdated{PlatformFeeBps: feeBps})
	})
}

// SetFeeRecipient changes the address fees are credited to
func (l *Ledger) SetFeeRecipient(ctx context.Context, admin, recipient string) error {
	if err := l.checkAdmin(admin); err != nil {
		return err
	}
	recipient, err := normalize(recipient)
	if err != nil {
		return err
	}
	if address.IsZero(recipient) {
		return fmt.Errorf("%w: fee recipient cannot be the zero address", ErrInvalidInput)
	}

	return l.commit(ctx, func(t *txn) error {
		if err := t.db.Model(&models.FeeConfig{}).Where("id = ?", models.FeeConfigID).Updates(map[string]interface{}{
			"fee_recipient": recipient,
			"updated_by":    l.admin,
			"updated_at":    t.now,
		}).Error; err != nil {
			return fmt.Errorf("failed to set fee recipient: %w", err)
		}
		return t.emit(events.TypeFeeRecipientUpdated, events.FeeRecipientUpdated{FeeRecipient: recipient})
	})
}

// GetFeeConfig returns the current fee configuration
func (l *Ledger) GetFeeConfig(ctx context.Context) (*models.FeeConfig, error) {
	var fc models.FeeConfig
	err := l.read(ctx, func(db *gorm.DB) error {
		return db.First(&fc, "id = ?", models.FeeConfigID).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load fee config: %w", err)
	}
	return &fc, nil
}

func (l *Ledger) checkAdmin(caller string) error {
	caller, err := normalize(caller)
	if err != nil {
		return err
	}
	if caller != l.admin {
		return ErrNotAdmin
	}
	return nil
}

func (t *txn) feeConfig() (*models.FeeConfig, error) {
	var fc models.FeeConfig
	if err := t.db.First(&fc, "id = ?", models.FeeConfigID).Error; err != nil {
		return nil, fmt.Errorf("failed to load fee config: %w", err)
	}
	return &fc, nil
}
