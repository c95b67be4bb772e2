package ledger

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/pageza/recipemint/backend/internal/models"
)

// DefaultEventPage is the page size used when GetEvents is given no limit
const DefaultEventPage = 100

// GetEvents returns committed events with id greater than afterID, oldest first
func (l *Ledger) GetEvents(ctx context.Context, afterID uint64, limit int) ([]models.Event, error) {
	if limit <= 0 || limit > 1000 {
		limit = DefaultEventPage
	}

	var evts []models.Event
	err := l.read(ctx, func(db *gorm.DB) error {
		return db.Where("id > ?", afterID).Order("id ASC").Limit(limit).Find(&evts).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return evts, nil
}
