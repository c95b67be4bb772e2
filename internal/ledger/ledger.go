package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/recipemint/backend/internal/address"
	"github.com/pageza/recipemint/backend/internal/events"
	"github.com/pageza/recipemint/backend/internal/models"
)

// Options configures a Ledger
type Options struct {
	// Admin may change the fee configuration
	Admin string
	// PlatformFeeBps and FeeRecipient seed the fee configuration on first start
	PlatformFeeBps uint64
	FeeRecipient   string
	// Publisher receives events after each commit. Defaults to NopPublisher.
	Publisher events.Publisher
	// Now overrides the clock in tests
	Now func() time.Time
}

// Ledger owns all recipe, profile, collectible and payout state. Commands
// run one at a time, each inside a single database transaction; queries
// read committed state only.
type Ledger struct {
	db        *gorm.DB
	mu        sync.RWMutex
	admin     string
	publisher events.Publisher
	now       func() time.Time
}

// New opens the ledger over db, seeding sequences and the fee configuration
// when they do not exist yet. Tables must already be migrated.
func New(ctx context.Context, db *gorm.DB, opts Options) (*Ledger, error) {
	admin, err := address.Normalize(opts.Admin)
	if err != nil {
		return nil, fmt.Errorf("admin address: %w", err)
	}
	if opts.PlatformFeeBps > MaxPlatformFeeBps {
		return nil, fmt.Errorf("platform fee %d bps: %w", opts.PlatformFeeBps, ErrInvalidFee)
	}
	feeRecipient := ""
	if opts.FeeRecipient != "" {
		if feeRecipient, err = address.Normalize(opts.FeeRecipient); err != nil {
			return nil, fmt.Errorf("fee recipient: %w", err)
		}
	}

	l := &Ledger{
		db:        db,
		admin:     admin,
		publisher: opts.Publisher,
		now:       opts.Now,
	}
	if l.publisher == nil {
		l.publisher = events.NopPublisher{}
	}
	if l.now == nil {
		l.now = time.Now
	}

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, name := range []string{models.SequenceRecipe, models.SequenceToken} {
			seq := models.Sequence{Name: name}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seq).Error; err != nil {
				return fmt.Errorf("failed to seed sequence %s: %w", name, err)
			}
		}
		fc := models.FeeConfig{
			ID:             models.FeeConfigID,
			PlatformFeeBps: opts.PlatformFeeBps,
			FeeRecipient:   feeRecipient,
			UpdatedAt:      l.now(),
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&fc).Error; err != nil {
			return fmt.Errorf("failed to seed fee config: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[Ledger] ready, admin %s", admin)
	return l, nil
}

// Admin returns the address allowed to change fees
func (l *Ledger) Admin() string {
	return l.admin
}

// Ping checks the underlying store
func (l *Ledger) Ping(ctx context.Context) error {
	sqlDB, err := l.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// txn is the state of one command while it runs
type txn struct {
	db     *gorm.DB
	now    time.Time
	events []models.Event
}

// commit runs fn as one serialized, all-or-nothing command. Events emitted
// by fn are stored with the command and published only after it commits.
func (l *Ledger) commit(ctx context.Context, fn func(t *txn) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	t := &txn{now: l.now().UTC()}
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		t.db = tx
		if err := fn(t); err != nil {
			return err
		}
		if len(t.events) == 0 {
			return nil
		}
		if err := tx.Create(&t.events).Error; err != nil {
			return fmt.Errorf("failed to store events: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := l.publisher.Publish(ctx, t.events); err != nil {
		log.Printf("[Ledger] event publish failed: %v", err)
	}
	return nil
}

// read runs fn against committed state
func (l *Ledger) read(ctx context.Context, fn func(db *gorm.DB) error) error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return fn(l.db.WithContext(ctx))
}

func (t *txn) emit(typ string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", typ, err)
	}
	t.events = append(t.events, models.Event{
		EventID:   uuid.NewString(),
		Type:      typ,
		Payload:   string(body),
		CreatedAt: t.now,
	})
	return nil
}

// nextID allocates the next value of a sequence
func (t *txn) nextID(name string) (uint64, error) {
	var seq models.Sequence
	if err := t.db.First(&seq, "name = ?", name).Error; err != nil {
		return 0, fmt.Errorf("failed to read sequence %s: %w", name, err)
	}
	seq.Value++
	if err := t.db.Model(&models.Sequence{}).Where("name = ?", name).Update("value", seq.Value).Error; err != nil {
		return 0, fmt.Errorf("failed to advance sequence %s: %w", name, err)
	}
	return seq.Value, nil
}

func currentID(db *gorm.DB, name string) (uint64, error) {
	var seq models.Sequence
	if err := db.First(&seq, "name = ?", name).Error; err != nil {
		return 0, fmt.Errorf("failed to read sequence %s: %w", name, err)
	}
	return seq.Value, nil
}

func normalize(addr string) (string, error) {
	a, err := address.Normalize(addr)
	if err != nil {
		return "", fmt.Errorf("%w: %q is not an address", ErrInvalidInput, addr)
	}
	return a, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
