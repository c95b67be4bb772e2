package ledger

import (
	"errors"
	"fmt"
)

// Error kinds reported by ledger commands and queries. A failed command
// never leaves partial state behind.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidID       = errors.New("invalid id")
	ErrAlreadyExists   = errors.New("already exists")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrAlreadyVoted    = errors.New("already voted")
	ErrRoyaltyTooHigh  = errors.New("royalty too high")
	ErrInvalidPrice    = errors.New("invalid price")
	ErrNotForSale      = errors.New("not for sale")
	ErrPaymentMismatch = errors.New("payment mismatch")
	ErrInvalidFee      = errors.New("invalid fee")
	ErrInvalidInput    = errors.New("invalid input")
	ErrPayoutFailed    = errors.New("payout failed")
)

// Narrower kinds. errors.Is matches them and the kind they wrap.
var (
	ErrNotCreator          = fmt.Errorf("%w: caller is not the recipe creator", ErrUnauthorized)
	ErrNotOwner            = fmt.Errorf("%w: caller is not the token owner", ErrUnauthorized)
	ErrNotAdmin            = fmt.Errorf("%w: caller is not the admin", ErrUnauthorized)
	ErrAlreadyMinted       = fmt.Errorf("%w: recipe already minted", ErrAlreadyExists)
	ErrWrongPayment        = fmt.Errorf("%w: payment must equal the sale price", ErrPaymentMismatch)
	ErrInsufficientPayment = fmt.Errorf("%w: payment must equal the mint price", ErrPaymentMismatch)
)
