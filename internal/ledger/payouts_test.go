package ledger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/pageza/recipemint/backend/internal/ledger"
	"github.com/pageza/recipemint/backend/internal/models"
	"github.com/pageza/recipemint/backend/internal/testhelpers"
)

func TestSplitSale(t *testing.T) {
	cases := []struct {
		name    string
		price   uint64
		royalty uint8
		fee     uint64
		want    ledger.Split
	}{
		{"typical", 1000, 10, 250, ledger.Split{Royalty: 100, Fee: 25, Proceeds: 875}},
		{"no cuts", 1000, 0, 0, ledger.Split{Proceeds: 1000}},
		{"truncates", 99, 10, 250, ledger.Split{Royalty: 9, Fee: 2, Proceeds: 88}},
		{"tiny price", 1, 20, 1000, ledger.Split{Proceeds: 1}},
		{"max caps", 100, 20, 1000, ledger.Split{Royalty: 20, Fee: 10, Proceeds: 70}},
		{"max amount", ledger.MaxAmount, 20, 1000, ledger.Split{
			Royalty:  ledger.MaxAmount / 5,
			Fee:      ledger.MaxAmount / 10,
			Proceeds: ledger.MaxAmount - ledger.MaxAmount/5 - ledger.MaxAmount/10,
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ledger.SplitSale(tc.price, tc.royalty, tc.fee))
		})
	}
}

func TestSplitSaleSumsToPrice(t *testing.T) {
	rapid.Check(t, func(r *rapid.T) {
		price := rapid.Uint64Range(0, ledger.MaxAmount).Draw(r, "price")
		royalty := rapid.Uint8Range(0, models.MaxRoyaltyPercent).Draw(r, "royalty")
		fee := rapid.Uint64Range(0, ledger.MaxPlatformFeeBps).Draw(r, "fee")

		s := ledger.SplitSale(price, royalty, fee)
		if s.Royalty+s.Fee+s.Proceeds != price {
			r.Fatalf("split %+v does not add up to %d", s, price)
		}
	})
}

func TestCreditsMatchPayments(t *testing.T) {
	l, _ := setupLedger(t)
	ctx := context.Background()

	traders := []string{testhelpers.Addr(200), testhelpers.Addr(201), testhelpers.Addr(202)}
	everyone := append([]string{testhelpers.FeeRecipient}, traders...)

	totalCredited := func(r *rapid.T) uint64 {
		var sum uint64
		for _, a := range everyone {
			bal, err := l.GetBalance(ctx, a)
			require.NoError(r, err)
			sum += bal
		}
		return sum
	}

	rapid.Check(t, func(r *rapid.T) {
		before := totalCredited(r)
		var paid uint64

		creator := rapid.SampledFrom(traders).Draw(r, "creator")
		recipeID, err := l.SubmitRecipe(ctx, creator, ledger.RecipeInput{Title: "Dish"})
		require.NoError(r, err)

		mintPrice := rapid.Uint64Range(0, 1_000_000).Draw(r, "mintPrice")
		tokenID, err := l.MintRecipeNFT(ctx, creator, ledger.MintRequest{
			RecipeID:       recipeID,
			MintPrice:      mintPrice,
			RoyaltyPercent: rapid.Uint64Range(0, models.MaxRoyaltyPercent).Draw(r, "royalty"),
			Payment:        mintPrice,
		})
		require.NoError(r, err)
		paid += mintPrice

		owner := creator
		sales := rapid.IntRange(0, 4).Draw(r, "sales")
		for i := 0; i < sales; i++ {
			price := rapid.Uint64Range(1, 1_000_000).Draw(r, "price")
			buyer := rapid.SampledFrom(traders).Draw(r, "buyer")
			require.NoError(r, l.ListForSale(ctx, owner, tokenID, price))
			receipt, err := l.Buy(ctx, buyer, tokenID, price)
			require.NoError(r, err)
			assert.Equal(r, price, receipt.Royalty+receipt.Fee+receipt.Proceeds)
			paid += price
			owner = buyer
		}

		c, err := l.GetCollectible(ctx, tokenID)
		require.NoError(r, err)
		assert.Equal(r, owner, c.Owner)
		assert.Equal(r, before+paid, totalCredited(r))
	})
}

func TestVoteOnceProperty(t *testing.T) {
	l, _ := setupLedger(t)
	ctx := context.Background()

	rapid.Check(t, func(r *rapid.T) {
		recipeID, err := l.SubmitRecipe(ctx, testhelpers.Alice, ledger.RecipeInput{Title: "Dish"})
		require.NoError(r, err)

		picks := rapid.SliceOfN(rapid.IntRange(0, 4), 0, 20).Draw(r, "voters")
		seen := map[string]bool{}
		for _, p := range picks {
			voter := testhelpers.Addr(300 + p)
			err := l.VoteRecipe(ctx, voter, recipeID)
			if seen[voter] {
				assert.ErrorIs(r, err, ledger.ErrAlreadyVoted)
			} else {
				require.NoError(r, err)
			}
			seen[voter] = true
		}

		recipe, err := l.GetRecipe(ctx, recipeID)
		require.NoError(r, err)
		assert.Equal(r, uint64(len(seen)), recipe.Votes)
	})
}
