package ledger_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipemint/backend/internal/ledger"
	"github.com/pageza/recipemint/backend/internal/testhelpers"
)

// race runs fn from n goroutines at once and returns how many succeeded
// and the errors of those that did not
func race(n int, fn func(i int) error) (int, []error) {
	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		wins  int64
		errs  []error
		start = make(chan struct{})
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			if err := fn(i); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
				return
			}
			atomic.AddInt64(&wins, 1)
		}(i)
	}
	close(start)
	wg.Wait()
	return int(wins), errs
}

func TestConcurrentDuplicateVotes(t *testing.T) {
	l, _ := setupLedger(t)
	ctx := context.Background()
	id := submit(t, l, testhelpers.Alice, "Dish")

	wins, errs := race(8, func(int) error {
		return l.VoteRecipe(ctx, testhelpers.Bob, id)
	})
	assert.Equal(t, 1, wins)
	for _, err := range errs {
		assert.ErrorIs(t, err, ledger.ErrAlreadyVoted)
	}

	recipe, err := l.GetRecipe(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), recipe.Votes)
}

func TestConcurrentDistinctVotes(t *testing.T) {
	l, _ := setupLedger(t)
	ctx := context.Background()
	id := submit(t, l, testhelpers.Alice, "Dish")

	wins, errs := race(10, func(i int) error {
		return l.VoteRecipe(ctx, testhelpers.Addr(1000+i), id)
	})
	assert.Equal(t, 10, wins)
	assert.Empty(t, errs)

	recipe, err := l.GetRecipe(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), recipe.Votes)

	rep, err := l.GetReputation(ctx, testhelpers.Alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), rep)
}

func TestConcurrentMint(t *testing.T) {
	l, _ := setupLedger(t)
	ctx := context.Background()
	id := submit(t, l, testhelpers.Alice, "Dish")

	wins, errs := race(6, func(int) error {
		_, err := l.MintRecipeNFT(ctx, testhelpers.Alice, ledger.MintRequest{RecipeID: id, RoyaltyPercent: 5})
		return err
	})
	assert.Equal(t, 1, wins)
	for _, err := range errs {
		assert.ErrorIs(t, err, ledger.ErrAlreadyMinted)
	}

	total, err := l.GetTotalCollectibles(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), total)
}

func TestConcurrentBuy(t *testing.T) {
	l, _ := setupLedger(t)
	ctx := context.Background()
	id := submit(t, l, testhelpers.Alice, "Dish")
	tokenID := mint(t, l, testhelpers.Alice, id, 10, 0)
	require.NoError(t, l.ListForSale(ctx, testhelpers.Alice, tokenID, 500))

	buyers := make([]string, 6)
	for i := range buyers {
		buyers[i] = testhelpers.Addr(2000 + i)
	}
	var winner atomic.Value
	wins, errs := race(len(buyers), func(i int) error {
		if _, err := l.Buy(ctx, buyers[i], tokenID, 500); err != nil {
			return err
		}
		winner.Store(buyers[i])
		return nil
	})
	assert.Equal(t, 1, wins)
	for _, err := range errs {
		assert.True(t, errors.Is(err, ledger.ErrNotForSale), "unexpected error %v", err)
	}

	c, err := l.GetCollectible(ctx, tokenID)
	require.NoError(t, err)
	assert.Equal(t, winner.Load(), c.Owner)

	bal, err := l.GetBalance(ctx, testhelpers.Alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(500-12), bal)
}
