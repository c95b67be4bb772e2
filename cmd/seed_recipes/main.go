package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/pageza/recipemint/backend/config"
	"github.com/pageza/recipemint/backend/internal/database"
	"github.com/pageza/recipemint/backend/internal/ledger"
)

type seedRecipe struct {
	Title        string
	Ingredients  []string
	Instructions []string
}

var seedRecipes = []seedRecipe{
	{
		Title:        "Nasi Goreng",
		Ingredients:  []string{"2 cups cooked rice", "2 eggs", "2 tbsp kecap manis", "1 shallot", "1 chili"},
		Instructions: []string{"Fry shallot and chili", "Add rice and kecap manis", "Top with a fried egg"},
	},
	{
		Title:        "Shakshuka",
		Ingredients:  []string{"4 eggs", "1 can tomatoes", "1 onion", "1 red pepper", "1 tsp cumin"},
		Instructions: []string{"Soften onion and pepper", "Simmer tomatoes with cumin", "Poach eggs in the sauce"},
	},
	{
		Title:        "Miso Soup",
		Ingredients:  []string{"4 cups dashi", "3 tbsp miso", "200g tofu", "1 sheet wakame", "2 scallions"},
		Instructions: []string{"Heat dashi", "Whisk in miso off the boil", "Add tofu, wakame and scallions"},
	},
	{
		Title:        "Pasta e Fagioli",
		Ingredients:  []string{"200g ditalini", "1 can borlotti beans", "1 carrot", "1 celery stalk", "parmesan rind"},
		Instructions: []string{"Sweat carrot and celery", "Add beans, stock and rind", "Cook pasta in the soup"},
	},
}

// seed addresses, deterministic so repeated runs are recognizable
func seedAddress(n int) string {
	return fmt.Sprintf("0x%040x", 0x5eed0000+n)
}

func main() {
	listPrice := flag.Uint64("price", 1000, "Listing price for the seeded collectible")
	flag.Parse()

	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	l, err := ledger.New(ctx, db, ledger.Options{
		Admin:          cfg.AdminAddress,
		PlatformFeeBps: cfg.PlatformFeeBps,
		FeeRecipient:   cfg.FeeRecipient,
	})
	if err != nil {
		log.Fatalf("Failed to open ledger: %v", err)
	}

	var ids []uint64
	for i, r := range seedRecipes {
		creator := seedAddress(i % 2)
		id, err := l.SubmitRecipe(ctx, creator, ledger.RecipeInput{
			Title:        r.Title,
			Ingredients:  r.Ingredients,
			Instructions: r.Instructions,
		})
		if err != nil {
			log.Fatalf("Failed to submit %q: %v", r.Title, err)
		}
		ids = append(ids, id)
		log.Printf("Submitted recipe %d: %s by %s", id, r.Title, creator)
	}

	// every voter votes on every recipe
	for v := 10; v < 13; v++ {
		for _, id := range ids {
			if err := l.VoteRecipe(ctx, seedAddress(v), id); err != nil {
				log.Fatalf("Failed to vote on recipe %d: %v", id, err)
			}
		}
	}

	first, err := l.GetRecipe(ctx, ids[0])
	if err != nil {
		log.Fatalf("Failed to load recipe %d: %v", ids[0], err)
	}
	tokenID, err := l.MintRecipeNFT(ctx, first.Creator, ledger.MintRequest{
		RecipeID:       first.ID,
		RoyaltyPercent: 10,
		Description:    first.Title + " collectible",
	})
	if err != nil {
		log.Fatalf("Failed to mint recipe %d: %v", first.ID, err)
	}
	if err := l.ListForSale(ctx, first.Creator, tokenID, *listPrice); err != nil {
		log.Fatalf("Failed to list token %d: %v", tokenID, err)
	}

	log.Printf("Seeded %d recipes, minted token %d and listed it for %d", len(ids), tokenID, *listPrice)
}
