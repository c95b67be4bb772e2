package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipemint/backend/internal/ledger"
	"github.com/pageza/recipemint/backend/internal/types"
)

// CollectibleHandler serves minting and the marketplace
type CollectibleHandler struct {
	ledger *ledger.Ledger
}

func NewCollectibleHandler(l *ledger.Ledger) *CollectibleHandler {
	return &CollectibleHandler{ledger: l}
}

func (h *CollectibleHandler) RegisterRoutes(public, protected *gin.RouterGroup) {
	collectibles := public.Group("/collectibles")
	{
		collectibles.GET("", h.ListCollectibles)
		collectibles.GET("/total", h.GetTotalCollectibles)
		collectibles.GET("/for-sale", h.GetForSale)
		collectibles.GET("/:id", h.GetCollectible)
		collectibles.GET("/:id/recipe", h.GetRecipeIDForToken)
		collectibles.GET("/:id/payouts", h.GetPayouts)
	}

	protected.POST("/collectibles", h.Mint)
	protected.PUT("/collectibles/:id/listing", h.ListForSale)
	protected.DELETE("/collectibles/:id/listing", h.RemoveFromSale)
	protected.POST("/collectibles/:id/purchase", h.Buy)
}

func (h *CollectibleHandler) Mint(c *gin.Context) {
	addr, ok := caller(c)
	if !ok {
		return
	}
	var req types.MintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	tokenID, err := h.ledger.MintRecipeNFT(c.Request.Context(), addr, ledger.MintRequest{
		RecipeID:       req.RecipeID,
		MintPrice:      req.MintPrice,
		RoyaltyPercent: req.RoyaltyPercent,
		Description:    req.Description,
		TokenURI:       req.TokenURI,
		Payment:        req.Payment,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"token_id": tokenID})
}

func (h *CollectibleHandler) ListForSale(c *gin.Context) {
	addr, ok := caller(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req types.ListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	if err := h.ledger.ListForSale(c.Request.Context(), addr, id, req.Price); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token_id": id, "price": req.Price})
}

func (h *CollectibleHandler) RemoveFromSale(c *gin.Context) {
	addr, ok := caller(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.ledger.RemoveFromSale(c.Request.Context(), addr, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CollectibleHandler) Buy(c *gin.Context) {
	addr, ok := caller(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req types.BuyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	receipt, err := h.ledger.Buy(c.Request.Context(), addr, id, req.Payment)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, receipt)
}

func (h *CollectibleHandler) ListCollectibles(c *gin.Context) {
	all, err := h.ledger.GetAllCollectibles(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"collectibles": all})
}

func (h *CollectibleHandler) GetCollectible(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	col, err := h.ledger.GetCollectible(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, col)
}

func (h *CollectibleHandler) GetTotalCollectibles(c *gin.Context) {
	total, err := h.ledger.GetTotalCollectibles(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": total})
}

func (h *CollectibleHandler) GetRecipeIDForToken(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	recipeID, err := h.ledger.GetRecipeIDForToken(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token_id": id, "recipe_id": recipeID})
}

func (h *CollectibleHandler) GetForSale(c *gin.Context) {
	ids, err := h.ledger.GetForSale(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token_ids": ids})
}

func (h *CollectibleHandler) GetPayouts(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	payouts, err := h.ledger.GetPayouts(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payouts": payouts})
}
