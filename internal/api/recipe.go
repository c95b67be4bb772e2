package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipemint/backend/internal/ledger"
	"github.com/pageza/recipemint/backend/internal/models"
	"github.com/pageza/recipemint/backend/internal/types"
)

type RecipeHandler struct {
	ledger *ledger.Ledger
}

func NewRecipeHandler(l *ledger.Ledger) *RecipeHandler {
	return &RecipeHandler{ledger: l}
}

func (h *RecipeHandler) RegisterRoutes(public, protected *gin.RouterGroup) {
	recipes := public.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/total", h.GetTotalRecipes)
		recipes.GET("/:id", h.GetRecipe)
		recipes.GET("/:id/votes/:address", h.HasVoted)
	}

	protected.POST("/recipes", h.SubmitRecipe)
	protected.POST("/recipes/:id/votes", h.VoteRecipe)
}

func (h *RecipeHandler) SubmitRecipe(c *gin.Context) {
	addr, ok := caller(c)
	if !ok {
		return
	}
	var req types.SubmitRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	id, err := h.ledger.SubmitRecipe(c.Request.Context(), addr, ledger.RecipeInput{
		Title:        req.Title,
		Ingredients:  req.Ingredients,
		Instructions: req.Instructions,
		ImageURL:     req.ImageURL,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *RecipeHandler) VoteRecipe(c *gin.Context) {
	addr, ok := caller(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.ledger.VoteRecipe(c.Request.Context(), addr, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipe_id": id, "voter": addr})
}

// ListRecipes returns every recipe, or only one creator's with ?creator=
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	var (
		recipes []models.Recipe
		err     error
	)
	if creator := c.Query("creator"); creator != "" {
		recipes, err = h.ledger.GetCreatorRecipes(c.Request.Context(), creator)
	} else {
		recipes, err = h.ledger.GetAllRecipes(c.Request.Context())
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	recipe, err := h.ledger.GetRecipe(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) GetTotalRecipes(c *gin.Context) {
	total, err := h.ledger.GetTotalRecipes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": total})
}

func (h *RecipeHandler) HasVoted(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	voted, err := h.ledger.HasVoted(c.Request.Context(), id, c.Param("address"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"voted": voted})
}
