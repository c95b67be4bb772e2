package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipemint/backend/internal/ledger"
	"github.com/pageza/recipemint/backend/internal/service"
	"github.com/pageza/recipemint/backend/internal/types"
)

// MetadataHandler uploads token metadata for a recipe's creator
type MetadataHandler struct {
	ledger   *ledger.Ledger
	metadata service.IMetadataService
}

func NewMetadataHandler(l *ledger.Ledger, metadata service.IMetadataService) *MetadataHandler {
	return &MetadataHandler{ledger: l, metadata: metadata}
}

func (h *MetadataHandler) RegisterRoutes(public, protected *gin.RouterGroup) {
	protected.POST("/metadata", h.Upload)
}

func (h *MetadataHandler) Upload(c *gin.Context) {
	addr, ok := caller(c)
	if !ok {
		return
	}
	var req types.MetadataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if h.metadata == nil {
		respondError(c, service.ErrStorageDisabled)
		return
	}

	recipe, err := h.ledger.GetRecipe(c.Request.Context(), req.RecipeID)
	if err != nil {
		respondError(c, err)
		return
	}
	if recipe.Creator != addr {
		respondError(c, ledger.ErrNotCreator)
		return
	}

	url, err := h.metadata.Upload(c.Request.Context(), recipe, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"token_uri": url})
}
