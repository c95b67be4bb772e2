package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipemint/backend/internal/address"
	"github.com/pageza/recipemint/backend/internal/ledger"
	"github.com/pageza/recipemint/backend/internal/models"
	"github.com/pageza/recipemint/backend/internal/types"
)

// profileResponse adds the EIP-55 display form to a stored profile
type profileResponse struct {
	*models.UserProfile
	DisplayAddress string `json:"display_address"`
}

func newProfileResponse(p *models.UserProfile) profileResponse {
	display, err := address.Checksum(p.Address)
	if err != nil {
		display = p.Address
	}
	return profileResponse{UserProfile: p, DisplayAddress: display}
}

type ProfileHandler struct {
	ledger *ledger.Ledger
}

func NewProfileHandler(l *ledger.Ledger) *ProfileHandler {
	return &ProfileHandler{ledger: l}
}

func (h *ProfileHandler) RegisterRoutes(public, protected *gin.RouterGroup) {
	profiles := public.Group("/profiles/:address")
	{
		profiles.GET("", h.GetProfile)
		profiles.GET("/reputation", h.GetReputation)
		profiles.GET("/balance", h.GetBalance)
		profiles.GET("/recipes", h.GetCreatorRecipes)
		profiles.GET("/collectibles", h.GetOwnerTokens)
	}

	me := protected.Group("/me")
	{
		me.POST("/profile", h.CreateProfile)
		me.POST("/onboarding", h.CompleteOnboarding)
		me.PUT("/preferences", h.UpdatePreferences)
	}
}

func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	addr, ok := caller(c)
	if !ok {
		return
	}
	profile, err := h.ledger.CreateProfile(c.Request.Context(), addr)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newProfileResponse(profile))
}

func (h *ProfileHandler) CompleteOnboarding(c *gin.Context) {
	addr, ok := caller(c)
	if !ok {
		return
	}
	profile, err := h.ledger.CompleteOnboarding(c.Request.Context(), addr)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newProfileResponse(profile))
}

func (h *ProfileHandler) UpdatePreferences(c *gin.Context) {
	addr, ok := caller(c)
	if !ok {
		return
	}
	var req types.UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	profile, err := h.ledger.UpdatePreferences(c.Request.Context(), addr, ledger.PreferencesUpdate{
		Theme:         req.Theme,
		Notifications: req.Notifications,
		AgentEnabled:  req.AgentEnabled,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newProfileResponse(profile))
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile, err := h.ledger.GetProfile(c.Request.Context(), c.Param("address"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newProfileResponse(profile))
}

func (h *ProfileHandler) GetReputation(c *gin.Context) {
	addr := c.Param("address")
	rep, err := h.ledger.GetReputation(c.Request.Context(), addr)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"address": addr, "reputation": rep})
}

func (h *ProfileHandler) GetBalance(c *gin.Context) {
	addr := c.Param("address")
	bal, err := h.ledger.GetBalance(c.Request.Context(), addr)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"address": addr, "balance": bal})
}

func (h *ProfileHandler) GetCreatorRecipes(c *gin.Context) {
	recipes, err := h.ledger.GetCreatorRecipes(c.Request.Context(), c.Param("address"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

func (h *ProfileHandler) GetOwnerTokens(c *gin.Context) {
	ids, err := h.ledger.GetOwnerTokens(c.Request.Context(), c.Param("address"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token_ids": ids})
}
