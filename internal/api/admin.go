package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipemint/backend/internal/ledger"
	"github.com/pageza/recipemint/backend/internal/types"
)

// AdminHandler serves the fee configuration
type AdminHandler struct {
	ledger *ledger.Ledger
}

func NewAdminHandler(l *ledger.Ledger) *AdminHandler {
	return &AdminHandler{ledger: l}
}

func (h *AdminHandler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.GET("/fees", h.GetFeeConfig)

	admin := protected.Group("/admin/fees")
	{
		admin.PUT("/platform", h.SetPlatformFee)
		admin.PUT("/recipient", h.SetFeeRecipient)
	}
}

func (h *AdminHandler) GetFeeConfig(c *gin.Context) {
	fc, err := h.ledger.GetFeeConfig(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fc)
}

func (h *AdminHandler) SetPlatformFee(c *gin.Context) {
	addr, ok := caller(c)
	if !ok {
		return
	}
	var req types.PlatformFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if err := h.ledger.SetPlatformFee(c.Request.Context(), addr, req.PlatformFeeBps); err != nil {
		respondError(c, err)
		return
	}
	h.GetFeeConfig(c)
}

func (h *AdminHandler) SetFeeRecipient(c *gin.Context) {
	addr, ok := caller(c)
	if !ok {
		return
	}
	var req types.FeeRecipientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if err := h.ledger.SetFeeRecipient(c.Request.Context(), addr, req.FeeRecipient); err != nil {
		respondError(c, err)
		return
	}
	h.GetFeeConfig(c)
}
