package types

// SubmitRecipeRequest is the body of POST /recipes
type SubmitRecipeRequest struct {
	Title        string   `json:"title" binding:"required"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	ImageURL     string   `json:"image_url"`
}

// UpdatePreferencesRequest is the body of PUT /profiles/me/preferences.
// Omitted fields keep their current value.
type UpdatePreferencesRequest struct {
	Theme         *string `json:"theme"`
	Notifications *bool   `json:"notifications"`
	AgentEnabled  *bool   `json:"agent_enabled"`
}

// MintRequest is the body of POST /collectibles
type MintRequest struct {
	RecipeID       uint64 `json:"recipe_id"`
	MintPrice      uint64 `json:"mint_price"`
	RoyaltyPercent uint64 `json:"royalty_percent"`
	Description    string `json:"description"`
	TokenURI       string `json:"token_uri"`
	Payment        uint64 `json:"payment"`
}

// ListRequest is the body of POST /collectibles/:id/listing
type ListRequest struct {
	Price uint64 `json:"price"`
}

// BuyRequest is the body of POST /collectibles/:id/purchase
type BuyRequest struct {
	Payment uint64 `json:"payment"`
}

// PlatformFeeRequest is the body of PUT /admin/fees/platform
type PlatformFeeRequest struct {
	PlatformFeeBps uint64 `json:"platform_fee_bps"`
}

// FeeRecipientRequest is the body of PUT /admin/fees/recipient
type FeeRecipientRequest struct {
	FeeRecipient string `json:"fee_recipient" binding:"required"`
}

// MetadataRequest is the body of POST /metadata
type MetadataRequest struct {
	RecipeID    uint64 `json:"recipe_id" binding:"required"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error string `json:"error"`
}
