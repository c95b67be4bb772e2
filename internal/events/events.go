package events

// Notification types, one or more per successful ledger command
const (
	TypeProfileCreated      = "ProfileCreated"
	TypeProfileUpdated      = "ProfileUpdated"
	TypeRecipeSubmitted     = "RecipeSubmitted"
	TypeRecipeVoted         = "RecipeVoted"
	TypeNFTMinted           = "NFTMinted"
	TypeNFTListed           = "NFTListed"
	TypeNFTUnlisted         = "NFTUnlisted"
	TypeNFTSold             = "NFTSold"
	TypeRoyaltyPaid         = "RoyaltyPaid"
	TypePlatformFeeUpdated  = "PlatformFeeUpdated"
	TypeFeeRecipientUpdated = "FeeRecipientUpdated"
)

type ProfileCreated struct {
	Address string `json:"address"`
}

type ProfileUpdated struct {
	Address string   `json:"address"`
	Fields  []string `json:"fields"`
}

type RecipeSubmitted struct {
	RecipeID uint64 `json:"recipe_id"`
	Creator  string `json:"creator"`
	Title    string `json:"title"`
}

type RecipeVoted struct {
	RecipeID uint64 `json:"recipe_id"`
	Voter    string `json:"voter"`
}

type NFTMinted struct {
	TokenID   uint64 `json:"token_id"`
	RecipeID  uint64 `json:"recipe_id"`
	Creator   string `json:"creator"`
	MintPrice uint64 `json:"mint_price"`
}

type NFTListed struct {
	TokenID uint64 `json:"token_id"`
	Owner   string `json:"owner"`
	Price   uint64 `json:"price"`
}

type NFTUnlisted struct {
	TokenID uint64 `json:"token_id"`
	Owner   string `json:"owner"`
}

type NFTSold struct {
	TokenID uint64 `json:"token_id"`
	Seller  string `json:"seller"`
	Buyer   string `json:"buyer"`
	Price   uint64 `json:"price"`
}

type RoyaltyPaid struct {
	TokenID   uint64 `json:"token_id"`
	Recipient string `json:"recipient"`
	Amount    uint64 `json:"amount"`
}

type PlatformFeeUpdated struct {
	PlatformFeeBps uint64 `json:"platform_fee_bps"`
}

type FeeRecipientUpdated struct {
	FeeRecipient string `json:"fee_recipient"`
}
