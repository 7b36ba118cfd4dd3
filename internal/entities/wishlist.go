package entities

type WishlistItemRequest struct {
	ItemType string `json:"item_type" validate:"required,oneof=pet product"`
	ItemID   int    `json:"item_id" validate:"required,gt=0"`
}

type WishlistItemResponse struct {
	ID       int    `json:"id"`
	ItemType string `json:"item_type"`
	ItemID   int    `json:"item_id"`
	Name     string `json:"name"`
	PhotoURL string `json:"photo_url,omitempty"`
}
