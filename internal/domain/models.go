package domain

import "time"

// Product is the backend's product resource as served to buyers.
type Product struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	ProductType      string    `json:"productType"`
	CoverImage       string    `json:"coverImage"`
	AdditionalImages []string  `json:"additionalImages"`
	OriginalPrice    float64   `json:"originalPrice"`
	DiscountedPrice  float64   `json:"discountedPrice"`
	ExpirationDate   string    `json:"expirationDate"`
	StoreID          string    `json:"storeId"`
	IsActive         bool      `json:"isActive"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
	Stock            int       `json:"stock"`
	Rating           float64   `json:"rating"`
	RatingCount      int       `json:"ratingCount"`
	Category         []string  `json:"category"`
}

// Store is a seller's storefront.
type Store struct {
	ID               string   `json:"id"`
	SellerID         string   `json:"sellerId"`
	Name             string   `json:"name"`
	StoreDescription string   `json:"storeDescription"`
	StoreImageURL    string   `json:"storeImageUrl"`
	StoreCoverURL    string   `json:"storeCoverUrl"`
	StoreCategory    string   `json:"storeCategory"`
	Tags             []string `json:"tags"`
	Address          string   `json:"address"`
	City             string   `json:"city"`
	Province         string   `json:"province"`
	ZipCode          string   `json:"zipCode"`
	Latitude         float64  `json:"latitude"`
	Longitude        float64  `json:"longitude"`
	Rating           *float64 `json:"rating,omitempty"`
	Reviews          *int     `json:"reviews,omitempty"`
}

// Buyer is the authenticated buyer's profile.
type Buyer struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	EmailAddress   string    `json:"emailAddress"`
	CreatedAt      time.Time `json:"createdAt"`
	FavoriteStores []string  `json:"favoriteStores"`
	Latitude       *float64  `json:"latitude,omitempty"`
	Longitude      *float64  `json:"longitude,omitempty"`
}

// CartEntry is one line of the server's authoritative cart. The server only
// stores the item reference and quantity; display data is fetched separately.
type CartEntry struct {
	ItemID string `json:"itemId"`
	Amount int    `json:"amount"`
}

// Cart is the server's authoritative cart resource.
type Cart struct {
	CartID    string      `json:"cartId"`
	BuyerID   string      `json:"buyerId"`
	CartItems []CartEntry `json:"cartItems"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// Order is a persisted order. Status is mutated only by the server, except
// that a successful cancel call sets it to Cancelled locally.
type Order struct {
	ID         string      `json:"id"`
	BuyerID    string      `json:"buyerId"`
	StoreID    string      `json:"storeId"`
	ProductID  string      `json:"productId"`
	Quantity   int         `json:"quantity"`
	TotalPrice float64     `json:"totalPrice"`
	Status     OrderStatus `json:"status"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}

// OrderDraft is the order-creation payload.
type OrderDraft struct {
	BuyerID    string      `json:"buyerId"`
	StoreID    string      `json:"storeId"`
	ProductID  string      `json:"productId"`
	Quantity   int         `json:"quantity"`
	TotalPrice float64     `json:"totalPrice"`
	Status     OrderStatus `json:"status"`
}
