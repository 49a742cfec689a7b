package api

import "time"

// Response schemas for the Neighbor backend. Every struct carries validate
// tags enforced in the client's decode path, so a shape drift on the server
// side surfaces as a DecodeError at the boundary.

// Token is the /token response.
type Token struct {
	AccessToken string `json:"access_token" validate:"required"`
	TokenType   string `json:"token_type"`
}

// User is the authenticated profile from /users/me.
type User struct {
	ID       int    `json:"id" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Role     string `json:"role" validate:"oneof=consumer store_owner"`
	IsActive bool   `json:"is_active"`
}

// RoleStoreOwner gates the dashboard.
const (
	RoleConsumer   = "consumer"
	RoleStoreOwner = "store_owner"
)

// RegisterRequest creates an account.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Product is a catalog entry.
type Product struct {
	ID       int    `json:"id" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Category string `json:"category"`
	Barcode  string `json:"barcode"`
}

// PriceSearchResult is one store's price for a matching product.
type PriceSearchResult struct {
	ProductID   int       `json:"product_id" validate:"required"`
	ProductName string    `json:"product_name" validate:"required"`
	Price       float64   `json:"price" validate:"gte=0"`
	StoreID     int       `json:"store_id" validate:"required"`
	StoreName   string    `json:"store_name" validate:"required"`
	MarketArea  string    `json:"market_area"`
	City        string    `json:"city"`
	State       string    `json:"state"`
	Timestamp   time.Time `json:"timestamp"`
}

// State, City and Market form the manual location hierarchy.
type State struct {
	ID   int    `json:"id" validate:"required"`
	Name string `json:"name" validate:"required"`
}

type City struct {
	ID   int    `json:"id" validate:"required"`
	Name string `json:"name" validate:"required"`
}

type Market struct {
	ID   int    `json:"id" validate:"required"`
	Name string `json:"name" validate:"required"`
}

// MarketArea is the nearby-markets response. Latitude and Longitude are an
// optional extension some deployments include; when absent they decode to zero
// and the client skips its distance labels.
type MarketArea struct {
	ID        int     `json:"id" validate:"required"`
	Name      string  `json:"name" validate:"required"`
	CityName  string  `json:"city_name"`
	StateName string  `json:"state_name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// StateInfo answers "which state is this GPS fix in, and how far can a search
// radius reach before it likely crosses the state line".
type StateInfo struct {
	StateID         int     `json:"state_id" validate:"required"`
	StateName       string  `json:"state_name" validate:"required"`
	MaxSafeRadiusKm float64 `json:"max_safe_radius_km" validate:"gt=0"`
}

// ShoppingList is the server-computed list with its running total. The dive
// tag extends validation into each item; without it the item tags would never
// run.
type ShoppingList struct {
	ID         int        `json:"id"`
	Items      []ListItem `json:"items" validate:"dive"`
	TotalPrice float64    `json:"total_price" validate:"gte=0"`
}

// ListItem is one line of the shopping list. Quantity is always positive;
// the backend never stores a zero-quantity line.
type ListItem struct {
	ID              int     `json:"id" validate:"required"`
	ProductID       int     `json:"product_id" validate:"required"`
	Quantity        int     `json:"quantity" validate:"gte=1"`
	ProductName     string  `json:"product_name" validate:"required"`
	StoreID         int     `json:"store_id" validate:"required"`
	StoreName       string  `json:"store_name"`
	PriceAtAddition float64 `json:"price_at_addition" validate:"gte=0"`
	ImageURL        string  `json:"image_url"`
}

// ListItemCreate adds a product listing to the shopping list. The backend
// decides whether this merges into an existing line for the same product and
// store or creates a new one.
type ListItemCreate struct {
	ProductID       int     `json:"product_id"`
	StoreID         int     `json:"store_id"`
	PriceAtAddition float64 `json:"price_at_addition"`
	Quantity        int     `json:"quantity"`
}

// StoreSimple is a store reference used by favorites and store creation.
type StoreSimple struct {
	ID         int    `json:"id" validate:"required"`
	Name       string `json:"name" validate:"required"`
	MarketArea string `json:"market_area"`
	City       string `json:"city"`
}

// Review is a product review.
type Review struct {
	ID        int       `json:"id" validate:"required"`
	ProductID int       `json:"product_id"`
	UserName  string    `json:"user_name"`
	Rating    int       `json:"rating" validate:"min=1,max=5"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// ReviewCreate submits a review for a product.
type ReviewCreate struct {
	ProductID int    `json:"product_id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

// ProductViewLog is the fire-and-forget analytics event sent when a shopper
// opens a product page. RequestID de-duplicates client retries of the send.
type ProductViewLog struct {
	ProductID int    `json:"product_id"`
	RequestID string `json:"request_id,omitempty"`
}

// PriceEntry is one row of a store's inventory as seen by the dashboard.
// StockLevel is the coarse 1-3 ordinal (Low/Medium/High), not a unit count.
type PriceEntry struct {
	ID         int     `json:"id" validate:"required"`
	Price      float64 `json:"price" validate:"gte=0"`
	StockLevel int     `json:"stock_level" validate:"min=1,max=3"`
	Product    Product `json:"product"`
}

// PriceCreate adds a product price to the owner's inventory.
type PriceCreate struct {
	ProductID  int     `json:"product_id"`
	Price      float64 `json:"price"`
	StockLevel int     `json:"stock_level"`
}

// PriceUpdate edits an existing inventory entry.
type PriceUpdate struct {
	Price      float64 `json:"price"`
	StockLevel int     `json:"stock_level"`
}

// ViewCount is one row of the dashboard's view analytics.
type ViewCount struct {
	ProductName string `json:"product_name" validate:"required"`
	ViewCount   int    `json:"view_count" validate:"gte=0"`
}

// StoreCreate registers the owner's store inside a market area.
type StoreCreate struct {
	Name         string `json:"name"`
	MarketAreaID int    `json:"market_area_id"`
}
