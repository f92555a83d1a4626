package storefront

import (
	"encoding/json"

	"github.com/shopspring/decimal"
	"github.com/storeboard/backend/internal/domain/shared"
)

// Credentials holds the decrypted WooCommerce REST credentials for a
// single store. All three fields must be present before any call.
type Credentials struct {
	StoreURL       string
	ConsumerKey    string
	ConsumerSecret string
}

// Validate fails fast when any credential field is missing, before any
// network I/O happens.
func (c Credentials) Validate() error {
	if c.StoreURL == "" || c.ConsumerKey == "" || c.ConsumerSecret == "" {
		return shared.ErrStoreNotLinked
	}
	return nil
}

// Product mirrors the fields of the WooCommerce v3 product resource
// that the dashboard aggregates over. Monetary and date values arrive
// as strings on the wire and are parsed on demand.
type Product struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Price         string `json:"price"`
	RegularPrice  string `json:"regular_price"`
	StockQuantity *int   `json:"stock_quantity"`
	StockStatus   string `json:"stock_status"`
	TotalSales    int64  `json:"total_sales"`
}

// PriceDecimal parses the product price, defaulting to zero when the
// upstream value is empty or malformed.
func (p Product) PriceDecimal() decimal.Decimal {
	d, err := decimal.NewFromString(p.Price)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Billing is the customer billing block of an order.
type Billing struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// LineItem is a single purchased line of an order.
type LineItem struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ProductID int64  `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Total     string `json:"total"`
}

// Order mirrors the fields of the WooCommerce v3 order resource used
// by the dashboard.
type Order struct {
	ID          int64      `json:"id"`
	Number      string     `json:"number"`
	Status      string     `json:"status"`
	Total       string     `json:"total"`
	DateCreated string     `json:"date_created"`
	Billing     Billing    `json:"billing"`
	LineItems   []LineItem `json:"line_items"`
}

// TotalDecimal parses the order total, defaulting to zero when the
// upstream value is empty or malformed.
func (o Order) TotalDecimal() decimal.Decimal {
	d, err := decimal.NewFromString(o.Total)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// DecodeProducts parses a raw upstream product list. A body that is
// not a JSON array of products is a format error.
func DecodeProducts(raw json.RawMessage) ([]Product, error) {
	var products []Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, &FormatError{Raw: string(raw)}
	}
	return products, nil
}

// DecodeOrders parses a raw upstream order list.
func DecodeOrders(raw json.RawMessage) ([]Order, error) {
	var orders []Order
	if err := json.Unmarshal(raw, &orders); err != nil {
		return nil, &FormatError{Raw: string(raw)}
	}
	return orders, nil
}
