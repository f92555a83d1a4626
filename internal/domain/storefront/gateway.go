package storefront

import (
	"context"
	"encoding/json"
	"net/url"
)

// Gateway abstracts the remote store's REST API. Implementations
// return the upstream response body verbatim so proxy endpoints can
// pass it through unchanged; callers that need structure decode with
// DecodeProducts / DecodeOrders.
type Gateway interface {
	// ListProducts fetches products; query parameters are forwarded
	// verbatim to the upstream API.
	ListProducts(ctx context.Context, creds Credentials, query url.Values) (json.RawMessage, error)

	// GetProduct fetches a single product by ID.
	GetProduct(ctx context.Context, creds Credentials, id int64) (json.RawMessage, error)

	// UpdateProduct updates a product with the given JSON body.
	UpdateProduct(ctx context.Context, creds Credentials, id int64, body json.RawMessage) (json.RawMessage, error)

	// DeleteProduct removes a product (WooCommerce moves it to trash).
	DeleteProduct(ctx context.Context, creds Credentials, id int64) (json.RawMessage, error)

	// ListOrders fetches orders; query parameters are forwarded
	// verbatim to the upstream API.
	ListOrders(ctx context.Context, creds Credentials, query url.Values) (json.RawMessage, error)
}
