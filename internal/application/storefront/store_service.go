package storefront

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/storeboard/backend/internal/domain/shared"
	"github.com/storeboard/backend/internal/domain/storefront"
	"go.uber.org/zap"
)

// CredentialSource provides the decrypted store credentials of an
// account. Implemented by the identity AuthService.
type CredentialSource interface {
	StoreCredentials(ctx context.Context, accountID int64) (storeURL, consumerKey, consumerSecret string, err error)
}

// OrderFilter carries the recognized order list filters. Zero values
// are omitted from the upstream query.
type OrderFilter struct {
	Status         string
	Customer       string
	DateCreatedMin string
	DateCreatedMax string
	Page           int
	PerPage        int
}

// StoreService proxies product and order operations to the account's
// linked store.
type StoreService struct {
	credentials CredentialSource
	gateway     storefront.Gateway
	logger      *zap.Logger
}

// NewStoreService creates a new store proxy service
func NewStoreService(credentials CredentialSource, gateway storefront.Gateway, logger *zap.Logger) *StoreService {
	return &StoreService{
		credentials: credentials,
		gateway:     gateway,
		logger:      logger,
	}
}

// ListProducts returns the store's products verbatim
func (s *StoreService) ListProducts(ctx context.Context, accountID int64) (json.RawMessage, error) {
	creds, err := s.creds(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return s.gateway.ListProducts(ctx, creds, nil)
}

// GetProduct returns a single product verbatim
func (s *StoreService) GetProduct(ctx context.Context, accountID, productID int64) (json.RawMessage, error) {
	creds, err := s.creds(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return s.gateway.GetProduct(ctx, creds, productID)
}

// UpdateProduct forwards a product update and returns the result
func (s *StoreService) UpdateProduct(ctx context.Context, accountID, productID int64, body json.RawMessage) (json.RawMessage, error) {
	creds, err := s.creds(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return s.gateway.UpdateProduct(ctx, creds, productID, body)
}

// DeleteProduct removes a product from the linked store
func (s *StoreService) DeleteProduct(ctx context.Context, accountID, productID int64) (json.RawMessage, error) {
	creds, err := s.creds(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return s.gateway.DeleteProduct(ctx, creds, productID)
}

// ListOrders returns the store's orders, filter fields forwarded as
// upstream query parameters.
func (s *StoreService) ListOrders(ctx context.Context, accountID int64, filter OrderFilter) (json.RawMessage, error) {
	creds, err := s.creds(ctx, accountID)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	if filter.Status != "" {
		query.Set("status", filter.Status)
	}
	if filter.Customer != "" {
		query.Set("customer", filter.Customer)
	}
	if filter.DateCreatedMin != "" {
		query.Set("after", filter.DateCreatedMin)
	}
	if filter.DateCreatedMax != "" {
		query.Set("before", filter.DateCreatedMax)
	}
	if filter.Page > 0 {
		query.Set("page", strconv.Itoa(filter.Page))
	}
	if filter.PerPage > 0 {
		query.Set("per_page", strconv.Itoa(filter.PerPage))
	}

	return s.gateway.ListOrders(ctx, creds, query)
}

// GetOrder fetches a single order through the list endpoint's include
// filter. An empty result means the order does not exist.
func (s *StoreService) GetOrder(ctx context.Context, accountID, orderID int64) (json.RawMessage, error) {
	creds, err := s.creds(ctx, accountID)
	if err != nil {
		return nil, err
	}

	query := url.Values{"include": {strconv.FormatInt(orderID, 10)}}
	raw, err := s.gateway.ListOrders(ctx, creds, query)
	if err != nil {
		return nil, err
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, &storefront.FormatError{Raw: string(raw)}
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("NOT_FOUND", "Order not found")
	}

	return items[0], nil
}

func (s *StoreService) creds(ctx context.Context, accountID int64) (storefront.Credentials, error) {
	storeURL, key, secret, err := s.credentials.StoreCredentials(ctx, accountID)
	if err != nil {
		return storefront.Credentials{}, err
	}
	return storefront.Credentials{
		StoreURL:       storeURL,
		ConsumerKey:    key,
		ConsumerSecret: secret,
	}, nil
}
