package storefront

import (
	"context"
	"encoding/json"
	"net/url"
	"testing"

	"github.com/storeboard/backend/internal/domain/shared"
	"github.com/storeboard/backend/internal/domain/storefront"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockGateway is a mock implementation of storefront.Gateway
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) ListProducts(ctx context.Context, creds storefront.Credentials, query url.Values) (json.RawMessage, error) {
	args := m.Called(ctx, creds, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

func (m *MockGateway) GetProduct(ctx context.Context, creds storefront.Credentials, id int64) (json.RawMessage, error) {
	args := m.Called(ctx, creds, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

func (m *MockGateway) UpdateProduct(ctx context.Context, creds storefront.Credentials, id int64, body json.RawMessage) (json.RawMessage, error) {
	args := m.Called(ctx, creds, id, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

func (m *MockGateway) DeleteProduct(ctx context.Context, creds storefront.Credentials, id int64) (json.RawMessage, error) {
	args := m.Called(ctx, creds, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

func (m *MockGateway) ListOrders(ctx context.Context, creds storefront.Credentials, query url.Values) (json.RawMessage, error) {
	args := m.Called(ctx, creds, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

// stubCredentials is a fixed CredentialSource for tests
type stubCredentials struct {
	storeURL string
	key      string
	secret   string
	err      error
}

func (s stubCredentials) StoreCredentials(ctx context.Context, accountID int64) (string, string, string, error) {
	if s.err != nil {
		return "", "", "", s.err
	}
	return s.storeURL, s.key, s.secret, nil
}

var testCreds = storefront.Credentials{
	StoreURL:       "https://shop.example.com",
	ConsumerKey:    "ck",
	ConsumerSecret: "cs",
}

func newTestStoreService(gateway storefront.Gateway) *StoreService {
	return NewStoreService(stubCredentials{
		storeURL: testCreds.StoreURL,
		key:      testCreds.ConsumerKey,
		secret:   testCreds.ConsumerSecret,
	}, gateway, zap.NewNop())
}

func TestStoreService_ListProducts(t *testing.T) {
	gateway := new(MockGateway)
	gateway.On("ListProducts", mock.Anything, testCreds, url.Values(nil)).
		Return(json.RawMessage(`[{"id":1}]`), nil)

	svc := newTestStoreService(gateway)

	raw, err := svc.ListProducts(context.Background(), 7)

	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1}]`, string(raw))
	gateway.AssertExpectations(t)
}

func TestStoreService_UnlinkedAccountNeverReachesGateway(t *testing.T) {
	gateway := new(MockGateway)
	svc := NewStoreService(stubCredentials{err: shared.ErrStoreNotLinked}, gateway, zap.NewNop())

	_, err := svc.ListProducts(context.Background(), 7)
	assert.Equal(t, shared.ErrStoreNotLinked, err)

	_, err = svc.GetOrder(context.Background(), 7, 100)
	assert.Equal(t, shared.ErrStoreNotLinked, err)

	gateway.AssertNotCalled(t, "ListProducts")
	gateway.AssertNotCalled(t, "ListOrders")
}

func TestStoreService_ListOrders_FilterMapping(t *testing.T) {
	expected := url.Values{
		"status":   {"completed"},
		"customer": {"12"},
		"after":    {"2026-08-01T00:00:00"},
		"before":   {"2026-08-31T23:59:59"},
		"page":     {"2"},
		"per_page": {"50"},
	}

	gateway := new(MockGateway)
	gateway.On("ListOrders", mock.Anything, testCreds, expected).
		Return(json.RawMessage(`[]`), nil)

	svc := newTestStoreService(gateway)

	_, err := svc.ListOrders(context.Background(), 7, OrderFilter{
		Status:         "completed",
		Customer:       "12",
		DateCreatedMin: "2026-08-01T00:00:00",
		DateCreatedMax: "2026-08-31T23:59:59",
		Page:           2,
		PerPage:        50,
	})

	require.NoError(t, err)
	gateway.AssertExpectations(t)
}

func TestStoreService_ListOrders_EmptyFilterSendsNoParams(t *testing.T) {
	gateway := new(MockGateway)
	gateway.On("ListOrders", mock.Anything, testCreds, url.Values{}).
		Return(json.RawMessage(`[]`), nil)

	svc := newTestStoreService(gateway)

	_, err := svc.ListOrders(context.Background(), 7, OrderFilter{})

	require.NoError(t, err)
	gateway.AssertExpectations(t)
}

func TestStoreService_GetOrder(t *testing.T) {
	t.Run("fetches via the include filter and unwraps the first item", func(t *testing.T) {
		gateway := new(MockGateway)
		gateway.On("ListOrders", mock.Anything, testCreds, url.Values{"include": {"100"}}).
			Return(json.RawMessage(`[{"id":100,"status":"completed"}]`), nil)

		svc := newTestStoreService(gateway)

		raw, err := svc.GetOrder(context.Background(), 7, 100)

		require.NoError(t, err)
		assert.JSONEq(t, `{"id":100,"status":"completed"}`, string(raw))
	})

	t.Run("empty result is not found", func(t *testing.T) {
		gateway := new(MockGateway)
		gateway.On("ListOrders", mock.Anything, testCreds, url.Values{"include": {"999"}}).
			Return(json.RawMessage(`[]`), nil)

		svc := newTestStoreService(gateway)

		_, err := svc.GetOrder(context.Background(), 7, 999)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NOT_FOUND", domainErr.Code)
	})

	t.Run("non-array body is a format error", func(t *testing.T) {
		gateway := new(MockGateway)
		gateway.On("ListOrders", mock.Anything, testCreds, url.Values{"include": {"100"}}).
			Return(json.RawMessage(`{"oops":true}`), nil)

		svc := newTestStoreService(gateway)

		_, err := svc.GetOrder(context.Background(), 7, 100)

		var formatErr *storefront.FormatError
		assert.ErrorAs(t, err, &formatErr)
	})
}

func TestStoreService_UpdateProduct(t *testing.T) {
	body := json.RawMessage(`{"regular_price":"15.00"}`)
	gateway := new(MockGateway)
	gateway.On("UpdateProduct", mock.Anything, testCreds, int64(7), body).
		Return(json.RawMessage(`{"id":7,"regular_price":"15.00"}`), nil)

	svc := newTestStoreService(gateway)

	raw, err := svc.UpdateProduct(context.Background(), 1, 7, body)

	require.NoError(t, err)
	assert.Contains(t, string(raw), `"regular_price":"15.00"`)
	gateway.AssertExpectations(t)
}

func TestStoreService_UpstreamErrorsPassThrough(t *testing.T) {
	apiErr := &storefront.APIError{StatusCode: 401, Message: "Sorry, you cannot list resources."}
	gateway := new(MockGateway)
	gateway.On("ListProducts", mock.Anything, testCreds, url.Values(nil)).
		Return(nil, apiErr)

	svc := newTestStoreService(gateway)

	_, err := svc.ListProducts(context.Background(), 7)

	var got *storefront.APIError
	require.ErrorAs(t, err, &got)
	assert.Equal(t, 401, got.StatusCode)
}
