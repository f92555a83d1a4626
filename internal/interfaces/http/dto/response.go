package dto

import (
	"encoding/json"
	"time"
)

// ErrorResponse is the flat error envelope returned by every failing
// endpoint: {"success": false, "message": "..."}.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// NewErrorResponse creates an error response with the given message.
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Success: false, Message: message}
}

// AccountPayload is the account representation embedded in auth and
// profile responses. The password hash and encrypted credentials are
// never serialized.
type AccountPayload struct {
	ID                  int64      `json:"id"`
	Email               string     `json:"email"`
	DisplayName         string     `json:"displayName,omitempty"`
	StoreURL            string     `json:"storeUrl,omitempty"`
	TrialExpirationDate *time.Time `json:"trialExpirationDate,omitempty"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Success bool           `json:"success"`
	User    AccountPayload `json:"user"`
	Token   string         `json:"token"`
}

// ProfileResponse is returned by profile reads and updates.
type ProfileResponse struct {
	Success bool           `json:"success"`
	User    AccountPayload `json:"user"`
}

// ConnectStoreResponse acknowledges a successful store link.
type ConnectStoreResponse struct {
	Success  bool   `json:"success"`
	StoreURL string `json:"storeUrl"`
}

// ProductsResponse wraps the raw upstream product list.
type ProductsResponse struct {
	Success  bool            `json:"success"`
	Products json.RawMessage `json:"products"`
}

// ProductResponse wraps a single raw upstream product.
type ProductResponse struct {
	Success bool            `json:"success"`
	Product json.RawMessage `json:"product"`
}

// DeleteProductResponse wraps the upstream delete result.
type DeleteProductResponse struct {
	Success bool            `json:"success"`
	Result  json.RawMessage `json:"result"`
}

// OrdersResponse wraps the raw upstream order list.
type OrdersResponse struct {
	Success bool            `json:"success"`
	Orders  json.RawMessage `json:"orders"`
}

// OrderResponse wraps a single raw upstream order.
type OrderResponse struct {
	Success bool            `json:"success"`
	Order   json.RawMessage `json:"order"`
}

// HealthResponse reports service liveness and database reachability.
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}
