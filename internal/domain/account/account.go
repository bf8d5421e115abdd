package account

import (
	"time"

	"account-service/internal/domain/customer"
	"account-service/internal/domain/record"
)

// Account belongs to exactly one customer for its whole lifetime; the
// reference is resolved from the request's customer business id at creation
// and never changes afterwards.
type Account struct {
	record.Base

	Name        string
	Description string
	SortCode    string
	Number      int
	Currency    string
	Customer    *customer.Customer
}

// CreateRequest is the payload accepted by POST /accounts.
type CreateRequest struct {
	Name        string `json:"name" validate:"required,account_name"`
	Description string `json:"description" validate:"required,max=500"`
	SortCode    string `json:"sortCode" validate:"required,sort_code"`
	Number      int    `json:"number" validate:"required,gt=0"`
	Currency    string `json:"currency" validate:"required,oneof=GBP EUR"`
	CustomerBid string `json:"customerBid" validate:"required,customer_bid"`
}

// Response is the externally exposed shape of an account. Only the customer's
// business id is surfaced, never the customer object or internal keys.
type Response struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	SortCode    string     `json:"sortCode"`
	Number      int        `json:"number"`
	AccountID   string     `json:"accountId"`
	CustomerID  string     `json:"customerId"`
	Currency    string     `json:"currency"`
	CreatedOn   time.Time  `json:"createdOn"`
	ModifiedOn  *time.Time `json:"modifiedOn,omitempty"`
}
