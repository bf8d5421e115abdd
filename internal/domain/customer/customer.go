package customer

import (
	"time"

	"account-service/internal/domain/record"
)

// Customer is the owning side of the customer/account relationship. Deleting
// a customer does not cascade to its accounts.
type Customer struct {
	record.Base

	FirstName string
	LastName  string
}

// CreateRequest is the payload accepted by POST /customers. Names are
// alphabetic, 5 to 50 characters.
type CreateRequest struct {
	FirstName string `json:"firstName" validate:"required,alpha,min=5,max=50"`
	LastName  string `json:"lastName" validate:"required,alpha,min=5,max=50"`
}

// Response is the externally exposed shape of a customer. The internal
// numeric id is never surfaced.
type Response struct {
	FirstName  string     `json:"firstName"`
	LastName   string     `json:"lastName"`
	CustomerID string     `json:"customerId"`
	CreatedOn  time.Time  `json:"createdOn"`
	ModifiedOn *time.Time `json:"modifiedOn,omitempty"`
}
