package account

import (
	"context"
	"time"

	"account-service/internal/domain/data"
)

// Store is the persistence boundary for accounts.
type Store interface {
	data.Store[*Account]

	// FindPageByCustomer returns one page of the customer's accounts,
	// excluding soft deleted rows, together with the total count.
	FindPageByCustomer(ctx context.Context, customerID int64, pageNo, size int) ([]*Account, int64, error)

	// PurgeDeletedBefore hard deletes soft deleted accounts whose deletion
	// timestamp is older than cutoff. Used only by the retention sweep.
	PurgeDeletedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
