package customer

import (
	"context"
	"time"

	"account-service/internal/domain/data"
)

// Store is the persistence boundary for customers.
type Store interface {
	data.Store[*Customer]

	// PurgeDeletedBefore hard deletes soft deleted customers whose deletion
	// timestamp is older than cutoff and that no account references anymore.
	// Used only by the retention sweep, never by a request path.
	PurgeDeletedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
