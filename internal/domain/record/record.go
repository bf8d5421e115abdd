// Package record holds the fields shared by every persisted entity.
package record

import "time"

// Base carries the bookkeeping columns common to all entities. ID is the
// internal primary key and is never exposed over the API; BusinessID is the
// public identifier, assigned once before the first persist and immutable
// afterwards. A non-nil DeletedOn marks the row as soft deleted: such rows
// still exist physically but must never be returned by any read path.
type Base struct {
	ID         int64
	BusinessID string
	CreatedOn  time.Time
	ModifiedOn *time.Time
	DeletedOn  *time.Time
}

func (b *Base) Record() *Base {
	return b
}

// Entity is satisfied by any persisted type embedding Base.
type Entity interface {
	Record() *Base
}
