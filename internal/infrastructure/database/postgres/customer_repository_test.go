package postgres

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"regexp"
	"testing"
	"time"

	"account-service/internal/domain/customer"
	"account-service/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
)

const pgxmockExpectationsNotMetMsg = "pgxmock expectations were not met"

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func newTestCustomer() *customer.Customer {
	cust := &customer.Customer{
		FirstName: "Alice",
		LastName:  "Johnson",
	}
	cust.BusinessID = "CU000000000001"
	cust.CreatedOn = time.Now()
	return cust
}

func setupCustomerRepo(t *testing.T) (context.Context, *CustomerRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mockPool, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to open a stub database connection: %v", err)
	}

	ctx := context.Background()
	repo := NewCustomerRepository(mockPool, testLogger)

	return ctx, repo, mockPool
}

func TestCustomerInsertWhenSuccess(t *testing.T) {
	ctx, repo, mockPool := setupCustomerRepo(t)
	defer mockPool.Close()
	cust := newTestCustomer()

	query := `
        INSERT INTO customers (business_id, first_name, last_name, created_on)
        VALUES ($1, $2, $3, $4)
        RETURNING id`

	mockPool.ExpectQuery(regexp.QuoteMeta(query)).WithArgs(
		cust.BusinessID,
		cust.FirstName,
		cust.LastName,
		cust.CreatedOn,
	).WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(1)))

	err := repo.Insert(ctx, cust)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), cust.ID)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestCustomerInsertWhenBusinessIDCollides(t *testing.T) {
	ctx, repo, mockPool := setupCustomerRepo(t)
	defer mockPool.Close()
	cust := newTestCustomer()

	mockPool.ExpectQuery("INSERT INTO customers").WithArgs(
		cust.BusinessID,
		cust.FirstName,
		cust.LastName,
		cust.CreatedOn,
	).WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "customers_business_id_key"})

	err := repo.Insert(ctx, cust)
	assert.True(t, errors.Is(err, apperrors.ErrAlreadyExists))
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestCustomerFindPageReturnsActiveRows(t *testing.T) {
	ctx, repo, mockPool := setupCustomerRepo(t)
	defer mockPool.Close()

	query := `
        SELECT id, business_id, first_name, last_name, created_on, modified_on
        FROM customers
        WHERE deleted_on IS NULL
        ORDER BY id
        LIMIT $1 OFFSET $2`

	now := time.Now()
	mockPool.ExpectQuery(regexp.QuoteMeta(query)).WithArgs(2, 2).WillReturnRows(
		pgxmock.NewRows([]string{"id", "business_id", "first_name", "last_name", "created_on", "modified_on"}).
			AddRow(int64(3), "CU000000000003", "Carol", "Smith", now, nil).
			AddRow(int64(4), "CU000000000004", "David", "Brown", now, nil))

	countQuery := `SELECT COUNT(*) FROM customers WHERE deleted_on IS NULL`
	mockPool.ExpectQuery(regexp.QuoteMeta(countQuery)).WillReturnRows(
		pgxmock.NewRows([]string{"count"}).AddRow(int64(7)))

	customers, total, err := repo.FindPage(ctx, 1, 2)
	assert.NoError(t, err)
	assert.Len(t, customers, 2)
	assert.Equal(t, "CU000000000003", customers[0].BusinessID)
	assert.Equal(t, int64(7), total)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestCustomerGetByBusinessIDReturnOne(t *testing.T) {
	ctx, repo, mockPool := setupCustomerRepo(t)
	defer mockPool.Close()

	query := `
        SELECT id, business_id, first_name, last_name, created_on, modified_on
        FROM customers
        WHERE business_id = $1 AND deleted_on IS NULL`

	now := time.Now()
	mockPool.ExpectQuery(regexp.QuoteMeta(query)).WithArgs("CU000000000001").WillReturnRows(
		pgxmock.NewRows([]string{"id", "business_id", "first_name", "last_name", "created_on", "modified_on"}).
			AddRow(int64(1), "CU000000000001", "Alice", "Johnson", now, nil))

	cust, err := repo.GetByBusinessID(ctx, "CU000000000001")
	assert.NoError(t, err)
	assert.Equal(t, int64(1), cust.ID)
	assert.Equal(t, "Alice", cust.FirstName)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestCustomerGetByBusinessIDReturnNone(t *testing.T) {
	ctx, repo, mockPool := setupCustomerRepo(t)
	defer mockPool.Close()

	mockPool.ExpectQuery("SELECT id, business_id").WithArgs("CU999999999999").WillReturnError(pgx.ErrNoRows)

	cust, err := repo.GetByBusinessID(ctx, "CU999999999999")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	assert.Nil(t, cust)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestCustomerSoftDeleteWhenSuccess(t *testing.T) {
	ctx, repo, mockPool := setupCustomerRepo(t)
	defer mockPool.Close()

	query := `UPDATE customers SET deleted_on = NOW() WHERE id = $1 AND deleted_on IS NULL`

	mockPool.ExpectExec(regexp.QuoteMeta(query)).WithArgs(int64(1)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := repo.SoftDelete(ctx, 1)
	assert.NoError(t, err)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestCustomerSoftDeleteWhenAlreadyDeleted(t *testing.T) {
	ctx, repo, mockPool := setupCustomerRepo(t)
	defer mockPool.Close()

	query := `UPDATE customers SET deleted_on = NOW() WHERE id = $1 AND deleted_on IS NULL`

	mockPool.ExpectExec(regexp.QuoteMeta(query)).WithArgs(int64(1)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.SoftDelete(ctx, 1)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestCustomerPurgeDeletedBeforeSkipsReferencedCustomers(t *testing.T) {
	ctx, repo, mockPool := setupCustomerRepo(t)
	defer mockPool.Close()

	cutoff := time.Now().AddDate(0, 0, -30)
	mockPool.ExpectExec("DELETE FROM customers").WithArgs(cutoff).
		WillReturnResult(pgxmock.NewResult("DELETE", 2))

	purged, err := repo.PurgeDeletedBefore(ctx, cutoff)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), purged)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}
