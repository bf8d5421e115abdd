package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"account-service/internal/domain/account"
	"account-service/internal/domain/customer"
	"account-service/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
)

var accountRowColumns = []string{
	"id", "business_id", "name", "description", "sort_code", "number", "currency",
	"created_on", "modified_on", "c.id", "c.business_id",
}

func newTestAccount() *account.Account {
	owner := &customer.Customer{FirstName: "Alice", LastName: "Johnson"}
	owner.ID = 3
	owner.BusinessID = "CU000000000001"

	acc := &account.Account{
		Name:        "daily.expenses",
		Description: "Daily expenses account",
		SortCode:    "123456",
		Number:      12345678,
		Currency:    "GBP",
		Customer:    owner,
	}
	acc.BusinessID = "AC000000000011"
	acc.CreatedOn = time.Now()
	return acc
}

func setupAccountRepo(t *testing.T) (context.Context, *AccountRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mockPool, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to open a stub database connection: %v", err)
	}

	ctx := context.Background()
	repo := NewAccountRepository(mockPool, testLogger)

	return ctx, repo, mockPool
}

func TestAccountInsertWhenSuccess(t *testing.T) {
	ctx, repo, mockPool := setupAccountRepo(t)
	defer mockPool.Close()
	acc := newTestAccount()

	query := `
        INSERT INTO accounts (business_id, name, description, sort_code, number, currency, customer_id, created_on)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id`

	mockPool.ExpectQuery(regexp.QuoteMeta(query)).WithArgs(
		acc.BusinessID,
		acc.Name,
		acc.Description,
		acc.SortCode,
		acc.Number,
		acc.Currency,
		acc.Customer.ID,
		acc.CreatedOn,
	).WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(11)))

	err := repo.Insert(ctx, acc)
	assert.NoError(t, err)
	assert.Equal(t, int64(11), acc.ID)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestAccountGetByBusinessIDReturnOne(t *testing.T) {
	ctx, repo, mockPool := setupAccountRepo(t)
	defer mockPool.Close()

	now := time.Now()
	mockPool.ExpectQuery("SELECT").WithArgs("AC000000000011").WillReturnRows(
		pgxmock.NewRows(accountRowColumns).
			AddRow(int64(11), "AC000000000011", "daily.expenses", "Daily expenses account",
				"123456", 12345678, "GBP", now, nil, int64(3), "CU000000000001"))

	acc, err := repo.GetByBusinessID(ctx, "AC000000000011")
	assert.NoError(t, err)
	assert.Equal(t, int64(11), acc.ID)
	assert.Equal(t, "AC000000000011", acc.BusinessID)
	assert.Equal(t, "CU000000000001", acc.Customer.BusinessID)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestAccountGetByBusinessIDReturnNone(t *testing.T) {
	ctx, repo, mockPool := setupAccountRepo(t)
	defer mockPool.Close()

	mockPool.ExpectQuery("SELECT").WithArgs("AC999999999999").WillReturnError(pgx.ErrNoRows)

	acc, err := repo.GetByBusinessID(ctx, "AC999999999999")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	assert.Nil(t, acc)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestAccountFindPageReturnsActiveRows(t *testing.T) {
	ctx, repo, mockPool := setupAccountRepo(t)
	defer mockPool.Close()

	now := time.Now()
	mockPool.ExpectQuery("SELECT").WithArgs(25, 0).WillReturnRows(
		pgxmock.NewRows(accountRowColumns).
			AddRow(int64(11), "AC000000000011", "daily.expenses", "Daily expenses account",
				"123456", 12345678, "GBP", now, nil, int64(3), "CU000000000001"))

	mockPool.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM accounts WHERE deleted_on IS NULL`)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(1)))

	accounts, total, err := repo.FindPage(ctx, 0, 25)
	assert.NoError(t, err)
	assert.Len(t, accounts, 1)
	assert.Equal(t, int64(1), total)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestAccountFindPageByCustomer(t *testing.T) {
	ctx, repo, mockPool := setupAccountRepo(t)
	defer mockPool.Close()

	now := time.Now()
	mockPool.ExpectQuery("SELECT").WithArgs(int64(3), 25, 0).WillReturnRows(
		pgxmock.NewRows(accountRowColumns).
			AddRow(int64(11), "AC000000000011", "daily.expenses", "Daily expenses account",
				"123456", 12345678, "GBP", now, nil, int64(3), "CU000000000001").
			AddRow(int64(12), "AC000000000012", "joint.savings", "Joint savings account",
				"654321", 87654321, "EUR", now, nil, int64(3), "CU000000000001"))

	countQuery := `SELECT COUNT(*) FROM accounts WHERE customer_id = $1 AND deleted_on IS NULL`
	mockPool.ExpectQuery(regexp.QuoteMeta(countQuery)).WithArgs(int64(3)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(2)))

	accounts, total, err := repo.FindPageByCustomer(ctx, 3, 0, 25)
	assert.NoError(t, err)
	assert.Len(t, accounts, 2)
	assert.Equal(t, "AC000000000012", accounts[1].BusinessID)
	assert.Equal(t, int64(2), total)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestAccountSoftDeleteWhenAlreadyDeleted(t *testing.T) {
	ctx, repo, mockPool := setupAccountRepo(t)
	defer mockPool.Close()

	query := `UPDATE accounts SET deleted_on = NOW() WHERE id = $1 AND deleted_on IS NULL`

	mockPool.ExpectExec(regexp.QuoteMeta(query)).WithArgs(int64(11)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.SoftDelete(ctx, 11)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestAccountPurgeDeletedBefore(t *testing.T) {
	ctx, repo, mockPool := setupAccountRepo(t)
	defer mockPool.Close()

	cutoff := time.Now().AddDate(0, 0, -30)
	mockPool.ExpectExec("DELETE FROM accounts").WithArgs(cutoff).
		WillReturnResult(pgxmock.NewResult("DELETE", 3))

	purged, err := repo.PurgeDeletedBefore(ctx, cutoff)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), purged)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}
