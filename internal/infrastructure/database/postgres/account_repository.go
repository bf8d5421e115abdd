package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"account-service/internal/domain/account"
	"account-service/internal/domain/customer"
	"account-service/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
)

// Account reads join the owning customer so responses can surface its
// business id. The join deliberately ignores the customer's deleted_on:
// deleting a customer does not cascade to its accounts.
const accountSelectColumns = `
        a.id, a.business_id, a.name, a.description, a.sort_code, a.number, a.currency,
        a.created_on, a.modified_on, c.id, c.business_id`

type AccountRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ account.Store = (*AccountRepository)(nil)

func NewAccountRepository(db DBPool, logger *slog.Logger) *AccountRepository {
	if db == nil {
		panic("DBPool cannot be nil for AccountRepository")
	}
	return &AccountRepository{db: db, logger: logger.With("component", "AccountRepository")}
}

func (r *AccountRepository) Insert(ctx context.Context, acc *account.Account) error {
	r.logger.DebugContext(ctx, "Inserting account", slog.String("businessId", acc.BusinessID))

	query := `
        INSERT INTO accounts (business_id, name, description, sort_code, number, currency, customer_id, created_on)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id`

	err := r.db.QueryRow(ctx, query,
		acc.BusinessID,
		acc.Name,
		acc.Description,
		acc.SortCode,
		acc.Number,
		acc.Currency,
		acc.Customer.ID,
		acc.CreatedOn,
	).Scan(&acc.ID)

	if err != nil {
		translatedErr := translateDBError(err, r.logger)
		if errors.Is(translatedErr, apperrors.ErrAlreadyExists) {
			r.logger.WarnContext(ctx, "Account insert hit unique constraint", slog.String("businessId", acc.BusinessID))
			return translatedErr
		}
		r.logger.ErrorContext(ctx, "Failed to insert account", slog.Any("error", err))
		return fmt.Errorf("%w: failed to insert account: %w", apperrors.ErrDatabase, err)
	}

	r.logger.InfoContext(ctx, "Account inserted", slog.String("businessId", acc.BusinessID))
	return nil
}

func (r *AccountRepository) FindPage(ctx context.Context, pageNo, size int) ([]*account.Account, int64, error) {
	query := `
        SELECT ` + accountSelectColumns + `
        FROM accounts a
        JOIN customers c ON c.id = a.customer_id
        WHERE a.deleted_on IS NULL
        ORDER BY a.id
        LIMIT $1 OFFSET $2`

	accounts, err := r.queryAccounts(ctx, query, size, pageNo*size)
	if err != nil {
		return nil, 0, err
	}

	total, err := r.countActive(ctx)
	if err != nil {
		return nil, 0, err
	}
	return accounts, total, nil
}

func (r *AccountRepository) FindPageByCustomer(ctx context.Context, customerID int64, pageNo, size int) ([]*account.Account, int64, error) {
	logCtx := r.logger.With(slog.Int64("customerId", customerID))
	logCtx.DebugContext(ctx, "Listing accounts page for customer")

	query := `
        SELECT ` + accountSelectColumns + `
        FROM accounts a
        JOIN customers c ON c.id = a.customer_id
        WHERE a.customer_id = $1 AND a.deleted_on IS NULL
        ORDER BY a.id
        LIMIT $2 OFFSET $3`

	accounts, err := r.queryAccounts(ctx, query, customerID, size, pageNo*size)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM accounts WHERE customer_id = $1 AND deleted_on IS NULL`
	if err := r.db.QueryRow(ctx, countQuery, customerID).Scan(&total); err != nil {
		logCtx.ErrorContext(ctx, "Failed to count accounts for customer", slog.Any("error", err))
		return nil, 0, translateDBError(err, r.logger)
	}
	return accounts, total, nil
}

func (r *AccountRepository) countActive(ctx context.Context) (int64, error) {
	var total int64
	query := `SELECT COUNT(*) FROM accounts WHERE deleted_on IS NULL`
	if err := r.db.QueryRow(ctx, query).Scan(&total); err != nil {
		r.logger.ErrorContext(ctx, "Failed to count accounts", slog.Any("error", err))
		return 0, translateDBError(err, r.logger)
	}
	return total, nil
}

func (r *AccountRepository) GetByBusinessID(ctx context.Context, bid string) (*account.Account, error) {
	r.logger.DebugContext(ctx, "Getting account by business id", slog.String("bid", bid))

	query := `
        SELECT ` + accountSelectColumns + `
        FROM accounts a
        JOIN customers c ON c.id = a.customer_id
        WHERE a.business_id = $1 AND a.deleted_on IS NULL`

	acc, err := scanAccount(r.db.QueryRow(ctx, query, bid))
	if err != nil {
		return nil, translateDBError(err, r.logger)
	}
	return acc, nil
}

func (r *AccountRepository) SoftDelete(ctx context.Context, id int64) error {
	r.logger.DebugContext(ctx, "Soft deleting account", slog.Int64("id", id))

	query := `UPDATE accounts SET deleted_on = NOW() WHERE id = $1 AND deleted_on IS NULL`

	cmdTag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to soft delete account", slog.Any("error", err))
		return translateDBError(err, r.logger)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *AccountRepository) PurgeDeletedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `DELETE FROM accounts WHERE deleted_on IS NOT NULL AND deleted_on < $1`

	cmdTag, err := r.db.Exec(ctx, query, cutoff)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to purge deleted accounts", slog.Any("error", err))
		return 0, translateDBError(err, r.logger)
	}
	return cmdTag.RowsAffected(), nil
}

func (r *AccountRepository) queryAccounts(ctx context.Context, query string, args ...any) ([]*account.Account, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query accounts", slog.Any("error", err))
		return nil, translateDBError(err, r.logger)
	}
	defer rows.Close()

	accounts := make([]*account.Account, 0)
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			r.logger.ErrorContext(ctx, "Failed to scan account row", slog.Any("error", err))
			return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
		}
		accounts = append(accounts, acc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return accounts, nil
}

func scanAccount(row pgx.Row) (*account.Account, error) {
	var acc account.Account
	var cust customer.Customer
	err := row.Scan(
		&acc.ID,
		&acc.BusinessID,
		&acc.Name,
		&acc.Description,
		&acc.SortCode,
		&acc.Number,
		&acc.Currency,
		&acc.CreatedOn,
		&acc.ModifiedOn,
		&cust.ID,
		&cust.BusinessID,
	)
	if err != nil {
		return nil, err
	}
	acc.Customer = &cust
	return &acc, nil
}
