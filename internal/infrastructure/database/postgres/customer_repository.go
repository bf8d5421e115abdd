package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"account-service/internal/domain/customer"
	"account-service/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pashagolub/pgxmock/v4"
)

type DBPool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Close()
}

var _ DBPool = (*pgxpool.Pool)(nil)

var _ DBPool = (pgxmock.PgxPoolIface)(nil)

var errMsgFormat = "%w: %w"

type CustomerRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ customer.Store = (*CustomerRepository)(nil)

func NewCustomerRepository(db DBPool, logger *slog.Logger) *CustomerRepository {
	if db == nil {
		panic("DBPool cannot be nil for CustomerRepository")
	}
	return &CustomerRepository{db: db, logger: logger.With("component", "CustomerRepository")}
}

func (r *CustomerRepository) Insert(ctx context.Context, cust *customer.Customer) error {
	r.logger.DebugContext(ctx, "Inserting customer", slog.String("businessId", cust.BusinessID))

	query := `
        INSERT INTO customers (business_id, first_name, last_name, created_on)
        VALUES ($1, $2, $3, $4)
        RETURNING id`

	err := r.db.QueryRow(ctx, query,
		cust.BusinessID,
		cust.FirstName,
		cust.LastName,
		cust.CreatedOn,
	).Scan(&cust.ID)

	if err != nil {
		translatedErr := translateDBError(err, r.logger)
		if errors.Is(translatedErr, apperrors.ErrAlreadyExists) {
			r.logger.WarnContext(ctx, "Customer insert hit unique constraint", slog.String("businessId", cust.BusinessID))
			return translatedErr
		}
		r.logger.ErrorContext(ctx, "Failed to insert customer", slog.Any("error", err))
		return fmt.Errorf("%w: failed to insert customer: %w", apperrors.ErrDatabase, err)
	}

	r.logger.InfoContext(ctx, "Customer inserted", slog.String("businessId", cust.BusinessID))
	return nil
}

func (r *CustomerRepository) FindPage(ctx context.Context, pageNo, size int) ([]*customer.Customer, int64, error) {
	logCtx := r.logger.With(slog.Int("pageNo", pageNo), slog.Int("size", size))
	logCtx.DebugContext(ctx, "Listing customers page")

	query := `
        SELECT id, business_id, first_name, last_name, created_on, modified_on
        FROM customers
        WHERE deleted_on IS NULL
        ORDER BY id
        LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, size, pageNo*size)
	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to query customers page", slog.Any("error", err))
		return nil, 0, translateDBError(err, r.logger)
	}
	defer rows.Close()

	customers := make([]*customer.Customer, 0, size)
	for rows.Next() {
		cust, err := scanCustomer(rows)
		if err != nil {
			logCtx.ErrorContext(ctx, "Failed to scan customer row", slog.Any("error", err))
			return nil, 0, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
		}
		customers = append(customers, cust)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}

	total, err := r.countActive(ctx)
	if err != nil {
		return nil, 0, err
	}
	return customers, total, nil
}

func (r *CustomerRepository) countActive(ctx context.Context) (int64, error) {
	var total int64
	query := `SELECT COUNT(*) FROM customers WHERE deleted_on IS NULL`
	if err := r.db.QueryRow(ctx, query).Scan(&total); err != nil {
		r.logger.ErrorContext(ctx, "Failed to count customers", slog.Any("error", err))
		return 0, translateDBError(err, r.logger)
	}
	return total, nil
}

func (r *CustomerRepository) GetByBusinessID(ctx context.Context, bid string) (*customer.Customer, error) {
	r.logger.DebugContext(ctx, "Getting customer by business id", slog.String("bid", bid))

	query := `
        SELECT id, business_id, first_name, last_name, created_on, modified_on
        FROM customers
        WHERE business_id = $1 AND deleted_on IS NULL`

	cust, err := scanCustomer(r.db.QueryRow(ctx, query, bid))
	if err != nil {
		return nil, translateDBError(err, r.logger)
	}
	return cust, nil
}

func (r *CustomerRepository) SoftDelete(ctx context.Context, id int64) error {
	r.logger.DebugContext(ctx, "Soft deleting customer", slog.Int64("id", id))

	query := `UPDATE customers SET deleted_on = NOW() WHERE id = $1 AND deleted_on IS NULL`

	cmdTag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to soft delete customer", slog.Any("error", err))
		return translateDBError(err, r.logger)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *CustomerRepository) PurgeDeletedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	// Customers still referenced by accounts are kept so the foreign key
	// stays intact; they become purgeable once their accounts are gone.
	query := `
        DELETE FROM customers c
        WHERE c.deleted_on IS NOT NULL
          AND c.deleted_on < $1
          AND NOT EXISTS (SELECT 1 FROM accounts a WHERE a.customer_id = c.id)`

	cmdTag, err := r.db.Exec(ctx, query, cutoff)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to purge deleted customers", slog.Any("error", err))
		return 0, translateDBError(err, r.logger)
	}
	return cmdTag.RowsAffected(), nil
}

func scanCustomer(row pgx.Row) (*customer.Customer, error) {
	var cust customer.Customer
	err := row.Scan(
		&cust.ID,
		&cust.BusinessID,
		&cust.FirstName,
		&cust.LastName,
		&cust.CreatedOn,
		&cust.ModifiedOn,
	)
	if err != nil {
		return nil, err
	}
	return &cust, nil
}

func translateDBError(err error, contextLogger *slog.Logger) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			contextLogger.Warn("Database unique constraint violation", "detail", pgErr.Detail, "constraint", pgErr.ConstraintName)
			return fmt.Errorf("%w: %s", apperrors.ErrAlreadyExists, pgErr.ConstraintName)
		}

		contextLogger.Error("PostgreSQL specific error", "code", pgErr.Code, "message", pgErr.Message, "detail", pgErr.Detail)
		return fmt.Errorf("%w: db error code %s", apperrors.ErrDatabase, pgErr.Code)
	}

	contextLogger.Error("Generic database error", "error", err)
	return fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
}
