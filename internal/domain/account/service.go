package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"account-service/internal/domain/customer"
	"account-service/internal/domain/data"
	"account-service/internal/event"
	"account-service/internal/pkg/apperrors"
	"account-service/internal/pkg/businessid"
)

type AccountService interface {
	Create(ctx context.Context, req CreateRequest) (Response, error)
	FindAll(ctx context.Context, size, pageNo int) (data.PageResponse[Response], error)
	FindByBid(ctx context.Context, bid string) (Response, error)
	Delete(ctx context.Context, bid string) error

	// GetAccountsForACustomer lists the accounts owned by the customer with
	// the given business id, paginated like FindAll. An unknown or deleted
	// customer yields not-found before any account query runs.
	GetAccountsForACustomer(ctx context.Context, customerBid string, pageNo, size int) (data.PageResponse[Response], error)
}

type accountService struct {
	*data.Service[CreateRequest, Response, *Account]

	store     Store
	customers customer.CustomerService
	logger    *slog.Logger
}

var _ AccountService = (*accountService)(nil)

func NewAccountService(store Store, customers customer.CustomerService, pub event.Publisher, logger *slog.Logger) AccountService {
	if customers == nil {
		panic("customer service cannot be nil")
	}
	svc := &accountService{
		store:     store,
		customers: customers,
		logger:    logger.With("component", "AccountService"),
	}
	svc.Service = data.NewService[CreateRequest, Response, *Account](businessid.Account, svc, store, pub, logger)
	return svc
}

// MapEntity resolves the customer reference before the account is ever
// persisted; an unresolvable customerBid aborts the create with nothing
// written.
func (s *accountService) MapEntity(ctx context.Context, req CreateRequest) (*Account, error) {
	cust, err := s.resolveCustomer(ctx, req.CustomerBid)
	if err != nil {
		return nil, err
	}
	return &Account{
		Name:        req.Name,
		Description: req.Description,
		SortCode:    req.SortCode,
		Number:      req.Number,
		Currency:    req.Currency,
		Customer:    cust,
	}, nil
}

func (s *accountService) MapResponse(acc *Account) Response {
	return Response{
		Name:        acc.Name,
		Description: acc.Description,
		SortCode:    acc.SortCode,
		Number:      acc.Number,
		AccountID:   acc.BusinessID,
		CustomerID:  acc.Customer.BusinessID,
		Currency:    acc.Currency,
		CreatedOn:   acc.CreatedOn,
		ModifiedOn:  acc.ModifiedOn,
	}
}

func (s *accountService) GetAccountsForACustomer(ctx context.Context, customerBid string, pageNo, size int) (data.PageResponse[Response], error) {
	s.logger.InfoContext(ctx, "Finding all accounts for customer", slog.String("customerBid", customerBid))

	cust, err := s.resolveCustomer(ctx, customerBid)
	if err != nil {
		return data.PageResponse[Response]{}, err
	}

	items, total, err := s.store.FindPageByCustomer(ctx, cust.ID, pageNo, size)
	if err != nil {
		s.logger.ErrorContext(ctx, "Store failed to list accounts for customer", slog.Any("error", err))
		return data.PageResponse[Response]{}, fmt.Errorf("failed to list accounts for customer: %w", err)
	}
	return data.MapPage(items, pageNo, size, total, s.MapResponse), nil
}

func (s *accountService) resolveCustomer(ctx context.Context, bid string) (*customer.Customer, error) {
	cust, err := s.customers.GetByBusinessID(ctx, bid)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.WarnContext(ctx, "Customer reference did not resolve", slog.String("customerBid", bid))
			return nil, apperrors.NewNotFoundError("", fmt.Sprintf("Customer not found for bid '%s'", bid))
		}
		return nil, fmt.Errorf("failed to resolve customer reference: %w", err)
	}
	return cust, nil
}
