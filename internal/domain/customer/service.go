package customer

import (
	"context"
	"log/slog"

	"account-service/internal/domain/data"
	"account-service/internal/event"
	"account-service/internal/pkg/businessid"
)

type CustomerService interface {
	Create(ctx context.Context, req CreateRequest) (Response, error)
	FindAll(ctx context.Context, size, pageNo int) (data.PageResponse[Response], error)
	FindByBid(ctx context.Context, bid string) (Response, error)
	Delete(ctx context.Context, bid string) error

	// GetByBusinessID is the raw lookup used by other services to resolve a
	// customer reference without triggering not-found semantics themselves.
	GetByBusinessID(ctx context.Context, bid string) (*Customer, error)
}

type customerService struct {
	*data.Service[CreateRequest, Response, *Customer]
}

var _ CustomerService = (*customerService)(nil)

func NewCustomerService(store Store, pub event.Publisher, logger *slog.Logger) CustomerService {
	svc := &customerService{}
	svc.Service = data.NewService[CreateRequest, Response, *Customer](businessid.Customer, svc, store, pub, logger)
	return svc
}

func (s *customerService) MapEntity(ctx context.Context, req CreateRequest) (*Customer, error) {
	return &Customer{
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}, nil
}

func (s *customerService) MapResponse(cust *Customer) Response {
	return Response{
		FirstName:  cust.FirstName,
		LastName:   cust.LastName,
		CustomerID: cust.BusinessID,
		CreatedOn:  cust.CreatedOn,
		ModifiedOn: cust.ModifiedOn,
	}
}
