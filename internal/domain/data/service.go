// Package data implements the create/find/delete/paginate semantics shared by
// every entity type. A concrete service supplies the entity specific pieces
// through the Mapper capability set and a Store; the generic Service derives
// the rest, so business id translation and soft delete behave identically for
// all entities.
package data

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"account-service/internal/domain/record"
	"account-service/internal/event"
	"account-service/internal/pkg/apperrors"
	"account-service/internal/pkg/businessid"
)

// Store is the persistence boundary for one entity type. Every read excludes
// soft deleted rows; implementations enforce that in the query itself, not as
// an opt-in flag.
type Store[E record.Entity] interface {
	Insert(ctx context.Context, ent E) error
	FindPage(ctx context.Context, pageNo, size int) ([]E, int64, error)
	GetByBusinessID(ctx context.Context, bid string) (E, error)
	SoftDelete(ctx context.Context, id int64) error
}

// Mapper supplies the entity specific callbacks of a concrete service.
// MapEntity may fail, e.g. when a cross reference in the request does not
// resolve; the returned entity has not been persisted yet.
type Mapper[REQ, RES any, E record.Entity] interface {
	MapEntity(ctx context.Context, req REQ) (E, error)
	MapResponse(ent E) RES
}

type Service[REQ, RES any, E record.Entity] struct {
	kind   businessid.Kind
	mapper Mapper[REQ, RES, E]
	store  Store[E]
	pub    event.Publisher
	logger *slog.Logger
}

func NewService[REQ, RES any, E record.Entity](
	kind businessid.Kind,
	mapper Mapper[REQ, RES, E],
	store Store[E],
	pub event.Publisher,
	logger *slog.Logger,
) *Service[REQ, RES, E] {
	if mapper == nil {
		panic("mapper cannot be nil")
	}
	if store == nil {
		panic("store cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Service[REQ, RES, E]{
		kind:   kind,
		mapper: mapper,
		store:  store,
		pub:    pub,
		logger: logger.With("component", kind.Name()+"Service"),
	}
}

// Create maps the request to an unsaved entity, assigns the business id and
// creation timestamp exactly once, persists it, and returns the mapped
// response. A unique constraint violation from the store is propagated as a
// fatal error, never retried.
func (s *Service[REQ, RES, E]) Create(ctx context.Context, req REQ) (RES, error) {
	var zero RES
	s.logger.InfoContext(ctx, "Creating entity", slog.String("entity", s.kind.Name()))

	ent, err := s.mapper.MapEntity(ctx, req)
	if err != nil {
		return zero, err
	}

	base := ent.Record()
	base.BusinessID = businessid.New(s.kind)
	base.CreatedOn = time.Now()

	if err := s.store.Insert(ctx, ent); err != nil {
		s.logger.ErrorContext(ctx, "Store failed to insert entity", slog.Any("error", err))
		return zero, fmt.Errorf("failed to create %s: %w", s.kind.Name(), err)
	}

	s.logger.InfoContext(ctx, "Entity created", slog.String("businessId", base.BusinessID))
	s.publish(ctx, event.ActionCreated, base.BusinessID)
	return s.mapper.MapResponse(ent), nil
}

// FindAll returns page pageNo of at most size entities, excluding soft
// deleted rows. A page past the end of the data yields empty content with
// accurate totals.
func (s *Service[REQ, RES, E]) FindAll(ctx context.Context, size, pageNo int) (PageResponse[RES], error) {
	s.logger.InfoContext(ctx, "Retrieving entities",
		slog.String("entity", s.kind.Name()), slog.Int("pageNo", pageNo), slog.Int("size", size))

	items, total, err := s.store.FindPage(ctx, pageNo, size)
	if err != nil {
		s.logger.ErrorContext(ctx, "Store failed to list entities", slog.Any("error", err))
		return PageResponse[RES]{}, fmt.Errorf("failed to list %s: %w", s.kind.Name(), err)
	}
	return MapPage(items, pageNo, size, total, s.mapper.MapResponse), nil
}

// FindByBid returns the mapped entity with the given business id, or a
// NotFoundError tagged with field "bid".
func (s *Service[REQ, RES, E]) FindByBid(ctx context.Context, bid string) (RES, error) {
	var zero RES
	s.logger.InfoContext(ctx, "Finding entity",
		slog.String("entity", s.kind.Name()), slog.String("bid", bid))

	ent, err := s.getByBid(ctx, bid)
	if err != nil {
		return zero, err
	}
	return s.mapper.MapResponse(ent), nil
}

// Delete soft deletes the entity with the given business id. Deleting an
// absent or already deleted bid yields not-found, not a no-op success.
func (s *Service[REQ, RES, E]) Delete(ctx context.Context, bid string) error {
	s.logger.InfoContext(ctx, "Deleting entity",
		slog.String("entity", s.kind.Name()), slog.String("bid", bid))

	ent, err := s.getByBid(ctx, bid)
	if err != nil {
		return err
	}
	if err := s.store.SoftDelete(ctx, ent.Record().ID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return s.notFound(bid)
		}
		s.logger.ErrorContext(ctx, "Store failed to soft delete entity", slog.Any("error", err))
		return fmt.Errorf("failed to delete %s: %w", s.kind.Name(), err)
	}

	s.publish(ctx, event.ActionDeleted, bid)
	return nil
}

// GetByBusinessID is the raw lookup used by services resolving a cross
// reference without triggering the not-found message themselves. Absence is
// reported as the bare apperrors.ErrNotFound sentinel.
func (s *Service[REQ, RES, E]) GetByBusinessID(ctx context.Context, bid string) (E, error) {
	return s.store.GetByBusinessID(ctx, bid)
}

func (s *Service[REQ, RES, E]) getByBid(ctx context.Context, bid string) (E, error) {
	ent, err := s.store.GetByBusinessID(ctx, bid)
	if err != nil {
		var zero E
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.WarnContext(ctx, "Entity not found",
				slog.String("entity", s.kind.Name()), slog.String("bid", bid))
			return zero, s.notFound(bid)
		}
		s.logger.ErrorContext(ctx, "Store failed to get entity by business id", slog.Any("error", err))
		return zero, fmt.Errorf("failed to get %s by bid: %w", s.kind.Name(), err)
	}
	return ent, nil
}

func (s *Service[REQ, RES, E]) notFound(bid string) error {
	return apperrors.NewNotFoundError("bid", fmt.Sprintf("%s not found with bid '%s'", s.kind.Name(), bid))
}

// publish is best effort: a broker failure is logged and never fails the
// request that triggered it.
func (s *Service[REQ, RES, E]) publish(ctx context.Context, action, bid string) {
	if s.pub == nil {
		return
	}
	evt := event.NewEntityEvent(s.kind.RoutingName(), action, bid)
	if err := s.pub.PublishEntityEvent(ctx, evt); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish entity event",
			slog.String("action", action), slog.Any("error", err))
	}
}
