package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"account-service/internal/api/handler/dto"
	"account-service/internal/domain/customer"
	"account-service/internal/pkg/apperrors"
	"account-service/internal/pkg/validation"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

const (
	defaultPageSize = 25
	maxPageSize     = 500

	errMessagePrefix = "Issue while processing request : %s"
)

type CustomerHandler struct {
	service  customer.CustomerService
	validate *validator.Validate
	logger   *slog.Logger
}

func NewCustomerHandler(s customer.CustomerService, l *slog.Logger) *CustomerHandler {
	if s == nil {
		panic("customer service cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &CustomerHandler{
		service:  s,
		validate: validation.New(),
		logger:   l.With("component", "CustomerHandler"),
	}
}

func decodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return fmt.Errorf("no request body")
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Default().Error("Failed to marshal JSON response", "error", err)
		http.Error(w, `{"message":"Internal server error","severity":"FATAL","type":"InternalError"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(response)
}

// respondError is the single point where domain failures become the error
// body: not-found maps to 404 with severity DATA, validation failures to 400
// with severity DATA, anything else to 500 with severity FATAL.
func respondError(w http.ResponseWriter, err error) {
	status, severity, errType, field := http.StatusInternalServerError, dto.SeverityFatal, "InternalError", ""

	var notFoundErr *apperrors.NotFoundError
	var validationErr *apperrors.ValidationError

	switch {
	case errors.As(err, &notFoundErr):
		status, severity, errType, field = http.StatusNotFound, dto.SeverityData, "NotFoundError", notFoundErr.Field
	case errors.As(err, &validationErr):
		status, severity, errType, field = http.StatusBadRequest, dto.SeverityData, "ValidationError", validationErr.Field
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrInvalidArgument):
		status, severity, errType = http.StatusBadRequest, dto.SeverityData, "ValidationError"
	default:
		slog.Default().Error("Unhandled internal error", "error", err)
	}

	respondJSON(w, status, dto.ErrorMessage{
		Message:  fmt.Sprintf(errMessagePrefix, err.Error()),
		Field:    field,
		Severity: severity,
		Type:     errType,
	})
}

// parsePageParams reads size and pageNo query parameters with their defaults
// (25 and 0). Size is capped at 500 at this boundary.
func parsePageParams(r *http.Request) (size, pageNo int, err error) {
	size, pageNo = defaultPageSize, 0

	if raw := r.URL.Query().Get("size"); raw != "" {
		size, err = strconv.Atoi(raw)
		if err != nil || size < 1 {
			return 0, 0, apperrors.NewValidationError("size", "size must be a positive integer")
		}
		if size > maxPageSize {
			return 0, 0, apperrors.NewValidationError("size", fmt.Sprintf("size must not exceed %d", maxPageSize))
		}
	}
	if raw := r.URL.Query().Get("pageNo"); raw != "" {
		pageNo, err = strconv.Atoi(raw)
		if err != nil || pageNo < 0 {
			return 0, 0, apperrors.NewValidationError("pageNo", "pageNo must be zero or a positive integer")
		}
	}
	return size, pageNo, nil
}

func customerBidFromURL(r *http.Request) (string, error) {
	bid := chi.URLParam(r, "bId")
	if !validation.MatchesCustomerBid(bid) {
		return "", apperrors.NewValidationError("bId", fmt.Sprintf("'%s' is not a valid customer business id", bid))
	}
	return bid, nil
}

// CreateCustomer handles POST /customers
// @Summary Create a new customer
// @Description Creates a new customer with first and last name and returns it with its assigned business id.
// @Tags Customers
// @Accept json
// @Produce json
// @Param request body customer.CreateRequest true "Customer creation request"
// @Success 201 {object} customer.Response "Customer successfully created"
// @Failure 400 {object} dto.ErrorMessage "Invalid request payload"
// @Failure 500 {object} dto.ErrorMessage "Internal server error"
// @Router /customers [post]
func (h *CustomerHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	h.logger.DebugContext(r.Context(), "Received create customer request")

	var req customer.CreateRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.logger.WarnContext(r.Context(), "Request validation failed", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrValidation, err))
		return
	}

	resp, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to create customer", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Customer created successfully", slog.String("customerId", resp.CustomerID))
	respondJSON(w, http.StatusCreated, resp)
}

// ListCustomers handles GET /customers
// @Summary List customers
// @Description Returns one page of customers, excluding deleted ones.
// @Tags Customers
// @Produce json
// @Param size query int false "Page size, at most 500" default(25)
// @Param pageNo query int false "Zero based page number" default(0)
// @Success 200 {object} data.PageResponse[customer.Response] "Page of customers"
// @Failure 400 {object} dto.ErrorMessage "Invalid paging parameters"
// @Failure 500 {object} dto.ErrorMessage "Internal server error"
// @Router /customers [get]
func (h *CustomerHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	size, pageNo, err := parsePageParams(r)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Invalid paging parameters", slog.Any("error", err))
		respondError(w, err)
		return
	}

	page, err := h.service.FindAll(r.Context(), size, pageNo)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to list customers", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Customers listed successfully", slog.Int("count", page.Size))
	respondJSON(w, http.StatusOK, page)
}

// GetCustomerByBid handles GET /customers/{bId}
// @Summary Get a customer by business id
// @Description Returns the customer with the given business id.
// @Tags Customers
// @Produce json
// @Param bId path string true "Customer business id" example(CU123456789012)
// @Success 200 {object} customer.Response "Customer details"
// @Failure 400 {object} dto.ErrorMessage "Malformed business id"
// @Failure 404 {object} dto.ErrorMessage "Customer not found"
// @Failure 500 {object} dto.ErrorMessage "Internal server error"
// @Router /customers/{bId} [get]
func (h *CustomerHandler) GetCustomerByBid(w http.ResponseWriter, r *http.Request) {
	bid, err := customerBidFromURL(r)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Invalid customer business id in URL", slog.Any("error", err))
		respondError(w, err)
		return
	}

	resp, err := h.service.FindByBid(r.Context(), bid)
	if err != nil {
		level := slog.LevelError
		if errors.Is(err, apperrors.ErrNotFound) {
			level = slog.LevelWarn
		}
		h.logger.Log(r.Context(), level, "Service failed to get customer", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Customer retrieved successfully", slog.String("customerId", resp.CustomerID))
	respondJSON(w, http.StatusOK, resp)
}

// DeleteCustomerByBid handles DELETE /customers/{bId}
// @Summary Soft delete a customer
// @Description Marks the customer as deleted; subsequent reads no longer return it.
// @Tags Customers
// @Produce json
// @Param bId path string true "Customer business id" example(CU123456789012)
// @Success 204 "Customer deleted"
// @Failure 400 {object} dto.ErrorMessage "Malformed business id"
// @Failure 404 {object} dto.ErrorMessage "Customer not found"
// @Failure 500 {object} dto.ErrorMessage "Internal server error"
// @Router /customers/{bId} [delete]
func (h *CustomerHandler) DeleteCustomerByBid(w http.ResponseWriter, r *http.Request) {
	bid, err := customerBidFromURL(r)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Invalid customer business id in URL", slog.Any("error", err))
		respondError(w, err)
		return
	}

	if err := h.service.Delete(r.Context(), bid); err != nil {
		level := slog.LevelError
		if errors.Is(err, apperrors.ErrNotFound) {
			level = slog.LevelWarn
		}
		h.logger.Log(r.Context(), level, "Service failed to delete customer", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Customer deleted successfully", slog.String("customerId", bid))
	w.WriteHeader(http.StatusNoContent)
}
