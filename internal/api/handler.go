package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/eugenenazirov/cloakroom/internal/attendant"
	"github.com/eugenenazirov/cloakroom/internal/cloakroom"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

// Service is the cloakroom behaviour exposed over HTTP.
type Service interface {
	Deposit(ctx context.Context, items cloakroom.Items) (attendant.Receipt, error)
	Collect(ctx context.Context, token string) (attendant.Collection, error)
	Change(ctx context.Context, token string, items cloakroom.Items) (attendant.Receipt, error)
	ClosedLockers() []cloakroom.ClosedLocker
	LockerState(number int) cloakroom.SlotState
	Layout() attendant.Layout
	Audit() error
}

// Handler wires the cloakroom service into HTTP handlers.
type Handler struct {
	service  Service
	validate *validator.Validate

	clock func() time.Time
}

// HandlerOption configures Handler behaviour.
type HandlerOption func(*Handler)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.clock = clock
	}
}

// NewHandler constructs a Handler with the provided dependencies.
func NewHandler(service Service, opts ...HandlerOption) *Handler {
	validate := validator.New(validator.WithRequiredStructEnabled())
	// Registration only fails for an empty tag or nil func.
	_ = validate.RegisterValidation("token", isToken)

	h := &Handler{
		service:  service,
		validate: validate,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = r
	resp := healthResponse{
		Status:    "ok",
		Timestamp: h.clock(),
	}
	if err := h.service.Audit(); err != nil {
		resp.Status = "degraded"
		resp.Details = err.Error()
		writeJSON(w, http.StatusServiceUnavailable, resp)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleLayout(w http.ResponseWriter, r *http.Request) {
	_ = r
	layout := h.service.Layout()
	writeJSON(w, http.StatusOK, layoutResponse{
		NumLockers:        layout.NumLockers,
		MaxItemsPerLocker: layout.MaxItemsPerLocker,
		Occupancy:         layout.Occupancy,
	})
}

func (h *Handler) handleDeposit(w http.ResponseWriter, r *http.Request) {
	var req itemsRequest
	if !h.decode(w, r, &req) {
		return
	}

	receipt, err := h.service.Deposit(r.Context(), req.items())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, newReceiptResponse(receipt))
}

func (h *Handler) handleCollect(w http.ResponseWriter, r *http.Request) {
	var req collectRequest
	if !h.decode(w, r, &req) {
		return
	}

	collection, err := h.service.Collect(r.Context(), req.Key)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contentsResponse{
		LockerNumber: collection.LockerNumber,
		Items:        collection.Items,
		TotalItems:   collection.Items.Total(),
		Description:  collection.Items.String(),
	})
}

func (h *Handler) handleChange(w http.ResponseWriter, r *http.Request) {
	var req changeRequest
	if !h.decode(w, r, &req) {
		return
	}

	receipt, err := h.service.Change(r.Context(), req.Key, req.Items.items())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newReceiptResponse(receipt))
}

func (h *Handler) handleListLockers(w http.ResponseWriter, r *http.Request) {
	_ = r
	closed := h.service.ClosedLockers()
	lockers := make([]contentsResponse, 0, len(closed))
	for _, c := range closed {
		lockers = append(lockers, contentsResponse{
			LockerNumber: c.Number,
			Items:        c.Items,
			TotalItems:   c.Items.Total(),
			Description:  c.Items.String(),
		})
	}
	writeJSON(w, http.StatusOK, lockersResponse{Lockers: lockers})
}

func (h *Handler) handleLockerState(w http.ResponseWriter, r *http.Request) {
	number, err := strconv.Atoi(r.PathValue("number"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid locker number", "locker number must be an integer")
		return
	}

	state := h.service.LockerState(number)
	if state.Status == cloakroom.NonExistent {
		writeError(w, http.StatusNotFound, "Locker not found", "no locker with number "+strconv.Itoa(number))
		return
	}

	resp := stateResponse{
		LockerNumber: state.Number,
		State:        state.Status,
	}
	if state.Status == cloakroom.Closed {
		items := state.Items
		resp.Items = &items
		resp.Description = items.String()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", describeValidation(err))
		return false
	}
	return true
}

// isToken accepts a hyphenated UUID in either case. Tokens are matched
// case-insensitively by the key store.
func isToken(fl validator.FieldLevel) bool {
	token := strings.TrimSpace(fl.Field().String())
	if len(token) != 36 {
		return false
	}
	_, err := uuid.Parse(token)
	return err == nil
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "min", "max":
		return fe.Field() + " must be between 0 and 255"
	default:
		return fe.Field() + " is invalid"
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, attendant.ErrNoFreeLockers):
		writeError(w, http.StatusConflict, "No free lockers", err.Error(), "wait for a customer to collect their items")
	case errors.Is(err, attendant.ErrUnknownKey):
		writeError(w, http.StatusNotFound, "Key not found", err.Error())
	case errors.Is(err, cloakroom.ErrCapacityExceeded):
		writeError(w, http.StatusUnprocessableEntity, "Not enough space in locker", err.Error(), "reduce the number of items")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusServiceUnavailable, "Request cancelled", err.Error())
	default:
		writeInternalError(w, err)
	}
}

func requestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(requestIDContextKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message, details string, suggestion ...string) {
	resp := errorResponse{
		Error:   message,
		Details: details,
	}
	if len(suggestion) > 0 {
		resp.Suggestion = suggestion[0]
	}
	writeJSON(w, status, resp)
}

func writeInternalError(w http.ResponseWriter, err error) {
	writeError(w, http.StatusInternalServerError, "Internal error", err.Error())
}
