package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iho/yieldledger/internal/adapter/http/dto"
	"github.com/iho/yieldledger/internal/adapter/http/middleware"
	"github.com/iho/yieldledger/internal/domain"
	"github.com/iho/yieldledger/internal/usecase"
)

// PayoutService defines the behavior needed by PayoutHandler.
type PayoutService interface {
	ProcessPayout(ctx context.Context, input usecase.ProcessPayoutInput) (*usecase.PayoutResult, error)
	ListPayouts(ctx context.Context, depositID string) ([]*domain.YieldPayout, error)
	PreviewSchedule(ctx context.Context, depositID string, asOf time.Time) (*usecase.Schedule, error)
	RunDuePayouts(ctx context.Context, input usecase.RunDuePayoutsInput) (*usecase.BatchResult, error)
}

// PayoutHandler handles yield payout HTTP requests.
type PayoutHandler struct {
	payoutUC PayoutService
}

// NewPayoutHandler creates a new PayoutHandler.
func NewPayoutHandler(payoutUC PayoutService) *PayoutHandler {
	return &PayoutHandler{payoutUC: payoutUC}
}

// Process pays one deposit for the requested date.
func (h *PayoutHandler) Process(w http.ResponseWriter, r *http.Request) {
	var req dto.ProcessPayoutRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput(chi.URLParam(r, "id"), middleware.ActorID(r.Context()))
	if err != nil {
		writeDomainError(w, "invalid request body", err)
		return
	}

	result, err := h.payoutUC.ProcessPayout(r.Context(), input)
	if err != nil {
		writeDomainError(w, "failed to process payout", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.PayoutFromDomain(result.Payout))
}

// List returns a deposit's payout history, newest first.
func (h *PayoutHandler) List(w http.ResponseWriter, r *http.Request) {
	payouts, err := h.payoutUC.ListPayouts(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, "failed to list payouts", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ListPayoutsResponse{
		Payouts: dto.PayoutsFromDomain(payouts),
		Total:   int64(len(payouts)),
	})
}

// Schedule previews a deposit's next payout. ?as_of defaults to today.
func (h *PayoutHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	asOf, err := dto.ParseDateParam(r.URL.Query().Get("as_of"))
	if err != nil {
		writeDomainError(w, "invalid as_of date", err)
		return
	}

	var at time.Time
	if asOf != nil {
		at = *asOf
	}

	schedule, err := h.payoutUC.PreviewSchedule(r.Context(), chi.URLParam(r, "id"), at)
	if err != nil {
		writeDomainError(w, "failed to preview schedule", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ScheduleFromUseCase(schedule))
}

// Run starts a batch over all due deposits. An empty body runs as of today.
func (h *PayoutHandler) Run(w http.ResponseWriter, r *http.Request) {
	var req dto.RunPayoutsRequest
	if err := decodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput(middleware.ActorID(r.Context()))
	if err != nil {
		writeDomainError(w, "invalid request body", err)
		return
	}

	result, err := h.payoutUC.RunDuePayouts(r.Context(), input)
	if err != nil {
		writeDomainError(w, "failed to run payouts", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.BatchResultFromUseCase(result))
}
