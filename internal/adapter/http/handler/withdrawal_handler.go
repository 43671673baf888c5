package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/yieldledger/internal/adapter/http/dto"
	"github.com/iho/yieldledger/internal/adapter/http/middleware"
	"github.com/iho/yieldledger/internal/domain"
	"github.com/iho/yieldledger/internal/usecase"
)

// WithdrawalService defines the behavior needed by WithdrawalHandler.
type WithdrawalService interface {
	RequestWithdrawal(ctx context.Context, input usecase.RequestWithdrawalInput) (*domain.WithdrawalRequest, error)
	ApproveWithdrawal(ctx context.Context, requestID, actorID string) (*domain.WithdrawalRequest, error)
	RejectWithdrawal(ctx context.Context, requestID, actorID, reason string) (*domain.WithdrawalRequest, error)
	CompleteWithdrawal(ctx context.Context, input usecase.CompleteWithdrawalInput) (*usecase.WithdrawalResult, error)
	GetWithdrawal(ctx context.Context, id string) (*domain.WithdrawalRequest, error)
	ListWithdrawals(ctx context.Context, input usecase.ListWithdrawalsInput) ([]*domain.WithdrawalRequest, error)
}

// WithdrawalHandler handles withdrawal request HTTP requests.
type WithdrawalHandler struct {
	withdrawalUC WithdrawalService
}

// NewWithdrawalHandler creates a new WithdrawalHandler.
func NewWithdrawalHandler(withdrawalUC WithdrawalService) *WithdrawalHandler {
	return &WithdrawalHandler{withdrawalUC: withdrawalUC}
}

// Create files a pending withdrawal request.
func (h *WithdrawalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateWithdrawalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeDomainError(w, "invalid request body", err)
		return
	}

	request, err := h.withdrawalUC.RequestWithdrawal(r.Context(), input)
	if err != nil {
		writeDomainError(w, "failed to request withdrawal", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.WithdrawalFromDomain(request))
}

// Get retrieves a withdrawal request by ID.
func (h *WithdrawalHandler) Get(w http.ResponseWriter, r *http.Request) {
	request, err := h.withdrawalUC.GetWithdrawal(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, "failed to get withdrawal", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.WithdrawalFromDomain(request))
}

// Approve moves a pending request to approved.
func (h *WithdrawalHandler) Approve(w http.ResponseWriter, r *http.Request) {
	request, err := h.withdrawalUC.ApproveWithdrawal(r.Context(), chi.URLParam(r, "id"), middleware.ActorID(r.Context()))
	if err != nil {
		writeDomainError(w, "failed to approve withdrawal", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.WithdrawalFromDomain(request))
}

// Reject rejects a pending or approved request with a reason.
func (h *WithdrawalHandler) Reject(w http.ResponseWriter, r *http.Request) {
	var req dto.RejectWithdrawalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	request, err := h.withdrawalUC.RejectWithdrawal(r.Context(), chi.URLParam(r, "id"), middleware.ActorID(r.Context()), req.Reason)
	if err != nil {
		writeDomainError(w, "failed to reject withdrawal", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.WithdrawalFromDomain(request))
}

// Complete debits the account and reduces the owner's deposits.
func (h *WithdrawalHandler) Complete(w http.ResponseWriter, r *http.Request) {
	result, err := h.withdrawalUC.CompleteWithdrawal(r.Context(), usecase.CompleteWithdrawalInput{
		RequestID: chi.URLParam(r, "id"),
		ActorID:   middleware.ActorID(r.Context()),
	})
	if err != nil {
		writeDomainError(w, "failed to complete withdrawal", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.WithdrawalResultFromUseCase(result))
}

// ListByAccount lists an account's withdrawal requests.
func (h *WithdrawalHandler) ListByAccount(w http.ResponseWriter, r *http.Request) {
	requests, err := h.withdrawalUC.ListWithdrawals(r.Context(), usecase.ListWithdrawalsInput{
		AccountID: chi.URLParam(r, "id"),
		Limit:     parseIntQuery(r, "limit", 20),
		Offset:    parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeDomainError(w, "failed to list withdrawals", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ListWithdrawalsResponse{
		Withdrawals: dto.WithdrawalsFromDomain(requests),
		Total:       int64(len(requests)),
	})
}
