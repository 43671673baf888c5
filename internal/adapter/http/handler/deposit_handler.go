package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/iho/yieldledger/internal/adapter/http/dto"
	"github.com/iho/yieldledger/internal/adapter/http/middleware"
	"github.com/iho/yieldledger/internal/domain"
	"github.com/iho/yieldledger/internal/usecase"
)

// DepositService defines the behavior needed by DepositHandler.
type DepositService interface {
	CreateDeposit(ctx context.Context, input usecase.CreateDepositInput) (*domain.YieldDeposit, error)
	GetDeposit(ctx context.Context, id string) (*domain.YieldDeposit, error)
	UpdateDeposit(ctx context.Context, id string, patch domain.DepositPatch) (*domain.YieldDeposit, error)
	ListDepositsForOwner(ctx context.Context, ownerID string, activeOnly bool) ([]*domain.YieldDeposit, error)
}

// DepositHandler handles yield deposit HTTP requests.
type DepositHandler struct {
	depositUC DepositService
}

// NewDepositHandler creates a new DepositHandler.
func NewDepositHandler(depositUC DepositService) *DepositHandler {
	return &DepositHandler{depositUC: depositUC}
}

// Create registers a deposit on behalf of the calling actor.
func (h *DepositHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateDepositRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput(middleware.ActorID(r.Context()))
	if err != nil {
		writeDomainError(w, "invalid request body", err)
		return
	}

	deposit, err := h.depositUC.CreateDeposit(r.Context(), input)
	if err != nil {
		writeDomainError(w, "failed to create deposit", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.DepositFromDomain(deposit))
}

// Get retrieves a deposit by ID.
func (h *DepositHandler) Get(w http.ResponseWriter, r *http.Request) {
	deposit, err := h.depositUC.GetDeposit(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, "failed to get deposit", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.DepositFromDomain(deposit))
}

// Update applies an administrative patch.
func (h *DepositHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateDepositRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	patch, err := req.ToDomainPatch()
	if err != nil {
		writeDomainError(w, "invalid request body", err)
		return
	}

	deposit, err := h.depositUC.UpdateDeposit(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		writeDomainError(w, "failed to update deposit", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.DepositFromDomain(deposit))
}

// ListByOwner lists an owner's deposits, newest first. ?active=true keeps
// only active ones.
func (h *DepositHandler) ListByOwner(w http.ResponseWriter, r *http.Request) {
	activeOnly, _ := strconv.ParseBool(r.URL.Query().Get("active"))

	deposits, err := h.depositUC.ListDepositsForOwner(r.Context(), chi.URLParam(r, "ownerID"), activeOnly)
	if err != nil {
		writeDomainError(w, "failed to list deposits", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ListDepositsResponse{
		Deposits: dto.DepositsFromDomain(deposits),
		Total:    int64(len(deposits)),
	})
}
