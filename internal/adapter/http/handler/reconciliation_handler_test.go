package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/iho/yieldledger/internal/adapter/http/dto"
	"github.com/iho/yieldledger/internal/domain"
	"github.com/iho/yieldledger/internal/usecase"
)

type reconciliationServiceStub struct {
	accountFn func(ctx context.Context, accountID string) (*usecase.ReconciliationResult, error)
	reportFn  func(ctx context.Context) (*usecase.ReconciliationReport, error)
}

func (s *reconciliationServiceStub) ReconcileAccount(ctx context.Context, accountID string) (*usecase.ReconciliationResult, error) {
	return s.accountFn(ctx, accountID)
}

func (s *reconciliationServiceStub) GenerateReconciliationReport(ctx context.Context) (*usecase.ReconciliationReport, error) {
	return s.reportFn(ctx)
}

func TestReconciliationHandler_Report(t *testing.T) {
	handler := NewReconciliationHandler(&reconciliationServiceStub{
		reportFn: func(ctx context.Context) (*usecase.ReconciliationReport, error) {
			return &usecase.ReconciliationReport{TotalAccounts: 3, ReconciledAccounts: 3, LedgerConsistent: true}, nil
		},
	})

	rec := httptest.NewRecorder()
	handler.Report(rec, httptest.NewRequest(http.MethodGet, "/reconciliation", nil))

	var resp dto.ReconciliationReportResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.LedgerConsistent || resp.TotalAccounts != 3 {
		t.Fatalf("unexpected report %+v", resp)
	}
}

func TestReconciliationHandler_Account(t *testing.T) {
	handler := NewReconciliationHandler(&reconciliationServiceStub{
		accountFn: func(ctx context.Context, accountID string) (*usecase.ReconciliationResult, error) {
			if accountID == "missing" {
				return nil, domain.ErrAccountNotFound
			}
			return &usecase.ReconciliationResult{AccountID: accountID, Difference: decimal.RequireFromString("0.5")}, nil
		},
	})

	rec := httptest.NewRecorder()
	handler.Account(rec, setChiURLParam(httptest.NewRequest(http.MethodGet, "/reconciliation/accounts/acc-1", nil), "id", "acc-1"))
	var resp dto.ReconciliationResultResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil || resp.Difference != "0.50" || resp.IsReconciled {
		t.Fatalf("unexpected response %s (%v)", rec.Body.String(), err)
	}

	rec = httptest.NewRecorder()
	handler.Account(rec, setChiURLParam(httptest.NewRequest(http.MethodGet, "/reconciliation/accounts/missing", nil), "id", "missing"))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthHandler_Readiness(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	healthy := pingerFunc(func(context.Context) error { return nil })
	down := pingerFunc(func(context.Context) error { return errors.New("connection refused") })

	tests := []struct {
		name      string
		db        Pinger
		redis     *redis.Client
		wantCode  int
		wantRedis string
	}{
		{name: "all up", db: healthy, redis: client, wantCode: http.StatusOK, wantRedis: "ok"},
		{name: "redis disabled", db: healthy, redis: nil, wantCode: http.StatusOK, wantRedis: "disabled"},
		{name: "postgres down", db: down, redis: client, wantCode: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(tt.db, tt.redis)
			rec := httptest.NewRecorder()
			h.Readiness(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

			if rec.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, rec.Code)
			}
			if tt.wantRedis != "" {
				var body map[string]string
				if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil || body["redis"] != tt.wantRedis {
					t.Fatalf("unexpected body %s (%v)", rec.Body.String(), err)
				}
			}
		})
	}
}

func TestHealthHandler_Liveness(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHealthHandler(nil, nil).Liveness(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
