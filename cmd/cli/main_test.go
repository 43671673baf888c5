package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/yieldledger/internal/infrastructure/auth"
)

func captureOutput(t *testing.T, fn func()) string {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = origStdout

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatalf("failed to read stdout: %v", err)
	}
	return buf.String()
}

// execute runs the CLI against url and returns stdout and the command error.
func execute(t *testing.T, url string, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	cmd.SetArgs(append([]string{"--url", url}, args...))

	var err error
	out := captureOutput(t, func() {
		err = cmd.Execute()
	})
	return out, err
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("expected short unchanged, got %q", got)
	}

	if got := truncate("longerstring", 6); got != "lon..." {
		t.Fatalf("expected lon..., got %q", got)
	}

	if got := truncate("abcdef", 2); got != "ab" {
		t.Fatalf("expected ab, got %q", got)
	}
}

func TestPrintJSON(t *testing.T) {
	out := captureOutput(t, func() {
		printJSON(struct {
			A int `json:"a"`
		}{A: 1})
	})

	expected := "{\n  \"a\": 1\n}\n"
	if out != expected {
		t.Fatalf("unexpected json output:\n%s", out)
	}
}

func TestReconcileCmd_Consistent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/reconciliation", r.URL.Path)
		assert.Equal(t, "ops-1", r.Header.Get("X-Actor-ID"))
		w.Write([]byte(`{"total_accounts":3,"reconciled_accounts":3,"discrepancies":[],"ledger_consistent":true}`))
	}))
	defer srv.Close()

	out, err := execute(t, srv.URL, "--actor", "ops-1", "ledger", "reconcile")

	require.NoError(t, err)
	assert.Contains(t, out, "Accounts checked: 3")
	assert.Contains(t, out, "Ledger consistent")
}

func TestReconcileCmd_Discrepancy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"total_accounts":2,"reconciled_accounts":1,"ledger_consistent":false,"discrepancies":[
			{"account_id":"acc-1","recorded_balance":"100.00","calculated_balance":"96.50","difference":"-3.50","is_reconciled":false}
		]}`))
	}))
	defer srv.Close()

	out, err := execute(t, srv.URL, "ledger", "reconcile")

	assert.ErrorIs(t, err, errLedgerInconsistent)
	assert.Contains(t, out, "acc-1")
	assert.Contains(t, out, "-3.50")
}

func TestReconcileCmd_SingleAccount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/reconciliation/accounts/acc-9", r.URL.Path)
		w.Write([]byte(`{"account_id":"acc-9","recorded_balance":"10.00","calculated_balance":"10.00","difference":"0.00","is_reconciled":true}`))
	}))
	defer srv.Close()

	out, err := execute(t, srv.URL, "ledger", "reconcile", "--account", "acc-9")

	require.NoError(t, err)
	assert.Contains(t, out, `"account_id": "acc-9"`)
}

func TestRunPayoutsCmd(t *testing.T) {
	bodies := make(chan map[string]any, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/payouts/run", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		bodies <- body

		w.Write([]byte(`{"as_of":"2025-01-15","dry_run":true,"processed":1,"skipped":1,"errors":0,"details":[
			{"deposit_id":"dep-1","status":"would_process","payout_date":"2025-01-15","amount":"120.00"},
			{"deposit_id":"dep-2","status":"skipped","amount":"0.00","reason":"no payout due"}
		]}`))
	}))
	defer srv.Close()

	out, err := execute(t, srv.URL, "--token", "tok", "payouts", "run", "--as-of", "2025-01-15", "--dry-run")

	require.NoError(t, err)
	got := <-bodies
	assert.Equal(t, "2025-01-15", got["as_of"])
	assert.Equal(t, true, got["dry_run"])
	assert.Contains(t, out, "1 would process, 1 skipped, 0 errors")
	assert.Contains(t, out, "dep-1")
	assert.Contains(t, out, "no payout due")
}

func TestRunPayoutsCmd_InvalidDate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for an invalid date")
	}))
	defer srv.Close()

	_, err := execute(t, srv.URL, "payouts", "run", "--as-of", "15/01/2025")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "--as-of")
}

func TestRunPayoutsCmd_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"error":"conflict","message":"payout batch already in progress"}`))
	}))
	defer srv.Close()

	_, err := execute(t, srv.URL, "payouts", "run")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "409")
	assert.Contains(t, err.Error(), "payout batch already in progress")
}

func TestScheduleCmd(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantDue string
		wantNxt string
	}{
		{
			name:    "first anniversary due",
			args:    []string{"--start", "2023-03-10", "--as-of", "2024-03-10"},
			wantDue: "2024-03-10",
			wantNxt: "2024-03-10",
		},
		{
			name:    "already paid this cycle",
			args:    []string{"--start", "2023-03-10", "--last-payout", "2024-03-10", "--as-of", "2024-06-01"},
			wantNxt: "2025-03-10",
		},
		{
			name:    "leap day start",
			args:    []string{"--start", "2020-02-29", "--as-of", "2021-03-01"},
			wantDue: "2021-03-01",
			wantNxt: "2021-03-01",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, "http://unused", append([]string{"payouts", "schedule"}, tt.args...)...)
			require.NoError(t, err)

			var got map[string]any
			require.NoError(t, json.Unmarshal([]byte(out), &got))
			assert.Equal(t, tt.wantNxt, got["next_anniversary"])
			if tt.wantDue == "" {
				assert.Equal(t, false, got["due"])
				assert.NotContains(t, got, "due_date")
			} else {
				assert.Equal(t, true, got["due"])
				assert.Equal(t, tt.wantDue, got["due_date"])
			}
		})
	}
}

func TestIssueTokenCmd(t *testing.T) {
	out, err := execute(t, "http://unused", "token", "issue", "ops-7", "--secret", "s3cret", "--role", "admin", "--ttl", "5m")
	require.NoError(t, err)

	claims, err := auth.NewJWTManager("s3cret").Verify(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "ops-7", claims.ActorID())
	assert.Equal(t, auth.RoleAdmin, claims.Role)
	assert.WithinDuration(t, time.Now().Add(5*time.Minute), claims.ExpiresAt.Time, time.Minute)
}

func TestIssueTokenCmd_Validation(t *testing.T) {
	_, err := execute(t, "http://unused", "token", "issue", "ops-7", "--secret", "s3cret", "--role", "root")
	assert.ErrorContains(t, err, "unknown role")

	_, err = execute(t, "http://unused", "token", "issue", "ops-7", "--secret", "")
	assert.ErrorContains(t, err, "secret")
}

type fakeMigrator struct {
	calls []string
}

func (f *fakeMigrator) Up() error {
	f.calls = append(f.calls, "up")
	return nil
}

func (f *fakeMigrator) Down() error {
	f.calls = append(f.calls, "down")
	return nil
}

func TestMigrateCmd(t *testing.T) {
	fake := &fakeMigrator{}
	var gotURL, gotPath string
	orig := newMigrator
	newMigrator = func(databaseURL, path string) migrator {
		gotURL, gotPath = databaseURL, path
		return fake
	}
	defer func() { newMigrator = orig }()

	_, err := execute(t, "http://unused", "db", "migrate", "up", "--database-url", "postgres://x", "--path", "db/migrations")
	require.NoError(t, err)
	_, err = execute(t, "http://unused", "db", "migrate", "down", "--database-url", "postgres://x")
	require.NoError(t, err)

	assert.Equal(t, []string{"up", "down"}, fake.calls)
	assert.Equal(t, "postgres://x", gotURL)
	assert.Equal(t, "migrations", gotPath)

	_, err = execute(t, "http://unused", "db", "migrate", "sideways", "--database-url", "postgres://x")
	assert.Error(t, err)

	_, err = execute(t, "http://unused", "db", "migrate", "up", "--database-url", "")
	assert.ErrorContains(t, err, "DATABASE_URL")
}
