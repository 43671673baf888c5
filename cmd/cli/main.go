package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/iho/yieldledger/internal/adapter/http/dto"
	"github.com/iho/yieldledger/internal/domain"
	"github.com/iho/yieldledger/internal/infrastructure/auth"
	"github.com/iho/yieldledger/internal/infrastructure/logger"
	"github.com/iho/yieldledger/internal/infrastructure/postgres"
)

var (
	baseURL string
	timeout time.Duration
	token   string
	actorID string
)

var errLedgerInconsistent = errors.New("ledger is not consistent")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "yieldledger-cli",
		Short:         "YieldLedger CLI tool",
		Long:          `A command line interface for operating the YieldLedger API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the YieldLedger API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&token, "token", os.Getenv("YIELDLEDGER_TOKEN"), "Bearer token sent as Authorization")
	rootCmd.PersistentFlags().StringVar(&actorID, "actor", "", "Actor id sent as X-Actor-ID when the server runs without token auth")

	ledgerCmd := &cobra.Command{
		Use:   "ledger",
		Short: "Ledger operations",
	}
	ledgerCmd.AddCommand(reconcileCmd())

	payoutsCmd := &cobra.Command{
		Use:   "payouts",
		Short: "Annual yield payout operations",
	}
	payoutsCmd.AddCommand(runPayoutsCmd(), scheduleCmd())

	tokenCmd := &cobra.Command{
		Use:   "token",
		Short: "API token operations",
	}
	tokenCmd.AddCommand(issueTokenCmd())

	dbCmd := &cobra.Command{
		Use:   "db",
		Short: "Database schema operations",
	}
	dbCmd.AddCommand(migrateCmd())

	rootCmd.AddCommand(ledgerCmd, payoutsCmd, tokenCmd, dbCmd)
	return rootCmd
}

func reconcileCmd() *cobra.Command {
	var accountID string

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Compare recorded balances with the transaction journal",
		RunE: func(cmd *cobra.Command, args []string) error {
			if accountID != "" {
				var result dto.ReconciliationResultResponse
				if err := apiRequest(cmd.Context(), http.MethodGet, "/api/v1/reconciliation/accounts/"+accountID, nil, &result); err != nil {
					return err
				}
				printJSON(result)
				if !result.IsReconciled {
					return errLedgerInconsistent
				}
				return nil
			}

			var report dto.ReconciliationReportResponse
			if err := apiRequest(cmd.Context(), http.MethodGet, "/api/v1/reconciliation", nil, &report); err != nil {
				return err
			}

			fmt.Printf("Accounts checked: %d\n", report.TotalAccounts)
			fmt.Printf("Reconciled:       %d\n", report.ReconciledAccounts)
			if report.LedgerConsistent {
				fmt.Println("Ledger consistent")
				return nil
			}

			tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ACCOUNT\tRECORDED\tCALCULATED\tDIFFERENCE")
			for _, d := range report.Discrepancies {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", truncate(d.AccountID, 16), d.RecordedBalance, d.CalculatedBalance, d.Difference)
			}
			tw.Flush()
			return errLedgerInconsistent
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "Reconcile a single account")
	return cmd
}

func runPayoutsCmd() *cobra.Command {
	var (
		asOf    string
		dryRun  bool
		rawJSON bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Pay every deposit whose anniversary is due",
		RunE: func(cmd *cobra.Command, args []string) error {
			if asOf != "" {
				if _, err := domain.ParseDate(asOf); err != nil {
					return fmt.Errorf("--as-of: %w", err)
				}
			}

			var result dto.BatchResultResponse
			req := dto.RunPayoutsRequest{AsOf: asOf, DryRun: dryRun}
			if err := apiRequest(cmd.Context(), http.MethodPost, "/api/v1/payouts/run", req, &result); err != nil {
				return err
			}

			if rawJSON {
				printJSON(result)
				return nil
			}

			mode := "processed"
			if result.DryRun {
				mode = "would process"
			}
			fmt.Printf("As of %s: %d %s, %d skipped, %d errors\n", result.AsOf, result.Processed, mode, result.Skipped, result.Errors)

			tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "DEPOSIT\tSTATUS\tDATE\tAMOUNT\tREASON")
			for _, d := range result.Details {
				date := ""
				if d.PayoutDate != nil {
					date = *d.PayoutDate
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", truncate(d.DepositID, 16), d.Status, date, d.Amount, truncate(d.Reason, 40))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&asOf, "as-of", "", "Reference date YYYY-MM-DD (default today, UTC)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report what would be paid without writing")
	cmd.Flags().BoolVar(&rawJSON, "json", false, "Print the raw JSON result")
	return cmd
}

// scheduleCmd computes anniversary dates locally, without calling the API.
func scheduleCmd() *cobra.Command {
	var start, lastPayout, asOf string

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Show the next anniversary and the due payout date of a deposit",
		RunE: func(cmd *cobra.Command, args []string) error {
			startDate, err := domain.ParseDate(start)
			if err != nil {
				return fmt.Errorf("--start: %w", err)
			}

			asOfDate := domain.DateOf(time.Now().UTC())
			if asOf != "" {
				if asOfDate, err = domain.ParseDate(asOf); err != nil {
					return fmt.Errorf("--as-of: %w", err)
				}
			}

			var last *time.Time
			if lastPayout != "" {
				d, err := domain.ParseDate(lastPayout)
				if err != nil {
					return fmt.Errorf("--last-payout: %w", err)
				}
				last = &d
			}

			out := map[string]any{
				"start_date":       startDate.Format(domain.DateLayout),
				"as_of":            asOfDate.Format(domain.DateLayout),
				"next_anniversary": domain.NextAnniversary(startDate, asOfDate).Format(domain.DateLayout),
				"due":              false,
			}
			if due, ok := domain.DueDate(startDate, last, asOfDate); ok {
				out["due"] = true
				out["due_date"] = due.Format(domain.DateLayout)
			}

			printJSON(out)
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "Deposit start date YYYY-MM-DD")
	cmd.Flags().StringVar(&lastPayout, "last-payout", "", "Last payout date YYYY-MM-DD")
	cmd.Flags().StringVar(&asOf, "as-of", "", "Reference date YYYY-MM-DD (default today, UTC)")
	_ = cmd.MarkFlagRequired("start")
	return cmd
}

func issueTokenCmd() *cobra.Command {
	var (
		secret string
		role   string
		ttl    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "issue <actor-id>",
		Short: "Sign a bearer token for an operator",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if secret == "" {
				return errors.New("--secret or JWT_SECRET is required")
			}

			r := auth.Role(role)
			switch r {
			case auth.RoleAdmin, auth.RoleOperator, auth.RoleViewer:
			default:
				return fmt.Errorf("unknown role %q", role)
			}

			signed, err := auth.NewJWTManager(secret).Issue(args[0], r, ttl)
			if err != nil {
				return fmt.Errorf("sign token: %w", err)
			}

			fmt.Println(signed)
			return nil
		},
	}

	cmd.Flags().StringVar(&secret, "secret", os.Getenv("JWT_SECRET"), "Signing secret shared with the server")
	cmd.Flags().StringVar(&role, "role", string(auth.RoleOperator), "Role: admin, operator or viewer")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "Token lifetime")
	return cmd
}

// newMigrator is replaced in tests.
var newMigrator = func(databaseURL, path string) migrator {
	return postgres.NewMigrator(databaseURL, path, logger.New(logger.Config{Level: "info", Format: "console"}))
}

type migrator interface {
	Up() error
	Down() error
}

func migrateCmd() *cobra.Command {
	var databaseURL, path string

	cmd := &cobra.Command{
		Use:       "migrate <up|down>",
		Short:     "Apply or roll back schema migrations",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if databaseURL == "" {
				return errors.New("--database-url or DATABASE_URL is required")
			}

			m := newMigrator(databaseURL, path)
			if args[0] == "down" {
				return m.Down()
			}
			return m.Up()
		},
	}

	cmd.Flags().StringVar(&databaseURL, "database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection URL")
	cmd.Flags().StringVar(&path, "path", "migrations", "Directory holding the migration files")
	return cmd
}

// apiRequest sends body as JSON and decodes a 2xx response into out.
func apiRequest(ctx context.Context, method, path string, body, out any) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, strings.TrimRight(baseURL, "/")+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if actorID != "" {
		req.Header.Set("X-Actor-ID", actorID)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr dto.ErrorResponse
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error != "" {
			if apiErr.Message != "" {
				return fmt.Errorf("%s %s: %d %s: %s", method, path, resp.StatusCode, apiErr.Error, apiErr.Message)
			}
			return fmt.Errorf("%s %s: %d %s", method, path, resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("%s %s: %d %s", method, path, resp.StatusCode, truncate(string(respBody), 200))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
