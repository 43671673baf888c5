package domain

import (
	"testing"
	"time"
)

func date(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func datePtr(s string) *time.Time {
	t := date(s)
	return &t
}

func TestDueDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		start      string
		lastPayout *time.Time
		asOf       string
		want       string // empty means not due
	}{
		{"first anniversary passed", "2023-01-10", nil, "2024-02-01", "2024-01-10"},
		{"already paid this cycle", "2023-01-10", datePtr("2024-01-10"), "2024-06-01", ""},
		{"before first anniversary", "2023-01-10", nil, "2023-12-31", ""},
		{"on the anniversary itself", "2023-01-10", nil, "2024-01-10", "2024-01-10"},
		{"second cycle due", "2023-01-10", datePtr("2024-01-10"), "2025-01-10", "2025-01-10"},
		{"missed cycles report only the latest", "2020-03-15", nil, "2024-04-01", "2024-03-15"},
		{"asOf before start", "2024-05-01", nil, "2023-05-01", ""},
		{"leap day start in common year", "2024-02-29", nil, "2025-03-01", "2025-03-01"},
		{"leap day start before normalised anniversary", "2024-02-29", nil, "2025-02-28", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DueDate(date(tt.start), tt.lastPayout, date(tt.asOf))
			if tt.want == "" {
				if ok {
					t.Fatalf("expected no due date, got %s", got.Format(DateLayout))
				}
				return
			}
			if !ok {
				t.Fatalf("expected due date %s, got none", tt.want)
			}
			if !got.Equal(date(tt.want)) {
				t.Fatalf("expected %s, got %s", tt.want, got.Format(DateLayout))
			}
		})
	}
}

func TestNextAnniversary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		start string
		asOf  string
		want  string
	}{
		{"within first year", "2023-01-10", "2023-06-01", "2024-01-10"},
		{"after an anniversary", "2023-01-10", "2024-02-01", "2025-01-10"},
		{"on the anniversary", "2023-01-10", "2024-01-10", "2024-01-10"},
		{"start date itself is not an anniversary", "2023-01-10", "2023-01-10", "2024-01-10"},
		{"asOf before start", "2024-05-01", "2020-01-01", "2025-05-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextAnniversary(date(tt.start), date(tt.asOf))
			if !got.Equal(date(tt.want)) {
				t.Fatalf("expected %s, got %s", tt.want, got.Format(DateLayout))
			}
		})
	}
}

func TestNextAnniversaryIsForwardLookingWhenPaymentIsDue(t *testing.T) {
	t.Parallel()

	start := date("2023-01-10")
	asOf := date("2024-02-01")

	due, ok := DueDate(start, nil, asOf)
	if !ok {
		t.Fatalf("expected a due date")
	}
	next := NextAnniversary(start, asOf)

	if !next.After(asOf) || !due.Before(asOf) {
		t.Fatalf("expected due %s in the past and next %s in the future", due.Format(DateLayout), next.Format(DateLayout))
	}
}

func TestDateOfDropsClock(t *testing.T) {
	t.Parallel()

	in := time.Date(2024, 3, 5, 23, 59, 0, 0, time.UTC)
	if got := DateOf(in); !got.Equal(date("2024-03-05")) {
		t.Fatalf("expected 2024-03-05, got %s", got)
	}
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	if _, err := ParseDate("2024-13-01"); err != ErrInvalidDate {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
	if got, err := ParseDate("2024-01-10"); err != nil || !got.Equal(date("2024-01-10")) {
		t.Fatalf("unexpected result %s, %v", got, err)
	}
}
