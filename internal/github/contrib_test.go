package github

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestValidateRange_GitHubLaunchValidation(t *testing.T) {
	t.Parallel()

	okFrom := launch
	okTo := launch.Add(24 * time.Hour)
	if err := validateRange(okFrom, okTo); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	badFrom := launch.Add(-24 * time.Hour)
	if err := validateRange(badFrom, okTo); err == nil {
		t.Fatalf("expected error for from before launch")
	}

	badTo := launch.Add(-1 * time.Second)
	if err := validateRange(okFrom, badTo); err == nil {
		t.Fatalf("expected error for to before launch")
	}
}

func TestYearRange(t *testing.T) {
	t.Parallel()

	for _, year := range []int{2008, 2020, 2024, 2025} {
		from, to := YearRange(year)
		if err := validateRange(from, to); err != nil {
			t.Fatalf("%d: %v", year, err)
		}
		if from.Year() != year || to.Year() != year || to.Month() != time.December || to.Day() != 31 {
			t.Fatalf("%d: unexpected range %s..%s", year, from, to)
		}
	}
	if from, _ := YearRange(2008); !from.Equal(launch) {
		t.Fatalf("2008 must start at launch, got %s", from)
	}
	from, to := YearRange(2007)
	if err := validateRange(from, to); err == nil {
		t.Fatalf("expected error for a year before GitHub existed")
	}
}

func TestFetchContributionYear_TokenClient(t *testing.T) {
	var gotAuth string
	var gotVars map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		var req struct {
			Variables map[string]any `json:"variables"`
		}
		_ = json.Unmarshal(body, &req)
		gotVars = req.Variables
		_, _ = io.WriteString(w, `{"data":{"user":{"login":"octocat","contributionsCollection":{"contributionCalendar":{
			"totalContributions":3,
			"weeks":[{"contributionDays":[{"date":"2024-01-01","weekday":1,"contributionCount":3}]}]}}}}}`)
	}))
	defer srv.Close()

	t.Setenv("GITHUB_TOKEN", "test-token")
	old := graphqlEndpoint
	graphqlEndpoint = srv.URL
	t.Cleanup(func() { graphqlEndpoint = old })

	login, cal, err := FetchContributionYear(context.Background(), "octocat", 2024)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if login != "octocat" || cal.TotalContributions != 3 || cal.Total() != 3 {
		t.Fatalf("unexpected result %q %+v", login, cal)
	}
	if gotAuth != "Bearer test-token" {
		t.Fatalf("unexpected auth header %q", gotAuth)
	}
	if gotVars["from"] != "2024-01-01T00:00:00Z" || gotVars["to"] != "2024-12-31T23:59:59Z" {
		t.Fatalf("unexpected range variables %v", gotVars)
	}
}

func TestFetchContributionYear_UserNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"data":{"user":null},"errors":[{"message":"Could not resolve to a User with the login of 'nobody'."}]}`)
	}))
	defer srv.Close()

	t.Setenv("GITHUB_TOKEN", "test-token")
	old := graphqlEndpoint
	graphqlEndpoint = srv.URL
	t.Cleanup(func() { graphqlEndpoint = old })

	_, _, err := FetchContributionYear(context.Background(), "nobody", 2024)
	if !IsUserNotFound(err) {
		t.Fatalf("expected user not found, got %v", err)
	}
}

func TestFetchContributionYear_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	t.Setenv("GITHUB_TOKEN", "bad-token")
	old := graphqlEndpoint
	graphqlEndpoint = srv.URL
	t.Cleanup(func() { graphqlEndpoint = old })

	_, _, err := FetchContributionYear(context.Background(), "", 2024)
	if !IsAuthError(err) {
		t.Fatalf("expected auth error, got %v", err)
	}
}

func TestFetchAccount_TokenClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"data":{"user":{"login":"octocat","createdAt":"2019-03-04T05:06:07Z",
			"contributionsCollection":{"contributionYears":[2021,2024,2019]}}}}`)
	}))
	defer srv.Close()

	t.Setenv("GITHUB_TOKEN", "test-token")
	old := graphqlEndpoint
	graphqlEndpoint = srv.URL
	t.Cleanup(func() { graphqlEndpoint = old })

	acct, err := FetchAccount(context.Background(), "octocat")
	if err != nil {
		t.Fatalf("fetch account: %v", err)
	}
	if acct.CreatedYear() != 2019 {
		t.Fatalf("unexpected created year %d", acct.CreatedYear())
	}
	if got := acct.ContributionYears; len(got) != 3 || got[0] != 2024 || got[2] != 2019 {
		t.Fatalf("years must be newest first, got %v", got)
	}
	if !acct.PredatesAccount(2018) || acct.PredatesAccount(2019) {
		t.Fatalf("unexpected PredatesAccount result")
	}
}

func TestAccount_ActiveYearsFallback(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	if got := (Account{}).ActiveYears(now); len(got) != 3 || got[0] != 2026 || got[2] != 2024 {
		t.Fatalf("unexpected fallback %v", got)
	}
	if (Account{}).PredatesAccount(1999) {
		t.Fatalf("unknown creation date must never block")
	}
	a := Account{ContributionYears: []int{2025}}
	if got := a.ActiveYears(now); len(got) != 1 || got[0] != 2025 {
		t.Fatalf("unexpected years %v", got)
	}
}

func TestMockCalendar(t *testing.T) {
	t.Parallel()

	cal := MockCalendar(2024, 42)
	again := MockCalendar(2024, 42)
	if cal.Total() != again.Total() || cal.TotalContributions != cal.Total() {
		t.Fatalf("mock must be deterministic and self-consistent")
	}
	days := 0
	prev := ""
	for _, w := range cal.Weeks {
		for _, d := range w.ContributionDays {
			days++
			date, err := time.Parse(time.DateOnly, d.Date)
			if err != nil {
				t.Fatalf("bad date %q", d.Date)
			}
			if int(date.Weekday()) != d.Weekday {
				t.Fatalf("%s: weekday %d, want %d", d.Date, d.Weekday, date.Weekday())
			}
			if d.ContributionCount < 0 || d.ContributionCount > 4 {
				t.Fatalf("count out of range: %+v", d)
			}
			if strings.Compare(d.Date, prev) <= 0 {
				t.Fatalf("dates must be ascending: %s after %s", d.Date, prev)
			}
			prev = d.Date
		}
	}
	if days != 366 {
		t.Fatalf("expected 366 days in 2024, got %d", days)
	}
}
