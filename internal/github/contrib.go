package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/cli/go-gh/v2/pkg/api"
	"github.com/cli/go-gh/v2/pkg/auth"
)

// Day is a single day entry from GitHub's Contribution Calendar.
// date is returned as "YYYY-MM-DD" (GitHub GraphQL).
type Day struct {
	Date              string `json:"date"`
	Weekday           int    `json:"weekday"`
	ContributionCount int    `json:"contributionCount"`
}

type Week struct {
	ContributionDays []Day `json:"contributionDays"`
}

type Calendar struct {
	TotalContributions int    `json:"totalContributions"`
	Weeks              []Week `json:"weeks"`
}

// Total sums every day's count. It can differ from TotalContributions,
// which GitHub computes over its own window.
func (c Calendar) Total() int {
	n := 0
	for _, w := range c.Weeks {
		for _, d := range w.ContributionDays {
			n += d.ContributionCount
		}
	}
	return n
}

// GitHub launched in 2008-04-10; earlier dates are not meaningful for contributions.
// Ref: https://github.blog/news-insights/we-launched/
var launch = time.Date(2008, 4, 10, 0, 0, 0, 0, time.UTC)

func validateRange(from, to time.Time) error {
	if from.IsZero() || to.IsZero() {
		return fmt.Errorf("from/to must be set")
	}
	if from.After(to) {
		return fmt.Errorf("from must be <= to")
	}
	if from.Before(launch) || to.Before(launch) {
		return fmt.Errorf("date range must be on/after 2008-04-10 (GitHub launch)")
	}
	// GitHub GraphQL limit: span must not exceed 1 year.
	// Allow up to 366 days to accommodate leap years.
	if to.Sub(from) > 366*24*time.Hour {
		return fmt.Errorf("date range must not exceed 1 year (GitHub API limit)")
	}
	return nil
}

// YearRange returns the [from,to] window of a calendar year as sent to the
// API. 2008 starts at the GitHub launch date.
func YearRange(year int) (time.Time, time.Time) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(year, time.December, 31, 23, 59, 59, 0, time.UTC)
	if year == launch.Year() {
		from = launch
	}
	return from, to
}

var graphqlEndpoint = "https://api.github.com/graphql"

func envToken() string {
	token := os.Getenv("GITHUB_TOKEN")
	if token == "" {
		token = os.Getenv("GH_TOKEN")
	}
	return token
}

// useTokenClient returns true if we should use the token-based client.
func useTokenClient() bool {
	return envToken() != ""
}

// HasCredentials reports whether a GitHub token is available, either from
// the environment or from gh's own login.
func HasCredentials() bool {
	if useTokenClient() {
		return true
	}
	token, _ := auth.TokenForHost("github.com")
	return token != ""
}

// graphqlRequest sends a GraphQL request to GitHub's API using GITHUB_TOKEN.
func graphqlRequest(ctx context.Context, query string, variables map[string]any, result any) error {
	token := envToken()
	if token == "" {
		return &AuthError{Message: "GITHUB_TOKEN or GH_TOKEN environment variable is not set"}
	}

	payload := map[string]any{
		"query":     query,
		"variables": variables,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, graphqlEndpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return &AuthError{Message: "GitHub rejected the token (status 401)"}
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GitHub API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var gqlResp struct {
		Data   json.RawMessage `json:"data"`
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(respBody, &gqlResp); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	if len(gqlResp.Errors) > 0 {
		return fmt.Errorf("GraphQL error: %s", gqlResp.Errors[0].Message)
	}

	if err := json.Unmarshal(gqlResp.Data, result); err != nil {
		return fmt.Errorf("failed to parse data: %w", err)
	}

	return nil
}

// doGraphQL runs a query with the token client when a token is exported,
// and through gh's stored credentials otherwise.
func doGraphQL(ctx context.Context, query string, vars map[string]any, result any) error {
	if useTokenClient() {
		return graphqlRequest(ctx, query, vars, result)
	}
	client, err := api.DefaultGraphQLClient()
	if err != nil {
		return &AuthError{Message: "gh is not authenticated", cause: err}
	}
	return client.DoWithContext(ctx, query, vars, result)
}

const calendarFields = `
      contributionCalendar {
        totalContributions
        weeks {
          contributionDays {
            date
            weekday
            contributionCount
          }
        }
      }`

type contributionsCollection struct {
	ContributionCalendar Calendar `json:"contributionCalendar"`
}

func fetchViewerCalendar(ctx context.Context, from, to time.Time) (string, Calendar, error) {
	query := `
query($from: DateTime!, $to: DateTime!) {
  viewer {
    login
    contributionsCollection(from: $from, to: $to) {` + calendarFields + `
    }
  }
}`

	var resp struct {
		Viewer struct {
			Login                   string                  `json:"login"`
			ContributionsCollection contributionsCollection `json:"contributionsCollection"`
		} `json:"viewer"`
	}

	vars := map[string]any{
		"from": from.UTC().Format(time.RFC3339),
		"to":   to.UTC().Format(time.RFC3339),
	}

	if err := doGraphQL(ctx, query, vars, &resp); err != nil {
		return "", Calendar{}, err
	}
	return resp.Viewer.Login, resp.Viewer.ContributionsCollection.ContributionCalendar, nil
}

func fetchUserCalendar(ctx context.Context, login string, from, to time.Time) (string, Calendar, error) {
	query := `
query($login: String!, $from: DateTime!, $to: DateTime!) {
  user(login: $login) {
    login
    contributionsCollection(from: $from, to: $to) {` + calendarFields + `
    }
  }
}`

	var resp struct {
		User *struct {
			Login                   string                  `json:"login"`
			ContributionsCollection contributionsCollection `json:"contributionsCollection"`
		} `json:"user"`
	}

	vars := map[string]any{
		"login": login,
		"from":  from.UTC().Format(time.RFC3339),
		"to":    to.UTC().Format(time.RFC3339),
	}

	if err := doGraphQL(ctx, query, vars, &resp); err != nil {
		if isGraphQLUserNotFound(err) {
			return "", Calendar{}, &UserNotFoundError{Login: login, cause: err}
		}
		return "", Calendar{}, err
	}
	if resp.User == nil || resp.User.Login == "" {
		return "", Calendar{}, &UserNotFoundError{Login: login}
	}
	return resp.User.Login, resp.User.ContributionsCollection.ContributionCalendar, nil
}

// FetchContributionYear returns the login and contribution calendar of one
// calendar year. An empty login fetches the authenticated viewer.
func FetchContributionYear(ctx context.Context, login string, year int) (string, Calendar, error) {
	from, to := YearRange(year)
	if err := validateRange(from, to); err != nil {
		return "", Calendar{}, fmt.Errorf("year %d: %w", year, err)
	}
	if login == "" {
		return fetchViewerCalendar(ctx, from, to)
	}
	return fetchUserCalendar(ctx, login, from, to)
}
