package cmd

import (
	"context"
	"fmt"

	"github.com/fchimpan/gh-kusa-painter/internal/github"
)

// loadCalendar fetches a year of contributions, or fabricates one when
// mock is set or no credential is available.
func loadCalendar(ctx context.Context, a *app, year int, mock bool, seed uint64) (string, github.Calendar, error) {
	if a.deps.FetchContributionYear == nil {
		return "", github.Calendar{}, fmt.Errorf("deps.FetchContributionYear is nil")
	}
	if a.deps.HasCredentials == nil {
		return "", github.Calendar{}, fmt.Errorf("deps.HasCredentials is nil")
	}
	if !mock && !a.deps.HasCredentials() {
		a.log.Warn("no GitHub credentials found, using mock data")
		mock = true
	}
	if mock {
		login := a.user
		if login == "" {
			login = "mock"
		}
		return login, github.MockCalendar(year, seed), nil
	}

	login, cal, err := a.deps.FetchContributionYear(ctx, a.user, year)
	if err != nil {
		return "", github.Calendar{}, fmt.Errorf("failed to fetch GitHub contributions: %w", err)
	}
	a.log.Debug("calendar fetched", "login", login, "year", year, "total", cal.TotalContributions)
	return login, cal, nil
}
