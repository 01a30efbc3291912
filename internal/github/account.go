package github

import (
	"context"
	"slices"
	"time"
)

// Account is the profile data needed to pick which years are worth painting.
type Account struct {
	Login             string
	CreatedAt         time.Time
	ContributionYears []int
}

// FetchAccount returns the creation date and contribution years of login,
// or of the authenticated viewer when login is empty. Years are sorted
// newest first.
func FetchAccount(ctx context.Context, login string) (Account, error) {
	const fields = `
    login
    createdAt
    contributionsCollection {
      contributionYears
    }`

	type user struct {
		Login                   string    `json:"login"`
		CreatedAt               time.Time `json:"createdAt"`
		ContributionsCollection struct {
			ContributionYears []int `json:"contributionYears"`
		} `json:"contributionsCollection"`
	}

	var u *user
	if login == "" {
		var resp struct {
			Viewer user `json:"viewer"`
		}
		if err := doGraphQL(ctx, "query {\n  viewer {"+fields+"\n  }\n}", nil, &resp); err != nil {
			return Account{}, err
		}
		u = &resp.Viewer
	} else {
		var resp struct {
			User *user `json:"user"`
		}
		query := "query($login: String!) {\n  user(login: $login) {" + fields + "\n  }\n}"
		if err := doGraphQL(ctx, query, map[string]any{"login": login}, &resp); err != nil {
			if isGraphQLUserNotFound(err) {
				return Account{}, &UserNotFoundError{Login: login, cause: err}
			}
			return Account{}, err
		}
		if resp.User == nil || resp.User.Login == "" {
			return Account{}, &UserNotFoundError{Login: login}
		}
		u = resp.User
	}

	years := slices.Clone(u.ContributionsCollection.ContributionYears)
	slices.Sort(years)
	slices.Reverse(years)
	return Account{Login: u.Login, CreatedAt: u.CreatedAt, ContributionYears: years}, nil
}

// CreatedYear returns the year the account was created, or 0 when unknown.
func (a Account) CreatedYear() int {
	if a.CreatedAt.IsZero() {
		return 0
	}
	return a.CreatedAt.UTC().Year()
}

// ActiveYears returns the account's contribution years, falling back to
// the current year and the two before it when none are known.
func (a Account) ActiveYears(now time.Time) []int {
	if len(a.ContributionYears) > 0 {
		return slices.Clone(a.ContributionYears)
	}
	y := now.Year()
	return []int{y, y - 1, y - 2}
}

// PredatesAccount reports whether painting year would put commits before
// the account existed.
func (a Account) PredatesAccount(year int) bool {
	created := a.CreatedYear()
	return created != 0 && year < created
}
