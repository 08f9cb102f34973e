//go:build e2e
// +build e2e

package e2e

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/themizzi/shopcheck/internal/catalog"
	internalcli "github.com/themizzi/shopcheck/internal/cli"
	"github.com/themizzi/shopcheck/internal/pages"
	"github.com/themizzi/shopcheck/internal/retry"
)

// TestSmoke
// Feature: Purchase flow
//
//	Scenario Outline: Every account that can log in completes a purchase
//	  Given I am on the login page
//	  When I log in as <username> and buy two products
//	  Then every check should pass for that account's expectations
func TestSmoke(t *testing.T) {
	for _, username := range []string{"standard_user", "problem_user", "performance_glitch_user"} {
		t.Run(username, func(t *testing.T) {
			user, err := catalog.UserByName(username)
			require.NoError(t, err)

			metrics := retry.NewMetrics()
			opts := pageOptions()
			opts.Retrier = retry.New(retry.WithMetrics(metrics))

			var recorded []internalcli.CheckReport
			report, err := internalcli.RunSmoke(context.Background(), newDriver(t), internalcli.SmokeOptions{
				User:     user,
				Products: []string{"Sauce Labs Backpack", "Sauce Labs Bike Light"},
				Shipping: pages.ShippingInfo{FirstName: "Ada", LastName: "Lovelace", PostalCode: "12345"},
				Pages:    opts,
				Record:   func(c internalcli.CheckReport) { recorded = append(recorded, c) },
			})

			require.NoError(t, err)
			assert.True(t, report.Passed(), "failed checks: %+v", report.Failed())
			assert.Len(t, recorded, len(report.Checks))
			assert.True(t, report.Comparison.Passed())
			assert.GreaterOrEqual(t, testutil.ToFloat64(metrics.AttemptsTotal), 2.0)
		})
	}
}

// TestSmoke_LockedOut
// Feature: Purchase flow
//
//	Scenario: A locked out account stops at login
//	  Given I am on the login page
//	  When I log in as "locked_out_user"
//	  Then only the login check should run, and fail
func TestSmoke_LockedOut(t *testing.T) {
	user, err := catalog.UserByName("locked_out_user")
	require.NoError(t, err)

	report, err := internalcli.RunSmoke(context.Background(), newDriver(t), internalcli.SmokeOptions{
		User:     user,
		Products: []string{"Sauce Labs Backpack"},
		Pages:    pageOptions(),
	})

	require.NoError(t, err)
	require.Len(t, report.Checks, 1)
	assert.Equal(t, internalcli.CheckLogin, report.Checks[0].Name)
	assert.False(t, report.Passed())
}
