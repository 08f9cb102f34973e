package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/themizzi/shopcheck/internal/browser"
	"github.com/themizzi/shopcheck/internal/catalog"
	"github.com/themizzi/shopcheck/internal/checkout"
	"github.com/themizzi/shopcheck/internal/pages"
	"github.com/themizzi/shopcheck/internal/retry"
)

// Names of the checks a smoke run performs, in order.
const (
	CheckLogin    = "login"
	CheckLoadTime = "inventory load time"
	CheckImages   = "product images"
	CheckAddCart  = "add to cart"
	CheckCart     = "cart contents"
	CheckShipping = "shipping details"
	CheckTotals   = "order totals"
	CheckComplete = "order complete"
)

// ErrSmokeFailed is returned by RunSmoke callers when a check did not pass.
var ErrSmokeFailed = errors.New("smoke run failed")

// SmokeOptions configure one pass through the purchase flow.
type SmokeOptions struct {
	User     catalog.User
	Products []string
	Shipping pages.ShippingInfo
	Pages    pages.Options
	// Retry overrides the add-to-cart retry settings of the user's profile.
	Retry *retry.Config
	// Record is called after every check, if set.
	Record func(CheckReport)
}

// CheckReport is the outcome of one smoke check.
type CheckReport struct {
	Name     string
	Passed   bool
	Attempts int
	Elapsed  time.Duration
	Detail   string
}

// SmokeReport collects every check of a run.
type SmokeReport struct {
	Checks     []CheckReport
	Comparison checkout.Comparison
}

// Passed reports whether every check passed. An empty report has not passed.
func (r SmokeReport) Passed() bool {
	if len(r.Checks) == 0 {
		return false
	}
	for _, c := range r.Checks {
		if !c.Passed {
			return false
		}
	}
	return true
}

// Failed returns the checks that did not pass.
func (r SmokeReport) Failed() []CheckReport {
	var out []CheckReport
	for _, c := range r.Checks {
		if !c.Passed {
			out = append(out, c)
		}
	}
	return out
}

type smokeRun struct {
	opts    SmokeOptions
	profile catalog.Profile
	report  SmokeReport
}

// record stores a check and reports whether the run may continue.
func (s *smokeRun) record(c CheckReport) bool {
	s.report.Checks = append(s.report.Checks, c)
	if c.Passed {
		log.Printf("PASS %s (%d attempts, %dms)", c.Name, c.Attempts, c.Elapsed.Milliseconds())
	} else {
		log.Printf("FAIL %s: %s", c.Name, c.Detail)
	}
	if s.opts.Record != nil {
		s.opts.Record(c)
	}
	return c.Passed
}

// step runs fn once and records it as a single-attempt check.
func (s *smokeRun) step(name string, fn func() error) bool {
	start := time.Now()
	err := fn()
	c := CheckReport{Name: name, Passed: err == nil, Attempts: 1, Elapsed: time.Since(start)}
	if err != nil {
		c.Detail = err.Error()
	}
	return s.record(c)
}

// RunSmoke logs in as opts.User, buys opts.Products and verifies every page on
// the way. It stops at the first check whose failure blocks the next page. The
// error is non-nil only when the flow could not be attempted at all.
func RunSmoke(ctx context.Context, driver browser.Driver, opts SmokeOptions) (SmokeReport, error) {
	items, err := catalog.LineItems(opts.Products...)
	if err != nil {
		return SmokeReport{}, err
	}
	if len(items) == 0 {
		return SmokeReport{}, fmt.Errorf("no products to buy")
	}

	s := &smokeRun{opts: opts, profile: catalog.ProfileFor(opts.User.Type)}
	if s.opts.Pages.WaitTimeout == 0 {
		s.opts.Pages.WaitTimeout = s.profile.WaitTimeout
	}

	login := pages.NewLoginPage(driver, s.opts.Pages)
	inventory := pages.NewInventoryPage(driver, s.opts.Pages)
	cart := pages.NewCartPage(driver, s.opts.Pages)
	checkoutPage := pages.NewCheckoutPage(driver, s.opts.Pages)

	loginStart := time.Now()
	if !s.step(CheckLogin, func() error {
		if err := login.Open(); err != nil {
			return err
		}
		return login.LoginAndWait(opts.User.Username, opts.User.Password)
	}) {
		return s.report, nil
	}

	if err := inventory.WaitForReady(); err != nil {
		s.record(CheckReport{Name: CheckLoadTime, Attempts: 1, Elapsed: time.Since(loginStart), Detail: err.Error()})
		return s.report, nil
	}
	s.record(s.loadTimeCheck(time.Since(loginStart)))

	s.record(s.imageCheck(inventory))

	if !s.record(s.addToCart(ctx, inventory, items)) {
		return s.report, nil
	}

	if !s.step(CheckCart, func() error {
		if err := inventory.OpenCart(); err != nil {
			return err
		}
		return cart.VerifyItems(items)
	}) {
		return s.report, nil
	}

	if !s.step(CheckShipping, func() error {
		if err := cart.Checkout(); err != nil {
			return err
		}
		if err := checkoutPage.FillShippingDetails(opts.Shipping); err != nil {
			return err
		}
		return checkoutPage.Continue()
	}) {
		return s.report, nil
	}

	if !s.step(CheckTotals, func() error {
		cmp, err := checkoutPage.VerifyOrderSummary(items)
		s.report.Comparison = cmp
		return err
	}) {
		return s.report, nil
	}

	s.step(CheckComplete, func() error {
		if err := checkoutPage.Finish(); err != nil {
			return err
		}
		header, err := checkoutPage.ConfirmationHeader()
		if err != nil {
			return err
		}
		if header != catalog.OrderCompleteHeader {
			return fmt.Errorf("%w: expected %q, got %q", pages.ErrUnexpectedMessage, catalog.OrderCompleteHeader, header)
		}
		return nil
	})

	return s.report, nil
}

func (s *smokeRun) loadTimeCheck(elapsed time.Duration) CheckReport {
	c := CheckReport{Name: CheckLoadTime, Passed: true, Attempts: 1, Elapsed: elapsed}
	switch {
	case elapsed > s.profile.MaxLoadTime:
		c.Passed = false
		c.Detail = fmt.Sprintf("took %dms, limit %dms", elapsed.Milliseconds(), s.profile.MaxLoadTime.Milliseconds())
	case elapsed < s.profile.MinLoadTime:
		// Noted only.
		c.Detail = fmt.Sprintf("took %dms, expected at least %dms", elapsed.Milliseconds(), s.profile.MinLoadTime.Milliseconds())
	}
	return c
}

// imageCheck passes when the broken images match what the account is expected to see.
func (s *smokeRun) imageCheck(inventory *pages.InventoryPage) CheckReport {
	start := time.Now()
	statuses := inventory.ImageStatuses()

	var broken []string
	for name, d := range statuses {
		if !d.Loaded {
			broken = append(broken, fmt.Sprintf("%s (%s)", name, d.ErrorInfo))
		}
	}
	sort.Strings(broken)

	c := CheckReport{Name: CheckImages, Attempts: 1, Elapsed: time.Since(start)}
	switch {
	case s.profile.ExpectImageIssues && len(broken) == 0:
		c.Detail = "expected broken images, all loaded"
	case !s.profile.ExpectImageIssues && len(broken) > 0:
		c.Detail = "broken: " + strings.Join(broken, ", ")
	default:
		c.Passed = true
		if len(broken) > 0 {
			c.Detail = fmt.Sprintf("%d of %d broken as expected", len(broken), len(statuses))
		}
	}
	return c
}

func (s *smokeRun) addToCart(ctx context.Context, inventory *pages.InventoryPage, items []checkout.LineItem) CheckReport {
	cfg := s.profile.Retry
	if s.opts.Retry != nil {
		cfg = *s.opts.Retry
	}

	c := CheckReport{Name: CheckAddCart, Passed: true}
	for _, item := range items {
		outcome, err := inventory.AddToCartWithRetry(ctx, item.Name(), cfg)
		c.Attempts += outcome.Attempts
		c.Elapsed += outcome.Elapsed
		if err == nil && !outcome.Success {
			err = outcome.LastErr
		}
		if err != nil {
			c.Passed = false
			c.Detail = fmt.Sprintf("%s: %v", item.Name(), err)
			return c
		}
		if err := inventory.WaitInCart(item.Name()); err != nil {
			c.Passed = false
			c.Detail = fmt.Sprintf("%s: %v", item.Name(), err)
			return c
		}
	}

	count, err := inventory.CartCount()
	switch {
	case err != nil:
		c.Passed = false
		c.Detail = err.Error()
	case count != len(items):
		c.Passed = false
		c.Detail = fmt.Sprintf("cart badge shows %d, expected %d", count, len(items))
	}
	return c
}
