package pages

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/themizzi/shopcheck/internal/browser"
	"github.com/themizzi/shopcheck/internal/catalog"
	"github.com/themizzi/shopcheck/internal/checkout"
	"github.com/themizzi/shopcheck/internal/locators"
	"github.com/themizzi/shopcheck/internal/price"
	"github.com/themizzi/shopcheck/internal/retry"
)

func noSleepRetrier() *retry.Retrier {
	return retry.New(
		retry.WithSleeper(func(context.Context, time.Duration) error { return nil }),
		retry.WithJitter(func() time.Duration { return 0 }),
	)
}

func TestMatchMode(t *testing.T) {
	tests := []struct {
		mode     MatchMode
		actual   string
		expected string
		want     bool
	}{
		{MatchExact, "Error: Postal Code is required", catalog.ErrPostalCodeRequired, true},
		{MatchExact, "  Error: Postal Code is required\n", catalog.ErrPostalCodeRequired, true},
		{MatchExact, "Error: Postal Code is required!", catalog.ErrPostalCodeRequired, false},
		{MatchContains, "Error: Postal Code is required!", catalog.ErrPostalCodeRequired, true},
		{MatchContains, "Postal Code is required", catalog.ErrPostalCodeRequired, false},
	}

	for _, tt := range tests {
		if got := tt.mode.Matches(tt.actual, tt.expected); got != tt.want {
			t.Errorf("%s.Matches(%q, %q) = %v, want %v", tt.mode, tt.actual, tt.expected, got, tt.want)
		}
	}
}

func TestBase_Type(t *testing.T) {
	tests := []struct {
		name      string
		delay     time.Duration
		wantFill  bool
		wantDelay time.Duration
	}{
		{name: "plain fill", delay: 0, wantFill: true},
		{name: "typed with delay", delay: 100 * time.Millisecond, wantFill: false, wantDelay: 100 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewFakeDriver()
			b := newBase(d, Options{TypeDelay: tt.delay})

			if err := b.Type("#field", "standard_user"); err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			if len(d.Typed) != 1 {
				t.Fatalf("Expected 1 typing call, got %d", len(d.Typed))
			}
			got := d.Typed[0]
			if got.fill != tt.wantFill || got.delay != tt.wantDelay || got.text != "standard_user" {
				t.Errorf("Unexpected typing %+v", got)
			}
		})
	}
}

func TestBase_RetryClick(t *testing.T) {
	// GIVEN
	d := NewFakeDriver()
	waits := 0
	d.WaitFunc = func(selector string, state browser.State, timeout time.Duration) error {
		if state != browser.StateVisible {
			t.Errorf("Expected visible state, got %s", state)
		}
		waits++
		if waits < 3 {
			return errors.New("timeout waiting for selector")
		}
		return nil
	}
	var clickTimeouts []time.Duration
	d.ClickFunc = func(selector string, timeout time.Duration) error {
		clickTimeouts = append(clickTimeouts, timeout)
		return nil
	}
	b := newBase(d, Options{Retrier: noSleepRetrier()})
	cfg := retry.Config{MaxAttempts: 3, InitialDelay: 100 * time.Millisecond, MaxDelay: 1000 * time.Millisecond}

	// WHEN
	outcome, err := b.RetryClick(context.Background(), "#add", cfg)

	// THEN
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !outcome.Success || outcome.Attempts != 3 {
		t.Errorf("Expected success on third attempt, got %+v", outcome)
	}
	wantWaits := []time.Duration{100 * time.Millisecond, 200 * time.Millisecond, 400 * time.Millisecond}
	for i, w := range wantWaits {
		if d.Waits[i] != w {
			t.Errorf("wait %d: expected timeout %s, got %s", i, w, d.Waits[i])
		}
	}
	if len(clickTimeouts) != 1 || clickTimeouts[0] != 400*time.Millisecond {
		t.Errorf("Expected one click bounded by 400ms, got %v", clickTimeouts)
	}
}

func TestBase_RetryClick_Exhausted(t *testing.T) {
	d := NewFakeDriver()
	d.ClickFunc = func(string, time.Duration) error { return errors.New("element is not clickable") }
	b := newBase(d, Options{Retrier: noSleepRetrier()})

	outcome, err := b.RetryClick(context.Background(), "#add", retry.DefaultConfig())

	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if outcome.Success || outcome.Attempts != 3 {
		t.Errorf("Expected 3 failed attempts, got %+v", outcome)
	}
}

func TestBase_RetryClick_InvalidConfig(t *testing.T) {
	b := newBase(NewFakeDriver(), Options{})

	_, err := b.RetryClick(context.Background(), "#add", retry.Config{})

	if !errors.Is(err, retry.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}

func TestLoginPage_Login(t *testing.T) {
	// GIVEN
	d := NewFakeDriver()
	loc := locators.Login()
	p := NewLoginPage(d, Options{BaseURL: "http://localhost:8080/"})

	// WHEN
	if err := p.Open(); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := p.Login("standard_user", catalog.Password); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// THEN
	if d.Navigated[0] != "http://localhost:8080/" {
		t.Errorf("Expected to open the base URL, got %s", d.Navigated[0])
	}
	if d.Typed[0].selector != loc.Username || d.Typed[1].selector != loc.Password {
		t.Errorf("Unexpected typing %+v", d.Typed)
	}
	if d.Clicked[0] != loc.LoginButton {
		t.Errorf("Expected login button click, got %v", d.Clicked)
	}
}

func TestLoginPage_ExpectError(t *testing.T) {
	tests := []struct {
		name      string
		shown     string
		expected  string
		mode      MatchMode
		wantError bool
	}{
		{name: "exact match", shown: catalog.ErrLockedOut, expected: catalog.ErrLockedOut, mode: MatchExact},
		{name: "different message", shown: catalog.ErrInvalidCredentials, expected: catalog.ErrLockedOut, mode: MatchExact, wantError: true},
		{name: "lenient substring", shown: catalog.ErrLockedOut, expected: "locked out", mode: MatchContains},
		{name: "strict substring fails", shown: catalog.ErrLockedOut, expected: "locked out", mode: MatchExact, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewFakeDriver()
			d.Texts[locators.Login().Error] = tt.shown
			p := NewLoginPage(d, Options{MessageMatch: tt.mode})

			err := p.ExpectError(tt.expected)

			if tt.wantError != errors.Is(err, ErrUnexpectedMessage) {
				t.Errorf("Expected mismatch=%v, got %v", tt.wantError, err)
			}
		})
	}
}

func TestInventoryPage_AddProductsAndCount(t *testing.T) {
	// GIVEN
	d := NewFakeDriver()
	shared := locators.Shared()
	d.Counts[shared.CartBadge] = 1
	d.Texts[shared.CartBadge] = "2"
	p := NewInventoryPage(d, Options{})

	// WHEN
	err := p.AddProducts("Sauce Labs Backpack", "Sauce Labs Bike Light")

	// THEN
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	want := []string{
		`[data-test="add-to-cart-sauce-labs-backpack"]`,
		`[data-test="add-to-cart-sauce-labs-bike-light"]`,
	}
	if len(d.Clicked) != 2 || d.Clicked[0] != want[0] || d.Clicked[1] != want[1] {
		t.Errorf("Expected clicks %v, got %v", want, d.Clicked)
	}
	count, err := p.CartCount()
	if err != nil || count != 2 {
		t.Errorf("Expected cart count 2, got %d (%v)", count, err)
	}
}

func TestInventoryPage_UnknownProduct(t *testing.T) {
	p := NewInventoryPage(NewFakeDriver(), Options{})

	if err := p.AddToCart("Sauce Labs Hat"); !errors.Is(err, catalog.ErrUnknownProduct) {
		t.Errorf("Expected ErrUnknownProduct, got %v", err)
	}
}

func TestInventoryPage_CartCountWithoutBadge(t *testing.T) {
	p := NewInventoryPage(NewFakeDriver(), Options{})

	count, err := p.CartCount()

	if err != nil || count != 0 {
		t.Errorf("Expected 0 without badge, got %d (%v)", count, err)
	}
}

func TestInventoryPage_SortAndPrices(t *testing.T) {
	d := NewFakeDriver()
	loc := locators.Inventory()
	d.Lists[loc.ItemPrice] = []string{"$49.99", "$29.99", "$15.99"}
	p := NewInventoryPage(d, Options{})

	if err := p.Sort(SortPriceDesc); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	prices, err := p.Prices()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if d.Selected[loc.SortDropdown] != "hilo" {
		t.Errorf("Expected hilo selected, got %q", d.Selected[loc.SortDropdown])
	}
	for i := 1; i < len(prices); i++ {
		if prices[i].GreaterThan(prices[i-1]) {
			t.Errorf("Prices not descending: %v", prices)
		}
	}
}

func TestInventoryPage_ImageStatuses(t *testing.T) {
	d := NewFakeDriver()
	d.EvaluateFunc = func(expression string, arg ...interface{}) (interface{}, error) {
		if arg[0] == `[data-test="item-4-img-link"] img` {
			return map[string]interface{}{"exists": true, "complete": true, "naturalWidth": 0, "width": 10, "height": 10}, nil
		}
		return map[string]interface{}{"exists": true, "complete": true, "naturalWidth": 640, "naturalHeight": 480}, nil
	}
	p := NewInventoryPage(d, Options{})

	statuses := p.ImageStatuses()

	if len(statuses) != len(catalog.Products()) {
		t.Fatalf("Expected a status per product, got %d", len(statuses))
	}
	if statuses["Sauce Labs Backpack"].Loaded {
		t.Error("Expected backpack image to be broken")
	}
	if !statuses["Sauce Labs Onesie"].Loaded {
		t.Error("Expected onesie image to be loaded")
	}
}

func TestCartPage_VerifyItems(t *testing.T) {
	loc := locators.Cart()
	expected := []checkout.LineItem{
		checkout.MustLineItem("Sauce Labs Backpack", 1, "29.99"),
		checkout.MustLineItem("Sauce Labs Bike Light", 1, "9.99"),
	}

	tests := []struct {
		name    string
		names   []string
		qty     []string
		prices  []string
		wantErr bool
	}{
		{
			name:   "matching cart",
			names:  []string{"Sauce Labs Backpack", "Sauce Labs Bike Light"},
			qty:    []string{"1", "1"},
			prices: []string{"$29.99", "$9.99"},
		},
		{
			name:    "wrong price",
			names:   []string{"Sauce Labs Backpack", "Sauce Labs Bike Light"},
			qty:     []string{"1", "1"},
			prices:  []string{"$29.99", "$8.99"},
			wantErr: true,
		},
		{
			name:    "missing line",
			names:   []string{"Sauce Labs Backpack"},
			qty:     []string{"1"},
			prices:  []string{"$29.99"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewFakeDriver()
			d.Lists[loc.ItemName] = tt.names
			d.Lists[loc.ItemQuantity] = tt.qty
			d.Lists[loc.ItemPrice] = tt.prices
			p := NewCartPage(d, Options{})

			err := p.VerifyItems(expected)

			if tt.wantErr != errors.Is(err, ErrCartMismatch) {
				t.Errorf("Expected mismatch=%v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestCheckoutPage_FillShippingDetails(t *testing.T) {
	d := NewFakeDriver()
	loc := locators.Checkout()
	p := NewCheckoutPage(d, Options{})

	err := p.FillShippingDetails(ShippingInfo{FirstName: "John", LastName: "Doe"})

	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(d.Typed) != 2 {
		t.Fatalf("Expected postal code to be skipped, got %+v", d.Typed)
	}
	if d.Typed[0].selector != loc.FirstName || d.Typed[1].selector != loc.LastName {
		t.Errorf("Unexpected fields %+v", d.Typed)
	}
}

func TestCheckoutPage_VerifyOrderSummary(t *testing.T) {
	loc := locators.Checkout()
	items := []checkout.LineItem{checkout.MustLineItem("Sauce Labs Backpack", 1, "29.99")}

	tests := []struct {
		name         string
		total        string
		wantMismatch bool
	}{
		{name: "correct summary", total: "Total: $32.39"},
		{name: "wrong total", total: "Total: $99.99", wantMismatch: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// GIVEN
			d := NewFakeDriver()
			d.Texts[loc.Subtotal] = "Item total: $29.99"
			d.Texts[loc.Tax] = "Tax: $2.40"
			d.Texts[loc.Total] = tt.total
			p := NewCheckoutPage(d, Options{})

			// WHEN
			cmp, err := p.VerifyOrderSummary(items)

			// THEN
			var mismatch *checkout.MismatchError
			if tt.wantMismatch {
				if !errors.As(err, &mismatch) || !mismatch.Has(checkout.FieldTotal) {
					t.Fatalf("Expected total mismatch, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if !cmp.Expected.Total.Equal(decimal.RequireFromString("32.39")) {
				t.Errorf("Expected total 32.39, got %s", price.Format(cmp.Expected.Total))
			}
		})
	}
}

func TestCheckoutPage_ExpectPostalCodeError(t *testing.T) {
	d := NewFakeDriver()
	d.Texts[locators.Checkout().Error] = "Error: Postal Code is required"
	p := NewCheckoutPage(d, Options{})

	if err := p.ExpectError(catalog.ErrPostalCodeRequired); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestCheckoutPage_NavigationButtons(t *testing.T) {
	loc := locators.Checkout()
	tests := []struct {
		name string
		act  func(*CheckoutPage) error
		want string
	}{
		{name: "continue", act: (*CheckoutPage).Continue, want: loc.Continue},
		{name: "cancel", act: (*CheckoutPage).Cancel, want: loc.Cancel},
		{name: "finish", act: (*CheckoutPage).Finish, want: loc.Finish},
		{name: "back to products", act: (*CheckoutPage).BackToProducts, want: loc.BackToProducts},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewFakeDriver()
			p := NewCheckoutPage(d, Options{})

			if err := tt.act(p); err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if len(d.Clicked) != 1 || d.Clicked[0] != tt.want {
				t.Errorf("Expected click on %s, got %v", tt.want, d.Clicked)
			}
		})
	}
}
