// Package catalog is the static test data of the storefront: accounts,
// products and the performance expectations of each account.
package catalog

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/themizzi/shopcheck/internal/checkout"
	"github.com/themizzi/shopcheck/internal/locators"
	"github.com/themizzi/shopcheck/internal/retry"
)

// Password is shared by every storefront account.
const Password = "secret_sauce"

const (
	ErrInvalidCredentials = "Epic sadface: Username and password do not match any user in this service"
	ErrLockedOut          = "Epic sadface: Sorry, this user has been locked out."
	ErrUsernameRequired   = "Epic sadface: Username is required"
	ErrPasswordRequired   = "Epic sadface: Password is required"

	ErrFirstNameRequired  = "Error: First Name is required"
	ErrLastNameRequired   = "Error: Last Name is required"
	ErrPostalCodeRequired = "Error: Postal Code is required"

	OrderCompleteHeader = "Thank you for your order!"
)

var (
	ErrUnknownUser    = errors.New("unknown user")
	ErrUnknownProduct = errors.New("unknown product")
)

// UserType groups accounts by the storefront behaviour they trigger.
type UserType string

const (
	UserStandard    UserType = "standard"
	UserLocked      UserType = "locked"
	UserProblem     UserType = "problem"
	UserPerformance UserType = "performance"
	UserError       UserType = "error"
	UserVisual      UserType = "visual"
)

// User is a storefront account.
type User struct {
	Username string
	Password string
	Type     UserType
}

// Users returns every account in a stable order.
func Users() []User {
	return []User{
		{Username: "standard_user", Password: Password, Type: UserStandard},
		{Username: "locked_out_user", Password: Password, Type: UserLocked},
		{Username: "problem_user", Password: Password, Type: UserProblem},
		{Username: "performance_glitch_user", Password: Password, Type: UserPerformance},
		{Username: "error_user", Password: Password, Type: UserError},
		{Username: "visual_user", Password: Password, Type: UserVisual},
	}
}

// UserByType returns the account of type t.
func UserByType(t UserType) (User, error) {
	for _, u := range Users() {
		if u.Type == t {
			return u, nil
		}
	}
	return User{}, fmt.Errorf("%w: %s", ErrUnknownUser, t)
}

// UserByName returns the account called username.
func UserByName(username string) (User, error) {
	for _, u := range Users() {
		if u.Username == username {
			return u, nil
		}
	}
	return User{}, fmt.Errorf("%w: %s", ErrUnknownUser, username)
}

// Product is one catalog entry.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal
}

// Locators returns the inventory page selectors of the product.
func (p Product) Locators() locators.ProductLocators {
	return locators.Product(p.ID, p.Name)
}

// LineItem builds a checkout line for quantity units of the product.
func (p Product) LineItem(quantity int) (checkout.LineItem, error) {
	return checkout.NewLineItem(p.Name, quantity, p.Price)
}

// Products returns the catalog in the storefront's default (name) order.
func Products() []Product {
	return []Product{
		{
			ID:          "4",
			Name:        "Sauce Labs Backpack",
			Description: "carry.allTheThings() with the sleek, streamlined Sly Pack that melds uncompromising style with unequaled laptop and tablet protection.",
			Price:       decimal.RequireFromString("29.99"),
		},
		{
			ID:          "0",
			Name:        "Sauce Labs Bike Light",
			Description: "A red light isn't the desired state in testing but it sure helps when riding your bike at night. Water-resistant with 3 lighting modes, 1 AAA battery included.",
			Price:       decimal.RequireFromString("9.99"),
		},
		{
			ID:          "1",
			Name:        "Sauce Labs Bolt T-Shirt",
			Description: "Get your testing superhero on with the Sauce Labs bolt T-shirt. From American Apparel, 100% ringspun combed cotton, heather gray with red bolt.",
			Price:       decimal.RequireFromString("15.99"),
		},
		{
			ID:          "5",
			Name:        "Sauce Labs Fleece Jacket",
			Description: "It's not every day that you come across a midweight quarter-zip fleece jacket capable of handling everything from a relaxing day outdoors to a busy day at the office.",
			Price:       decimal.RequireFromString("49.99"),
		},
		{
			ID:          "2",
			Name:        "Sauce Labs Onesie",
			Description: "Rib snap infant onesie for the junior automation engineer in development. Reinforced 3-snap bottom closure, two-needle hemmed sleeved and bottom won't unravel.",
			Price:       decimal.RequireFromString("7.99"),
		},
		{
			ID:          "3",
			Name:        "Test.allTheThings() T-Shirt (Red)",
			Description: "This classic Sauce Labs t-shirt is perfect to wear when cozying up to your keyboard to automate a few tests. Super-soft and comfy ringspun combed cotton.",
			Price:       decimal.RequireFromString("15.99"),
		},
	}
}

// ProductByName looks a product up by its display name.
func ProductByName(name string) (Product, error) {
	for _, p := range Products() {
		if p.Name == name {
			return p, nil
		}
	}
	return Product{}, fmt.Errorf("%w: %s", ErrUnknownProduct, name)
}

// ProductByID looks a product up by its inventory id.
func ProductByID(id string) (Product, error) {
	for _, p := range Products() {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, fmt.Errorf("%w: id %s", ErrUnknownProduct, id)
}

// LineItems builds one line per product name, each with quantity 1. Naming a
// product twice is an error wrapping checkout.ErrDuplicateItem.
func LineItems(names ...string) ([]checkout.LineItem, error) {
	var cart checkout.Cart
	for _, name := range names {
		p, err := ProductByName(name)
		if err != nil {
			return nil, err
		}
		item, err := p.LineItem(1)
		if err != nil {
			return nil, err
		}
		if err := cart.Add(item); err != nil {
			return nil, err
		}
	}
	return cart.Items(), nil
}

// Profile holds the timing expectations for one account type.
type Profile struct {
	MinLoadTime       time.Duration
	MaxLoadTime       time.Duration
	MaxClickTime      time.Duration
	ImageLoadTimeout  time.Duration
	WaitTimeout       time.Duration
	Retry             retry.Config
	ExpectImageIssues bool
}

// ProfileFor returns the expectations for t. Accounts without a dedicated
// profile get the standard one.
func ProfileFor(t UserType) Profile {
	switch t {
	case UserPerformance:
		return Profile{
			MinLoadTime:      3000 * time.Millisecond,
			MaxLoadTime:      15000 * time.Millisecond,
			MaxClickTime:     5000 * time.Millisecond,
			ImageLoadTimeout: 10000 * time.Millisecond,
			WaitTimeout:      30000 * time.Millisecond,
			Retry: retry.Config{
				MaxAttempts:  3,
				InitialDelay: 200 * time.Millisecond,
				MaxDelay:     5000 * time.Millisecond,
			},
		}
	case UserProblem:
		return Profile{
			MaxLoadTime:      3000 * time.Millisecond,
			MaxClickTime:     2000 * time.Millisecond,
			ImageLoadTimeout: 5000 * time.Millisecond,
			WaitTimeout:      5000 * time.Millisecond,
			Retry: retry.Config{
				MaxAttempts:  5,
				InitialDelay: 100 * time.Millisecond,
				MaxDelay:     2000 * time.Millisecond,
			},
			ExpectImageIssues: true,
		}
	default:
		return Profile{
			MaxLoadTime:      3000 * time.Millisecond,
			MaxClickTime:     1000 * time.Millisecond,
			ImageLoadTimeout: 5000 * time.Millisecond,
			WaitTimeout:      5000 * time.Millisecond,
			Retry: retry.Config{
				MaxAttempts:  3,
				InitialDelay: 100 * time.Millisecond,
				MaxDelay:     1000 * time.Millisecond,
			},
		}
	}
}
