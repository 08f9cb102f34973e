// Package locators holds the selectors of every storefront page. Tables are
// returned by value so callers cannot change them for each other.
package locators

import (
	"fmt"
	"strings"
)

func dataTest(id string) string {
	return fmt.Sprintf(`[data-test=%q]`, id)
}

// LoginLocators covers the login page.
type LoginLocators struct {
	Username         string
	Password         string
	LoginButton      string
	Error            string
	ErrorCloseButton string
	Credentials      string
	PasswordInfo     string
}

func Login() LoginLocators {
	return LoginLocators{
		Username:         dataTest("username"),
		Password:         dataTest("password"),
		LoginButton:      dataTest("login-button"),
		Error:            dataTest("error"),
		ErrorCloseButton: dataTest("error-button"),
		Credentials:      dataTest("login-credentials"),
		PasswordInfo:     dataTest("login-password"),
	}
}

// InventoryLocators covers the product list.
type InventoryLocators struct {
	Container     string
	Item          string
	ItemName      string
	ItemPrice     string
	ItemImage     string
	SortDropdown  string
	AddButtons    string
	RemoveButtons string
}

func Inventory() InventoryLocators {
	return InventoryLocators{
		Container:     dataTest("inventory-container"),
		Item:          dataTest("inventory-item"),
		ItemName:      dataTest("inventory-item-name"),
		ItemPrice:     dataTest("inventory-item-price"),
		ItemImage:     dataTest("inventory-container") + " img",
		SortDropdown:  dataTest("product-sort-container"),
		AddButtons:    `[data-test^="add-to-cart-"]`,
		RemoveButtons: `[data-test^="remove-"]`,
	}
}

// ProductLocators are the per-product selectors on the inventory page.
type ProductLocators struct {
	TitleLink    string
	ImageLink    string
	Image        string
	AddButton    string
	RemoveButton string
}

// Product returns the selectors of the product with the given id and name.
func Product(id, name string) ProductLocators {
	slug := ProductSlug(name)
	imageLink := dataTest(fmt.Sprintf("item-%s-img-link", id))
	return ProductLocators{
		TitleLink:    dataTest(fmt.Sprintf("item-%s-title-link", id)),
		ImageLink:    imageLink,
		Image:        imageLink + " img",
		AddButton:    dataTest("add-to-cart-" + slug),
		RemoveButton: dataTest("remove-" + slug),
	}
}

// ProductSlug is the lower-case, dash-joined form of name used in button ids.
func ProductSlug(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}

// CartLocators covers the cart page.
type CartLocators struct {
	List             string
	Item             string
	ItemName         string
	ItemQuantity     string
	ItemPrice        string
	QuantityLabel    string
	DescriptionLabel string
	CheckoutButton   string
	ContinueShopping string
}

func Cart() CartLocators {
	return CartLocators{
		List:             dataTest("cart-list"),
		Item:             dataTest("cart-list") + " " + dataTest("inventory-item"),
		ItemName:         dataTest("cart-list") + " " + dataTest("inventory-item-name"),
		ItemQuantity:     dataTest("cart-list") + " " + dataTest("item-quantity"),
		ItemPrice:        dataTest("cart-list") + " " + dataTest("inventory-item-price"),
		QuantityLabel:    dataTest("cart-quantity-label"),
		DescriptionLabel: dataTest("cart-desc-label"),
		CheckoutButton:   dataTest("checkout"),
		ContinueShopping: dataTest("continue-shopping"),
	}
}

// CartItemLocators address one line of the cart or checkout overview.
type CartItemLocators struct {
	Container string
	Quantity  string
	Price     string
}

// CartItem returns the selectors of the line whose name is exactly name.
func CartItem(name string) CartItemLocators {
	container := fmt.Sprintf(`%s %s:has(%s:text-is(%q))`,
		dataTest("cart-list"), dataTest("inventory-item"), dataTest("inventory-item-name"), name)
	return CartItemLocators{
		Container: container,
		Quantity:  container + " " + dataTest("item-quantity"),
		Price:     container + " " + dataTest("inventory-item-price"),
	}
}

// CheckoutLocators covers the information, overview and complete steps.
type CheckoutLocators struct {
	InfoContainer string
	FirstName     string
	LastName      string
	PostalCode    string
	Continue      string
	Cancel        string
	Error         string
	ErrorClose    string

	PaymentInfo  string
	ShippingInfo string
	Subtotal     string
	Tax          string
	Total        string
	Finish       string

	CompleteHeader string
	CompleteText   string
	BackToProducts string
}

func Checkout() CheckoutLocators {
	return CheckoutLocators{
		InfoContainer: dataTest("checkout-info-container"),
		FirstName:     dataTest("firstName"),
		LastName:      dataTest("lastName"),
		PostalCode:    dataTest("postalCode"),
		Continue:      dataTest("continue"),
		Cancel:        dataTest("cancel"),
		Error:         dataTest("error"),
		ErrorClose:    dataTest("error-button"),

		PaymentInfo:  dataTest("payment-info-value"),
		ShippingInfo: dataTest("shipping-info-value"),
		Subtotal:     dataTest("subtotal-label"),
		Tax:          dataTest("tax-label"),
		Total:        dataTest("total-label"),
		Finish:       dataTest("finish"),

		CompleteHeader: dataTest("complete-header"),
		CompleteText:   dataTest("complete-text"),
		BackToProducts: dataTest("back-to-products"),
	}
}

// SharedLocators appear on every page behind login.
type SharedLocators struct {
	Title           string
	SecondaryHeader string
	CartLink        string
	CartBadge       string
	MenuButton      string
	InventoryLink   string
	LogoutLink      string
	ResetLink       string
	Footer          string
}

func Shared() SharedLocators {
	return SharedLocators{
		Title:           dataTest("title"),
		SecondaryHeader: dataTest("secondary-header"),
		CartLink:        dataTest("shopping-cart-link"),
		CartBadge:       dataTest("shopping-cart-badge"),
		MenuButton:      dataTest("open-menu"),
		InventoryLink:   dataTest("inventory-sidebar-link"),
		LogoutLink:      dataTest("logout-sidebar-link"),
		ResetLink:       dataTest("reset-sidebar-link"),
		Footer:          dataTest("footer"),
	}
}
