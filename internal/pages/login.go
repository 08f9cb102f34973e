package pages

import (
	"github.com/themizzi/shopcheck/internal/browser"
	"github.com/themizzi/shopcheck/internal/locators"
)

// LoginPage is the storefront entry page.
type LoginPage struct {
	Base
	loc locators.LoginLocators
}

func NewLoginPage(driver browser.Driver, opts Options) *LoginPage {
	return &LoginPage{Base: newBase(driver, opts), loc: locators.Login()}
}

// Open navigates to the login page.
func (p *LoginPage) Open() error {
	if err := p.driver.Navigate(p.url("/")); err != nil {
		return err
	}
	return p.WaitVisible(p.loc.LoginButton)
}

// Login submits the credentials. It does not check where the browser lands.
func (p *LoginPage) Login(username, password string) error {
	if err := p.Type(p.loc.Username, username); err != nil {
		return err
	}
	if err := p.Type(p.loc.Password, password); err != nil {
		return err
	}
	return p.driver.Click(p.loc.LoginButton, 0)
}

// LoginAndWait logs in and waits for the inventory page.
func (p *LoginPage) LoginAndWait(username, password string) error {
	if err := p.Login(username, password); err != nil {
		return err
	}
	return p.driver.WaitForURL("**/inventory.html", p.opts.WaitTimeout)
}

// ErrorMessage returns the displayed login error.
func (p *LoginPage) ErrorMessage() (string, error) {
	return p.Text(p.loc.Error)
}

// ExpectError checks the displayed login error against expected.
func (p *LoginPage) ExpectError(expected string) error {
	return p.expectMessage(p.loc.Error, expected)
}

// DismissError closes the error banner.
func (p *LoginPage) DismissError() error {
	return p.driver.Click(p.loc.ErrorCloseButton, 0)
}
