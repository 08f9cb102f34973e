package handlers

import (
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strings"

	"github.com/themizzi/shopcheck/internal/catalog"
)

// CheckoutInfoHandler serves the shipping information step.
type CheckoutInfoHandler struct {
	template *template.Template
	sessions *SessionStore
}

// NewCheckoutInfoHandler creates a new checkout information handler
func NewCheckoutInfoHandler(templateDir string, sessions *SessionStore) (*CheckoutInfoHandler, error) {
	tmpl, err := parseTemplate(templateDir, "checkout-step-one.html")
	if err != nil {
		return nil, err
	}
	return &CheckoutInfoHandler{template: tmpl, sessions: sessions}, nil
}

func (h *CheckoutInfoHandler) Handler() http.Handler {
	return h.sessions.RequireSession(h.serve)
}

func (h *CheckoutInfoHandler) serve(w http.ResponseWriter, r *http.Request, sess Session) {
	switch r.Method {
	case http.MethodGet:
		data := pageData("Checkout: Your Information", sess)
		data.FirstName, data.LastName, data.PostalCode = sess.FirstName, sess.LastName, sess.PostalCode
		render(w, h.template, data)
	case http.MethodPost:
		data := pageData("Checkout: Your Information", sess)
		data.FirstName = strings.TrimSpace(r.PostFormValue("firstName"))
		data.LastName = strings.TrimSpace(r.PostFormValue("lastName"))
		data.PostalCode = strings.TrimSpace(r.PostFormValue("postalCode"))

		if data.Error = validateShipping(data); data.Error != "" {
			render(w, h.template, data)
			return
		}
		h.sessions.Update(sess.ID, func(s *Session) {
			s.FirstName, s.LastName, s.PostalCode = data.FirstName, data.LastName, data.PostalCode
		})
		http.Redirect(w, r, "/checkout-step-two.html", http.StatusSeeOther)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// validateShipping returns the first form error, checking fields top to bottom.
func validateShipping(data PageData) string {
	switch {
	case data.FirstName == "":
		return catalog.ErrFirstNameRequired
	case data.LastName == "":
		return catalog.ErrLastNameRequired
	case data.PostalCode == "":
		return catalog.ErrPostalCodeRequired
	}
	return ""
}

// CheckoutOverviewHandler shows the order summary and places the order.
type CheckoutOverviewHandler struct {
	template *template.Template
	sessions *SessionStore
}

// NewCheckoutOverviewHandler creates a new checkout overview handler
func NewCheckoutOverviewHandler(templateDir string, sessions *SessionStore) (*CheckoutOverviewHandler, error) {
	tmpl, err := parseTemplate(templateDir, "checkout-step-two.html")
	if err != nil {
		return nil, err
	}
	return &CheckoutOverviewHandler{template: tmpl, sessions: sessions}, nil
}

func (h *CheckoutOverviewHandler) Handler() http.Handler {
	return h.sessions.RequireSession(h.serve)
}

func (h *CheckoutOverviewHandler) serve(w http.ResponseWriter, r *http.Request, sess Session) {
	switch r.Method {
	case http.MethodGet:
		data := pageData("Checkout: Overview", sess)
		var cents []int64
		data.Items, cents = cartContents(sess)
		data.Subtotal, data.Tax, data.Total = orderSummary(cents)
		render(w, h.template, data)
	case http.MethodPost:
		h.sessions.Update(sess.ID, func(s *Session) {
			s.Cart = nil
		})
		log.Printf("Order placed by %s with %d items", sess.User.Username, len(sess.Cart))
		http.Redirect(w, r, "/checkout-complete.html", http.StatusSeeOther)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// orderSummary totals one unit of each price in whole cents, the way the
// storefront bills: 8% tax rounded half up to the cent.
func orderSummary(cents []int64) (subtotal, tax, total string) {
	var sub int64
	for _, c := range cents {
		sub += c
	}
	t := (sub*8 + 50) / 100
	return formatCents(sub), formatCents(t), formatCents(sub + t)
}

func formatCents(c int64) string {
	return fmt.Sprintf("$%d.%02d", c/100, c%100)
}
