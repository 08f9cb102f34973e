// Package handlers serves a local replica of the demo storefront that the
// browser suite runs against.
package handlers

import (
	"fmt"
	"html/template"
	"log"
	"net/http"
	"path/filepath"

	"github.com/themizzi/shopcheck/internal/catalog"
	"github.com/themizzi/shopcheck/internal/locators"
	"github.com/themizzi/shopcheck/internal/price"
)

const (
	productImageURL = "/static/images/product.svg"
	brokenImageURL  = "/static/images/sl-404.jpg"
)

// ProductView is a product as rendered on a page.
type ProductView struct {
	ID          string
	Name        string
	Slug        string
	Description string
	Price       string
	Amount      string
	ImageURL    string
	Quantity    int
	InCart      bool
}

// PageData is passed to every template.
type PageData struct {
	Title      string
	CartCount  int
	Error      string
	Products   []ProductView
	Items      []ProductView
	FirstName  string
	LastName   string
	PostalCode string
	Subtotal   string
	Tax        string
	Total      string
}

// parseTemplate loads name from dir together with the shared header.
func parseTemplate(dir, name string) (*template.Template, error) {
	tmpl, err := template.ParseFiles(filepath.Join(dir, name), filepath.Join(dir, "header.html"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
	}
	return tmpl, nil
}

func render(w http.ResponseWriter, tmpl *template.Template, data PageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, data); err != nil {
		log.Printf("Error rendering template: %v", err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
	}
}

func productView(p catalog.Product, sess Session) ProductView {
	image := productImageURL
	if sess.User.Type == catalog.UserProblem {
		image = brokenImageURL
	}
	return ProductView{
		ID:          p.ID,
		Name:        p.Name,
		Slug:        locators.ProductSlug(p.Name),
		Description: p.Description,
		Price:       price.Format(p.Price),
		Amount:      p.Price.String(),
		ImageURL:    image,
		Quantity:    1,
		InCart:      sess.InCart(p.ID),
	}
}

// cartContents resolves the session cart into views and the unit price of
// each line in cents.
func cartContents(sess Session) ([]ProductView, []int64) {
	views := make([]ProductView, 0, len(sess.Cart))
	cents := make([]int64, 0, len(sess.Cart))
	for _, id := range sess.Cart {
		p, err := catalog.ProductByID(id)
		if err != nil {
			log.Printf("Dropping unknown product %s from cart", id)
			continue
		}
		views = append(views, productView(p, sess))
		cents = append(cents, p.Price.Shift(2).Round(0).IntPart())
	}
	return views, cents
}

func pageData(title string, sess Session) PageData {
	return PageData{Title: title, CartCount: len(sess.Cart)}
}
