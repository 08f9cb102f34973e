package handlers

import (
	"html/template"
	"net/http"
)

// CartHandler shows the cart and lets the user remove lines.
type CartHandler struct {
	template *template.Template
	sessions *SessionStore
}

// NewCartHandler creates a new cart handler
func NewCartHandler(templateDir string, sessions *SessionStore) (*CartHandler, error) {
	tmpl, err := parseTemplate(templateDir, "cart.html")
	if err != nil {
		return nil, err
	}
	return &CartHandler{template: tmpl, sessions: sessions}, nil
}

func (h *CartHandler) Handler() http.Handler {
	return h.sessions.RequireSession(h.serve)
}

func (h *CartHandler) serve(w http.ResponseWriter, r *http.Request, sess Session) {
	switch r.Method {
	case http.MethodGet:
		data := pageData("Your Cart", sess)
		data.Items, _ = cartContents(sess)
		render(w, h.template, data)
	case http.MethodPost:
		updateCart(h.sessions, sess, r)
		http.Redirect(w, r, "/cart.html", http.StatusSeeOther)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
