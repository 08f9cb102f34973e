package handlers

import (
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/themizzi/shopcheck/internal/catalog"
)

// InventoryHandler lists the products and adds or removes them from the cart.
type InventoryHandler struct {
	template *template.Template
	sessions *SessionStore
	// glitchDelay slows every inventory response for the performance account.
	glitchDelay time.Duration
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(templateDir string, sessions *SessionStore, glitchDelay time.Duration) (*InventoryHandler, error) {
	tmpl, err := parseTemplate(templateDir, "inventory.html")
	if err != nil {
		return nil, err
	}
	return &InventoryHandler{template: tmpl, sessions: sessions, glitchDelay: glitchDelay}, nil
}

func (h *InventoryHandler) Handler() http.Handler {
	return h.sessions.RequireSession(h.serve)
}

func (h *InventoryHandler) serve(w http.ResponseWriter, r *http.Request, sess Session) {
	switch r.Method {
	case http.MethodGet:
		if sess.User.Type == catalog.UserPerformance && !h.glitch(r) {
			return
		}
		data := pageData("Products", sess)
		for _, p := range catalog.Products() {
			data.Products = append(data.Products, productView(p, sess))
		}
		render(w, h.template, data)
	case http.MethodPost:
		updateCart(h.sessions, sess, r)
		http.Redirect(w, r, "/inventory.html", http.StatusSeeOther)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// glitch waits out the configured delay. It returns false if the client went away.
func (h *InventoryHandler) glitch(r *http.Request) bool {
	if h.glitchDelay <= 0 {
		return true
	}
	timer := time.NewTimer(h.glitchDelay)
	defer timer.Stop()
	select {
	case <-r.Context().Done():
		return false
	case <-timer.C:
		return true
	}
}

// updateCart applies an add or remove form post to the session cart.
func updateCart(sessions *SessionStore, sess Session, r *http.Request) {
	id := r.PostFormValue("id")
	if _, err := catalog.ProductByID(id); err != nil {
		log.Printf("Ignoring cart update for unknown product %q", id)
		return
	}

	switch r.PostFormValue("action") {
	case "add":
		sessions.Update(sess.ID, addToCart(id))
	case "remove":
		sessions.Update(sess.ID, removeFromCart(id))
	default:
		log.Printf("Ignoring unknown cart action %q", r.PostFormValue("action"))
	}
}
