package handlers

import (
	"html/template"
	"net/http"
)

// CompleteHandler shows the order confirmation.
type CompleteHandler struct {
	template *template.Template
	sessions *SessionStore
}

// NewCompleteHandler creates a new order complete handler
func NewCompleteHandler(templateDir string, sessions *SessionStore) (*CompleteHandler, error) {
	tmpl, err := parseTemplate(templateDir, "checkout-complete.html")
	if err != nil {
		return nil, err
	}
	return &CompleteHandler{template: tmpl, sessions: sessions}, nil
}

func (h *CompleteHandler) Handler() http.Handler {
	return h.sessions.RequireSession(h.serve)
}

func (h *CompleteHandler) serve(w http.ResponseWriter, r *http.Request, sess Session) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	render(w, h.template, pageData("Checkout: Complete!", sess))
}
