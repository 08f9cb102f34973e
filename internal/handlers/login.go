package handlers

import (
	"html/template"
	"log"
	"net/http"

	"github.com/themizzi/shopcheck/internal/catalog"
)

// LoginHandler serves the login form on /.
type LoginHandler struct {
	template *template.Template
	sessions *SessionStore
}

// NewLoginHandler creates a new login handler
func NewLoginHandler(templateDir string, sessions *SessionStore) (*LoginHandler, error) {
	tmpl, err := parseTemplate(templateDir, "login.html")
	if err != nil {
		return nil, err
	}
	return &LoginHandler{template: tmpl, sessions: sessions}, nil
}

// ServeHTTP renders the form on GET and signs the user in on POST.
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		render(w, h.template, PageData{})
	case http.MethodPost:
		h.login(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *LoginHandler) login(w http.ResponseWriter, r *http.Request) {
	username := r.PostFormValue("user-name")
	password := r.PostFormValue("password")

	user, message := authenticate(username, password)
	if message != "" {
		log.Printf("Login rejected for %q: %s", username, message)
		render(w, h.template, PageData{Error: message})
		return
	}

	sess := h.sessions.Create(user)
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
	})
	log.Printf("User %s logged in", user.Username)
	http.Redirect(w, r, "/inventory.html", http.StatusSeeOther)
}

// authenticate returns the user or the message the login page shows.
func authenticate(username, password string) (catalog.User, string) {
	if username == "" {
		return catalog.User{}, catalog.ErrUsernameRequired
	}
	if password == "" {
		return catalog.User{}, catalog.ErrPasswordRequired
	}
	user, err := catalog.UserByName(username)
	if err != nil || user.Password != password {
		return catalog.User{}, catalog.ErrInvalidCredentials
	}
	if user.Type == catalog.UserLocked {
		return catalog.User{}, catalog.ErrLockedOut
	}
	return user, ""
}

// LogoutHandler ends the session and returns to the login page.
type LogoutHandler struct {
	sessions *SessionStore
}

func NewLogoutHandler(sessions *SessionStore) *LogoutHandler {
	return &LogoutHandler{sessions: sessions}
}

func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		h.sessions.Delete(cookie.Value)
	}
	http.SetCookie(w, &http.Cookie{Name: SessionCookie, Value: "", Path: "/", MaxAge: -1})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
