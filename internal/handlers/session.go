package handlers

import (
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/themizzi/shopcheck/internal/catalog"
)

// SessionCookie names the cookie carrying the session id.
const SessionCookie = "session-id"

// Session is the server-side state of one logged-in browser.
type Session struct {
	ID   string
	User catalog.User
	// Cart holds product ids in the order they were added.
	Cart       []string
	FirstName  string
	LastName   string
	PostalCode string
}

// InCart reports whether the product with id is in the cart.
func (s Session) InCart(id string) bool {
	for _, c := range s.Cart {
		if c == id {
			return true
		}
	}
	return false
}

// SessionStore keeps sessions in memory.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewSessionStore creates an empty store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*Session)}
}

// Create starts a session for user.
func (s *SessionStore) Create(user catalog.User) Session {
	sess := &Session{ID: uuid.New().String(), User: user}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	return *sess
}

// Get returns a copy of the session with id.
func (s *SessionStore) Get(id string) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return Session{}, false
	}
	out := *sess
	out.Cart = append([]string(nil), sess.Cart...)
	return out, true
}

// Update applies fn to the session with id under the store lock.
func (s *SessionStore) Update(id string, fn func(*Session)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return false
	}
	fn(sess)
	return true
}

// Delete ends the session with id.
func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// FromRequest returns the session named by the request cookie.
func (s *SessionStore) FromRequest(r *http.Request) (Session, bool) {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		return Session{}, false
	}
	return s.Get(cookie.Value)
}

// RequireSession redirects to the login page unless the request carries a session.
func (s *SessionStore) RequireSession(next func(http.ResponseWriter, *http.Request, Session)) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := s.FromRequest(r)
		if !ok {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		next(w, r, sess)
	})
}

func addToCart(id string) func(*Session) {
	return func(s *Session) {
		if !s.InCart(id) {
			s.Cart = append(s.Cart, id)
		}
	}
}

func removeFromCart(id string) func(*Session) {
	return func(s *Session) {
		for i, c := range s.Cart {
			if c == id {
				s.Cart = append(s.Cart[:i], s.Cart[i+1:]...)
				return
			}
		}
	}
}
