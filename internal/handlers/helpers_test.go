package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/themizzi/shopcheck/internal/catalog"
)

const testTemplates = "../../templates"

// loggedIn creates a session for userType and returns it with its cookie.
func loggedIn(t *testing.T, store *SessionStore, userType catalog.UserType) (Session, *http.Cookie) {
	t.Helper()
	user, err := catalog.UserByType(userType)
	if err != nil {
		t.Fatalf("Failed to look up user: %v", err)
	}
	sess := store.Create(user)
	return sess, &http.Cookie{Name: SessionCookie, Value: sess.ID}
}

func formRequest(method, target string, form url.Values, cookie *http.Cookie) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	return req
}

func getRequest(target string, cookie *http.Cookie) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	return req
}

func assertContains(t *testing.T, body string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(body, w) {
			t.Errorf("expected response to contain '%s'", w)
		}
	}
}
