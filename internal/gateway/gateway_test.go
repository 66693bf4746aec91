package gateway

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/steinfletcher/apitest"
)

func upstream(t *testing.T, name string) (*url.URL, func()) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Upstream", name)
		w.Write([]byte(name + " " + r.URL.Path))
	}))
	u, err := url.Parse(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	return u, srv.Close
}

func TestRouting(t *testing.T) {
	authURL, closeAuth := upstream(t, "auth")
	defer closeAuth()
	todoURL, closeTodo := upstream(t, "todo")
	defer closeTodo()

	handler := AsHandler(authURL, todoURL)

	apitest.Handler(handler).
		Post("/api/auth/login").
		Expect(t).
		Status(http.StatusOK).
		Body(`auth /api/auth/login`).
		End()

	apitest.Handler(handler).
		Get("/api/todos").
		Expect(t).
		Status(http.StatusOK).
		Body(`todo /api/todos`).
		End()

	apitest.Handler(handler).
		Get("/api/todos/stats").
		Expect(t).
		Status(http.StatusOK).
		Body(`todo /api/todos/stats`).
		End()
}
