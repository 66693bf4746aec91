// Package gateway fronts both services on a single origin, the way
// the SPA expects them: /api/auth goes to the account service,
// everything else to the todo service.
package gateway

import (
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/julienschmidt/httprouter"
)

var methods = []string{
	"GET", "POST", "PUT", "DELETE", "OPTIONS", "HEAD",
}

func AsHandler(authCalls *url.URL, todoCalls *url.URL) http.Handler {
	router := httprouter.New()

	authProxy := httputil.NewSingleHostReverseProxy(authCalls)
	todoProxy := httputil.NewSingleHostReverseProxy(todoCalls)

	for _, m := range methods {
		router.Handler(m, "/api/auth/*rest", authProxy)
	}

	// delegate to the todo service if not found
	router.NotFound = todoProxy

	return router
}
