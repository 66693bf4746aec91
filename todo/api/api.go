// Package api exposes the todo service over HTTP. Every route except
// /health sits behind the access filter.
package api

import (
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/taskbox/taskbox/internal/database"
	"github.com/taskbox/taskbox/internal/webapi"
	"github.com/taskbox/taskbox/todo"
)

type (
	handler struct {
		store *todo.Store
	}

	updateBody struct {
		Task      *string `json:"task"`
		Completed *bool   `json:"completed"`
	}
)

func AsHandler(db *database.DB, store *todo.Store, verifier TokenVerifier) http.Handler {
	h := handler{store: store}
	filter := NewAccessFilter(verifier)
	router := httprouter.New()
	router.HandlerFunc("GET", "/health", webapi.HealthHandler("todo-service", func(r *http.Request) bool {
		return db.Healthy(r.Context())
	}))
	router.HandlerFunc("GET", "/api/todos", h.list)
	router.HandlerFunc("POST", "/api/todos", h.create)
	// httprouter cannot register the static /stats segment next to
	// the :todoId wildcard, so the id handler dispatches by hand and
	// "stats" never reads as a todo id.
	router.GET("/api/todos/:todoId", h.getOrStats)
	router.PUT("/api/todos/:todoId", h.update)
	router.DELETE("/api/todos/:todoId", h.delete)

	protected := filter.Protect(router)
	return webapi.WithRequestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			router.ServeHTTP(w, r)
			return
		}
		protected.ServeHTTP(w, r)
	}))
}

func (h handler) list(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r.Context())
	if !ok {
		webapi.Fail(w, r, http.StatusUnauthorized, "No token provided")
		return
	}
	todos, err := h.store.List(r.Context(), identity.UserID)
	if err != nil {
		webapi.Internal(w, r, err)
		return
	}
	webapi.JSON(w, r, http.StatusOK, struct {
		Success bool        `json:"success"`
		Todos   []todo.Todo `json:"todos"`
	}{true, todos})
}

func (h handler) create(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r.Context())
	if !ok {
		webapi.Fail(w, r, http.StatusUnauthorized, "No token provided")
		return
	}
	var body struct {
		Task string `json:"task"`
	}
	if !webapi.Decode(w, r, &body) {
		return
	}
	created, err := h.store.Create(r.Context(), identity.UserID, body.Task)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	webapi.JSON(w, r, http.StatusCreated, struct {
		Success bool      `json:"success"`
		Todo    todo.Todo `json:"todo"`
	}{true, created})
}

func (h handler) getOrStats(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if ps.ByName("todoId") == "stats" {
		h.stats(w, r)
		return
	}
	h.get(w, r, ps)
}

func (h handler) stats(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r.Context())
	if !ok {
		webapi.Fail(w, r, http.StatusUnauthorized, "No token provided")
		return
	}
	stats, err := h.store.Stats(r.Context(), identity.UserID)
	if err != nil {
		webapi.Internal(w, r, err)
		return
	}
	webapi.JSON(w, r, http.StatusOK, struct {
		Success bool       `json:"success"`
		Stats   todo.Stats `json:"stats"`
	}{true, stats})
}

func (h handler) get(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	identity, ok := identityFrom(r.Context())
	if !ok {
		webapi.Fail(w, r, http.StatusUnauthorized, "No token provided")
		return
	}
	found, err := h.store.Get(r.Context(), ps.ByName("todoId"), identity.UserID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	webapi.JSON(w, r, http.StatusOK, struct {
		Success bool      `json:"success"`
		Todo    todo.Todo `json:"todo"`
	}{true, found})
}

func (h handler) update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	identity, ok := identityFrom(r.Context())
	if !ok {
		webapi.Fail(w, r, http.StatusUnauthorized, "No token provided")
		return
	}
	var body updateBody
	if !webapi.Decode(w, r, &body) {
		return
	}
	updated, err := h.store.Apply(r.Context(), ps.ByName("todoId"), identity.UserID, todo.Update{
		Task:      body.Task,
		Completed: body.Completed,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	webapi.JSON(w, r, http.StatusOK, struct {
		Success bool      `json:"success"`
		Todo    todo.Todo `json:"todo"`
	}{true, updated})
}

func (h handler) delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	identity, ok := identityFrom(r.Context())
	if !ok {
		webapi.Fail(w, r, http.StatusUnauthorized, "No token provided")
		return
	}
	err := h.store.Delete(r.Context(), ps.ByName("todoId"), identity.UserID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	webapi.JSON(w, r, http.StatusOK, struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}{true, "Todo deleted successfully"})
}

func (h handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	var validation todo.ValidationError
	var notFound todo.NotFoundError
	var notOwner todo.NotOwnerError
	switch {
	case errors.As(err, &validation):
		webapi.Fail(w, r, http.StatusBadRequest, validation.Msg)
	case errors.As(err, &notFound):
		webapi.Fail(w, r, http.StatusNotFound, "Todo not found")
	case errors.As(err, &notOwner):
		webapi.Fail(w, r, http.StatusForbidden, "Unauthorized to access this todo")
	default:
		webapi.Internal(w, r, err)
	}
}
