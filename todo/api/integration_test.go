package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/steinfletcher/apitest"
	jsonpath "github.com/steinfletcher/apitest-jsonpath"
	"github.com/stretchr/testify/require"
	"github.com/taskbox/taskbox/account"
	accountapi "github.com/taskbox/taskbox/account/api"
	"github.com/taskbox/taskbox/account/client"
	"github.com/taskbox/taskbox/account/token"
	"github.com/taskbox/taskbox/internal/testutil"
	"github.com/taskbox/taskbox/todo"
)

// Runs the whole contract across both services, with the todo service
// verifying tokens through a real network round-trip to the account
// service: register, login, create a todo, check the stats.
func TestCrossServiceFlow(t *testing.T) {
	ctx := context.Background()
	db, cleanup := testutil.AcquireDatabase(ctx, t, account.Setup, todo.Setup)
	defer cleanup()

	secret := []byte("integration-secret")
	authHandler := accountapi.AsHandler(db, account.NewStore(db),
		token.NewIssuer(secret), token.NewVerifier(secret))
	authSrv := httptest.NewServer(authHandler)
	defer authSrv.Close()

	todoHandler := AsHandler(db, todo.NewStore(db), client.New(authSrv.URL, 0))

	apitest.Handler(authHandler).
		Post("/api/auth/register").
		JSON(`{"username":"alice","password":"secret1"}`).
		Expect(t).
		Status(http.StatusCreated).
		End()

	res, err := http.Post(authSrv.URL+"/api/auth/login", "application/json",
		strings.NewReader(`{"username":"alice","password":"secret1"}`))
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)
	var login struct {
		Token  string `json:"token"`
		UserID string `json:"userId"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&login))
	require.NotEmpty(t, login.Token)

	apitest.Handler(todoHandler).
		Post("/api/todos").
		Header("Authorization", "Bearer "+login.Token).
		JSON(`{"task":"Write spec"}`).
		Expect(t).
		Status(http.StatusCreated).
		Assert(jsonpath.Equal("$.todo.user_id", login.UserID)).
		End()

	apitest.Handler(todoHandler).
		Get("/api/todos/stats").
		Header("Authorization", "Bearer "+login.Token).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$.stats.total", float64(1))).
		Assert(jsonpath.Equal("$.stats.completed", float64(0))).
		Assert(jsonpath.Equal("$.stats.pending", float64(1))).
		End()

	// a tampered token dies at the remote verification step
	apitest.Handler(todoHandler).
		Get("/api/todos").
		Header("Authorization", "Bearer "+login.Token+"x").
		Expect(t).
		Status(http.StatusUnauthorized).
		End()
}
