package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/steinfletcher/apitest"
	jsonpath "github.com/steinfletcher/apitest-jsonpath"
	"github.com/stretchr/testify/require"
	"github.com/taskbox/taskbox/account"
	"github.com/taskbox/taskbox/account/token"
	"github.com/taskbox/taskbox/internal/testutil"
)

var testSecret = []byte("api-test-secret")

func acquireHandler(ctx context.Context, t *testing.T) (http.Handler, func()) {
	db, cleanup := testutil.AcquireDatabase(ctx, t, account.Setup)
	handler := AsHandler(db, account.NewStore(db),
		token.NewIssuer(testSecret), token.NewVerifier(testSecret))
	return handler, cleanup
}

func TestHealth(t *testing.T) {
	handler, cleanup := acquireHandler(context.Background(), t)
	defer cleanup()
	apitest.Handler(handler).
		Get("/health").
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$.status", "OK")).
		Assert(jsonpath.Equal("$.service", "auth-service")).
		Assert(jsonpath.Equal("$.database", "connected")).
		End()
}

func TestRegisterEndpoint(t *testing.T) {
	handler, cleanup := acquireHandler(context.Background(), t)
	defer cleanup()

	apitest.Handler(handler).
		Post("/api/auth/register").
		JSON(`{"username":"alice","password":"secret1"}`).
		Expect(t).
		Status(http.StatusCreated).
		Assert(jsonpath.Equal("$.success", true)).
		Assert(jsonpath.Present("$.userId")).
		End()

	// second registration with the same username loses
	apitest.Handler(handler).
		Post("/api/auth/register").
		JSON(`{"username":"alice","password":"secret2"}`).
		Expect(t).
		Status(http.StatusConflict).
		Assert(jsonpath.Equal("$.success", false)).
		End()

	apitest.Handler(handler).
		Post("/api/auth/register").
		JSON(`{"username":"bob","password":"12345"}`).
		Expect(t).
		Status(http.StatusBadRequest).
		End()

	apitest.Handler(handler).
		Post("/api/auth/register").
		JSON(`{"username":"","password":""}`).
		Expect(t).
		Status(http.StatusBadRequest).
		End()
}

func TestLoginEndpoint(t *testing.T) {
	handler, cleanup := acquireHandler(context.Background(), t)
	defer cleanup()

	apitest.Handler(handler).
		Post("/api/auth/register").
		JSON(`{"username":"alice","password":"secret1"}`).
		Expect(t).
		Status(http.StatusCreated).
		End()

	apitest.Handler(handler).
		Post("/api/auth/login").
		JSON(`{"username":"alice","password":"secret1"}`).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$.success", true)).
		Assert(jsonpath.Present("$.token")).
		Assert(jsonpath.Equal("$.username", "alice")).
		End()

	// wrong password and unknown user answer the same way
	for _, body := range []string{
		`{"username":"alice","password":"not-it"}`,
		`{"username":"nobody","password":"secret1"}`,
	} {
		apitest.Handler(handler).
			Post("/api/auth/login").
			JSON(body).
			Expect(t).
			Status(http.StatusUnauthorized).
			Assert(jsonpath.Equal("$.success", false)).
			Assert(jsonpath.Equal("$.message", "Invalid credentials")).
			End()
	}

	apitest.Handler(handler).
		Post("/api/auth/login").
		JSON(`{"username":"alice"}`).
		Expect(t).
		Status(http.StatusBadRequest).
		End()
}

func TestVerifyEndpoint(t *testing.T) {
	ctx := context.Background()
	db, cleanup := testutil.AcquireDatabase(ctx, t, account.Setup)
	defer cleanup()
	store := account.NewStore(db)
	handler := AsHandler(db, store, token.NewIssuer(testSecret), token.NewVerifier(testSecret))

	user, err := store.Register(ctx, "alice", "secret1")
	require.NoError(t, err)
	signed, err := token.NewIssuer(testSecret).Issue(user.ID, user.Username)
	require.NoError(t, err)

	apitest.Handler(handler).
		Post("/api/auth/verify").
		Header("Authorization", "Bearer "+signed).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$.userId", user.ID)).
		Assert(jsonpath.Equal("$.username", "alice")).
		End()

	apitest.Handler(handler).
		Post("/api/auth/verify").
		Expect(t).
		Status(http.StatusUnauthorized).
		End()

	apitest.Handler(handler).
		Post("/api/auth/verify").
		Header("Authorization", "Bearer "+signed+"tampered").
		Expect(t).
		Status(http.StatusUnauthorized).
		End()
}

func TestProfileEndpoint(t *testing.T) {
	ctx := context.Background()
	db, cleanup := testutil.AcquireDatabase(ctx, t, account.Setup)
	defer cleanup()
	store := account.NewStore(db)
	handler := AsHandler(db, store, token.NewIssuer(testSecret), token.NewVerifier(testSecret))

	user, err := store.Register(ctx, "alice", "secret1")
	require.NoError(t, err)
	issuer := token.NewIssuer(testSecret)
	signed, err := issuer.Issue(user.ID, user.Username)
	require.NoError(t, err)

	apitest.Handler(handler).
		Get("/api/auth/profile").
		Header("Authorization", "Bearer "+signed).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$.user.userId", user.ID)).
		Assert(jsonpath.Equal("$.user.username", "alice")).
		Assert(jsonpath.Present("$.user.createdAt")).
		End()

	apitest.Handler(handler).
		Get("/api/auth/profile").
		Expect(t).
		Status(http.StatusUnauthorized).
		End()

	// valid token for a user that no longer exists
	ghost, err := issuer.Issue("user_ghost", "ghost")
	require.NoError(t, err)
	apitest.Handler(handler).
		Get("/api/auth/profile").
		Header("Authorization", "Bearer "+ghost).
		Expect(t).
		Status(http.StatusNotFound).
		End()
}

func TestLogoutEndpoint(t *testing.T) {
	handler, cleanup := acquireHandler(context.Background(), t)
	defer cleanup()
	apitest.Handler(handler).
		Post("/api/auth/logout").
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$.success", true)).
		End()
}
