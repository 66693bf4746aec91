package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/taskbox/taskbox/account/token"
)

func TestVerify(t *testing.T) {
	ctx := context.Background()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "POST", r.Method)
		require.Equal(t, "/api/auth/verify", r.URL.Path)
		require.Equal(t, "Bearer good-token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"userId":"user_abc123","username":"alice"}`))
	}))
	defer srv.Close()

	identity, err := New(srv.URL, 0).Verify(ctx, "good-token")
	require.NoError(t, err)
	require.Equal(t, token.Identity{UserID: "user_abc123", Username: "alice"}, identity)
}

func TestVerifyRejected(t *testing.T) {
	ctx := context.Background()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"success":false,"message":"Invalid token"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, 0).Verify(ctx, "bad-token")
	require.ErrorIs(t, err, token.ErrInvalidToken)
}

func TestVerifyMalformedBody(t *testing.T) {
	ctx := context.Background()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, 0).Verify(ctx, "whatever")
	require.ErrorIs(t, err, token.ErrInvalidToken)
}

func TestVerifyPeerDown(t *testing.T) {
	ctx := context.Background()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := New(srv.URL, 0).Verify(ctx, "whatever")
	require.ErrorIs(t, err, token.ErrInvalidToken)
}

func TestVerifyTimeout(t *testing.T) {
	ctx := context.Background()
	block := make(chan struct{})
	defer close(block)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-block:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	start := time.Now()
	_, err := New(srv.URL, 50*time.Millisecond).Verify(ctx, "whatever")
	require.ErrorIs(t, err, token.ErrInvalidToken)
	require.Less(t, time.Since(start), 5*time.Second, "a stalled peer must not hang the caller")
}
