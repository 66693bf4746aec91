package webapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBearerToken(t *testing.T) {
	r, _ := http.NewRequest("GET", "/", nil)
	_, ok := BearerToken(r)
	require.False(t, ok)

	r.Header.Set("Authorization", "Bearer abc123")
	tk, ok := BearerToken(r)
	require.True(t, ok)
	require.Equal(t, "abc123", tk)

	for _, bad := range []string{"abc123", "Basic abc123", "Bearer", "Bearer "} {
		r.Header.Set("Authorization", bad)
		_, ok = BearerToken(r)
		require.False(t, ok, "header %q must not produce a token", bad)
	}
}
