// Package client verifies bearer tokens against a remote account
// service. It is the cross-service counterpart of token.Verifier:
// both satisfy the same interface, so a deployment picks in-process
// or over-the-wire verification without changing calling code.
package client

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/taskbox/taskbox/account/token"
	"github.com/taskbox/taskbox/internal/logutil"
)

type (
	Client struct {
		baseURL string
		client  *http.Client
	}

	verifyBody struct {
		Success  bool   `json:"success"`
		UserID   string `json:"userId"`
		Username string `json:"username"`
	}
)

// DefaultTimeout bounds the verification round-trip. The peer being
// slow must not stall resource requests forever.
const DefaultTimeout = 5 * time.Second

func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// Verify asks the account service whether the token is good. Network
// faults, non-2xx answers and malformed bodies all collapse into
// ErrInvalidToken; the cause is logged here and nowhere else.
func (c *Client) Verify(ctx context.Context, tokenString string) (token.Identity, error) {
	log := logutil.GetOrDefault(ctx)
	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/api/auth/verify", nil)
	if err != nil {
		return token.Identity{}, token.ErrInvalidToken
	}
	req.Header.Set("Authorization", "Bearer "+tokenString)
	res, err := c.client.Do(req)
	if err != nil {
		log.Warn().Err(err).Msg("Unable to reach the account service for token verification")
		return token.Identity{}, token.ErrInvalidToken
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return token.Identity{}, token.ErrInvalidToken
	}
	var body verifyBody
	err = json.NewDecoder(res.Body).Decode(&body)
	if err != nil || !body.Success {
		log.Warn().Err(err).Msg("Unexpected body from the account service verification endpoint")
		return token.Identity{}, token.ErrInvalidToken
	}
	return token.Identity{UserID: body.UserID, Username: body.Username}, nil
}
