package account

import (
	"errors"
	"fmt"
)

type (
	ValidationError struct {
		Msg string
	}

	ConflictError struct {
		Username string
	}

	NotFoundError struct {
		UserID string
	}
)

// ErrInvalidCredentials covers both unknown-username and bad-password
// so callers cannot tell the two apart (no username enumeration).
var ErrInvalidCredentials = errors.New("invalid credentials")

func (v ValidationError) Error() string {
	return v.Msg
}

func (c ConflictError) Error() string {
	return fmt.Sprintf("username %v already exists", c.Username)
}

func (n NotFoundError) Error() string {
	return fmt.Sprintf("user %v not found", n.UserID)
}
