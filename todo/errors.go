package todo

import "fmt"

type (
	ValidationError struct {
		Msg string
	}

	NotFoundError struct {
		TodoID string
	}

	// NotOwnerError means the todo exists but belongs to someone
	// else. Existence is always checked first, so callers can map
	// the two conditions to distinct responses.
	NotOwnerError struct {
		TodoID string
	}
)

func (v ValidationError) Error() string {
	return v.Msg
}

func (n NotFoundError) Error() string {
	return fmt.Sprintf("todo %v not found", n.TodoID)
}

func (n NotOwnerError) Error() string {
	return fmt.Sprintf("todo %v belongs to another user", n.TodoID)
}
