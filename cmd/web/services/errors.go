package services

import (
	"errors"

	"kalshield/cmd/web/clients/blogclient"
)

// FormError is a validation failure meant for the visitor. Handlers show its
// message next to the form instead of an error page.
type FormError struct {
	Message string
}

func (e *FormError) Error() string { return e.Message }

func formError(msg string) error { return &FormError{Message: msg} }

// VisitorMessage picks what to show the visitor for err: a FormError
// message, the backend's own message, or fallback.
func VisitorMessage(err error, fallback string) string {
	var fe *FormError
	if errors.As(err, &fe) {
		return fe.Message
	}
	return blogclient.MessageOf(err, fallback)
}
