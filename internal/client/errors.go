package client

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

// Kind buckets a failed call for the user.
type Kind string

const (
	KindTimeout     Kind = "timeout"
	KindServer      Kind = "server"
	KindUnreachable Kind = "unreachable"
	KindUnknown     Kind = "unknown"
)

const (
	timeoutMessage     = "Request timeout. Please check your internet connection."
	unreachableMessage = "Cannot connect to server. Please check if the backend is running."
	unknownMessage     = "An unexpected error occurred."
)

// Error is what every failed API call returns. Message is fit for display.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf reports the bucket of err, or KindUnknown when err is not an *Error.
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return KindUnknown
}

func classify(resp *resty.Response, err error) error {
	if err != nil {
		if isTimeout(err) {
			return &Error{Kind: KindTimeout, Message: timeoutMessage, Err: err}
		}
		if resp == nil || resp.RawResponse == nil {
			return &Error{Kind: KindUnreachable, Message: unreachableMessage, Err: err}
		}
		return &Error{Kind: KindUnknown, Status: resp.StatusCode(), Message: unknownMessage, Err: err}
	}

	if resp.IsError() {
		return &Error{
			Kind:    KindServer,
			Status:  resp.StatusCode(),
			Message: fmt.Sprintf("Server error: %d - %s", resp.StatusCode(), serverMessage(resp)),
		}
	}
	return nil
}

// serverMessage prefers the "error" field of the body, then the status text.
func serverMessage(resp *resty.Response) string {
	if msg := gjson.GetBytes(resp.Body(), "error"); msg.Type == gjson.String && msg.String() != "" {
		return msg.String()
	}
	return http.StatusText(resp.StatusCode())
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
