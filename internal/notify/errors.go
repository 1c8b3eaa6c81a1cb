package notify

import (
	"context"
	"errors"
	"fmt"
)

// NotificationError reports that a dispatch could not be handed to the
// mail provider
type NotificationError struct {
	Dispatch Dispatch
	Reason   string
	Err      error
}

func (e *NotificationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("notify %s: %s: %v", e.Dispatch, e.Reason, e.Err)
	}
	return fmt.Sprintf("notify %s: %s", e.Dispatch, e.Reason)
}

func (e *NotificationError) Unwrap() error {
	return e.Err
}

func notificationError(d Dispatch, err error) *NotificationError {
	var nerr *NotificationError
	if errors.As(err, &nerr) {
		return &NotificationError{Dispatch: d, Reason: nerr.Reason, Err: nerr.Err}
	}
	return &NotificationError{Dispatch: d, Reason: reasonFor(err), Err: err}
}

func reasonFor(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "mail provider timed out"
	case errors.Is(err, context.Canceled):
		return "dispatch cancelled"
	}
	return "mail provider rejected the message"
}
