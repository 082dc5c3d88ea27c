package executor

import (
	"context"
	"errors"
	"fmt"

	"github.com/five82/wxsched/internal/schedule"
)

// Executor performs Wires-X actions. Implementations return the
// human-readable status text reported by the automation layer.
type Executor interface {
	Execute(ctx context.Context, req Request) (Result, error)
}

// Request is either a scheduled event run or a bare force disconnect.
type Request struct {
	Event           *schedule.Event `json:"event,omitempty"`
	ForceDisconnect bool            `json:"force_disconnect,omitempty"`
	Application     string          `json:"application,omitempty"`
}

// EventRequest asks the executor to perform e.
func EventRequest(e schedule.Event) Request {
	return Request{Event: &e}
}

// DisconnectRequest asks the executor to drop the current connection.
func DisconnectRequest() Request {
	return Request{ForceDisconnect: true}
}

// Summary describes the request for history and log lines.
func (r Request) Summary() string {
	if r.Event == nil {
		return "Force disconnect"
	}
	if r.Event.Description == "" {
		return r.Event.Action()
	}
	return fmt.Sprintf("%s (%s)", r.Event.Action(), r.Event.Description)
}

// Result is the executor's answer.
type Result struct {
	Status string `json:"status"`
}

// Kind classifies executor failures.
type Kind int

const (
	KindTransport Kind = iota
	KindRejected
	KindTimeout
)

func (k Kind) String() string {
	switch k {
	case KindRejected:
		return "rejected"
	case KindTimeout:
		return "timeout"
	default:
		return "transport"
	}
}

// Error is returned by executors for failed requests.
type Error struct {
	Kind   Kind
	Status int // HTTP status for KindRejected, if any
	Err    error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("executor %s (status %d): %v", e.Kind, e.Status, e.Err)
	}
	return fmt.Sprintf("executor %s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf reports the Kind of err, defaulting to KindTransport.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindTransport
}
