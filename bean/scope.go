package bean

import (
	"fmt"
	"strings"
)

// Scope is the lifetime and sharing policy of a bean type.
type Scope int

const (
	// Request beans are never stored; every lookup constructs a new instance.
	Request Scope = iota
	// Context beans live once per type for the lifetime of the container.
	Context
	// Session beans live once per type until they sit idle past the session timeout.
	Session
)

// String returns the lowercase scope name.
func (s Scope) String() string {
	switch s {
	case Request:
		return "request"
	case Context:
		return "context"
	case Session:
		return "session"
	default:
		return fmt.Sprintf("scope(%d)", int(s))
	}
}

// ParseScope parses a scope name case-insensitively.
func ParseScope(s string) (Scope, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "request", "":
		return Request, nil
	case "context":
		return Context, nil
	case "session":
		return Session, nil
	default:
		return Request, fmt.Errorf("unknown bean scope %q", s)
	}
}

// State is the lifecycle state of a stored bean instance.
type State int

const (
	StateConstructed State = iota + 1
	StateInjected
	StateReady
	StateFailed
	StateDestroyed
)

func (s State) String() string {
	switch s {
	case StateConstructed:
		return "constructed"
	case StateInjected:
		return "injected"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	case StateDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}
