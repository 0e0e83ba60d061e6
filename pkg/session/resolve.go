package session

import (
	"context"
	"fmt"
)

// NotConnectedError is returned when no active session exists for the requested endpoint
type NotConnectedError struct {
	Endpoint string
}

func (err *NotConnectedError) Error() string {
	if err.Endpoint == "" {
		return "not connected; no active session exists"
	}
	return fmt.Sprintf("not connected to '%s'; no active session exists for it", err.Endpoint)
}

// AmbiguousEndpointError is returned when multiple sessions are active and no endpoint was specified
type AmbiguousEndpointError struct {
	Count int
}

func (err *AmbiguousEndpointError) Error() string {
	return fmt.Sprintf("%d sessions are active; specify the endpoint to target", err.Count)
}

// Resolve determines the single session an operation targets.
// If an endpoint is given, the session bound to it is returned; a missing session yields
// a NotConnectedError. If no endpoint is given, exactly one session has to be active and
// is returned; zero sessions yield a NotConnectedError and more than one session yields
// an AmbiguousEndpointError. Resolve performs a pure lookup and never mutates the registry.
func Resolve(ctx context.Context, registry Registry, endpoint string) (*Session, error) {
	if endpoint != "" {
		session, err := registry.GetByEndpoint(ctx, endpoint)
		if err != nil {
			return nil, err
		}
		if session == nil {
			return nil, &NotConnectedError{Endpoint: endpoint}
		}
		return session, nil
	}

	sessions, err := registry.List(ctx)
	if err != nil {
		return nil, err
	}
	switch len(sessions) {
	case 0:
		return nil, &NotConnectedError{}
	case 1:
		return sessions[0], nil
	default:
		return nil, &AmbiguousEndpointError{Count: len(sessions)}
	}
}
