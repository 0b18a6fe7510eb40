// Package upstream carries the failure taxonomy shared by all third-party
// gateway clients. Handlers map these onto generic HTTP responses; the
// detail field is for logs only and must never reach the end user.
package upstream

import (
	"errors"
	"fmt"
)

type Kind int

const (
	// ConfigMissing means the integration credentials are not set. Raised
	// before any network call is attempted.
	ConfigMissing Kind = iota
	// AuthFailure means the identity provider rejected the credential
	// exchange.
	AuthFailure
	// Unavailable covers transport errors and 5xx responses.
	Unavailable
	// Rejected covers 4xx responses from the upstream API.
	Rejected
	// MalformedResponse means the upstream answered but the body could not
	// be decoded.
	MalformedResponse
)

func (k Kind) String() string {
	switch k {
	case ConfigMissing:
		return "config_missing"
	case AuthFailure:
		return "auth_failure"
	case Unavailable:
		return "unavailable"
	case Rejected:
		return "rejected"
	case MalformedResponse:
		return "malformed_response"
	}
	return "unknown"
}

// Error is a single failed gateway call. Status and Detail are zero when the
// failure happened before a response was received.
type Error struct {
	Integration string
	Kind        Kind
	Status      int
	Detail      string
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: %s (status %d)", e.Integration, e.Kind, e.Status)
	}
	return fmt.Sprintf("%s: %s", e.Integration, e.Kind)
}

func Errorf(integration string, kind Kind, status int, format string, args ...any) *Error {
	return &Error{
		Integration: integration,
		Kind:        kind,
		Status:      status,
		Detail:      fmt.Sprintf(format, args...),
	}
}

// KindOf extracts the taxonomy kind from an error chain. The second return
// is false when err is not a gateway failure.
func KindOf(err error) (Kind, bool) {
	var ue *Error
	if errors.As(err, &ue) {
		return ue.Kind, true
	}
	return 0, false
}
