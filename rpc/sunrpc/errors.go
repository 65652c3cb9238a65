package sunrpc

import (
	"errors"
	"fmt"
)

// --------------------------------------------------------------------------
// Protocol-Level Errors (reply was delivered, but the server refused the call)
// --------------------------------------------------------------------------

var (
	// ErrProgramUnavailable is returned when the remote end does not export
	// the requested program number
	ErrProgramUnavailable = errors.New("sunrpc: program unavailable")

	// ErrProcedureUnavailable is returned when the program exists but the
	// requested procedure number does not
	ErrProcedureUnavailable = errors.New("sunrpc: procedure unavailable")

	// ErrGarbageArgs is returned when the server could not decode the call
	// arguments
	ErrGarbageArgs = errors.New("sunrpc: garbage arguments")

	// Authentication rejections. The instruments this package targets only
	// speak the no-authentication flavor, so in practice these indicate a
	// misbehaving peer rather than a credential problem on our side.

	ErrBadCredentials      = errors.New("sunrpc: rejected: bad credentials")
	ErrRejectedCredentials = errors.New("sunrpc: rejected: rejected credentials")
	ErrBadVerifier         = errors.New("sunrpc: rejected: bad verifier")
	ErrRejectedVerifier    = errors.New("sunrpc: rejected: rejected verifier")
	ErrAuthTooWeak         = errors.New("sunrpc: rejected: authentication too weak")
)

// --------------------------------------------------------------------------
// Structured Errors
// --------------------------------------------------------------------------

// DecodeError reports a wire value that does not match any known variant tag
// or is otherwise structurally impossible. Tag carries the literal integer
// seen on the wire; unknown tags are never silently defaulted.
type DecodeError struct {
	What string // tag position, e.g. "message type" or "accept state"
	Tag  uint32 // offending value as read from the stream
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("sunrpc: unrecognized %s %d", e.What, e.Tag)
}

// MismatchKind distinguishes the two low/high version-range rejections of the
// protocol.
type MismatchKind string

const (
	MismatchRPC     MismatchKind = "rpc version"
	MismatchProgram MismatchKind = "program version"
)

// MismatchError is returned when the server rejects the call because the RPC
// version (rejected reply) or the program version (accepted reply) is outside
// the range it supports.
type MismatchError struct {
	Kind MismatchKind
	Low  uint32
	High uint32
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("sunrpc: %s mismatch, server supports %d through %d", e.Kind, e.Low, e.High)
}

// UnknownXIDError is returned by Client.Recv when a reply arrives whose
// transaction id has no pending call. Replies are never decoded speculatively,
// so the offending message is left unread on the stream.
type UnknownXIDError struct {
	XID uint32
}

func (e *UnknownXIDError) Error() string {
	return fmt.Sprintf("sunrpc: reply for unknown call (xid %d)", e.XID)
}

// authStatError maps an authentication-state tag to its sentinel error. An
// out-of-range tag is a decode error carrying the literal value.
func authStatError(stat AuthStat) error {
	switch stat {
	case AuthBadCredentials:
		return ErrBadCredentials
	case AuthRejectedCredentials:
		return ErrRejectedCredentials
	case AuthBadVerifier:
		return ErrBadVerifier
	case AuthRejectedVerifier:
		return ErrRejectedVerifier
	case AuthTooWeak:
		return ErrAuthTooWeak
	default:
		return &DecodeError{What: "authentication state", Tag: uint32(stat)}
	}
}
