package sunrpc

import (
	"encoding/binary"
	"io"
)

// RPCVersion is the only Sun RPC protocol version this codec speaks.
const RPCVersion uint32 = 2

// --------------------------------------------------------------------------
// Wire Helpers
// --------------------------------------------------------------------------
//
// Every fixed-width field of the protocol is an unsigned 32-bit integer in
// network byte order with no padding between fields.

func writeUint32(w io.Writer, v uint32) error {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	_, err := w.Write(b[:])
	return err
}

func readUint32(r io.Reader) (uint32, error) {
	var b [4]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b[:]), nil
}

// --------------------------------------------------------------------------
// Variant Tags
// --------------------------------------------------------------------------
//
// Every tagged union of the protocol selects its branch with an explicit
// 32-bit constant. Tags are protocol-defined values, never derived from the
// in-memory representation of a Go value, and an unknown tag on the wire is
// always a DecodeError carrying the literal seen.

// MsgType selects between the two envelope bodies.
type MsgType uint32

const (
	MsgCall  MsgType = 0
	MsgReply MsgType = 1
)

// ReplyStat selects between the accepted and rejected reply branches.
type ReplyStat uint32

const (
	ReplyAccepted ReplyStat = 0
	ReplyDenied   ReplyStat = 1
)

// AcceptStat selects the branch of an accepted reply.
type AcceptStat uint32

const (
	AcceptSuccess         AcceptStat = 0
	AcceptProgUnavailable AcceptStat = 1
	AcceptProgMismatch    AcceptStat = 2
	AcceptProcUnavailable AcceptStat = 3
	AcceptGarbageArgs     AcceptStat = 4
)

// RejectStat selects the branch of a rejected reply.
type RejectStat uint32

const (
	RejectRPCMismatch RejectStat = 0
	RejectAuthError   RejectStat = 1
)

// AuthStat enumerates why a server rejected the call's authentication.
type AuthStat uint32

const (
	AuthBadCredentials      AuthStat = 1
	AuthRejectedCredentials AuthStat = 2
	AuthBadVerifier         AuthStat = 3
	AuthRejectedVerifier    AuthStat = 4
	AuthTooWeak             AuthStat = 5
)

// AuthFlavor identifies the authentication scheme of an OpaqueAuth. The
// instruments this package targets do not implement any Sun RPC
// authentication, so only the null flavor is supported.
type AuthFlavor uint32

const (
	AuthFlavorNone AuthFlavor = 0
)

// --------------------------------------------------------------------------
// Payload Contract
// --------------------------------------------------------------------------

// Payload is implemented by every procedure body that can ride inside a Call
// envelope. ProcedureTag returns the protocol-assigned procedure number; it
// is written into the call header and recorded in the pending-call table so
// the matching reply can be decoded later.
type Payload interface {
	// ProcedureTag returns the stable procedure number for this payload.
	ProcedureTag() uint32
	// EncodeTo writes the XDR body (without the procedure tag) to w.
	EncodeTo(w io.Writer) error
}

// DecodeFunc decodes one procedure body from r. Sun RPC replies do not carry
// the procedure number that produced them, so it is passed in explicitly,
// either read from a call header (self-describing decode) or recovered from
// the pending-call table (context decode).
type DecodeFunc[P Payload] func(r io.Reader, procedure uint32) (P, error)

// --------------------------------------------------------------------------
// Opaque Auth
// --------------------------------------------------------------------------

// OpaqueAuth is the credential/verifier field of a call or reply. With the
// null flavor it encodes as a zero-length body: flavor word, then length 0.
type OpaqueAuth struct {
	Flavor AuthFlavor
}

func (a OpaqueAuth) encodeTo(w io.Writer) error {
	if err := writeUint32(w, uint32(a.Flavor)); err != nil {
		return err
	}
	return writeUint32(w, 0)
}

func decodeOpaqueAuth(r io.Reader) (OpaqueAuth, error) {
	flavor, err := readUint32(r)
	if err != nil {
		return OpaqueAuth{}, err
	}
	if AuthFlavor(flavor) != AuthFlavorNone {
		return OpaqueAuth{}, &DecodeError{What: "auth flavor", Tag: flavor}
	}
	length, err := readUint32(r)
	if err != nil {
		return OpaqueAuth{}, err
	}
	if length != 0 {
		return OpaqueAuth{}, &DecodeError{What: "auth body length", Tag: length}
	}
	return OpaqueAuth{Flavor: AuthFlavorNone}, nil
}

// --------------------------------------------------------------------------
// Envelope Structure
// --------------------------------------------------------------------------

// Envelope is one complete RPC message: the transaction id followed by a
// tagged call or reply body. Exactly one of Call/Reply is meaningful,
// selected by Type.
type Envelope[P Payload] struct {
	XID   uint32
	Type  MsgType
	Call  CallBody[P]  // valid when Type == MsgCall
	Reply ReplyBody[P] // valid when Type == MsgReply
}

// CallBody carries a procedure invocation. The procedure tag written between
// Version and Credentials comes from Data.ProcedureTag().
type CallBody[P Payload] struct {
	RPCVersion  uint32
	Program     uint32
	Version     uint32
	Credentials OpaqueAuth
	Verifier    OpaqueAuth
	Data        P
}

// ReplyBody is the tagged union of the two server responses.
type ReplyBody[P Payload] struct {
	Stat     ReplyStat
	Accepted AcceptedReply[P] // valid when Stat == ReplyAccepted
	Rejected RejectedReply    // valid when Stat == ReplyDenied
}

// AcceptedReply is a reply the server processed. Only the Success branch
// carries a payload; ProgMismatch carries the supported version range.
type AcceptedReply[P Payload] struct {
	Verifier     OpaqueAuth
	Stat         AcceptStat
	Data         P      // valid when Stat == AcceptSuccess
	MismatchLow  uint32 // valid when Stat == AcceptProgMismatch
	MismatchHigh uint32 // valid when Stat == AcceptProgMismatch
}

// RejectedReply is a reply the server refused to process.
type RejectedReply struct {
	Stat         RejectStat
	MismatchLow  uint32   // valid when Stat == RejectRPCMismatch
	MismatchHigh uint32   // valid when Stat == RejectRPCMismatch
	AuthStat     AuthStat // valid when Stat == RejectAuthError
}

// --------------------------------------------------------------------------
// Envelope Encoding
// --------------------------------------------------------------------------

// EncodeTo writes the complete envelope to w in wire order.
func (e *Envelope[P]) EncodeTo(w io.Writer) error {
	if err := writeUint32(w, e.XID); err != nil {
		return err
	}
	if err := writeUint32(w, uint32(e.Type)); err != nil {
		return err
	}
	switch e.Type {
	case MsgCall:
		return e.Call.encodeTo(w)
	case MsgReply:
		return e.Reply.encodeTo(w)
	default:
		return &DecodeError{What: "message type", Tag: uint32(e.Type)}
	}
}

func (c *CallBody[P]) encodeTo(w io.Writer) error {
	for _, v := range [4]uint32{c.RPCVersion, c.Program, c.Version, c.Data.ProcedureTag()} {
		if err := writeUint32(w, v); err != nil {
			return err
		}
	}
	if err := c.Credentials.encodeTo(w); err != nil {
		return err
	}
	if err := c.Verifier.encodeTo(w); err != nil {
		return err
	}
	return c.Data.EncodeTo(w)
}

func (rb *ReplyBody[P]) encodeTo(w io.Writer) error {
	if err := writeUint32(w, uint32(rb.Stat)); err != nil {
		return err
	}
	switch rb.Stat {
	case ReplyAccepted:
		return rb.Accepted.encodeTo(w)
	case ReplyDenied:
		return rb.Rejected.encodeTo(w)
	default:
		return &DecodeError{What: "reply state", Tag: uint32(rb.Stat)}
	}
}

func (a *AcceptedReply[P]) encodeTo(w io.Writer) error {
	if err := a.Verifier.encodeTo(w); err != nil {
		return err
	}
	if err := writeUint32(w, uint32(a.Stat)); err != nil {
		return err
	}
	switch a.Stat {
	case AcceptSuccess:
		return a.Data.EncodeTo(w)
	case AcceptProgMismatch:
		if err := writeUint32(w, a.MismatchLow); err != nil {
			return err
		}
		return writeUint32(w, a.MismatchHigh)
	case AcceptProgUnavailable, AcceptProcUnavailable, AcceptGarbageArgs:
		return nil // tag-only branches
	default:
		return &DecodeError{What: "accept state", Tag: uint32(a.Stat)}
	}
}

func (rr *RejectedReply) encodeTo(w io.Writer) error {
	if err := writeUint32(w, uint32(rr.Stat)); err != nil {
		return err
	}
	switch rr.Stat {
	case RejectRPCMismatch:
		if err := writeUint32(w, rr.MismatchLow); err != nil {
			return err
		}
		return writeUint32(w, rr.MismatchHigh)
	case RejectAuthError:
		return writeUint32(w, uint32(rr.AuthStat))
	default:
		return &DecodeError{What: "reject state", Tag: uint32(rr.Stat)}
	}
}

// --------------------------------------------------------------------------
// Envelope Decoding
// --------------------------------------------------------------------------
//
// Two modes exist because the wire is asymmetric. A call header carries its
// own procedure number, so calls decode self-describing. A reply does not:
// the procedure that produced it must be supplied from the outside, recorded
// when the call was sent. This is the central wrinkle of the protocol: a
// Sun RPC reply is only interpretable with state external to the message.

// DecodeEnvelope reads one complete envelope from r. The procedure parameter
// is used only if the envelope turns out to be a reply; a call body decodes
// with the procedure number from its own header.
func DecodeEnvelope[P Payload](r io.Reader, dec DecodeFunc[P], procedure uint32) (Envelope[P], error) {
	var e Envelope[P]

	xid, err := readUint32(r)
	if err != nil {
		return e, err
	}
	e.XID = xid

	msgType, err := readUint32(r)
	if err != nil {
		return e, err
	}
	switch MsgType(msgType) {
	case MsgCall:
		e.Type = MsgCall
		e.Call, err = decodeCallBody(r, dec)
	case MsgReply:
		e.Type = MsgReply
		e.Reply, err = decodeReplyBody(r, dec, procedure)
	default:
		return e, &DecodeError{What: "message type", Tag: msgType}
	}
	return e, err
}

func decodeCallBody[P Payload](r io.Reader, dec DecodeFunc[P]) (CallBody[P], error) {
	var c CallBody[P]
	var err error

	if c.RPCVersion, err = readUint32(r); err != nil {
		return c, err
	}
	if c.Program, err = readUint32(r); err != nil {
		return c, err
	}
	if c.Version, err = readUint32(r); err != nil {
		return c, err
	}
	procedure, err := readUint32(r)
	if err != nil {
		return c, err
	}
	if c.Credentials, err = decodeOpaqueAuth(r); err != nil {
		return c, err
	}
	if c.Verifier, err = decodeOpaqueAuth(r); err != nil {
		return c, err
	}
	c.Data, err = dec(r, procedure)
	return c, err
}

func decodeReplyBody[P Payload](r io.Reader, dec DecodeFunc[P], procedure uint32) (ReplyBody[P], error) {
	var rb ReplyBody[P]

	stat, err := readUint32(r)
	if err != nil {
		return rb, err
	}
	switch ReplyStat(stat) {
	case ReplyAccepted:
		rb.Stat = ReplyAccepted
		rb.Accepted, err = decodeAcceptedReply(r, dec, procedure)
	case ReplyDenied:
		rb.Stat = ReplyDenied
		rb.Rejected, err = decodeRejectedReply(r)
	default:
		return rb, &DecodeError{What: "reply state", Tag: stat}
	}
	return rb, err
}

func decodeAcceptedReply[P Payload](r io.Reader, dec DecodeFunc[P], procedure uint32) (AcceptedReply[P], error) {
	var a AcceptedReply[P]
	var err error

	if a.Verifier, err = decodeOpaqueAuth(r); err != nil {
		return a, err
	}
	stat, err := readUint32(r)
	if err != nil {
		return a, err
	}
	switch AcceptStat(stat) {
	case AcceptSuccess:
		a.Stat = AcceptSuccess
		a.Data, err = dec(r, procedure)
	case AcceptProgMismatch:
		a.Stat = AcceptProgMismatch
		if a.MismatchLow, err = readUint32(r); err != nil {
			return a, err
		}
		a.MismatchHigh, err = readUint32(r)
	case AcceptProgUnavailable, AcceptProcUnavailable, AcceptGarbageArgs:
		a.Stat = AcceptStat(stat)
	default:
		return a, &DecodeError{What: "accept state", Tag: stat}
	}
	return a, err
}

func decodeRejectedReply(r io.Reader) (RejectedReply, error) {
	var rr RejectedReply

	stat, err := readUint32(r)
	if err != nil {
		return rr, err
	}
	switch RejectStat(stat) {
	case RejectRPCMismatch:
		rr.Stat = RejectRPCMismatch
		if rr.MismatchLow, err = readUint32(r); err != nil {
			return rr, err
		}
		rr.MismatchHigh, err = readUint32(r)
		return rr, err
	case RejectAuthError:
		rr.Stat = RejectAuthError
		authStat, err := readUint32(r)
		if err != nil {
			return rr, err
		}
		switch AuthStat(authStat) {
		case AuthBadCredentials, AuthRejectedCredentials, AuthBadVerifier,
			AuthRejectedVerifier, AuthTooWeak:
			rr.AuthStat = AuthStat(authStat)
		default:
			return rr, &DecodeError{What: "authentication state", Tag: authStat}
		}
		return rr, nil
	default:
		return rr, &DecodeError{What: "reject state", Tag: stat}
	}
}
