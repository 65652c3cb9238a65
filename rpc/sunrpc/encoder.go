package sunrpc

import (
	"io"
)

// PendingCall is the record a caller must retain for every call it sends.
// The wire reply will carry only the transaction id, so the procedure number
// (and the program/version it was sent under) has to be kept on this side to
// decode the reply payload.
type PendingCall struct {
	XID       uint32
	Program   uint32
	Version   uint32
	Procedure uint32
}

// Encoder builds and writes call and reply envelopes for one program. It
// owns the outbound transaction-id counter: ids start at 1, increase by one
// per message, and wrap at the 32-bit boundary. One Encoder belongs to one
// connection; a second connection gets its own counter.
type Encoder[P Payload] struct {
	xid     uint32
	program uint32
	version uint32
	w       io.Writer
}

// NewEncoder creates an Encoder writing to w for the given program/version.
func NewEncoder[P Payload](w io.Writer, program, version uint32) *Encoder[P] {
	return &Encoder[P]{
		program: program,
		version: version,
		w:       w,
	}
}

// Call writes a Call envelope around data, with the zero-length null-flavor
// credential and verifier the instruments expect, and returns the pending
// record the caller needs to decode the eventual reply. Write errors from
// the underlying stream propagate verbatim; the xid is consumed either way.
func (e *Encoder[P]) Call(data P) (PendingCall, error) {
	e.xid++
	env := Envelope[P]{
		XID:  e.xid,
		Type: MsgCall,
		Call: CallBody[P]{
			RPCVersion:  RPCVersion,
			Program:     e.program,
			Version:     e.version,
			Credentials: OpaqueAuth{Flavor: AuthFlavorNone},
			Verifier:    OpaqueAuth{Flavor: AuthFlavorNone},
			Data:        data,
		},
	}
	if err := env.EncodeTo(e.w); err != nil {
		return PendingCall{}, err
	}
	return PendingCall{
		XID:       e.xid,
		Program:   e.program,
		Version:   e.version,
		Procedure: data.ProcedureTag(),
	}, nil
}

// Reply writes a Reply envelope around the caller-constructed body. Used
// when acting as the server side of an interrupt channel.
func (e *Encoder[P]) Reply(body ReplyBody[P]) error {
	e.xid++
	env := Envelope[P]{
		XID:   e.xid,
		Type:  MsgReply,
		Reply: body,
	}
	return env.EncodeTo(e.w)
}

// XID returns the transaction id of the most recently written message.
func (e *Encoder[P]) XID() uint32 {
	return e.xid
}
