package sunrpc

import (
	"bufio"
	"encoding/binary"
	"io"
)

// Decoder reads envelopes for one program from a stream. It buffers the
// stream so the transaction id of the next message can be peeked without
// consuming it; a reader has to know which pending call a reply belongs to
// before it can commit to the context decode.
type Decoder[P Payload] struct {
	r       *bufio.Reader
	program uint32
	version uint32
	dec     DecodeFunc[P]
}

// NewDecoder creates a Decoder reading from r. dec decodes the procedure
// bodies of the program.
func NewDecoder[P Payload](r io.Reader, program, version uint32, dec DecodeFunc[P]) *Decoder[P] {
	return &Decoder[P]{
		r:       bufio.NewReader(r),
		program: program,
		version: version,
		dec:     dec,
	}
}

// PeekXID returns the transaction id of the next envelope without advancing
// the stream. It blocks until at least four bytes are available.
func (d *Decoder[P]) PeekXID() (uint32, error) {
	b, err := d.r.Peek(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

// DecodeReply reads one envelope and resolves it against the procedure id
// recorded when the matching call was sent. An accepted Success reply yields
// the decoded payload; every other accept/reject branch becomes its typed
// error, never a zero payload. A call envelope (the server invoking us, as
// on the interrupt channel) yields its payload directly since the call
// header is self-describing.
func (d *Decoder[P]) DecodeReply(procedure uint32) (P, error) {
	var zero P

	env, err := DecodeEnvelope(d.r, d.dec, procedure)
	if err != nil {
		return zero, err
	}

	if env.Type == MsgCall {
		return env.Call.Data, nil
	}

	reply := env.Reply
	if reply.Stat == ReplyDenied {
		switch reply.Rejected.Stat {
		case RejectRPCMismatch:
			return zero, &MismatchError{
				Kind: MismatchRPC,
				Low:  reply.Rejected.MismatchLow,
				High: reply.Rejected.MismatchHigh,
			}
		default: // RejectAuthError; tags were validated during decode
			return zero, authStatError(reply.Rejected.AuthStat)
		}
	}

	switch reply.Accepted.Stat {
	case AcceptSuccess:
		return reply.Accepted.Data, nil
	case AcceptProgUnavailable:
		return zero, ErrProgramUnavailable
	case AcceptProgMismatch:
		return zero, &MismatchError{
			Kind: MismatchProgram,
			Low:  reply.Accepted.MismatchLow,
			High: reply.Accepted.MismatchHigh,
		}
	case AcceptProcUnavailable:
		return zero, ErrProcedureUnavailable
	default: // AcceptGarbageArgs; tags were validated during decode
		return zero, ErrGarbageArgs
	}
}

// DecodeCall reads one envelope that must be a call. Calls are
// self-describing: the procedure number comes from the wire header.
func (d *Decoder[P]) DecodeCall() (CallBody[P], error) {
	env, err := DecodeEnvelope(d.r, d.dec, 0)
	if err != nil {
		return CallBody[P]{}, err
	}
	if env.Type != MsgCall {
		return CallBody[P]{}, &DecodeError{What: "message type (expected call)", Tag: uint32(env.Type)}
	}
	return env.Call, nil
}
