package sunrpc

import (
	"bytes"
	"errors"
	"math"
	"testing"
)

func TestEncoderXIDSequence(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder[testPayload](&buf, testProgram, testVersion)

	for want := uint32(1); want <= 5; want++ {
		pc, err := enc.Call(testPayload{Proc: procStatus})
		if err != nil {
			t.Fatalf("Call %d failed: %v", want, err)
		}
		if pc.XID != want {
			t.Errorf("call %d got xid %d", want, pc.XID)
		}
		if enc.XID() != want {
			t.Errorf("XID() reports %d after call %d", enc.XID(), want)
		}
	}
}

func TestEncoderXIDWrap(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder[testPayload](&buf, testProgram, testVersion)
	enc.xid = math.MaxUint32 - 1

	pc, err := enc.Call(testPayload{Proc: procStatus})
	if err != nil {
		t.Fatalf("Call failed: %v", err)
	}
	if pc.XID != math.MaxUint32 {
		t.Fatalf("expected xid %d, got %d", uint32(math.MaxUint32), pc.XID)
	}

	pc, err = enc.Call(testPayload{Proc: procStatus})
	if err != nil {
		t.Fatalf("Call failed: %v", err)
	}
	if pc.XID != 0 {
		t.Errorf("expected xid to wrap to 0, got %d", pc.XID)
	}
}

func TestEncoderPendingRecord(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder[testPayload](&buf, testProgram, testVersion)

	pc, err := enc.Call(testPayload{Proc: procWrite, Text: Opaque("OUTP ON\n")})
	if err != nil {
		t.Fatalf("Call failed: %v", err)
	}
	want := PendingCall{XID: 1, Program: testProgram, Version: testVersion, Procedure: procWrite}
	if pc != want {
		t.Errorf("pending record mismatch: got %+v, want %+v", pc, want)
	}
}

func TestPeekXIDDoesNotConsume(t *testing.T) {
	var buf bytes.Buffer
	env := callEnvelope(42, testPayload{Proc: procSetup, Flag: 1})
	if err := env.EncodeTo(&buf); err != nil {
		t.Fatalf("EncodeTo failed: %v", err)
	}

	dec := NewDecoder[testPayload](&buf, testProgram, testVersion, decodeTestPayload)

	for i := 0; i < 3; i++ {
		xid, err := dec.PeekXID()
		if err != nil {
			t.Fatalf("PeekXID %d failed: %v", i, err)
		}
		if xid != 42 {
			t.Fatalf("PeekXID %d returned %d, want 42", i, xid)
		}
	}

	// the full message must still be readable after peeking
	call, err := dec.DecodeCall()
	if err != nil {
		t.Fatalf("DecodeCall after peek failed: %v", err)
	}
	if call.Data.Proc != procSetup || call.Data.Flag != 1 {
		t.Errorf("decoded call mismatch: %+v", call)
	}
}

func TestDecodeReplyErrorMapping(t *testing.T) {
	encodeReply := func(t *testing.T, body ReplyBody[testPayload]) *Decoder[testPayload] {
		t.Helper()
		var buf bytes.Buffer
		env := Envelope[testPayload]{XID: 1, Type: MsgReply, Reply: body}
		if err := env.EncodeTo(&buf); err != nil {
			t.Fatalf("EncodeTo failed: %v", err)
		}
		return NewDecoder[testPayload](&buf, testProgram, testVersion, decodeTestPayload)
	}

	t.Run("program unavailable", func(t *testing.T) {
		dec := encodeReply(t, ReplyBody[testPayload]{
			Stat:     ReplyAccepted,
			Accepted: AcceptedReply[testPayload]{Stat: AcceptProgUnavailable},
		})
		if _, err := dec.DecodeReply(procStatus); !errors.Is(err, ErrProgramUnavailable) {
			t.Errorf("got %v, want ErrProgramUnavailable", err)
		}
	})

	t.Run("procedure unavailable", func(t *testing.T) {
		dec := encodeReply(t, ReplyBody[testPayload]{
			Stat:     ReplyAccepted,
			Accepted: AcceptedReply[testPayload]{Stat: AcceptProcUnavailable},
		})
		if _, err := dec.DecodeReply(procStatus); !errors.Is(err, ErrProcedureUnavailable) {
			t.Errorf("got %v, want ErrProcedureUnavailable", err)
		}
	})

	t.Run("garbage args", func(t *testing.T) {
		dec := encodeReply(t, ReplyBody[testPayload]{
			Stat:     ReplyAccepted,
			Accepted: AcceptedReply[testPayload]{Stat: AcceptGarbageArgs},
		})
		if _, err := dec.DecodeReply(procStatus); !errors.Is(err, ErrGarbageArgs) {
			t.Errorf("got %v, want ErrGarbageArgs", err)
		}
	})

	t.Run("program mismatch carries range", func(t *testing.T) {
		dec := encodeReply(t, ReplyBody[testPayload]{
			Stat: ReplyAccepted,
			Accepted: AcceptedReply[testPayload]{
				Stat:         AcceptProgMismatch,
				MismatchLow:  1,
				MismatchHigh: 2,
			},
		})
		_, err := dec.DecodeReply(procStatus)
		var mismatch *MismatchError
		if !errors.As(err, &mismatch) {
			t.Fatalf("got %v, want MismatchError", err)
		}
		if mismatch.Kind != MismatchProgram || mismatch.Low != 1 || mismatch.High != 2 {
			t.Errorf("mismatch detail wrong: %+v", mismatch)
		}
	})

	t.Run("rpc mismatch carries range", func(t *testing.T) {
		dec := encodeReply(t, ReplyBody[testPayload]{
			Stat: ReplyDenied,
			Rejected: RejectedReply{
				Stat:         RejectRPCMismatch,
				MismatchLow:  2,
				MismatchHigh: 2,
			},
		})
		_, err := dec.DecodeReply(procStatus)
		var mismatch *MismatchError
		if !errors.As(err, &mismatch) {
			t.Fatalf("got %v, want MismatchError", err)
		}
		if mismatch.Kind != MismatchRPC || mismatch.Low != 2 || mismatch.High != 2 {
			t.Errorf("mismatch detail wrong: %+v", mismatch)
		}
	})

	t.Run("auth errors map to sentinels", func(t *testing.T) {
		cases := map[AuthStat]error{
			AuthBadCredentials:      ErrBadCredentials,
			AuthRejectedCredentials: ErrRejectedCredentials,
			AuthBadVerifier:         ErrBadVerifier,
			AuthRejectedVerifier:    ErrRejectedVerifier,
			AuthTooWeak:             ErrAuthTooWeak,
		}
		for stat, want := range cases {
			dec := encodeReply(t, ReplyBody[testPayload]{
				Stat:     ReplyDenied,
				Rejected: RejectedReply{Stat: RejectAuthError, AuthStat: stat},
			})
			if _, err := dec.DecodeReply(procStatus); !errors.Is(err, want) {
				t.Errorf("auth state %d: got %v, want %v", stat, err, want)
			}
		}
	})

	t.Run("success yields payload", func(t *testing.T) {
		dec := encodeReply(t, ReplyBody[testPayload]{
			Stat: ReplyAccepted,
			Accepted: AcceptedReply[testPayload]{
				Stat: AcceptSuccess,
				Data: testPayload{Proc: procSetup, Flag: 9},
			},
		})
		data, err := dec.DecodeReply(procSetup)
		if err != nil {
			t.Fatalf("DecodeReply failed: %v", err)
		}
		if data.Proc != procSetup || data.Flag != 9 {
			t.Errorf("payload mismatch: %+v", data)
		}
	})
}

func TestDecodeReplyAcceptsInboundCall(t *testing.T) {
	// a call arriving where a reply is expected is the interrupt-channel
	// pattern: the peer invokes us, and the call header is self-describing
	var buf bytes.Buffer
	env := callEnvelope(3, testPayload{Proc: procWrite, Text: Opaque("SRQ")})
	if err := env.EncodeTo(&buf); err != nil {
		t.Fatalf("EncodeTo failed: %v", err)
	}

	dec := NewDecoder[testPayload](&buf, testProgram, testVersion, decodeTestPayload)
	data, err := dec.DecodeReply(procStatus) // context procedure must be ignored
	if err != nil {
		t.Fatalf("DecodeReply failed: %v", err)
	}
	if data.Proc != procWrite || string(data.Text) != "SRQ" {
		t.Errorf("payload mismatch: %+v", data)
	}
}

func TestDecodeCallRejectsReply(t *testing.T) {
	var buf bytes.Buffer
	env := Envelope[testPayload]{
		XID:  1,
		Type: MsgReply,
		Reply: ReplyBody[testPayload]{
			Stat:     ReplyAccepted,
			Accepted: AcceptedReply[testPayload]{Stat: AcceptGarbageArgs},
		},
	}
	if err := env.EncodeTo(&buf); err != nil {
		t.Fatalf("EncodeTo failed: %v", err)
	}

	dec := NewDecoder[testPayload](&buf, testProgram, testVersion, decodeTestPayload)
	if _, err := dec.DecodeCall(); err == nil {
		t.Fatal("DecodeCall accepted a reply envelope")
	}
}
