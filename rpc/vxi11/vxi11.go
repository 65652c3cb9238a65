package vxi11

import (
	"io"

	"github.com/lab-instruments/golxi/rpc/sunrpc"
)

// The three VXI-11 program numbers assigned by the VXIbus consortium. An
// instrument serves core and abort; the interrupt channel runs in the
// reverse direction, instrument to controller.
const (
	CoreProgram      uint32 = 395183
	AbortProgram     uint32 = 395184
	InterruptProgram uint32 = 395185

	// ProgramVersion is the only published version of all three programs.
	ProgramVersion uint32 = 1
)

// RawProc is the generic VXI-11 procedure payload: a caller-assigned
// procedure number and exactly one opaque body. The body is always present
// on the wire, a procedure without arguments carries a zero-length opaque,
// which keeps the stream parseable without per-procedure layout knowledge.
type RawProc struct {
	Proc uint32
	Body sunrpc.Opaque
}

func (p RawProc) ProcedureTag() uint32 {
	return p.Proc
}

func (p RawProc) EncodeTo(w io.Writer) error {
	return p.Body.EncodeTo(w)
}

// DecodeRaw is the sunrpc.DecodeFunc for RawProc bodies. The procedure
// number comes from the codec, read from a call header or recovered from the
// pending-call table.
func DecodeRaw(r io.Reader, procedure uint32) (RawProc, error) {
	body, err := sunrpc.ReadOpaque(r)
	if err != nil {
		return RawProc{}, err
	}
	return RawProc{Proc: procedure, Body: body}, nil
}
