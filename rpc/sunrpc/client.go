package sunrpc

import (
	"io"

	"github.com/VictoriaMetrics/metrics"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/puzpuzpuz/xsync/v3"
)

var Logger = logger.GetLogger("rpc/sunrpc")

var (
	metricCallsSent      = metrics.GetOrCreateCounter(`golxi_sunrpc_calls_sent_total`)
	metricRepliesMatched = metrics.GetOrCreateCounter(`golxi_sunrpc_replies_matched_total`)
	metricUnknownXID     = metrics.GetOrCreateCounter(`golxi_sunrpc_unknown_xid_total`)
	metricAbandoned      = metrics.GetOrCreateCounter(`golxi_sunrpc_calls_abandoned_total`)
)

// Client drives one Sun RPC connection: it composes an Encoder and a Decoder
// over a caller-supplied duplex byte stream and owns the table of
// outstanding calls keyed by transaction id. The table is what makes replies
// decodable at all: the wire reply names only the xid, so the procedure
// context has to be looked up on this side before the payload can be parsed.
//
// The codec itself is synchronous: Send and Recv block on the stream and
// must not run concurrently with each other. The pending-table bookkeeping
// (Pending, Abandon, FailPending) is safe to call from a supervising
// goroutine, e.g. to clear entries after a timeout, which is why the table
// is a concurrent map rather than a plain one. The Client never times out
// entries on its own.
type Client[P Payload] struct {
	enc     *Encoder[P]
	dec     *Decoder[P]
	pending *xsync.MapOf[uint32, PendingCall]
}

// NewClient creates a Client for the given program over stream. The stream
// must be a blocking, ordered, duplex byte stream; the Client never opens or
// closes transports itself.
func NewClient[P Payload](stream io.ReadWriter, program, version uint32, dec DecodeFunc[P]) *Client[P] {
	return &Client[P]{
		enc:     NewEncoder[P](stream, program, version),
		dec:     NewDecoder[P](stream, program, version, dec),
		pending: xsync.NewMapOf[uint32, PendingCall](),
	}
}

// Send encodes a Call envelope around data, writes it to the stream and
// records the pending entry for the eventual reply.
func (c *Client[P]) Send(data P) (PendingCall, error) {
	pc, err := c.enc.Call(data)
	if err != nil {
		return PendingCall{}, err
	}
	c.pending.Store(pc.XID, pc)
	metricCallsSent.Inc()
	return pc, nil
}

// Recv reads the next reply from the stream. It peeks the transaction id
// first, resolves it against the pending table to recover the procedure
// context, removes the entry, and only then performs the full decode.
//
// A reply whose xid has no pending entry (duplicate, stale or corrupted)
// is reported as UnknownXIDError without consuming the message; it is never
// matched to a different call by guesswork. Replies may arrive in any order
// relative to the calls that produced them.
func (c *Client[P]) Recv() (P, error) {
	var zero P

	xid, err := c.dec.PeekXID()
	if err != nil {
		return zero, err
	}

	pc, ok := c.pending.LoadAndDelete(xid)
	if !ok {
		metricUnknownXID.Inc()
		Logger.Warningf("reply for unknown xid %d, %d call(s) pending", xid, c.pending.Size())
		return zero, &UnknownXIDError{XID: xid}
	}

	data, err := c.dec.DecodeReply(pc.Procedure)
	if err != nil {
		return zero, err
	}
	metricRepliesMatched.Inc()
	return data, nil
}

// Pending returns a snapshot of the outstanding calls. The integration
// layer uses this to detect calls that will never complete, e.g. after a
// transport timeout.
func (c *Client[P]) Pending() []PendingCall {
	out := make([]PendingCall, 0, c.pending.Size())
	c.pending.Range(func(_ uint32, pc PendingCall) bool {
		out = append(out, pc)
		return true
	})
	return out
}

// Abandon removes the pending entry for xid, returning whether one existed.
// After a call is abandoned its reply, should it still arrive, is reported
// by Recv as UnknownXIDError.
func (c *Client[P]) Abandon(xid uint32) bool {
	_, ok := c.pending.LoadAndDelete(xid)
	if ok {
		metricAbandoned.Inc()
	}
	return ok
}

// FailPending removes every outstanding entry and returns them. Called when
// the connection is torn down so no caller keeps waiting for a reply that
// cannot arrive.
func (c *Client[P]) FailPending() []PendingCall {
	out := c.Pending()
	for _, pc := range out {
		c.pending.Delete(pc.XID)
		metricAbandoned.Inc()
	}
	if len(out) > 0 {
		Logger.Warningf("abandoning %d pending call(s) on teardown", len(out))
	}
	return out
}
