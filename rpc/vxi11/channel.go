package vxi11

import (
	"context"
	"io"

	"github.com/VictoriaMetrics/metrics"
	"github.com/lni/dragonboat/v4/logger"
	"golang.org/x/time/rate"

	"github.com/lab-instruments/golxi/rpc/sunrpc"
)

var Logger = logger.GetLogger("rpc/vxi11")

var metricRoundtrips = metrics.GetOrCreateCounter(`golxi_vxi11_roundtrips_total`)

// Channel drives one VXI-11 program over one duplex stream. It owns a
// sunrpc.Client for the correlation work and a token-bucket limiter that
// paces outgoing calls; bench instruments are slow and some firmwares wedge
// when calls arrive faster than they are serviced.
//
// Like the codec underneath, a Channel is single-owner: one goroutine drives
// Call/Receive/Roundtrip at a time. Fail is safe from a supervising
// goroutine.
type Channel struct {
	client  *sunrpc.Client[RawProc]
	limiter *rate.Limiter
}

// NewChannel creates a Channel for program over stream. The stream must be a
// blocking, ordered duplex byte stream, typically a net.Conn from the
// transport layer; the Channel never dials or closes it. Pacing starts
// unlimited, see SetRateLimit.
func NewChannel(stream io.ReadWriter, program uint32) *Channel {
	return &Channel{
		client:  sunrpc.NewClient(stream, program, ProgramVersion, DecodeRaw),
		limiter: rate.NewLimiter(rate.Inf, 1),
	}
}

// SetRateLimit caps outgoing calls at limit per second with the given burst.
func (c *Channel) SetRateLimit(limit rate.Limit, burst int) {
	c.limiter.SetLimit(limit)
	c.limiter.SetBurst(burst)
}

// Call paces on the limiter, then sends procedure proc with body. The
// returned pending record identifies the call until its reply arrives.
func (c *Channel) Call(ctx context.Context, proc uint32, body sunrpc.Opaque) (sunrpc.PendingCall, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return sunrpc.PendingCall{}, err
	}
	return c.client.Send(RawProc{Proc: proc, Body: body})
}

// Receive blocks for the next reply and returns its payload. RPC-level
// failures (rejected call, unavailable procedure, unknown xid) come back as
// the codec's typed errors.
func (c *Channel) Receive() (RawProc, error) {
	return c.client.Recv()
}

// Roundtrip sends one call and blocks for its reply body. If the reply that
// arrives belongs to a different outstanding call the caller's pipelining is
// broken; the call is abandoned and the error returned rather than guessed
// around.
func (c *Channel) Roundtrip(ctx context.Context, proc uint32, body sunrpc.Opaque) (sunrpc.Opaque, error) {
	pc, err := c.Call(ctx, proc, body)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		c.client.Abandon(pc.XID)
		return nil, err
	}

	data, err := c.client.Recv()
	if err != nil {
		c.client.Abandon(pc.XID)
		return nil, err
	}
	if data.Proc != proc {
		Logger.Warningf("roundtrip for procedure %d received reply for procedure %d", proc, data.Proc)
	}
	metricRoundtrips.Inc()
	return data.Body, nil
}

// Pending returns a snapshot of the calls still waiting for a reply.
func (c *Channel) Pending() []sunrpc.PendingCall {
	return c.client.Pending()
}

// Fail clears every outstanding call and returns the records. Called when
// the transport under the channel is torn down.
func (c *Channel) Fail() []sunrpc.PendingCall {
	return c.client.FailPending()
}
