// Package sunrpc implements the ONC/Sun RPC wire codec (RFC 5531 framing,
// XDR encoding per RFC 4506) that the VXI-11 instrument-control protocol
// rides on. It covers the binary message envelope, the generic call/reply
// encode-decode engine, and the transaction-id correlation table that lets a
// client match an asynchronous reply to the call that produced it.
//
// The package is deliberately transport-free: every operation reads from or
// writes to a caller-supplied blocking duplex byte stream and nothing here
// opens sockets or spawns goroutines.
//
// Key Components:
//
//   - Opaque: XDR length-prefixed, 4-byte-aligned byte blob, with big-endian
//     numeric vector conversions for instrument block transfers.
//
//   - Envelope / CallBody / ReplyBody: the structural definition of an RPC
//     message with explicit, protocol-stable variant tags. Unknown tags are
//     surfaced as DecodeError carrying the literal wire value.
//
//   - Encoder: builds call/reply envelopes and owns the outbound xid
//     sequence (wrapping 32-bit counter, one per connection).
//
//   - Decoder: buffered envelope reader with a non-consuming PeekXID. A Sun
//     RPC reply does not name the procedure that produced it, so the decode
//     of a reply payload takes the procedure id as an explicit parameter.
//
//   - Client: Encoder + Decoder + pending-call table keyed by xid. Replies
//     may arrive out of order; the table restores the pairing and a reply
//     for an untracked xid is a distinct error, never a guess.
//
// Thread Safety:
//
//	The codec is synchronous and single-owner: exactly one goroutine may
//	drive Send/Recv on a Client at a time. Only the pending-table
//	bookkeeping calls are safe from other goroutines.
package sunrpc
