// Package rpc provides the remote procedure call stack for talking to VXI-11
// instruments. It acts as the communication layer between controller code and
// the instrument on the other end of a socket.
//
// The package is organized into several subpackages:
//
//   - sunrpc: The Sun RPC / XDR wire codec: message envelope, opaque values,
//     encoder/decoder and the transaction-id correlated client.
//
//   - vxi11: The VXI-11 binding: program numbers, the raw procedure payload
//     and a rate-limited channel on top of the generic codec.
//
//   - common: Configuration structures and logging shared across the stack.
//
//   - transport: Connectors that dial an instrument and hand the codec a
//     tuned duplex byte stream (TCP, Unix sockets).
package rpc
