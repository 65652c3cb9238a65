// Package tcp implements the TCP connector, the transport every networked
// VXI-11 instrument speaks. It builds on the base package's dialing and adds
// the socket tuning that matters for long-lived instrument links.
//
// Key Components:
//
//   - connector: TCP-specific implementation of transport.IConnector. Applies
//     TCP_NODELAY (small request/response messages), keep-alive (links idle
//     for hours between commands), linger and buffer sizes from the socket
//     configuration.
package tcp
