// Package unix implements the Unix domain socket connector. Instrument
// simulators and protocol bridges on the local machine expose their VXI-11
// endpoint as a socket file; this connector lets the same client stack talk
// to them without the TCP/IP detour.
//
// Key Components:
//
//   - connector: Unix socket implementation of transport.IConnector. Only
//     the buffer sizes from the socket configuration apply here.
package unix
