// Package base provides the shared dialing foundation for the transport
// connectors, independent of the specific network protocol (TCP, Unix
// sockets). Protocol-specific packages build on it and add their own socket
// tuning.
//
// The package focuses on:
//   - Dialing with the configured timeout
//   - Recording dial latency so slow or flapping instruments show up in the
//     metrics registry
package base
