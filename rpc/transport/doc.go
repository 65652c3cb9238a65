// Package transport defines the collaborator boundary between the wire codec
// and the network: the codec reads and writes a blocking duplex byte stream
// and never opens sockets itself; a connector supplies that stream.
//
// The package focuses on:
//   - Defining a clear interface for dialing an instrument
//   - Enabling multiple transport implementations (TCP, Unix sockets)
//   - Keeping socket tuning out of the protocol layer
//
// Key Components:
//
//   - IConnector: Interface for client-side connectors that dial one
//     instrument endpoint and hand back a tuned net.Conn.
package transport
