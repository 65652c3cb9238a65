package transport

import (
	"net"

	"github.com/lab-instruments/golxi/rpc/common"
)

// --------------------------------------------------------------------------
// Client Transport
// --------------------------------------------------------------------------

// IConnector is the interface for transport-specific connection operations.
// A connector dials the endpoint named in the configuration and returns a
// blocking duplex stream ready for the RPC codec. The caller owns the
// connection lifecycle from there.
type IConnector interface {
	// GetName returns the name of the transport type (e.g., "unix", "tcp")
	GetName() string

	// Connect establishes a single connection based on the provided configuration
	Connect(config common.ClientConfig) (net.Conn, error)
}
