package unix

import (
	"fmt"
	"net"

	"github.com/lab-instruments/golxi/rpc/common"
	"github.com/lab-instruments/golxi/rpc/transport"
	"github.com/lab-instruments/golxi/rpc/transport/base"
)

// connector implements the IConnector interface for Unix sockets. Used for
// local instrument simulators and protocol bridges that expose a VXI-11
// endpoint on the filesystem.
type connector struct{}

// --------------------------------------------------------------------------
// Interface Methods (docu see transport.IConnector)
// --------------------------------------------------------------------------

func (c *connector) GetName() string {
	return "unix"
}

func (c *connector) Connect(config common.ClientConfig) (net.Conn, error) {
	conn, err := base.Dial("unix", config)
	if err != nil {
		return nil, err
	}

	if err := upgradeConnection(conn, config.Socket); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to upgrade connection to %s: %v", config.Endpoint, err)
	}

	return conn, nil
}

// upgradeConnection applies the buffer sizes from SocketConf. The TCP-only
// options do not apply to Unix sockets.
func upgradeConnection(conn net.Conn, conf common.SocketConf) error {
	unixConn, ok := conn.(*net.UnixConn)
	if !ok {
		return nil
	}

	if conf.WriteBufferSize > 0 {
		if err := unixConn.SetWriteBuffer(conf.WriteBufferSize); err != nil {
			return err
		}
	}

	if conf.ReadBufferSize > 0 {
		if err := unixConn.SetReadBuffer(conf.ReadBufferSize); err != nil {
			return err
		}
	}

	return nil
}

// --------------------------------------------------------------------------
// Connector Factory Method
// --------------------------------------------------------------------------

// NewConnector creates a new Unix socket connector
func NewConnector() transport.IConnector {
	return &connector{}
}
