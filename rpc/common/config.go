package common

import (
	"fmt"
	"strconv"
	"strings"
)

// --------------------------------------------------------------------------
// Socket configuration struct
// --------------------------------------------------------------------------

// SocketConf holds the low-level socket tuning applied to an established
// instrument connection. Zero values leave the kernel defaults in place.
type SocketConf struct {
	// Socket read/write buffer sizes in bytes
	ReadBufferSize  int
	WriteBufferSize int

	// TCPNoDelay disables Nagle's algorithm. Instrument protocols are
	// request/response with small messages, so this defaults to on.
	TCPNoDelay bool

	// TCPKeepAliveSec enables keep-alive probes with the given period.
	// Bench instruments sit idle for hours between commands.
	TCPKeepAliveSec int

	// TCPLingerSec sets the close linger. Negative means default behaviour.
	TCPLingerSec int
}

// --------------------------------------------------------------------------
// RPC client configuration struct
// --------------------------------------------------------------------------

// ClientConfig holds all configuration parameters for one instrument link.
type ClientConfig struct {
	// Transport names the connector ("tcp" or "unix")
	Transport string

	// Endpoint is the instrument address, e.g. "192.168.1.42:703"
	Endpoint string

	// Dial timeout
	TimeoutSecond int

	// Call pacing: maximum calls per second and burst size.
	// RateLimit 0 means unlimited.
	RateLimit float64
	RateBurst int

	// Logging configuration
	LogLevel string

	// Socket tuning
	Socket SocketConf
}

// DefaultClientConfig returns the settings that work with stock VXI-11
// instruments out of the box.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		Transport:     "tcp",
		TimeoutSecond: 10,
		RateBurst:     1,
		LogLevel:      "info",
		Socket: SocketConf{
			TCPNoDelay:      true,
			TCPKeepAliveSec: 30,
			TCPLingerSec:    -1,
		},
	}
}

// String returns a formatted string representation of the client configuration
func (c *ClientConfig) String() string {
	var sb strings.Builder

	// Create helper functions for consistent formatting
	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	// General Client Settings
	addSection("Client Configuration")
	addField("Transport", c.Transport)
	addField("Endpoint", c.Endpoint)
	addField("Timeout", fmt.Sprintf("%d sec", c.TimeoutSecond))

	// Pacing
	addSection("Call Pacing")
	if c.RateLimit > 0 {
		addField("Rate Limit", fmt.Sprintf("%.1f calls/sec", c.RateLimit))
		addField("Burst", strconv.Itoa(c.RateBurst))
	} else {
		addField("Rate Limit", "unlimited")
	}

	// Logging configuration
	addSection("Logging")
	addField("Log Level", c.LogLevel)

	// Socket tuning
	addSection("Socket")
	addField("TCP No Delay", fmt.Sprintf("%t", c.Socket.TCPNoDelay))
	if c.Socket.ReadBufferSize > 0 {
		addField("Read Buffer", fmt.Sprintf("%d bytes", c.Socket.ReadBufferSize))
	}
	if c.Socket.WriteBufferSize > 0 {
		addField("Write Buffer", fmt.Sprintf("%d bytes", c.Socket.WriteBufferSize))
	}
	if c.Socket.TCPKeepAliveSec > 0 {
		addField("Keep Alive", fmt.Sprintf("%d sec", c.Socket.TCPKeepAliveSec))
	}
	addField("Linger", fmt.Sprintf("%d sec", c.Socket.TCPLingerSec))

	return sb.String()
}
