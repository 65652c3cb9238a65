package base

import (
	"fmt"
	"net"
	"time"

	"github.com/lni/dragonboat/v4/logger"
	gometrics "github.com/rcrowley/go-metrics"

	"github.com/lab-instruments/golxi/rpc/common"
)

var Logger = logger.GetLogger("rpc/transport")

// dialTimer aggregates dial latencies across all connectors. Instruments
// with a wedged network stack show up here long before a command times out.
var dialTimer = gometrics.GetOrRegisterTimer("golxi.transport.dial", gometrics.DefaultRegistry)

// Dial establishes a single connection to the configured endpoint with the
// configured timeout and records the dial latency.
func Dial(network string, config common.ClientConfig) (net.Conn, error) {
	timeout := time.Duration(config.TimeoutSecond) * time.Second

	start := time.Now()
	conn, err := net.DialTimeout(network, config.Endpoint, timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s via %s: %w", config.Endpoint, network, err)
	}
	dialTimer.UpdateSince(start)

	Logger.Infof("connected to %s via %s in %v", config.Endpoint, network, time.Since(start).Round(time.Millisecond))
	return conn, nil
}
