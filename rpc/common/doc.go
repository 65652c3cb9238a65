// Package common provides configuration structures and logging shared across
// the golxi RPC stack and the command-line interface.
//
// The package focuses on:
//   - Configuration structures for instrument connections
//   - Custom logging with consistent formatting across the application
//
// Key Components:
//
//   - ClientConfig: Configuration for one instrument link, covering the
//     transport choice, endpoint, timeout, call pacing and socket tuning.
//     DefaultClientConfig returns settings that work with stock VXI-11
//     instruments.
//
//   - SocketConf: Low-level socket options (buffers, TCP_NODELAY, keep-alive,
//     linger) applied by the transport connectors.
//
//   - Logger: Custom logging implementation with a factory that produces
//     uniformly formatted package loggers; InitLoggers applies the configured
//     level to every logger of this module.
package common
