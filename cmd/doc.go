// Package cmd implements the command-line interface for golxi. It provides a
// hierarchical command structure for talking to VXI-11 instruments from the
// shell.
//
// The package is organized into several subpackages:
//
//   - call: Commands for sending raw RPCs to an instrument (send, ping)
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// See golxi -help for a list of all commands.
package cmd
