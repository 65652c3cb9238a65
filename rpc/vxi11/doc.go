// Package vxi11 binds the generic Sun RPC codec to the VXI-11
// instrument-control protocol: the three well-known program numbers (core,
// abort and interrupt channel), the raw procedure payload every VXI-11
// message rides in, and a Channel that adds call pacing on top of the codec
// so a runaway script cannot flood a bench instrument.
//
// The structured per-procedure argument layouts (CreateLink, DeviceWrite and
// friends) are out of scope here; callers exchange procedure number plus one
// opaque body and interpret the bytes themselves.
package vxi11
