package sunrpc

import (
	"encoding/binary"
	"fmt"
	"io"
)

// MaxOpaqueLen bounds the length prefix accepted while decoding an opaque
// value. A corrupt or malicious length field must not be able to request an
// unbounded allocation.
const MaxOpaqueLen = 16 * 1024 * 1024 // 16 MB

// Opaque is an XDR variable-length byte blob. On the wire it is encoded as a
// 4-byte big-endian length, the raw bytes, and zero padding up to the next
// 4-byte boundary (RFC 4506 §4.10).
type Opaque []byte

// --------------------------------------------------------------------------
// Encoding / Decoding
// --------------------------------------------------------------------------

// pad returns the number of zero fill bytes that follow len data bytes.
func pad(n int) int {
	return (4 - n%4) % 4
}

// EncodeTo writes the opaque value to w: length, data, zero padding.
func (o Opaque) EncodeTo(w io.Writer) error {
	if err := writeUint32(w, uint32(len(o))); err != nil {
		return err
	}
	if _, err := w.Write(o); err != nil {
		return err
	}
	if p := pad(len(o)); p > 0 {
		var zero [3]byte
		if _, err := w.Write(zero[:p]); err != nil {
			return err
		}
	}
	return nil
}

// ReadOpaque reads one opaque value from r, consuming the trailing padding.
// Non-zero padding bytes and lengths above MaxOpaqueLen are decode errors.
func ReadOpaque(r io.Reader) (Opaque, error) {
	n, err := readUint32(r)
	if err != nil {
		return nil, err
	}
	if n > MaxOpaqueLen {
		return nil, fmt.Errorf("sunrpc: opaque length %d exceeds limit %d", n, MaxOpaqueLen)
	}
	data := make([]byte, n)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, err
	}
	if p := pad(int(n)); p > 0 {
		var fill [3]byte
		if _, err := io.ReadFull(r, fill[:p]); err != nil {
			return nil, err
		}
		for _, b := range fill[:p] {
			if b != 0 {
				return nil, fmt.Errorf("sunrpc: non-zero opaque padding byte 0x%02x", b)
			}
		}
	}
	return data, nil
}

// String interprets the opaque bytes as text. Instrument responses are almost
// always ASCII command output, so lossy conversion is fine here.
func (o Opaque) String() string {
	return string(o)
}

// --------------------------------------------------------------------------
// Numeric Vector Conversions
// --------------------------------------------------------------------------
//
// Binary block transfers to and from instruments (waveforms, buffer reads)
// move integer vectors packed big-endian inside a single opaque value. The
// helpers below convert in both directions; decoding fails if the byte count
// is not a multiple of the element width.

// OpaqueFromUint16 packs v big-endian, two bytes per element.
func OpaqueFromUint16(v []uint16) Opaque {
	data := make([]byte, 0, 2*len(v))
	for _, x := range v {
		data = binary.BigEndian.AppendUint16(data, x)
	}
	return data
}

// OpaqueFromInt16 packs v big-endian, two bytes per element.
func OpaqueFromInt16(v []int16) Opaque {
	data := make([]byte, 0, 2*len(v))
	for _, x := range v {
		data = binary.BigEndian.AppendUint16(data, uint16(x))
	}
	return data
}

// OpaqueFromUint32 packs v big-endian, four bytes per element.
func OpaqueFromUint32(v []uint32) Opaque {
	data := make([]byte, 0, 4*len(v))
	for _, x := range v {
		data = binary.BigEndian.AppendUint32(data, x)
	}
	return data
}

// OpaqueFromInt32 packs v big-endian, four bytes per element.
func OpaqueFromInt32(v []int32) Opaque {
	data := make([]byte, 0, 4*len(v))
	for _, x := range v {
		data = binary.BigEndian.AppendUint32(data, uint32(x))
	}
	return data
}

// OpaqueFromUint64 packs v big-endian, eight bytes per element.
func OpaqueFromUint64(v []uint64) Opaque {
	data := make([]byte, 0, 8*len(v))
	for _, x := range v {
		data = binary.BigEndian.AppendUint64(data, x)
	}
	return data
}

// OpaqueFromInt64 packs v big-endian, eight bytes per element.
func OpaqueFromInt64(v []int64) Opaque {
	data := make([]byte, 0, 8*len(v))
	for _, x := range v {
		data = binary.BigEndian.AppendUint64(data, uint64(x))
	}
	return data
}

// Uint16 unpacks the opaque bytes as big-endian uint16 elements.
func (o Opaque) Uint16() ([]uint16, error) {
	if len(o)%2 != 0 {
		return nil, fmt.Errorf("sunrpc: opaque length %d is not a multiple of 2", len(o))
	}
	v := make([]uint16, len(o)/2)
	for i := range v {
		v[i] = binary.BigEndian.Uint16(o[2*i:])
	}
	return v, nil
}

// Int16 unpacks the opaque bytes as big-endian int16 elements.
func (o Opaque) Int16() ([]int16, error) {
	u, err := o.Uint16()
	if err != nil {
		return nil, err
	}
	v := make([]int16, len(u))
	for i, x := range u {
		v[i] = int16(x)
	}
	return v, nil
}

// Uint32 unpacks the opaque bytes as big-endian uint32 elements.
func (o Opaque) Uint32() ([]uint32, error) {
	if len(o)%4 != 0 {
		return nil, fmt.Errorf("sunrpc: opaque length %d is not a multiple of 4", len(o))
	}
	v := make([]uint32, len(o)/4)
	for i := range v {
		v[i] = binary.BigEndian.Uint32(o[4*i:])
	}
	return v, nil
}

// Int32 unpacks the opaque bytes as big-endian int32 elements.
func (o Opaque) Int32() ([]int32, error) {
	u, err := o.Uint32()
	if err != nil {
		return nil, err
	}
	v := make([]int32, len(u))
	for i, x := range u {
		v[i] = int32(x)
	}
	return v, nil
}

// Uint64 unpacks the opaque bytes as big-endian uint64 elements.
func (o Opaque) Uint64() ([]uint64, error) {
	if len(o)%8 != 0 {
		return nil, fmt.Errorf("sunrpc: opaque length %d is not a multiple of 8", len(o))
	}
	v := make([]uint64, len(o)/8)
	for i := range v {
		v[i] = binary.BigEndian.Uint64(o[8*i:])
	}
	return v, nil
}

// Int64 unpacks the opaque bytes as big-endian int64 elements.
func (o Opaque) Int64() ([]int64, error) {
	u, err := o.Uint64()
	if err != nil {
		return nil, err
	}
	v := make([]int64, len(u))
	for i, x := range u {
		v[i] = int64(x)
	}
	return v, nil
}
