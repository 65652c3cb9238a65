package sunrpc

import (
	"bytes"
	"reflect"
	"testing"
)

func TestOpaquePadding(t *testing.T) {
	var buf bytes.Buffer
	if err := Opaque([]byte{1, 2, 3, 4, 5}).EncodeTo(&buf); err != nil {
		t.Fatalf("EncodeTo failed: %v", err)
	}

	want := []byte{
		0, 0, 0, 5, // length
		1, 2, 3, 4, 5, // data
		0, 0, 0, // zero padding up to the 4-byte boundary
	}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("encoded opaque mismatch:\ngot  %v\nwant %v", buf.Bytes(), want)
	}

	got, err := ReadOpaque(&buf)
	if err != nil {
		t.Fatalf("ReadOpaque failed: %v", err)
	}
	if !bytes.Equal(got, []byte{1, 2, 3, 4, 5}) {
		t.Errorf("round trip mismatch: got %v", got)
	}
	if buf.Len() != 0 {
		t.Errorf("decode left %d unread byte(s), padding not consumed", buf.Len())
	}
}

func TestOpaqueRoundTrip(t *testing.T) {
	// every length mod 4, including empty
	for length := 0; length <= 9; length++ {
		data := make([]byte, length)
		for i := range data {
			data[i] = byte(0xA0 + i)
		}

		var buf bytes.Buffer
		if err := Opaque(data).EncodeTo(&buf); err != nil {
			t.Fatalf("length %d: EncodeTo failed: %v", length, err)
		}
		if buf.Len()%4 != 0 {
			t.Errorf("length %d: encoded size %d is not 4-byte aligned", length, buf.Len())
		}

		got, err := ReadOpaque(&buf)
		if err != nil {
			t.Fatalf("length %d: ReadOpaque failed: %v", length, err)
		}
		if !bytes.Equal(got, data) {
			t.Errorf("length %d: round trip mismatch: got %v, want %v", length, got, data)
		}
	}
}

func TestOpaqueRejectsOverlongLength(t *testing.T) {
	buf := bytes.NewBuffer([]byte{0xFF, 0xFF, 0xFF, 0xFF})
	if _, err := ReadOpaque(buf); err == nil {
		t.Fatal("expected error for length beyond MaxOpaqueLen, got nil")
	}
}

func TestOpaqueRejectsNonZeroPadding(t *testing.T) {
	buf := bytes.NewBuffer([]byte{
		0, 0, 0, 1, // length 1
		0xAA,    // data
		0, 0, 7, // corrupt padding
	})
	if _, err := ReadOpaque(buf); err == nil {
		t.Fatal("expected error for non-zero padding byte, got nil")
	}
}

func TestOpaqueVectorConversions(t *testing.T) {
	t.Run("uint16", func(t *testing.T) {
		in := []uint16{0, 1, 0xBEEF, 0xFFFF}
		out, err := OpaqueFromUint16(in).Uint16()
		if err != nil {
			t.Fatalf("Uint16 failed: %v", err)
		}
		if !reflect.DeepEqual(in, out) {
			t.Errorf("round trip mismatch: got %v, want %v", out, in)
		}
	})

	t.Run("int16", func(t *testing.T) {
		in := []int16{-32768, -1, 0, 32767}
		out, err := OpaqueFromInt16(in).Int16()
		if err != nil {
			t.Fatalf("Int16 failed: %v", err)
		}
		if !reflect.DeepEqual(in, out) {
			t.Errorf("round trip mismatch: got %v, want %v", out, in)
		}
	})

	t.Run("uint32", func(t *testing.T) {
		in := []uint32{0, 395183, 0xDEADBEEF}
		out, err := OpaqueFromUint32(in).Uint32()
		if err != nil {
			t.Fatalf("Uint32 failed: %v", err)
		}
		if !reflect.DeepEqual(in, out) {
			t.Errorf("round trip mismatch: got %v, want %v", out, in)
		}
	})

	t.Run("int32", func(t *testing.T) {
		in := []int32{-2147483648, -7, 2147483647}
		out, err := OpaqueFromInt32(in).Int32()
		if err != nil {
			t.Fatalf("Int32 failed: %v", err)
		}
		if !reflect.DeepEqual(in, out) {
			t.Errorf("round trip mismatch: got %v, want %v", out, in)
		}
	})

	t.Run("uint64", func(t *testing.T) {
		in := []uint64{0, 1 << 40, ^uint64(0)}
		out, err := OpaqueFromUint64(in).Uint64()
		if err != nil {
			t.Fatalf("Uint64 failed: %v", err)
		}
		if !reflect.DeepEqual(in, out) {
			t.Errorf("round trip mismatch: got %v, want %v", out, in)
		}
	})

	t.Run("int64", func(t *testing.T) {
		in := []int64{-1 << 62, 0, 1 << 62}
		out, err := OpaqueFromInt64(in).Int64()
		if err != nil {
			t.Fatalf("Int64 failed: %v", err)
		}
		if !reflect.DeepEqual(in, out) {
			t.Errorf("round trip mismatch: got %v, want %v", out, in)
		}
	})

	t.Run("big endian element order", func(t *testing.T) {
		o := OpaqueFromUint16([]uint16{0x0102})
		if !bytes.Equal(o, []byte{0x01, 0x02}) {
			t.Errorf("expected big-endian packing, got %v", []byte(o))
		}
	})
}

func TestOpaqueVectorLengthMismatch(t *testing.T) {
	odd := Opaque([]byte{1, 2, 3})
	if _, err := odd.Uint16(); err == nil {
		t.Error("Uint16 accepted a 3-byte opaque")
	}
	if _, err := odd.Uint32(); err == nil {
		t.Error("Uint32 accepted a 3-byte opaque")
	}
	if _, err := odd.Uint64(); err == nil {
		t.Error("Uint64 accepted a 3-byte opaque")
	}
}
