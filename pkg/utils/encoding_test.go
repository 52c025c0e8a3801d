package utils

import (
	"bytes"
	"testing"
)

func TestBase58RoundTrip(t *testing.T) {
	data := []byte{0, 1, 2, 253, 254, 255}
	decoded, err := DecodeBase58(EncodeBase58(data))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !bytes.Equal(decoded, data) {
		t.Fatalf("round trip mismatch: got %v want %v", decoded, data)
	}
}

func TestHexRoundTrip(t *testing.T) {
	data := []byte{0xde, 0xad, 0xbe, 0xef}
	if got := EncodeHex(data); got != "deadbeef" {
		t.Fatalf("unexpected hex %q", got)
	}
	decoded, err := DecodeHex("0xdeadbeef")
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !bytes.Equal(decoded, data) {
		t.Fatalf("0x prefix must be accepted")
	}
}

func TestU64LERoundTrip(t *testing.T) {
	encoded := EncodeU64LE(12345)
	if encoded[0] != 0x39 || encoded[1] != 0x30 {
		t.Fatalf("expected little-endian layout, got %v", encoded)
	}
	decoded, err := DecodeU64LE(encoded)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if decoded != 12345 {
		t.Fatalf("round trip mismatch: got %d", decoded)
	}
	if _, err := DecodeU64LE(encoded[:7]); err == nil {
		t.Fatalf("short input must error")
	}
}

func TestSolanaValidators(t *testing.T) {
	if !IsValidSolanaAddress("9jpqDtrTj4GyNLVDjydbJVW1pWkZypHwpqDyLt2Ragt9") {
		t.Fatalf("valid address rejected")
	}
	if IsValidSolanaAddress("tooshort") {
		t.Fatalf("short address accepted")
	}
	if IsValidSolanaPrivateKey("9jpqDtrTj4GyNLVDjydbJVW1pWkZypHwpqDyLt2Ragt9") {
		t.Fatalf("32-byte value is not a 64-byte private key")
	}
}
