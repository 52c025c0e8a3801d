package utils

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/mr-tron/base58"
)

// Base58 encoding/decoding utilities

// EncodeBase58 encodes bytes to base58 string
func EncodeBase58(data []byte) string {
	return base58.Encode(data)
}

// DecodeBase58 decodes base58 string to bytes
func DecodeBase58(encoded string) ([]byte, error) {
	return base58.Decode(encoded)
}

// IsValidBase58 checks if string is valid base58
func IsValidBase58(s string) bool {
	_, err := base58.Decode(s)
	return err == nil
}

// Hex encoding/decoding utilities

// EncodeHex encodes bytes to hex string (without 0x prefix)
func EncodeHex(data []byte) string {
	return hex.EncodeToString(data)
}

// DecodeHex decodes hex string to bytes (handles 0x prefix)
func DecodeHex(encoded string) ([]byte, error) {
	if len(encoded) >= 2 && encoded[:2] == "0x" {
		encoded = encoded[2:]
	}
	return hex.DecodeString(encoded)
}

// Binary encoding utilities

// EncodeU64LE encodes uint64 to little-endian bytes
func EncodeU64LE(value uint64) []byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, value)
	return buf
}

// DecodeU64LE decodes uint64 from little-endian bytes
func DecodeU64LE(data []byte) (uint64, error) {
	if len(data) < 8 {
		return 0, fmt.Errorf("insufficient data to decode u64")
	}
	return binary.LittleEndian.Uint64(data), nil
}

// Validation utilities

// IsValidSolanaAddress checks if string is a valid Solana address
func IsValidSolanaAddress(address string) bool {
	decoded, err := base58.Decode(address)
	return err == nil && len(decoded) == 32
}

// IsValidSolanaPrivateKey checks if string is a valid Solana private key
func IsValidSolanaPrivateKey(privkey string) bool {
	decoded, err := base58.Decode(privkey)
	return err == nil && len(decoded) == 64
}
