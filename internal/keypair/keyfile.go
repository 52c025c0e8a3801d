package keypair

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrInvalidKeyFile signals a malformed structured key file: wrong element
// count, an element outside [0,255], a non-numeric token, or an unreadable
// file. Malformed content is never truncated or wrapped into a key.
var ErrInvalidKeyFile = errors.New("invalid key file")

// ParseKeyFile parses the JSON key-file format used by Solana CLI tooling:
// an array of exactly 64 integers in [0,255] holding the raw secret-key
// bytes in order.
func ParseKeyFile(data []byte) (*Keypair, error) {
	var elems []int64
	if err := json.Unmarshal(data, &elems); err != nil {
		return nil, fmt.Errorf("%w: not a JSON integer array: %s", ErrInvalidKeyFile, err)
	}
	if len(elems) != SecretKeySize {
		return nil, fmt.Errorf("%w: %d elements, want %d", ErrInvalidKeyFile, len(elems), SecretKeySize)
	}
	secret := make([]byte, SecretKeySize)
	for i, v := range elems {
		if v < 0 || v > 255 {
			return nil, fmt.Errorf("%w: element %d is %d, outside [0,255]", ErrInvalidKeyFile, i, v)
		}
		secret[i] = byte(v)
	}
	kp, err := FromSecretKey(secret)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidKeyFile, err)
	}
	return kp, nil
}

// LoadKeyFile reads and parses a key file from an explicit path. It never
// creates the file.
func LoadKeyFile(path string) (*Keypair, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidKeyFile, err)
	}
	return ParseKeyFile(data)
}

// MarshalKeyFile renders the secret key in the key-file format:
// "[12,34,...]" with exactly 64 elements.
func (k *Keypair) MarshalKeyFile() []byte {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range k.account.PrivateKey {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%d", v)
	}
	b.WriteByte(']')
	return []byte(b.String())
}

// WriteKeyFile persists the secret key to a caller-supplied path. Writing
// key material is always an explicit caller action; nothing in this package
// writes to a default location.
func (k *Keypair) WriteKeyFile(path string) error {
	return os.WriteFile(path, k.MarshalKeyFile(), 0o600)
}
