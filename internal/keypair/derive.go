// Package keypair turns BIP-39 recovery material into a Solana Ed25519
// signing keypair and handles the two renderings of its secret: the raw
// 64-byte block (seed followed by public key) and its base-58 text form.
//
// Solana seed derivation: see https://github.com/solana-labs/solana-keygen/blob/master/cli/src/keygen.rs
package keypair

import (
	"bytes"
	"crypto/ed25519"
	"errors"
	"fmt"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/blocto/solana-go-sdk/types"
	"github.com/mr-tron/base58"
	bip39 "github.com/tyler-smith/go-bip39"
)

const (
	// SeedSize is the Ed25519 seed length taken from the derivation seed.
	SeedSize = ed25519.SeedSize
	// SecretKeySize is the full secret-key block: 32-byte seed + 32-byte
	// public key, the layout Solana key files and wallets expect.
	SecretKeySize = ed25519.PrivateKeySize
)

// ErrKeyDerivationFailed signals structurally invalid key material inside
// the derivation itself. Seed length is fixed by construction, so hitting
// this is a programming bug, not a user input error.
var ErrKeyDerivationFailed = errors.New("key derivation failed")

// Keypair wraps a deterministic Ed25519 signing keypair.
type Keypair struct {
	account types.Account
}

// DeriveSeed computes the 64-byte BIP-39 derivation seed for a mnemonic and
// an optional passphrase (PBKDF2-HMAC-SHA512, 2048 iterations, salt
// "mnemonic"+passphrase). An absent passphrase is the empty string; there is
// no separate code path for it.
func DeriveSeed(mnemonic, passphrase string) []byte {
	return bip39.NewSeed(mnemonic, passphrase)
}

// FromMnemonic derives a keypair from a validated mnemonic phrase and an
// optional passphrase: the first 32 bytes of the derivation seed become the
// Ed25519 seed.
func FromMnemonic(mnemonic, passphrase string) (*Keypair, error) {
	seed := DeriveSeed(mnemonic, passphrase)
	return FromSeed(seed[:SeedSize])
}

// FromSeed expands a 32-byte Ed25519 seed into a keypair.
func FromSeed(seed []byte) (*Keypair, error) {
	if len(seed) != SeedSize {
		return nil, fmt.Errorf("%w: seed is %d bytes, want %d", ErrKeyDerivationFailed, len(seed), SeedSize)
	}
	priv := ed25519.NewKeyFromSeed(seed)
	return FromSecretKey(priv)
}

// FromSecretKey wraps an existing 64-byte secret-key block. The trailing 32
// bytes must be the public key belonging to the leading seed; a mismatch is
// reported as ErrKeyDerivationFailed rather than producing a keypair that
// cannot sign for its own address.
func FromSecretKey(secret []byte) (*Keypair, error) {
	if len(secret) != SecretKeySize {
		return nil, fmt.Errorf("%w: secret key is %d bytes, want %d", ErrKeyDerivationFailed, len(secret), SecretKeySize)
	}
	derived := ed25519.NewKeyFromSeed(secret[:SeedSize])
	if !bytes.Equal(derived[SeedSize:], secret[SeedSize:]) {
		return nil, fmt.Errorf("%w: public key does not match seed", ErrKeyDerivationFailed)
	}
	account, err := types.AccountFromBytes(derived)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrKeyDerivationFailed, err)
	}
	return &Keypair{account: account}, nil
}

// FromBase58 decodes a base-58 secret key produced by SecretKeyBase58 (or by
// wallet tooling) back into a keypair.
func FromBase58(encoded string) (*Keypair, error) {
	secret, err := base58.Decode(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid base58: %s", ErrKeyDerivationFailed, err)
	}
	return FromSecretKey(secret)
}

// Account returns the underlying account for transaction signing.
func (k *Keypair) Account() types.Account {
	return k.account
}

// PublicKey returns the public key.
func (k *Keypair) PublicKey() common.PublicKey {
	return k.account.PublicKey
}

// PublicKeyBase58 returns the public key in base-58.
func (k *Keypair) PublicKeyBase58() string {
	return k.account.PublicKey.String()
}

// SecretKey returns a copy of the 64-byte secret-key block.
func (k *Keypair) SecretKey() []byte {
	return append([]byte(nil), k.account.PrivateKey...)
}

// SecretKeyBase58 returns the secret-key block in base-58, the
// human-copyable form wallet tooling accepts for import.
func (k *Keypair) SecretKeyBase58() string {
	return base58.Encode(k.account.PrivateKey)
}

// Seed returns a copy of the 32-byte Ed25519 seed.
func (k *Keypair) Seed() []byte {
	return append([]byte(nil), k.account.PrivateKey[:SeedSize]...)
}
