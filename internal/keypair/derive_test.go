package keypair

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func TestDeriveSeedVectors(t *testing.T) {
	// Standard BIP-39 test vectors for the zero-entropy mnemonic.
	cases := []struct {
		passphrase string
		wantHex    string
	}{
		{
			passphrase: "",
			wantHex:    "5eb00bbddcf069084889a8ab9155568165f5c453ccb85e70811aaed6f6da5fc19a5ac40b389cd370d086206dec8aa6c43daea6690f20ad3d8d48b2d2ce9e38e4",
		},
		{
			passphrase: "TREZOR",
			wantHex:    "c55257c360c07c72029aebc1b53c05ed0362ada38ead3e3e9efa3708e53495531f09a6987599d18264c1e1c92f2cf141630c7a3c4ab7c81b2f001698e7463b04",
		},
	}

	for _, tc := range cases {
		seed := DeriveSeed(testMnemonic, tc.passphrase)
		if len(seed) != 64 {
			t.Fatalf("seed must be 64 bytes, got %d", len(seed))
		}
		if got := hex.EncodeToString(seed); got != tc.wantHex {
			t.Fatalf("passphrase %q: unexpected seed\ngot  %s\nwant %s", tc.passphrase, got, tc.wantHex)
		}
	}
}

func TestFromMnemonicDeterministic(t *testing.T) {
	first, err := FromMnemonic(testMnemonic, "")
	if err != nil {
		t.Fatalf("derivation failed: %v", err)
	}
	second, err := FromMnemonic(testMnemonic, "")
	if err != nil {
		t.Fatalf("derivation failed: %v", err)
	}
	if !bytes.Equal(first.SecretKey(), second.SecretKey()) {
		t.Fatalf("same inputs must reproduce the same secret key")
	}
	if first.PublicKeyBase58() != second.PublicKeyBase58() {
		t.Fatalf("same inputs must reproduce the same public key")
	}
}

func TestFromMnemonicPassphraseChangesKey(t *testing.T) {
	plain, err := FromMnemonic(testMnemonic, "")
	if err != nil {
		t.Fatalf("derivation failed: %v", err)
	}
	withPass, err := FromMnemonic(testMnemonic, "TREZOR")
	if err != nil {
		t.Fatalf("derivation failed: %v", err)
	}
	if bytes.Equal(plain.SecretKey(), withPass.SecretKey()) {
		t.Fatalf("different passphrases must derive different keys")
	}
}

func TestSecretKeyLayout(t *testing.T) {
	kp, err := FromMnemonic(testMnemonic, "")
	if err != nil {
		t.Fatalf("derivation failed: %v", err)
	}

	secret := kp.SecretKey()
	if len(secret) != SecretKeySize {
		t.Fatalf("secret key must be %d bytes, got %d", SecretKeySize, len(secret))
	}
	if !bytes.Equal(secret[:SeedSize], kp.Seed()) {
		t.Fatalf("secret key must start with the seed")
	}
	if !bytes.Equal(secret[SeedSize:], kp.PublicKey().Bytes()) {
		t.Fatalf("secret key must end with the public key")
	}

	seed := DeriveSeed(testMnemonic, "")
	if !bytes.Equal(kp.Seed(), seed[:SeedSize]) {
		t.Fatalf("keypair seed must be the first %d bytes of the derivation seed", SeedSize)
	}
}

func TestBase58RoundTrip(t *testing.T) {
	kp, err := FromMnemonic(testMnemonic, "")
	if err != nil {
		t.Fatalf("derivation failed: %v", err)
	}

	decoded, err := FromBase58(kp.SecretKeyBase58())
	if err != nil {
		t.Fatalf("base58 round trip failed: %v", err)
	}
	if !bytes.Equal(decoded.SecretKey(), kp.SecretKey()) {
		t.Fatalf("base58 decode must reproduce the exact secret key")
	}
}

func TestFromSeedRejectsWrongLength(t *testing.T) {
	for _, n := range []int{0, 31, 33, 64} {
		if _, err := FromSeed(make([]byte, n)); !errors.Is(err, ErrKeyDerivationFailed) {
			t.Fatalf("seed of %d bytes: expected ErrKeyDerivationFailed, got %v", n, err)
		}
	}
}

func TestFromSecretKeyRejectsMismatchedPublicKey(t *testing.T) {
	kp, err := FromMnemonic(testMnemonic, "")
	if err != nil {
		t.Fatalf("derivation failed: %v", err)
	}

	secret := kp.SecretKey()
	secret[SecretKeySize-1] ^= 0xff
	if _, err := FromSecretKey(secret); !errors.Is(err, ErrKeyDerivationFailed) {
		t.Fatalf("expected ErrKeyDerivationFailed for corrupted public half, got %v", err)
	}
}

func TestFromBase58RejectsGarbage(t *testing.T) {
	if _, err := FromBase58("not-base58-0OIl"); !errors.Is(err, ErrKeyDerivationFailed) {
		t.Fatalf("expected ErrKeyDerivationFailed, got %v", err)
	}
}
